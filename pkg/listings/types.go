package listings

import (
	"slices"

	"github.com/goliatone/go-stepform/pkg/model"
)

type Location struct {
	Address string `json:"address" yaml:"address"`
	City    string `json:"city" yaml:"city"`
	State   string `json:"state" yaml:"state"`
	Country string `json:"country" yaml:"country"`
}

type Metrics struct {
	FootTraffic     int    `json:"footTraffic" yaml:"footTraffic"`
	VehicleTraffic  int    `json:"vehicleTraffic" yaml:"vehicleTraffic"`
	DwellTime       int    `json:"dwellTime" yaml:"dwellTime"`
	VisibilityScore int    `json:"visibilityScore,omitempty" yaml:"visibilityScore,omitempty"`
	Notes           string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type Pricing struct {
	Amount   float64 `json:"amount" yaml:"amount"`
	Unit     string  `json:"unit" yaml:"unit"`
	Currency string  `json:"currency" yaml:"currency"`
}

type Owner struct {
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Company string `json:"company,omitempty" yaml:"company,omitempty"`
}

// Listing is an advertising space offered on the marketplace.
type Listing struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Category    string   `json:"category" yaml:"category"`
	Subcategory string   `json:"subcategory" yaml:"subcategory"`
	Description string   `json:"description" yaml:"description"`
	Images      []string `json:"images,omitempty" yaml:"images,omitempty"`
	Location    Location `json:"location" yaml:"location"`
	Metrics     Metrics  `json:"metrics" yaml:"metrics"`
	Pricing     Pricing  `json:"pricing" yaml:"pricing"`
	Owner       Owner    `json:"owner" yaml:"owner"`
	Featured    bool     `json:"featured" yaml:"featured"`
	CreatedAt   string   `json:"createdAt" yaml:"createdAt"`
}

// Category groups related advertising space subtypes.
type Category struct {
	Key      string
	Name     string
	Subtypes []string
}

var categories = []Category{
	{Key: "high-traffic-outdoor", Name: "High-Traffic Outdoor", Subtypes: []string{"Billboards", "Bus Shelters", "Benches", "Utility Poles", "Murals", "Rooftops", "Parking Lots", "Gas Stations", "EV Chargers", "Construction Fences", "Scaffolding Wraps", "Mobile Billboards"}},
	{Key: "vehicles-transportation", Name: "Vehicles & Transportation", Subtypes: []string{"Car Wraps", "Taxis", "Rideshares", "Buses", "Trains", "Bikes/Pedicabs", "Scooters", "Delivery Trucks"}},
	{Key: "retail-consumer", Name: "Retail & Consumer Spaces", Subtypes: []string{"Grocery Stores", "Malls", "Store Windows", "Floor Decals", "Vending Machines", "ATMs"}},
	{Key: "business-professional", Name: "Business & Professional", Subtypes: []string{"Office Lobbies", "Elevator Screens", "Coworking Spaces", "Trade Shows", "Break Rooms"}},
	{Key: "education-community", Name: "Education & Community", Subtypes: []string{"Universities", "High Schools", "Libraries", "Community Centers", "Dorms"}},
	{Key: "entertainment-leisure", Name: "Entertainment & Leisure", Subtypes: []string{"Movie Theaters", "Museums", "Arcades", "Nightclubs", "Bowling Alleys"}},
	{Key: "sports-recreation", Name: "Sports & Recreation", Subtypes: []string{"Stadiums", "Gyms", "Yoga Studios", "Golf Courses"}},
	{Key: "travel-hospitality", Name: "Travel & Hospitality", Subtypes: []string{"Airports", "Airplanes", "Hotels", "Resorts", "Cruise Ships"}},
	{Key: "public-transportation", Name: "Public Transportation Facilities", Subtypes: []string{"Train Stations", "Bus Terminals", "Subway Platforms"}},
	{Key: "health-wellness", Name: "Health & Wellness", Subtypes: []string{"Hospitals", "Clinics", "Pharmacies", "Dental/Optometry Offices"}},
	{Key: "food-beverage", Name: "Food & Beverage", Subtypes: []string{"Cafes", "Restaurants", "Bars", "Food Trucks"}},
	{Key: "residential-spaces", Name: "Residential Spaces", Subtypes: []string{"Yard Signs", "Mailboxes", "Apartment Bulletin Boards", "Package Lockers"}},
	{Key: "creative-unconventional", Name: "Creative / Unconventional", Subtypes: []string{"Drones", "Skywriting", "Balloons", "Chalk Murals", "Flags", "Pop-up Booths"}},
}

// PriceUnits lists the billing periods a listing can be priced by.
var PriceUnits = []string{"day", "week", "month", "campaign"}

// Currencies lists the supported ISO currency codes.
var Currencies = []string{"ZAR", "USD", "EUR", "GBP", "CAD", "AUD"}

// Categories returns the category vocabulary in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		c.Subtypes = slices.Clone(c.Subtypes)
		out[i] = c
	}
	return out
}

// CategoryByKey looks up a category by its key.
func CategoryByKey(key string) (Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			c.Subtypes = slices.Clone(c.Subtypes)
			return c, true
		}
	}
	return Category{}, false
}

// CategoryOptions returns select options keyed by category key.
func CategoryOptions() []model.Option {
	out := make([]model.Option, 0, len(categories))
	for _, c := range categories {
		out = append(out, model.Option{Value: c.Key, Label: c.Name})
	}
	return out
}

// SubcategoryOptions returns the subtypes of category, or every subtype when
// category is empty or unknown.
func SubcategoryOptions(category string) []model.Option {
	if c, ok := CategoryByKey(category); ok {
		return model.OptionsFromValues(c.Subtypes...)
	}
	seen := make(map[string]struct{})
	out := make([]model.Option, 0, 64)
	for _, c := range categories {
		for _, sub := range c.Subtypes {
			if _, dup := seen[sub]; dup {
				continue
			}
			seen[sub] = struct{}{}
			out = append(out, model.Option{Value: sub, Label: sub})
		}
	}
	return out
}

// PriceUnitOptions labels each unit "per <unit>".
func PriceUnitOptions() []model.Option {
	out := make([]model.Option, 0, len(PriceUnits))
	for _, unit := range PriceUnits {
		out = append(out, model.Option{Value: unit, Label: "per " + unit})
	}
	return out
}
