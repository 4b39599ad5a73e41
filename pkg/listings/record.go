package listings

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-stepform/pkg/model"
)

// ErrIncompleteRecord is returned when a create-listing record misses a
// required value.
var ErrIncompleteRecord = errors.New("listings: incomplete record")

// FromRecord converts a completed create-listing record into a Listing.
// CreatedAt is left empty; Catalog.Add stamps it.
func FromRecord(id string, record model.Record) (Listing, error) {
	text := func(name string) string {
		return strings.TrimSpace(record.Get(name).Text())
	}

	for _, name := range []string{"title", "category", "subcategory", "description", "address", "city", "state", "country", "priceAmount", "ownerName", "ownerEmail", "ownerPhone"} {
		if record.Get(name).IsBlank() {
			return Listing{}, fmt.Errorf("%w: %s is missing", ErrIncompleteRecord, name)
		}
	}

	amount, ok := record.Get("priceAmount").Float()
	if !ok || amount < 0 {
		return Listing{}, fmt.Errorf("listings: invalid price amount %q", text("priceAmount"))
	}

	metrics := Metrics{Notes: text("visibilityNotes")}
	for name, dst := range map[string]*int{
		"footTraffic":    &metrics.FootTraffic,
		"vehicleTraffic": &metrics.VehicleTraffic,
		"dwellTime":      &metrics.DwellTime,
	} {
		n, err := optionalCount(record.Get(name))
		if err != nil {
			return Listing{}, fmt.Errorf("listings: %s: %w", name, err)
		}
		*dst = n
	}

	unit := text("priceUnit")
	if unit == "" {
		unit = PriceUnits[0]
	}
	currency := text("currency")
	if currency == "" {
		currency = "USD"
	}

	return Listing{
		ID:          id,
		Title:       text("title"),
		Category:    text("category"),
		Subcategory: text("subcategory"),
		Description: text("description"),
		Location: Location{
			Address: text("address"),
			City:    text("city"),
			State:   text("state"),
			Country: text("country"),
		},
		Metrics: metrics,
		Pricing: Pricing{
			Amount:   amount,
			Unit:     unit,
			Currency: currency,
		},
		Owner: Owner{
			Name:    text("ownerName"),
			Email:   text("ownerEmail"),
			Phone:   text("ownerPhone"),
			Company: text("companyName"),
		},
	}, nil
}

func optionalCount(v model.Value) (int, error) {
	if v.IsBlank() {
		return 0, nil
	}
	f, ok := v.Float()
	if !ok || f < 0 {
		return 0, fmt.Errorf("invalid count %q", v.Text())
	}
	return int(math.Round(f)), nil
}
