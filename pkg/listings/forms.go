package listings

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-stepform/pkg/model"
	"github.com/goliatone/go-stepform/pkg/validators"
)

// Form identifiers of the built-in marketplace forms.
const (
	CreateListingFormID = "create-listing"
	ContactOwnerFormID  = "contact-owner"
)

// BasicsComponent names the custom body of the first create-listing step.
// Renderers that register it can narrow the subcategory choices to the
// selected category.
const BasicsComponent = "listing-basics"

// ContactFailureMessage is shown when delivering a contact message fails.
const ContactFailureMessage = "Failed to send message. Please try again."

// CreateListingSteps returns the five steps of the create-listing wizard.
func CreateListingSteps() []model.Step {
	zero := 0.0
	nonNegative := validators.NumberRange(&zero, nil, "Must be zero or more")

	basics := model.NewStep("basic-info", "Basic Info",
		model.Text("title", "Space Title", model.Required(),
			model.WithPlaceholder("e.g., Premium Downtown Billboard")),
		model.Select("category", "Category", CategoryOptions(), model.Required()),
		model.Select("subcategory", "Subcategory", SubcategoryOptions(""), model.Required(),
			model.WithValidator(subcategoryMatchesCategory)),
		model.Textarea("description", "Description", model.Required(), model.WithRows(4),
			model.WithPlaceholder("Describe your advertising space, including unique features, visibility, and any special requirements...")),
	)
	basics.Description = "Basic Information"
	basics.Component = BasicsComponent

	location := model.NewStep("location", "Location",
		model.Text("address", "Address", model.Required(), model.WithPlaceholder("Full street address")),
		model.Text("city", "City", model.Required()),
		model.Text("state", "State/Province", model.Required()),
		model.Text("country", "Country", model.Required()),
	)
	location.Description = "Location Details"

	metrics := model.NewStep("metrics", "Metrics",
		model.NumberField("footTraffic", "Daily Foot Traffic", model.WithMin(0),
			model.WithPlaceholder("e.g., 50000"), model.WithValidator(nonNegative)),
		model.NumberField("vehicleTraffic", "Daily Vehicle Traffic", model.WithMin(0),
			model.WithPlaceholder("e.g., 20000"), model.WithValidator(nonNegative)),
		model.NumberField("dwellTime", "Average Dwell Time (seconds)", model.WithMin(0),
			model.WithPlaceholder("e.g., 30"), model.WithValidator(nonNegative)),
		model.Textarea("visibilityNotes", "Visibility Notes", model.WithRows(3),
			model.WithPlaceholder("Additional notes about visibility, lighting, angles, etc.")),
	)
	metrics.Description = "Visibility Metrics"

	pricing := model.NewStep("pricing", "Pricing",
		model.NumberField("priceAmount", "Price Amount", model.Required(),
			model.WithMin(0), model.WithStep(0.01), model.WithPlaceholder("0.00"),
			model.WithValidator(validators.NumberRange(&zero, nil, "Price Amount cannot be negative"))),
		model.Select("priceUnit", "Price Unit", PriceUnitOptions(), model.Required()),
		model.Select("currency", "Currency", model.OptionsFromValues(Currencies...), model.Required()),
	)
	pricing.Description = "Pricing Information"

	contact := model.NewStep("contact", "Contact",
		model.Text("ownerName", "Your Name", model.Required()),
		model.Email("ownerEmail", "Email Address", model.Required(),
			model.WithValidator(validators.Email("Email Address is invalid"))),
		model.Tel("ownerPhone", "Phone Number", model.Required()),
		model.Text("companyName", "Company Name", model.WithHelpText("Optional")),
	)
	contact.Description = "Contact Information"

	return []model.Step{basics, location, metrics, pricing, contact}
}

// CreateListingForm wraps CreateListingSteps with the defaults the wizard
// starts from.
func CreateListingForm() model.Form {
	return model.Form{
		ID:          CreateListingFormID,
		Title:       "List Your Advertising Space",
		SubmitLabel: "Create Listing",
		Steps:       CreateListingSteps(),
		Initial: model.Record{
			"priceUnit": model.String("day"),
			"currency":  model.String("USD"),
		},
	}
}

// ContactOwnerSteps returns the single-step contact form addressed to owner.
func ContactOwnerSteps(owner Owner) []model.Step {
	placeholder := "Please provide details about your inquiry..."
	if name := strings.TrimSpace(owner.Name); name != "" {
		placeholder = fmt.Sprintf("Hi %s, I'm interested in learning more about your advertising space...", name)
	}

	step := model.NewStep("message", "Message",
		model.Text("name", "Name", model.Required(), model.WithPlaceholder("Enter your full name")),
		model.Email("email", "Email", model.Required(),
			model.WithPlaceholder("your.email@example.com"),
			model.WithValidator(validators.Email("Email is invalid"))),
		model.Tel("phone", "Phone", model.WithPlaceholder("+1 (555) 123-4567")),
		model.Text("subject", "Subject", model.WithPlaceholder("Brief subject of your inquiry")),
		model.Textarea("message", "Message", model.Required(), model.WithRows(6),
			model.WithPlaceholder(placeholder),
			model.WithValidator(validators.MinLength(10, "Message must be at least 10 characters long")),
			model.WithValidator(validators.MaxLength(1000, "Message must be at most 1000 characters long"))),
	)
	if owner.Name != "" {
		step.Title = "Contact " + owner.Name
	}
	return []model.Step{step}
}

// ContactOwnerForm wraps ContactOwnerSteps.
func ContactOwnerForm(owner Owner) model.Form {
	title := "Contact Us"
	if owner.Name != "" {
		title = "Contact " + owner.Name
	}
	return model.Form{
		ID:          ContactOwnerFormID,
		Title:       title,
		SubmitLabel: "Send Message",
		Steps:       ContactOwnerSteps(owner),
	}
}

func subcategoryMatchesCategory(value model.Value, record model.Record) string {
	category := record.Get("category")
	if value.IsBlank() || category.IsBlank() {
		return ""
	}
	c, ok := CategoryByKey(category.Text())
	if !ok {
		return ""
	}
	if !slices.Contains(c.Subtypes, value.Text()) {
		return fmt.Sprintf("Subcategory is not part of %s", c.Name)
	}
	return ""
}
