package listings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-stepform/pkg/engine"
	"github.com/goliatone/go-stepform/pkg/model"
)

func TestCategoriesVocabulary(t *testing.T) {
	cats := Categories()
	if len(cats) != 13 {
		t.Fatalf("expected 13 categories, got %d", len(cats))
	}
	cats[0].Subtypes[0] = "mutated"
	if c, _ := CategoryByKey("high-traffic-outdoor"); c.Subtypes[0] != "Billboards" {
		t.Fatalf("Categories must return a copy")
	}
	if diff := cmp.Diff([]string{"day", "week", "month", "campaign"}, PriceUnits); diff != "" {
		t.Fatalf("price units (-want +got):\n%s", diff)
	}
	if got := SubcategoryOptions("sports-recreation"); len(got) != 4 || got[0].Value != "Stadiums" {
		t.Fatalf("unexpected subcategories %+v", got)
	}
}

func TestBuiltinFormsAreWellFormed(t *testing.T) {
	for _, form := range []model.Form{CreateListingForm(), ContactOwnerForm(Owner{Name: "Sarah Chen"})} {
		if err := model.CheckSteps(form.Steps); err != nil {
			t.Fatalf("%s: %v", form.ID, err)
		}
	}
	steps := CreateListingSteps()
	titles := make([]string, 0, len(steps))
	for _, s := range steps {
		titles = append(titles, s.Title)
	}
	if diff := cmp.Diff([]string{"Basic Info", "Location", "Metrics", "Pricing", "Contact"}, titles); diff != "" {
		t.Fatalf("step titles (-want +got):\n%s", diff)
	}
}

func TestContactOwnerForm_Rules(t *testing.T) {
	e, err := engine.New(ContactOwnerSteps(Owner{Name: "Sarah Chen"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if e.ValidateStep(0) {
		t.Fatalf("empty contact form must not validate")
	}
	want := map[string]string{
		"name":    "Name is required",
		"email":   "Email is required",
		"message": "Message is required",
	}
	if diff := cmp.Diff(want, e.Errors()); diff != "" {
		t.Fatalf("errors (-want +got):\n%s", diff)
	}

	_ = e.SetField("name", model.String("Ann"))
	_ = e.SetField("email", model.String("ann@example"))
	_ = e.SetField("message", model.String("  too short "))
	e.ValidateStep(0)
	want = map[string]string{
		"email":   "Email is invalid",
		"message": "Message must be at least 10 characters long",
	}
	if diff := cmp.Diff(want, e.Errors()); diff != "" {
		t.Fatalf("errors (-want +got):\n%s", diff)
	}

	if p := ContactOwnerSteps(Owner{Name: "Sarah Chen"})[0].Fields[4].Placeholder; !strings.HasPrefix(p, "Hi Sarah Chen,") {
		t.Fatalf("unexpected placeholder %q", p)
	}
}

func completeListingRecord() model.Record {
	return model.Record{
		"title":          model.String("Rooftop Screen"),
		"category":       model.String("high-traffic-outdoor"),
		"subcategory":    model.String("Rooftops"),
		"description":    model.String("Large LED screen on a rooftop"),
		"address":        model.String("1 Main Rd"),
		"city":           model.String("Durban"),
		"state":          model.String("KZN"),
		"country":        model.String("SA"),
		"footTraffic":    model.String("1200"),
		"vehicleTraffic": model.String(""),
		"dwellTime":      model.Number(12),
		"priceAmount":    model.String("99.50"),
		"priceUnit":      model.String("week"),
		"currency":       model.String("ZAR"),
		"ownerName":      model.String("Lee"),
		"ownerEmail":     model.String("lee@example.com"),
		"ownerPhone":     model.String("+27 11 000 0000"),
	}
}

func TestCreateListingWizard_EndToEnd(t *testing.T) {
	var got model.Record
	form := CreateListingForm()
	e, err := engine.New(form.Steps,
		engine.WithInitialData(form.Initial),
		engine.WithOnComplete(func(_ context.Context, r model.Record) error {
			got = r
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	record := completeListingRecord()
	_ = e.SetField("category", model.String("retail-consumer"))
	_ = e.SetField("subcategory", model.String("Rooftops"))
	if e.Advance() {
		t.Fatalf("mismatched subcategory must block the first step")
	}
	if msg := e.ErrorFor("subcategory"); msg != "Subcategory is not part of Retail & Consumer Spaces" {
		t.Fatalf("unexpected subcategory error %q", msg)
	}

	for _, step := range form.Steps {
		for _, name := range step.FieldNames() {
			if v, ok := record[name]; ok {
				if err := e.SetField(name, v); err != nil {
					t.Fatalf("set %s: %v", name, err)
				}
			}
		}
		if !e.IsLastStep() && !e.Advance() {
			t.Fatalf("step %s did not advance: %v", step.ID, e.Errors())
		}
	}
	ok, err := e.Submit(context.Background())
	if err != nil || !ok {
		t.Fatalf("submit: ok=%v err=%v errors=%v", ok, err, e.Errors())
	}

	listing, err := FromRecord("", got)
	if err != nil {
		t.Fatalf("from record: %v", err)
	}
	want := Metrics{FootTraffic: 1200, VehicleTraffic: 0, DwellTime: 12}
	if diff := cmp.Diff(want, listing.Metrics); diff != "" {
		t.Fatalf("metrics (-want +got):\n%s", diff)
	}
	if listing.Pricing != (Pricing{Amount: 99.5, Unit: "week", Currency: "ZAR"}) {
		t.Fatalf("unexpected pricing %+v", listing.Pricing)
	}
}

func TestFromRecord_Incomplete(t *testing.T) {
	record := completeListingRecord()
	delete(record, "city")
	if _, err := FromRecord("x", record); !errors.Is(err, ErrIncompleteRecord) {
		t.Fatalf("expected ErrIncompleteRecord, got %v", err)
	}
	record = completeListingRecord()
	for _, raw := range []string{"free", "NaN", "Inf", "-Inf"} {
		record["priceAmount"] = model.String(raw)
		if _, err := FromRecord("x", record); err == nil {
			t.Fatalf("expected invalid price error for %q", raw)
		}
	}
}

func TestCreateListingPricing_RejectsNonFiniteAmount(t *testing.T) {
	var pricing model.Step
	for _, step := range CreateListingSteps() {
		if step.ID == "pricing" {
			pricing = step
		}
	}
	field, ok := pricing.FieldByName("priceAmount")
	if !ok {
		t.Fatalf("pricing step has no priceAmount field")
	}
	for _, raw := range []string{"NaN", "Inf"} {
		if msg := field.Validate(model.String(raw), nil); msg != "Must be a number" {
			t.Fatalf("priceAmount %q: unexpected message %q", raw, msg)
		}
	}
	if msg := field.Validate(model.Number(250), nil); msg != "" {
		t.Fatalf("expected valid amount, got %q", msg)
	}
}

func TestFilterMatch(t *testing.T) {
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}

	ids := func(ls []Listing) []string {
		out := make([]string, 0, len(ls))
		for _, l := range ls {
			out = append(out, l.ID)
		}
		return out
	}

	cases := []struct {
		name   string
		filter func(f *Filter)
		want   []string
	}{
		{name: "defaults keep everything", filter: func(*Filter) {}, want: []string{"1", "2", "3", "4"}},
		{name: "query matches title case-insensitively", filter: func(f *Filter) { f.Query = "BUS shelter" }, want: []string{"2"}},
		{name: "query matches description", filter: func(f *Filter) { f.Query = "supermarket" }, want: []string{"4"}},
		{name: "category", filter: func(f *Filter) { f.Category = "high-traffic-outdoor" }, want: []string{"1", "2"}},
		{name: "all category", filter: func(f *Filter) { f.Category = "all" }, want: []string{"1", "2", "3", "4"}},
		{name: "inclusive price range", filter: func(f *Filter) { f.MinPrice, f.MaxPrice = 800, 1200 }, want: []string{"2", "3"}},
		{name: "no match", filter: func(f *Filter) { f.Query = "drone" }, want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := DefaultFilter()
			tc.filter(&f)
			if diff := cmp.Diff(tc.want, ids(catalog.Search(f))); diff != "" {
				t.Fatalf("ids (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterZeroValueIsUnbounded(t *testing.T) {
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if got, want := len(catalog.Search(Filter{})), catalog.Len(); got != want {
		t.Fatalf("zero filter matched %d of %d listings", got, want)
	}
	got := catalog.Search(Filter{Query: "supermarket"})
	if len(got) != 1 || got[0].ID != "4" {
		t.Fatalf("expected query-only filter to find listing 4, got %+v", got)
	}
	if got := catalog.Search(Filter{MinPrice: 100000}); len(got) != 0 {
		t.Fatalf("expected min bound to apply without a max, got %d listings", len(got))
	}
}

func TestCatalogAdd(t *testing.T) {
	fixed := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	catalog, err := DefaultCatalog(WithClock(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if got := len(catalog.Featured()); got != 3 {
		t.Fatalf("expected 3 featured listings, got %d", got)
	}

	stored, err := catalog.Add(Listing{Title: "New"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if stored.ID != "5" || stored.CreatedAt != "2026-03-04" {
		t.Fatalf("unexpected stored listing %+v", stored)
	}
	if _, err := catalog.Add(Listing{ID: "5"}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if l, ok := catalog.Get("1"); !ok || l.Pricing.Currency != "ZAR" || l.Owner.Phone != "+27-84-555-0123" {
		t.Fatalf("unexpected seed listing %+v", l)
	}

	fresh, _ := DefaultCatalog()
	if fresh.Len() != 4 {
		t.Fatalf("default catalog must not share state, got %d listings", fresh.Len())
	}
}
