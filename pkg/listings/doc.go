// Package listings holds the advertising-space marketplace domain: listing
// types, the category/price-unit/currency vocabularies, the built-in step
// forms for creating a listing and contacting an owner, and an in-memory
// catalog with the browse filter.
//
// The sample catalog is embedded from data/listings.yaml and loaded lazily by
// DefaultCatalog.
package listings
