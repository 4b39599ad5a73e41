package listings

import (
	"embed"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed data/listings.yaml
var dataFS embed.FS

const defaultCatalogPath = "data/listings.yaml"

// Catalog is an in-memory listing store. It is safe for concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	listings []Listing
	byID     map[string]int
	now      func() time.Time
	nextID   int
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithClock overrides the clock used to stamp new listings.
func WithClock(now func() time.Time) CatalogOption {
	return func(c *Catalog) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCatalog builds a catalog seeded with listings. Duplicate IDs are rejected.
func NewCatalog(seed []Listing, opts ...CatalogOption) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	for _, l := range seed {
		if _, err := c.Add(l); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadCatalog decodes a YAML list of listings.
func LoadCatalog(r io.Reader, opts ...CatalogOption) (*Catalog, error) {
	if r == nil {
		return nil, fmt.Errorf("listings: missing reader")
	}
	var doc struct {
		Listings []Listing `yaml:"listings"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("listings: decode catalog: %w", err)
	}
	return NewCatalog(doc.Listings, opts...)
}

var (
	defaultOnce     sync.Once
	defaultListings []Listing
	defaultErr      error
)

// DefaultCatalog returns a fresh catalog seeded with the embedded sample
// listings.
func DefaultCatalog(opts ...CatalogOption) (*Catalog, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultCatalogPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		c, err := LoadCatalog(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultListings = c.All()
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return NewCatalog(defaultListings, opts...)
}

// Add stores l. An empty ID is assigned the next numeric ID and an empty
// CreatedAt is stamped with the catalog clock. The stored listing is returned.
func (c *Catalog) Add(l Listing) (Listing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l.ID == "" {
		for {
			c.nextID++
			candidate := strconv.Itoa(c.nextID)
			if _, taken := c.byID[candidate]; !taken {
				l.ID = candidate
				break
			}
		}
	} else if n, err := strconv.Atoi(l.ID); err == nil && n > c.nextID {
		c.nextID = n
	}
	if _, exists := c.byID[l.ID]; exists {
		return Listing{}, fmt.Errorf("listings: duplicate listing id %q", l.ID)
	}
	if l.CreatedAt == "" {
		l.CreatedAt = c.now().Format(time.DateOnly)
	}
	c.byID[l.ID] = len(c.listings)
	c.listings = append(c.listings, l)
	return l, nil
}

// Get returns the listing with id.
func (c *Catalog) Get(id string) (Listing, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.byID[id]
	if !ok {
		return Listing{}, false
	}
	return c.listings[idx], true
}

// All returns every listing in insertion order.
func (c *Catalog) All() []Listing {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Listing(nil), c.listings...)
}

// Featured returns the featured listings in insertion order.
func (c *Catalog) Featured() []Listing {
	out := make([]Listing, 0)
	for _, l := range c.All() {
		if l.Featured {
			out = append(out, l)
		}
	}
	return out
}

// Search filters the catalog.
func (c *Catalog) Search(f Filter) []Listing {
	return Search(c.All(), f)
}

// Len reports the number of stored listings.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.listings)
}
