// Package catalog loads the card product matrix and answers offering lookups.
package catalog

import (
	"log/slog"
	"sync/atomic"
)

// Offering is one bank-and-country product entry with display attributes.
// Attributes is a flexible string bag; only the keys listed in format.go
// are ever rendered to users.
type Offering struct {
	Bank       string
	Country    string
	Attributes map[string]string
}

// snapshot is an immutable view of one loaded dataset. A load always builds a
// fresh snapshot and swaps it in whole, so readers never observe a partial
// catalog.
type snapshot struct {
	byCountry map[string][]Offering
	countries []string
	total     int
}

func emptySnapshot() *snapshot {
	return &snapshot{byCountry: make(map[string][]Offering)}
}

// Catalog indexes offerings by country. It is safe for concurrent use: reads
// go through an atomically swapped snapshot and loads replace it wholesale.
type Catalog struct {
	log  *slog.Logger
	snap atomic.Pointer[snapshot]
}

// New creates an empty Catalog.
func New(log *slog.Logger) *Catalog {
	if log == nil {
		log = slog.Default()
	}

	c := &Catalog{log: log}
	c.snap.Store(emptySnapshot())
	return c
}

// Countries returns the distinct country names in dataset column order.
func (c *Catalog) Countries() []string {
	snap := c.snap.Load()

	out := make([]string, len(snap.countries))
	copy(out, snap.countries)
	return out
}

// Offerings returns every offering available in the given country.
func (c *Catalog) Offerings(country string) []Offering {
	snap := c.snap.Load()

	list := snap.byCountry[country]
	out := make([]Offering, len(list))
	copy(out, list)
	return out
}

// Banks returns the de-duplicated bank names offered in the given country,
// preserving dataset order.
func (c *Catalog) Banks(country string) []string {
	snap := c.snap.Load()

	seen := make(map[string]struct{})
	var banks []string
	for _, off := range snap.byCountry[country] {
		if _, ok := seen[off.Bank]; ok {
			continue
		}
		seen[off.Bank] = struct{}{}
		banks = append(banks, off.Bank)
	}

	return banks
}

// Find returns the first offering matching the country and bank pair.
func (c *Catalog) Find(country, bank string) (Offering, bool) {
	snap := c.snap.Load()

	for _, off := range snap.byCountry[country] {
		if off.Bank == bank {
			return off, true
		}
	}

	return Offering{}, false
}

// Size returns the total number of loaded offerings.
func (c *Catalog) Size() int {
	return c.snap.Load().total
}

// Empty reports whether no offerings are loaded.
func (c *Catalog) Empty() bool {
	return c.Size() == 0
}
