// Package catalog holds the static price chart: platform -> service -> unit price.
// The chart never mutates at runtime; it is loaded once at bootstrap from the
// built-in table, a YAML file, or Postgres.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// UnitBasis determines how quantity scales the unit price.
type UnitBasis string

const (
	// PerThousand prices cover 1000 units of the service.
	PerThousand UnitBasis = "per_thousand"
	// PerUnit prices cover a single unit of the service.
	PerUnit UnitBasis = "per_unit"
)

// ParseUnitBasis maps a stored basis string onto a UnitBasis value.
func ParseUnitBasis(raw string) (UnitBasis, error) {
	switch UnitBasis(strings.ToLower(strings.TrimSpace(raw))) {
	case PerThousand:
		return PerThousand, nil
	case PerUnit:
		return PerUnit, nil
	}
	return "", fmt.Errorf("unknown unit basis %q", raw)
}

// Entry is a single priced service offered on a platform.
type Entry struct {
	Platform  string
	Service   string
	UnitPrice decimal.Decimal
	Basis     UnitBasis
}

// Catalog is an immutable lookup over price chart entries.
type Catalog struct {
	platforms []string
	services  map[string][]string
	entries   map[string]Entry
}

func key(platform, service string) string {
	return platform + "\x00" + service
}

// New builds a catalog from entries. Duplicate (platform, service) pairs
// and non-positive prices are rejected so lookup stays total.
func New(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog: no entries")
	}
	c := &Catalog{
		services: make(map[string][]string),
		entries:  make(map[string]Entry, len(entries)),
	}
	for _, e := range entries {
		e.Platform = strings.TrimSpace(e.Platform)
		e.Service = strings.TrimSpace(e.Service)
		if e.Platform == "" || e.Service == "" {
			return nil, fmt.Errorf("catalog: entry with empty platform or service")
		}
		if e.Basis != PerThousand && e.Basis != PerUnit {
			return nil, fmt.Errorf("catalog: %s/%s: invalid unit basis %q", e.Platform, e.Service, e.Basis)
		}
		if !e.UnitPrice.IsPositive() {
			return nil, fmt.Errorf("catalog: %s/%s: unit price must be positive", e.Platform, e.Service)
		}
		k := key(e.Platform, e.Service)
		if _, dup := c.entries[k]; dup {
			return nil, fmt.Errorf("catalog: duplicate entry %s/%s", e.Platform, e.Service)
		}
		if _, seen := c.services[e.Platform]; !seen {
			c.platforms = append(c.platforms, e.Platform)
		}
		c.entries[k] = e
		c.services[e.Platform] = append(c.services[e.Platform], e.Service)
	}
	sort.Strings(c.platforms)
	for _, svcs := range c.services {
		sort.Strings(svcs)
	}
	return c, nil
}

// Platforms returns the offered platforms in stable order.
func (c *Catalog) Platforms() []string {
	return append([]string(nil), c.platforms...)
}

// Services returns the services offered on a platform in stable order.
func (c *Catalog) Services(platform string) []string {
	return append([]string(nil), c.services[platform]...)
}

// HasPlatform reports whether the platform is offered.
func (c *Catalog) HasPlatform(platform string) bool {
	_, ok := c.services[platform]
	return ok
}

// Lookup returns the entry for a (platform, service) pair.
func (c *Catalog) Lookup(platform, service string) (Entry, bool) {
	e, ok := c.entries[key(platform, service)]
	return e, ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
