package catalog

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type yamlEntry struct {
	Platform  string `yaml:"platform"`
	Service   string `yaml:"service"`
	UnitPrice string `yaml:"unit_price"`
	UnitBasis string `yaml:"unit_basis"`
}

type yamlChart struct {
	Entries []yamlEntry `yaml:"entries"`
}

// LoadFile reads a price chart from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var chart yamlChart
	if err := yaml.Unmarshal(data, &chart); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(chart.Entries))
	for i, raw := range chart.Entries {
		basis, err := ParseUnitBasis(raw.UnitBasis)
		if err != nil {
			return nil, fmt.Errorf("catalog: entry %d: %w", i, err)
		}
		unitPrice, err := decimal.NewFromString(raw.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("catalog: entry %d: bad unit_price %q: %w", i, raw.UnitPrice, err)
		}
		entries = append(entries, Entry{
			Platform:  raw.Platform,
			Service:   raw.Service,
			UnitPrice: unitPrice,
			Basis:     basis,
		})
	}
	return New(entries)
}
