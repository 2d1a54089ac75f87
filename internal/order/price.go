package order

import (
	"github.com/shopspring/decimal"

	"github.com/Speed10x/premiumSMM/internal/catalog"
)

var thousand = decimal.NewFromInt(1000)

// ComputePrice applies the single pricing rule: unit price times quantity,
// scaled down by 1000 for per-thousand services, rounded half-up to 2
// decimal places.
func ComputePrice(entry catalog.Entry, quantity int) decimal.Decimal {
	price := entry.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	if entry.Basis == catalog.PerThousand {
		price = price.Div(thousand)
	}
	return price.Round(2)
}
