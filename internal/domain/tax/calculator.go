// Package tax applies a property's active tax and fee definitions to a
// priced subtotal.
package tax

import (
	"sort"

	"github.com/shopspring/decimal"

	"hotelier/internal/domain/stay"
)

type Kind string

const (
	KindPercentage Kind = "percentage"
	KindFlat       Kind = "flat"
)

// ScopeAll matches every applies-to category.
const ScopeAll = "*"

// CategoryRoom is the applies-to category of room charges.
const CategoryRoom = "room"

// Fee is the read snapshot of a tax_fees row. Value is a percentage for
// KindPercentage (10 means 10%) and minor units for KindFlat.
type Fee struct {
	Name      string
	Kind      Kind
	Value     decimal.Decimal
	AppliesTo string
	PerNight  bool
	Active    bool
}

func (f Fee) appliesTo(category string) bool {
	return f.AppliesTo == ScopeAll || f.AppliesTo == category
}

type Line struct {
	Name   string
	Kind   Kind
	Amount stay.Money
}

// Apply computes the tax/fee lines for a subtotal. Percentage amounts round
// half-up to the currency's minor units so repeated runs are deterministic.
// Flat fees apply once per stay unless marked per-night. Output is ordered
// by fee name to keep folio presentation stable.
func Apply(fees []Fee, category string, subtotal stay.Money, nights int) []Line {
	var lines []Line
	for _, f := range fees {
		if !f.Active || !f.appliesTo(category) {
			continue
		}
		var cents int64
		switch f.Kind {
		case KindPercentage:
			cents = decimal.NewFromInt(subtotal.Cents()).
				Mul(f.Value).
				Div(decimal.NewFromInt(100)).
				Round(0).
				IntPart()
		case KindFlat:
			cents = f.Value.Round(0).IntPart()
			if f.PerNight {
				cents *= int64(nights)
			}
		default:
			continue
		}
		lines = append(lines, Line{Name: f.Name, Kind: f.Kind, Amount: stay.NewMoney(cents, subtotal.Currency())})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Name < lines[j].Name })
	return lines
}
