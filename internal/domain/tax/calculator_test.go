//go:build unit

package tax_test

import (
	"testing"

	"hotelier/internal/domain/stay"
	"hotelier/internal/domain/tax"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(name string, value float64) tax.Fee {
	return tax.Fee{
		Name:      name,
		Kind:      tax.KindPercentage,
		Value:     decimal.NewFromFloat(value),
		AppliesTo: tax.ScopeAll,
		Active:    true,
	}
}

func TestApply(t *testing.T) {
	subtotal := stay.NewMoney(27000, "USD")

	t.Run("percentage of the subtotal", func(t *testing.T) {
		lines := tax.Apply([]tax.Fee{pct("occupancy tax", 10)}, tax.CategoryRoom, subtotal, 2)
		require.Len(t, lines, 1)
		assert.Equal(t, "occupancy tax", lines[0].Name)
		assert.Equal(t, tax.KindPercentage, lines[0].Kind)
		assert.Equal(t, int64(2700), lines[0].Amount.Cents())
		assert.Equal(t, "USD", lines[0].Amount.Currency())
	})

	t.Run("fractional cents round half up", func(t *testing.T) {
		// 8.25% of 10101 = 833.3325 -> 833; 8.25% of 10110 = 834.075 -> 834
		lines := tax.Apply([]tax.Fee{pct("sales tax", 8.25)}, tax.CategoryRoom, stay.NewMoney(10101, "USD"), 1)
		require.Len(t, lines, 1)
		assert.Equal(t, int64(833), lines[0].Amount.Cents())

		// exactly half a cent: 10% of 27005 = 2700.5 -> 2701
		lines = tax.Apply([]tax.Fee{pct("occupancy tax", 10)}, tax.CategoryRoom, stay.NewMoney(27005, "USD"), 1)
		require.Len(t, lines, 1)
		assert.Equal(t, int64(2701), lines[0].Amount.Cents())
	})

	t.Run("flat fee once per stay by default, per night when flagged", func(t *testing.T) {
		resort := tax.Fee{Name: "resort fee", Kind: tax.KindFlat, Value: decimal.NewFromInt(2500), AppliesTo: tax.ScopeAll, Active: true}
		lines := tax.Apply([]tax.Fee{resort}, tax.CategoryRoom, subtotal, 3)
		require.Len(t, lines, 1)
		assert.Equal(t, tax.KindFlat, lines[0].Kind)
		assert.Equal(t, int64(2500), lines[0].Amount.Cents())

		resort.PerNight = true
		lines = tax.Apply([]tax.Fee{resort}, tax.CategoryRoom, subtotal, 3)
		require.Len(t, lines, 1)
		assert.Equal(t, int64(7500), lines[0].Amount.Cents())
	})

	t.Run("inactive fees and mismatched scopes are skipped", func(t *testing.T) {
		inactive := pct("old tax", 5)
		inactive.Active = false
		parking := tax.Fee{Name: "parking fee", Kind: tax.KindFlat, Value: decimal.NewFromInt(1500), AppliesTo: "parking", Active: true}

		lines := tax.Apply([]tax.Fee{inactive, parking, pct("occupancy tax", 10)}, tax.CategoryRoom, subtotal, 2)
		require.Len(t, lines, 1)
		assert.Equal(t, "occupancy tax", lines[0].Name)
	})

	t.Run("output is ordered by fee name", func(t *testing.T) {
		fees := []tax.Fee{
			pct("vat", 20),
			{Name: "city levy", Kind: tax.KindFlat, Value: decimal.NewFromInt(500), AppliesTo: tax.CategoryRoom, Active: true},
			pct("occupancy tax", 10),
		}
		lines := tax.Apply(fees, tax.CategoryRoom, subtotal, 2)
		require.Len(t, lines, 3)
		assert.Equal(t, "city levy", lines[0].Name)
		assert.Equal(t, "occupancy tax", lines[1].Name)
		assert.Equal(t, "vat", lines[2].Name)
	})

	t.Run("no applicable fees yields no lines", func(t *testing.T) {
		assert.Empty(t, tax.Apply(nil, tax.CategoryRoom, subtotal, 2))
	})
}
