//go:build unit

package policy_test

import (
	"testing"
	"time"

	"hotelier/internal/domain/policy"
	"hotelier/internal/domain/stay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flexRules = `{
	"windows": [
		{"days_before": 3, "refund_percent": 50},
		{"days_before": 7, "refund_percent": 100}
	],
	"after_check_in_percent": 0
}`

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	t.Run("normalizes windows to descending notice", func(t *testing.T) {
		p, err := policy.Parse([]byte(flexRules))
		require.NoError(t, err)
		require.Len(t, p.Windows, 2)
		assert.Equal(t, 7, p.Windows[0].DaysBefore)
		assert.Equal(t, 3, p.Windows[1].DaysBefore)
	})

	t.Run("rejects malformed and out-of-range rules", func(t *testing.T) {
		cases := []string{
			`not json`,
			`{"windows": [{"days_before": -1, "refund_percent": 50}]}`,
			`{"windows": [{"days_before": 3, "refund_percent": 101}]}`,
			`{"windows": [], "after_check_in_percent": 150}`,
		}
		for _, raw := range cases {
			_, err := policy.Parse([]byte(raw))
			require.ErrorIs(t, err, policy.ErrInvalidRules, raw)
		}
	})
}

func TestRefundPercent(t *testing.T) {
	p, err := policy.Parse([]byte(flexRules))
	require.NoError(t, err)
	checkIn := date(2026, 3, 10)

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"well before the strictest window", date(2026, 3, 1), 100},
		{"exactly at the generous boundary", date(2026, 3, 3), 100},
		{"inside the partial window", date(2026, 3, 6), 50},
		{"exactly at the partial boundary", date(2026, 3, 7), 50},
		{"too late for any window", date(2026, 3, 9), 0},
		{"on check-in day", date(2026, 3, 10), 0},
		{"after check-in", date(2026, 3, 11), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, p.RefundPercent(c.now, checkIn))
		})
	}

	t.Run("time of day does not change the notice calculation", func(t *testing.T) {
		lateEvening := time.Date(2026, 3, 3, 23, 45, 0, 0, time.UTC)
		assert.Equal(t, 100, p.RefundPercent(lateEvening, checkIn))
	})
}

func TestRefundAmount(t *testing.T) {
	p, err := policy.Parse([]byte(`{
		"windows": [{"days_before": 3, "refund_percent": 33}],
		"after_check_in_percent": 0
	}`))
	require.NoError(t, err)

	// 33% of 10001 = 3300.33, truncated in the house's favor
	refund := p.RefundAmount(stay.NewMoney(10001, "USD"), date(2026, 3, 5), date(2026, 3, 10))
	assert.Equal(t, int64(3300), refund.Cents())
	assert.Equal(t, "USD", refund.Currency())
}

func TestNonRefundable(t *testing.T) {
	p := policy.NonRefundable()
	assert.Equal(t, 0, p.RefundPercent(date(2026, 1, 1), date(2026, 3, 10)))
	assert.Equal(t, int64(0), p.RefundAmount(stay.NewMoney(50000, "USD"), date(2026, 1, 1), date(2026, 3, 10)).Cents())
}
