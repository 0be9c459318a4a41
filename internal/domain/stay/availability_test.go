//go:build unit

package stay_test

import (
	"testing"
	"time"

	"hotelier/internal/domain/stay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, in, out time.Time) stay.StayRange {
	t.Helper()
	r, err := stay.NewStayRange(in, out)
	require.NoError(t, err)
	return r
}

func TestComputeAvailability(t *testing.T) {
	query := func(t *testing.T) stay.StayRange {
		return mustRange(t, date(2026, 3, 10), date(2026, 3, 13))
	}

	t.Run("no occupancy leaves every night fully available", func(t *testing.T) {
		days, err := stay.ComputeAvailability(5, nil, query(t))
		require.NoError(t, err)
		require.Len(t, days, 3)
		for _, d := range days {
			assert.Equal(t, 5, d.TotalRooms)
			assert.Equal(t, 0, d.Reserved)
			assert.Equal(t, 5, d.Available)
		}
	})

	t.Run("overlapping stays reduce only the nights they cover", func(t *testing.T) {
		occupied := []stay.StayRange{
			mustRange(t, date(2026, 3, 9), date(2026, 3, 11)),  // covers night 10 only
			mustRange(t, date(2026, 3, 11), date(2026, 3, 14)), // covers nights 11, 12
			mustRange(t, date(2026, 3, 12), date(2026, 3, 13)), // covers night 12
		}
		days, err := stay.ComputeAvailability(3, occupied, query(t))
		require.NoError(t, err)
		require.Len(t, days, 3)

		assert.Equal(t, 1, days[0].Reserved)
		assert.Equal(t, 2, days[0].Available)
		assert.Equal(t, 1, days[1].Reserved)
		assert.Equal(t, 2, days[1].Available)
		assert.Equal(t, 2, days[2].Reserved)
		assert.Equal(t, 1, days[2].Available)
	})

	t.Run("a stay ending on the query start does not count", func(t *testing.T) {
		occupied := []stay.StayRange{
			mustRange(t, date(2026, 3, 8), date(2026, 3, 10)),
		}
		days, err := stay.ComputeAvailability(1, occupied, query(t))
		require.NoError(t, err)
		for _, d := range days {
			assert.Equal(t, 0, d.Reserved)
		}
	})

	t.Run("oversell surfaces as an invariant error, never clamped", func(t *testing.T) {
		occupied := []stay.StayRange{
			mustRange(t, date(2026, 3, 10), date(2026, 3, 11)),
			mustRange(t, date(2026, 3, 10), date(2026, 3, 11)),
		}
		_, err := stay.ComputeAvailability(1, occupied, query(t))
		require.ErrorIs(t, err, stay.ErrInventoryInvariant)
	})

	t.Run("zero rooms yields zero availability without error", func(t *testing.T) {
		days, err := stay.ComputeAvailability(0, nil, query(t))
		require.NoError(t, err)
		for _, d := range days {
			assert.Equal(t, 0, d.Available)
		}
	})
}

func TestFirstShortfall(t *testing.T) {
	r := mustRange(t, date(2026, 3, 10), date(2026, 3, 13))
	occupied := []stay.StayRange{
		mustRange(t, date(2026, 3, 11), date(2026, 3, 12)),
	}
	days, err := stay.ComputeAvailability(2, occupied, r)
	require.NoError(t, err)

	assert.Nil(t, stay.FirstShortfall(days, 1))

	short := stay.FirstShortfall(days, 2)
	require.NotNil(t, short)
	assert.Equal(t, date(2026, 3, 11), short.Night)
	assert.Equal(t, 1, short.Available)
}
