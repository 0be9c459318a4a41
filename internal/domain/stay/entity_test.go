//go:build unit

package stay_test

import (
	"testing"
	"time"

	"hotelier/internal/domain/stay"
	"hotelier/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capacityCase struct {
	name   string
	mutate func(*builder.ReservationBuilder)
	errIs  error
}

func TestNewReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, res)

		assert.NotEqual(t, uuid.Nil, res.ID())
		assert.Equal(t, stay.StatusHold, res.Status())
		assert.False(t, res.FullyAssigned())
		require.Len(t, res.Lines(), 1)
		assert.Nil(t, res.Lines()[0].AssignedRoomID())
	})

	t.Run("capacity validation", func(t *testing.T) {
		cases := []capacityCase{
			{
				name:   "exactly at adult limit",
				mutate: func(b *builder.ReservationBuilder) { b.WithGuests(2, 0) },
			},
			{
				name:   "too many adults",
				mutate: func(b *builder.ReservationBuilder) { b.WithGuests(3, 0) },
				errIs:  stay.ErrCapacityExceeded,
			},
			{
				name:   "too many children",
				mutate: func(b *builder.ReservationBuilder) { b.WithGuests(1, 3) },
				errIs:  stay.ErrCapacityExceeded,
			},
			{
				name: "within per-type limits but over total occupancy",
				mutate: func(b *builder.ReservationBuilder) {
					b.WithCapacity(3, 3, 4).WithGuests(3, 2)
				},
				errIs: stay.ErrCapacityExceeded,
			},
			{
				name:   "zero adults",
				mutate: func(b *builder.ReservationBuilder) { b.WithGuests(0, 1) },
				errIs:  stay.ErrCapacityExceeded,
			},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				res, err := builder.NewReservationBuilder().With(c.mutate).BuildDomain()
				if c.errIs == nil {
					require.NoError(t, err)
					require.NotNil(t, res)
				} else {
					require.Nil(t, res)
					require.ErrorIs(t, err, c.errIs)
				}
			})
		}
	})
}

func TestReservationTransitions(t *testing.T) {
	now := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

	t.Run("full lifecycle", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, res.TransitionTo(stay.StatusConfirmed, now))
		require.NoError(t, res.TransitionTo(stay.StatusCheckedIn, now.Add(time.Hour)))
		require.NoError(t, res.TransitionTo(stay.StatusCheckedOut, now.Add(2*time.Hour)))
		assert.Equal(t, stay.StatusCheckedOut, res.Status())
	})

	t.Run("skipping confirmation is rejected", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		err = res.TransitionTo(stay.StatusCheckedIn, now)
		require.ErrorIs(t, err, stay.ErrInvalidStateTransition)
		assert.Equal(t, stay.StatusHold, res.Status())
	})

	t.Run("terminal states reject everything", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, res.TransitionTo(stay.StatusCancelled, now))

		for _, target := range []stay.Status{stay.StatusHold, stay.StatusConfirmed, stay.StatusCheckedIn, stay.StatusCheckedOut} {
			require.ErrorIs(t, res.TransitionTo(target, now), stay.ErrInvalidStateTransition)
		}
	})
}

func TestRoomLineAssignment(t *testing.T) {
	res, err := builder.NewReservationBuilder().BuildDomain()
	require.NoError(t, err)
	require.False(t, res.FullyAssigned())

	roomID := uuid.New()
	lines := res.Lines()
	lines[0].AssignRoom(roomID)

	require.True(t, res.FullyAssigned())
	require.NotNil(t, res.Lines()[0].AssignedRoomID())
	assert.Equal(t, roomID, *res.Lines()[0].AssignedRoomID())
}

func TestRoomLineSubtotal(t *testing.T) {
	res, err := builder.NewReservationBuilder().BuildDomain()
	require.NoError(t, err)
	lines := res.Lines()

	_, err = lines[0].Subtotal()
	require.Error(t, err, "subtotal before pricing must fail")

	lines[0].SetRates([]stay.NightlyRate{
		{Night: date(2026, 3, 10), Price: stay.NewMoney(15000, "USD")},
		{Night: date(2026, 3, 11), Price: stay.NewMoney(12000, "USD")},
	})
	subtotal, err := lines[0].Subtotal()
	require.NoError(t, err)
	assert.Equal(t, int64(27000), subtotal.Cents())
	assert.Equal(t, "USD", subtotal.Currency())
}
