//go:build unit || e2e

package builder

import (
	"time"

	"github.com/google/uuid"

	"hotelier/internal/domain/stay"
	reqdto "hotelier/internal/handler/dto/request"
	"hotelier/internal/usecase/queries"
)

// ReservationBuilder assembles a valid two-night, one-line hold and lets
// tests mutate it toward the edge they care about.
type ReservationBuilder struct {
	propertyID   uuid.UUID
	guestID      uuid.UUID
	checkIn      time.Time
	checkOut     time.Time
	adults       int
	children     int
	roomTypeID   uuid.UUID
	ratePlanID   uuid.UUID
	requested    *uuid.UUID
	maxAdults    int
	maxChildren  int
	maxOccupancy int
	now          time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		propertyID:   uuid.New(),
		guestID:      uuid.New(),
		checkIn:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		checkOut:     time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		adults:       2,
		children:     0,
		roomTypeID:   uuid.New(),
		ratePlanID:   uuid.New(),
		maxAdults:    2,
		maxChildren:  2,
		maxOccupancy: 4,
		now:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *ReservationBuilder) WithStay(checkIn, checkOut time.Time) *ReservationBuilder {
	b.checkIn, b.checkOut = checkIn, checkOut
	return b
}

func (b *ReservationBuilder) WithGuests(adults, children int) *ReservationBuilder {
	b.adults, b.children = adults, children
	return b
}

func (b *ReservationBuilder) WithCapacity(maxAdults, maxChildren, maxOccupancy int) *ReservationBuilder {
	b.maxAdults, b.maxChildren, b.maxOccupancy = maxAdults, maxChildren, maxOccupancy
	return b
}

func (b *ReservationBuilder) WithRequestedRoom(roomID uuid.UUID) *ReservationBuilder {
	b.requested = &roomID
	return b
}

func (b *ReservationBuilder) Specs() map[uuid.UUID]stay.RoomTypeSpec {
	return map[uuid.UUID]stay.RoomTypeSpec{
		b.roomTypeID: {
			ID:           b.roomTypeID,
			Code:         "DLX",
			MaxAdults:    b.maxAdults,
			MaxChildren:  b.maxChildren,
			MaxOccupancy: b.maxOccupancy,
		},
	}
}

func (b *ReservationBuilder) BuildDomain() (*stay.Reservation, error) {
	sr, err := stay.NewStayRange(b.checkIn, b.checkOut)
	if err != nil {
		return nil, err
	}
	lines := []stay.RoomLine{
		stay.NewRoomLine(b.roomTypeID, b.ratePlanID, stay.GuestCount{Adults: b.adults, Children: b.children}, b.requested),
	}
	return stay.NewReservation(b.propertyID, b.guestID, sr, lines, b.Specs(), b.now)
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		PropertyID: b.propertyID,
		GuestID:    b.guestID,
		CheckIn:    b.checkIn,
		CheckOut:   b.checkOut,
		Lines: []reqdto.RoomLineRequest{
			{
				RoomTypeID:      b.roomTypeID,
				RatePlanID:      b.ratePlanID,
				Adults:          b.adults,
				Children:        b.children,
				RequestedRoomID: b.requested,
			},
		},
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:         uuid.New(),
		PropertyID: b.propertyID,
		GuestID:    b.guestID,
		Status:     stay.StatusHold.String(),
		CheckIn:    stay.Date(b.checkIn),
		CheckOut:   stay.Date(b.checkOut),
		Lines: []queries.RoomLineView{
			{
				ID:         uuid.New(),
				RoomTypeID: b.roomTypeID,
				RatePlanID: b.ratePlanID,
				Adults:     b.adults,
				Children:   b.children,
			},
		},
		CreatedAt: b.now,
		UpdatedAt: b.now,
	}
}
