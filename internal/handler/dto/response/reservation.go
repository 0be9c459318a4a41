package response

import (
	"time"

	"github.com/google/uuid"

	"hotelier/internal/domain/stay"
	"hotelier/internal/usecase/queries"
)

type NightlyRateResponse struct {
	Night      string `json:"night"`
	PriceCents int64  `json:"priceCents"`
	Currency   string `json:"currency"`
}

type RoomLineResponse struct {
	ID             uuid.UUID             `json:"id"`
	RoomTypeID     uuid.UUID             `json:"roomTypeId"`
	RatePlanID     uuid.UUID             `json:"ratePlanId"`
	AssignedRoomID *uuid.UUID            `json:"assignedRoomId,omitempty"`
	Adults         int                   `json:"adults"`
	Children       int                   `json:"children"`
	NightlyRates   []NightlyRateResponse `json:"nightlyRates,omitempty"`
}

type ReservationResponse struct {
	ID         uuid.UUID          `json:"id"`
	PropertyID uuid.UUID          `json:"propertyId"`
	GuestID    uuid.UUID          `json:"guestId"`
	Status     string             `json:"status"`
	CheckIn    string             `json:"checkIn"`
	CheckOut   string             `json:"checkOut"`
	Lines      []RoomLineResponse `json:"lines"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

type CreateReservationResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	lines := make([]RoomLineResponse, 0, len(rm.Lines))
	for _, l := range rm.Lines {
		rates := make([]NightlyRateResponse, 0, len(l.NightlyRates))
		for _, r := range l.NightlyRates {
			rates = append(rates, NightlyRateResponse{
				Night:      r.Night.Format(stay.DateLayout),
				PriceCents: r.PriceCents,
				Currency:   r.Currency,
			})
		}
		lines = append(lines, RoomLineResponse{
			ID:             l.ID,
			RoomTypeID:     l.RoomTypeID,
			RatePlanID:     l.RatePlanID,
			AssignedRoomID: l.AssignedRoomID,
			Adults:         l.Adults,
			Children:       l.Children,
			NightlyRates:   rates,
		})
	}
	return &ReservationResponse{
		ID:         rm.ID,
		PropertyID: rm.PropertyID,
		GuestID:    rm.GuestID,
		Status:     rm.Status,
		CheckIn:    rm.CheckIn.Format(stay.DateLayout),
		CheckOut:   rm.CheckOut.Format(stay.DateLayout),
		Lines:      lines,
		CreatedAt:  rm.CreatedAt,
		UpdatedAt:  rm.UpdatedAt,
	}
}

type DayAvailabilityResponse struct {
	Night      string `json:"night"`
	TotalRooms int    `json:"totalRooms"`
	Reserved   int    `json:"reserved"`
	Available  int    `json:"available"`
}

type AvailabilityResponse struct {
	Days []DayAvailabilityResponse `json:"days"`
}

func FromAvailability(days []queries.DayAvailabilityView) *AvailabilityResponse {
	out := make([]DayAvailabilityResponse, 0, len(days))
	for _, d := range days {
		out = append(out, DayAvailabilityResponse{
			Night:      d.Night.Format(stay.DateLayout),
			TotalRooms: d.TotalRooms,
			Reserved:   d.Reserved,
			Available:  d.Available,
		})
	}
	return &AvailabilityResponse{Days: out}
}
