package request

import (
	"time"

	"github.com/google/uuid"

	"hotelier/internal/usecase/commands"
)

type RoomLineRequest struct {
	RoomTypeID      uuid.UUID  `json:"room_type_id" binding:"required"`
	RatePlanID      uuid.UUID  `json:"rate_plan_id" binding:"required"`
	Adults          int        `json:"adults" binding:"required,min=1"`
	Children        int        `json:"children" binding:"min=0"`
	RequestedRoomID *uuid.UUID `json:"requested_room_id,omitempty"`
}

type CreateReservationRequest struct {
	PropertyID uuid.UUID         `json:"property_id" binding:"required"`
	GuestID    uuid.UUID         `json:"guest_id" binding:"required"`
	CheckIn    time.Time         `json:"check_in" binding:"required"`
	CheckOut   time.Time         `json:"check_out" binding:"required"`
	Lines      []RoomLineRequest `json:"lines" binding:"required,min=1,dive"`
}

func (r CreateReservationRequest) ToInput() commands.CreateReservationInput {
	lines := make([]commands.RoomLineInput, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, commands.RoomLineInput{
			RoomTypeID:      l.RoomTypeID,
			RatePlanID:      l.RatePlanID,
			Adults:          l.Adults,
			Children:        l.Children,
			RequestedRoomID: l.RequestedRoomID,
		})
	}
	return commands.CreateReservationInput{
		PropertyID: r.PropertyID,
		GuestID:    r.GuestID,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		Lines:      lines,
	}
}

type TransitionRequest struct {
	Target        string `json:"target" binding:"required"`
	SettleBalance bool   `json:"settle_balance"`
}

type AvailabilityRequest struct {
	RoomTypeID uuid.UUID `form:"room_type_id" binding:"required"`
	From       string    `form:"from" binding:"required"`
	To         string    `form:"to" binding:"required"`
}
