package stay

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCapacityExceeded       = errors.New("guest count exceeds room type capacity")
	ErrNoRoomLines            = errors.New("reservation needs at least one room line")
	ErrInvalidStateTransition = errors.New("invalid state transition")
)

// RoomTypeSpec is the write-side snapshot of a room type's capacity limits.
type RoomTypeSpec struct {
	ID           uuid.UUID
	Code         string
	MaxAdults    int
	MaxChildren  int
	MaxOccupancy int
}

func (s RoomTypeSpec) Admits(g GuestCount) bool {
	if g.Adults < 1 || g.Children < 0 {
		return false
	}
	return g.Adults <= s.MaxAdults && g.Children <= s.MaxChildren && g.Total() <= s.MaxOccupancy
}

// NightlyRate is one priced night stored on a room line at confirmation.
type NightlyRate struct {
	Night time.Time
	Price Money
}

// RoomLine is one requested room of a given type. AssignedRoomID stays nil
// while the reservation is a hold and is bound by allocation at confirmation.
type RoomLine struct {
	id              uuid.UUID
	roomTypeID      uuid.UUID
	ratePlanID      uuid.UUID
	assignedRoomID  *uuid.UUID
	requestedRoomID *uuid.UUID
	guests          GuestCount
	rates           []NightlyRate
}

func NewRoomLine(roomTypeID, ratePlanID uuid.UUID, guests GuestCount, requestedRoomID *uuid.UUID) RoomLine {
	return RoomLine{
		id:              uuid.New(),
		roomTypeID:      roomTypeID,
		ratePlanID:      ratePlanID,
		guests:          guests,
		requestedRoomID: requestedRoomID,
	}
}

func ReconstructRoomLine(
	id, roomTypeID, ratePlanID uuid.UUID,
	assignedRoomID, requestedRoomID *uuid.UUID,
	guests GuestCount,
	rates []NightlyRate,
) RoomLine {
	return RoomLine{
		id:              id,
		roomTypeID:      roomTypeID,
		ratePlanID:      ratePlanID,
		assignedRoomID:  assignedRoomID,
		requestedRoomID: requestedRoomID,
		guests:          guests,
		rates:           rates,
	}
}

func (l *RoomLine) ID() uuid.UUID              { return l.id }
func (l *RoomLine) RoomTypeID() uuid.UUID      { return l.roomTypeID }
func (l *RoomLine) RatePlanID() uuid.UUID      { return l.ratePlanID }
func (l *RoomLine) AssignedRoomID() *uuid.UUID { return l.assignedRoomID }
func (l *RoomLine) RequestedRoomID() *uuid.UUID {
	return l.requestedRoomID
}
func (l *RoomLine) Guests() GuestCount   { return l.guests }
func (l *RoomLine) Rates() []NightlyRate { return l.rates }

func (l *RoomLine) AssignRoom(roomID uuid.UUID) {
	id := roomID
	l.assignedRoomID = &id
}

func (l *RoomLine) SetRates(rates []NightlyRate) {
	l.rates = rates
}

// Subtotal sums the line's nightly rates. Valid only after pricing.
func (l *RoomLine) Subtotal() (Money, error) {
	if len(l.rates) == 0 {
		return Money{}, errors.New("room line has no rates")
	}
	total := l.rates[0].Price
	var err error
	for _, r := range l.rates[1:] {
		if total, err = total.Add(r.Price); err != nil {
			return Money{}, err
		}
	}
	return total, nil
}

// Reservation is the booking aggregate: a guest's stay at a property with
// one or more room lines.
type Reservation struct {
	id         uuid.UUID
	propertyID uuid.UUID
	guestID    uuid.UUID
	stayRange  StayRange
	status     Status
	lines      []RoomLine
	createdAt  time.Time
	updatedAt  time.Time
}

// NewReservation creates a hold. Capacity is validated against the room
// type specs here; availability is the allocator's concern at confirmation.
func NewReservation(
	propertyID, guestID uuid.UUID,
	r StayRange,
	lines []RoomLine,
	specs map[uuid.UUID]RoomTypeSpec,
	now time.Time,
) (*Reservation, error) {
	if len(lines) == 0 {
		return nil, ErrNoRoomLines
	}
	for _, line := range lines {
		spec, ok := specs[line.roomTypeID]
		if !ok {
			return nil, errors.New("unknown room type on room line")
		}
		if !spec.Admits(line.guests) {
			return nil, ErrCapacityExceeded
		}
	}
	return &Reservation{
		id:         uuid.New(),
		propertyID: propertyID,
		guestID:    guestID,
		stayRange:  r,
		status:     StatusHold,
		lines:      lines,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructReservation(
	id, propertyID, guestID uuid.UUID,
	r StayRange,
	status Status,
	lines []RoomLine,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		propertyID: propertyID,
		guestID:    guestID,
		stayRange:  r,
		status:     status,
		lines:      lines,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) PropertyID() uuid.UUID { return r.propertyID }
func (r *Reservation) GuestID() uuid.UUID    { return r.guestID }
func (r *Reservation) StayRange() StayRange  { return r.stayRange }
func (r *Reservation) Status() Status        { return r.status }
func (r *Reservation) Lines() []RoomLine     { return r.lines }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time  { return r.updatedAt }

func (r *Reservation) Line(id uuid.UUID) *RoomLine {
	for i := range r.lines {
		if r.lines[i].id == id {
			return &r.lines[i]
		}
	}
	return nil
}

// LinesOfType counts requested rooms per room type, the quantity the
// allocator must find free rooms for.
func (r *Reservation) LinesOfType(roomTypeID uuid.UUID) []*RoomLine {
	var out []*RoomLine
	for i := range r.lines {
		if r.lines[i].roomTypeID == roomTypeID {
			out = append(out, &r.lines[i])
		}
	}
	return out
}

func (r *Reservation) TransitionTo(target Status, now time.Time) error {
	if !target.IsValid() {
		return ErrInvalidStateTransition
	}
	if !r.status.CanTransitionTo(target) {
		return ErrInvalidStateTransition
	}
	r.status = target
	r.updatedAt = now
	return nil
}

// FullyAssigned reports whether every room line has a bound room.
func (r *Reservation) FullyAssigned() bool {
	for i := range r.lines {
		if r.lines[i].assignedRoomID == nil {
			return false
		}
	}
	return true
}
