package stay

type Status string

const (
	StatusHold       Status = "hold"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusHold, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// ConsumesInventory reports whether a reservation in this status holds its
// rooms against availability. Holds do not consume inventory; confirmation
// is the consumption point. Checked-out stays keep their historical nights.
func (s Status) ConsumesInventory() bool {
	switch s {
	case StatusConfirmed, StatusCheckedIn, StatusCheckedOut:
		return true
	default:
		return false
	}
}

// CanTransitionTo encodes the lifecycle:
// hold -> confirmed -> checked_in -> checked_out, with cancellation allowed
// from hold and confirmed.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusHold:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCheckedIn || target == StatusCancelled
	case StatusCheckedIn:
		return target == StatusCheckedOut
	default:
		return false
	}
}
