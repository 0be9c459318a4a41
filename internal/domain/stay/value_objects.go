package stay

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidStayRange = errors.New("check-out must be after check-in")
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

const DateLayout = "2006-01-02"

// Date normalizes a timestamp to a calendar date (midnight UTC). All stay
// arithmetic works on calendar dates without time-of-day.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// StayRange is a half-open interval of nights: check-in inclusive,
// check-out exclusive.
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	in, out := Date(checkIn), Date(checkOut)
	if !out.After(in) {
		return StayRange{}, ErrInvalidStayRange
	}
	return StayRange{checkIn: in, checkOut: out}, nil
}

func (r StayRange) CheckIn() time.Time  { return r.checkIn }
func (r StayRange) CheckOut() time.Time { return r.checkOut }

func (r StayRange) Nights() int {
	return int(r.checkOut.Sub(r.checkIn).Hours() / 24)
}

// EachNight returns the occupied nights in calendar order.
func (r StayRange) EachNight() []time.Time {
	nights := make([]time.Time, 0, r.Nights())
	for d := r.checkIn; d.Before(r.checkOut); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

func (r StayRange) Covers(night time.Time) bool {
	n := Date(night)
	return !n.Before(r.checkIn) && n.Before(r.checkOut)
}

func (r StayRange) Overlaps(other StayRange) bool {
	return r.checkIn.Before(other.checkOut) && other.checkIn.Before(r.checkOut)
}

func (r StayRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.checkIn.Format(DateLayout), r.checkOut.Format(DateLayout))
}

// Money is an amount in a currency's minor units (cents for USD/EUR).
type Money struct {
	cents    int64
	currency string
}

func NewMoney(cents int64, currency string) Money {
	return Money{cents: cents, currency: currency}
}

func (m Money) Cents() int64     { return m.cents }
func (m Money) Currency() string { return m.currency }
func (m Money) IsZero() bool     { return m.cents == 0 }
func (m Money) IsNegative() bool { return m.cents < 0 }

func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{cents: m.cents + other.cents, currency: m.currency}, nil
}

func (m Money) Neg() Money {
	return Money{cents: -m.cents, currency: m.currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.cents, m.currency)
}

// GuestCount is the requested occupancy for one room line.
type GuestCount struct {
	Adults   int
	Children int
}

func (g GuestCount) Total() int {
	return g.Adults + g.Children
}
