// Package policy is the structured representation of a cancellation
// policy's rules: refund percentages keyed by how many days of notice the
// guest gives before check-in.
package policy

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"hotelier/internal/domain/stay"
)

var ErrInvalidRules = errors.New("invalid cancellation policy rules")

type Window struct {
	DaysBefore    int `json:"days_before"`
	RefundPercent int `json:"refund_percent"`
}

type Policy struct {
	Windows             []Window `json:"windows"`
	AfterCheckInPercent int      `json:"after_check_in_percent"`
}

// Parse decodes the rules JSON stored on a cancellation_policies row.
// Windows are normalized to descending days_before order.
func Parse(raw []byte) (Policy, error) {
	var p Policy
	if err := json.Unmarshal(raw, &p); err != nil {
		return Policy{}, ErrInvalidRules
	}
	for _, w := range p.Windows {
		if w.DaysBefore < 0 || w.RefundPercent < 0 || w.RefundPercent > 100 {
			return Policy{}, ErrInvalidRules
		}
	}
	if p.AfterCheckInPercent < 0 || p.AfterCheckInPercent > 100 {
		return Policy{}, ErrInvalidRules
	}
	sort.Slice(p.Windows, func(i, j int) bool { return p.Windows[i].DaysBefore > p.Windows[j].DaysBefore })
	return p, nil
}

// RefundPercent evaluates the policy at cancellation time. Notice is the
// number of whole days between now and check-in; the most generous window
// whose days_before the notice still meets applies.
func (p Policy) RefundPercent(now, checkIn time.Time) int {
	noticeDays := int(stay.Date(checkIn).Sub(stay.Date(now)).Hours() / 24)
	if noticeDays < 0 {
		return p.AfterCheckInPercent
	}
	for _, w := range p.Windows {
		if noticeDays >= w.DaysBefore {
			return w.RefundPercent
		}
	}
	return 0
}

// RefundAmount applies the percentage to an amount in minor units,
// truncating in the house's favor.
func (p Policy) RefundAmount(paid stay.Money, now, checkIn time.Time) stay.Money {
	percent := p.RefundPercent(now, checkIn)
	return stay.NewMoney(paid.Cents()*int64(percent)/100, paid.Currency())
}

// NonRefundable is the policy attached to non-refundable rate plans.
func NonRefundable() Policy {
	return Policy{}
}
