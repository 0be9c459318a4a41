// Package pricing resolves the nightly price of a (rate plan, room type)
// pair over a stay: a dated override wins, otherwise the plan's undated
// base price for the room type applies.
package pricing

import (
	"errors"
	"fmt"
	"time"

	"hotelier/internal/domain/stay"
)

var (
	ErrPricingUnavailable = errors.New("no price configured")
	ErrCurrencyMismatch   = errors.New("price currency differs from property currency")
)

// Override is a date-specific RatePlanPrice row.
type Override struct {
	Night    time.Time
	Cents    int64
	Currency string
}

// BasePrice is the rate plan's undated fallback for a room type.
type BasePrice struct {
	Cents    int64
	Currency string
}

// Quote prices every night of the stay in calendar order. The result length
// equals the number of nights (check-out exclusive). Every resolved price
// must be in the property's currency.
func Quote(r stay.StayRange, overrides []Override, base *BasePrice, propertyCurrency string) ([]stay.NightlyRate, error) {
	byNight := make(map[time.Time]Override, len(overrides))
	for _, o := range overrides {
		byNight[stay.Date(o.Night)] = o
	}

	rates := make([]stay.NightlyRate, 0, r.Nights())
	for _, night := range r.EachNight() {
		if o, ok := byNight[night]; ok {
			if o.Currency != propertyCurrency {
				return nil, fmt.Errorf("%w: override for %s is %s, property uses %s",
					ErrCurrencyMismatch, night.Format(stay.DateLayout), o.Currency, propertyCurrency)
			}
			rates = append(rates, stay.NightlyRate{Night: night, Price: stay.NewMoney(o.Cents, o.Currency)})
			continue
		}
		if base != nil {
			if base.Currency != propertyCurrency {
				return nil, fmt.Errorf("%w: base price is %s, property uses %s",
					ErrCurrencyMismatch, base.Currency, propertyCurrency)
			}
			rates = append(rates, stay.NightlyRate{Night: night, Price: stay.NewMoney(base.Cents, base.Currency)})
			continue
		}
		return nil, fmt.Errorf("%w for %s", ErrPricingUnavailable, night.Format(stay.DateLayout))
	}
	return rates, nil
}
