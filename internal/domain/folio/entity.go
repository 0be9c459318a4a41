// Package folio is the guest's running bill: an append-only ledger of
// charges, payments and refunds for one reservation.
package folio

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"hotelier/internal/domain/stay"
)

var (
	ErrRefundExceedsPayment = errors.New("refund exceeds remaining payment amount")
	ErrNotAPayment          = errors.New("refund target is not a payment item")
	ErrItemVoided           = errors.New("item is voided")
	ErrItemNotFound         = errors.New("folio item not found")
	ErrPostedOutOfOrder     = errors.New("posting would break posted_at ordering")
)

type ItemKind string

const (
	KindRoomCharge ItemKind = "room_charge"
	KindTax        ItemKind = "tax"
	KindFee        ItemKind = "fee"
	KindPayment    ItemKind = "payment"
	KindRefund     ItemKind = "refund"
	KindAdjustment ItemKind = "adjustment"
)

func (k ItemKind) IsValid() bool {
	switch k {
	case KindRoomCharge, KindTax, KindFee, KindPayment, KindRefund, KindAdjustment:
		return true
	default:
		return false
	}
}

// IsCredit reports whether items of this kind reduce the balance. Credit
// amounts are stored negative; charges positive.
func (k ItemKind) IsCredit() bool {
	return k == KindPayment || k == KindRefund
}

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Item is one ledger posting. Voiding tombstones an item; it never leaves
// the history.
type Item struct {
	id            uuid.UUID
	kind          ItemKind
	description   string
	amount        stay.Money
	postedAt      time.Time
	voidedAt      *time.Time
	paymentItemID *uuid.UUID // set on refund items
}

func NewItem(kind ItemKind, description string, amount stay.Money, postedAt time.Time) Item {
	return Item{
		id:          uuid.New(),
		kind:        kind,
		description: description,
		amount:      amount,
		postedAt:    postedAt,
	}
}

func ReconstructItem(
	id uuid.UUID,
	kind ItemKind,
	description string,
	amount stay.Money,
	postedAt time.Time,
	voidedAt *time.Time,
	paymentItemID *uuid.UUID,
) Item {
	return Item{
		id:            id,
		kind:          kind,
		description:   description,
		amount:        amount,
		postedAt:      postedAt,
		voidedAt:      voidedAt,
		paymentItemID: paymentItemID,
	}
}

func (i Item) ID() uuid.UUID             { return i.id }
func (i Item) Kind() ItemKind            { return i.kind }
func (i Item) Description() string       { return i.description }
func (i Item) Amount() stay.Money        { return i.amount }
func (i Item) PostedAt() time.Time       { return i.postedAt }
func (i Item) VoidedAt() *time.Time      { return i.voidedAt }
func (i Item) PaymentItemID() *uuid.UUID { return i.paymentItemID }
func (i Item) IsVoided() bool            { return i.voidedAt != nil }

type Folio struct {
	id            uuid.UUID
	reservationID uuid.UUID
	status        Status
	currency      string
	items         []Item
}

func NewFolio(reservationID uuid.UUID, currency string) *Folio {
	return &Folio{
		id:            uuid.New(),
		reservationID: reservationID,
		status:        StatusOpen,
		currency:      currency,
	}
}

func ReconstructFolio(id, reservationID uuid.UUID, status Status, currency string, items []Item) *Folio {
	return &Folio{
		id:            id,
		reservationID: reservationID,
		status:        status,
		currency:      currency,
		items:         items,
	}
}

func (f *Folio) ID() uuid.UUID            { return f.id }
func (f *Folio) ReservationID() uuid.UUID { return f.reservationID }
func (f *Folio) Status() Status           { return f.status }
func (f *Folio) Currency() string         { return f.currency }

// Items returns the full posting history, voided items included, in
// posted_at order.
func (f *Folio) Items() []Item { return f.items }

func (f *Folio) Item(id uuid.UUID) *Item {
	for i := range f.items {
		if f.items[i].id == id {
			return &f.items[i]
		}
	}
	return nil
}

// Post appends an item. postedAt must not precede the last posting; the
// ledger is never reordered.
func (f *Folio) Post(item Item) error {
	if !item.kind.IsValid() {
		return errors.New("invalid folio item kind")
	}
	if item.amount.Currency() != f.currency {
		return stay.ErrCurrencyMismatch
	}
	if n := len(f.items); n > 0 && item.postedAt.Before(f.items[n-1].postedAt) {
		return ErrPostedOutOfOrder
	}
	f.items = append(f.items, item)
	return nil
}

// Balance recomputes the running balance from the non-voided history every
// time. There is no cached total to drift.
func (f *Folio) Balance() stay.Money {
	var cents int64
	for i := range f.items {
		if f.items[i].IsVoided() {
			continue
		}
		cents += f.items[i].amount.Cents()
	}
	return stay.NewMoney(cents, f.currency)
}

// Void tombstones an item. It stays in the history and audit reads but is
// excluded from Balance.
func (f *Folio) Void(itemID uuid.UUID, now time.Time) error {
	item := f.Item(itemID)
	if item == nil {
		return ErrItemNotFound
	}
	if item.IsVoided() {
		return ErrItemVoided
	}
	t := now
	item.voidedAt = &t
	return nil
}

// RefundableCents is the payment's remaining refundable amount: its
// magnitude minus all prior non-voided refunds posted against it.
func (f *Folio) RefundableCents(paymentItemID uuid.UUID) (int64, error) {
	payment := f.Item(paymentItemID)
	if payment == nil {
		return 0, ErrItemNotFound
	}
	if payment.kind != KindPayment {
		return 0, ErrNotAPayment
	}
	if payment.IsVoided() {
		return 0, ErrItemVoided
	}
	remaining := -payment.amount.Cents() // payments are stored negative
	for i := range f.items {
		it := &f.items[i]
		if it.kind != KindRefund || it.IsVoided() || it.paymentItemID == nil || *it.paymentItemID != paymentItemID {
			continue
		}
		remaining += it.amount.Cents() // refunds are stored negative too
	}
	return remaining, nil
}

// Refund posts a refund item against a payment, bounded by the payment
// amount minus prior non-voided refunds against it. amountCents is the
// positive amount returned to the guest; the item is stored negative like
// payments.
func (f *Folio) Refund(paymentItemID uuid.UUID, amountCents int64, description string, now time.Time) (*Item, error) {
	if amountCents <= 0 {
		return nil, errors.New("refund amount must be positive")
	}
	remaining, err := f.RefundableCents(paymentItemID)
	if err != nil {
		return nil, err
	}
	if amountCents > remaining {
		return nil, ErrRefundExceedsPayment
	}
	item := NewItem(KindRefund, description, stay.NewMoney(-amountCents, f.currency), now)
	pid := paymentItemID
	item.paymentItemID = &pid
	if err := f.Post(item); err != nil {
		return nil, err
	}
	return &f.items[len(f.items)-1], nil
}

// PaymentItems returns non-voided payments in posting order, used by
// cancellation to spread a refund across payments.
func (f *Folio) PaymentItems() []Item {
	var out []Item
	for i := range f.items {
		if f.items[i].kind == KindPayment && !f.items[i].IsVoided() {
			out = append(out, f.items[i])
		}
	}
	return out
}

func (f *Folio) Close() {
	f.status = StatusClosed
}
