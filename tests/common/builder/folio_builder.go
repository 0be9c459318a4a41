//go:build unit || e2e

package builder

import (
	"time"

	"github.com/google/uuid"

	"hotelier/internal/domain/folio"
	"hotelier/internal/domain/stay"
)

// FolioBuilder assembles an open USD folio with a room charge and a payment
// already posted, the state most ledger tests start from.
type FolioBuilder struct {
	reservationID uuid.UUID
	currency      string
	chargeCents   int64
	paymentCents  int64
	postedAt      time.Time
}

func NewFolioBuilder() *FolioBuilder {
	return &FolioBuilder{
		reservationID: uuid.New(),
		currency:      "USD",
		chargeCents:   30000,
		paymentCents:  30000,
		postedAt:      time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
	}
}

func (b *FolioBuilder) WithCurrency(currency string) *FolioBuilder {
	b.currency = currency
	return b
}

func (b *FolioBuilder) WithCharge(cents int64) *FolioBuilder {
	b.chargeCents = cents
	return b
}

func (b *FolioBuilder) WithPayment(cents int64) *FolioBuilder {
	b.paymentCents = cents
	return b
}

// Build returns the folio plus the IDs of the posted charge and payment.
func (b *FolioBuilder) Build() (*folio.Folio, uuid.UUID, uuid.UUID) {
	f := folio.NewFolio(b.reservationID, b.currency)

	charge := folio.NewItem(folio.KindRoomCharge, "room charges", stay.NewMoney(b.chargeCents, b.currency), b.postedAt)
	if err := f.Post(charge); err != nil {
		panic(err)
	}
	payment := folio.NewItem(folio.KindPayment, "card payment", stay.NewMoney(-b.paymentCents, b.currency), b.postedAt.Add(time.Minute))
	if err := f.Post(payment); err != nil {
		panic(err)
	}
	return f, charge.ID(), payment.ID()
}

// BuildEmpty returns an open folio with no postings.
func (b *FolioBuilder) BuildEmpty() *folio.Folio {
	return folio.NewFolio(b.reservationID, b.currency)
}
