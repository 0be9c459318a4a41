package response

import (
	"time"

	"github.com/google/uuid"

	"hotelier/internal/usecase/queries"
)

type FolioItemResponse struct {
	ID            uuid.UUID  `json:"id"`
	Kind          string     `json:"kind"`
	Description   string     `json:"description"`
	AmountCents   int64      `json:"amountCents"`
	Currency      string     `json:"currency"`
	PaymentItemID *uuid.UUID `json:"paymentItemId,omitempty"`
	PostedAt      time.Time  `json:"postedAt"`
	VoidedAt      *time.Time `json:"voidedAt,omitempty"`
}

type FolioResponse struct {
	ID            uuid.UUID           `json:"id"`
	ReservationID uuid.UUID           `json:"reservationId"`
	Status        string              `json:"status"`
	Currency      string              `json:"currency"`
	BalanceCents  int64               `json:"balanceCents"`
	Items         []FolioItemResponse `json:"items"`
}

type PostFolioItemResponse struct {
	ItemID uuid.UUID `json:"itemId"`
}

func FromFolioView(rm *queries.FolioView) *FolioResponse {
	items := make([]FolioItemResponse, 0, len(rm.Items))
	for _, it := range rm.Items {
		items = append(items, FolioItemResponse{
			ID:            it.ID,
			Kind:          it.Kind,
			Description:   it.Description,
			AmountCents:   it.AmountCents,
			Currency:      it.Currency,
			PaymentItemID: it.PaymentItemID,
			PostedAt:      it.PostedAt,
			VoidedAt:      it.VoidedAt,
		})
	}
	return &FolioResponse{
		ID:            rm.ID,
		ReservationID: rm.ReservationID,
		Status:        rm.Status,
		Currency:      rm.Currency,
		BalanceCents:  rm.BalanceCents,
		Items:         items,
	}
}
