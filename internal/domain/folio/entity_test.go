//go:build unit

package folio_test

import (
	"testing"
	"time"

	"hotelier/internal/domain/folio"
	"hotelier/internal/domain/stay"
	"hotelier/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func TestPost(t *testing.T) {
	t.Run("rejects a foreign currency", func(t *testing.T) {
		f := builder.NewFolioBuilder().BuildEmpty()
		err := f.Post(folio.NewItem(folio.KindRoomCharge, "room charges", stay.NewMoney(10000, "EUR"), t0))
		require.ErrorIs(t, err, stay.ErrCurrencyMismatch)
		assert.Empty(t, f.Items())
	})

	t.Run("rejects postings that would reorder the ledger", func(t *testing.T) {
		f := builder.NewFolioBuilder().BuildEmpty()
		require.NoError(t, f.Post(folio.NewItem(folio.KindRoomCharge, "room charges", stay.NewMoney(10000, "USD"), t0)))

		err := f.Post(folio.NewItem(folio.KindTax, "occupancy tax", stay.NewMoney(1000, "USD"), t0.Add(-time.Minute)))
		require.ErrorIs(t, err, folio.ErrPostedOutOfOrder)

		// equal timestamps are fine
		require.NoError(t, f.Post(folio.NewItem(folio.KindTax, "occupancy tax", stay.NewMoney(1000, "USD"), t0)))
	})
}

func TestBalance(t *testing.T) {
	t.Run("charges minus credits", func(t *testing.T) {
		f, _, _ := builder.NewFolioBuilder().WithCharge(30000).WithPayment(20000).Build()
		assert.Equal(t, int64(10000), f.Balance().Cents())
	})

	t.Run("voided items drop out of the balance but stay in history", func(t *testing.T) {
		f, chargeID, _ := builder.NewFolioBuilder().WithCharge(30000).WithPayment(20000).Build()
		require.NoError(t, f.Void(chargeID, t0.Add(time.Hour)))

		assert.Equal(t, int64(-20000), f.Balance().Cents())
		require.Len(t, f.Items(), 2)
		assert.True(t, f.Item(chargeID).IsVoided())
	})
}

func TestVoid(t *testing.T) {
	f, chargeID, _ := builder.NewFolioBuilder().Build()

	require.ErrorIs(t, f.Void(uuid.New(), t0), folio.ErrItemNotFound)

	require.NoError(t, f.Void(chargeID, t0.Add(time.Hour)))
	require.ErrorIs(t, f.Void(chargeID, t0.Add(2*time.Hour)), folio.ErrItemVoided)
}

func TestRefund(t *testing.T) {
	t.Run("partial refunds accumulate against the payment", func(t *testing.T) {
		f, _, paymentID := builder.NewFolioBuilder().WithPayment(30000).Build()

		item, err := f.Refund(paymentID, 10000, "goodwill refund", t0.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, folio.KindRefund, item.Kind())
		assert.Equal(t, int64(-10000), item.Amount().Cents())
		require.NotNil(t, item.PaymentItemID())
		assert.Equal(t, paymentID, *item.PaymentItemID())

		remaining, err := f.RefundableCents(paymentID)
		require.NoError(t, err)
		assert.Equal(t, int64(20000), remaining)

		_, err = f.Refund(paymentID, 20000, "remainder", t0.Add(2*time.Hour))
		require.NoError(t, err)

		_, err = f.Refund(paymentID, 1, "one cent too many", t0.Add(3*time.Hour))
		require.ErrorIs(t, err, folio.ErrRefundExceedsPayment)
	})

	t.Run("over-refund is rejected up front", func(t *testing.T) {
		f, _, paymentID := builder.NewFolioBuilder().WithPayment(5000).Build()
		_, err := f.Refund(paymentID, 5001, "too much", t0.Add(time.Hour))
		require.ErrorIs(t, err, folio.ErrRefundExceedsPayment)
	})

	t.Run("only payments can be refunded", func(t *testing.T) {
		f, chargeID, _ := builder.NewFolioBuilder().Build()
		_, err := f.Refund(chargeID, 1000, "wrong target", t0.Add(time.Hour))
		require.ErrorIs(t, err, folio.ErrNotAPayment)

		_, err = f.Refund(uuid.New(), 1000, "missing target", t0.Add(time.Hour))
		require.ErrorIs(t, err, folio.ErrItemNotFound)
	})

	t.Run("a voided payment cannot be refunded", func(t *testing.T) {
		f, _, paymentID := builder.NewFolioBuilder().Build()
		require.NoError(t, f.Void(paymentID, t0.Add(time.Hour)))
		_, err := f.Refund(paymentID, 1000, "voided", t0.Add(2*time.Hour))
		require.ErrorIs(t, err, folio.ErrItemVoided)
	})

	t.Run("voiding a refund restores the refundable amount", func(t *testing.T) {
		f, _, paymentID := builder.NewFolioBuilder().WithPayment(30000).Build()
		item, err := f.Refund(paymentID, 30000, "full refund", t0.Add(time.Hour))
		require.NoError(t, err)
		require.NoError(t, f.Void(item.ID(), t0.Add(2*time.Hour)))

		remaining, err := f.RefundableCents(paymentID)
		require.NoError(t, err)
		assert.Equal(t, int64(30000), remaining)
	})
}

func TestPaymentItems(t *testing.T) {
	f, _, firstPayment := builder.NewFolioBuilder().Build()
	second := folio.NewItem(folio.KindPayment, "second card payment", stay.NewMoney(-5000, "USD"), t0.Add(time.Hour))
	require.NoError(t, f.Post(second))
	require.NoError(t, f.Void(firstPayment, t0.Add(2*time.Hour)))

	payments := f.PaymentItems()
	require.Len(t, payments, 1)
	assert.Equal(t, second.ID(), payments[0].ID())
}

func TestClose(t *testing.T) {
	f := builder.NewFolioBuilder().BuildEmpty()
	assert.Equal(t, folio.StatusOpen, f.Status())
	f.Close()
	assert.Equal(t, folio.StatusClosed, f.Status())
}
