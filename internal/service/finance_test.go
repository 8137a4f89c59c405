package service

import (
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAggregateClosingExcludesCancelled(t *testing.T) {
	orders := []models.Order{
		{Total: 5000, DeliveryFee: 800, Discount: 0, PaymentMethod: models.PaymentPix, Status: models.StatusDelivered},
		{Total: 3000, DeliveryFee: 500, Discount: 200, PaymentMethod: models.PaymentCash, Status: models.StatusReady},
		{Total: 9999, DeliveryFee: 800, PaymentMethod: models.PaymentCard, Status: models.StatusCancelled},
	}
	expenses := []models.Expense{
		{Description: "Gás", Amount: 1200},
		{Description: "Pão", Amount: 800},
	}

	c := aggregateClosing(orders, expenses)

	assert.Equal(t, 2, c.OrderCount)
	assert.Equal(t, 1, c.CancelledCount)
	assert.Equal(t, int64(8000), c.Revenue)
	assert.Equal(t, int64(1300), c.DeliveryFees)
	assert.Equal(t, int64(200), c.Discounts)
	assert.Equal(t, int64(4000), c.AverageTicket)
	assert.Equal(t, int64(2000), c.Expenses)
	assert.Equal(t, int64(6000), c.Net)
	assert.Equal(t, int64(5000), c.RevenueByMethod[models.PaymentPix])
	assert.Equal(t, int64(3000), c.RevenueByMethod[models.PaymentCash])
	assert.NotContains(t, c.RevenueByMethod, models.PaymentCard)
}

func TestAggregateClosingEmptyDay(t *testing.T) {
	c := aggregateClosing(nil, nil)

	assert.Equal(t, 0, c.OrderCount)
	assert.Equal(t, int64(0), c.Revenue)
	assert.Equal(t, int64(0), c.AverageTicket)
	assert.Equal(t, int64(0), c.Net)
}

func TestClassifyPaymentColumnWins(t *testing.T) {
	o := &models.Order{PaymentMethod: models.PaymentCard, Notes: strPtr("pagamento via pix")}
	assert.Equal(t, models.PaymentCard, classifyPayment(o))
}

func TestClassifyPaymentLegacyNotesFallback(t *testing.T) {
	cases := []struct {
		notes string
		want  string
	}{
		{"Pagamento: PIX", models.PaymentPix},
		{"vai pagar no cartão", models.PaymentCard},
		{"pagamento em cartao na entrega", models.PaymentCard},
		{"troco para 50, dinheiro", models.PaymentCash},
		{"sem observações", "desconhecido"},
	}

	for _, tc := range cases {
		o := &models.Order{Notes: strPtr(tc.notes)}
		assert.Equal(t, tc.want, classifyPayment(o), "notes: %s", tc.notes)
	}

	assert.Equal(t, "desconhecido", classifyPayment(&models.Order{}))
}
