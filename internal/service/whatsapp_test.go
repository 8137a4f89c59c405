package service

import (
	"net/url"
	"strings"
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleOrder() *models.Order {
	return &models.Order{
		ID:              "ord-1",
		CustomerName:    "João",
		CustomerAddress: strPtr("Rua das Flores, 123"),
		Items: models.OrderLines{
			{
				ProductID: "p1",
				Name:      "X-Burger",
				UnitPrice: 2250,
				Quantity:  2,
				SelectedOptions: []models.SelectedOption{
					{OptionID: "o1", Name: "Bacon extra", Price: 250},
				},
				RemovedIngredients: []string{"ing-onion"},
				Notes:              "bem passado",
			},
			{ProductID: "p2", Name: "Coca-Cola", UnitPrice: 800, Quantity: 1},
		},
		Subtotal:      5300,
		DeliveryFee:   800,
		Discount:      530,
		Total:         5570,
		PaymentMethod: models.PaymentPix,
		CouponCode:    strPtr("ROCK10"),
	}
}

func TestOrderMessageFormat(t *testing.T) {
	b := NewWhatsAppBuilder("5511999999999", "PINHEIRO'S BURGER")
	msg := b.OrderMessage(sampleOrder())

	assert.Contains(t, msg, "*NOVO PEDIDO - PINHEIRO'S BURGER*")
	assert.Contains(t, msg, "*Cliente:* João")
	assert.Contains(t, msg, "*Endereço:* Rua das Flores, 123")
	assert.Contains(t, msg, "• 2x X-Burger - R$ 45,00")
	assert.Contains(t, msg, "   + Bacon extra")
	assert.Contains(t, msg, "_Obs: bem passado_")
	assert.Contains(t, msg, "*Subtotal:* R$ 53,00")
	assert.Contains(t, msg, "*Entrega:* R$ 8,00")
	assert.Contains(t, msg, "*Desconto (ROCK10):* -R$ 5,30")
	assert.Contains(t, msg, "*TOTAL: R$ 55,70*")
	assert.Contains(t, msg, "*Pagamento:* PIX")
}

func TestOrderMessageSkipsZeroDiscount(t *testing.T) {
	b := NewWhatsAppBuilder("5511999999999", "PINHEIRO'S BURGER")
	order := sampleOrder()
	order.Discount = 0
	order.CouponCode = nil

	msg := b.OrderMessage(order)
	assert.NotContains(t, msg, "Desconto")
}

func TestOrderURLEncodesMessage(t *testing.T) {
	b := NewWhatsAppBuilder("5511999999999", "PINHEIRO'S BURGER")
	link := b.OrderURL(sampleOrder())

	require.True(t, strings.HasPrefix(link, "https://wa.me/5511999999999?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	decoded := parsed.Query().Get("text")
	assert.Contains(t, decoded, "NOVO PEDIDO")
	assert.Contains(t, decoded, "João")
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 0,00", FormatBRL(0))
	assert.Equal(t, "R$ 0,05", FormatBRL(5))
	assert.Equal(t, "R$ 45,00", FormatBRL(4500))
	assert.Equal(t, "R$ 1234,56", FormatBRL(123456))
	assert.Equal(t, "-R$ 5,30", FormatBRL(-530))
}
