package service

import (
	"fmt"
	"net/url"
	"strings"

	"storefront-service/internal/models"
)

// WhatsAppBuilder renders the order summary handed off to the store's
// WhatsApp number. This is pure string formatting; opening the chat happens
// on the customer's device.
type WhatsAppBuilder struct {
	number    string
	storeName string
}

func NewWhatsAppBuilder(number, storeName string) *WhatsAppBuilder {
	return &WhatsAppBuilder{number: number, storeName: storeName}
}

// OrderMessage builds the itemized order text.
func (b *WhatsAppBuilder) OrderMessage(order *models.Order) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "🍔 *NOVO PEDIDO - %s* 🎸\n\n", b.storeName)
	fmt.Fprintf(&sb, "*Cliente:* %s\n", order.CustomerName)
	if order.CustomerAddress != nil && *order.CustomerAddress != "" {
		fmt.Fprintf(&sb, "*Endereço:* %s\n", *order.CustomerAddress)
	}

	sb.WriteString("\n*ITENS:*\n")
	for _, item := range order.Items {
		fmt.Fprintf(&sb, "• %dx %s - %s\n", item.Quantity, item.Name, FormatBRL(item.UnitPrice*int64(item.Quantity)))
		for _, opt := range item.SelectedOptions {
			fmt.Fprintf(&sb, "   + %s\n", opt.Name)
		}
		if len(item.RemovedIngredients) > 0 {
			fmt.Fprintf(&sb, "   - sem %d ingrediente(s)\n", len(item.RemovedIngredients))
		}
		if item.Notes != "" {
			fmt.Fprintf(&sb, "   _Obs: %s_\n", item.Notes)
		}
	}

	fmt.Fprintf(&sb, "\n*Subtotal:* %s\n", FormatBRL(order.Subtotal))
	fmt.Fprintf(&sb, "*Entrega:* %s\n", FormatBRL(order.DeliveryFee))
	if order.Discount > 0 {
		code := ""
		if order.CouponCode != nil {
			code = fmt.Sprintf(" (%s)", *order.CouponCode)
		}
		fmt.Fprintf(&sb, "*Desconto%s:* -%s\n", code, FormatBRL(order.Discount))
	}
	fmt.Fprintf(&sb, "*TOTAL: %s*\n\n", FormatBRL(order.Total))
	fmt.Fprintf(&sb, "*Pagamento:* %s\n\n", models.PaymentLabel(order.PaymentMethod))
	sb.WriteString("Obrigado pela preferência! 🤘")

	return sb.String()
}

// OrderURL builds the wa.me link carrying the encoded message.
func (b *WhatsAppBuilder) OrderURL(order *models.Order) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", b.number, url.QueryEscape(b.OrderMessage(order)))
}

// FormatBRL renders centavos as a BRL amount.
func FormatBRL(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sR$ %d,%02d", sign, cents/100, cents%100)
}
