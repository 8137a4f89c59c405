package pricing

import (
	"strings"
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func burgerLine(notes string) models.CartLineItem {
	return models.CartLineItem{
		ProductID: "p-burger",
		Name:      "Classic Burger",
		UnitPrice: 2900,
		Quantity:  1,
		SelectedOptions: []models.SelectedOption{
			{OptionID: "o-bacon", GroupID: "g-extras", Name: "Bacon", Price: 300},
		},
		RemovedIngredients: []string{"i-onion"},
		Notes:              notes,
	}
}

func TestCartMergesIdenticalCustomization(t *testing.T) {
	var cart Cart
	cart.Add(burgerLine("sem picles"))
	cart.Add(burgerLine("sem picles"))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, cart.TotalItems())
}

func TestCartDoesNotMergeDifferentNotes(t *testing.T) {
	var cart Cart
	cart.Add(burgerLine(""))
	cart.Add(burgerLine("bem passado"))

	assert.Len(t, cart.Items, 2)
}

func TestCartDoesNotMergeDifferentOptions(t *testing.T) {
	plain := burgerLine("")
	plain.SelectedOptions = nil

	var cart Cart
	cart.Add(burgerLine(""))
	cart.Add(plain)

	assert.Len(t, cart.Items, 2)
}

func TestCartMergeIgnoresOptionOrder(t *testing.T) {
	a := burgerLine("")
	a.SelectedOptions = append(a.SelectedOptions, models.SelectedOption{OptionID: "o-egg", GroupID: "g-extras", Name: "Ovo", Price: 200})

	b := burgerLine("")
	b.SelectedOptions = []models.SelectedOption{
		{OptionID: "o-egg", GroupID: "g-extras", Name: "Ovo", Price: 200},
		{OptionID: "o-bacon", GroupID: "g-extras", Name: "Bacon", Price: 300},
	}

	var cart Cart
	cart.Add(a)
	cart.Add(b)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartSubtotal(t *testing.T) {
	var cart Cart
	cart.Add(models.CartLineItem{ProductID: "a", UnitPrice: 2900, Quantity: 2})
	cart.Add(models.CartLineItem{ProductID: "b", UnitPrice: 1500, Quantity: 1})

	assert.Equal(t, int64(2*2900+1500), cart.Subtotal())
}

func TestCartUpdateQuantity(t *testing.T) {
	var cart Cart
	cart.Add(burgerLine(""))
	key := cart.Items[0].Key

	require.True(t, cart.UpdateQuantity(key, 3))
	assert.Equal(t, 3, cart.Items[0].Quantity)

	require.True(t, cart.UpdateQuantity(key, 0))
	assert.Empty(t, cart.Items)

	assert.False(t, cart.UpdateQuantity("missing", 1))
}

func TestCartClampsNotesLength(t *testing.T) {
	var cart Cart
	cart.Add(models.CartLineItem{ProductID: "a", UnitPrice: 100, Quantity: 1, Notes: strings.Repeat("x", 400)})

	assert.Len(t, cart.Items[0].Notes, models.MaxNotesLen)
}

func TestCartLinesSnapshot(t *testing.T) {
	var cart Cart
	cart.Add(burgerLine("sem picles"))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p-burger", lines[0].ProductID)
	assert.Equal(t, int64(2900), lines[0].UnitPrice)
	assert.Equal(t, []string{"i-onion"}, lines[0].RemovedIngredients)
	assert.Equal(t, "sem picles", lines[0].Notes)
}
