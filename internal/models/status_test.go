package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatusProgression(t *testing.T) {
	assert.Equal(t, StatusConfirmed, NextStatus(StatusPending))
	assert.Equal(t, StatusPreparing, NextStatus(StatusConfirmed))
	assert.Equal(t, StatusReady, NextStatus(StatusPreparing))
	assert.Equal(t, StatusDelivered, NextStatus(StatusReady))
}

func TestNextStatusTerminal(t *testing.T) {
	assert.Empty(t, NextStatus(StatusDelivered))
	assert.Empty(t, NextStatus(StatusCancelled))
	assert.Empty(t, NextStatus("bogus"))
}

func TestCanCancelOnlyPending(t *testing.T) {
	assert.True(t, CanCancel(StatusPending))
	for _, s := range []string{StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled} {
		assert.False(t, CanCancel(s), s)
	}
}

func TestMergeKeyStability(t *testing.T) {
	a := CartLineItem{
		ProductID:          "p1",
		SelectedOptions:    []SelectedOption{{OptionID: "o2"}, {OptionID: "o1"}},
		RemovedIngredients: []string{"i2", "i1"},
		Notes:              "sem cebola",
	}
	b := CartLineItem{
		ProductID:          "p1",
		SelectedOptions:    []SelectedOption{{OptionID: "o1"}, {OptionID: "o2"}},
		RemovedIngredients: []string{"i1", "i2"},
		Notes:              "sem cebola",
	}

	assert.Equal(t, a.MergeKey(), b.MergeKey())

	b.Notes = ""
	assert.NotEqual(t, a.MergeKey(), b.MergeKey())
}
