package pricing

import (
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sideGroup = models.OptionGroup{
		ID: "g-side", Name: "Escolha seu acompanhamento",
		MinSelections: 1, MaxSelections: 1, IsRequired: true,
		Options: []models.Option{
			{ID: "o-fries", GroupID: "g-side", Name: "Batata", Price: 0},
			{ID: "o-onion", GroupID: "g-side", Name: "Onion rings", Price: 400},
		},
	}
	extrasGroup = models.OptionGroup{
		ID: "g-extras", Name: "Adicionais",
		MinSelections: 0, MaxSelections: 2, IsRequired: false,
		Options: []models.Option{
			{ID: "o-bacon", GroupID: "g-extras", Name: "Bacon", Price: 300},
			{ID: "o-egg", GroupID: "g-extras", Name: "Ovo", Price: 200},
			{ID: "o-cheese", GroupID: "g-extras", Name: "Cheddar", Price: 250},
		},
	}
)

func TestRequiredGroupEnforcement(t *testing.T) {
	groups := []models.OptionGroup{sideGroup}

	err := ValidateSelections(groups, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	var sel *InvalidSelectionError
	require.ErrorAs(t, err, &sel)
	assert.Equal(t, "Escolha seu acompanhamento", sel.GroupName)
	assert.Equal(t, 1, sel.Min)

	picked := Toggle(nil, sideGroup, sideGroup.Options[0])
	assert.NoError(t, ValidateSelections(groups, picked))
}

func TestSingleChoiceReplaceSemantics(t *testing.T) {
	selected := Toggle(nil, sideGroup, sideGroup.Options[0])
	selected = Toggle(selected, sideGroup, sideGroup.Options[1])

	require.Len(t, selected, 1)
	assert.Equal(t, "o-onion", selected[0].OptionID)
}

func TestToggleRemovesSelectedOption(t *testing.T) {
	selected := Toggle(nil, extrasGroup, extrasGroup.Options[0])
	require.Len(t, selected, 1)

	selected = Toggle(selected, extrasGroup, extrasGroup.Options[0])
	assert.Empty(t, selected)
}

func TestMultiChoiceCapIsNoOp(t *testing.T) {
	selected := Toggle(nil, extrasGroup, extrasGroup.Options[0])
	selected = Toggle(selected, extrasGroup, extrasGroup.Options[1])
	selected = Toggle(selected, extrasGroup, extrasGroup.Options[2])

	require.Len(t, selected, 2)
	assert.Equal(t, "o-bacon", selected[0].OptionID)
	assert.Equal(t, "o-egg", selected[1].OptionID)
}

func TestMaxSelectionsValidated(t *testing.T) {
	over := []models.SelectedOption{
		{OptionID: "o-bacon", GroupID: "g-extras"},
		{OptionID: "o-egg", GroupID: "g-extras"},
		{OptionID: "o-cheese", GroupID: "g-extras"},
	}

	err := ValidateSelections([]models.OptionGroup{extrasGroup}, over)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestExtraAndUnitPrice(t *testing.T) {
	selected := Toggle(nil, extrasGroup, extrasGroup.Options[0])
	selected = Toggle(selected, extrasGroup, extrasGroup.Options[1])
	selected = Toggle(selected, sideGroup, sideGroup.Options[1])

	assert.Equal(t, int64(300+200+400), ExtraPrice(selected))
	assert.Equal(t, int64(2500+900), UnitPrice(2500, selected))
	assert.Equal(t, int64(2500), UnitPrice(2500, nil))
}
