package pricing

import "storefront-service/internal/models"

// Toggle applies one customization click and returns the new selection set.
//
// Toggling an already-selected option removes it. In a single-choice group
// (max_selections == 1) a new selection replaces whatever was selected in
// that group. In a multi-choice group a selection beyond the cap is a no-op.
func Toggle(selected []models.SelectedOption, group models.OptionGroup, opt models.Option) []models.SelectedOption {
	inGroup := 0
	for _, s := range selected {
		if s.OptionID == opt.ID {
			out := make([]models.SelectedOption, 0, len(selected)-1)
			for _, keep := range selected {
				if keep.OptionID != opt.ID {
					out = append(out, keep)
				}
			}
			return out
		}
		if s.GroupID == group.ID {
			inGroup++
		}
	}

	picked := models.SelectedOption{
		OptionID: opt.ID,
		GroupID:  group.ID,
		Name:     opt.Name,
		Price:    opt.Price,
	}

	if group.MaxSelections == 1 {
		out := make([]models.SelectedOption, 0, len(selected)+1)
		for _, s := range selected {
			if s.GroupID != group.ID {
				out = append(out, s)
			}
		}
		return append(out, picked)
	}

	if inGroup >= group.MaxSelections {
		return selected
	}

	return append(append([]models.SelectedOption(nil), selected...), picked)
}

// ValidateSelections checks every group's selection-count constraints:
// required groups must reach min_selections and no group may exceed
// max_selections. Add-to-cart is blocked on the first violation.
func ValidateSelections(groups []models.OptionGroup, selected []models.SelectedOption) error {
	for _, g := range groups {
		count := 0
		for _, s := range selected {
			if s.GroupID == g.ID {
				count++
			}
		}
		if g.IsRequired && count < g.MinSelections {
			return &InvalidSelectionError{GroupName: g.Name, Min: g.MinSelections, Max: g.MaxSelections, Selected: count}
		}
		if count > g.MaxSelections {
			return &InvalidSelectionError{GroupName: g.Name, Min: g.MinSelections, Max: g.MaxSelections, Selected: count}
		}
	}
	return nil
}

// ExtraPrice sums the surcharges of all selected options.
func ExtraPrice(selected []models.SelectedOption) int64 {
	var sum int64
	for _, s := range selected {
		sum += s.Price
	}
	return sum
}

// UnitPrice is the final per-unit price of a customized line item.
func UnitPrice(basePrice int64, selected []models.SelectedOption) int64 {
	return basePrice + ExtraPrice(selected)
}
