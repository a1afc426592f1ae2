package substitution

import "fmt"

// HydrationAdjustment is a liquid correction caused by one swap between dry
// ingredients with different absorption.
type HydrationAdjustment struct {
	IngredientName string `json:"ingredient"`
	OriginalName   string `json:"originalIngredient"`
	AdjustmentML   int    `json:"adjustmentMl"`
	Message        string `json:"message"`
}

// HydrationAdjustments returns the liquid corrections for the active swaps,
// one per contributing line, in line order.
func (s *Session) HydrationAdjustments() []HydrationAdjustment {
	return append([]HydrationAdjustment(nil), s.hydration...)
}

// TotalHydrationAdjustment returns the net liquid correction in ml
func (s *Session) TotalHydrationAdjustment() int {
	total := 0
	for _, adj := range s.hydration {
		total += adj.AdjustmentML
	}
	return total
}

// HasHydrationAdjustment reports whether any swap changes the liquid needed
func (s *Session) HasHydrationAdjustment() bool {
	return len(s.hydration) > 0
}

// recalculateHydration rebuilds the adjustment list. Only swaps whose
// original ingredient is dry contribute; the absorption difference is scaled
// by the effective (ratio-adjusted, unrounded) amount, and zero-ml results
// are dropped.
func (s *Session) recalculateHydration() {
	s.hydration = nil
	for _, ln := range s.lines {
		if !ln.IsSwapped {
			continue
		}
		orig, ok := s.catalog.Ingredient(ln.OriginalID)
		if !ok {
			continue
		}
		sub, ok := s.catalog.Ingredient(ln.ID)
		if !ok {
			continue
		}
		if !orig.IsDry() {
			continue
		}

		diff := sub.HydrationFactor - orig.HydrationFactor
		effective := ln.OriginalAmount
		if sub.AmountRatio != 0 {
			effective = ln.OriginalAmount * sub.AmountRatio
		}
		adjustment := int(roundHalfUp(diff * effective))
		if adjustment == 0 {
			continue
		}

		message := fmt.Sprintf("%dml liquid", adjustment)
		if adjustment > 0 {
			message = "+" + message
		}
		s.hydration = append(s.hydration, HydrationAdjustment{
			IngredientName: sub.Name,
			OriginalName:   orig.Name,
			AdjustmentML:   adjustment,
			Message:        message,
		})
	}
}
