package substitution

import "math"

// NutritionDelta is one surfaced macro change caused by the active swaps
type NutritionDelta struct {
	Name      string `json:"name"`
	Delta     int    `json:"delta"`
	Formatted string `json:"formatted"`
}

// DailyValues holds the percent of reference daily intake covered by one
// serving at the current nutrition.
type DailyValues struct {
	Fat     int `json:"fat"`
	Carbs   int `json:"carbs"`
	Fiber   int `json:"fiber"`
	Protein int `json:"protein"`
}

// FDA reference daily values in grams
const (
	dailyValueFat     = 78
	dailyValueCarbs   = 275
	dailyValueFiber   = 28
	dailyValueProtein = 50
)

// Protein-to-energy rating bands
const (
	RatingElite     = "ELITE"
	RatingExcellent = "EXCELLENT"
	RatingGood      = "GOOD"
	RatingModerate  = "MODERATE"
)

// Noise thresholds below which a macro change is not surfaced
const (
	batchCalorieThreshold   = 5.0
	batchGramThreshold      = 1.0
	servingCalorieThreshold = 1.0
	servingProteinThreshold = 0.5
	servingFatThreshold     = 0.5
	servingCarbThreshold    = 1.0
)

// NutritionDeltas returns the surfaced per-serving macro changes
func (s *Session) NutritionDeltas() []NutritionDelta {
	return append([]NutritionDelta(nil), s.servingDeltas...)
}

// BatchNutritionDeltas returns the surfaced whole-batch macro changes
func (s *Session) BatchNutritionDeltas() []NutritionDelta {
	return append([]NutritionDelta(nil), s.batchDeltas...)
}

// DailyValuePercents returns DV% per serving at the current nutrition
func (s *Session) DailyValuePercents() DailyValues {
	return DailyValues{
		Fat:     dailyValuePercent(s.current.Fat, dailyValueFat),
		Carbs:   dailyValuePercent(s.current.Carbs, dailyValueCarbs),
		Fiber:   dailyValuePercent(s.current.Fiber, dailyValueFiber),
		Protein: dailyValuePercent(s.current.Protein, dailyValueProtein),
	}
}

// ProteinEnergyRatio returns grams of protein per 100 non-protein calories
// for the current nutrition. When a serving has no non-protein calories the
// ratio is reported as 99.
func (s *Session) ProteinEnergyRatio() float64 {
	nonProteinCalories := s.current.Calories - 4*s.current.Protein
	if nonProteinCalories <= 0 {
		return 99
	}
	return s.current.Protein / (nonProteinCalories / 100)
}

// ProteinEnergyRating maps the P:E ratio to a rating band
func (s *Session) ProteinEnergyRating() string {
	ratio := s.ProteinEnergyRatio()
	switch {
	case ratio >= 15:
		return RatingElite
	case ratio >= 10:
		return RatingExcellent
	case ratio >= 5:
		return RatingGood
	default:
		return RatingModerate
	}
}

// macroDeltas are whole-batch nutrient changes in calories/grams
type macroDeltas struct {
	calories float64
	protein  float64
	fat      float64
	carbs    float64
	fiber    float64
}

// batchMacroDeltas sums, over the swapped lines, the difference between the
// substitute's contribution at its current amount and the original's at the
// original amount. Contributions are linear: macro per 100g times amount.
func (s *Session) batchMacroDeltas() macroDeltas {
	var d macroDeltas
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
		d.calories += sub.Macros.Calories/100*ln.Amount - orig.Macros.Calories/100*ln.OriginalAmount
		d.protein += sub.Macros.Protein/100*ln.Amount - orig.Macros.Protein/100*ln.OriginalAmount
		d.fat += sub.Macros.Fat/100*ln.Amount - orig.Macros.Fat/100*ln.OriginalAmount
		d.carbs += sub.Macros.Carbs/100*ln.Amount - orig.Macros.Carbs/100*ln.OriginalAmount
		d.fiber += sub.Macros.Fiber/100*ln.Amount - orig.Macros.Fiber/100*ln.OriginalAmount
	}
	return d
}

func (s *Session) recalculateNutrition() {
	d := s.batchMacroDeltas()
	servings := float64(s.yield)

	s.batchDeltas = nil
	appendBatch := func(name string, delta, threshold float64, unit string) {
		if math.Abs(delta) < threshold {
			return
		}
		v := int(roundHalfUp(delta))
		s.batchDeltas = append(s.batchDeltas, NutritionDelta{
			Name:      name,
			Delta:     v,
			Formatted: formatDelta(v, unit),
		})
	}
	appendBatch("calories", d.calories, batchCalorieThreshold, "")
	appendBatch("protein", d.protein, batchGramThreshold, "g")
	appendBatch("fat", d.fat, batchGramThreshold, "g")
	appendBatch("carbs", d.carbs, batchGramThreshold, "g")

	s.servingDeltas = nil
	appendServing := func(name string, delta, threshold float64, unit string) {
		perServing := delta / servings
		if math.Abs(perServing) < threshold {
			return
		}
		v := int(roundHalfUp(perServing))
		s.servingDeltas = append(s.servingDeltas, NutritionDelta{
			Name:      name,
			Delta:     v,
			Formatted: formatDelta(v, unit),
		})
	}
	appendServing("calories", d.calories, servingCalorieThreshold, "")
	appendServing("protein", d.protein, servingProteinThreshold, "g")
	appendServing("fat", d.fat, servingFatThreshold, "g")
	appendServing("carbs", d.carbs, servingCarbThreshold, "g")

	// Current absolute per-serving values carry fiber too; sugar is never
	// recomputed from ingredients.
	s.current = Nutrition{
		Calories: roundHalfUp(s.base.Calories + d.calories/servings),
		Protein:  roundHalfUp(s.base.Protein + d.protein/servings),
		Fat:      roundHalfUp(s.base.Fat + d.fat/servings),
		Carbs:    roundHalfUp(s.base.Carbs + d.carbs/servings),
		Fiber:    roundHalfUp(s.base.Fiber + d.fiber/servings),
		Sugar:    s.base.Sugar,
	}
}

func dailyValuePercent(current, reference float64) int {
	return int(roundHalfUp(current / reference * 100))
}
