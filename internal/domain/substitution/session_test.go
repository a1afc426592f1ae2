package substitution

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/proteinempire/ingredients/internal/domain/ingredient"
)

// SessionTestSuite exercises the session state machine against a small
// catalog cut from the production data.
type SessionTestSuite struct {
	suite.Suite
	catalog *ingredient.Catalog
}

func (s *SessionTestSuite) SetupTest() {
	s.catalog = ingredient.NewCatalog(map[string]ingredient.Ingredient{
		"oat-flour": {
			Name:            "Oat Flour",
			Category:        ingredient.CategoryDry,
			Role:            ingredient.RoleStructure,
			Macros:          ingredient.Macros{Calories: 404, Protein: 14, Carbs: 66, Fat: 9, Fiber: 7},
			HydrationFactor: 1.0,
			Substitutes:     []string{"coconut-flour", "almond-flour", "spelt-flour"},
		},
		"coconut-flour": {
			Name:            "Coconut Flour",
			Category:        ingredient.CategoryDry,
			Role:            ingredient.RoleStructure,
			Macros:          ingredient.Macros{Calories: 443, Protein: 19, Carbs: 60, Fat: 12, Fiber: 39},
			HydrationFactor: 1.6,
			AmountRatio:     0.25,
			SwapNote:        "use 1/4 the amount",
			IsSpecialSwap:   true,
		},
		"almond-flour": {
			Name:            "Almond Flour",
			Category:        ingredient.CategoryDry,
			Role:            ingredient.RoleStructure,
			Macros:          ingredient.Macros{Calories: 571, Protein: 21, Carbs: 21, Fat: 50, Fiber: 11},
			HydrationFactor: 0.8,
			Substitutes:     []string{"oat-flour"},
		},
		"spelt-flour": {
			Name:            "Spelt Flour",
			Category:        ingredient.CategoryDry,
			Role:            ingredient.RoleStructure,
			Macros:          ingredient.Macros{Calories: 338, Protein: 15, Carbs: 70, Fat: 2.4, Fiber: 11},
			HydrationFactor: 1.0,
		},
		"greek-yogurt": {
			Name:        "Greek Yogurt",
			Category:    ingredient.CategoryWet,
			Role:        ingredient.RoleMoisture,
			Macros:      ingredient.Macros{Calories: 59, Protein: 10, Carbs: 3.6, Fat: 0.4},
			Substitutes: []string{"skyr", "yogurt-none"},
		},
		"skyr": {
			Name:     "Skyr",
			Category: ingredient.CategoryWet,
			Role:     ingredient.RoleMoisture,
			Macros:   ingredient.Macros{Calories: 63, Protein: 11, Carbs: 4, Fat: 0.2},
		},
		"yogurt-none": {
			Name:        "None (omit)",
			Category:    ingredient.CategoryWet,
			Role:        ingredient.RoleMoisture,
			AmountRatio: 0,
		},
		"baking-powder": {
			Name:     "Baking Powder",
			Category: ingredient.CategoryDry,
			Role:     ingredient.RoleLeavening,
			IsFixed:  true,
		},
	}, nil)
}

// muffins is the standard fixture recipe: 12 servings, oat flour base
func (s *SessionTestSuite) muffins() *Session {
	return NewSession(s.catalog, Config{
		RecipeID:    "protein-muffins",
		Yield:       12,
		ServingSize: 75,
		Ingredients: []Line{
			{ID: "oat-flour", Amount: 200},
			{ID: "greek-yogurt", Amount: 150},
			{ID: "baking-powder", Amount: 8},
		},
		BaseNutrition: Nutrition{Calories: 150, Protein: 12, Fat: 6, Carbs: 10, Fiber: 1, Sugar: 3},
	})
}

func (s *SessionTestSuite) TestNewSession() {
	s.Run("Defaults_ShouldApplyWhenConfigIsEmpty", func() {
		sess := NewSession(s.catalog, Config{})

		s.Equal("unknown", sess.RecipeID())
		s.Equal(12, sess.Yield())
		s.Equal(75.0, sess.ServingSize())
		s.Empty(sess.Ingredients())
		s.Equal(Nutrition{}, sess.BaseNutrition())
		s.Equal(Nutrition{}, sess.CurrentNutrition())
		s.False(sess.HasSubstitutions())
		s.False(sess.HasHydrationAdjustment())
	})

	s.Run("Lines_ShouldBeStampedWithOriginals", func() {
		sess := s.muffins()

		lines := sess.Ingredients()
		s.Require().Len(lines, 3)
		s.Equal("oat-flour", lines[0].ID)
		s.Equal("oat-flour", lines[0].OriginalID)
		s.Equal(200.0, lines[0].OriginalAmount)
		s.False(lines[0].IsSwapped)
	})

	s.Run("Config_ShouldNotAliasSessionState", func() {
		cfg := Config{
			RecipeID:    "aliasing-check",
			Ingredients: []Line{{ID: "oat-flour", Amount: 200}},
		}
		sess := NewSession(s.catalog, cfg)

		cfg.Ingredients[0].ID = "mutated"
		cfg.Ingredients[0].Amount = 999

		lines := sess.Ingredients()
		s.Equal("oat-flour", lines[0].ID)
		s.Equal(200.0, lines[0].Amount)
	})

	s.Run("CurrentNutrition_ShouldEqualBaseBeforeAnySwap", func() {
		sess := s.muffins()
		s.Equal(sess.BaseNutrition(), sess.CurrentNutrition())
		s.Empty(sess.NutritionDeltas())
		s.Empty(sess.BatchNutritionDeltas())
	})
}

func (s *SessionTestSuite) TestSelectSubstitute() {
	s.Run("AmountRatio_ShouldScaleAndRoundTheOriginalAmount", func() {
		sess := s.muffins()

		sess.SelectSubstitute("oat-flour", "coconut-flour")

		line := sess.Ingredients()[0]
		s.Equal("coconut-flour", line.ID)
		s.Equal(50.0, line.Amount)
		s.Equal("oat-flour", line.OriginalID)
		s.Equal(200.0, line.OriginalAmount)
		s.True(line.IsSwapped)
		s.Equal(1, sess.SubstitutionCount())
	})

	s.Run("UnsetRatio_ShouldKeepTheOriginalAmount", func() {
		sess := s.muffins()

		sess.SelectSubstitute("greek-yogurt", "skyr")

		line := sess.Ingredients()[1]
		s.Equal("skyr", line.ID)
		s.Equal(150.0, line.Amount)
		s.True(line.IsSwapped)
	})

	s.Run("ZeroRatio_ShouldBehaveAsUnset", func() {
		sess := s.muffins()

		sess.SelectSubstitute("greek-yogurt", "yogurt-none")

		line := sess.Ingredients()[1]
		s.Equal("yogurt-none", line.ID)
		s.Equal(150.0, line.Amount)
	})

	s.Run("UnknownLine_ShouldBeANoOp", func() {
		sess := s.muffins()
		before := sess.Ingredients()

		sess.SelectSubstitute("nonexistent", "coconut-flour")

		s.Equal(before, sess.Ingredients())
	})

	s.Run("UnknownSubstitute_ShouldBeANoOp", func() {
		sess := s.muffins()
		before := sess.Ingredients()

		sess.SelectSubstitute("oat-flour", "nonexistent")

		s.Equal(before, sess.Ingredients())
	})

	s.Run("LineMissingFromCatalog_ShouldBeANoOp", func() {
		sess := NewSession(s.catalog, Config{
			Ingredients: []Line{{ID: "mystery-powder", Amount: 30}},
		})

		sess.SelectSubstitute("mystery-powder", "oat-flour")

		line := sess.Ingredients()[0]
		s.Equal("mystery-powder", line.ID)
		s.False(line.IsSwapped)
	})

	s.Run("SelectingTheOriginal_ShouldClearTheSwappedFlag", func() {
		sess := s.muffins()
		sess.SelectSubstitute("oat-flour", "coconut-flour")

		sess.SelectSubstitute("oat-flour", "oat-flour")

		line := sess.Ingredients()[0]
		s.Equal("oat-flour", line.ID)
		s.Equal(200.0, line.Amount)
		s.False(line.IsSwapped)
		s.False(sess.HasSubstitutions())
	})

	s.Run("Swap_ShouldCloseAnOpenPicker", func() {
		sess := s.muffins()
		sess.TogglePicker("oat-flour")
		s.Require().True(sess.IsExpanded("oat-flour"))

		sess.SelectSubstitute("oat-flour", "almond-flour")

		s.Equal("", sess.ExpandedIngredient())
	})

	s.Run("Reswap_ShouldAlwaysScaleFromTheOriginalAmount", func() {
		sess := s.muffins()

		sess.SelectSubstitute("oat-flour", "coconut-flour")
		sess.SelectSubstitute("oat-flour", "almond-flour")

		line := sess.Ingredients()[0]
		s.Equal("almond-flour", line.ID)
		s.Equal(200.0, line.Amount)
	})
}

func (s *SessionTestSuite) TestRevert() {
	s.Run("ShouldRestoreTheOriginalLine", func() {
		sess := s.muffins()
		sess.SelectSubstitute("oat-flour", "coconut-flour")

		sess.Revert("oat-flour")

		line := sess.Ingredients()[0]
		s.Equal("oat-flour", line.ID)
		s.Equal(200.0, line.Amount)
		s.False(line.IsSwapped)
		s.Equal(sess.BaseNutrition(), sess.CurrentNutrition())
		s.False(sess.HasHydrationAdjustment())
	})

	s.Run("UnknownLine_ShouldBeANoOp", func() {
		sess := s.muffins()
		before := sess.Ingredients()

		sess.Revert("nonexistent")

		s.Equal(before, sess.Ingredients())
	})

	s.Run("UnswappedLine_ShouldStayUnchanged", func() {
		sess := s.muffins()
		before := sess.Ingredients()

		sess.Revert("oat-flour")

		s.Equal(before, sess.Ingredients())
	})
}

func (s *SessionTestSuite) TestResetAll() {
	s.Run("ShouldRestoreEveryLineAndCloseThePicker", func() {
		sess := s.muffins()
		sess.SelectSubstitute("oat-flour", "coconut-flour")
		sess.SelectSubstitute("greek-yogurt", "skyr")
		sess.TogglePicker("oat-flour")

		sess.ResetAll()

		fresh := s.muffins()
		s.Equal(fresh.Ingredients(), sess.Ingredients())
		s.Equal("", sess.ExpandedIngredient())
		s.Equal(sess.BaseNutrition(), sess.CurrentNutrition())
		s.False(sess.HasSubstitutions())
	})

	s.Run("ShouldBeIdempotent", func() {
		sess := s.muffins()
		sess.SelectSubstitute("oat-flour", "coconut-flour")

		sess.ResetAll()
		after := sess.Ingredients()
		sess.ResetAll()

		s.Equal(after, sess.Ingredients())
	})
}

func (s *SessionTestSuite) TestTogglePicker() {
	s.Run("ShouldOpenForSwappableIngredients", func() {
		sess := s.muffins()

		sess.TogglePicker("oat-flour")

		s.True(sess.IsExpanded("oat-flour"))
	})

	s.Run("SecondToggle_ShouldClose", func() {
		sess := s.muffins()

		sess.TogglePicker("oat-flour")
		sess.TogglePicker("oat-flour")

		s.Equal("", sess.ExpandedIngredient())
	})

	s.Run("FixedIngredient_ShouldNotOpen", func() {
		sess := s.muffins()

		sess.TogglePicker("baking-powder")

		s.Equal("", sess.ExpandedIngredient())
	})

	s.Run("UnknownIngredient_ShouldNotOpen", func() {
		sess := s.muffins()

		sess.TogglePicker("nonexistent")

		s.Equal("", sess.ExpandedIngredient())
	})

	s.Run("AtMostOnePickerIsOpen", func() {
		sess := s.muffins()

		sess.TogglePicker("oat-flour")
		sess.TogglePicker("greek-yogurt")

		s.True(sess.IsExpanded("greek-yogurt"))
		s.False(sess.IsExpanded("oat-flour"))
	})

	s.Run("SwappedLine_ShouldMatchByCurrentIDAgainstOriginalRules", func() {
		sess := s.muffins()
		sess.SelectSubstitute("oat-flour", "coconut-flour")

		// coconut-flour itself has no substitutes; the check runs against
		// the line's original ingredient.
		sess.TogglePicker("coconut-flour")

		s.True(sess.IsExpanded("coconut-flour"))
	})
}

func (s *SessionTestSuite) TestDisplayName() {
	sess := NewSession(s.catalog, Config{
		Ingredients: []Line{
			{ID: "oat-flour", Name: "Rolled Oat Flour", Amount: 200},
			{ID: "greek-yogurt", Amount: 150},
		},
	})

	s.Equal("Rolled Oat Flour", sess.DisplayName("oat-flour"), "line name wins")
	s.Equal("Greek Yogurt", sess.DisplayName("greek-yogurt"), "catalog name")
	s.Equal("Casein Chocolate", sess.DisplayName("casein-chocolate"), "humanized fallback")
}

func (s *SessionTestSuite) TestSnapshot() {
	s.Run("RoundTrip_ShouldPreserveStateAndDerivedValues", func() {
		sess := s.muffins()
		sess.SelectSubstitute("oat-flour", "coconut-flour")
		sess.TogglePicker("greek-yogurt")

		data, err := json.Marshal(sess.Snapshot())
		s.Require().NoError(err)

		var snap Snapshot
		s.Require().NoError(json.Unmarshal(data, &snap))
		restored := FromSnapshot(s.catalog, snap)

		s.Equal(sess.RecipeID(), restored.RecipeID())
		s.Equal(sess.Ingredients(), restored.Ingredients())
		s.Equal(sess.ExpandedIngredient(), restored.ExpandedIngredient())
		s.Equal(sess.CurrentNutrition(), restored.CurrentNutrition())
		s.Equal(sess.HydrationAdjustments(), restored.HydrationAdjustments())
		s.Equal(sess.NutritionDeltas(), restored.NutritionDeltas())
		s.Equal(sess.BatchNutritionDeltas(), restored.BatchNutritionDeltas())
	})
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func BenchmarkSelectSubstitute(b *testing.B) {
	ts := new(SessionTestSuite)
	ts.SetupTest()
	sess := NewSession(ts.catalog, Config{
		Yield: 12,
		Ingredients: []Line{
			{ID: "oat-flour", Amount: 200},
			{ID: "greek-yogurt", Amount: 150},
		},
		BaseNutrition: Nutrition{Calories: 150, Protein: 12, Fat: 6, Carbs: 10},
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sess.SelectSubstitute("oat-flour", "coconut-flour")
		sess.Revert("oat-flour")
	}
}
