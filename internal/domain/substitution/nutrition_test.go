package substitution

func (s *SessionTestSuite) TestNutritionDeltas() {
	s.Run("CoconutFlourSwap_ShouldMatchTheReferenceNumbers", func() {
		sess := s.muffins()

		sess.SelectSubstitute("oat-flour", "coconut-flour")

		// Batch: oat 200g replaced by coconut 50g
		batch := sess.BatchNutritionDeltas()
		s.Require().Len(batch, 4)
		s.Equal(NutritionDelta{Name: "calories", Delta: -586, Formatted: "-586"}, batch[0])
		s.Equal(NutritionDelta{Name: "protein", Delta: -18, Formatted: "-18g"}, batch[1])
		s.Equal(NutritionDelta{Name: "fat", Delta: -12, Formatted: "-12g"}, batch[2])
		s.Equal(NutritionDelta{Name: "carbs", Delta: -102, Formatted: "-102g"}, batch[3])

		// Per serving at yield 12
		serving := sess.NutritionDeltas()
		s.Require().Len(serving, 4)
		s.Equal(NutritionDelta{Name: "calories", Delta: -49, Formatted: "-49"}, serving[0])
		s.Equal(NutritionDelta{Name: "protein", Delta: -2, Formatted: "-2g"}, serving[1])
		s.Equal(NutritionDelta{Name: "fat", Delta: -1, Formatted: "-1g"}, serving[2])
		s.Equal(NutritionDelta{Name: "carbs", Delta: -8, Formatted: "-8g"}, serving[3])
	})

	s.Run("CurrentNutrition_ShouldApplyBatchDeltaPerServing", func() {
		sess := s.muffins()

		sess.SelectSubstitute("oat-flour", "coconut-flour")

		// Fiber rises with the batch delta even though no fiber delta row is
		// surfaced; sugar is carried through untouched.
		s.Equal(Nutrition{
			Calories: 101,
			Protein:  10,
			Fat:      5,
			Carbs:    2,
			Fiber:    1,
			Sugar:    3,
		}, sess.CurrentNutrition())
	})

	s.Run("SmallChanges_ShouldFallUnderTheThresholds", func() {
		sess := NewSession(s.catalog, Config{
			Yield:         12,
			Ingredients:   []Line{{ID: "greek-yogurt", Amount: 100}},
			BaseNutrition: Nutrition{Calories: 150, Protein: 12, Fat: 6, Carbs: 10},
		})

		sess.SelectSubstitute("greek-yogurt", "skyr")

		// Calorie delta of 4 is under the 5-calorie batch floor; only the
		// 1g protein change survives. Per serving everything is noise.
		batch := sess.BatchNutritionDeltas()
		s.Require().Len(batch, 1)
		s.Equal(NutritionDelta{Name: "protein", Delta: 1, Formatted: "+1g"}, batch[0])
		s.Empty(sess.NutritionDeltas())
	})

	s.Run("Revert_ShouldRestoreBaseNutrition", func() {
		sess := s.muffins()
		sess.SelectSubstitute("oat-flour", "coconut-flour")

		sess.Revert("oat-flour")

		s.Equal(sess.BaseNutrition(), sess.CurrentNutrition())
		s.Empty(sess.BatchNutritionDeltas())
	})
}

func (s *SessionTestSuite) TestDailyValuePercents() {
	sess := s.muffins()

	dv := sess.DailyValuePercents()

	s.Equal(8, dv.Fat)      // 6/78
	s.Equal(4, dv.Carbs)    // 10/275
	s.Equal(4, dv.Fiber)    // 1/28
	s.Equal(24, dv.Protein) // 12/50
}

func (s *SessionTestSuite) TestProteinEnergy() {
	pe := func(n Nutrition) *Session {
		return NewSession(s.catalog, Config{BaseNutrition: n})
	}

	s.Run("Ratio_ShouldDivideProteinByNonProteinCalories", func() {
		sess := pe(Nutrition{Calories: 300, Protein: 30})
		s.InDelta(16.67, sess.ProteinEnergyRatio(), 0.01)
	})

	s.Run("NoNonProteinCalories_ShouldClampTo99", func() {
		sess := pe(Nutrition{Calories: 80, Protein: 25})
		s.Equal(99.0, sess.ProteinEnergyRatio())
		s.Equal(RatingElite, sess.ProteinEnergyRating())
	})

	s.Run("Rating_ShouldFollowTheBands", func() {
		s.Equal(RatingElite, pe(Nutrition{Calories: 300, Protein: 30}).ProteinEnergyRating())
		s.Equal(RatingExcellent, pe(Nutrition{Calories: 280, Protein: 24}).ProteinEnergyRating())
		s.Equal(RatingGood, pe(Nutrition{Calories: 300, Protein: 20}).ProteinEnergyRating())
		s.Equal(RatingModerate, pe(Nutrition{Calories: 300, Protein: 5}).ProteinEnergyRating())
	})
}
