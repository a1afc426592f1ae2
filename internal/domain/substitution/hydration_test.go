package substitution

func (s *SessionTestSuite) TestHydration() {
	s.Run("DrySwapWithHigherAbsorption_ShouldAddLiquid", func() {
		sess := s.muffins()

		sess.SelectSubstitute("oat-flour", "coconut-flour")

		adjs := sess.HydrationAdjustments()
		s.Require().Len(adjs, 1)
		// diff 0.6 x effective 50g = 30ml
		s.Equal(30, adjs[0].AdjustmentML)
		s.Equal("+30ml liquid", adjs[0].Message)
		s.Equal("Coconut Flour", adjs[0].IngredientName)
		s.Equal("Oat Flour", adjs[0].OriginalName)
		s.Equal(30, sess.TotalHydrationAdjustment())
		s.True(sess.HasHydrationAdjustment())
	})

	s.Run("DrySwapWithLowerAbsorption_ShouldRemoveLiquid", func() {
		sess := s.muffins()

		sess.SelectSubstitute("oat-flour", "almond-flour")

		adjs := sess.HydrationAdjustments()
		s.Require().Len(adjs, 1)
		s.Equal(-40, adjs[0].AdjustmentML)
		s.Equal("-40ml liquid", adjs[0].Message)
	})

	s.Run("WetOriginal_ShouldNeverAdjust", func() {
		sess := s.muffins()

		sess.SelectSubstitute("greek-yogurt", "skyr")

		s.Empty(sess.HydrationAdjustments())
		s.False(sess.HasHydrationAdjustment())
		s.Equal(0, sess.TotalHydrationAdjustment())
	})

	s.Run("EqualAbsorption_ShouldSuppressTheZeroRow", func() {
		sess := s.muffins()

		sess.SelectSubstitute("oat-flour", "spelt-flour")

		s.Empty(sess.HydrationAdjustments())
	})

	s.Run("EffectiveAmount_ShouldUseTheUnroundedRatioProduct", func() {
		sess := NewSession(s.catalog, Config{
			Ingredients: []Line{{ID: "oat-flour", Amount: 90}},
		})

		sess.SelectSubstitute("oat-flour", "coconut-flour")

		// Displayed amount rounds 22.5 to 23, but hydration scales the raw
		// 22.5g: 0.6 x 22.5 = 13.5 -> 14ml.
		s.Equal(23.0, sess.Ingredients()[0].Amount)
		adjs := sess.HydrationAdjustments()
		s.Require().Len(adjs, 1)
		s.Equal(14, adjs[0].AdjustmentML)
	})

	s.Run("MultipleSwaps_ShouldSumIntoTheTotal", func() {
		sess := NewSession(s.catalog, Config{
			Ingredients: []Line{
				{ID: "oat-flour", Amount: 200},
				{ID: "almond-flour", Amount: 100},
			},
		})

		sess.SelectSubstitute("oat-flour", "coconut-flour")
		sess.SelectSubstitute("almond-flour", "oat-flour")

		// +30ml from the coconut swap, +20ml from almond -> oat (diff 0.2 x 100)
		s.Len(sess.HydrationAdjustments(), 2)
		s.Equal(50, sess.TotalHydrationAdjustment())
	})
}
