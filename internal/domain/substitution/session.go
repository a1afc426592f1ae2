// Package substitution implements per-recipe substitution sessions: ingredient
// swaps, hydration adjustments, and nutrition recalculation.
package substitution

import "github.com/proteinempire/ingredients/internal/domain/ingredient"

const (
	defaultYield       = 12
	defaultServingSize = 75
)

// Catalog is the ingredient lookup surface a session needs. Satisfied by
// *ingredient.Catalog.
type Catalog interface {
	Ingredient(id string) (ingredient.Ingredient, bool)
	Substitutes(id string) []ingredient.Substitute
	CanSubstitute(id string) bool
	DisplayName(id string) string
}

// Nutrition holds per-serving macros for a recipe
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
}

// Line is one ingredient line of a recipe. OriginalID, OriginalAmount and
// IsSwapped are session bookkeeping stamped at construction.
type Line struct {
	ID             string  `json:"id"`
	Name           string  `json:"name,omitempty"`
	Amount         float64 `json:"amount"`
	Unit           string  `json:"unit,omitempty"`
	DisplayAmount  string  `json:"displayAmount,omitempty"`
	OriginalID     string  `json:"originalId"`
	OriginalAmount float64 `json:"originalAmount"`
	IsSwapped      bool    `json:"isSwapped"`
}

// Config is the recipe input for a new session. Missing fields fall back to
// defaults; construction never fails.
type Config struct {
	RecipeID      string
	Yield         int
	ServingSize   float64
	Ingredients   []Line
	BaseNutrition Nutrition
}

// Session tracks the substitution state of one recipe view. It is a pure
// state machine: mutations absorb malformed input as no-ops and derived state
// is recomputed after every change. A session belongs to a single owner and
// is not safe for concurrent mutation.
type Session struct {
	recipeID    string
	yield       int
	servingSize float64
	catalog     Catalog

	base  Nutrition
	lines []Line

	// expanded is the ingredient whose picker is open, "" for none
	expanded string

	hydration     []HydrationAdjustment
	servingDeltas []NutritionDelta
	batchDeltas   []NutritionDelta
	current       Nutrition
}

// NewSession builds a session from a recipe config. The config's ingredient
// lines are copied, so later changes to the config do not leak in.
func NewSession(catalog Catalog, cfg Config) *Session {
	recipeID := cfg.RecipeID
	if recipeID == "" {
		recipeID = "unknown"
	}
	yield := cfg.Yield
	if yield <= 0 {
		yield = defaultYield
	}
	servingSize := cfg.ServingSize
	if servingSize <= 0 {
		servingSize = defaultServingSize
	}

	lines := make([]Line, len(cfg.Ingredients))
	for i, ln := range cfg.Ingredients {
		ln.OriginalID = ln.ID
		ln.OriginalAmount = ln.Amount
		ln.IsSwapped = false
		lines[i] = ln
	}

	s := &Session{
		recipeID:    recipeID,
		yield:       yield,
		servingSize: servingSize,
		catalog:     catalog,
		base:        cfg.BaseNutrition,
		lines:       lines,
		current:     cfg.BaseNutrition,
	}
	s.recalculate()
	return s
}

// SelectSubstitute swaps the line originally holding originalID to newID.
// The new amount is the original amount scaled by the substitute's amount
// ratio, rounded; an unset ratio keeps the amount as-is. Unknown lines or
// IDs that do not resolve in the catalog make this a no-op. The picker
// closes either way a swap happens.
func (s *Session) SelectSubstitute(originalID, newID string) {
	idx := s.lineIndex(originalID)
	if idx < 0 {
		return
	}
	if _, ok := s.catalog.Ingredient(originalID); !ok {
		return
	}
	sub, ok := s.catalog.Ingredient(newID)
	if !ok {
		return
	}

	line := &s.lines[idx]
	amount := line.OriginalAmount
	if sub.AmountRatio != 0 {
		amount = roundHalfUp(line.OriginalAmount * sub.AmountRatio)
	}
	line.ID = newID
	line.Amount = amount
	line.IsSwapped = newID != line.OriginalID

	s.expanded = ""
	s.recalculate()
}

// Revert restores a single line to its original ingredient and amount.
// Unknown lines are a no-op; no catalog access is needed.
func (s *Session) Revert(originalID string) {
	idx := s.lineIndex(originalID)
	if idx < 0 {
		return
	}
	line := &s.lines[idx]
	line.ID = line.OriginalID
	line.Amount = line.OriginalAmount
	line.IsSwapped = false
	s.recalculate()
}

// ResetAll reverts every line and closes any open picker
func (s *Session) ResetAll() {
	for i := range s.lines {
		s.lines[i].ID = s.lines[i].OriginalID
		s.lines[i].Amount = s.lines[i].OriginalAmount
		s.lines[i].IsSwapped = false
	}
	s.expanded = ""
	s.recalculate()
}

// TogglePicker opens or closes the substitute picker for an ingredient.
// A second toggle on the open ingredient closes it. Opening matches the ID
// against either the line's current or original ingredient, and only succeeds
// when the original ingredient has substitutes.
func (s *Session) TogglePicker(id string) {
	if s.expanded == id {
		s.expanded = ""
		return
	}
	for _, ln := range s.lines {
		if ln.ID == id || ln.OriginalID == id {
			if s.catalog.CanSubstitute(ln.OriginalID) {
				s.expanded = id
			}
			return
		}
	}
}

// RecipeID returns the recipe this session was created from
func (s *Session) RecipeID() string { return s.recipeID }

// Yield returns the number of servings the batch makes
func (s *Session) Yield() int { return s.yield }

// ServingSize returns the nominal serving size in grams (display only)
func (s *Session) ServingSize() float64 { return s.servingSize }

// BaseNutrition returns the recipe's published per-serving nutrition
func (s *Session) BaseNutrition() Nutrition { return s.base }

// CurrentNutrition returns per-serving nutrition with all active swaps
// applied. Sugar is carried through from the base unchanged.
func (s *Session) CurrentNutrition() Nutrition { return s.current }

// Ingredients returns a copy of the current ingredient lines
func (s *Session) Ingredients() []Line {
	return append([]Line(nil), s.lines...)
}

// ExpandedIngredient returns the ID whose picker is open, "" for none
func (s *Session) ExpandedIngredient() string { return s.expanded }

// IsExpanded reports whether the picker is open for the given ingredient
func (s *Session) IsExpanded(id string) bool { return id != "" && s.expanded == id }

// HasSubstitutions reports whether any line is currently swapped
func (s *Session) HasSubstitutions() bool {
	return s.SubstitutionCount() > 0
}

// SubstitutionCount returns the number of currently swapped lines
func (s *Session) SubstitutionCount() int {
	n := 0
	for _, ln := range s.lines {
		if ln.IsSwapped {
			n++
		}
	}
	return n
}

// DisplayName resolves a human-readable name for an ingredient ID: the
// recipe line's own name wins, then the catalog, then a humanized ID.
func (s *Session) DisplayName(id string) string {
	for _, ln := range s.lines {
		if (ln.ID == id || ln.OriginalID == id) && ln.Name != "" {
			return ln.Name
		}
	}
	return s.catalog.DisplayName(id)
}

func (s *Session) lineIndex(originalID string) int {
	for i := range s.lines {
		if s.lines[i].OriginalID == originalID {
			return i
		}
	}
	return -1
}

func (s *Session) recalculate() {
	s.recalculateHydration()
	s.recalculateNutrition()
}

// Snapshot is the serializable state of a session, sufficient to rebuild it
// against the same catalog.
type Snapshot struct {
	RecipeID      string    `json:"recipeId"`
	Yield         int       `json:"yield"`
	ServingSize   float64   `json:"servingSize"`
	BaseNutrition Nutrition `json:"baseNutrition"`
	Ingredients   []Line    `json:"ingredients"`
	Expanded      string    `json:"expandedIngredient,omitempty"`
}

// Snapshot captures the session's state for persistence. Derived state is
// not included; restoring recomputes it.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		RecipeID:      s.recipeID,
		Yield:         s.yield,
		ServingSize:   s.servingSize,
		BaseNutrition: s.base,
		Ingredients:   append([]Line(nil), s.lines...),
		Expanded:      s.expanded,
	}
}

// FromSnapshot rebuilds a session from persisted state, keeping the stamped
// line bookkeeping as stored and recomputing derived state.
func FromSnapshot(catalog Catalog, snap Snapshot) *Session {
	s := &Session{
		recipeID:    snap.RecipeID,
		yield:       snap.Yield,
		servingSize: snap.ServingSize,
		catalog:     catalog,
		base:        snap.BaseNutrition,
		lines:       append([]Line(nil), snap.Ingredients...),
		expanded:    snap.Expanded,
		current:     snap.BaseNutrition,
	}
	if s.yield <= 0 {
		s.yield = defaultYield
	}
	if s.servingSize <= 0 {
		s.servingSize = defaultServingSize
	}
	s.recalculate()
	return s
}
