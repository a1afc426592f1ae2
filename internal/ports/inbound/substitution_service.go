// Package inbound defines the driving-side ports of the application
package inbound

import (
	"context"

	"github.com/google/uuid"
)

// SubstitutionService drives substitution sessions and catalog queries
type SubstitutionService interface {
	CreateSession(ctx context.Context, cmd CreateSessionCommand) (*SessionView, error)
	GetSession(ctx context.Context, id uuid.UUID) (*SessionView, error)
	SelectSubstitute(ctx context.Context, id uuid.UUID, originalID, newID string) (*SessionView, error)
	RevertIngredient(ctx context.Context, id uuid.UUID, originalID string) (*SessionView, error)
	ResetSession(ctx context.Context, id uuid.UUID) (*SessionView, error)
	TogglePicker(ctx context.Context, id uuid.UUID, ingredientID string) (*SessionView, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

// CreateSessionCommand carries the recipe input for a new session. Missing
// fields are defaulted by the engine, never rejected.
type CreateSessionCommand struct {
	RecipeID      string
	Yield         int
	ServingSize   float64
	Ingredients   []IngredientLineInput
	BaseNutrition NutritionInput
}

// IngredientLineInput is one recipe line as supplied by the caller
type IngredientLineInput struct {
	ID            string
	Name          string
	Amount        float64
	Unit          string
	DisplayAmount string
}

// NutritionInput is the recipe's published per-serving nutrition
type NutritionInput struct {
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
	Fiber    float64
	Sugar    float64
}

// SessionView is the full render model of a session after an operation
type SessionView struct {
	ID                 string               `json:"id"`
	RecipeID           string               `json:"recipeId"`
	Yield              int                  `json:"yield"`
	ServingSize        float64              `json:"servingSize"`
	Ingredients        []IngredientLineView `json:"ingredients"`
	ExpandedIngredient string               `json:"expandedIngredient,omitempty"`
	BaseNutrition      NutritionView        `json:"baseNutrition"`
	CurrentNutrition   NutritionView        `json:"currentNutrition"`
	NutritionDeltas    []DeltaView          `json:"nutritionDeltas"`
	BatchDeltas        []DeltaView          `json:"batchNutritionDeltas"`
	Hydration          HydrationView        `json:"hydration"`
	DailyValues        DailyValueView       `json:"dailyValues"`
	ProteinEnergy      ProteinEnergyView    `json:"proteinEnergy"`
	SubstitutionCount  int                  `json:"substitutionCount"`
	HasSubstitutions   bool                 `json:"hasSubstitutions"`
}

// IngredientLineView is one rendered ingredient line
type IngredientLineView struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Amount          float64          `json:"amount"`
	FormattedAmount string           `json:"formattedAmount"`
	Unit            string           `json:"unit,omitempty"`
	DisplayAmount   string           `json:"displayAmount,omitempty"`
	OriginalID      string           `json:"originalId"`
	OriginalAmount  float64          `json:"originalAmount"`
	IsSwapped       bool             `json:"isSwapped"`
	CanSubstitute   bool             `json:"canSubstitute"`
	IsExpanded      bool             `json:"isExpanded"`
	Substitutes     []SubstituteView `json:"substitutes,omitempty"`
}

// SubstituteView is one picker candidate
type SubstituteView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SwapNote      string `json:"swapNote,omitempty"`
	IsSpecialSwap bool   `json:"isSpecialSwap,omitempty"`
}

// NutritionView is per-serving nutrition
type NutritionView struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
}

// DeltaView is one surfaced macro change
type DeltaView struct {
	Name      string `json:"name"`
	Delta     int    `json:"delta"`
	Formatted string `json:"formatted"`
}

// HydrationView groups the liquid adjustments of the active swaps
type HydrationView struct {
	Adjustments   []HydrationAdjustmentView `json:"adjustments"`
	TotalML       int                       `json:"totalMl"`
	HasAdjustment bool                      `json:"hasAdjustment"`
}

// HydrationAdjustmentView is one liquid correction row
type HydrationAdjustmentView struct {
	Ingredient         string `json:"ingredient"`
	OriginalIngredient string `json:"originalIngredient"`
	AdjustmentML       int    `json:"adjustmentMl"`
	Message            string `json:"message"`
}

// DailyValueView is percent of reference daily intake per serving
type DailyValueView struct {
	Fat     int `json:"fat"`
	Carbs   int `json:"carbs"`
	Fiber   int `json:"fiber"`
	Protein int `json:"protein"`
}

// ProteinEnergyView is the protein-to-energy summary of a serving
type ProteinEnergyView struct {
	Ratio  float64 `json:"ratio"`
	Rating string  `json:"rating"`
}
