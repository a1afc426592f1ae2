// Package ingredient contains the ingredient catalog domain model
package ingredient

import "strings"

// Category describes how an ingredient behaves in a batter
type Category string

const (
	CategoryDry Category = "dry"
	CategoryWet Category = "wet"
)

// Role describes an ingredient's function in a recipe
type Role string

const (
	RoleStructure Role = "structure"
	RoleProtein   Role = "protein"
	RoleMoisture  Role = "moisture"
	RoleBinder    Role = "binder"
	RoleSweetener Role = "sweetener"
	RoleLeavening Role = "leavening"
	RoleFat       Role = "fat"
	RoleFlavor    Role = "flavor"
	RoleAddIn     Role = "add-in"
)

// Macros holds nutrition per 100g of the ingredient
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// Ingredient is an immutable catalog entry. The ID is the map key in the
// catalog source and is stamped during load.
type Ingredient struct {
	ID       string   `json:"-"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Role     Role     `json:"role"`
	Macros   Macros   `json:"macrosPer100g"`

	// HydrationFactor is the liquid absorbed per gram of the ingredient.
	HydrationFactor float64 `json:"hydrationFactor"`

	// AmountRatio scales the replaced line's amount when this ingredient is
	// swapped in. Zero means no scaling (swap gram for gram).
	AmountRatio float64 `json:"amountRatio,omitempty"`

	Substitutes   []string `json:"substitutes,omitempty"`
	IsFixed       bool     `json:"isFixed,omitempty"`
	IsSpecialSwap bool     `json:"isSpecialSwap,omitempty"`
	SwapNote      string   `json:"swapNote,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// IsDry reports whether the ingredient absorbs liquid when measured dry
func (i Ingredient) IsDry() bool {
	return i.Category == CategoryDry
}

// HumanizeID turns an ingredient ID like "greek-yogurt" into "Greek Yogurt".
// Used as the display-name fallback for IDs missing from the catalog.
func HumanizeID(id string) string {
	words := strings.Split(id, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
