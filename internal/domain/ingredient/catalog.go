package ingredient

import "sort"

// Substitute is a picker candidate resolved from the catalog
type Substitute struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SwapNote      string `json:"swapNote,omitempty"`
	IsSpecialSwap bool   `json:"isSpecialSwap,omitempty"`
}

// Catalog is the read-only ingredient database. It is immutable after
// construction and safe for concurrent use.
type Catalog struct {
	ingredients map[string]Ingredient
	groups      map[string][]string
}

// NewCatalog builds a catalog from an ingredient map keyed by ID and a set of
// named substitution groups. Both maps are copied; IDs are stamped from keys.
func NewCatalog(ingredients map[string]Ingredient, groups map[string][]string) *Catalog {
	ings := make(map[string]Ingredient, len(ingredients))
	for id, ing := range ingredients {
		ing.ID = id
		ings[id] = ing
	}
	grps := make(map[string][]string, len(groups))
	for name, members := range groups {
		grps[name] = append([]string(nil), members...)
	}
	return &Catalog{ingredients: ings, groups: grps}
}

// Ingredient looks up an ingredient by ID. Lookups never fail hard; a missing
// ID reports ok=false.
func (c *Catalog) Ingredient(id string) (Ingredient, bool) {
	ing, ok := c.ingredients[id]
	return ing, ok
}

// Substitutes returns the picker candidates for an ingredient, in declared
// order. Missing or fixed ingredients have none. Declared substitutes that do
// not resolve in the catalog are dropped.
func (c *Catalog) Substitutes(id string) []Substitute {
	ing, ok := c.ingredients[id]
	if !ok || ing.IsFixed {
		return nil
	}
	subs := make([]Substitute, 0, len(ing.Substitutes))
	for _, subID := range ing.Substitutes {
		sub, ok := c.ingredients[subID]
		if !ok {
			continue
		}
		subs = append(subs, Substitute{
			ID:            subID,
			Name:          sub.Name,
			SwapNote:      sub.SwapNote,
			IsSpecialSwap: sub.IsSpecialSwap,
		})
	}
	return subs
}

// CanSubstitute reports whether the picker may open for an ingredient: it
// resolves, is not fixed, and declares at least one substitute. The declared
// list is checked before dangling references are filtered, so an ingredient
// whose only declared substitute is unknown still reports true and then
// renders an empty picker.
func (c *Catalog) CanSubstitute(id string) bool {
	ing, ok := c.ingredients[id]
	return ok && !ing.IsFixed && len(ing.Substitutes) > 0
}

// DisplayName returns the catalog name for an ID, or a humanized form of the
// ID itself when it is not in the catalog.
func (c *Catalog) DisplayName(id string) string {
	if ing, ok := c.ingredients[id]; ok && ing.Name != "" {
		return ing.Name
	}
	return HumanizeID(id)
}

// Group returns the member IDs of a named substitution group, or nil when the
// group does not exist.
func (c *Catalog) Group(name string) []string {
	members, ok := c.groups[name]
	if !ok {
		return nil
	}
	return append([]string(nil), members...)
}

// GroupNames returns the substitution group names in sorted order
func (c *Catalog) GroupNames() []string {
	names := make([]string, 0, len(c.groups))
	for name := range c.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of ingredients in the catalog
func (c *Catalog) Len() int {
	return len(c.ingredients)
}
