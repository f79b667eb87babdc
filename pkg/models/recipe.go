package models

import "github.com/shopspring/decimal"

const DefaultProcessTimeMinutes = 30

type Ingredient struct {
	RawMaterialID string          `json:"raw_material_id"`
	Quantity      decimal.Decimal `json:"quantity"` // per single unit of product
}

// Recipe is the bill of materials of one product. ProcessTimeMinutes is descriptive only.
type Recipe struct {
	ProductID          string       `json:"product_id"`
	ProcessTimeMinutes int          `json:"process_time_minutes"`
	Ingredients        []Ingredient `json:"ingredients"`
}

func (r *Recipe) HasIngredients() bool {
	return len(r.Ingredients) > 0
}

func (r Recipe) Clone() Recipe {
	ingredients := make([]Ingredient, len(r.Ingredients))
	copy(ingredients, r.Ingredients)
	r.Ingredients = ingredients
	return r
}

// ResolvedIngredient is an ingredient line joined with the catalog for display.
type ResolvedIngredient struct {
	RawMaterialID string          `json:"raw_material_id"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit,omitempty"`
}

type RecipeView struct {
	ProductID          string               `json:"product_id"`
	ProductName        string               `json:"product_name"`
	ProcessTimeMinutes int                  `json:"process_time_minutes"`
	Ingredients        []ResolvedIngredient `json:"ingredients"`
}
