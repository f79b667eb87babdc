package recipes

import "github.com/shopspring/decimal"

type ingredientRequest struct {
	RawMaterialID string           `json:"raw_material_id" binding:"required"`
	Quantity      *decimal.Decimal `json:"quantity"`
}

type upsertRecipeRequest struct {
	ProcessTimeMinutes int                 `json:"process_time_minutes"`
	Ingredients        []ingredientRequest `json:"ingredients" binding:"dive"`
}
