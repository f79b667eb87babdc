package production

import "github.com/shopspring/decimal"

type StartProductionRequest struct {
	ProductID     string           `json:"product_id" binding:"required"`
	Quantity      int              `json:"quantity"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost"`
}

type PlanQuery struct {
	ProductID string `form:"product_id" binding:"required"`
	Quantity  int    `form:"quantity"`
}
