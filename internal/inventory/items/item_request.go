package items

import "github.com/shopspring/decimal"

type createItemRequest struct {
	Name        string           `json:"name" binding:"required"`
	Category    string           `json:"category" binding:"required"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Unit        string           `json:"unit" binding:"required"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	CostPerUnit *decimal.Decimal `json:"cost_per_unit"`
}

type updateItemRequest struct {
	Name        string           `json:"name" binding:"required"`
	Category    string           `json:"category"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Unit        string           `json:"unit" binding:"required"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	CostPerUnit *decimal.Decimal `json:"cost_per_unit"`
}

type updateCostRequest struct {
	CostPerUnit *decimal.Decimal `json:"cost_per_unit"`
}

type retrieveItemListQuery struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	LowStock bool   `form:"low_stock"`
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
