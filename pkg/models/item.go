package models

import (
	"github.com/hopeIsCo0l/AnuTest/pkg/metadata"

	"github.com/shopspring/decimal"
)

// InventoryItem is a raw material or a finished product held in stock.
// CostPerUnit is the acquisition cost for raw materials and the standard price for products.
type InventoryItem struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Category    metadata.Category `json:"category"`
	Quantity    decimal.Decimal   `json:"quantity"`
	Unit        metadata.Unit     `json:"unit"`
	MinStock    decimal.Decimal   `json:"min_stock"`
	CostPerUnit decimal.Decimal   `json:"cost_per_unit"`
}

func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity.LessThanOrEqual(i.MinStock)
}

func (i *InventoryItem) IsRawMaterial() bool {
	return i.Category == metadata.CategoryRawMaterial
}

func (i *InventoryItem) IsProduct() bool {
	return i.Category == metadata.CategoryProduct
}

// StockValue is quantity times cost per unit.
func (i *InventoryItem) StockValue() decimal.Decimal {
	return i.Quantity.Mul(i.CostPerUnit)
}
