package production

import (
	"github.com/hopeIsCo0l/AnuTest/pkg/models"

	"github.com/shopspring/decimal"
)

// EstimateBatchCost sums line quantity × batch quantity × material cost per unit.
// Lines whose material is not in items contribute nothing.
func EstimateBatchCost(recipe models.Recipe, items []models.InventoryItem, quantity int) decimal.Decimal {
	byID := indexItems(items)
	q := decimal.NewFromInt(int64(quantity))
	total := decimal.Zero
	for _, line := range recipe.Ingredients {
		material, ok := byID[line.RawMaterialID]
		if !ok {
			continue
		}
		total = total.Add(line.Quantity.Mul(q).Mul(material.CostPerUnit))
	}
	return total
}

type PlanLine struct {
	RawMaterialID string          `json:"raw_material_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	NeededPerUnit decimal.Decimal `json:"needed_per_unit"`
	RequiredTotal decimal.Decimal `json:"required_total"`
	Available     decimal.Decimal `json:"available"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	HasEnough     bool            `json:"has_enough"`
}

// Plan is the read-only preview of a batch: what it consumes, what it costs and
// whether it could start right now.
type Plan struct {
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	Quantity           int             `json:"quantity"`
	ProcessTimeMinutes int             `json:"process_time_minutes"`
	HasRecipe          bool            `json:"has_recipe"`
	Ingredients        []PlanLine      `json:"ingredients"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	MaterialsReady     bool            `json:"materials_ready"`
	SlotsUsed          int             `json:"slots_used"`
	SlotsTotal         int             `json:"slots_total"`
	SlotAvailable      bool            `json:"slot_available"`
	CanProduce         bool            `json:"can_produce"`
}

func buildPlan(product models.InventoryItem, recipe *models.Recipe, items []models.InventoryItem, quantity, slotsUsed, slotsTotal int) Plan {
	plan := Plan{
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      quantity,
		Ingredients:   []PlanLine{},
		TotalCost:     decimal.Zero,
		UnitCost:      decimal.Zero,
		SlotsUsed:     slotsUsed,
		SlotsTotal:    slotsTotal,
		SlotAvailable: slotsUsed < slotsTotal,
	}
	if recipe == nil {
		return plan
	}

	plan.ProcessTimeMinutes = recipe.ProcessTimeMinutes
	plan.HasRecipe = recipe.HasIngredients()

	byID := indexItems(items)
	q := decimal.NewFromInt(int64(quantity))
	ready := true
	for _, line := range recipe.Ingredients {
		entry := PlanLine{
			RawMaterialID: line.RawMaterialID,
			Name:          "Unknown",
			NeededPerUnit: line.Quantity,
			RequiredTotal: line.Quantity.Mul(q),
			Available:     decimal.Zero,
			CostPerUnit:   decimal.Zero,
		}
		if material, ok := byID[line.RawMaterialID]; ok {
			entry.Name = material.Name
			entry.Unit = material.Unit.String()
			entry.Available = material.Quantity
			entry.CostPerUnit = material.CostPerUnit
		}
		entry.Subtotal = entry.RequiredTotal.Mul(entry.CostPerUnit)
		entry.HasEnough = entry.Available.GreaterThanOrEqual(entry.RequiredTotal)
		ready = ready && entry.HasEnough
		plan.Ingredients = append(plan.Ingredients, entry)
	}

	plan.TotalCost = EstimateBatchCost(*recipe, items, quantity)
	if quantity > 0 {
		plan.UnitCost = plan.TotalCost.Div(q)
	}
	plan.MaterialsReady = plan.HasRecipe && ready
	plan.CanProduce = plan.MaterialsReady && plan.SlotAvailable
	return plan
}

func indexItems(items []models.InventoryItem) map[string]models.InventoryItem {
	byID := make(map[string]models.InventoryItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID
}
