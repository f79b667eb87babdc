package inventorylog

import (
	"fmt"

	"github.com/hopeIsCo0l/AnuTest/pkg/metadata"

	"github.com/shopspring/decimal"
)

// Ledger details are user facing and are matched by the history search, so their
// wording is stable.

const SystemReset = "System reset to factory defaults."

func Restocked(amount decimal.Decimal, unit metadata.Unit, name string) string {
	return fmt.Sprintf("Restocked %s %s of %s", amount.String(), unit, name)
}

func ItemCreated(name string, category metadata.Category) string {
	return fmt.Sprintf("Created new item: %s (%s)", name, category)
}

func CostUpdated(itemID string, cost decimal.Decimal) string {
	return fmt.Sprintf("Updated cost for item %s to ETB %s", itemID, cost.String())
}

func DetailsUpdated(name string) string {
	return fmt.Sprintf("Updated details for %s", name)
}

func ItemDeleted(itemID string) string {
	return fmt.Sprintf("Deleted product %s", itemID)
}

func RecipeUpdated(productID string) string {
	return fmt.Sprintf("Updated recipe configuration for product %s", productID)
}
