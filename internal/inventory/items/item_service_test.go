package items

import (
	"context"
	"strings"
	"testing"

	"github.com/hopeIsCo0l/AnuTest/internal/production"
	"github.com/hopeIsCo0l/AnuTest/internal/repository"
	"github.com/hopeIsCo0l/AnuTest/internal/seed"
	custom_error "github.com/hopeIsCo0l/AnuTest/pkg/errors"
	"github.com/hopeIsCo0l/AnuTest/pkg/metadata"
	"github.com/hopeIsCo0l/AnuTest/pkg/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newSeededService(t *testing.T) (*ItemService, *repository.Repository) {
	t.Helper()
	state, err := seed.Default()
	require.NoError(t, err)
	repo := repository.NewRepository(state)
	return NewItemService(repo, zap.NewNop()), repo
}

func lastEntry(t *testing.T, repo *repository.Repository) models.Transaction {
	t.Helper()
	ledger := repo.Snapshot().Ledger
	require.NotEmpty(t, ledger)
	return ledger[len(ledger)-1]
}

func TestAddItem_Product(t *testing.T) {
	service, repo := newSeededService(t)

	item, err := service.AddItem("Factory Admin", NewItem{
		Name:        "  Mint Drops ",
		Category:    metadata.CategoryProduct,
		Quantity:    dec("12"),
		Unit:        metadata.UnitCount,
		MinStock:    dec("5"),
		CostPerUnit: dec("3.5"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(item.ID, "p_"))
	assert.Equal(t, "Mint Drops", item.Name)

	state := repo.Snapshot()
	assert.Len(t, state.Items, 13)
	var placeholder *models.Recipe
	for i := range state.Recipes {
		if state.Recipes[i].ProductID == item.ID {
			placeholder = &state.Recipes[i]
		}
	}
	require.NotNil(t, placeholder)
	assert.Equal(t, 30, placeholder.ProcessTimeMinutes)
	assert.Empty(t, placeholder.Ingredients)

	entry := lastEntry(t, repo)
	assert.Equal(t, models.TransactionAdjustment, entry.Type())
	assert.Equal(t, "Created new item: Mint Drops (PRODUCT)", entry.Details)
	assert.Equal(t, "Factory Admin", entry.PerformedBy)
	require.NotNil(t, entry.Amount())
	assert.True(t, entry.Amount().Equal(dec("12")))
}

func TestAddItem_RawMaterialHasNoRecipe(t *testing.T) {
	service, repo := newSeededService(t)

	item, err := service.AddItem("", NewItem{Name: "Cocoa", Category: metadata.CategoryRawMaterial, Unit: metadata.UnitKilogram})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(item.ID, "rm_"))
	assert.Len(t, repo.Snapshot().Recipes, 5)
	assert.Equal(t, models.SystemActor, lastEntry(t, repo).PerformedBy)
}

func TestAddItem_Validation(t *testing.T) {
	tests := []struct {
		name string
		item NewItem
	}{
		{"empty name", NewItem{Name: " ", Category: metadata.CategoryProduct, Unit: metadata.UnitCount}},
		{"bad category", NewItem{Name: "X", Category: "FOOD", Unit: metadata.UnitCount}},
		{"bad unit", NewItem{Name: "X", Category: metadata.CategoryProduct, Unit: "g"}},
		{"negative quantity", NewItem{Name: "X", Category: metadata.CategoryProduct, Unit: metadata.UnitCount, Quantity: dec("-1")}},
		{"negative cost", NewItem{Name: "X", Category: metadata.CategoryProduct, Unit: metadata.UnitCount, CostPerUnit: dec("-0.01")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newSeededService(t)
			_, err := service.AddItem("", tt.item)
			assert.ErrorIs(t, err, custom_error.ErrValidation)
			assert.Empty(t, repo.Snapshot().Ledger)
		})
	}
}

func TestUpdateCost(t *testing.T) {
	service, repo := newSeededService(t)

	item, err := service.UpdateCost("", "rm_sugar", dec("1.75"))
	require.NoError(t, err)
	assert.True(t, item.CostPerUnit.Equal(dec("1.75")))
	assert.Equal(t, "Updated cost for item rm_sugar to ETB 1.75", lastEntry(t, repo).Details)

	_, err = service.UpdateCost("", "rm_sugar", dec("-1"))
	assert.ErrorIs(t, err, custom_error.ErrValidation)

	_, err = service.UpdateCost("", "rm_nope", dec("1"))
	assert.ErrorIs(t, err, custom_error.ErrNotFound)
	assert.Len(t, repo.Snapshot().Ledger, 1)
}

func TestUpdateItem(t *testing.T) {
	service, repo := newSeededService(t)

	updated, err := service.UpdateItem("", models.InventoryItem{
		ID:          "p_type1",
		Name:        "Lollipop Classic",
		Quantity:    dec("70"),
		Unit:        metadata.UnitCount,
		MinStock:    dec("25"),
		CostPerUnit: dec("16"),
	})
	require.NoError(t, err)
	assert.Equal(t, metadata.CategoryProduct, updated.Category)

	got, err := service.Get("p_type1")
	require.NoError(t, err)
	assert.Equal(t, "Lollipop Classic", got.Name)
	assert.True(t, got.Quantity.Equal(dec("70")))
	assert.Equal(t, "Updated details for Lollipop Classic", lastEntry(t, repo).Details)
}

func TestUpdateItem_Rejects(t *testing.T) {
	service, repo := newSeededService(t)

	_, err := service.UpdateItem("", models.InventoryItem{ID: "p_type1", Name: "X", Category: metadata.CategoryRawMaterial, Unit: metadata.UnitCount})
	assert.ErrorIs(t, err, custom_error.ErrValidation)

	_, err = service.UpdateItem("", models.InventoryItem{ID: "p_type1", Name: "X", Unit: metadata.UnitCount, MinStock: dec("-2")})
	assert.ErrorIs(t, err, custom_error.ErrValidation)

	_, err = service.UpdateItem("", models.InventoryItem{ID: "p_gone", Name: "X", Unit: metadata.UnitCount})
	assert.ErrorIs(t, err, custom_error.ErrNotFound)

	assert.Empty(t, repo.Snapshot().Ledger)
}

func TestDeleteItem_ProductCascadesRecipe(t *testing.T) {
	service, repo := newSeededService(t)
	workflow := production.NewProductionService(repo, zap.NewNop(), production.MaxProductionSlots)

	require.NoError(t, service.DeleteItem("", "p_type2"))

	state := repo.Snapshot()
	for _, recipe := range state.Recipes {
		assert.NotEqual(t, "p_type2", recipe.ProductID)
	}
	assert.Equal(t, "Deleted product p_type2", lastEntry(t, repo).Details)

	result, err := workflow.StartProduction(context.Background(), "", "p_type2", 1, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, custom_error.ReasonNoRecipe, result.Reason)
}

func TestDeleteItem_ProductWithActiveBatch(t *testing.T) {
	service, repo := newSeededService(t)
	workflow := production.NewProductionService(repo, zap.NewNop(), production.MaxProductionSlots)

	started, err := workflow.StartProduction(context.Background(), "", "p_type1", 1, nil)
	require.NoError(t, err)
	require.True(t, started.Success)

	err = service.DeleteItem("", "p_type1")
	assert.ErrorIs(t, err, custom_error.ErrInUse)

	_, err = service.Get("p_type1")
	assert.NoError(t, err)
}

func TestDeleteItem_RawMaterialReferencedByRecipe(t *testing.T) {
	service, repo := newSeededService(t)

	err := service.DeleteItem("", "rm_sugar")
	assert.ErrorIs(t, err, custom_error.ErrInUse)
	assert.Empty(t, repo.Snapshot().Ledger)

	unused, err := service.AddItem("", NewItem{Name: "Cocoa", Category: metadata.CategoryRawMaterial, Unit: metadata.UnitKilogram})
	require.NoError(t, err)
	require.NoError(t, service.DeleteItem("", unused.ID))

	err = service.DeleteItem("", unused.ID)
	assert.ErrorIs(t, err, custom_error.ErrNotFound)
}

func TestList(t *testing.T) {
	service, _ := newSeededService(t)

	assert.Len(t, service.List(ListFilter{}), 12)
	assert.Len(t, service.List(ListFilter{Category: metadata.CategoryRawMaterial}), 7)
	assert.Len(t, service.List(ListFilter{Category: metadata.CategoryProduct}), 5)

	found := service.List(ListFilter{Search: "plastic"})
	require.Len(t, found, 2)
	assert.Equal(t, "rm_pbag", found[0].ID)

	// Type 4 sits at 0 of 15 and Type 5 at 5 of 10.
	low := service.List(ListFilter{LowStockOnly: true})
	require.Len(t, low, 2)
	assert.Equal(t, "p_type4", low[0].ID)
	assert.Equal(t, "p_type5", low[1].ID)

	assert.NotNil(t, service.List(ListFilter{Search: "nothing matches"}))
}
