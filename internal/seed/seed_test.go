package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hopeIsCo0l/AnuTest/pkg/metadata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	state, err := Default()
	require.NoError(t, err)

	assert.Len(t, state.Items, 12)
	assert.Len(t, state.Recipes, 5)
	assert.Empty(t, state.Batches)
	assert.Empty(t, state.Ledger)

	sugar := state.Items[0]
	assert.Equal(t, "rm_sugar", sugar.ID)
	assert.Equal(t, metadata.CategoryRawMaterial, sugar.Category)
	assert.Equal(t, metadata.UnitKilogram, sugar.Unit)
	assert.True(t, sugar.Quantity.Equal(decimal.NewFromInt(500)))
	assert.True(t, sugar.CostPerUnit.Equal(decimal.RequireFromString("1.2")))

	typeFour := state.Items[10]
	assert.Equal(t, "p_type4", typeFour.ID)
	assert.Equal(t, metadata.CategoryProduct, typeFour.Category)
	assert.True(t, typeFour.Quantity.IsZero())

	first := state.Recipes[0]
	assert.Equal(t, "p_type1", first.ProductID)
	assert.Equal(t, 45, first.ProcessTimeMinutes)
	require.Len(t, first.Ingredients, 3)
	assert.True(t, first.Ingredients[0].Quantity.Equal(decimal.RequireFromString("0.5")))
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "duplicate id",
			doc: `
raw_materials:
  - {id: rm_a, name: A, quantity: 1, unit: kg, min_stock: 0, cost_per_unit: 1}
products:
  - {id: rm_a, name: B, quantity: 1, unit: units, min_stock: 0, cost_per_unit: 1}
`,
		},
		{
			name: "unknown unit",
			doc: `
raw_materials:
  - {id: rm_a, name: A, quantity: 1, unit: gallons, min_stock: 0, cost_per_unit: 1}
`,
		},
		{
			name: "negative quantity",
			doc: `
raw_materials:
  - {id: rm_a, name: A, quantity: -1, unit: kg, min_stock: 0, cost_per_unit: 1}
`,
		},
		{
			name: "recipe for raw material",
			doc: `
raw_materials:
  - {id: rm_a, name: A, quantity: 1, unit: kg, min_stock: 0, cost_per_unit: 1}
recipes:
  - {product_id: rm_a, process_time_minutes: 10}
`,
		},
		{
			name: "ingredient is a product",
			doc: `
products:
  - {id: p_a, name: A, quantity: 1, unit: units, min_stock: 0, cost_per_unit: 1}
recipes:
  - product_id: p_a
    process_time_minutes: 10
    ingredients:
      - {raw_material_id: p_a, quantity: 1}
`,
		},
		{
			name: "zero ingredient quantity",
			doc: `
raw_materials:
  - {id: rm_a, name: A, quantity: 1, unit: kg, min_stock: 0, cost_per_unit: 1}
products:
  - {id: p_a, name: A, quantity: 1, unit: units, min_stock: 0, cost_per_unit: 1}
recipes:
  - product_id: p_a
    ingredients:
      - {raw_material_id: rm_a, quantity: 0}
`,
		},
		{
			name: "malformed yaml",
			doc:  "raw_materials: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_DefaultsProcessTime(t *testing.T) {
	state, err := Parse([]byte(`
raw_materials:
  - {id: rm_a, name: A, quantity: 1, unit: kg, min_stock: 0, cost_per_unit: 1}
products:
  - {id: p_a, name: A, quantity: 1, unit: units, min_stock: 0, cost_per_unit: 1}
recipes:
  - product_id: p_a
    ingredients:
      - {raw_material_id: rm_a, quantity: 2}
`))
	require.NoError(t, err)
	require.Len(t, state.Recipes, 1)
	assert.Equal(t, 30, state.Recipes[0].ProcessTimeMinutes)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
raw_materials:
  - {id: rm_a, name: A, quantity: 3, unit: kilogram, min_stock: 1, cost_per_unit: 2}
`), 0o600))

	state, err := Load(path)
	require.NoError(t, err)
	require.Len(t, state.Items, 1)
	assert.Equal(t, metadata.UnitKilogram, state.Items[0].Unit)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	state, err = Load("")
	require.NoError(t, err)
	assert.Len(t, state.Items, 12)
}
