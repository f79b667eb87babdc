package seed

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/hopeIsCo0l/AnuTest/internal/repository"
	"github.com/hopeIsCo0l/AnuTest/pkg/metadata"
	"github.com/hopeIsCo0l/AnuTest/pkg/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

type itemDocument struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Quantity    decimal.Decimal `yaml:"quantity"`
	Unit        string          `yaml:"unit"`
	MinStock    decimal.Decimal `yaml:"min_stock"`
	CostPerUnit decimal.Decimal `yaml:"cost_per_unit"`
}

type ingredientDocument struct {
	RawMaterialID string          `yaml:"raw_material_id"`
	Quantity      decimal.Decimal `yaml:"quantity"`
}

type recipeDocument struct {
	ProductID          string               `yaml:"product_id"`
	ProcessTimeMinutes int                  `yaml:"process_time_minutes"`
	Ingredients        []ingredientDocument `yaml:"ingredients"`
}

type document struct {
	RawMaterials []itemDocument   `yaml:"raw_materials"`
	Products     []itemDocument   `yaml:"products"`
	Recipes      []recipeDocument `yaml:"recipes"`
}

// Default returns the embedded factory defaults.
func Default() (repository.State, error) {
	return Parse(defaultSeed)
}

// Load reads a seed file, or the embedded defaults when path is empty.
func Load(path string) (repository.State, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return repository.State{}, fmt.Errorf("unable to read seed file %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (repository.State, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return repository.State{}, fmt.Errorf("invalid seed document: %w", err)
	}

	var state repository.State
	categories := make(map[string]metadata.Category)

	convert := func(entries []itemDocument, category metadata.Category) error {
		for _, entry := range entries {
			item, err := toItem(entry, category)
			if err != nil {
				return err
			}
			if _, exists := categories[item.ID]; exists {
				return fmt.Errorf("duplicate item id %s", item.ID)
			}
			categories[item.ID] = category
			state.Items = append(state.Items, item)
		}
		return nil
	}

	if err := convert(doc.RawMaterials, metadata.CategoryRawMaterial); err != nil {
		return repository.State{}, err
	}
	if err := convert(doc.Products, metadata.CategoryProduct); err != nil {
		return repository.State{}, err
	}

	seenRecipes := make(map[string]bool)
	for _, entry := range doc.Recipes {
		if categories[entry.ProductID] != metadata.CategoryProduct {
			return repository.State{}, fmt.Errorf("recipe references unknown product %s", entry.ProductID)
		}
		if seenRecipes[entry.ProductID] {
			return repository.State{}, fmt.Errorf("duplicate recipe for product %s", entry.ProductID)
		}
		seenRecipes[entry.ProductID] = true

		processTime := entry.ProcessTimeMinutes
		if processTime == 0 {
			processTime = models.DefaultProcessTimeMinutes
		}
		if processTime < 0 {
			return repository.State{}, fmt.Errorf("recipe for %s has negative process time", entry.ProductID)
		}

		recipe := models.Recipe{ProductID: entry.ProductID, ProcessTimeMinutes: processTime}
		for _, line := range entry.Ingredients {
			if categories[line.RawMaterialID] != metadata.CategoryRawMaterial {
				return repository.State{}, fmt.Errorf("recipe for %s references unknown raw material %s", entry.ProductID, line.RawMaterialID)
			}
			if !line.Quantity.IsPositive() {
				return repository.State{}, fmt.Errorf("recipe for %s needs a positive quantity of %s", entry.ProductID, line.RawMaterialID)
			}
			recipe.Ingredients = append(recipe.Ingredients, models.Ingredient{
				RawMaterialID: line.RawMaterialID,
				Quantity:      line.Quantity,
			})
		}
		state.Recipes = append(state.Recipes, recipe)
	}

	return state, nil
}

func toItem(entry itemDocument, category metadata.Category) (models.InventoryItem, error) {
	if entry.ID == "" || entry.Name == "" {
		return models.InventoryItem{}, fmt.Errorf("seed item needs id and name")
	}
	unit, err := metadata.NewUnit(entry.Unit)
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("item %s: %w", entry.ID, err)
	}
	if entry.Quantity.IsNegative() || entry.MinStock.IsNegative() || entry.CostPerUnit.IsNegative() {
		return models.InventoryItem{}, fmt.Errorf("item %s has negative values", entry.ID)
	}
	return models.InventoryItem{
		ID:          entry.ID,
		Name:        entry.Name,
		Category:    category,
		Quantity:    entry.Quantity,
		Unit:        unit,
		MinStock:    entry.MinStock,
		CostPerUnit: entry.CostPerUnit,
	}, nil
}
