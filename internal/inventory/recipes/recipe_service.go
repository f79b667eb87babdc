package recipes

import (
	inventorylog "github.com/hopeIsCo0l/AnuTest/internal/inventory/inventory_log"
	"github.com/hopeIsCo0l/AnuTest/internal/repository"
	custom_error "github.com/hopeIsCo0l/AnuTest/pkg/errors"
	"github.com/hopeIsCo0l/AnuTest/pkg/models"

	"go.uber.org/zap"
)

const unknownMaterial = "Unknown"

type RecipeService struct {
	r   *repository.Repository
	log *zap.Logger
}

func NewRecipeService(r *repository.Repository, log *zap.Logger) *RecipeService {
	return &RecipeService{r: r, log: log}
}

// UpsertRecipe replaces the recipe of recipe.ProductID wholesale, or inserts it.
func (s *RecipeService) UpsertRecipe(actor string, recipe models.Recipe) (models.RecipeView, error) {
	if recipe.ProcessTimeMinutes <= 0 {
		return models.RecipeView{}, custom_error.Validation("process time must be a positive number of minutes")
	}

	var view models.RecipeView
	err := s.r.WithTransaction("recipes.upsert", func(tx *repository.Tx) error {
		product, ok := tx.FindItem(recipe.ProductID)
		if !ok {
			return custom_error.NotFound(recipe.ProductID, "product %s not found", recipe.ProductID)
		}
		if !product.IsProduct() {
			return custom_error.Validation("%s is not a product", recipe.ProductID)
		}

		seen := make(map[string]bool, len(recipe.Ingredients))
		for _, line := range recipe.Ingredients {
			if seen[line.RawMaterialID] {
				return custom_error.Validation("raw material %s is listed twice", line.RawMaterialID)
			}
			seen[line.RawMaterialID] = true

			material, ok := tx.FindItem(line.RawMaterialID)
			if !ok || !material.IsRawMaterial() {
				return custom_error.Validation("ingredient %s is not a known raw material", line.RawMaterialID)
			}
			if !line.Quantity.IsPositive() {
				return custom_error.Validation("quantity of %s must be positive", line.RawMaterialID)
			}
		}

		tx.PutRecipe(recipe)
		tx.Append(actor, inventorylog.RecipeUpdated(recipe.ProductID), models.AdjustmentEvent{Subject: recipe.ProductID})
		view = resolve(recipe, tx.Items())
		return nil
	})
	if err != nil {
		return models.RecipeView{}, err
	}

	s.log.Info("Recipe updated", zap.String("product_id", recipe.ProductID), zap.Int("ingredients", len(recipe.Ingredients)))
	return view, nil
}

func (s *RecipeService) List() []models.RecipeView {
	state := s.r.Snapshot()
	views := make([]models.RecipeView, 0, len(state.Recipes))
	for _, recipe := range state.Recipes {
		views = append(views, resolve(recipe, state.Items))
	}
	return views
}

func (s *RecipeService) Get(productID string) (models.RecipeView, error) {
	state := s.r.Snapshot()
	for _, recipe := range state.Recipes {
		if recipe.ProductID == productID {
			return resolve(recipe, state.Items), nil
		}
	}
	return models.RecipeView{}, custom_error.NotFound(productID, "no recipe for product %s", productID)
}

// resolve joins ingredient lines with the catalog. Missing materials show as Unknown.
func resolve(recipe models.Recipe, items []models.InventoryItem) models.RecipeView {
	byID := make(map[string]models.InventoryItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	view := models.RecipeView{
		ProductID:          recipe.ProductID,
		ProductName:        unknownMaterial,
		ProcessTimeMinutes: recipe.ProcessTimeMinutes,
		Ingredients:        make([]models.ResolvedIngredient, 0, len(recipe.Ingredients)),
	}
	if product, ok := byID[recipe.ProductID]; ok {
		view.ProductName = product.Name
	}

	for _, line := range recipe.Ingredients {
		resolved := models.ResolvedIngredient{RawMaterialID: line.RawMaterialID, Name: unknownMaterial, Quantity: line.Quantity}
		if material, ok := byID[line.RawMaterialID]; ok {
			resolved.Name = material.Name
			resolved.Unit = material.Unit.String()
		}
		view.Ingredients = append(view.Ingredients, resolved)
	}
	return view
}
