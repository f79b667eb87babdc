package items

import (
	"strings"

	inventorylog "github.com/hopeIsCo0l/AnuTest/internal/inventory/inventory_log"
	"github.com/hopeIsCo0l/AnuTest/internal/repository"
	custom_error "github.com/hopeIsCo0l/AnuTest/pkg/errors"
	"github.com/hopeIsCo0l/AnuTest/pkg/metadata"
	"github.com/hopeIsCo0l/AnuTest/pkg/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type NewItem struct {
	Name        string
	Category    metadata.Category
	Quantity    decimal.Decimal
	Unit        metadata.Unit
	MinStock    decimal.Decimal
	CostPerUnit decimal.Decimal
}

type ListFilter struct {
	Category     metadata.Category
	Search       string
	LowStockOnly bool
}

type ItemService struct {
	r   *repository.Repository
	log *zap.Logger
}

func NewItemService(r *repository.Repository, log *zap.Logger) *ItemService {
	return &ItemService{r: r, log: log}
}

// AddItem registers a new raw material or product. A new product gets an empty
// recipe so it shows up in the recipe editor.
func (s *ItemService) AddItem(actor string, req NewItem) (models.InventoryItem, error) {
	item := models.InventoryItem{
		Name:        strings.TrimSpace(req.Name),
		Category:    req.Category,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		MinStock:    req.MinStock,
		CostPerUnit: req.CostPerUnit,
	}
	if !item.Category.IsValid() {
		return models.InventoryItem{}, custom_error.Validation("invalid category %q", item.Category)
	}
	if err := validateItem(item); err != nil {
		return models.InventoryItem{}, err
	}

	err := s.r.WithTransaction("items.create", func(tx *repository.Tx) error {
		item.ID = item.Category.KeyPrefix() + "_" + tx.NewID()
		tx.PutItem(item)

		if item.IsProduct() {
			if _, exists := tx.FindRecipe(item.ID); !exists {
				tx.PutRecipe(models.Recipe{ProductID: item.ID, ProcessTimeMinutes: models.DefaultProcessTimeMinutes})
			}
		}

		amount := item.Quantity
		tx.Append(actor, inventorylog.ItemCreated(item.Name, item.Category), models.AdjustmentEvent{Subject: item.ID, Amount: &amount})
		return nil
	})
	if err != nil {
		return models.InventoryItem{}, err
	}

	s.log.Info("Inventory item created", zap.String("item_id", item.ID), zap.String("category", item.Category.String()))
	return item, nil
}

func (s *ItemService) UpdateCost(actor, id string, cost decimal.Decimal) (models.InventoryItem, error) {
	if cost.IsNegative() {
		return models.InventoryItem{}, custom_error.Validation("cost per unit must not be negative")
	}

	var updated models.InventoryItem
	err := s.r.WithTransaction("items.update_cost", func(tx *repository.Tx) error {
		item, ok := tx.FindItem(id)
		if !ok {
			return custom_error.NotFound(id, "item %s not found", id)
		}
		item.CostPerUnit = cost
		tx.PutItem(item)
		tx.Append(actor, inventorylog.CostUpdated(id, cost), models.AdjustmentEvent{Subject: id})
		updated = item
		return nil
	})
	if err != nil {
		return models.InventoryItem{}, err
	}

	s.log.Info("Item cost updated", zap.String("item_id", id), zap.String("cost", cost.String()))
	return updated, nil
}

// UpdateItem replaces every editable field of an item. The category of an item is
// fixed at creation; an empty category in item means "unchanged".
func (s *ItemService) UpdateItem(actor string, item models.InventoryItem) (models.InventoryItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if err := validateItem(item); err != nil {
		return models.InventoryItem{}, err
	}

	err := s.r.WithTransaction("items.update", func(tx *repository.Tx) error {
		existing, ok := tx.FindItem(item.ID)
		if !ok {
			return custom_error.NotFound(item.ID, "item %s not found", item.ID)
		}
		if item.Category == "" {
			item.Category = existing.Category
		}
		if item.Category != existing.Category {
			return custom_error.Validation("category of %s cannot change from %s to %s", item.ID, existing.Category, item.Category)
		}
		tx.PutItem(item)
		tx.Append(actor, inventorylog.DetailsUpdated(item.Name), models.AdjustmentEvent{Subject: item.ID})
		return nil
	})
	if err != nil {
		return models.InventoryItem{}, err
	}

	s.log.Info("Item details updated", zap.String("item_id", item.ID))
	return item, nil
}

// DeleteItem removes an item. Deleting a product also deletes its recipe, but not
// while one of its batches is running. A raw material used by any recipe is kept.
func (s *ItemService) DeleteItem(actor, id string) error {
	err := s.r.WithTransaction("items.delete", func(tx *repository.Tx) error {
		item, ok := tx.FindItem(id)
		if !ok {
			return custom_error.NotFound(id, "item %s not found", id)
		}

		if item.IsProduct() {
			for _, batch := range tx.Batches() {
				if batch.ProductID == id {
					return custom_error.New(custom_error.ReasonInUse, id, "product %s has an active batch %s", id, batch.ID)
				}
			}
			tx.RemoveRecipe(id)
		} else {
			for _, recipe := range tx.Recipes() {
				for _, line := range recipe.Ingredients {
					if line.RawMaterialID == id {
						return custom_error.New(custom_error.ReasonInUse, id, "raw material %s is used by the recipe of %s", id, recipe.ProductID)
					}
				}
			}
		}

		tx.RemoveItem(id)
		tx.Append(actor, inventorylog.ItemDeleted(id), models.AdjustmentEvent{Subject: id})
		return nil
	})
	if err != nil {
		s.log.Warn("Item not deleted", zap.String("item_id", id), zap.Error(err))
		return err
	}

	s.log.Info("Inventory item deleted", zap.String("item_id", id))
	return nil
}

func (s *ItemService) Get(id string) (models.InventoryItem, error) {
	for _, item := range s.r.Snapshot().Items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.InventoryItem{}, custom_error.NotFound(id, "item %s not found", id)
}

func (s *ItemService) List(filter ListFilter) []models.InventoryItem {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	items := []models.InventoryItem{}
	for _, item := range s.r.Snapshot().Items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.LowStockOnly && !item.IsLowStock() {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) && !strings.Contains(strings.ToLower(item.ID), search) {
			continue
		}
		items = append(items, item)
	}
	return items
}

func validateItem(item models.InventoryItem) error {
	if item.Name == "" {
		return custom_error.Validation("name is required")
	}
	if !item.Unit.IsValid() {
		return custom_error.Validation("invalid unit %q", item.Unit)
	}
	if item.Quantity.IsNegative() || item.MinStock.IsNegative() || item.CostPerUnit.IsNegative() {
		return custom_error.Validation("quantity, min stock and cost per unit must not be negative")
	}
	return nil
}
