package stocks

import (
	"sort"
	"strings"

	inventorylog "github.com/hopeIsCo0l/AnuTest/internal/inventory/inventory_log"
	"github.com/hopeIsCo0l/AnuTest/internal/repository"
	custom_error "github.com/hopeIsCo0l/AnuTest/pkg/errors"
	"github.com/hopeIsCo0l/AnuTest/pkg/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const recentTransactions = 5

type ProductLevel struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Stock    decimal.Decimal `json:"stock"`
	MinStock decimal.Decimal `json:"min_stock"`
}

type Dashboard struct {
	TotalItems         int                    `json:"total_items"`
	RawMaterialCount   int                    `json:"raw_material_count"`
	ProductCount       int                    `json:"product_count"`
	LowStockCount      int                    `json:"low_stock_count"`
	LowStock           []models.InventoryItem `json:"low_stock"`
	TotalValue         decimal.Decimal        `json:"total_value"`
	RawMaterialValue   decimal.Decimal        `json:"raw_material_value"`
	ProductValue       decimal.Decimal        `json:"product_value"`
	ActiveBatches      int                    `json:"active_batches"`
	CompletedBatches   int                    `json:"completed_batches"`
	ProductLevels      []ProductLevel         `json:"product_levels"`
	RecentTransactions []models.Transaction   `json:"recent_transactions"`
}

type StockService struct {
	r    *repository.Repository
	log  *zap.Logger
	seed repository.State
}

// NewStockService keeps seed as the factory defaults restored by ResetSystem.
func NewStockService(r *repository.Repository, log *zap.Logger, seed repository.State) *StockService {
	return &StockService{r: r, log: log, seed: seed.Clone()}
}

func (s *StockService) Restock(actor, itemID string, amount decimal.Decimal) (models.InventoryItem, error) {
	if !amount.IsPositive() {
		return models.InventoryItem{}, custom_error.New(custom_error.ReasonInvalidQuantity, itemID, "restock amount must be positive")
	}

	var restocked models.InventoryItem
	err := s.r.WithTransaction("stocks.restock", func(tx *repository.Tx) error {
		item, ok := tx.FindItem(itemID)
		if !ok {
			return custom_error.NotFound(itemID, "item %s not found", itemID)
		}
		item.Quantity = item.Quantity.Add(amount)
		tx.PutItem(item)
		tx.Append(actor, inventorylog.Restocked(amount, item.Unit, item.Name), models.RestockEvent{ItemID: itemID, Amount: amount})
		restocked = item
		return nil
	})
	if err != nil {
		return models.InventoryItem{}, err
	}

	s.log.Info("Item restocked",
		zap.String("item_id", itemID),
		zap.String("amount", amount.String()),
		zap.String("quantity", restocked.Quantity.String()),
	)
	return restocked, nil
}

// LowStock lists items at or below their minimum, lowest fill ratio first.
func (s *StockService) LowStock() []models.InventoryItem {
	low := lowStock(s.r.Snapshot().Items)
	sort.SliceStable(low, func(i, j int) bool {
		return fillRatio(low[i]).LessThan(fillRatio(low[j]))
	})
	return low
}

func (s *StockService) Dashboard() Dashboard {
	state := s.r.Snapshot()
	dashboard := Dashboard{
		TotalItems:         len(state.Items),
		LowStock:           lowStock(state.Items),
		TotalValue:         decimal.Zero,
		RawMaterialValue:   decimal.Zero,
		ProductValue:       decimal.Zero,
		ActiveBatches:      len(state.Batches),
		ProductLevels:      []ProductLevel{},
		RecentTransactions: []models.Transaction{},
	}
	dashboard.LowStockCount = len(dashboard.LowStock)

	for i := range state.Items {
		item := &state.Items[i]
		value := item.StockValue()
		dashboard.TotalValue = dashboard.TotalValue.Add(value)
		if item.IsRawMaterial() {
			dashboard.RawMaterialCount++
			dashboard.RawMaterialValue = dashboard.RawMaterialValue.Add(value)
			continue
		}
		dashboard.ProductCount++
		dashboard.ProductValue = dashboard.ProductValue.Add(value)
		dashboard.ProductLevels = append(dashboard.ProductLevels, ProductLevel{
			ID:       item.ID,
			Name:     shortName(item.Name),
			Stock:    item.Quantity,
			MinStock: item.MinStock,
		})
	}

	for _, entry := range state.Ledger {
		if entry.Type() == models.TransactionProductionFinish {
			dashboard.CompletedBatches++
		}
	}
	for i := len(state.Ledger) - 1; i >= 0 && len(dashboard.RecentTransactions) < recentTransactions; i-- {
		dashboard.RecentTransactions = append(dashboard.RecentTransactions, state.Ledger[i])
	}

	return dashboard
}

// ResetSystem restores the factory defaults. Batches in progress and the whole
// ledger are dropped; the reset itself is the only entry left afterwards.
func (s *StockService) ResetSystem(actor string) error {
	err := s.r.WithTransaction("system.reset", func(tx *repository.Tx) error {
		tx.ReplaceCatalog(s.seed.Items, s.seed.Recipes)
		tx.ClearLedger()
		tx.Append(actor, inventorylog.SystemReset, models.AdjustmentEvent{Subject: "system"})
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("System reset to factory defaults", zap.String("actor", actor))
	return nil
}

func lowStock(items []models.InventoryItem) []models.InventoryItem {
	low := []models.InventoryItem{}
	for _, item := range items {
		if item.IsLowStock() {
			low = append(low, item)
		}
	}
	return low
}

func fillRatio(item models.InventoryItem) decimal.Decimal {
	if item.MinStock.IsZero() {
		return decimal.NewFromInt(1)
	}
	return item.Quantity.Div(item.MinStock)
}

// shortName drops a trailing parenthesised qualifier, "Lollipop (Type 1)" -> "Lollipop".
// Names that are only a qualifier are kept as they are.
func shortName(name string) string {
	base := strings.TrimSpace(strings.SplitN(name, "(", 2)[0])
	if base == "" {
		return name
	}
	return base
}
