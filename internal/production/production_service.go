package production

import (
	"context"
	"errors"
	"fmt"

	"github.com/hopeIsCo0l/AnuTest/internal/repository"
	custom_error "github.com/hopeIsCo0l/AnuTest/pkg/errors"
	"github.com/hopeIsCo0l/AnuTest/pkg/metadata"
	"github.com/hopeIsCo0l/AnuTest/pkg/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaxProductionSlots is the default number of batches that may run at once.
const MaxProductionSlots = 3

const (
	msgStarted   = "Production started successfully!"
	msgFinished  = "Batch completed."
	msgNoSlot    = "No production slots available!"
	msgNoRecipe  = "No recipe configured for this product."
	msgBadQty    = "Quantity must be at least 1."
	msgNoBatch   = "Batch not found."
	batchPrefix  = "BATCH-"
	unknownLabel = "material"
)

// ErrProductMissing means an active batch points at a product that no longer exists.
var ErrProductMissing = errors.New("batch product no longer exists")

// Result is the outcome of a workflow operation. Expected failures are reported
// here with Success=false instead of as an error.
type Result struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Reason  custom_error.Reason `json:"reason,omitempty"`
	Batch   *models.Batch       `json:"batch,omitempty"`
}

type BatchView struct {
	models.Batch
	ProductName string `json:"product_name"`
}

type ActiveBatches struct {
	Batches    []BatchView `json:"batches"`
	SlotsUsed  int         `json:"slots_used"`
	SlotsTotal int         `json:"slots_total"`
}

type ProductionService struct {
	r        *repository.Repository
	log      *zap.Logger
	maxSlots int
}

func NewProductionService(r *repository.Repository, log *zap.Logger, maxSlots int) *ProductionService {
	if maxSlots <= 0 {
		maxSlots = MaxProductionSlots
	}
	return &ProductionService{r: r, log: log, maxSlots: maxSlots}
}

func (s *ProductionService) MaxSlots() int {
	return s.maxSlots
}

// StartProduction reserves the recipe's materials for quantity units and opens a batch.
// The estimate supplied by the caller is advisory; the stored cost is always the one
// computed from the stock levels before deduction.
func (s *ProductionService) StartProduction(ctx context.Context, actor, productID string, quantity int, estimatedCost *decimal.Decimal) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if quantity < 1 {
		return s.reject("start", custom_error.New(custom_error.ReasonInvalidQuantity, productID, msgBadQty)), nil
	}

	var batch models.Batch
	err := s.r.WithTransaction("production.start", func(tx *repository.Tx) error {
		recipe, ok := tx.FindRecipe(productID)
		if !ok || !recipe.HasIngredients() {
			return custom_error.New(custom_error.ReasonNoRecipe, productID, msgNoRecipe)
		}

		if len(tx.Batches()) >= s.maxSlots {
			return custom_error.New(custom_error.ReasonNoSlotAvailable, productID, msgNoSlot)
		}

		required := requirements(recipe, quantity)
		for _, need := range required {
			material, found := tx.FindItem(need.materialID)
			if !found || material.Quantity.LessThan(need.amount) {
				name := unknownLabel
				if found {
					name = material.Name
				}
				return custom_error.New(custom_error.ReasonInsufficientMaterial, need.materialID, "Not enough %s!", name)
			}
		}

		cost := EstimateBatchCost(recipe, tx.Items(), quantity)
		if estimatedCost != nil && !estimatedCost.Equal(cost) {
			s.log.Warn("Caller cost estimate differs, using recomputed cost",
				zap.String("product_id", productID),
				zap.String("estimated", estimatedCost.String()),
				zap.String("recomputed", cost.String()),
			)
		}

		for _, need := range required {
			material, _ := tx.FindItem(need.materialID)
			material.Quantity = material.Quantity.Sub(need.amount)
			tx.PutItem(material)
		}

		batch = models.Batch{
			ID:            batchPrefix + tx.NewID(),
			ProductID:     productID,
			Quantity:      quantity,
			StartedAt:     tx.Now(),
			EstimatedCost: cost,
			Status:        metadata.BatchProcessing,
		}
		tx.AddBatch(batch)

		productName := productID
		if product, found := tx.FindItem(productID); found {
			productName = product.Name
		}
		tx.Append(actor, fmt.Sprintf("Started batch of %d %s", quantity, productName), models.ProductionStartEvent{
			BatchID:       batch.ID,
			ProductID:     productID,
			Quantity:      quantity,
			EstimatedCost: cost,
		})
		return nil
	})
	if err != nil {
		var opErr *custom_error.OperationError
		if errors.As(err, &opErr) {
			return s.reject("start", opErr), nil
		}
		return Result{}, err
	}

	s.log.Info("Production batch started",
		zap.String("batch_id", batch.ID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.String("estimated_cost", batch.EstimatedCost.String()),
	)
	return Result{Success: true, Message: msgStarted, Batch: &batch}, nil
}

// FinishBatch credits the batch output to its product and closes the batch.
// An unknown id changes nothing and reports NotFound.
func (s *ProductionService) FinishBatch(ctx context.Context, actor, batchID string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var finished models.Batch
	err := s.r.WithTransaction("production.finish", func(tx *repository.Tx) error {
		batch, ok := tx.FindBatch(batchID)
		if !ok {
			return custom_error.NotFound(batchID, msgNoBatch)
		}

		product, ok := tx.FindItem(batch.ProductID)
		if !ok {
			return fmt.Errorf("%w: batch %s, product %s", ErrProductMissing, batch.ID, batch.ProductID)
		}

		product.Quantity = product.Quantity.Add(decimal.NewFromInt(int64(batch.Quantity)))
		tx.PutItem(product)
		tx.RemoveBatch(batch.ID)
		tx.Append(actor, fmt.Sprintf("Completed batch %d units of %s", batch.Quantity, product.Name), models.ProductionFinishEvent{
			BatchID:   batch.ID,
			ProductID: batch.ProductID,
			Quantity:  batch.Quantity,
			Cost:      batch.EstimatedCost,
		})

		finished = batch
		finished.Status = metadata.BatchCompleted
		return nil
	})
	if err != nil {
		var opErr *custom_error.OperationError
		if errors.As(err, &opErr) {
			return s.reject("finish", opErr), nil
		}
		s.log.Error("Unable to finish batch", zap.String("batch_id", batchID), zap.Error(err))
		return Result{}, err
	}

	s.log.Info("Production batch finished",
		zap.String("batch_id", finished.ID),
		zap.String("product_id", finished.ProductID),
		zap.Int("quantity", finished.Quantity),
	)
	return Result{Success: true, Message: msgFinished, Batch: &finished}, nil
}

// Plan previews a batch of quantity units of productID against the current stock.
func (s *ProductionService) Plan(productID string, quantity int) (Plan, error) {
	if quantity < 1 {
		return Plan{}, custom_error.New(custom_error.ReasonInvalidQuantity, productID, msgBadQty)
	}

	state := s.r.Snapshot()
	var product *models.InventoryItem
	for i := range state.Items {
		if state.Items[i].ID == productID {
			product = &state.Items[i]
			break
		}
	}
	if product == nil || !product.IsProduct() {
		return Plan{}, custom_error.NotFound(productID, "product %s not found", productID)
	}

	var recipe *models.Recipe
	for i := range state.Recipes {
		if state.Recipes[i].ProductID == productID {
			recipe = &state.Recipes[i]
			break
		}
	}

	return buildPlan(*product, recipe, state.Items, quantity, len(state.Batches), s.maxSlots), nil
}

func (s *ProductionService) ActiveBatches() ActiveBatches {
	state := s.r.Snapshot()
	byID := indexItems(state.Items)

	views := make([]BatchView, 0, len(state.Batches))
	for _, batch := range state.Batches {
		name := "Unknown"
		if product, ok := byID[batch.ProductID]; ok {
			name = product.Name
		}
		views = append(views, BatchView{Batch: batch, ProductName: name})
	}

	return ActiveBatches{Batches: views, SlotsUsed: len(state.Batches), SlotsTotal: s.maxSlots}
}

func (s *ProductionService) reject(operation string, err *custom_error.OperationError) Result {
	s.log.Warn("Production request rejected",
		zap.String("operation", operation),
		zap.String("reason", string(err.Reason)),
		zap.String("subject", err.Subject),
	)
	return Result{Success: false, Message: err.Message, Reason: err.Reason}
}

type requirement struct {
	materialID string
	amount     decimal.Decimal
}

// requirements totals the recipe per material in first-appearance order.
func requirements(recipe models.Recipe, quantity int) []requirement {
	q := decimal.NewFromInt(int64(quantity))
	var out []requirement
	index := make(map[string]int)
	for _, line := range recipe.Ingredients {
		amount := line.Quantity.Mul(q)
		if i, ok := index[line.RawMaterialID]; ok {
			out[i].amount = out[i].amount.Add(amount)
			continue
		}
		index[line.RawMaterialID] = len(out)
		out = append(out, requirement{materialID: line.RawMaterialID, amount: amount})
	}
	return out
}
