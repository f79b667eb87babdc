package repository

import (
	"sync"
	"time"

	"github.com/hopeIsCo0l/AnuTest/pkg/models"

	"github.com/google/uuid"
)

// State is the complete application state. The ledger is kept oldest first.
type State struct {
	Items   []models.InventoryItem `json:"items"`
	Recipes []models.Recipe        `json:"recipes"`
	Batches []models.Batch         `json:"batches"`
	Ledger  []models.Transaction   `json:"transactions"`
}

func (s State) Clone() State {
	return State{
		Items:   cloneItems(s.Items),
		Recipes: cloneRecipes(s.Recipes),
		Batches: cloneBatches(s.Batches),
		Ledger:  cloneLedger(s.Ledger),
	}
}

// CommitHook observes a committed transaction. It runs after the lock is released.
type CommitHook func(operation string, appended []models.Transaction)

type Option func(*Repository)

func WithClock(clock func() time.Time) Option {
	return func(r *Repository) { r.clock = clock }
}

func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) { r.newID = newID }
}

// Repository owns the state. Every mutation goes through WithTransaction, which holds
// one lock for the whole operation so readers never see a partial change.
type Repository struct {
	mu    sync.RWMutex
	state State
	hooks []CommitHook
	clock func() time.Time
	newID func() string
}

func NewRepository(initial State, opts ...Option) *Repository {
	r := &Repository{
		state: initial.Clone(),
		clock: func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) OnCommit(hook CommitHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, hook)
}

// Snapshot returns a deep copy of the current state.
func (r *Repository) Snapshot() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Clone()
}

// WithTransaction runs fn against a working copy of the state. When fn returns an
// error (or panics) nothing is applied; otherwise the copy replaces the live state and
// the entries appended through tx land in the ledger.
func (r *Repository) WithTransaction(operation string, fn func(tx *Tx) error) (err error) {
	r.mu.Lock()

	tx := &Tx{
		items:   cloneItems(r.state.Items),
		recipes: cloneRecipes(r.state.Recipes),
		batches: cloneBatches(r.state.Batches),
		ledger:  r.state.Ledger,
		now:     r.clock(),
		newID:   r.newID,
	}

	defer func() {
		if p := recover(); p != nil {
			r.mu.Unlock()
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		r.mu.Unlock()
		return err
	}

	r.state.Items = tx.items
	r.state.Recipes = tx.recipes
	r.state.Batches = tx.batches
	if tx.cleared {
		r.state.Ledger = nil
	}
	r.state.Ledger = append(r.state.Ledger, tx.pending...)

	hooks := make([]CommitHook, len(r.hooks))
	copy(hooks, r.hooks)
	appended := cloneLedger(tx.pending)
	r.mu.Unlock()

	for _, hook := range hooks {
		hook(operation, appended)
	}
	return nil
}

// Tx is the working copy handed to a transaction function. It must not be retained
// after the function returns.
type Tx struct {
	items   []models.InventoryItem
	recipes []models.Recipe
	batches []models.Batch
	ledger  []models.Transaction
	pending []models.Transaction
	cleared bool
	now     time.Time
	newID   func() string
}

func (tx *Tx) Now() time.Time {
	return tx.now
}

func (tx *Tx) NewID() string {
	return tx.newID()
}

func (tx *Tx) Items() []models.InventoryItem {
	return cloneItems(tx.items)
}

func (tx *Tx) FindItem(id string) (models.InventoryItem, bool) {
	for _, item := range tx.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.InventoryItem{}, false
}

// PutItem replaces the item with the same id or appends a new one.
func (tx *Tx) PutItem(item models.InventoryItem) {
	for i := range tx.items {
		if tx.items[i].ID == item.ID {
			tx.items[i] = item
			return
		}
	}
	tx.items = append(tx.items, item)
}

func (tx *Tx) RemoveItem(id string) bool {
	for i := range tx.items {
		if tx.items[i].ID == id {
			tx.items = append(tx.items[:i], tx.items[i+1:]...)
			return true
		}
	}
	return false
}

func (tx *Tx) Recipes() []models.Recipe {
	return cloneRecipes(tx.recipes)
}

func (tx *Tx) FindRecipe(productID string) (models.Recipe, bool) {
	for _, recipe := range tx.recipes {
		if recipe.ProductID == productID {
			return recipe.Clone(), true
		}
	}
	return models.Recipe{}, false
}

// PutRecipe replaces the recipe of the same product wholesale or inserts it.
func (tx *Tx) PutRecipe(recipe models.Recipe) {
	recipe = recipe.Clone()
	for i := range tx.recipes {
		if tx.recipes[i].ProductID == recipe.ProductID {
			tx.recipes[i] = recipe
			return
		}
	}
	tx.recipes = append(tx.recipes, recipe)
}

func (tx *Tx) RemoveRecipe(productID string) bool {
	for i := range tx.recipes {
		if tx.recipes[i].ProductID == productID {
			tx.recipes = append(tx.recipes[:i], tx.recipes[i+1:]...)
			return true
		}
	}
	return false
}

func (tx *Tx) Batches() []models.Batch {
	return cloneBatches(tx.batches)
}

func (tx *Tx) FindBatch(id string) (models.Batch, bool) {
	for _, batch := range tx.batches {
		if batch.ID == id {
			return batch, true
		}
	}
	return models.Batch{}, false
}

func (tx *Tx) AddBatch(batch models.Batch) {
	tx.batches = append(tx.batches, batch)
}

func (tx *Tx) RemoveBatch(id string) bool {
	for i := range tx.batches {
		if tx.batches[i].ID == id {
			tx.batches = append(tx.batches[:i], tx.batches[i+1:]...)
			return true
		}
	}
	return false
}

// Append records a ledger entry stamped with the transaction time.
func (tx *Tx) Append(actor, details string, event models.Event) models.Transaction {
	if actor == "" {
		actor = models.SystemActor
	}
	entry := models.Transaction{
		ID:          tx.newID(),
		Timestamp:   tx.now,
		PerformedBy: actor,
		Details:     details,
		Event:       event,
	}
	tx.pending = append(tx.pending, entry)
	return entry
}

// ClearLedger drops every committed entry and anything appended so far in tx.
func (tx *Tx) ClearLedger() {
	tx.cleared = true
	tx.ledger = nil
	tx.pending = nil
}

// LedgerLen counts committed plus pending entries as seen by tx.
func (tx *Tx) LedgerLen() int {
	return len(tx.ledger) + len(tx.pending)
}

// ReplaceCatalog swaps items and recipes for the given ones and drops all batches.
func (tx *Tx) ReplaceCatalog(items []models.InventoryItem, recipes []models.Recipe) {
	tx.items = cloneItems(items)
	tx.recipes = cloneRecipes(recipes)
	tx.batches = nil
}

func cloneItems(items []models.InventoryItem) []models.InventoryItem {
	if items == nil {
		return nil
	}
	out := make([]models.InventoryItem, len(items))
	copy(out, items)
	return out
}

func cloneRecipes(recipes []models.Recipe) []models.Recipe {
	if recipes == nil {
		return nil
	}
	out := make([]models.Recipe, len(recipes))
	for i, recipe := range recipes {
		out[i] = recipe.Clone()
	}
	return out
}

func cloneBatches(batches []models.Batch) []models.Batch {
	if batches == nil {
		return nil
	}
	out := make([]models.Batch, len(batches))
	copy(out, batches)
	return out
}

func cloneLedger(ledger []models.Transaction) []models.Transaction {
	if ledger == nil {
		return nil
	}
	out := make([]models.Transaction, len(ledger))
	copy(out, ledger)
	return out
}
