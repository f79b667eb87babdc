package container

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hopeIsCo0l/AnuTest/internal/assistant"
	auditLogRepo "github.com/hopeIsCo0l/AnuTest/internal/auditlog"
	"github.com/hopeIsCo0l/AnuTest/internal/core/config"
	"github.com/hopeIsCo0l/AnuTest/internal/database"
	"github.com/hopeIsCo0l/AnuTest/internal/events"
	"github.com/hopeIsCo0l/AnuTest/internal/integrations/gemini"
	"github.com/hopeIsCo0l/AnuTest/internal/integrations/googlesheets"
	"github.com/hopeIsCo0l/AnuTest/internal/inventory/history"
	"github.com/hopeIsCo0l/AnuTest/internal/inventory/items"
	"github.com/hopeIsCo0l/AnuTest/internal/inventory/recipes"
	"github.com/hopeIsCo0l/AnuTest/internal/inventory/stocks"
	"github.com/hopeIsCo0l/AnuTest/internal/production"
	"github.com/hopeIsCo0l/AnuTest/internal/rate_limiter"
	"github.com/hopeIsCo0l/AnuTest/internal/repository"
	"github.com/hopeIsCo0l/AnuTest/internal/seed"
	"github.com/hopeIsCo0l/AnuTest/internal/users"
	"github.com/hopeIsCo0l/AnuTest/pkg/auditlog"
	"github.com/hopeIsCo0l/AnuTest/pkg/models"
	"github.com/hopeIsCo0l/AnuTest/pkg/roles"
	"github.com/hopeIsCo0l/AnuTest/pkg/security"

	"go.uber.org/zap"
)

const assistantWindow = time.Minute

type Container struct {
	Config            *config.Config
	Log               *zap.Logger
	Repository        *repository.Repository
	Hub               *events.Hub
	AuditLog          *auditlog.Auditlog
	Tokens            *security.TokenIssuer
	ProductionService *production.ProductionService
	LoginHandler      *security.LoginHandler
	UserHandler       *users.UsersHandler
	ItemHandler       *items.ItemHandler
	StockHandler      *stocks.StockHandler
	RecipeHandler     *recipes.RecipeHandler
	ProductionHandler *production.ProductionHandler
	HistoryHandler    *history.HistoryHandler
	AssistantHandler  *assistant.AssistantHandler
	EventsHandler     *events.EventsHandler

	limiters []*rate_limiter.RateLimiter
	db       *sql.DB
}

// NewAppContainer builds the whole application from cfg. The optional integrations
// (audit database, Gemini, Google Sheets) are skipped when not configured.
func NewAppContainer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, error) {
	initial, err := seed.Load(cfg.Production.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}

	directory, err := newUserDirectory(cfg.Auth)
	if err != nil {
		return nil, err
	}
	tokens, err := security.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Log: log, Tokens: tokens}

	repo := repository.NewRepository(initial)
	hub := events.NewHub(log)
	repo.OnCommit(hub.OnCommit)
	repo.OnCommit(func(operation string, appended []models.Transaction) {
		log.Debug("State committed", zap.String("operation", operation), zap.Int("transactions", len(appended)))
	})

	if cfg.Audit.DatabaseURL != "" {
		db, err := database.NewPostgresConnection(ctx, cfg.Audit.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("audit database: %w", err)
		}
		c.db = db
		c.AuditLog = auditlog.NewAuditLog(auditLogRepo.NewRepository(database.NewGoquDatabase(db)), log)
		repo.OnCommit(c.AuditLog.OnCommit)
		log.Info("Audit sink enabled")
	}

	var generator assistant.Generator
	if cfg.Assistant.APIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.Assistant.APIKey, cfg.Assistant.Model)
		if err != nil {
			log.Error("Assistant disabled", zap.Error(err))
		} else {
			generator = client
			log.Info("Assistant enabled", zap.String("model", client.Model()))
		}
	}

	var sheets history.SheetWriter
	if cfg.Sheets.CredentialsJSON != "" && cfg.Sheets.SpreadsheetID != "" {
		writer, err := googlesheets.NewLedgerWriter(ctx, cfg.Sheets.CredentialsJSON, cfg.Sheets.SpreadsheetID, cfg.Sheets.Range)
		if err != nil {
			log.Error("Google Sheets export disabled", zap.Error(err))
		} else {
			sheets = writer
		}
	}

	loginLimiter := rate_limiter.NewRateLimiter(cfg.Auth.LoginAttempts, cfg.Auth.LoginWindow)
	assistantLimiter := rate_limiter.NewRateLimiter(cfg.Assistant.RequestsPerMin, assistantWindow)
	c.limiters = []*rate_limiter.RateLimiter{loginLimiter, assistantLimiter}

	productionService := production.NewProductionService(repo, log, cfg.Production.MaxSlots)
	itemService := items.NewItemService(repo, log)
	stockService := stocks.NewStockService(repo, log, initial)
	recipeService := recipes.NewRecipeService(repo, log)
	historyService := history.NewHistoryService(repo, log, sheets)
	assistantService := assistant.NewAssistantService(repo, generator, cfg.Assistant.Timeout, log)

	c.Repository = repo
	c.Hub = hub
	c.ProductionService = productionService
	c.LoginHandler = security.NewLoginHandler(directory, tokens, loginLimiter, log)
	c.UserHandler = users.NewHandler(directory)
	c.ItemHandler = items.NewItemHandler(itemService)
	c.StockHandler = stocks.NewStockHandler(stockService)
	c.RecipeHandler = recipes.NewRecipeHandler(recipeService)
	c.ProductionHandler = production.NewProductionHandler(productionService)
	c.HistoryHandler = history.NewHistoryHandler(historyService)
	c.AssistantHandler = assistant.NewAssistantHandler(assistantService, assistantLimiter)
	c.EventsHandler = events.NewEventsHandler(hub, repo, productionService.MaxSlots())

	return c, nil
}

// Close stops background work and waits for pending audit writes.
func (c *Container) Close() {
	for _, limiter := range c.limiters {
		limiter.Stop()
	}
	if c.AuditLog != nil {
		c.AuditLog.Wait()
	}
	if c.db != nil {
		c.db.Close()
	}
}

// SlotUsage reports active batches against capacity for the health check.
func (c *Container) SlotUsage() (int, int) {
	active := c.ProductionService.ActiveBatches()
	return active.SlotsUsed, active.SlotsTotal
}

func newUserDirectory(cfg config.AuthConfig) (*security.UserDirectory, error) {
	var accounts []models.User
	if cfg.AdminPassword != "" {
		admin, err := security.NewUser("admin", "Admin", cfg.AdminPassword, roles.Admin)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, admin)
	}
	if cfg.StaffPassword != "" {
		staff, err := security.NewUser("staff", "Staff", cfg.StaffPassword, roles.Staff)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, staff)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("no user accounts configured, set ADMIN_PASSWORD or STAFF_PASSWORD")
	}
	return security.NewUserDirectory(accounts...), nil
}
