package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/splitledger/splitledger/docs"
	"github.com/splitledger/splitledger/internal/balance"
	"github.com/splitledger/splitledger/internal/config"
	"github.com/splitledger/splitledger/internal/database"
	"github.com/splitledger/splitledger/internal/expense"
	"github.com/splitledger/splitledger/internal/group"
	"github.com/splitledger/splitledger/internal/ledger"
	ledgermem "github.com/splitledger/splitledger/internal/ledger/memory"
	ledgerpg "github.com/splitledger/splitledger/internal/ledger/postgres"
	"github.com/splitledger/splitledger/internal/notification"
	"github.com/splitledger/splitledger/internal/receipt"
	"github.com/splitledger/splitledger/internal/split"
	mw "github.com/splitledger/splitledger/pkg/middleware"
)

// @title        SplitLedger API
// @version      1.0
// @description  Group expense ledger with netted balance settlement
// @BasePath     /api/v1
func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, nil))

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()
	ctx := context.Background()

	// Stores: Postgres when reachable, in-memory fallback otherwise so the
	// service stays usable offline (state then lives for the process only).
	var expenseStore ledger.Store
	var groupRepo group.Repository

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Warn("database unavailable, falling back to in-memory stores", "err", err)
		expenseStore = ledgermem.NewStore()
		groupRepo = group.NewMemoryRepository()
	} else {
		defer db.Close()
		logger.Info("connected to database")

		pgStore := ledgerpg.NewStore(db)
		pgGroups := group.NewPostgresRepository(db)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			logger.Error("failed to prepare expenses schema", "err", err)
			os.Exit(1)
		}
		if err := pgGroups.EnsureSchema(ctx); err != nil {
			logger.Error("failed to prepare groups schema", "err", err)
			os.Exit(1)
		}
		expenseStore = pgStore
		groupRepo = pgGroups
	}

	// Split Strategy Factory
	splitFactory := split.NewFactory()

	// Notification feed observes every balance engine
	notificationService := notification.NewService()
	notificationHandler := notification.NewHandler(notificationService)

	// Expense feature (ledger + balance engine per group)
	expenseService := expense.NewService(expenseStore, splitFactory, logger, notificationService)
	expenseHandler := expense.NewHandler(expenseService)

	// Balance queries read the engines through the expense service
	balanceHandler := balance.NewHandler(expenseService)

	// Group feature
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	// Receipt feature. The image text recognizer runs on the client; the
	// server side only offers text parsing plus the optional formatter.
	var formatter receipt.Formatter
	if cfg.GroqAPIKey != "" {
		formatter = receipt.NewGroqClient(cfg.GroqAPIURL, cfg.GroqAPIKey, cfg.GroqModel)
	}
	receiptService := receipt.NewService(nil, formatter, logger)
	receiptHandler := receipt.NewHandler(receiptService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.Identity)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/groups", groupHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/balances", balanceHandler.Routes())
		r.Mount("/receipts", receiptHandler.Routes())
		r.Mount("/notifications", notificationHandler.Routes())
	})

	logger.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
