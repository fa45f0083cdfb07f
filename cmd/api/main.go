package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/captable/internal/aicontext"
	"github.com/MrJamesThe3rd/captable/internal/business"
	businessStore "github.com/MrJamesThe3rd/captable/internal/business/store"
	"github.com/MrJamesThe3rd/captable/internal/config"
	"github.com/MrJamesThe3rd/captable/internal/database"
	captableHttp "github.com/MrJamesThe3rd/captable/internal/http"
	companyHandler "github.com/MrJamesThe3rd/captable/internal/http/company"
	contractHandler "github.com/MrJamesThe3rd/captable/internal/http/contract"
	eventHandler "github.com/MrJamesThe3rd/captable/internal/http/event"
	stakeholderHandler "github.com/MrJamesThe3rd/captable/internal/http/stakeholder"
	"github.com/MrJamesThe3rd/captable/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/captable/internal/ledger/store"
	"github.com/MrJamesThe3rd/captable/internal/report"
	reportStore "github.com/MrJamesThe3rd/captable/internal/report/store"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		ledgerService   = ledger.NewService(ledgerStore.New(db))
		reportService   = report.NewService(reportStore.New(db))
		businessService = business.NewService(businessStore.New(db))
		contextService  = aicontext.NewService(reportService)
	)

	var (
		companyH     = companyHandler.NewHandler(businessService, contextService)
		stakeholderH = stakeholderHandler.NewHandler(businessService, reportService)
		contractH    = contractHandler.NewHandler(reportService)
		eventH       = eventHandler.NewHandler(ledgerService, reportService)
	)

	router := captableHttp.New(cfg.Server.AllowedOrigins, companyH, stakeholderH, contractH, eventH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  time.Minute,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
