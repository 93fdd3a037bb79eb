package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/house-services-backend/internal/config"
	appHTTP "github.com/cmlabs-hris/house-services-backend/internal/handler/http"
	"github.com/cmlabs-hris/house-services-backend/internal/pkg/database"
	"github.com/cmlabs-hris/house-services-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/house-services-backend/internal/repository/postgresql"
	employeeService "github.com/cmlabs-hris/house-services-backend/internal/service/employee"
	invoiceService "github.com/cmlabs-hris/house-services-backend/internal/service/invoice"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(cfg.App.Name, cfg.App.Env, cfg.SlogLevel(), os.Stdout)
	slog.SetDefault(logger)

	// Money goes over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	invoiceRepo := postgresql.NewInvoiceRepository(db)
	additionalRepo := postgresql.NewAdditionalRepository(db)
	txManager := postgresql.NewTxManager(db)

	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	invoiceSvc := invoiceService.NewInvoiceService(
		txManager,
		invoiceRepo,
		additionalRepo,
		employeeSvc,
		invoiceService.NewCalculator(time.Now),
		cfg.App.DefaultPageLimit,
	)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	invoiceHandler := appHTTP.NewInvoiceHandler(invoiceSvc)

	routerOpts := appHTTP.RouterOptions{
		Logger:         logger,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
	}
	if cfg.AuthEnabled() {
		routerOpts.JWTService = jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	} else {
		slog.Warn("JWT_SECRET_KEY is not set, write endpoints are unauthenticated")
	}

	router := appHTTP.NewRouter(routerOpts, employeeHandler, invoiceHandler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
