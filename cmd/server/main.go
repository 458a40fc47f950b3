package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"checkout/internal/app"
	"checkout/internal/config"
	"checkout/internal/handler"
	internalRedis "checkout/internal/redis"
	"checkout/internal/repository/postgres"
	"checkout/internal/service"
	"checkout/internal/workflow"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	sessionStore := internalRedis.NewSessionStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)
	configCache := internalRedis.NewConfigCacheStore(redisClient)

	// Initialize repositories.
	promoRepo := postgres.NewPromoRepository(db)
	configRepo := postgres.NewConfigRepository(db)

	// External workflow engine client (payment initiation + verification).
	workflowClient := workflow.NewClient(cfg.Workflow.BaseURL, cfg.Workflow.Timeout)

	// Initialize services.
	promoService := service.NewPromoService(promoRepo)
	pricingService := service.NewPricingService(configRepo, configCache)
	checkoutService := service.NewCheckoutService(
		sessionStore,
		lockStore,
		promoService,
		pricingService,
		workflowClient,
		cfg.Checkout.Currency,
	)
	callbackService := service.NewCallbackService(workflowClient)

	// Initialize handlers.
	promoHandler := handler.NewPromoHandler(promoService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	callbackHandler := handler.NewCallbackHandler(callbackService)
	pricingHandler := handler.NewPricingHandler(pricingService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		PromoHandler:    promoHandler,
		CheckoutHandler: checkoutHandler,
		CallbackHandler: callbackHandler,
		PricingHandler:  pricingHandler,
		RedisClient:     redisClient,
		NewRelicApp:     nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
