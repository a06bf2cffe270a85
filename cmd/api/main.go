package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"fieldservice_billing/internal/adapter/http/handlers"
	"fieldservice_billing/internal/adapter/http/routes"
	"fieldservice_billing/internal/adapter/persistence/memory"
	"fieldservice_billing/internal/adapter/persistence/repository"
	"fieldservice_billing/internal/infrastructure/cache"
	"fieldservice_billing/internal/infrastructure/config"
	"fieldservice_billing/internal/infrastructure/database"
	"fieldservice_billing/internal/infrastructure/logger"
	"fieldservice_billing/internal/infrastructure/metrics"
	"fieldservice_billing/internal/infrastructure/notifier"
	"fieldservice_billing/internal/infrastructure/payments"
	"fieldservice_billing/internal/infrastructure/storage"
	"fieldservice_billing/internal/usecase"
	"fieldservice_billing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Field Service Billing API
// @version         1.0
// @description     Quotes, signatures, invoices and payouts for field-service work.

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultConfig().TimeFormat,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("[app] stopped with error", zap.Error(err))
	}
}

type repositories struct {
	services interfaces.IServiceRepository
	clients  interfaces.IClientRepository
	quotes   interfaces.IQuoteRepository
	invoices interfaces.IInvoiceRepository
	payouts  interfaces.IPayoutRepository
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger) error {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	repos, err := buildRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	ledger, docs, closeCache, err := buildCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()
	gateway, err := buildGateway(cfg, zl)
	if err != nil {
		return err
	}
	signatures, err := buildSignatureStore(ctx, cfg, zl)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	opts := []usecase.Option{
		usecase.WithCache(docs),
		usecase.WithMetrics(recorder),
		usecase.WithLogger(zl),
	}

	quotes := usecase.NewQuoteUseCase(repos.quotes, repos.clients, repos.services,
		notifier.NewLogNotifier(zl), signatures, cfg.Lifecycle.CountdownInterval, opts...)
	defer quotes.Close()
	invoices := usecase.NewInvoiceUseCase(repos.invoices, repos.quotes, repos.services, ledger, usecase.InvoiceDefaults{
		TaxRate: cfg.Lifecycle.DefaultTaxRate,
		DueDays: cfg.Lifecycle.InvoiceDueDays,
	}, opts...)
	payouts := usecase.NewPayoutUseCase(repos.payouts, repos.invoices, gateway, ledger, cfg.Lifecycle.IllustrativeFeePercent, opts...)
	flow := usecase.NewWorkflowCoordinator(invoices, payouts, repos.invoices, repos.payouts, repos.clients,
		gateway, ledger, cfg.Lifecycle.ChargeKeyTTL, opts...)
	parties := usecase.NewPartyUseCase(repos.services, repos.clients, cfg.Lifecycle.DefaultCurrency, opts...)

	router := routes.NewRouter(zl, routes.Handlers{
		Quotes:   handlers.NewQuoteHandler(quotes),
		Invoices: handlers.NewInvoiceHandler(invoices, payouts, flow),
		Payouts:  handlers.NewPayoutHandler(payouts, flow),
		Parties:  handlers.NewPartyHandler(parties),
	}, recorder.Handler())

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("[app] listening",
			zap.String("addr", srv.Addr),
			zap.String("storage", cfg.Storage.Driver),
			zap.String("cache", cfg.Redis.Driver),
			zap.String("payments", cfg.Payments.Provider),
			zap.String("signatures", cfg.Signatures.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("[app] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		store := memory.NewStore()
		return repositories{store.Services, store.Clients, store.Quotes, store.Invoices, store.Payouts}, nil
	}

	ddb, err := database.ConnectDynamoDB(ctx, database.AWSOptions{
		Region:    cfg.Storage.Region,
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
	})
	if err != nil {
		return repositories{}, err
	}
	r := repository.NewRepositories(ddb, repository.Tables{
		Services: cfg.Storage.ServicesTable,
		Clients:  cfg.Storage.ClientsTable,
		Quotes:   cfg.Storage.QuotesTable,
		Invoices: cfg.Storage.InvoicesTable,
		Payouts:  cfg.Storage.PayoutsTable,
	})
	return repositories{r.Services, r.Clients, r.Quotes, r.Invoices, r.Payouts}, nil
}

func buildCache(ctx context.Context, cfg *config.Config) (interfaces.IChargeLedger, interfaces.IDocumentCache, func(), error) {
	if cfg.Redis.Driver == config.CacheMemory {
		return cache.NewInMemoryChargeLedger(), cache.NewInMemoryDocumentCache(cfg.Redis.CacheTTL), func() {}, nil
	}
	client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() { _ = client.Close() }
	return cache.NewRedisChargeLedger(client), cache.NewRedisDocumentCache(client, cfg.Redis.CacheTTL), closeFn, nil
}

func buildGateway(cfg *config.Config, zl *zap.Logger) (interfaces.IPaymentGateway, error) {
	if cfg.Payments.Provider == config.PaymentsMock {
		zl.Warn("[payment][gateway] using mock processor")
		return payments.NewMockGateway(zl), nil
	}
	return payments.NewMercadoPagoGateway(cfg.Payments.AccessToken, zl)
}

func buildSignatureStore(ctx context.Context, cfg *config.Config, zl *zap.Logger) (interfaces.ISignatureStore, error) {
	if cfg.Signatures.Driver == config.SignaturesMemory {
		return storage.NewMemorySignatureStore(), nil
	}
	client, err := database.ConnectS3(ctx, database.AWSOptions{
		Region:    cfg.Signatures.Region,
		Endpoint:  cfg.Signatures.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
	})
	if err != nil {
		return nil, err
	}
	return storage.NewS3SignatureStore(client, cfg.Signatures.Bucket, cfg.Signatures.Prefix, zl)
}
