package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/shopspring/decimal"

	"github.com/arcbank/transactions-service/internal/pkg/config"
	"github.com/arcbank/transactions-service/internal/pkg/database"
	"github.com/arcbank/transactions-service/internal/pkg/health"
	httpclient "github.com/arcbank/transactions-service/internal/pkg/http"
	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/middleware"
	natspkg "github.com/arcbank/transactions-service/internal/pkg/nats"
	nrpkg "github.com/arcbank/transactions-service/internal/pkg/newrelic"
	nsqpkg "github.com/arcbank/transactions-service/internal/pkg/nsq"
	"github.com/arcbank/transactions-service/internal/pkg/server"
	"github.com/arcbank/transactions-service/internal/utils"
	"github.com/arcbank/transactions-service/migrations"
	"github.com/arcbank/transactions-service/services/transactions"
	gatewayhttp "github.com/arcbank/transactions-service/services/transactions/gateway/http"
	gatewaynats "github.com/arcbank/transactions-service/services/transactions/gateway/nats"
	gatewaynsq "github.com/arcbank/transactions-service/services/transactions/gateway/nsq"
	"github.com/arcbank/transactions-service/services/transactions/handler"
	"github.com/arcbank/transactions-service/services/transactions/repository"
	"github.com/arcbank/transactions-service/services/transactions/usecase"
)

func main() {
	appName := "transactions-service"
	configPath := "config/transactions.env"
	configs := config.InitConfig(configPath)

	// Amounts travel as JSON numbers, as the switch and the core services expect
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.String("queue_driver", configs.Queue.Driver),
		logger.String("lock_driver", configs.Lock.Driver),
	)

	// Components are closed in reverse registration order
	shutdown := server.NewShutdownManager(zapLogger)
	if nrApp != nil {
		shutdown.Register("newrelic", func(context.Context) error {
			nrApp.Shutdown(10 * time.Second)
			return nil
		})
	}

	healthService := health.NewHealthService(zapLogger)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	shutdown.Register("postgres", func(context.Context) error { return postgresClient.Close() })
	healthService.AddChecker("postgres", health.PingChecker(postgresClient))

	if configs.Database.AutoMigrate {
		if err := postgresClient.Migrate(migrations.FS, "."); err != nil {
			zapLogger.Fatal("Failed to migrate database", logger.Err(err))
		}
	}

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	shutdown.Register("redis", func(context.Context) error { return redisClient.Close() })
	healthService.AddChecker("redis", health.PingChecker(redisClient))

	// Initialize the queue transport and the lifecycle event gateway on it
	var (
		natsClient *natspkg.Client
		eventGW    transactions.EventGW
	)
	switch configs.Queue.Driver {
	case handler.QueueDriverNSQ:
		producer, err := nsqpkg.NewProducer(configs.NSQ)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
		}
		shutdown.Register("nsq-producer", func(context.Context) error {
			producer.Stop()
			return nil
		})
		healthService.AddChecker("nsq", health.CheckerFunc(func(context.Context) error { return producer.Ping() }))
		eventGW = gatewaynsq.NewEventGW(producer)

	case handler.QueueDriverNone:
		logger.Warn("No queue driver configured, inbound transfers arrive through the webhook only")

	default:
		natsClient, err = natspkg.NewClient(configs.NATS.URL)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS with JetStream", logger.Err(err))
		}
		shutdown.Register("nats", func(context.Context) error {
			natsClient.Close()
			return nil
		})
		if err := natsClient.EnsureStreams(context.Background(), natspkg.DefaultStreamConfigs()...); err != nil {
			zapLogger.Fatal("Failed to create JetStream streams", logger.Err(err))
		}
		healthService.AddChecker("nats", health.CheckerFunc(func(context.Context) error { return natsClient.Ping() }))
		eventGW = gatewaynats.NewEventGW(natsClient)
	}

	// Initialize repositories
	transactionRepo := repository.NewTransactionRepository(postgresClient.GetDB())

	var locker transactions.AccountLocker
	if configs.Lock.Driver == "memory" {
		locker = repository.NewMemoryLocker()
	} else {
		locker = repository.NewRedisLocker(redisClient, configs.Lock.TTL, configs.Lock.RetryDelay)
	}
	lease := repository.NewSweepLease(redisClient, configs.Reconciler.LeaseTTL)

	// Initialize gateways
	switchTLS, err := httpclient.LoadTLSConfig(
		configs.Switch.TLSCertFile,
		configs.Switch.TLSKeyFile,
		configs.Switch.TLSCAFile,
		configs.Switch.TLSSkipVerify,
	)
	if err != nil {
		zapLogger.Fatal("Failed to load switch TLS material", logger.Err(err))
	}
	switchClient := httpclient.NewEnhancedClient(zapLogger, httpclient.Config{
		Name:    "switch",
		Timeout: time.Duration(configs.Switch.TimeoutSec) * time.Second,
		TLS:     switchTLS,
	})

	coreHeaders := map[string]string{}
	if configs.Core.APIKey != "" {
		coreHeaders[httpclient.APIKeyHeader] = configs.Core.APIKey
	}
	coreTimeout := time.Duration(configs.Core.TimeoutSec) * time.Second
	ledgerClient := httpclient.NewEnhancedClient(zapLogger, httpclient.Config{
		Name:    "ledger",
		Timeout: coreTimeout,
		Headers: coreHeaders,
	})
	directoryClient := httpclient.NewEnhancedClient(zapLogger, httpclient.Config{
		Name:    "directory",
		Timeout: coreTimeout,
		Headers: coreHeaders,
	})

	tokens := gatewayhttp.NewTokenCache(switchClient, configs.Switch)
	switchGW := gatewayhttp.NewSwitchGW(switchClient, tokens, configs.Switch)
	ledgerGW := gatewayhttp.NewLedgerGW(ledgerClient, configs.Core.LedgerURL)
	directoryGW := gatewayhttp.NewDirectoryGW(directoryClient, configs.Core.DirectoryURL)
	healthService.AddOptionalChecker("switch", health.CheckerFunc(switchGW.Health))

	// Initialize usecase
	transactionUC := usecase.NewTransactionUC(configs, transactionRepo, locker, ledgerGW, directoryGW, switchGW, eventGW)

	// Initialize handlers
	transactionHandler := handler.NewHandler(configs, transactionUC, natsClient, lease, nrApp)

	if err := transactionHandler.InitConsumers(context.Background()); err != nil {
		zapLogger.Fatal("Failed to initialize queue consumers", logger.Err(err))
	}
	shutdown.Register("queue-consumers", func(context.Context) error {
		transactionHandler.StopConsumers()
		return nil
	})

	if configs.Reconciler.Enabled {
		workerCtx, stopWorker := context.WithCancel(context.Background())
		go func() {
			_ = transactionHandler.RunReconciler(workerCtx)
		}()
		shutdown.Register("reconciler", func(context.Context) error {
			stopWorker()
			return nil
		})
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewRequestValidator()
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	// Add middlewares (panic recovery should be first)
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(middleware.RequestContextMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.OriginSecret(configs.Security.OriginSecret))

	// Register health endpoints and service routes
	health.RegisterEnhancedHealthEndpoints(e, appName, configs.App.Version, healthService)
	transactionHandler.RegisterRoutes(e, redisClient.GetClient())

	srv := server.NewGracefulServer(
		e,
		zapLogger,
		configs.Server.Host,
		configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second,
		shutdown,
	)
	if err := srv.Start(); err != nil {
		zapLogger.Error("Server stopped with error", logger.Err(err))
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}
