package config

import (
	"log"
	"strings"
	"time"

	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// defaults holds every key with a non-empty default value
var defaults = map[string]interface{}{
	"APP_NAME":    "transactions-service",
	"APP_ENV":     "local",
	"APP_DEBUG":   false,
	"APP_VERSION": "1.0.0",

	"SERVER_HOST":             "0.0.0.0",
	"SERVER_PORT":             8080,
	"SERVER_READ_TIMEOUT":     30,
	"SERVER_WRITE_TIMEOUT":    30,
	"SERVER_SHUTDOWN_TIMEOUT": 30,

	"DB_DRIVER":       "pgx",
	"DB_HOST":         "localhost",
	"DB_PORT":         5432,
	"DB_SSL_MODE":     "disable",
	"DB_MAX_CONNS":    20,
	"DB_IDLE_CONNS":   5,
	"DB_AUTO_MIGRATE": true,

	"REDIS_HOST":      "localhost",
	"REDIS_PORT":      6379,
	"REDIS_POOL_SIZE": 10,

	"NATS_URL": "nats://localhost:4222",

	"NSQD_ADDRESS":      "localhost:4150",
	"NSQ_INBOUND_TOPIC": "switch.transfers.inbound",
	"NSQ_CHANNEL":       "transactions",
	"NSQ_MAX_IN_FLIGHT": 10,
	"NSQ_MAX_ATTEMPTS":  20,
	"NSQ_REQUEUE_DELAY": 5,

	"QUEUE_DRIVER": "jetstream",

	"SWITCH_BASE_URL":         "http://localhost:8000",
	"SWITCH_BANK_CODE":        "ARCBANK",
	"SWITCH_DEFAULT_CREDITOR": "BANTEC",
	"SWITCH_CALLBACK_URL":     "http://localhost:8000/api/v2/switch/transfers/callback",
	"SWITCH_LOOKUP_PATH":      "/api/v2/switch/accounts/lookup",
	"SWITCH_SCOPE":            "https://switch-api.com/transfers.write",
	"SWITCH_TIMEOUT":          30,
	"SWITCH_TOKEN_MARGIN":     "60s",

	"LEDGER_URL":        "http://localhost:8081",
	"DIRECTORY_URL":     "http://localhost:8082",
	"CORE_TIMEOUT":      10,
	"ENGINE_POLL_EVERY": "1500ms",
	"ENGINE_POLL_MAX":   10,
	"REVERSAL_WINDOW":   "24h",

	"RECONCILER_ENABLED":   true,
	"RECONCILER_INTERVAL":  "1m",
	"RECONCILER_GRACE":     "30s",
	"RECONCILER_BATCH":     50,
	"RECONCILER_LEASE_TTL": "50s",

	"LOCK_DRIVER":      "redis",
	"LOCK_TTL":         "30s",
	"LOCK_RETRY_DELAY": "25ms",

	"ORIGIN_SECRET":      "change-me",
	"RATE_LIMIT_WEBHOOK": 600,

	"LOG_LEVEL": "info",
}

// InitConfig loads configPath into the environment when running locally and
// builds the application configuration from it
func InitConfig(configPath string) *models.Config {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if v.GetString("APP_ENV") == "local" {
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}

	return loadConfig(v)
}

func loadConfig(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	configs.App.Name = v.GetString("APP_NAME")
	configs.App.Environment = v.GetString("APP_ENV")
	configs.App.Debug = v.GetBool("APP_DEBUG")
	configs.App.Version = v.GetString("APP_VERSION")

	configs.Server.Host = v.GetString("SERVER_HOST")
	configs.Server.Port = v.GetInt("SERVER_PORT")
	configs.Server.ReadTimeout = v.GetInt("SERVER_READ_TIMEOUT")
	configs.Server.WriteTimeout = v.GetInt("SERVER_WRITE_TIMEOUT")
	configs.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")

	configs.Database.Driver = v.GetString("DB_DRIVER")
	configs.Database.Host = v.GetString("DB_HOST")
	configs.Database.Port = v.GetInt("DB_PORT")
	configs.Database.Username = v.GetString("DB_USERNAME")
	configs.Database.Password = v.GetString("DB_PASSWORD")
	configs.Database.Database = v.GetString("DB_DATABASE")
	configs.Database.SSLMode = v.GetString("DB_SSL_MODE")
	configs.Database.MaxConns = v.GetInt("DB_MAX_CONNS")
	configs.Database.IdleConns = v.GetInt("DB_IDLE_CONNS")
	configs.Database.AutoMigrate = v.GetBool("DB_AUTO_MIGRATE")

	configs.Redis.Host = v.GetString("REDIS_HOST")
	configs.Redis.Port = v.GetInt("REDIS_PORT")
	configs.Redis.Password = v.GetString("REDIS_PASSWORD")
	configs.Redis.DB = v.GetInt("REDIS_DB")
	configs.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")

	configs.NATS.URL = v.GetString("NATS_URL")

	configs.NSQ.NSQDAddress = v.GetString("NSQD_ADDRESS")
	configs.NSQ.LookupdAddress = splitList(v.GetString("NSQ_LOOKUPD_ADDRESSES"))
	configs.NSQ.InboundTopic = v.GetString("NSQ_INBOUND_TOPIC")
	configs.NSQ.InboundChannel = v.GetString("NSQ_CHANNEL")
	configs.NSQ.MaxInFlight = v.GetInt("NSQ_MAX_IN_FLIGHT")
	configs.NSQ.MaxAttempts = v.GetInt("NSQ_MAX_ATTEMPTS")
	configs.NSQ.RequeueDelaySec = v.GetInt("NSQ_REQUEUE_DELAY")

	configs.Queue.Driver = strings.ToLower(v.GetString("QUEUE_DRIVER"))

	configs.Switch.BaseURL = strings.TrimRight(v.GetString("SWITCH_BASE_URL"), "/")
	configs.Switch.BankCode = v.GetString("SWITCH_BANK_CODE")
	configs.Switch.DefaultCreditor = v.GetString("SWITCH_DEFAULT_CREDITOR")
	configs.Switch.TokenURL = v.GetString("SWITCH_TOKEN_URL")
	configs.Switch.ClientID = v.GetString("SWITCH_CLIENT_ID")
	configs.Switch.ClientSecret = v.GetString("SWITCH_CLIENT_SECRET")
	configs.Switch.Scope = v.GetString("SWITCH_SCOPE")
	configs.Switch.CallbackURL = v.GetString("SWITCH_CALLBACK_URL")
	configs.Switch.CallbackAPIKey = v.GetString("SWITCH_CALLBACK_API_KEY")
	configs.Switch.LookupPath = v.GetString("SWITCH_LOOKUP_PATH")
	configs.Switch.TimeoutSec = v.GetInt("SWITCH_TIMEOUT")
	configs.Switch.TLSCertFile = v.GetString("SWITCH_TLS_CERT")
	configs.Switch.TLSKeyFile = v.GetString("SWITCH_TLS_KEY")
	configs.Switch.TLSCAFile = v.GetString("SWITCH_TLS_CA")
	configs.Switch.TLSSkipVerify = v.GetBool("SWITCH_TLS_SKIP_VERIFY")
	configs.Switch.TokenSafetyDelta = durationOr(v, "SWITCH_TOKEN_MARGIN", 60*time.Second)

	configs.Core.LedgerURL = strings.TrimRight(v.GetString("LEDGER_URL"), "/")
	configs.Core.DirectoryURL = strings.TrimRight(v.GetString("DIRECTORY_URL"), "/")
	configs.Core.APIKey = v.GetString("CORE_API_KEY")
	configs.Core.TimeoutSec = v.GetInt("CORE_TIMEOUT")

	configs.Engine.PollInterval = durationOr(v, "ENGINE_POLL_EVERY", 1500*time.Millisecond)
	configs.Engine.PollAttempts = v.GetInt("ENGINE_POLL_MAX")
	configs.Engine.ReversalWindow = durationOr(v, "REVERSAL_WINDOW", 24*time.Hour)

	configs.Reconciler.Enabled = v.GetBool("RECONCILER_ENABLED")
	configs.Reconciler.Interval = durationOr(v, "RECONCILER_INTERVAL", time.Minute)
	configs.Reconciler.Grace = durationOr(v, "RECONCILER_GRACE", 30*time.Second)
	configs.Reconciler.BatchSize = v.GetInt("RECONCILER_BATCH")
	configs.Reconciler.LeaseTTL = durationOr(v, "RECONCILER_LEASE_TTL", 50*time.Second)

	configs.Lock.Driver = strings.ToLower(v.GetString("LOCK_DRIVER"))
	configs.Lock.TTL = durationOr(v, "LOCK_TTL", 30*time.Second)
	configs.Lock.RetryDelay = durationOr(v, "LOCK_RETRY_DELAY", 25*time.Millisecond)

	configs.Security.OriginSecret = v.GetString("ORIGIN_SECRET")
	configs.Security.APIKeys = splitList(v.GetString("SERVICE_API_KEYS"))
	configs.Security.WebhookRateLimit = v.GetInt("RATE_LIMIT_WEBHOOK")

	configs.NewRelic.Enabled = v.GetBool("NEW_RELIC_ENABLED")
	configs.NewRelic.LicenseKey = v.GetString("NEW_RELIC_LICENSE_KEY")
	configs.NewRelic.AppName = v.GetString("NEW_RELIC_APP_NAME")
	configs.NewRelic.ForwardLogs = v.GetBool("NEW_RELIC_FORWARD_LOGS")

	configs.Logger.Level = v.GetString("LOG_LEVEL")
	configs.Logger.FilePath = v.GetString("LOG_FILE_PATH")

	return configs
}

// durationOr parses key as a duration, falling back on malformed values
func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default: %s", key, fallback)
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
