package models

import "time"

// Config represents application configuration
type Config struct {
	App        AppConfig
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	NATS       NATSConfig
	NSQ        NSQConfig
	Queue      QueueConfig
	Switch     SwitchConfig
	Core       CoreServicesConfig
	Engine     EngineConfig
	Reconciler ReconcilerConfig
	Lock       LockConfig
	Security   SecurityConfig
	NewRelic   NewRelicConfig
	Logger     LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        int
	Username    string
	Password    string
	Database    string
	SSLMode     string
	MaxConns    int
	IdleConns   int
	AutoMigrate bool
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NSQConfig contains NSQ connection configuration
type NSQConfig struct {
	NSQDAddress     string
	LookupdAddress  []string
	InboundTopic    string
	InboundChannel  string
	MaxInFlight     int
	MaxAttempts     int
	RequeueDelaySec int
}

// QueueConfig selects the transport for inbound switch messages
type QueueConfig struct {
	Driver string // jetstream | nsq | none
}

// SwitchConfig contains the national switch (APIM) connection settings
type SwitchConfig struct {
	BaseURL          string
	BankCode         string
	DefaultCreditor  string
	TokenURL         string
	ClientID         string
	ClientSecret     string
	Scope            string
	CallbackURL      string
	CallbackAPIKey   string
	LookupPath       string
	TimeoutSec       int
	TLSCertFile      string
	TLSKeyFile       string
	TLSCAFile        string
	TLSSkipVerify    bool
	TokenSafetyDelta time.Duration
}

// CoreServicesConfig contains the URLs of the ledger and directory services
type CoreServicesConfig struct {
	LedgerURL    string
	DirectoryURL string
	APIKey       string
	TimeoutSec   int
}

// EngineConfig tunes the transaction orchestration engine
type EngineConfig struct {
	PollInterval   time.Duration
	PollAttempts   int
	ReversalWindow time.Duration
}

// ReconcilerConfig tunes the pending transaction sweep
type ReconcilerConfig struct {
	Enabled   bool
	Interval  time.Duration
	Grace     time.Duration
	BatchSize int
	LeaseTTL  time.Duration
}

// LockConfig selects the per-account lock implementation
type LockConfig struct {
	Driver     string // redis | memory
	TTL        time.Duration
	RetryDelay time.Duration
}

// SecurityConfig contains inbound request protection settings
type SecurityConfig struct {
	OriginSecret string
	APIKeys      []string
	// WebhookRateLimit is the per-IP request budget per minute, 0 disables it
	WebhookRateLimit int
}

// NewRelicConfig contains New Relic APM settings
type NewRelicConfig struct {
	Enabled     bool
	LicenseKey  string
	AppName     string
	ForwardLogs bool
}

// LoggerConfig contains zap logger settings
type LoggerConfig struct {
	Level    string
	FilePath string
}
