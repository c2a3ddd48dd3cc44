package models

// Config represents application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	API       APIConfig
	Reconcile ReconcileConfig
	JWT       JWTConfig
	NewRelic  NewRelicConfig
	Logger    LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains the agent HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// APIConfig contains the dues-portal REST backend configuration.
// The realtime socket URL is derived from BaseURL by scheme rewrite.
type APIConfig struct {
	BaseURL string
	Timeout int // in seconds
}

// ReconcileConfig contains the reconciliation loop configuration
type ReconcileConfig struct {
	PollInterval int // in seconds
}

// JWTConfig contains JWT authentication configuration. Secret is optional:
// when set, the subject token's signature is verified at startup.
type JWTConfig struct {
	Secret string
}

// NewRelicConfig contains New Relic monitoring configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level      string
	FilePath   string
	MaxSize    int64
	MaxAge     int
	MaxBackups int
	Compress   bool
}
