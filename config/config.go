package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings required to run the service.
// Values are read from environment variables, optionally pre-loaded from a
// config/env/<GO_ENV>.env file.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`      // Listen address
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"` // MongoDB connection string
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`         // Database holding issues/authorities/mail_queue

	// Escalation engine
	EscalateToken       string `env:"ESCALATE_TOKEN"`                         // Shared secret protecting the on-demand sweep endpoint (empty = unprotected)
	SweepIntervalMin    int    `env:"SWEEP_INTERVAL_MIN" envDefault:"60"`     // Minutes between scheduled sweeps
	SweepBatchSize      int    `env:"SWEEP_BATCH_SIZE" envDefault:"50"`       // Max candidates per sweep invocation
	DefaultSlaDays      int    `env:"DEFAULT_SLA_DAYS" envDefault:"7"`        // SLA window (days) when an issue carries none
	InitialAssignedRole string `env:"INITIAL_ASSIGNED_ROLE" envDefault:"vi"`  // Role new issues start at (vi or pdo, per deployment)

	// Outbox delivery
	DeliveryIntervalSec int    `env:"DELIVERY_INTERVAL_SEC" envDefault:"30"` // Seconds between outbox drain passes
	DeliveryBatchSize   int    `env:"DELIVERY_BATCH_SIZE" envDefault:"20"`   // Max mail_queue records per drain pass
	SMTPHost            string `env:"SMTP_HOST"`
	SMTPPort            int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername        string `env:"SMTP_USERNAME"`
	SMTPPassword        string `env:"SMTP_PASSWORD"`
	MailFromName        string `env:"MAIL_FROM_NAME" envDefault:"VITAL Alerts"`
	MailFromAddress     string `env:"MAIL_FROM_ADDRESS"`
	FrontendURL         string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"` // Base URL for action links in notification emails

	// HTTP layer
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Allowed origins (comma separated, * = all)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Allow credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Max requests per window (0 = disabled)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Window length (seconds)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Toggle rate limiting

	// TLS/HTTPS
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`

	// Firebase (authentication of villagers/authorities)
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"` // Path to the service account JSON
}

// getEnvPath returns the env file path for the current environment.
func getEnvPath() string {
	environment := os.Getenv("GO_ENV")
	if environment == "" {
		environment = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// fmt.Printf because the logger may not be initialized yet
		fmt.Printf("Could not determine working directory: %v\n", err)
		return ""
	}

	// Walk up until a config/env directory is found
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", environment))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig loads the configuration from the environment, preferring a
// config/env/<GO_ENV>.env file when one exists.
func NewConfig() *Configuration {
	envPath := getEnvPath()
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			// Not fatal: the process may be configured purely via environment
			fmt.Printf("Could not load env file at %s: %v\n", envPath, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Failed to parse configuration: %+v\n", err)
		return nil
	}

	return &cfg
}
