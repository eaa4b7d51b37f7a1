package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// "file" (default) or "dynamo". Both backends expose identical
	// semantics to the services.
	StorageBackend string

	DataDir      string
	AccountsFile string
	OrdersFile   string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	// Base URL of the storefront frontend; confirmation links point here.
	FrontendBaseURL string

	MercadoPagoBaseURL     string
	MercadoPagoAccessToken string
	MercadoPagoTimeout     time.Duration
	Currency               string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Accounts string
	Orders   string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		StorageBackend: getEnv("STORAGE_BACKEND", "file"),

		DataDir:      getEnv("DATA_DIR", "./data"),
		AccountsFile: getEnv("ACCOUNTS_FILE", "usuarios.json"),
		OrdersFile:   getEnv("ORDERS_FILE", "pedidos.json"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Accounts: getEnv("DYNAMO_TABLE_ACCOUNTS", "accounts"),
			Orders:   getEnv("DYNAMO_TABLE_ORDERS", "orders"),
		},

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@semcensura.com.br"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		FrontendBaseURL: getEnv("FRONTEND_BASE_URL", "https://caioolkk.github.io/semcensura-frontend"),

		MercadoPagoBaseURL:     getEnv("MP_BASE_URL", "https://api.mercadopago.com"),
		MercadoPagoAccessToken: getEnv("MP_ACCESS_TOKEN", ""),
		MercadoPagoTimeout:     time.Duration(getEnvInt("MP_TIMEOUT_SECONDS", 10)) * time.Second,
		Currency:               getEnv("CURRENCY", "BRL"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
