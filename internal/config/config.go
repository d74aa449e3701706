package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongoDB  = "mongodb"
	DriverMemory   = "memory"
)

// AI providers accepted by AI_PROVIDER.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderNone      = "none"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	WhatsApp  WhatsAppConfig
	Sheets    SheetsConfig
	Backup    BackupConfig
	Reporting ReportingConfig
	AI        AIConfig
	MongoDB   MongoDBConfig
	Costs     CostConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port      string
	JWTSecret string
	LogLevel  string
}

// StoreConfig selects the snapshot persistence backend.
type StoreConfig struct {
	Driver      string
	SQLitePath  string
	PostgresDSN string
}

// WhatsAppConfig contains credentials for the Meta WhatsApp Cloud API. The
// daily summary is sent to Recipient.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	Recipient     string
}

// Enabled reports whether report notifications can be sent.
func (w WhatsAppConfig) Enabled() bool {
	return w.AccessToken != "" && w.PhoneNumberID != "" && w.Recipient != ""
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether daily reports are exported to a spreadsheet.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// BackupConfig describes the S3 bucket receiving snapshot backups.
type BackupConfig struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
}

// Enabled reports whether cloud backup is configured.
func (b BackupConfig) Enabled() bool {
	return b.Bucket != ""
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// AIConfig holds settings for LLM providers.
type AIConfig struct {
	Provider     string
	AnthropicKey string
	OpenAIKey    string
	OpenAIModel  string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Enabled reports whether a MongoDB deployment is configured.
func (m MongoDBConfig) Enabled() bool {
	return m.URI != ""
}

// CostConfig holds the per-sale cost estimates as entered in the environment.
type CostConfig struct {
	MilkLaborCost        string
	FeedCostPerLitre     string
	parsedLaborCost      decimal.Decimal
	parsedFeedCostPerLtr decimal.Decimal
}

// Model returns the validated cost model.
func (c CostConfig) Model() models.CostModel {
	return models.CostModel{
		MilkSaleLaborCost: c.parsedLaborCost,
		FeedCostPerLitre:  c.parsedFeedCostPerLtr,
	}
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	defaults := models.DefaultCostModel()
	cfg := &Config{
		Server: ServerConfig{
			Port:      getenvWithDefault("APP_PORT", "8080"),
			JWTSecret: os.Getenv("JWT_SECRET"),
			LogLevel:  strings.ToLower(getenvWithDefault("LOG_LEVEL", "info")),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(getenvWithDefault("STORE_DRIVER", DriverSQLite)),
			SQLitePath:  getenvWithDefault("SQLITE_PATH", "data/dairy.db"),
			PostgresDSN: os.Getenv("POSTGRES_DSN"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			Recipient:     os.Getenv("WHATSAPP_REPORT_RECIPIENT"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Backup: BackupConfig{
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    getenvWithDefault("S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			PathStyle: strings.EqualFold(os.Getenv("S3_PATH_STYLE"), "true"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
		},
		AI: AIConfig{
			Provider:     strings.ToLower(getenvWithDefault("AI_PROVIDER", ProviderAnthropic)),
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
			OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:  getenvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "dairy"),
		},
		Costs: CostConfig{
			MilkLaborCost:    getenvWithDefault("MILK_LABOR_COST", defaults.MilkSaleLaborCost.String()),
			FeedCostPerLitre: getenvWithDefault("MILK_FEED_COST_PER_LITRE", defaults.FeedCostPerLitre.String()),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and that
// the selected drivers have what they need.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("SQLITE_PATH must be provided for the sqlite store")
		}
	case DriverPostgres:
		if c.Store.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN must be provided for the postgres store")
		}
	case DriverMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided for the mongodb store")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}

	switch c.AI.Provider {
	case ProviderAnthropic:
		if c.AI.AnthropicKey == "" {
			return errors.New("ANTHROPIC_API_KEY must be provided when AI_PROVIDER=anthropic")
		}
	case ProviderOpenAI:
		if c.AI.OpenAIKey == "" {
			return errors.New("OPENAI_API_KEY must be provided when AI_PROVIDER=openai")
		}
	case ProviderNone:
	default:
		return fmt.Errorf("unsupported AI_PROVIDER %q", c.AI.Provider)
	}

	if c.WhatsApp.BaseURL == "" {
		return errors.New("WHATSAPP_BASE_URL must not be empty")
	}

	if c.WhatsApp.APIVersion == "" {
		return errors.New("WHATSAPP_API_VERSION must not be empty")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	labor, err := parseAmount("MILK_LABOR_COST", c.Costs.MilkLaborCost)
	if err != nil {
		return err
	}
	feed, err := parseAmount("MILK_FEED_COST_PER_LITRE", c.Costs.FeedCostPerLitre)
	if err != nil {
		return err
	}
	c.Costs.parsedLaborCost, c.Costs.parsedFeedCostPerLtr = labor, feed

	return nil
}

func parseAmount(key, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a number: %w", key, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative", key)
	}
	return amount, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
