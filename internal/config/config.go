package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Caixa     CaixaConfig
	Scraper   ScraperConfig
	Import    ImportConfig
	Stats     StatsConfig
	Scheduler SchedulerConfig
	LogLevel  string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds document-store configuration.
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds token-signing configuration. An empty Secret disables the
// protection of the import endpoint.
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// AuthConfig holds the bcrypt hash of the admin key exchanged for a token.
type AuthConfig struct {
	AdminKeyHash string
}

// CaixaConfig holds upstream results-API configuration.
type CaixaConfig struct {
	BaseURL        string
	UserAgent      string
	TimeoutSeconds int
}

// ScraperConfig holds landing-page scraper configuration.
type ScraperConfig struct {
	URL            string
	TimeoutSeconds int
}

// ImportConfig bounds the batch importer.
type ImportConfig struct {
	MaxBatchSize int
	DelayMs      int
}

// StatsConfig holds statistics defaults.
type StatsConfig struct {
	DefaultWindow int
}

// SchedulerConfig controls the periodic latest-draw refresh.
type SchedulerConfig struct {
	Enabled bool
	Spec    string
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, environment variables take over.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("Server.Port", "5000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "megasena")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Caixa.BaseURL", "https://servicebus2.caixa.gov.br/portaldeloterias/api/megasena")
	viper.SetDefault("Caixa.TimeoutSeconds", 10)
	viper.SetDefault("Scraper.URL", "http://www.loterias.caixa.gov.br/wps/portal/loterias/landing/megasena")
	viper.SetDefault("Scraper.TimeoutSeconds", 10)
	viper.SetDefault("Import.MaxBatchSize", 100)
	viper.SetDefault("Import.DelayMs", 500)
	viper.SetDefault("Stats.DefaultWindow", 10)
	viper.SetDefault("Scheduler.Enabled", false)
	viper.SetDefault("Scheduler.Spec", "@every 1h")
	viper.SetDefault("LogLevel", "info")
}
