package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "sharayeh/internal/shared/config"
)

type Config struct {
	Server     sharedConfig.ServerConfig     `mapstructure:"server"`
	Database   sharedConfig.DatabaseConfig   `mapstructure:"database"`
	Logger     sharedConfig.LoggerConfig     `mapstructure:"logger"`
	Redis      sharedConfig.RedisConfig      `mapstructure:"redis"`
	Auth       sharedConfig.AuthConfig       `mapstructure:"auth"`
	Credits    sharedConfig.CreditsConfig    `mapstructure:"credits"`
	Plans      sharedConfig.PlansConfig      `mapstructure:"plans"`
	Slides     sharedConfig.SlidesConfig     `mapstructure:"slides"`
	Storage    sharedConfig.StorageConfig    `mapstructure:"storage"`
	Conversion sharedConfig.ConversionConfig `mapstructure:"conversion"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("SHARAYEH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "sharayeh_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Auth defaults
	viper.SetDefault("auth.jwt.secret", "change-me-in-production")
	viper.SetDefault("auth.jwt.issuer", "")

	// Credits defaults
	viper.SetDefault("credits.initial_grant", 200)

	// Plans defaults
	viper.SetDefault("plans.catalog_path", "./configs/plans.yaml")

	// Slides service defaults
	viper.SetDefault("slides.base_url", "https://api.aspose.cloud/v3.0")
	viper.SetDefault("slides.token_url", "https://api.aspose.cloud/connect/token")
	viper.SetDefault("slides.client_id", "")
	viper.SetDefault("slides.client_secret", "")
	viper.SetDefault("slides.timeout_seconds", 60)
	viper.SetDefault("slides.auth_timeout_seconds", 30)
	viper.SetDefault("slides.transition.type", "morph")
	viper.SetDefault("slides.transition.duration", 2.0)
	viper.SetDefault("slides.transition.morph_option", "byobject")

	// Durable storage defaults
	viper.SetDefault("storage.url", "")
	viper.SetDefault("storage.api_key", "")
	viper.SetDefault("storage.bucket", "converted")
	viper.SetDefault("storage.key_prefix", "conversions")

	// Conversion defaults
	viper.SetDefault("conversion.allowed_hosts", []string{"files.sharayeh.com"})
	viper.SetDefault("conversion.download_timeout_seconds", 60)
	viper.SetDefault("conversion.download_max_attempts", 3)
}
