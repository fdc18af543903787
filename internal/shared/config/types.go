package config

import "fmt"

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// CreditsConfig controls the usage-metering defaults.
type CreditsConfig struct {
	// InitialGrant is the credit balance written when a user record is
	// created on first access.
	InitialGrant int `mapstructure:"initial_grant"`
}

type PlansConfig struct {
	CatalogPath string `mapstructure:"catalog_path"`
}

// SlidesConfig configures the remote presentation-processing service.
type SlidesConfig struct {
	BaseURL        string           `mapstructure:"base_url"`
	TokenURL       string           `mapstructure:"token_url"`
	ClientID       string           `mapstructure:"client_id"`
	ClientSecret   string           `mapstructure:"client_secret"`
	TimeoutSeconds int              `mapstructure:"timeout_seconds"`
	AuthTimeout    int              `mapstructure:"auth_timeout_seconds"`
	Transition     TransitionConfig `mapstructure:"transition"`
}

// TransitionConfig holds the fixed per-slide transform parameters.
// These are deliberately not user-configurable.
type TransitionConfig struct {
	Type        string  `mapstructure:"type"`
	Duration    float64 `mapstructure:"duration"`
	MorphOption string  `mapstructure:"morph_option"`
}

// StorageConfig configures the durable artifact store.
type StorageConfig struct {
	URL       string `mapstructure:"url"`
	APIKey    string `mapstructure:"api_key"`
	Bucket    string `mapstructure:"bucket"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// ConversionConfig configures the conversion job orchestrator.
type ConversionConfig struct {
	// AllowedHosts is the egress allow-list for source artifact URLs.
	AllowedHosts           []string `mapstructure:"allowed_hosts"`
	DownloadTimeoutSeconds int      `mapstructure:"download_timeout_seconds"`
	DownloadMaxAttempts    int      `mapstructure:"download_max_attempts"`
}
