package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server ServerConfig
	App    AppConfig
	OVH    OVHConfig
	Sniper SniperConfig
	Store  StoreConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"5000"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"ovh-sniper-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// OVHConfig holds OVH API credentials and the ordering context.
type OVHConfig struct {
	Endpoint    string `envconfig:"OVH_ENDPOINT" default:"ovh-eu"`
	AppKey      string `envconfig:"OVH_APP_KEY" default:""`
	AppSecret   string `envconfig:"OVH_APP_SECRET" default:""`
	ConsumerKey string `envconfig:"OVH_CONSUMER_KEY" default:""`
	// Zone is the OVH subsidiary under which carts and orders are created.
	Zone string `envconfig:"OVH_ZONE" default:"IE"`

	// Optional Telegram notification target for purchase outcomes.
	TelegramToken  string `envconfig:"TG_TOKEN" default:""`
	TelegramChatID string `envconfig:"TG_CHAT_ID" default:""`
}

// Configured reports whether all three OVH credentials are present.
func (o *OVHConfig) Configured() bool {
	return o.AppKey != "" && o.AppSecret != "" && o.ConsumerKey != ""
}

// SniperConfig holds scheduler and retry-policy settings.
type SniperConfig struct {
	// TickInterval is the scheduler scan cadence.
	TickInterval time.Duration `envconfig:"SNIPER_TICK_INTERVAL" default:"1s"`
	// CallTimeout bounds each individual OVH API call.
	CallTimeout time.Duration `envconfig:"SNIPER_CALL_TIMEOUT" default:"30s"`
	// MaxAttempts caps availability checks per entry; 0 retries forever.
	MaxAttempts int `envconfig:"SNIPER_MAX_ATTEMPTS" default:"0"`
	// BackoffFactor >1 grows the effective retry interval exponentially
	// per attempt. 1.0 keeps the client-supplied fixed interval.
	BackoffFactor float64 `envconfig:"SNIPER_BACKOFF_FACTOR" default:"1.0"`
}

// StoreConfig holds snapshot persistence settings.
type StoreConfig struct {
	Type string `envconfig:"STORE_TYPE" default:"sqlite"` // sqlite, mysql, or redis
	Path string `envconfig:"STORE_PATH" default:"./data/sniper.db"`
	// MySQL settings
	Host     string `envconfig:"STORE_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"STORE_DB_PORT" default:"3306"`
	Name     string `envconfig:"STORE_DB_NAME" default:"sniper"`
	User     string `envconfig:"STORE_DB_USER" default:"root"`
	Password string `envconfig:"STORE_DB_PASS" default:""`
	// Redis settings
	RedisHost     string `envconfig:"STORE_REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"STORE_REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"STORE_REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"STORE_REDIS_DB" default:"0"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DSN returns the MySQL data source name.
func (s *StoreConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		s.User, s.Password, s.Host, s.Port, s.Name)
}

// RedisAddress returns the Redis address in host:port format.
func (s *StoreConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", s.RedisHost, s.RedisPort)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
