package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Backends selectable with BACKEND.
const (
	BackendFirebase = "firebase"
	BackendMemory   = "memory"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	Env               string        `mapstructure:"ENV"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	SessionTokenTTL   time.Duration `mapstructure:"SESSION_TOKEN_TTL"`
	SessionIdleTTL    time.Duration `mapstructure:"SESSION_IDLE_TTL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Document store.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisFlagsDB  int    `mapstructure:"REDIS_FLAGS_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Identity and push.
	Backend                 string `mapstructure:"BACKEND"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseAPIKey          string `mapstructure:"FIREBASE_API_KEY"`
	DemoModeEnabled         bool   `mapstructure:"DEMO_MODE_ENABLED"`

	// Command-line only.
	ConfigFile string `mapstructure:"config"`
	Seed       bool   `mapstructure:"seed"`
}

var AppConfig Config

// LoadConfig fills AppConfig from the command line, config.yaml, the
// environment and defaults, in that order of precedence.
func LoadConfig() {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load builds a Config from args and the environment.
func Load(args []string) (Config, error) {
	v := viper.New()

	flags := pflag.NewFlagSet("hotelsa", pflag.ContinueOnError)
	flags.String("config", "", "path to a config file (default ./config.yaml or ./config/config.yaml)")
	flags.Bool("seed", false, "upsert the hotel catalogue at startup")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	if err := v.BindPFlags(flags); err != nil {
		return Config{}, err
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		// Look for a config file named "config.yaml" in the current and "config" directory.
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	// Automatically use environment variables where available.
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SESSION_TOKEN_TTL", "720h")
	v.SetDefault("SESSION_IDLE_TTL", "30m")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "hotelsa")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_FLAGS_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("BACKEND", BackendMemory)
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("FIREBASE_API_KEY", "")
	v.SetDefault("DEMO_MODE_ENABLED", true)
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendFirebase:
		if c.FirebaseAPIKey == "" {
			return errors.New("FIREBASE_API_KEY is required with BACKEND=firebase")
		}
	default:
		return fmt.Errorf("unknown BACKEND %q", c.Backend)
	}
	if c.Env == "production" && c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required in production")
	}
	if c.SessionTokenTTL <= 0 {
		return errors.New("SESSION_TOKEN_TTL must be positive")
	}
	if c.MaxRequestsPerMin <= 0 {
		return errors.New("MAX_REQUESTS_PER_MIN must be positive")
	}
	return nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
