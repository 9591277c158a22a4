package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig   `mapstructure:"server"`
	Storage   StorageConfig  `mapstructure:"storage"`
	Reminders ReminderConfig `mapstructure:"reminders"`
	Log       LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type StorageConfig struct {
	Driver      string   `mapstructure:"driver"`
	DataDir     string   `mapstructure:"data_dir"`
	SQLitePath  string   `mapstructure:"sqlite_path"`
	PostgresDSN string   `mapstructure:"postgres_dsn"`
	S3          S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	Prefix    string `mapstructure:"prefix"`
	PathStyle bool   `mapstructure:"path_style"`
}

type ReminderConfig struct {
	// Schedule is a robfig/cron spec, "@every 24h" by default.
	Schedule string `mapstructure:"schedule"`
	// Notify sends a (simulated) alert for each expiring account on every run.
	Notify bool `mapstructure:"notify"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads .env, an optional config.yaml and STREAMDESK_* environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.streamdesk")

	v.SetEnvPrefix("STREAMDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Plain PORT / DB_URL are honoured for hosting platforms that inject them.
	if _, explicit := os.LookupEnv("STREAMDESK_SERVER_PORT"); !explicit {
		if port := os.Getenv("PORT"); port != "" {
			cfg.Server.Port = port
		}
	}
	if cfg.Storage.PostgresDSN == "" {
		cfg.Storage.PostgresDSN = os.Getenv("DB_URL")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.data_dir", "./data")
	v.SetDefault("storage.sqlite_path", "./data/streamdesk.db")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.prefix", "streamdesk/")
	v.SetDefault("storage.s3.path_style", false)
	v.SetDefault("reminders.schedule", "@every 24h")
	v.SetDefault("reminders.notify", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory", "file", "sqlite":
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("invalid storage config: postgres driver requires a DSN")
		}
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("invalid storage config: s3 driver requires a bucket")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Reminders.Schedule == "" {
		return fmt.Errorf("invalid reminders config: empty schedule")
	}
	return nil
}

// ConfigureZerolog applies the level and output format to the global logger.
func (c *LogConfig) ConfigureZerolog() {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Level))
	if err != nil || c.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if strings.EqualFold(c.Format, "json") {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
}
