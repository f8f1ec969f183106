// Package config loads service configuration from a YAML file and
// environment variables.
//
// Configuration is resolved in three layers: built-in defaults, an optional
// config file, and environment variables with the ML prefix (for example
// ML_POSTGRES_HOST overrides postgres.host). The file is optional so that
// containerized deployments can run on environment variables alone.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the service.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Media    MediaConfig    `mapstructure:"media"`
	Cleanup  CleanupConfig  `mapstructure:"cleanup"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// RedisConfig holds Redis connection settings.
// Redis is optional; an empty host disables the mood-count cache.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address in host:port form.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Enabled reports whether a Redis host is configured.
func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

// AuthConfig holds token validation settings. Token issuing is handled by
// the external auth service; this service only validates.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// MediaConfig holds media upload and resolution settings.
type MediaConfig struct {
	UploadDirectory        string   `mapstructure:"upload_directory"`
	PublicRootPrefix       string   `mapstructure:"public_root_prefix"`
	MaxFileSizeBytes       int64    `mapstructure:"max_file_size_bytes"`
	AllowedVideoExtensions []string `mapstructure:"allowed_video_extensions"`
	AllowedAudioExtensions []string `mapstructure:"allowed_audio_extensions"`
	FallbackMediaURL       string   `mapstructure:"fallback_media_url"`
}

// CleanupConfig holds the orphan-playlist cleanup settings.
type CleanupConfig struct {
	Schedule string        `mapstructure:"schedule"`
	MinAge   time.Duration `mapstructure:"min_age"`
}

// Load reads configuration from the given file path and the environment.
// An empty path falls back to the default search locations.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ML")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional if all required values are in env.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.database", "moodlist")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.max_conns", 25)
	v.SetDefault("postgres.min_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("media.upload_directory", "uploads/media")
	v.SetDefault("media.public_root_prefix", "")
	v.SetDefault("media.max_file_size_bytes", int64(104857600)) // 100 MiB
	v.SetDefault("media.allowed_video_extensions", []string{".mp4", ".avi", ".mov", ".wmv", ".webm"})
	v.SetDefault("media.allowed_audio_extensions", []string{".mp3", ".wav", ".ogg", ".m4a", ".aac"})
	v.SetDefault("media.fallback_media_url", "https://www.youtube.com/embed/dQw4w9WgXcQ?enablejsapi=1&modestbranding=1&rel=0")

	v.SetDefault("cleanup.schedule", "@hourly")
	v.SetDefault("cleanup.min_age", time.Hour)
}

// validate checks that required values are present and sane.
func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range: %d", cfg.Server.HTTPPort)
	}
	if cfg.Postgres.Host == "" {
		return fmt.Errorf("postgres.host is required")
	}
	if cfg.Postgres.Database == "" {
		return fmt.Errorf("postgres.database is required")
	}
	if cfg.Media.MaxFileSizeBytes <= 0 {
		return fmt.Errorf("media.max_file_size_bytes must be positive")
	}
	if cfg.Media.UploadDirectory == "" {
		return fmt.Errorf("media.upload_directory is required")
	}
	if cfg.Media.FallbackMediaURL == "" {
		return fmt.Errorf("media.fallback_media_url is required")
	}
	return nil
}
