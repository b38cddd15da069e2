package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig `mapstructure:"log"`
	JWT       JWTConfig
	Admin     AdminConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	Export    ExportConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// path of the file the config was read from, used by the watcher
	File string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type AdminConfig struct {
	Password string `mapstructure:"password"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"` // memory, redis, mysql, postgres, sqlite, firebase
	// Timeout bounds every document store call.
	Timeout             time.Duration `mapstructure:"timeout"`
	RedisPrefix         string        `mapstructure:"redis_prefix"`
	FirebaseURL         string        `mapstructure:"firebase_url"`
	FirebaseCredentials string        `mapstructure:"firebase_credentials"`
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
	SSLMode   string `mapstructure:"sslmode"`
	// SQLitePath is used when store.driver is sqlite.
	SQLitePath string `mapstructure:"sqlite_path"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type SessionConfig struct {
	Driver string        `mapstructure:"driver"` // memory, redis
	TTL    time.Duration `mapstructure:"ttl"`
}

type ExportConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioSecure   bool   `mapstructure:"minio_secure"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("jwt.expire_hours", 12)
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.timeout", 5*time.Second)
	v.SetDefault("store.redis_prefix", "smartexam:")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "smartexam.db")
	v.SetDefault("session.driver", "memory")
	v.SetDefault("session.ttl", 3*time.Hour)
	v.SetDefault("export.type", "local")
	v.SetDefault("export.local_path", "exports")
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

func LoadConfig(path string) (*Config, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("SMARTEXAM")
	v.AutomaticEnv()
	setDefaults(v)

	// Secrets
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("admin.password", "ADMIN_PASSWORD")

	// Store
	v.BindEnv("store.driver", "STORE_DRIVER")
	v.BindEnv("store.firebase_url", "FIREBASE_DATABASE_URL")
	v.BindEnv("store.firebase_credentials", "GOOGLE_APPLICATION_CREDENTIALS")

	// Database
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("server.port", "PORT")

	// Export storage
	v.BindEnv("export.type", "EXPORT_STORAGE_TYPE")
	v.BindEnv("export.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("export.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("export.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("export.minio_bucket", "MINIO_BUCKET")
	v.BindEnv("export.oss_endpoint", "OSS_ENDPOINT")
	v.BindEnv("export.oss_access_key", "OSS_ACCESS_KEY")
	v.BindEnv("export.oss_secret_key", "OSS_SECRET_KEY")
	v.BindEnv("export.oss_bucket", "OSS_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.File = v.ConfigFileUsed()

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Export.Type == "local" {
		if _, err := os.Stat(cfg.Export.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Export.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}
	if c.Admin.Password == "" {
		return fmt.Errorf("admin password is not configured")
	}
	switch c.Store.Driver {
	case "memory", "redis", "mysql", "postgres", "sqlite":
	case "firebase":
		if c.Store.FirebaseURL == "" {
			return fmt.Errorf("store.firebase_url is required for the firebase driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	switch c.Session.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown session driver %q", c.Session.Driver)
	}
	return nil
}
