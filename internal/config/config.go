package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host        string   `yaml:"host"`
		Port        int      `yaml:"port"`
		Env         string   `yaml:"env"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver"` // postgres, mysql
		DSN             string `yaml:"url"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // минуты
		SlowQueryMs     int    `yaml:"slow_query_ms"`
		QueryTimeout    int    `yaml:"query_timeout"` // секунды на запрос
		AutoMigrate     bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	Email struct {
		Enabled      bool     `yaml:"enabled"`
		SMTPHost     string   `yaml:"smtp_host"`
		SMTPPort     int      `yaml:"smtp_port"`
		SMTPUsername string   `yaml:"smtp_user"`
		SMTPPassword string   `yaml:"smtp_password"`
		FromEmail    string   `yaml:"from_email"`
		FromName     string   `yaml:"from_name"`
		ReportTo     []string `yaml:"report_to"`
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		GymID    uint   `yaml:"gym_id"`
	} `yaml:"admin"`

	Storage struct {
		Type      string `yaml:"type"`       // local, s3, cloudflare_r2
		BasePath  string `yaml:"base_path"`  // для local
		BaseURL   string `yaml:"base_url"`   // публичный префикс URL
		Bucket    string `yaml:"bucket"`     // для S3/R2
		Region    string `yaml:"region"`     // для S3
		AccessKey string `yaml:"access_key"` // для S3/R2
		SecretKey string `yaml:"secret_key"` // для S3/R2
		Endpoint  string `yaml:"endpoint"`   // для R2 или совместимого S3
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`      // байты
		AllowedTypes []string `yaml:"allowed_types"` // MIME
		AvatarSize   int      `yaml:"avatar_size"`   // сторона квадрата, px
		ImageQuality int      `yaml:"image_quality"` // JPEG 1-100
	} `yaml:"upload"`

	Jobs struct {
		Enabled             bool   `yaml:"enabled"`
		ExpireSubscriptions string `yaml:"expire_subscriptions"` // cron-выражение
		ExpiringReport      string `yaml:"expiring_report"`      // cron-выражение
	} `yaml:"jobs"`

	Web struct {
		CookieSecret string `yaml:"cookie_secret"`
		SecureCookie bool   `yaml:"secure_cookie"`
	} `yaml:"web"`
}

var AppConfig *Config

// Load читает .env (если есть), затем YAML (CONFIG_PATH или config/config.yaml),
// затем переопределяет значения из переменных окружения.
// Если YAML-файла нет, но DATABASE_URL задан, конфигурация собирается
// целиком из окружения (режим тестов/контейнера).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	f, err := os.Open(configPath)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
		}
	case os.IsNotExist(err) && os.Getenv("DATABASE_URL") != "":
		// только окружение
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return cfg, nil
}

// Defaults - значения по умолчанию до чтения YAML
func Defaults() *Config {
	var cfg Config

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 5000
	cfg.Server.Env = "development"
	cfg.Server.CORSOrigins = []string{"*"}

	cfg.Database.Driver = "postgres"
	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 5
	cfg.Database.ConnMaxLifetime = 30
	cfg.Database.SlowQueryMs = 200
	cfg.Database.QueryTimeout = 5

	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "Gym Backend"

	cfg.JWT.TTL = 720

	cfg.Admin.Name = "Admin"
	cfg.Admin.GymID = 1

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/uploads"

	cfg.Upload.MaxSize = 5 * 1024 * 1024 // 5MB
	cfg.Upload.AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	cfg.Upload.AvatarSize = 256
	cfg.Upload.ImageQuality = 85

	cfg.Jobs.Enabled = true
	cfg.Jobs.ExpireSubscriptions = "5 0 * * *"
	cfg.Jobs.ExpiringReport = "0 8 * * *"

	return &cfg
}

func applyEnv(cfg *Config) {
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.Web.CookieSecret, "COOKIE_SECRET")
	setString(&cfg.Admin.Email, "FIRST_ADMIN_EMAIL")
	setString(&cfg.Admin.Password, "FIRST_ADMIN_PASSWORD")
	setUint(&cfg.Admin.GymID, "FIRST_ADMIN_GYM_ID")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = strings.Split(v, ",")
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setUint(dst *uint, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			*dst = uint(n)
		}
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database.url (DATABASE_URL) is required")
	}
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret (JWT_SECRET) is required")
	}
	if c.Web.CookieSecret == "" {
		c.Web.CookieSecret = c.JWT.Secret
	}
	switch c.Storage.Type {
	case "local":
	case "s3", "cloudflare_r2":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required for %s storage", c.Storage.Type)
		}
	default:
		return fmt.Errorf("unsupported storage type %q", c.Storage.Type)
	}
	if c.Email.Enabled && c.Email.SMTPHost == "" {
		return fmt.Errorf("email.smtp_host is required when email is enabled")
	}
	return nil
}

// Addr - адрес для http.Server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func GetConfig() *Config {
	return AppConfig
}
