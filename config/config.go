package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 聚合服务运行所需的全部配置（YAML 文件 + 环境变量覆盖）
type Config struct {
	Port    string `yaml:"port"`
	GinMode string `yaml:"gin_mode"`

	DB    DBConfig    `yaml:"db"`
	Redis RedisConfig `yaml:"redis"`

	WebOrigin      string `yaml:"web_origin"`
	UploadDir      string `yaml:"upload_dir"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`

	ListCacheTTL       time.Duration `yaml:"-"`
	LoginTouchThrottle time.Duration `yaml:"-"`
	ListCacheTTLSec    int           `yaml:"list_cache_ttl_seconds"`
	LoginThrottleSec   int           `yaml:"login_touch_throttle_seconds"`

	LogLevel string `yaml:"log_level"`
	SeedDemo bool   `yaml:"seed_demo"`
}

type DBConfig struct {
	Driver     string `yaml:"driver"` // postgres | sqlite
	URL        string `yaml:"url"`
	Host       string `yaml:"host"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	Port       string `yaml:"port"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Redis 为空地址时不启用
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	DefaultMaxUploadBytes = 5 << 20
)

// LoadEnv 读取 .env（不存在则忽略）
func LoadEnv() {
	_ = godotenv.Load()
}

func Default() Config {
	return Config{
		Port:    "3000",
		GinMode: "debug",
		DB: DBConfig{
			Driver:     DriverPostgres,
			Host:       "127.0.0.1",
			User:       "postgres",
			Name:       "bookswap",
			Port:       "5432",
			SQLitePath: "bookswap.db",
		},
		WebOrigin:        "*",
		UploadDir:        "uploads",
		MaxUploadBytes:   DefaultMaxUploadBytes,
		ListCacheTTLSec:  30,
		LoginThrottleSec: 60,
		LogLevel:         "info",
	}
}

// Load 依次应用：默认值 → YAML 文件（可选）→ 环境变量
func Load(path string) (Config, error) {
	LoadEnv()
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	cfg.ListCacheTTL = time.Duration(cfg.ListCacheTTLSec) * time.Second
	cfg.LoginTouchThrottle = time.Duration(cfg.LoginThrottleSec) * time.Second

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	get := func(k, def string) string {
		v := strings.TrimSpace(os.Getenv(k))
		if v == "" {
			return def
		}
		return v
	}
	getInt := func(k string, def int) int {
		if n, err := strconv.Atoi(get(k, "")); err == nil {
			return n
		}
		return def
	}

	cfg.Port = get("PORT", cfg.Port)
	cfg.GinMode = get("GIN_MODE", cfg.GinMode)

	cfg.DB.Driver = strings.ToLower(get("DB_DRIVER", cfg.DB.Driver))
	cfg.DB.URL = get("DATABASE_URL", cfg.DB.URL)
	cfg.DB.Host = get("DB_HOST", cfg.DB.Host)
	cfg.DB.User = get("DB_USER", cfg.DB.User)
	cfg.DB.Password = get("DB_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = get("DB_NAME", cfg.DB.Name)
	cfg.DB.Port = get("DB_PORT", cfg.DB.Port)
	cfg.DB.SQLitePath = get("SQLITE_PATH", cfg.DB.SQLitePath)

	cfg.Redis.Addr = get("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = get("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getInt("REDIS_DB", cfg.Redis.DB)

	cfg.WebOrigin = get("WEB_ORIGIN", cfg.WebOrigin)
	cfg.UploadDir = get("UPLOAD_DIR", cfg.UploadDir)
	if n, err := strconv.ParseInt(get("MAX_UPLOAD_BYTES", ""), 10, 64); err == nil {
		cfg.MaxUploadBytes = n
	}
	cfg.ListCacheTTLSec = getInt("LIST_CACHE_TTL_SECONDS", cfg.ListCacheTTLSec)
	cfg.LoginThrottleSec = getInt("LOGIN_TOUCH_THROTTLE_SECONDS", cfg.LoginThrottleSec)

	cfg.LogLevel = get("LOG_LEVEL", cfg.LogLevel)
	if v := get("SEED_DEMO", ""); v != "" {
		cfg.SeedDemo, _ = strconv.ParseBool(v)
	}
}

// Validate 拒绝明显错误的配置
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported db driver: %q (expected postgres or sqlite)", c.DB.Driver)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be > 0, got %d", c.MaxUploadBytes)
	}
	if strings.TrimSpace(c.UploadDir) == "" {
		return errors.New("upload_dir is required")
	}
	if c.ListCacheTTLSec < 0 || c.LoginThrottleSec < 0 {
		return errors.New("cache ttl and login throttle must be >= 0")
	}
	return nil
}

// DSN 为 postgres 构造连接串；DATABASE_URL 优先
func (d DBConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", d.SQLitePath)
	}
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		d.Host, d.User, d.Password, d.Name, d.Port,
	)
}
