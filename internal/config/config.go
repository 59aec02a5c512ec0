package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port           string
	ReadTimeout    int      `mapstructure:"read_timeout"`  // в секундах
	WriteTimeout   int      `mapstructure:"write_timeout"` // в секундах
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string `mapstructure:"migrations_path"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster.
// Redis необязателен: без адресов ограничение частоты входа отключено.
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт)
	Addrs []string `mapstructure:"addrs"`

	// Addr: Адрес для режима 'single', если Addrs пустой
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // мс
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // мс
}

// Enabled сообщает, задан ли хотя бы один адрес Redis
func (r *RedisConfig) Enabled() bool {
	return len(r.Addrs) > 0 || r.Addr != ""
}

// AuthConfig содержит настройки сессий и паролей
type AuthConfig struct {
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	CookieName   string        `mapstructure:"cookie_name"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
	BcryptCost   int           `mapstructure:"bcrypt_cost"`
}

// RateLimitConfig содержит ограничения частоты попыток входа
type RateLimitConfig struct {
	LoginLimit  int           `mapstructure:"login_limit"`
	LoginWindow time.Duration `mapstructure:"login_window"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL формирует URL подключения для golang-migrate
func (d *DatabaseConfig) PostgresURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 15)
	vip.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.migrations_path", "file://migrations")

	vip.SetDefault("redis.mode", "single")

	vip.SetDefault("auth.session_ttl", 7*24*time.Hour)
	vip.SetDefault("auth.cookie_name", "session_id")
	vip.SetDefault("auth.bcrypt_cost", 10)

	vip.SetDefault("rate_limit.login_limit", 10)
	vip.SetDefault("rate_limit.login_window", time.Minute)
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Значения по умолчанию
	setDefaults(vip)

	// 2. Привязываем переменные окружения ЯВНО
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.migrations_path", "DATABASE_MIGRATIONS_PATH")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("auth.session_ttl", "AUTH_SESSION_TTL")
	vip.BindEnv("auth.cookie_name", "AUTH_COOKIE_NAME")
	vip.BindEnv("auth.cookie_secure", "AUTH_COOKIE_SECURE")
	vip.BindEnv("auth.bcrypt_cost", "AUTH_BCRYPT_COST")

	vip.BindEnv("rate_limit.login_limit", "RATE_LIMIT_LOGIN_LIMIT")
	vip.BindEnv("rate_limit.login_window", "RATE_LIMIT_LOGIN_WINDOW")

	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.allowed_origins", "SERVER_ALLOWED_ORIGINS")

	// 3. Файл конфигурации необязателен
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
				log.Printf("[Config] Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("[Config] Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 4. Viper объединит значения из файла, env и умолчаний
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Port: %s", cfg.Database.Port)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Enabled: %t (mode: %s)", cfg.Redis.Enabled(), cfg.Redis.Mode)
		log.Printf("Session TTL: %s", cfg.Auth.SessionTTL)
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("-----------------------------------------")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate проверяет обязательные параметры
func (c *Config) validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be positive, got %s", c.Auth.SessionTTL)
	}
	if c.Auth.CookieName == "" {
		return fmt.Errorf("auth.cookie_name must not be empty")
	}
	if os.Getenv("GIN_MODE") == "release" && c.Database.Password == "" {
		return fmt.Errorf("database password is required in production mode (check DATABASE_PASSWORD env var)")
	}
	return nil
}
