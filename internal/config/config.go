// Package config загружает конфигурацию сервера из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
// Игровой баланс (ставки, шансы) живёт отдельно — см. balance.go.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- HTTP ---
	HTTPAddr         string        `envconfig:"HTTP_ADDR" default:":8080"`
	HTTPReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	HTTPWriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"15s"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`

	// --- Файлы ---
	// Каталог с сохранениями игроков: по одному JSON-файлу на игрока.
	SavesDir string `envconfig:"SAVES_DIR" default:"./saves"`
	// Каталог со статичными данными игры (монстры, навыки, подземелья).
	DataDir string `envconfig:"DATA_DIR" default:"./data"`
	// Каталог для ночных бэкапов сохранений.
	BackupDir string `envconfig:"BACKUP_DIR" default:"./backups"`
	// Необязательный YAML с настройками баланса. Пусто — берём дефолты.
	BalancePath string `envconfig:"BALANCE_CONFIG_PATH" default:""`

	// --- Auth ---
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"720h"`
	// Стоимость bcrypt. 10 — дефолт библиотеки, поднимать только осознанно.
	BcryptCost int `envconfig:"BCRYPT_COST" default:"10"`

	// --- Rate Limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"30"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	// --- Jobs ---
	// Включает ночной бэкап и почасовой отчёт по открытым боям.
	JobsEnabled bool `envconfig:"JOBS_ENABLED" default:"true"`
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	if c.SavesDir == "" {
		return fmt.Errorf("SAVES_DIR не задан")
	}
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR не задан")
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET слишком короткий (минимум 16 символов)")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL должен быть > 0")
	}
	if c.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS должен быть > 0")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
