// config предоставляет структуру конфигурации сервиса и функции
// загрузки из файла/переменных окружения с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Источники значений (по убыванию приоритета):
//  1. явный путь через флаг --config;
//  2. путь в переменной окружения CONFIG_PATH;
//  3. файл local.yaml из рабочей директории;
//  4. переменные окружения (cleanenv).
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	DB       DBConfig      `yaml:"db"`
	EDM      EDMConfig     `yaml:"edm"`
	Crypto   CryptoConfig  `yaml:"crypto"`
	Admin    AdminConfig   `yaml:"admin"`
	Refresh  RefreshConfig `yaml:"refresh"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50082"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — настройки подключения к базе данных.
type DBConfig struct {
	DatabaseURL string `yaml:"db_url" env:"DATABASE_URL" env-required:"true"`
}

// EDMConfig — параметры token-endpoint'а EDM.
// ClientSecret попадает только в тело запроса к апстриму.
type EDMConfig struct {
	TokenURL     string        `yaml:"token_url" env:"EDM_TOKEN_URL" env-required:"true"`
	ClientID     string        `yaml:"client_id" env:"EDM_CLIENT_ID" env-required:"true"`
	ClientSecret string        `yaml:"client_secret" env:"EDM_CLIENT_SECRET" env-required:"true"`
	Timeout      time.Duration `yaml:"timeout" env:"EDM_TIMEOUT" env-default:"15s"`
}

// CryptoConfig — ключ шифрования токенов: base64 от ровно 32 байт.
type CryptoConfig struct {
	TokenKey string `yaml:"token_key" env:"TOKEN_CIPHER_KEY" env-required:"true"`
}

// AdminConfig — доступ к операторскому HTTP API.
type AdminConfig struct {
	APIKey string `yaml:"api_key" env:"ADMIN_API_KEY" env-required:"true"`
}

// RefreshConfig — расписание обновления токенов.
type RefreshConfig struct {
	// Interval — плановый интервал до следующего обновления после успеха.
	Interval time.Duration `yaml:"interval" env:"REFRESH_INTERVAL" env-default:"8h"`
	// RetryBackoff — перенос попытки после неудачи.
	RetryBackoff time.Duration `yaml:"retry_backoff" env:"REFRESH_RETRY_BACKOFF" env-default:"1h"`
	// BatchSize — размер страницы при массовом обходе записей.
	BatchSize int `yaml:"batch_size" env:"REFRESH_BATCH_SIZE" env-default:"100"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"5s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// ВАЖНО: после чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q does not exist: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}

		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}

		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, nil
}
