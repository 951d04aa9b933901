// Файл: config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type RemoteAPIConfig struct {
	// Provider: remote - настоящий API, demo - данные в памяти.
	Provider  string        `yaml:"provider"`
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rate_limit"`
	Burst     int           `yaml:"burst"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type PostgresConfig struct {
	// Пустой DSN отключает журнал активности.
	DSN string `yaml:"dsn"`
}

type SessionConfig struct {
	StorageKey string        `yaml:"storage_key"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

type SyncConfig struct {
	Schedule string `yaml:"schedule"`
}

// HealthConfig - единая таблица порогов здоровья оборудования.
type HealthConfig struct {
	CriticalBelow int `yaml:"critical_below"`
	HealthyFrom   int `yaml:"healthy_from"`
	BarGreenFrom  int `yaml:"bar_green_from"`
	BarYellowFrom int `yaml:"bar_yellow_from"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	RemoteAPI RemoteAPIConfig `yaml:"remote_api"`
	Redis     RedisConfig     `yaml:"redis"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Session   SessionConfig   `yaml:"session"`
	Sync      SyncConfig      `yaml:"sync"`
	Health    HealthConfig    `yaml:"health"`
	Log       LogConfig       `yaml:"log"`
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			AllowedOrigins: []string{getEnv("ALLOWED_ORIGIN", "http://localhost:3000")},
		},
		RemoteAPI: RemoteAPIConfig{
			Provider:  getEnv("API_PROVIDER", "remote"),
			BaseURL:   getEnv("API_BASE_URL", "http://localhost:5000/api"),
			Timeout:   getEnvDuration("API_TIMEOUT", 20*time.Second),
			RateLimit: getEnvFloat("API_RATE_LIMIT", 20),
			Burst:     getEnvInt("API_RATE_BURST", 10),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Postgres: PostgresConfig{
			DSN: getEnv("ACTIVITY_DATABASE_URL", ""),
		},
		Session: SessionConfig{
			StorageKey: getEnv("SESSION_STORAGE_KEY", "gearguard_session"),
			DefaultTTL: getEnvDuration("SESSION_DEFAULT_TTL", 24*time.Hour),
		},
		Sync: SyncConfig{
			Schedule: getEnv("SYNC_SCHEDULE", "@every 5m"),
		},
		Health: HealthConfig{
			CriticalBelow: getEnvInt("HEALTH_CRITICAL_BELOW", 30),
			HealthyFrom:   getEnvInt("HEALTH_HEALTHY_FROM", 70),
			BarGreenFrom:  getEnvInt("HEALTH_BAR_GREEN_FROM", 80),
			BarYellowFrom: getEnvInt("HEALTH_BAR_YELLOW_FROM", 50),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "debug"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			log.Printf("Предупреждение: не удалось прочитать %s: %v", path, err)
		}
	}
	return cfg
}

// LoadFile накладывает значения из YAML-файла поверх переменных окружения.
// Отсутствующие в файле поля не трогаются.
func (c *Config) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("чтение файла конфигурации: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("разбор YAML: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
