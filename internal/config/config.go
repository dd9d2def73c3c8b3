// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	TrialDays               int    `yaml:"trial_days" env:"TRIAL_DAYS" env-default:"14"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	Session                 `yaml:"session"`
	Payment                 `yaml:"payment"`
	Sendgrid                `yaml:"sendgrid"`
	Scheduler               `yaml:"scheduler"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"ADDRESS_HTTP" env-default:"0.0.0.0:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"ADDRESS_REDIS" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env-default:"0"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// Session структура для настройки сессионных cookie
type Session struct {
	SessionSecret string        `yaml:"session_secret" env:"SESSION_SECRET" env-required:"true"`
	SessionTTL    time.Duration `yaml:"session_ttl" env-default:"720h"`
	CookieName    string        `yaml:"cookie_name" env-default:"session"`
}

// Payment структура для работы с платёжным провайдером
type Payment struct {
	PaymentSecretKey string `yaml:"payment_secret_key" env:"PAYMENT_SECRET_KEY" env-required:"true"`
	PaymentPriceID   string `yaml:"payment_price_id" env:"PAYMENT_PRICE_ID" env-required:"true"`
	WebhookSecret    string `yaml:"webhook_secret" env:"PAYMENT_WEBHOOK_SECRET" env-required:"true"`
	PaymentAPIURL    string `yaml:"payment_api_url" env-default:"https://api.payments.example.com/v1"`
}

// Sendgrid структура для отправки писем через SendGrid
type Sendgrid struct {
	SendgridAPIKey string `yaml:"sendgrid_api_key" env:"SENDGRID_API_KEY" env-required:"true"`
	FromEmail      string `yaml:"from_email" env:"SENDGRID_FROM_EMAIL" env-required:"true"`
	FromName       string `yaml:"from_name" env-default:"Daily Practice"`
}

// Scheduler структура для настройки планировщика рассылки
type Scheduler struct {
	TickInterval        time.Duration `yaml:"tick_interval" env-default:"5m"`
	QuestionsPerSubject int           `yaml:"questions_per_subject" env-default:"5"`
}

// MustLoad функция для загрузки конфига, путь берётся из CONFIG_PATH.
// Отсутствие файла или обязательных секретов — фатальная ошибка запуска.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
