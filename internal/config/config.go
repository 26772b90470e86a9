// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек консоли.
type Config struct {
	Env              string `yaml:"env" env-default:"local"`
	Storage          `yaml:"storage"`
	RedisConnection  `yaml:"redis_connection"`
	RabbitConnection `yaml:"rabbit_connection"`
	HTTPServer       `yaml:"http_server"`
	JWTToken         `yaml:"jwttoken"`
	Reports          `yaml:"reports"`
	Monitor          `yaml:"monitor"`
	SMTP             `yaml:"smtp"`
	AdminEmail       string `yaml:"admin_email" env-default:"admin@investwisepro.com"`
}

// Storage настраивает адаптер хранилища слотов.
// Driver: file (по умолчанию), redis или postgres.
type Storage struct {
	Driver           string `yaml:"driver" env-default:"file"`
	DataDir          string `yaml:"data_dir" env-default:"./data"`
	ConnectionString string `yaml:"connection_string"`
	MigrationsPath   string `yaml:"migrations_path" env-default:"./migrations"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"localhost:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
// Используется как бэкенд хранилища и как кэш агрегированной статистики.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// RabbitConnection структура для подключения к RabbitMQ
// (широковещательный канал уведомлений).
type RabbitConnection struct {
	AddressRabbit string        `yaml:"addressrabbit"`
	RetriesRabbit int           `yaml:"retries" env-default:"5"`
	DelayRabbit   time.Duration `yaml:"delay" env-default:"2s"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Reports настраивает генерацию отчётов.
type Reports struct {
	Dir      string        `yaml:"dir" env-default:"./reports"`
	MinDelay time.Duration `yaml:"min_delay" env-default:"2s"`
	MaxDelay time.Duration `yaml:"max_delay" env-default:"5s"`
}

// Monitor настраивает периодический пересчёт состояния системы.
type Monitor struct {
	Interval time.Duration `yaml:"interval" env-default:"30s"`
}

// SMTP структура для отправки писем воркером уведомлений.
type SMTP struct {
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort string `yaml:"smtp_port"`
	SMTPUser string `yaml:"smtp_user"`
	SMTPPass string `yaml:"smtp_pass" env:"SMTP_PASS"`
}

// MustLoad загружает конфиг по пути из переменной окружения CONFIG_PATH.
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
