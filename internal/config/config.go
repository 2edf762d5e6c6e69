package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Backend struct {
	BaseURL string        `yaml:"BACKEND_BASE_URL" env:"BACKEND_BASE_URL" env-default:"http://localhost:8080/api"`
	Timeout time.Duration `yaml:"BACKEND_TIMEOUT" env:"BACKEND_TIMEOUT" env-default:"15s"`
}

type Directory struct {
	BaseURL string        `yaml:"DIRECTORY_BASE_URL" env:"DIRECTORY_BASE_URL" env-default:"https://provinces.open-api.vn/api"`
	Timeout time.Duration `yaml:"DIRECTORY_TIMEOUT" env:"DIRECTORY_TIMEOUT" env-default:"10s"`
}

type CacheConfig struct {
	// Backend selects where directory lookups are memoized: "memory" keeps
	// them for the process lifetime, "redis" shares them across sessions.
	Backend    string        `yaml:"CACHE_BACKEND" env:"CACHE_BACKEND" env-default:"memory"`
	DefaultTTL time.Duration `yaml:"CACHE_DEFAULT_TTL" env:"CACHE_DEFAULT_TTL" env-default:"24h"`
}

type RedisConnect struct {
	Addr     string `yaml:"REDIS_ADDR" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type Callback struct {
	// Addr is where the local listener waits for the payment gateway's return
	// redirect; it also serves /health and /metrics.
	Addr string `yaml:"CALLBACK_ADDR" env:"CALLBACK_ADDR" env-default:"127.0.0.1:8765"`
}

type Telemetry struct {
	OTLPEndpoint string `yaml:"OTLP_ENDPOINT" env:"OTLP_ENDPOINT" env-default:""`
}

type Session struct {
	// TokenPath is where the bearer credential is persisted between runs.
	// Empty means $HOME/.nhom7-storefront/session.json.
	TokenPath string `yaml:"SESSION_TOKEN_PATH" env:"SESSION_TOKEN_PATH" env-default:""`
}

type Config struct {
	Env       string       `yaml:"env" env:"ENV" env-default:"dev"`
	Backend   Backend      `yaml:"backend"`
	Directory Directory    `yaml:"directory"`
	Cache     CacheConfig  `yaml:"cache"`
	Redis     RedisConnect `yaml:"redis"`
	Callback  Callback     `yaml:"callback"`
	Telemetry Telemetry    `yaml:"telemetry"`
	Session   Session      `yaml:"session"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {

		if flag.Lookup("config") == nil {
			flag.String("config", "", "gets the config flag value")
		}

		flag.Parse()

		configPath = flag.Lookup("config").Value.String()

	}

	var cfg Config

	// No config file is fine for a client; everything has an env default.
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("can not read config from environment: %s", err.Error())
		}

		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {

		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg

}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s/%d", r.Username, r.Password, r.Addr, r.DB)
}
