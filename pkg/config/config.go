package config

import (
	"errors"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Ollama    OllamaConfig
	Batch     BatchConfig
	Recommend RecommendConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	Enabled       bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTLSec   int
}

type OllamaConfig struct {
	BaseURL    string
	Model      string
	TimeoutSec int
}

type BatchConfig struct {
	Workers          int
	ProgressInterval int
}

type RecommendConfig struct {
	// AES key for feedback tokens, 16/24/32 bytes
	FeedbackTokenKey string
	DefaultN         int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	cacheTTL, err := strconv.Atoi(getEnv("REDIS_CACHE_TTL_SECONDS", "300"))
	if err != nil {
		return nil, errors.New("invalid redis cache ttl")
	}

	ollamaTimeout, err := strconv.Atoi(getEnv("OLLAMA_TIMEOUT_SECONDS", "30"))
	if err != nil {
		return nil, errors.New("invalid ollama timeout")
	}

	batchWorkers, err := strconv.Atoi(getEnv("BATCH_WORKERS", "0"))
	if err != nil {
		return nil, errors.New("invalid batch workers")
	}
	if batchWorkers <= 0 {
		batchWorkers = runtime.GOMAXPROCS(0)
	}

	progressInterval, err := strconv.Atoi(getEnv("BATCH_PROGRESS_INTERVAL", "100"))
	if err != nil {
		return nil, errors.New("invalid batch progress interval")
	}

	defaultN, err := strconv.Atoi(getEnv("RECOMMEND_DEFAULT_N", "5"))
	if err != nil {
		return nil, errors.New("invalid default recommendation count")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "MySmartShop Recommendation API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "mysmartshop"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			Enabled:       getEnv("REDIS_ENABLED", "false") == "true",
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			CacheTTLSec:   cacheTTL,
		},
		Ollama: OllamaConfig{
			BaseURL:    getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Model:      getEnv("OLLAMA_MODEL", "gemma:2b"),
			TimeoutSec: ollamaTimeout,
		},
		Batch: BatchConfig{
			Workers:          batchWorkers,
			ProgressInterval: progressInterval,
		},
		Recommend: RecommendConfig{
			FeedbackTokenKey: getEnv("FEEDBACK_TOKEN_KEY", ""),
			DefaultN:         defaultN,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	switch len(cfg.Recommend.FeedbackTokenKey) {
	case 16, 24, 32:
	default:
		return nil, errors.New("feedback token key must be 16, 24 or 32 bytes")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
