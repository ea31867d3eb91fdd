package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`
	JWTSecret     string `env:"JWT_SECRET"`

	GatewayProvider  string `env:"GATEWAY_PROVIDER"   envDefault:"razorpay"`
	GatewayBaseURL   string `env:"GATEWAY_BASE_URL"`
	GatewayKeyID     string `env:"GATEWAY_KEY_ID"`
	GatewayKeySecret string `env:"GATEWAY_KEY_SECRET"`
	GatewaySaltIndex string `env:"GATEWAY_SALT_INDEX" envDefault:"1"`

	QuizgenAddress     string        `env:"QUIZGEN_ADDRESS"`
	QuizgenWorkers     uint          `env:"QUIZGEN_WORKERS" envDefault:"4"`
	QuizgenJobsPerIter uint          `env:"QUIZGEN_JOBS_PER_ITERATION" envDefault:"20"`
	StaleOrderTTL      time.Duration `env:"STALE_ORDER_TTL" envDefault:"30m"`
	StaleSweepInterval time.Duration `env:"STALE_SWEEP_INTERVAL" envDefault:"5m"`
}

func LoadConfig() (*Config, error) {
	// .env опционален: в проде конфигурация приходит из окружения.
	_ = godotenv.Load()

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	loadFlags(&flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.JWTSecret == "" {
		return nil, errors.New("JWT secret is not set")
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(flagConfig *Config) {
	flag.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	flag.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	flag.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	flag.StringVar(&flagConfig.GatewayBaseURL, "g", "", "Payment gateway base URL")
	flag.StringVar(&flagConfig.QuizgenAddress, "q", "", "Question generator base URL")

	flag.Parse()
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	merged := *envConfig
	merged.RunAddress = defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress)
	merged.DatabaseDSN = defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	merged.MigrationsDir = defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir)
	merged.GatewayBaseURL = defaultIfBlank(envConfig.GatewayBaseURL, flagsConfig.GatewayBaseURL)
	merged.QuizgenAddress = defaultIfBlank(envConfig.QuizgenAddress, flagsConfig.QuizgenAddress)
	return &merged
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
