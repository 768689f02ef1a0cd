package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultRunAddress    = "localhost:5000"
	defaultMigrationsDir = "internal/db/migrations"
	defaultJWTExpiry     = 7 * 24 * time.Hour
	defaultUploadsDir    = "uploads"
	defaultFrontendURL   = "http://localhost:5173"
)

type Config struct {
	RunAddress    string        `env:"RUN_ADDRESS"`
	DatabaseDSN   string        `env:"DATABASE_URI"`
	MigrationsDir string        `env:"MIGRATIONS_DIR"`
	JWTSecret     string        `env:"JWT_SECRET"`
	JWTExpiry     time.Duration `env:"JWT_EXPIRY"`
	UploadsDir    string        `env:"UPLOADS_DIR"`
	// FrontendURL адрес фронтенда, из него строятся ссылки сброса пароля.
	FrontendURL string `env:"FRONTEND_URL"`
}

// LoadConfig собирает конфиг из переменных окружения (в т.ч. из .env) и флагов. Переменные окружения
// приоритетнее флагов.
func LoadConfig(args []string) (*Config, error) {
	var flagsConfig, envConfig Config

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	if err := loadFlags(&flagsConfig, args); err != nil {
		return nil, err
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.JWTSecret == "" {
		return nil, errors.New("jwt secret is not set")
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(flagConfig *Config, args []string) error {
	fs := flag.NewFlagSet("lms", flag.ContinueOnError)
	fs.StringVar(&flagConfig.RunAddress, "a", defaultRunAddress, "Run address in format host:port")
	fs.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	fs.StringVar(&flagConfig.MigrationsDir, "m", defaultMigrationsDir, "Database migrations directory")
	fs.StringVar(&flagConfig.JWTSecret, "j", "", "JWT secret key")
	fs.DurationVar(&flagConfig.JWTExpiry, "e", defaultJWTExpiry, "JWT expiry")
	fs.StringVar(&flagConfig.UploadsDir, "u", defaultUploadsDir, "Uploaded files directory")
	fs.StringVar(&flagConfig.FrontendURL, "f", defaultFrontendURL, "Frontend URL for reset password links")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %s", err.Error())
	}
	return nil
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		RunAddress:    defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabaseDSN:   defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir: defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		JWTSecret:     defaultIfBlank(envConfig.JWTSecret, flagsConfig.JWTSecret),
		JWTExpiry:     defaultIfZero(envConfig.JWTExpiry, flagsConfig.JWTExpiry),
		UploadsDir:    defaultIfBlank(envConfig.UploadsDir, flagsConfig.UploadsDir),
		FrontendURL:   defaultIfBlank(envConfig.FrontendURL, flagsConfig.FrontendURL),
	}
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func defaultIfZero(value time.Duration, defaultValue time.Duration) time.Duration {
	if value == 0 {
		return defaultValue
	}
	return value
}

// loadDotEnv загружает .env из рабочей директории. Отсутствие файла не ошибка.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %s", err.Error())
	}
	return nil
}

// ClientConfig конфиг консольного клиента.
type ClientConfig struct {
	APIURL      string        `env:"LMS_API_URL"      envDefault:"http://localhost:5000/api/v1/"`
	SessionFile string        `env:"LMS_SESSION_FILE"`
	Timeout     time.Duration `env:"LMS_TIMEOUT"      envDefault:"10s"`
}

func LoadClientConfig() (*ClientConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	var conf ClientConfig
	if err := env.Parse(&conf); err != nil {
		return nil, fmt.Errorf("parse env config: %s", err.Error())
	}
	if conf.SessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("session file: %s", err.Error())
		}
		conf.SessionFile = filepath.Join(home, ".lms", "session.json")
	}
	return &conf, nil
}
