package server

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type config struct {
	Server serverConfig `koanf:"server"`
	DB     dbConfig     `koanf:"postgres"`
	CORS   corsConfig   `koanf:"cors"`
	Log    logConfig    `koanf:"log"`
}

type serverConfig struct {
	Port    int    `koanf:"port" validate:"min=1,max=65535"`
	Env     string `koanf:"env" validate:"oneof=development staging production"`
	Workers int    `koanf:"workers" validate:"min=1"`
}

type dbConfig struct {
	Host         string        `koanf:"host" validate:"required"`
	Port         int           `koanf:"port" validate:"min=1,max=65535"`
	Name         string        `koanf:"database" validate:"required"`
	User         string        `koanf:"user" validate:"required"`
	Password     string        `koanf:"password"`
	SSLMode      string        `koanf:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns int           `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns int           `koanf:"max_idle_conns" validate:"min=0"`
	MaxIdleTime  time.Duration `koanf:"max_idle_time" validate:"min=0"`
}

type corsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Origin  string `koanf:"origin" validate:"omitempty,url"`
}

type logConfig struct {
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`
}

// String keeps the password out of startup logs.
func (c dbConfig) String() string {
	return fmt.Sprintf("postgres://%s@%s:%d/%s?sslmode=%s", c.User, c.Host, c.Port, c.Name, c.SSLMode)
}

var envPrefixes = []string{"SERVER_", "POSTGRES_", "CORS_", "LOG_"}

func defaultConfig() config {
	return config{
		Server: serverConfig{
			Port:    8001,
			Env:     "development",
			Workers: 50,
		},
		DB: dbConfig{
			Port:         5432,
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 25,
			MaxIdleTime:  15 * time.Minute,
		},
		CORS: corsConfig{
			Origin: "http://localhost:5173",
		},
		Log: logConfig{
			Level: "info",
		},
	}
}

// envKey maps SERVER_PORT to server.port, POSTGRES_MAX_OPEN_CONNS to
// postgres.max_open_conns and so on. Anything else is skipped.
func envKey(s string) string {
	for _, prefix := range envPrefixes {
		if strings.HasPrefix(s, prefix) {
			return strings.ToLower(strings.Replace(s, "_", ".", 1))
		}
	}
	return ""
}

// loadConfig reads .env (if present), then the environment, then the command
// line flags in args, and validates the result.
func loadConfig(args []string) (config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaultConfig()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return config{}, fmt.Errorf("failed to decode environment: %w", err)
	}

	fs := flag.NewFlagSet("shoppinglist", flag.ContinueOnError)
	fs.IntVar(&cfg.Server.Port, "port", cfg.Server.Port, "API server port")
	fs.StringVar(&cfg.Server.Env, "env", cfg.Server.Env, "Environment (development|staging|production)")
	fs.IntVar(&cfg.Server.Workers, "workers", cfg.Server.Workers, "Maximum requests served at once")

	fs.StringVar(&cfg.DB.Host, "db-host", cfg.DB.Host, "PostgreSQL host")
	fs.IntVar(&cfg.DB.Port, "db-port", cfg.DB.Port, "PostgreSQL port")
	fs.StringVar(&cfg.DB.Name, "db-name", cfg.DB.Name, "PostgreSQL database name")
	fs.StringVar(&cfg.DB.User, "db-user", cfg.DB.User, "PostgreSQL user")
	fs.StringVar(&cfg.DB.Password, "db-password", cfg.DB.Password, "PostgreSQL password")
	fs.StringVar(&cfg.DB.SSLMode, "db-sslmode", cfg.DB.SSLMode, "PostgreSQL sslmode")

	fs.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", cfg.DB.MaxOpenConns, "PostgreSQL max open connections")
	fs.IntVar(&cfg.DB.MaxIdleConns, "db-max-idle-conns", cfg.DB.MaxIdleConns, "PostgreSQL max idle connections")
	fs.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", cfg.DB.MaxIdleTime, "PostgreSQL max connection idle time")

	fs.BoolVar(&cfg.CORS.Enabled, "cors", cfg.CORS.Enabled, "Allow cross-origin requests from -cors-origin")
	fs.StringVar(&cfg.CORS.Origin, "cors-origin", cfg.CORS.Origin, "Trusted cross-origin client")

	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level (trace|debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
