package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/wisp167/ShoppingList/internal/data"
)

const version = "1.0.0"

type Application struct {
	config config
	logger zerolog.Logger
	db     *sql.DB
	models data.Models
	queue  chan struct{}
	server *http.Server
}

// SetupApplication loads configuration from args and the environment, opens
// the connection pool and returns an Application ready to Start.
func SetupApplication(args []string) (*Application, error) {
	cfg, err := loadConfig(args)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg, os.Stdout)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("version", version).
		Str("env", cfg.Server.Env).
		Int("port", cfg.Server.Port).
		Int("workers", cfg.Server.Workers).
		Stringer("database", cfg.DB).
		Bool("cors", cfg.CORS.Enabled).
		Msg("config loaded")

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	logger.Info().Msg("database connection pool established")

	return newApplication(cfg, logger, db), nil
}

func newApplication(cfg config, logger zerolog.Logger, db *sql.DB) *Application {
	return &Application{
		config: cfg,
		logger: logger,
		db:     db,
		models: data.NewModels(db),
		queue:  make(chan struct{}, cfg.Server.Workers),
	}
}

func newLogger(cfg config, out io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("failed to parse log level: %w", err)
	}

	if cfg.Server.Env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Str("service", "shoppinglist").Logger(), nil
}

func (app *Application) Start() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:      app.handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	app.server = srv

	app.logger.Info().Str("addr", srv.Addr).Msgf("starting %s server", app.config.Server.Env)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Fatal().Err(err).Msg("listen")
		}
	}()

	return nil
}

// Stop drains in-flight requests, then closes the connection pool.
func (app *Application) Stop() error {
	if app.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := app.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		app.logger.Info().Msg("server stopped")
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			return fmt.Errorf("database close failed: %w", err)
		}
		app.logger.Info().Msg("database connection pool closed")
	}

	return nil
}

func dsn(cfg dbConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     cfg.Name,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

// OpenDB builds the process-wide connection pool and checks it can reach the
// store.
func OpenDB(cfg config) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn(cfg.DB))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.DB.MaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
