package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bestemiy/inkstudio"
	"github.com/bestemiy/inkstudio/database/postgres"
	"github.com/bestemiy/inkstudio/database/sqlite"

	_ "modernc.org/sqlite" // SQLite driver
)

// Config holds the configuration for connecting to a persistence backend.
type Config struct {
	// Type specifies the database type: "sqlite" or "postgres"
	Type string `mapstructure:"type" validate:"required,oneof=sqlite postgres"`
	// DSN is the data source name (connection string)
	DSN string `mapstructure:"dsn" validate:"required"`
}

// Repos bundles the three repositories backed by one connection. The
// connection handle is constructed once at startup and shared; it is safe
// for concurrent use by its underlying engine.
type Repos struct {
	Tattoos      inkstudio.TattooRepo
	Content      inkstudio.ContentRepo
	Testimonials inkstudio.TestimonialRepo
}

// Connect establishes a connection to the configured backend, runs the
// idempotent migrations, and returns the repositories. The returned
// cleanup function closes the connection.
func Connect(ctx context.Context, cfg Config) (Repos, func(), error) {
	switch cfg.Type {
	case "sqlite":
		return connectSQLite(ctx, cfg.DSN)
	case "postgres":
		return connectPostgres(ctx, cfg.DSN)
	default:
		return Repos{}, nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}

func connectSQLite(ctx context.Context, dsn string) (Repos, func(), error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return Repos{}, nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return Repos{}, nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err = sqlite.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return Repos{}, nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	repos := Repos{
		Tattoos:      sqlite.NewTattooRepo(db),
		Content:      sqlite.NewContentRepo(db),
		Testimonials: sqlite.NewTestimonialRepo(db),
	}

	cleanup := func() {
		_ = db.Close()
	}

	return repos, cleanup, nil
}

func connectPostgres(ctx context.Context, dsn string) (Repos, func(), error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return Repos{}, nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return Repos{}, nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err = postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return Repos{}, nil, fmt.Errorf("migrate postgres: %w", err)
	}

	repos := Repos{
		Tattoos:      postgres.NewTattooRepo(pool),
		Content:      postgres.NewContentRepo(pool),
		Testimonials: postgres.NewTestimonialRepo(pool),
	}

	return repos, pool.Close, nil
}
