package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/jakechorley/escalas/pkg/db"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	uniqueViolationCode = "23505"
	dayUniqueConstraint = "assignment_week_day_servant_key"
)

// DB provides roster and servant storage backed by PostgreSQL
type DB struct {
	pool *pgxpool.Pool
}

var (
	_ db.Database     = (*DB)(nil)
	_ db.RosterReader = (*DB)(nil)
)

// NewDB creates a new PostgreSQL connection pool and checks it is reachable.
// The public roster may be given a connection string for a read-only role;
// the same type serves both since callers only see the interface they need.
func NewDB(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the database connection pool
func (d *DB) Close() {
	d.pool.Close()
}

// Ping checks the database is reachable
func (d *DB) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

// RunMigrations applies the embedded migrations that have not run yet and
// returns the schema version before and after.
func (d *DB) RunMigrations(logger *zap.Logger) (from, to uint, err error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load migrations: %w", err)
	}

	// The sql.DB shares the pool's connections; the pool stays owned by d.
	driver, err := migratepgx.WithInstance(stdlib.OpenDBFromPool(d.pool), &migratepgx.Config{})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to initialize migrations: %w", err)
	}

	from, err = schemaVersion(m)
	if err != nil {
		return 0, 0, err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return from, 0, fmt.Errorf("failed to apply migrations: %w", err)
	}

	to, err = schemaVersion(m)
	if err != nil {
		return from, 0, err
	}

	logger.Info("Database migrations complete", zap.Uint("from", from), zap.Uint("to", to))
	return from, to, nil
}

// schemaVersion returns 0 for a database that has never been migrated
func schemaVersion(m *migrate.Migrate) (uint, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty, fix it by hand before migrating", version)
	}
	return version, nil
}

// isDayConflict reports whether err is a violation of the per-day servant uniqueness index
func isDayConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == dayUniqueConstraint
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromNullable(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
