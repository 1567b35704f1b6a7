package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrConflict      = errors.New("record conflict")
	ErrUnknownDriver = errors.New("unknown database driver")
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

type DB struct {
	*sqlx.DB
	driver string
	log    *zap.Logger
}

type Config struct {
	Driver string

	// DSN, when set, is passed to the driver verbatim.
	DSN string

	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	SQLitePath string
}

// DataSource returns the connection string for the configured driver.
func (c Config) DataSource() (string, error) {
	switch c.Driver {
	case DriverPostgres:
		if c.DSN != "" {
			return c.DSN, nil
		}
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
		), nil
	case DriverSQLite:
		if c.DSN != "" {
			return c.DSN, nil
		}
		p := c.SQLitePath
		if p == "" {
			p = ":memory:"
		}
		sep := "?"
		if strings.Contains(p, "?") {
			sep = "&"
		}
		return p + sep + "_foreign_keys=on", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
}

func New(ctx context.Context, cfg Config, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dsn, err := cfg.DataSource()
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// Every connection to :memory: is its own database.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established", zap.String("driver", cfg.Driver))

	return &DB{DB: db, driver: cfg.Driver, log: log}, nil
}

func (db *DB) Driver() string {
	return db.driver
}

func (db *DB) prepareGoose() (string, error) {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{db.log.Sugar()})
	if err := goose.SetDialect(db.driver); err != nil {
		return "", fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return path.Join("migrations", db.driver), nil
}

func (db *DB) RunMigrations(ctx context.Context) error {
	dir, err := db.prepareGoose()
	if err != nil {
		return err
	}

	db.log.Debug("Using migrations directory", zap.String("dir", dir))

	if err := goose.UpContext(ctx, db.DB.DB, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	db.log.Info("Database migrations completed successfully")
	return nil
}

func (db *DB) RollbackMigration(ctx context.Context) error {
	dir, err := db.prepareGoose()
	if err != nil {
		return err
	}
	if err := goose.DownContext(ctx, db.DB.DB, dir); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

func (db *DB) MigrationStatus(ctx context.Context) error {
	dir, err := db.prepareGoose()
	if err != nil {
		return err
	}
	if err := goose.StatusContext(ctx, db.DB.DB, dir); err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// gooseLogger routes goose output through zap.
type gooseLogger struct {
	*zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.Infof(strings.TrimSuffix(format, "\n"), v...)
}
