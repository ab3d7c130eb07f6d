package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	catalogResultLimit = 5
	adHocResultLimit   = 100
)

// Config selects the backing database. DSN is a file path (SQLite) or a
// connection string (Postgres), fixed once at construction time.
type Config struct {
	Driver string `envconfig:"DRIVER" split_words:"true" default:"sqlite"`
	DSN    string `envconfig:"DSN" split_words:"true" required:"true"`
}

// Store owns a single *bun.DB over the Chinook schema and implements
// contract.MusicStore. It holds no other state.
type Store struct {
	db  *bun.DB
	now func() time.Time
}

func Open(cfg Config) (*Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("store dsn is required")
	}

	var db *bun.DB
	switch driver {
	case DriverSQLite, "":
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		db = bun.NewDB(sqldb, sqlitedialect.New())
	case DriverPostgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	return NewWithDB(db), nil
}

// NewWithDB wraps an already-open bun.DB. Tests use this with an in-memory
// SQLite database.
func NewWithDB(db *bun.DB) *Store {
	return &Store{
		db:  db,
		now: time.Now,
	}
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
