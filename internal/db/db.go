package db

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"
)

// helper to read env with default
func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// Lazy is a memoized Postgres pool, established on first use. Concurrent
// first callers share a single in-flight connection attempt, and a failed
// attempt is not cached: the next caller retries from scratch.
type Lazy struct {
	dsn  string
	open func(string) (*sqlx.DB, error)

	group singleflight.Group
	mu    sync.RWMutex
	db    *sqlx.DB
}

func NewLazy(dsn string) *Lazy {
	return &Lazy{dsn: dsn, open: connect}
}

// Get returns the shared pool, connecting if necessary.
func (l *Lazy) Get(ctx context.Context) (*sqlx.DB, error) {
	l.mu.RLock()
	db := l.db
	l.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	ch := l.group.DoChan("connect", func() (interface{}, error) {
		// A caller can lose the race between the memoization check and
		// this call; don't reconnect if another attempt just won.
		l.mu.RLock()
		existing := l.db
		l.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		db, err := l.open(l.dsn)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.db = db
		l.mu.Unlock()
		return db, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*sqlx.DB), nil
	case <-ctx.Done():
		// The attempt keeps running; a later caller can still adopt it.
		return nil, ctx.Err()
	}
}

// Close releases the pool if one was ever established.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

func connect(dsn string) (*sqlx.DB, error) {
	// Parse DSN → pgx config struct
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("db: failed to parse DSN: %w", err)
	}

	cfg.ConnectTimeout = 5 * time.Second

	// Create sql.DB using pgx's stdlib adapter, wrapped in sqlx for
	// named queries & struct scanning.
	sqlDB := stdlib.OpenDB(*cfg)
	db := sqlx.NewDb(sqlDB, "pgx")

	// ---- Connection Pool Settings ----
	maxOpen, _ := strconv.Atoi(getenv("DB_MAX_OPEN", "25"))
	maxIdle, _ := strconv.Atoi(getenv("DB_MAX_IDLE", "25"))
	lifetime, _ := strconv.Atoi(getenv("DB_MAX_LIFETIME", "300")) // seconds

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(time.Duration(lifetime) * time.Second)

	// ---- Connectivity Check ----
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("db: failed to connect to Postgres: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
