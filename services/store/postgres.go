package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"sjsage522/propertymonitor/internal/listing"
	"sjsage522/propertymonitor/logger"
	"sjsage522/propertymonitor/pkg/errors"
)

const schema = `
	CREATE TABLE IF NOT EXISTS listings (
		fingerprint   TEXT        PRIMARY KEY,
		title         TEXT        NOT NULL DEFAULT '',
		price         INTEGER     NOT NULL DEFAULT 0,
		location      TEXT        NOT NULL DEFAULT '',
		description   TEXT        NOT NULL DEFAULT '',
		url           TEXT        NOT NULL DEFAULT '',
		discovered_at TIMESTAMPTZ NOT NULL,
		is_new        BOOLEAN     NOT NULL DEFAULT TRUE
	)`

const insertListing = `
	INSERT INTO listings (fingerprint, title, price, location, description, url, discovered_at, is_new)
	VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
	ON CONFLICT (fingerprint) DO NOTHING`

// pgxConn is the subset of *pgxpool.Pool used by PostgresStore
type pgxConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store on a PostgreSQL table
type PostgresStore struct {
	conn  pgxConn
	close func()
	log   *logger.Logger
}

// NewPostgresStore connects to dsn, retrying the ping, and creates the schema
func NewPostgresStore(ctx context.Context, dsn string, maxConns int) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.NewStore("postgres", "invalid DSN", err)
	}
	if maxConns <= 0 {
		maxConns = 2
	}
	cfg.MaxConns = int32(maxConns)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.NewStore("postgres", "connect", err)
	}

	err = pingWithRetry(ctx, pool, 5, 2*time.Second)
	if err != nil {
		pool.Close()
		return nil, errors.NewStore("postgres", "ping failed after retries", err)
	}

	s := newPostgresStore(pool, pool.Close)
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	s.log.Info().Msg("Connected to PostgreSQL")
	return s, nil
}

func pingWithRetry(ctx context.Context, pool *pgxpool.Pool, attempts int, delay time.Duration) error {
	var err error
	for i := 1; i <= attempts; i++ {
		if err = pool.Ping(ctx); err == nil || i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}

func newPostgresStore(conn pgxConn, closeFn func()) *PostgresStore {
	return &PostgresStore{
		conn:  conn,
		close: closeFn,
		log:   logger.ForStore().WithField("backend", "postgres"),
	}
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	if _, err := s.conn.Exec(ctx, schema); err != nil {
		return errors.NewStore("postgres", "migrate", err)
	}
	return nil
}

// InsertIfAbsent inserts l unless its fingerprint already exists
func (s *PostgresStore) InsertIfAbsent(ctx context.Context, l listing.Listing) (bool, error) {
	tag, err := s.conn.Exec(ctx, insertListing,
		l.Fingerprint, l.Title, l.Price, l.Location, l.Description, l.URL, l.DiscoveredAt)
	if err != nil {
		return false, errors.NewStore("postgres", fmt.Sprintf("insert %s", l.Fingerprint), err)
	}

	inserted := tag.RowsAffected() == 1
	if inserted {
		s.log.Info().
			Str("fingerprint", l.Fingerprint).
			Str("title", l.Title).
			Msg("New listing saved")
	}
	return inserted, nil
}

// Count returns the number of stored listings
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM listings`).Scan(&n); err != nil {
		return 0, errors.NewStore("postgres", "count", err)
	}
	return n, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.close != nil {
		s.close()
	}
	return nil
}
