//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/e-gun/retrofitter/internal/emb"
	"github.com/e-gun/retrofitter/internal/vv"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore - stored runs in a local SQLite file
type SQLiteStore struct {
	db    *sql.DB
	table string
}

// OpenSQLite - open (or create) the store; ":memory:" works for throwaway use
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store database: %w", err)
	}
	if path == ":memory:" {
		d.SetMaxOpenConns(1)
	}
	s := &SQLiteStore{db: d, table: vv.VECTORTABLENAME}
	if err = s.init(ctx); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("failed to initialize store schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) init(ctx context.Context) error {
	const (
		CREATE = `
			CREATE TABLE IF NOT EXISTS %s
			(
			  runid       TEXT PRIMARY KEY,
			  fingerprint TEXT UNIQUE NOT NULL,
			  vectorsize  INTEGER,
			  vectordata  BLOB,
			  created     TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`
	)
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(CREATE, s.table))
	return err
}

func (s *SQLiteStore) Check(ctx context.Context, fp string) (bool, error) {
	const (
		Q = `SELECT fingerprint FROM %s WHERE fingerprint = ? LIMIT 1`
	)
	var found string
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(Q, s.table), fp).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	Msg.TMI(fmt.Sprintf("SQLiteStore.Check() found %s", found))
	return true, nil
}

func (s *SQLiteStore) Add(ctx context.Context, fp string, t *emb.Table) (uuid.UUID, error) {
	const (
		INS = `INSERT OR REPLACE INTO %s (runid, fingerprint, vectorsize, vectordata) VALUES (?, ?, ?, ?)`
	)
	b, err := compress(t)
	if err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	if _, err = s.db.ExecContext(ctx, fmt.Sprintf(INS, s.table), id.String(), fp, len(b), b); err != nil {
		return uuid.Nil, err
	}
	Msg.TMI(fmt.Sprintf("SQLiteStore.Add(): %s (%d bytes)", fp, len(b)))
	return id, nil
}

func (s *SQLiteStore) Fetch(ctx context.Context, fp string) (*emb.Table, error) {
	const (
		Q = `SELECT vectordata FROM %s WHERE fingerprint = ? LIMIT 1`
	)
	var vect []byte
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(Q, s.table), fp).Scan(&vect)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotStored
	}
	if err != nil {
		return nil, err
	}
	return decompress(vect, fp)
}

func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, s.table)); err != nil {
		return err
	}
	Msg.NOTE("SQLiteStore.Reset() dropped " + s.table)
	return s.init(ctx)
}

// Count - number of stored runs and their total compressed size
func (s *SQLiteStore) Count(ctx context.Context) (int, int64, error) {
	const (
		Q = `SELECT COUNT(*), COALESCE(SUM(vectorsize), 0) FROM %s`
	)
	var n int
	var size int64
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(Q, s.table)).Scan(&n, &size)
	return n, size, err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
