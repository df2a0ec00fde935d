//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/e-gun/retrofitter/internal/emb"
	"github.com/e-gun/retrofitter/internal/vv"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore - stored runs in PostgreSQL
type PGStore struct {
	pool  *pgxpool.Pool
	table string
}

// NewPGStore - wrap a pool; the table is created if need be
func NewPGStore(ctx context.Context, pool *pgxpool.Pool) (*PGStore, error) {
	s := &PGStore{pool: pool, table: vv.VECTORTABLENAME}
	if err := s.init(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// init - initialize vv.VECTORTABLENAME
func (s *PGStore) init(ctx context.Context) error {
	const (
		CREATE = `
			CREATE TABLE IF NOT EXISTS %s
			(
			  runid       uuid PRIMARY KEY,
			  fingerprint character(32) UNIQUE,
			  vectorsize  int,
			  vectordata  bytea,
			  created     timestamptz DEFAULT now()
			)`
	)
	_, err := s.pool.Exec(ctx, fmt.Sprintf(CREATE, s.table))
	return err
}

// Check - has a run with this fingerprint already been stored?
func (s *PGStore) Check(ctx context.Context, fp string) (bool, error) {
	const (
		Q = `SELECT fingerprint FROM %s WHERE fingerprint = $1 LIMIT 1`
		F = `PGStore.Check() found %s`
	)

	type simplestring struct {
		S string
	}

	foundrow, err := s.pool.Query(ctx, fmt.Sprintf(Q, s.table), fp)
	if err != nil {
		return false, err
	}
	ss, err := pgx.CollectOneRow(foundrow, pgx.RowToStructByPos[simplestring])
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	Msg.TMI(fmt.Sprintf(F, ss.S))
	return true, nil
}

// Add - store a table under a fingerprint; a second Add for the same fingerprint replaces the first
func (s *PGStore) Add(ctx context.Context, fp string, t *emb.Table) (uuid.UUID, error) {
	const (
		INS = `
			INSERT INTO %s
				(runid, fingerprint, vectorsize, vectordata)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (fingerprint) DO UPDATE
				SET runid = EXCLUDED.runid, vectorsize = EXCLUDED.vectorsize, vectordata = EXCLUDED.vectordata, created = now()`
		MSG1 = "PGStore.Add(): %s (%d bytes)"
	)

	b, err := compress(t)
	if err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	if _, err = s.pool.Exec(ctx, fmt.Sprintf(INS, s.table), id, fp, len(b), b); err != nil {
		return uuid.Nil, err
	}
	Msg.TMI(fmt.Sprintf(MSG1, fp, len(b)))
	return id, nil
}

// Fetch - get a stored table back
func (s *PGStore) Fetch(ctx context.Context, fp string) (*emb.Table, error) {
	const (
		Q = `SELECT vectordata FROM %s WHERE fingerprint = $1 LIMIT 1`
	)
	var vect []byte
	err := s.pool.QueryRow(ctx, fmt.Sprintf(Q, s.table), fp).Scan(&vect)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotStored
	}
	if err != nil {
		return nil, err
	}
	return decompress(vect, fp)
}

// Reset - drop and recreate the table
func (s *PGStore) Reset(ctx context.Context) error {
	const (
		MSG1 = "PGStore.Reset() dropped "
		E    = `DROP TABLE IF EXISTS %s`
	)
	if _, err := s.pool.Exec(ctx, fmt.Sprintf(E, s.table)); err != nil {
		return err
	}
	Msg.NOTE(MSG1 + s.table)
	return s.init(ctx)
}

func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}
