//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package db keeps finished retrofitting runs so that an identical run can be answered from storage.
package db

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/e-gun/retrofitter/internal/emb"
	"github.com/e-gun/retrofitter/internal/fault"
	"github.com/e-gun/retrofitter/internal/mm"
	"github.com/e-gun/retrofitter/internal/str"
	"github.com/e-gun/retrofitter/internal/vv"
	"github.com/google/uuid"
)

var Msg = mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION)

// ErrNotStored - Fetch found nothing under the fingerprint
var ErrNotStored = errors.New("no stored vectors for this fingerprint")

// Store - somewhere to keep retrofitted tables keyed by a run fingerprint
type Store interface {
	Check(ctx context.Context, fp string) (bool, error)
	Add(ctx context.Context, fp string, t *emb.Table) (uuid.UUID, error)
	Fetch(ctx context.Context, fp string) (*emb.Table, error)
	Reset(ctx context.Context) error
	Close() error
}

// RunKey - everything that decides what a run will produce
type RunKey struct {
	Input       string
	InputSize   int64
	InputMTime  int64
	Language    string
	Lexicon     string
	Source      string
	SourceSize  int64
	SourceMTime int64
	Iterations  int
	Alpha       float64
	Mode        string
	Stops       []string
}

// NewRunKey - a RunKey for an input file; the file's size and modification time stand in for its contents
func NewRunKey(input string) (RunKey, error) {
	fi, err := os.Stat(input)
	if err != nil {
		return RunKey{}, err
	}
	return RunKey{Input: input, InputSize: fi.Size(), InputMTime: fi.ModTime().UnixNano()}, nil
}

// SetSource - record the relation source; like the input, its size and modification time stand in for its contents
func (k *RunKey) SetSource(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fault.Wrap(fault.RelationSourceUnavailable, path, err)
	}
	k.Source = path
	k.SourceSize = fi.Size()
	k.SourceMTime = fi.ModTime().UnixNano()
	return nil
}

// Fingerprint - 32 hex chars identifying the run
func (k RunKey) Fingerprint() string {
	k.Stops = slices.Clone(k.Stops)
	slices.Sort(k.Stops)
	b, err := json.Marshal(k)
	if err != nil {
		// a RunKey holds nothing json cannot encode
		panic(err)
	}
	return fmt.Sprintf("%x", md5.Sum(b))
}

// Open - the configured store; "none" yields a nil Store
func Open(ctx context.Context, cfg *str.CurrentConfiguration) (Store, error) {
	switch cfg.Store {
	case "", vv.DEFAULTSTORE:
		return nil, nil
	case "sqlite":
		s, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "psql", "pgsql", "postgres":
		pool, err := FillDBConnectionPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s, err := NewPGStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store %q: expected none, sqlite, or psql", cfg.Store)
}

// compress - gzip of the table's text form
func compress(t *emb.Table) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
	if err != nil {
		return nil, err
	}
	if err = t.Save(zw); err != nil {
		return nil, err
	}
	if err = zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decompress - the data in the tables is zipped and needs unzipping
func decompress(b []byte, name string) (*emb.Table, error) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	return emb.LoadRaw(bytes.NewReader(raw), name)
}
