//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package wordnet answers lexical queries from a WordNet database stored in SQLite.
package wordnet

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/e-gun/retrofitter/internal/fault"
	"github.com/e-gun/retrofitter/internal/gen"
	"github.com/e-gun/retrofitter/internal/lex"
	_ "modernc.org/sqlite"
)

//
// WORDNET ON SQLITE
//

// the layout mirrors the classic WordNet SQL exports:
//	words:    one row per (lemma, language)
//	senses:   lemma <-> synset membership; sensenum orders a lemma's synsets, lemmarank orders a synset's lemmas
//	semlinks: synset relations; linkid 1 = hypernym, 2 = hyponym

const (
	SCHEMA = `
	CREATE TABLE IF NOT EXISTS words (
		wordid INTEGER PRIMARY KEY,
		lemma TEXT NOT NULL,
		lang TEXT NOT NULL,
		UNIQUE (lemma, lang)
	);
	CREATE TABLE IF NOT EXISTS senses (
		wordid INTEGER NOT NULL,
		synsetid INTEGER NOT NULL,
		sensenum INTEGER NOT NULL DEFAULT 0,
		lemmarank INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (wordid, synsetid)
	);
	CREATE TABLE IF NOT EXISTS semlinks (
		synset1id INTEGER NOT NULL,
		synset2id INTEGER NOT NULL,
		linkid INTEGER NOT NULL,
		PRIMARY KEY (synset1id, synset2id, linkid)
	);
	CREATE INDEX IF NOT EXISTS words_lemma ON words (lemma, lang);
	CREATE INDEX IF NOT EXISTS senses_synset ON senses (synsetid);
	`
	HYPERNYM = 1
	HYPONYM  = 2

	QLEMMAS  = `SELECT DISTINCT lemma FROM words WHERE lang = ? ORDER BY lemma`
	QSENSES  = `SELECT s.synsetid FROM senses s JOIN words w ON w.wordid = s.wordid WHERE w.lemma = ? AND w.lang = ? ORDER BY s.sensenum, s.synsetid`
	QSYNSET  = `SELECT w.lemma FROM senses s JOIN words w ON w.wordid = s.wordid WHERE s.synsetid = ? AND w.lang = ? ORDER BY s.lemmarank, w.lemma`
	QLINKS   = `SELECT synset2id FROM semlinks WHERE synset1id = ? AND linkid = ? ORDER BY synset2id`
	QADDWORD = `INSERT INTO words (lemma, lang) VALUES (?, ?) ON CONFLICT (lemma, lang) DO NOTHING`
	QWORDID  = `SELECT wordid FROM words WHERE lemma = ? AND lang = ?`
	QADDSENS = `INSERT OR REPLACE INTO senses (wordid, synsetid, sensenum, lemmarank) VALUES (?, ?, ?, ?)`
	QADDLINK = `INSERT OR IGNORE INTO semlinks (synset1id, synset2id, linkid) VALUES (?, ?, ?)`
	QSENSNUM = `SELECT COUNT(*) FROM senses WHERE wordid = ?`
)

// DB - a WordNet database; satisfies lex.LexicalDB
type DB struct {
	db   *sql.DB
	path string
}

// Open - open an existing WordNet database file
func Open(path string) (*DB, error) {
	if !gen.FileExists(path) {
		return nil, &fault.Error{Kind: fault.RelationSourceUnavailable, Source: path, Detail: "no such WordNet database"}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fault.Wrap(fault.RelationSourceUnavailable, path, err)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fault.Wrap(fault.RelationSourceUnavailable, path, err)
	}
	return &DB{db: db, path: path}, nil
}

// Create - a new (or existing) database with the schema in place; ":memory:" is allowed
func Create(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}
	if _, err = db.ExecContext(ctx, SCHEMA); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating WordNet schema: %w", err)
	}
	return &DB{db: db, path: path}, nil
}

func (w *DB) Close() error {
	return w.db.Close()
}

func (w *DB) Lemmas(ctx context.Context, l lex.Language) ([]string, error) {
	return w.strings(ctx, QLEMMAS, string(l))
}

func (w *DB) Senses(ctx context.Context, lemma string, l lex.Language) ([]int64, error) {
	return w.ints(ctx, QSENSES, lemma, string(l))
}

func (w *DB) SenseLemmas(ctx context.Context, sense int64, l lex.Language) ([]string, error) {
	return w.strings(ctx, QSYNSET, sense, string(l))
}

func (w *DB) Hypernyms(ctx context.Context, sense int64) ([]int64, error) {
	return w.ints(ctx, QLINKS, sense, HYPERNYM)
}

func (w *DB) Hyponyms(ctx context.Context, sense int64) ([]int64, error) {
	return w.ints(ctx, QLINKS, sense, HYPONYM)
}

// AddSynset - record a synset and its lemmas in rank order; each lemma gets the next free sense number
func (w *DB) AddSynset(ctx context.Context, synset int64, l lex.Language, lemmas ...string) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for rank, lm := range lemmas {
		if _, err = tx.ExecContext(ctx, QADDWORD, lm, string(l)); err != nil {
			return err
		}
		var id, num int64
		if err = tx.QueryRowContext(ctx, QWORDID, lm, string(l)).Scan(&id); err != nil {
			return err
		}
		if err = tx.QueryRowContext(ctx, QSENSNUM, id).Scan(&num); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, QADDSENS, id, synset, num, rank); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// AddLink - record "from" ==> "to" as a hypernym (HYPERNYM) or hyponym (HYPONYM) link
func (w *DB) AddLink(ctx context.Context, from, to int64, linkid int) error {
	_, err := w.db.ExecContext(ctx, QADDLINK, from, to, linkid)
	return err
}

// AddHypernym - "hyper" is more general than "sense"; both directions are stored
func (w *DB) AddHypernym(ctx context.Context, sense, hyper int64) error {
	if err := w.AddLink(ctx, sense, hyper, HYPERNYM); err != nil {
		return err
	}
	return w.AddLink(ctx, hyper, sense, HYPONYM)
}

func (w *DB) strings(ctx context.Context, q string, args ...any) ([]string, error) {
	rows, err := w.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("wordnet query failed: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err = rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (w *DB) ints(ctx context.Context, q string, args ...any) ([]int64, error) {
	rows, err := w.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("wordnet query failed: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var i int64
		if err = rows.Scan(&i); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}
