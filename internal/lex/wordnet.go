//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lex

import (
	"context"
	"strings"

	"github.com/e-gun/retrofitter/internal/norm"
)

// LexicalDB - the queries a WordNet-style database has to answer
type LexicalDB interface {
	// Lemmas - every lemma recorded for the language
	Lemmas(ctx context.Context, l Language) ([]string, error)
	// Senses - the sense ids of a lemma, in sense order
	Senses(ctx context.Context, lemma string, l Language) ([]int64, error)
	// SenseLemmas - the lemmas that share a sense
	SenseLemmas(ctx context.Context, sense int64, l Language) ([]string, error)
	// Hypernyms - senses one step more general
	Hypernyms(ctx context.Context, sense int64) ([]int64, error)
	// Hyponyms - senses one step more specific
	Hyponyms(ctx context.Context, sense int64) ([]int64, error)
}

// WordNet - synonyms from shared senses; Extended adds the lemmas of direct hypernyms and hyponyms
type WordNet struct {
	DB       LexicalDB
	Extended bool
}

func NewWordNet(db LexicalDB, extended bool) *WordNet {
	return &WordNet{DB: db, Extended: extended}
}

func (w *WordNet) Words(ctx context.Context, l Language) ([]string, error) {
	return w.DB.Lemmas(ctx, l)
}

// Related - the normalized lemmas related to a word, never including the word itself
func (w *WordNet) Related(ctx context.Context, word string, l Language) ([]string, error) {
	// lemmas are stored lower-cased
	senses, err := w.DB.Senses(ctx, strings.ToLower(word), l)
	if err != nil {
		return nil, err
	}

	var related []string
	seen := map[string]struct{}{word: {}}

	addsense := func(s int64) error {
		lemmas, e := w.DB.SenseLemmas(ctx, s, l)
		if e != nil {
			return e
		}
		for _, lm := range lemmas {
			n := norm.Normalize(lm)
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			related = append(related, n)
		}
		return nil
	}

	for _, s := range senses {
		if err = addsense(s); err != nil {
			return nil, err
		}
	}

	if !w.Extended {
		return related, nil
	}

	for _, s := range senses {
		hyper, e := w.DB.Hypernyms(ctx, s)
		if e != nil {
			return nil, e
		}
		for _, h := range hyper {
			if err = addsense(h); err != nil {
				return nil, err
			}
		}
		hypo, e := w.DB.Hyponyms(ctx, s)
		if e != nil {
			return nil, e
		}
		for _, h := range hypo {
			if err = addsense(h); err != nil {
				return nil, err
			}
		}
	}
	return related, nil
}
