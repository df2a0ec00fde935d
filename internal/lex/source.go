//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lex

import (
	"context"
	"fmt"
	"time"

	"github.com/e-gun/retrofitter/internal/mm"
	"github.com/e-gun/retrofitter/internal/norm"
)

// Source - anything that can enumerate words and say which words are related to a given word
type Source interface {
	// Words - every word the source knows about in the given language
	Words(ctx context.Context, l Language) ([]string, error)
	// Related - the words related to an already normalized word; order matters
	Related(ctx context.Context, word string, l Language) ([]string, error)
}

// Build - ask a source for its words and their relations and assemble a Graph from the answers
func Build(ctx context.Context, src Source, l Language) (*Graph, error) {
	const (
		MSG1  = "Building the lexicon..."
		MSG2  = "Lexicon built: %s words, %s relations"
		CHECK = 1000
	)

	Msg.NOTE(MSG1)
	start := time.Now()

	words, err := src.Words(ctx, l)
	if err != nil {
		return nil, err
	}

	g := NewGraph()
	for i, w := range words {
		if i%CHECK == 0 {
			if err = ctx.Err(); err != nil {
				return nil, err
			}
		}

		key := norm.Normalize(w)
		if g.Has(key) {
			continue
		}
		g.Touch(key)

		related, e := src.Related(ctx, key, l)
		if e != nil {
			return nil, fmt.Errorf("relations for %q: %w", key, e)
		}
		for _, r := range related {
			g.Add(key, norm.Normalize(r))
		}
	}

	Msg.Timer("L", fmt.Sprintf(MSG2, mm.Count(g.Len()), mm.Count(g.Edges())), start, start)
	return g, nil
}

// graphsource - a Source answering from a Graph that was read in one go
type graphsource struct {
	g *Graph
}

func (s graphsource) Words(_ context.Context, _ Language) ([]string, error) {
	return s.g.Words(), nil
}

func (s graphsource) Related(_ context.Context, word string, _ Language) ([]string, error) {
	return s.g.Neighbors(word), nil
}
