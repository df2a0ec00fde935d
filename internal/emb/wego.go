//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package emb

import (
	"fmt"

	"github.com/e-gun/wego/pkg/embedding"
	"github.com/e-gun/wego/pkg/search"
	"gonum.org/v1/gonum/floats"
)

// Embeddings - the table as wego embeddings; vectors are copied
func (t *Table) Embeddings() embedding.Embeddings {
	embs := make(embedding.Embeddings, t.Len())
	for i, w := range t.words {
		v := append([]float64(nil), t.vecs[i]...)
		embs[i] = embedding.Embedding{
			Word:   w,
			Dim:    t.dim,
			Vector: v,
			Norm:   floats.Norm(v, 2),
		}
	}
	return embs
}

// Neighbors - the k nearest entries to a word by cosine similarity
func (t *Table) Neighbors(word string, k int) (search.Neighbors, error) {
	const (
		FAIL1 = "no such word: %q"
	)
	i, ok := t.Lookup(word)
	if !ok {
		return nil, fmt.Errorf(FAIL1, word)
	}
	s, err := NewSearcher(t)
	if err != nil {
		return nil, err
	}
	return s.SearchInternal(t.words[i], k)
}

// NewSearcher - a wego searcher over the table; build it once when issuing many queries
func NewSearcher(t *Table) (*search.Searcher, error) {
	return search.New(t.Embeddings()...)
}
