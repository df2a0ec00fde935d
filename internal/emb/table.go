//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package emb holds the embedding table: an ordered word ==> unit-norm vector mapping with a
// case-insensitive lookup index.
package emb

import (
	"github.com/e-gun/retrofitter/internal/norm"
	"golang.org/x/text/cases"
	"gonum.org/v1/gonum/floats"
)

// Table - word vectors in input order; all vectors share one dimensionality
type Table struct {
	Name   string
	dim    int
	words  []string
	vecs   [][]float64
	exact  map[string]int
	folded map[string]int
}

// NewTable - an empty table of the given dimensionality
func NewTable(name string, dim int) *Table {
	return &Table{
		Name:   name,
		dim:    dim,
		exact:  make(map[string]int),
		folded: make(map[string]int),
	}
}

// Append - add (or replace) a word; a replaced word keeps its original position; the vector is stored as given
func (t *Table) Append(word string, vec []float64) int {
	if t.dim == 0 {
		t.dim = len(vec)
	}
	if i, ok := t.exact[word]; ok {
		t.vecs[i] = vec
		return i
	}
	i := len(t.words)
	t.words = append(t.words, word)
	t.vecs = append(t.vecs, vec)
	t.exact[word] = i
	t.index(cases.Fold(), word, i)
	return i
}

// index - the first entry in table order represents its folded bucket
func (t *Table) index(c cases.Caser, word string, i int) {
	k := foldkey(c, word)
	if _, ok := t.folded[k]; !ok {
		t.folded[k] = i
	}
}

func foldkey(c cases.Caser, word string) string {
	return c.String(norm.Normalize(word))
}

// Lookup - exact match first, then the case-insensitive index
func (t *Table) Lookup(word string) (int, bool) {
	if i, ok := t.exact[word]; ok {
		return i, true
	}
	i, ok := t.folded[foldkey(cases.Fold(), word)]
	return i, ok
}

// Has - is the word (case-insensitively) in the vocabulary?
func (t *Table) Has(word string) bool {
	_, ok := t.Lookup(word)
	return ok
}

// Get - the vector for a word; the slice belongs to the table
func (t *Table) Get(word string) ([]float64, bool) {
	i, ok := t.Lookup(word)
	if !ok {
		return nil, false
	}
	return t.vecs[i], true
}

func (t *Table) Len() int { return len(t.words) }
func (t *Table) Dim() int { return t.dim }
func (t *Table) Word(i int) string { return t.words[i] }
func (t *Table) Vector(i int) []float64 { return t.vecs[i] }
func (t *Table) Words() []string { return append([]string(nil), t.words...) }
func (t *Table) Set(i int, vec []float64) { copy(t.vecs[i], vec) }

// Clone - a deep copy sharing nothing with the receiver
func (t *Table) Clone() *Table {
	c := &Table{
		Name:   t.Name,
		dim:    t.dim,
		words:  append([]string(nil), t.words...),
		vecs:   make([][]float64, len(t.vecs)),
		exact:  make(map[string]int, len(t.exact)),
		folded: make(map[string]int, len(t.folded)),
	}
	// one backing array keeps the copy compact
	flat := make([]float64, len(t.vecs)*t.dim)
	for i, v := range t.vecs {
		row := flat[i*t.dim : (i+1)*t.dim : (i+1)*t.dim]
		copy(row, v)
		c.vecs[i] = row
	}
	for k, v := range t.exact {
		c.exact[k] = v
	}
	for k, v := range t.folded {
		c.folded[k] = v
	}
	return c
}

// Norm - Euclidean norm of entry i
func (t *Table) Norm(i int) float64 {
	return floats.Norm(t.vecs[i], 2)
}

// unitize - v / ‖v‖ in place; returns false for a zero vector
func unitize(v []float64) bool {
	n := floats.Norm(v, 2)
	if n == 0 {
		return false
	}
	floats.Scale(1/n, v)
	return true
}
