//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lex

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/e-gun/retrofitter/internal/fault"
	"github.com/e-gun/retrofitter/internal/gen"
	"github.com/e-gun/retrofitter/internal/norm"
)

// Adjacency - a plain lexicon file, one "word n1 n2 ..." record per line; serves any language
type Adjacency struct {
	Path string
	once sync.Once
	src  graphsource
	err  error
}

func NewAdjacency(path string) *Adjacency {
	return &Adjacency{Path: path}
}

func (a *Adjacency) load() error {
	a.once.Do(func() {
		Msg.NOTE(fmt.Sprintf("Reading lexicon from %s", a.Path))
		f, err := gen.OpenMaybeGzip(a.Path)
		if err != nil {
			a.err = fault.Wrap(fault.RelationSourceUnavailable, a.Path, err)
			return
		}
		defer f.Close()
		g, err := ReadAdjacency(f)
		if err != nil {
			a.err = fault.Wrap(fault.RelationSourceUnavailable, a.Path, err)
			return
		}
		a.src = graphsource{g: g}
	})
	return a.err
}

func (a *Adjacency) Words(ctx context.Context, l Language) ([]string, error) {
	if err := a.load(); err != nil {
		return nil, err
	}
	return a.src.Words(ctx, l)
}

func (a *Adjacency) Related(ctx context.Context, word string, l Language) ([]string, error) {
	if err := a.load(); err != nil {
		return nil, err
	}
	return a.src.Related(ctx, word, l)
}

// ReadAdjacency - parse "word n1 n2 ..." lines; repeated keys accumulate
func ReadAdjacency(r io.Reader) (*Graph, error) {
	g := NewGraph()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		key := norm.Normalize(fields[0])
		g.Touch(key)
		for _, n := range fields[1:] {
			g.Add(key, norm.Normalize(n))
		}
	}
	return g, sc.Err()
}
