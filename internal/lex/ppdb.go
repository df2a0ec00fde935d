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
	"github.com/e-gun/retrofitter/internal/mm"
	"github.com/e-gun/retrofitter/internal/norm"
	"github.com/e-gun/retrofitter/internal/vv"
)

// PPDBStats - what happened while reading a paraphrase file
type PPDBStats struct {
	Records  int
	Pairs    int
	Stopped  int
	Skipped  int
	Repeated int
}

// PPDB - a paraphrase-pair file: "[X] ||| phrase ||| paraphrase ||| ..."; may be gzipped
type PPDB struct {
	Path  string
	Lang  Language
	Stops map[string]struct{}
	Stats PPDBStats
	once  sync.Once
	src   graphsource
	err   error
}

// DefaultPPDBPath - the conventional location of the paraphrase file for a language
func DefaultPPDBPath(l Language) string {
	if l == French {
		return vv.PPDBFRA
	}
	return vv.PPDBENG
}

// NewPPDB - a paraphrase source for one language; nil stops means the built-in list
func NewPPDB(path string, l Language, stops map[string]struct{}) *PPDB {
	if stops == nil {
		stops = StopWords(l)
	}
	return &PPDB{Path: path, Lang: l, Stops: stops}
}

func (p *PPDB) load() error {
	p.once.Do(func() {
		const (
			MSG1 = "Reading paraphrases from %s"
			MSG2 = "%s paraphrase records skipped for having fewer than three fields"
		)
		Msg.NOTE(fmt.Sprintf(MSG1, p.Path))
		f, err := gen.OpenMaybeGzip(p.Path)
		if err != nil {
			p.err = fault.Wrap(fault.RelationSourceUnavailable, p.Path, err)
			return
		}
		defer f.Close()

		g, st, err := ReadPPDB(f, p.Stops)
		if err != nil {
			p.err = fault.Wrap(fault.RelationSourceUnavailable, p.Path, err)
			return
		}
		if st.Skipped > 0 {
			Msg.WARN(fmt.Sprintf(MSG2, mm.Count(st.Skipped)))
		}
		p.Stats = st
		p.src = graphsource{g: g}
	})
	return p.err
}

func (p *PPDB) checklang(l Language) error {
	if l != p.Lang {
		return &fault.Error{Kind: fault.UnsupportedLanguage, Source: p.Path, Word: l.String(),
			Detail: fmt.Sprintf("paraphrase file serves %s", p.Lang)}
	}
	return nil
}

func (p *PPDB) Words(ctx context.Context, l Language) ([]string, error) {
	if err := p.checklang(l); err != nil {
		return nil, err
	}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p.src.Words(ctx, l)
}

func (p *PPDB) Related(ctx context.Context, word string, l Language) ([]string, error) {
	if err := p.checklang(l); err != nil {
		return nil, err
	}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p.src.Related(ctx, word, l)
}

// ReadPPDB - parse paraphrase records into a Graph of normalized phrase ==> normalized paraphrase edges;
// a record is dropped when its (lower-cased) paraphrase is a stop word
func ReadPPDB(r io.Reader, stops map[string]struct{}) (*Graph, PPDBStats, error) {
	var st PPDBStats
	g := NewGraph()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		st.Records++

		fields := strings.Split(line, vv.PPDBSEPARATOR)
		if len(fields) < 3 {
			st.Skipped++
			continue
		}
		phrase := strings.TrimSpace(fields[1])
		para := strings.TrimSpace(fields[2])
		if phrase == "" || para == "" {
			st.Skipped++
			continue
		}
		if _, stop := stops[strings.ToLower(para)]; stop {
			st.Stopped++
			continue
		}
		if g.Add(norm.Normalize(phrase), norm.Normalize(para)) {
			st.Pairs++
		} else {
			st.Repeated++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, st, err
	}
	return g, st, nil
}
