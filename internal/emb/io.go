//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package emb

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/e-gun/retrofitter/internal/fault"
	"github.com/e-gun/retrofitter/internal/gen"
	"github.com/e-gun/retrofitter/internal/mm"
	"github.com/e-gun/retrofitter/internal/vv"
)

const (
	MAXLINE = 64 * 1024 * 1024
)

// Load - parse "word c1 c2 ... cN" records; every vector is scaled to unit length
func Load(r io.Reader, name string) (*Table, error) {
	return parse(r, name, true)
}

// LoadRaw - parse records as they are; for reading back tables this program wrote
func LoadRaw(r io.Reader, name string) (*Table, error) {
	return parse(r, name, false)
}

func parse(r io.Reader, name string, unit bool) (*Table, error) {
	const (
		BADNUM = "component %q is not a number"
		NOCOMP = "record has no vector components"
		NOTFIN = "component %q is not finite"
		BADDIM = "expected %d components, found %d"
		MSG1   = "Read %s vectors of dimension %d from %s"
	)

	start := time.Now()
	t := NewTable(name, 0)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024*1024), MAXLINE)

	ln := 0
	for sc.Scan() {
		ln++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		word := fields[0]
		if len(fields) == 1 {
			return nil, &fault.Error{Kind: fault.MalformedEmbeddingLine, Source: name, Line: ln, Word: word, Detail: NOCOMP}
		}

		vec := make([]float64, len(fields)-1)
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &fault.Error{Kind: fault.MalformedEmbeddingLine, Source: name, Line: ln, Word: word, Detail: fmt.Sprintf(BADNUM, f)}
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &fault.Error{Kind: fault.MalformedEmbeddingLine, Source: name, Line: ln, Word: word, Detail: fmt.Sprintf(NOTFIN, f)}
			}
			vec[i] = v
		}

		if t.Len() > 0 && len(vec) != t.dim {
			return nil, &fault.Error{Kind: fault.DimensionMismatch, Source: name, Line: ln, Word: word, Detail: fmt.Sprintf(BADDIM, t.dim, len(vec))}
		}

		if unit && !unitize(vec) {
			return nil, &fault.Error{Kind: fault.ZeroNormVector, Source: name, Line: ln, Word: word}
		}
		t.Append(word, vec)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	Msg.Timer("E", fmt.Sprintf(MSG1, mm.Count(t.Len()), t.dim, name), start, start)
	return t, nil
}

// LoadFile - Load from a path; ".gz" files are decompressed
func LoadFile(path string) (*Table, error) {
	const (
		MSG1 = "Reading embeddings from %s"
		MSG2 = "Reading embeddings done!"
	)
	Msg.NOTE(fmt.Sprintf(MSG1, path))
	f, err := gen.OpenMaybeGzip(path)
	if err != nil {
		return nil, fmt.Errorf("opening embeddings: %w", err)
	}
	defer f.Close()

	t, err := Load(f, path)
	if err != nil {
		return nil, err
	}
	Msg.NOTE(MSG2)
	return t, nil
}

// LoadRawFile - LoadRaw from a path; ".gz" files are decompressed
func LoadRawFile(path string) (*Table, error) {
	f, err := gen.OpenMaybeGzip(path)
	if err != nil {
		return nil, fmt.Errorf("opening embeddings: %w", err)
	}
	defer f.Close()
	return LoadRaw(f, path)
}

// Save - one line per entry in table order: the word, then each component as "%.4f"
func (t *Table) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 16*(t.dim+1))
	for i, word := range t.words {
		buf = buf[:0]
		buf = append(buf, word...)
		for _, v := range t.vecs[i] {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, v, 'f', vv.OUTPUTPRECISION, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveFile - Save to a path; ".gz" paths are compressed
func (t *Table) SaveFile(path string) error {
	const (
		MSG1 = "Writing embeddings to %s"
		MSG2 = "Writing embeddings done!"
	)
	Msg.NOTE(fmt.Sprintf(MSG1, path))
	f, err := gen.CreateMaybeGzip(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err = t.Save(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	Msg.NOTE(MSG2)
	return nil
}
