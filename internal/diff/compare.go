//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package diff compares two embedding files: line by line as text, and word by word as vectors.
package diff

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/e-gun/retrofitter/internal/emb"
	"github.com/e-gun/retrofitter/internal/gen"
	"github.com/e-gun/retrofitter/internal/mm"
	"gonum.org/v1/gonum/floats"
)

// Difference - one field that differs between the two files
type Difference struct {
	Line  int
	Index int
	Left  string
	Right string
}

// Result - the summary of a comparison
type Result struct {
	Lines        int
	Differing    int
	Fields       int
	LargeValues  int
	LargeVectors int
	Shared       int
	MeanCosine   float64
}

// Same - no line differed
func (r Result) Same() bool {
	return r.Differing == 0
}

// Lines - pair the lines of two files and count the differences; stops at the end of the shorter file;
// each differing field is handed to each (which may be nil) and is not kept
func Lines(left io.Reader, right io.Reader, each func(Difference)) (Result, error) {
	const (
		MAXLINE = 64 * 1024 * 1024
		LARGE   = 1.0
	)
	var res Result

	ls := bufio.NewScanner(left)
	rs := bufio.NewScanner(right)
	ls.Buffer(make([]byte, 0, 64*1024), MAXLINE)
	rs.Buffer(make([]byte, 0, 64*1024), MAXLINE)

	n := 0
	for ls.Scan() && rs.Scan() {
		n++
		l := strings.TrimSpace(ls.Text())
		r := strings.TrimSpace(rs.Text())
		if l == r {
			continue
		}
		res.Differing++
		lf := strings.Fields(l)
		rf := strings.Fields(r)
		large := false
		for i := 0; i < len(lf) && i < len(rf); i++ {
			if lf[i] == rf[i] {
				continue
			}
			res.Fields++
			if each != nil {
				each(Difference{Line: n, Index: i, Left: lf[i], Right: rf[i]})
			}
			// the word column never parses and so never counts as large
			if v, err := strconv.ParseFloat(rf[i], 64); err == nil && v > LARGE {
				res.LargeValues++
				large = true
			}
		}
		if large {
			res.LargeVectors++
		}
	}
	res.Lines = n
	if err := ls.Err(); err != nil {
		return res, err
	}
	if err := rs.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// Drift - the number of words present in both tables and their mean cosine similarity
func Drift(a *emb.Table, b *emb.Table) (int, float64) {
	shared := 0
	sum := 0.0
	for i := 0; i < a.Len(); i++ {
		v, ok := b.Get(a.Word(i))
		if !ok || len(v) != a.Dim() {
			continue
		}
		u := a.Vector(i)
		nu := floats.Norm(u, 2)
		nv := floats.Norm(v, 2)
		if nu == 0 || nv == 0 {
			continue
		}
		sum += floats.Dot(u, v) / (nu * nv)
		shared++
	}
	if shared == 0 {
		return 0, 0
	}
	return shared, sum / float64(shared)
}

// Files - compare two (possibly gzipped) embedding files
func Files(left string, right string) (Result, error) {
	const (
		FAIL1 = "cannot compare %s: %w"
		MSG1  = "Comparing %s with %s"
		MSG2  = "Line %d, index %d: %s / %s"
	)
	Msg.FYI(fmt.Sprintf(MSG1, left, right))

	lf, err := gen.OpenMaybeGzip(left)
	if err != nil {
		return Result{}, fmt.Errorf(FAIL1, left, err)
	}
	defer lf.Close()
	rf, err := gen.OpenMaybeGzip(right)
	if err != nil {
		return Result{}, fmt.Errorf(FAIL1, right, err)
	}
	defer rf.Close()

	report := func(d Difference) {
		Msg.TMI(fmt.Sprintf(MSG2, d.Line, d.Index, d.Left, d.Right))
	}
	res, err := Lines(lf, rf, report)
	if err != nil {
		return res, err
	}

	lt, err := emb.LoadRawFile(left)
	if err != nil {
		return res, err
	}
	rt, err := emb.LoadRawFile(right)
	if err != nil {
		return res, err
	}
	res.Shared, res.MeanCosine = Drift(lt, rt)
	return res, nil
}

// Report - the summary the compare command prints
func (r Result) Report(w io.Writer) {
	const (
		RPT1 = "lines compared:           %s\n"
		RPT2 = "lines that differ:        %s\n"
		RPT3 = "values that differ:       %s\n"
		RPT4 = "new values > 1:           %s\n"
		RPT5 = "vectors with such values: %s\n"
		RPT6 = "shared words:             %s\n"
		RPT7 = "mean cosine similarity:   %.6f\n"
		SAME = "\nThe contents of the two files are the same\n"
	)
	fmt.Fprintf(w, RPT1, mm.Count(r.Lines))
	fmt.Fprintf(w, RPT2, mm.Count(r.Differing))
	fmt.Fprintf(w, RPT3, mm.Count(r.Fields))
	fmt.Fprintf(w, RPT4, mm.Count(r.LargeValues))
	fmt.Fprintf(w, RPT5, mm.Count(r.LargeVectors))
	fmt.Fprintf(w, RPT6, mm.Count(r.Shared))
	fmt.Fprintf(w, RPT7, r.MeanCosine)
	if r.Same() {
		fmt.Fprint(w, SAME)
	}
}
