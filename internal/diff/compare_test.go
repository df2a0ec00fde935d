//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package diff

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/e-gun/retrofitter/internal/emb"
	"github.com/e-gun/retrofitter/internal/gen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	Msg.SetOutput(io.Discard)
}

const (
	before = "a 0.1000 0.2000\nb 0.3000 0.4000\nc 0.5000 0.6000\n"
	after  = "a 0.1000 0.2000\nb 1.5000 0.4000\nc 0.5000 2.0000\n"
)

func TestLines(t *testing.T) {
	var seen []Difference
	res, err := Lines(strings.NewReader(before), strings.NewReader(after), func(d Difference) {
		seen = append(seen, d)
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Lines)
	assert.Equal(t, 2, res.Differing)
	assert.Equal(t, 2, res.Fields)
	assert.Equal(t, 2, res.LargeValues)
	assert.Equal(t, 2, res.LargeVectors)
	require.Len(t, seen, 2)
	assert.Equal(t, Difference{Line: 2, Index: 1, Left: "0.3000", Right: "1.5000"}, seen[0])
	assert.Equal(t, Difference{Line: 3, Index: 2, Left: "0.6000", Right: "2.0000"}, seen[1])
	assert.False(t, res.Same())
}

func TestLinesSmallChanges(t *testing.T) {
	res, err := Lines(strings.NewReader("a 0.5 0.5\n"), strings.NewReader("a 0.4 0.6\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Differing)
	assert.Equal(t, 2, res.Fields)
	assert.Zero(t, res.LargeValues)
	assert.Zero(t, res.LargeVectors)
}

func TestLinesIgnoresSurroundingSpace(t *testing.T) {
	res, err := Lines(strings.NewReader("a 1 2  \n"), strings.NewReader("  a 1 2\n"), nil)
	require.NoError(t, err)
	assert.True(t, res.Same())
	assert.Equal(t, 1, res.Lines)
}

func TestLinesShorterFileWins(t *testing.T) {
	res, err := Lines(strings.NewReader(before), strings.NewReader("a 0.1000 0.2000\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Lines)
	assert.True(t, res.Same())
}

func TestLinesWordColumn(t *testing.T) {
	res, err := Lines(strings.NewReader("a 1\n"), strings.NewReader("z 1\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Differing)
	assert.Zero(t, res.LargeValues)
}

func TestLinesKeepsNoFields(t *testing.T) {
	const (
		words = 2000
		dims  = 300
	)
	var l, r strings.Builder
	for i := 0; i < words; i++ {
		fmt.Fprintf(&l, "w%d", i)
		fmt.Fprintf(&r, "w%d", i)
		for j := 0; j < dims; j++ {
			l.WriteString(" 0.1000")
			r.WriteString(" 0.2000")
		}
		l.WriteByte('\n')
		r.WriteByte('\n')
	}

	calls := 0
	res, err := Lines(strings.NewReader(l.String()), strings.NewReader(r.String()), func(Difference) { calls++ })
	require.NoError(t, err)
	assert.Equal(t, words, res.Differing)
	assert.Equal(t, words*dims, res.Fields)
	assert.Equal(t, words*dims, calls)
	assert.Zero(t, res.LargeValues)

	res, err = Lines(strings.NewReader(l.String()), strings.NewReader(r.String()), nil)
	require.NoError(t, err)
	assert.Equal(t, words*dims, res.Fields)
}

func TestDrift(t *testing.T) {
	a, err := emb.LoadRaw(strings.NewReader("x 1 0\ny 0 1\nonly 1 1\n"), "a")
	require.NoError(t, err)
	b, err := emb.LoadRaw(strings.NewReader("x 1 0\ny 1 0\n"), "b")
	require.NoError(t, err)

	shared, cos := Drift(a, b)
	assert.Equal(t, 2, shared)
	assert.InDelta(t, 0.5, cos, 1e-12)

	shared, cos = Drift(a, a)
	assert.Equal(t, 3, shared)
	assert.InDelta(t, 1.0, cos, 1e-12)
}

func TestDriftNothingShared(t *testing.T) {
	a, err := emb.LoadRaw(strings.NewReader("x 1 0\n"), "a")
	require.NoError(t, err)
	b, err := emb.LoadRaw(strings.NewReader("y 1 0\n"), "b")
	require.NoError(t, err)
	shared, cos := Drift(a, b)
	assert.Zero(t, shared)
	assert.Zero(t, cos)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	left := filepath.Join(dir, "before.txt")
	right := filepath.Join(dir, "after.txt.gz")
	require.NoError(t, os.WriteFile(left, []byte(before), 0600))

	w, err := gen.CreateMaybeGzip(right)
	require.NoError(t, err)
	_, err = io.WriteString(w, after)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	res, err := Files(left, right)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Differing)
	assert.Equal(t, 3, res.Shared)
	assert.Less(t, res.MeanCosine, 1.0)
	assert.Greater(t, res.MeanCosine, 0.0)

	_, err = Files(left, filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	Result{Lines: 1234}.Report(&buf)
	out := buf.String()
	assert.Contains(t, out, "1,234")
	assert.Contains(t, out, "The contents of the two files are the same")

	buf.Reset()
	Result{Lines: 3, Differing: 2, LargeValues: 2, LargeVectors: 2}.Report(&buf)
	assert.NotContains(t, buf.String(), "are the same")
}
