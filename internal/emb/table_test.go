//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package emb

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/e-gun/retrofitter/internal/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func init() {
	Msg.SetOutput(io.Discard)
}

const sample = `cat 0.3 0.4 0.0
dog 1 0 0

Car -2 0 0.0
car 0 0 5
`

func TestLoadUnitNorm(t *testing.T) {
	tb, err := Load(strings.NewReader(sample), "sample")
	require.NoError(t, err)
	require.Equal(t, 4, tb.Len())
	assert.Equal(t, 3, tb.Dim())
	assert.Equal(t, []string{"cat", "dog", "Car", "car"}, tb.Words())

	for i := 0; i < tb.Len(); i++ {
		assert.InDelta(t, 1.0, floats.Norm(tb.Vector(i), 2), 1e-12)
	}
	v, ok := tb.Get("cat")
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{0.6, 0.8, 0}, v, 1e-12)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind fault.Kind
		line int
	}{
		{"nonnumeric", "a 1 2\nb 1 x\n", fault.MalformedEmbeddingLine, 2},
		{"nocomponents", "a 1 2\nlonely\n", fault.MalformedEmbeddingLine, 2},
		{"nan", "a NaN 1\n", fault.MalformedEmbeddingLine, 1},
		{"zeronorm", "a 1 2\nb 0 0\n", fault.ZeroNormVector, 2},
		{"dimension", "a 1 2\n\nb 1 2 3\n", fault.DimensionMismatch, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.in), tt.name)
			require.Error(t, err)
			var f *fault.Error
			require.True(t, errors.As(err, &f))
			assert.Equal(t, tt.kind, f.Kind)
			assert.Equal(t, tt.line, f.Line)
		})
	}
}

func TestDuplicateWordKeepsPosition(t *testing.T) {
	tb, err := Load(strings.NewReader("a 1 0\nb 0 1\na 0 2\n"), "dup")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tb.Words())
	v, _ := tb.Get("a")
	assert.InDeltaSlice(t, []float64{0, 1}, v, 1e-12)
}

func TestCaseInsensitiveLookup(t *testing.T) {
	tb, err := Load(strings.NewReader(sample), "sample")
	require.NoError(t, err)

	i, ok := tb.Lookup("car")
	require.True(t, ok)
	assert.Equal(t, 3, i, "exact match wins")

	i, ok = tb.Lookup("CAR")
	require.True(t, ok)
	assert.Equal(t, 2, i, "first entry in table order represents the folded bucket")

	i, ok = tb.Lookup("Dog")
	require.True(t, ok)
	assert.Equal(t, "dog", tb.Word(i))

	assert.False(t, tb.Has("bird"))
}

func TestRoundTripFourDecimals(t *testing.T) {
	tb, err := Load(strings.NewReader(sample), "sample")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tb.Save(&buf))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, tb.Len())
	assert.Equal(t, "cat 0.6000 0.8000 0.0000", lines[0])
	assert.Equal(t, "Car -1.0000 0.0000 0.0000", lines[2])

	for i, l := range lines {
		fields := strings.Fields(l)
		require.Equal(t, tb.Word(i), fields[0])
		for j, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			require.NoError(t, err)
			assert.LessOrEqual(t, math.Abs(v-tb.Vector(i)[j]), 0.5e-4+1e-12)
		}
	}

	// reloading the output gives the same words in the same order
	again, err := Load(strings.NewReader(buf.String()), "again")
	require.NoError(t, err)
	assert.Equal(t, tb.Words(), again.Words())
}

func TestLoadRawKeepsValues(t *testing.T) {
	tb, err := LoadRaw(strings.NewReader("a 0.5000 -2.0000\nb 0 0\n"), "raw")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -2}, tb.Vector(0))
	assert.Equal(t, []float64{0, 0}, tb.Vector(1))

	var buf bytes.Buffer
	require.NoError(t, tb.Save(&buf))
	assert.Equal(t, "a 0.5000 -2.0000\nb 0.0000 0.0000\n", buf.String())
}

func TestSaveFileGzip(t *testing.T) {
	tb, err := Load(strings.NewReader(sample), "sample")
	require.NoError(t, err)

	dir := t.TempDir()
	plain := filepath.Join(dir, "out.txt")
	zipped := filepath.Join(dir, "out.txt.gz")
	require.NoError(t, tb.SaveFile(plain))
	require.NoError(t, tb.SaveFile(zipped))

	a, err := LoadFile(plain)
	require.NoError(t, err)
	b, err := LoadFile(zipped)
	require.NoError(t, err)
	assert.Equal(t, a.Words(), b.Words())
	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, a.Vector(i), b.Vector(i))
	}

	_, err = LoadFile(filepath.Join(dir, "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCloneIsIndependent(t *testing.T) {
	tb, err := Load(strings.NewReader(sample), "sample")
	require.NoError(t, err)

	c := tb.Clone()
	c.Set(0, []float64{0, 0, 1})
	assert.InDeltaSlice(t, []float64{0.6, 0.8, 0}, tb.Vector(0), 1e-12)
	assert.Equal(t, []float64{0, 0, 1}, c.Vector(0))

	i, ok := c.Lookup("CAT")
	require.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestNeighbors(t *testing.T) {
	in := "a 1 0\nb 0.9 0.1\nc 0 1\nd -1 0\n"
	tb, err := Load(strings.NewReader(in), "nn")
	require.NoError(t, err)

	embs := tb.Embeddings()
	require.Len(t, embs, 4)
	assert.Equal(t, "b", embs[1].Word)
	assert.InDelta(t, 1.0, embs[1].Norm, 1e-12)

	nn, err := tb.Neighbors("A", 3)
	require.NoError(t, err)
	var first string
	for _, n := range nn {
		if n.Word != "a" {
			first = n.Word
			break
		}
	}
	assert.Equal(t, "b", first)

	_, err = tb.Neighbors("zzz", 3)
	assert.Error(t, err)
}
