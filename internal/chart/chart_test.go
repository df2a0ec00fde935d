//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package chart

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/e-gun/retrofitter/internal/retro"
	"github.com/e-gun/wego/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	Msg.SetOutput(io.Discard)
}

func TestRenderConvergence(t *testing.T) {
	stats := []retro.IterationStats{
		{Iteration: 1, Updated: 3, MeanShift: 0.25, MaxShift: 0.5, Elapsed: time.Millisecond},
		{Iteration: 2, Updated: 3, MeanShift: 0.05, MaxShift: 0.1, Elapsed: time.Millisecond},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderConvergence(&buf, stats, "alpha 1; gauss-seidel", "800px", "400px"))
	out := buf.String()
	assert.Contains(t, out, "mean shift")
	assert.Contains(t, out, "max shift")
	assert.Contains(t, out, "gauss-seidel")
}

func TestWriteConvergence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.html")
	require.NoError(t, WriteConvergence(path, []retro.IterationStats{{Iteration: 1, MeanShift: 0.1, MaxShift: 0.2}}, "", "800px", "400px"))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "mean shift")
}

func TestRenderNeighbors(t *testing.T) {
	nn := map[string]search.Neighbors{
		"dog": {
			{Word: "hound", Similarity: 0.9},
			{Word: "puppy", Similarity: 0.8},
		},
		"hound": {
			{Word: "puppy", Similarity: 0.7},
		},
	}
	g := NeighborGraph("dog", "retrofitted", nn, "800px", "400px")
	require.NotNil(t, g)

	var buf bytes.Buffer
	require.NoError(t, RenderNeighbors(&buf, "dog", "retrofitted", nn, "800px", "400px"))
	out := buf.String()
	assert.Contains(t, out, "hound")
	assert.Contains(t, out, "puppy")
}
