//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/e-gun/retrofitter/internal/emb"
	"github.com/e-gun/retrofitter/internal/lex"
	"github.com/e-gun/retrofitter/internal/lnch"
	"github.com/e-gun/retrofitter/internal/vv"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	for _, m := range messengers() {
		m.SetOutput(io.Discard)
	}
	lnch.Msg.SetOutput(io.Discard)
}

const (
	vectors   = "a 1 0\nb 0 1\nc 1 1\n"
	adjacency = "a b\n"
)

// workspace - a fake home plus an embedding file and a lexicon file
func workspace(t *testing.T) (dir string, in string, lexfile string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("HOME", dir)
	in = filepath.Join(dir, "vectors.txt")
	lexfile = filepath.Join(dir, "lexicon.txt")
	require.NoError(t, os.WriteFile(in, []byte(vectors), 0600))
	require.NoError(t, os.WriteFile(lexfile, []byte(adjacency), 0600))
	return dir, in, lexfile
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestParseJob(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	j, err := parsejob([]string{"in.txt", "ENG", "WN+", "10", out}, "")
	require.NoError(t, err)
	assert.Equal(t, lex.English, j.lang)
	assert.Equal(t, "wordnet", j.lexicon)
	assert.True(t, j.extended)
	assert.Equal(t, 10, j.iters)

	j, err = parsejob([]string{"in.txt", "fra", "PPDB", "0", out + ".gz"}, "")
	require.NoError(t, err)
	assert.Equal(t, lex.French, j.lang)
	assert.Equal(t, "ppdb", j.lexicon)
	assert.Zero(t, j.iters)

	tests := []struct {
		name string
		args []string
		path string
		want string
	}{
		{"arity", []string{"in.txt", "eng"}, "", "expected 5 arguments"},
		{"language", []string{"in.txt", "deu", "ppdb", "10", out}, "", LANGS},
		{"lexicon", []string{"in.txt", "eng", "thesaurus", "10", out}, "", LEXICA},
		{"negative", []string{"in.txt", "eng", "ppdb", "-1", out}, "", ITERS},
		{"letters", []string{"in.txt", "eng", "ppdb", "ten", out}, "", ITERS},
		{"empty", []string{"in.txt", "eng", "ppdb", "", out}, "", ITERS},
		{"suffix", []string{"in.txt", "eng", "ppdb", "10", filepath.Join(dir, "out.csv")}, "", OUTFILE},
		{"nodir", []string{"in.txt", "eng", "ppdb", "10", filepath.Join(dir, "nope", "out.txt")}, "", "does not exist"},
		{"filepath", []string{"in.txt", "eng", "file", "10", out}, "", LEXFILE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsejob(tt.args, tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunWithAdjacencyFile(t *testing.T) {
	dir, in, lexfile := workspace(t)
	out := filepath.Join(dir, "retrofitted.txt")
	cht := filepath.Join(dir, "chart.html")

	_, err := execute(t, "run", in, "eng", "file", "10", out, "--lexicon-path", lexfile, "--chart", cht)
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3)
	assert.NotEqual(t, "a 1.0000 0.0000", lines[0])
	assert.Equal(t, "c 0.7071 0.7071", lines[2])

	html, err := os.ReadFile(cht)
	require.NoError(t, err)
	assert.Contains(t, string(html), "mean shift")
}

func TestRunZeroIterations(t *testing.T) {
	dir, in, lexfile := workspace(t)
	out := filepath.Join(dir, "same.txt")
	_, err := execute(t, "run", in, "eng", "file", "0", out, "--lexicon-path", lexfile)
	require.NoError(t, err)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "a 1.0000 0.0000\nb 0.0000 1.0000\nc 0.7071 0.7071\n", string(b))
}

func TestRunRejectsBadInput(t *testing.T) {
	dir, in, lexfile := workspace(t)
	out := filepath.Join(dir, "out.txt")

	_, err := execute(t, "run", in, "eng", "file", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), USAGE)

	_, err = execute(t, "run", in, "eng", "file", "10", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), LEXFILE)

	_, err = execute(t, "run", in, "eng", "file", "10", out, "--lexicon-path", lexfile, "--alpha=-1")
	assert.Error(t, err)

	_, err = execute(t, "run", in, "eng", "file", "10", out, "--lexicon-path", lexfile, "--mode", "sideways")
	assert.Error(t, err)

	_, err = execute(t, "run", in, "eng", "wn", "10", out, "--wordnet-db", filepath.Join(dir, "missing.db"))
	assert.Error(t, err)
	assert.NoFileExists(t, out)
}

func TestRunJacobi(t *testing.T) {
	dir, in, lexfile := workspace(t)
	gs := filepath.Join(dir, "gs.txt")
	jc := filepath.Join(dir, "jacobi.txt")
	_, err := execute(t, "run", in, "eng", "file", "5", gs, "--lexicon-path", lexfile)
	require.NoError(t, err)
	_, err = execute(t, "run", in, "eng", "file", "5", jc, "--lexicon-path", lexfile, "--mode", "jacobi", "--workers", "1")
	require.NoError(t, err)

	b, err := os.ReadFile(jc)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(b)), "\n"), 3)
}

func TestRunWithStore(t *testing.T) {
	dir, in, lexfile := workspace(t)
	cfg := filepath.Join(dir, "conf.yaml")
	dbfile := filepath.Join(dir, "runs.db")
	require.NoError(t, os.WriteFile(cfg, []byte("Store: sqlite\nSQLitePath: "+dbfile+"\n"), 0600))

	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	_, err := execute(t, "--config", cfg, "run", in, "eng", "file", "3", first, "--lexicon-path", lexfile)
	require.NoError(t, err)
	assert.FileExists(t, dbfile)

	_, err = execute(t, "--config", cfg, "run", in, "eng", "file", "3", second, "--lexicon-path", lexfile)
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompare(t *testing.T) {
	dir, in, _ := workspace(t)
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(other, []byte("a 1 0\nb 0 2\nc 1 1\n"), 0600))

	out, err := execute(t, "compare", in, other)
	require.NoError(t, err)
	assert.Regexp(t, `lines that differ:\s+1\n`, out)
	assert.Regexp(t, `new values > 1:\s+1\n`, out)

	out, err = execute(t, "compare", in, in)
	require.NoError(t, err)
	assert.Contains(t, out, "are the same")
}

func TestNeighborsCommand(t *testing.T) {
	dir, in, _ := workspace(t)
	graph := filepath.Join(dir, "graph.html")
	out, err := execute(t, "neighbors", in, "A", "-k", "2", "--graph", graph)
	require.NoError(t, err)
	assert.Contains(t, out, "c")
	assert.FileExists(t, graph)

	_, err = execute(t, "neighbors", in, "zebra")
	assert.Error(t, err)
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "conf", "retrofitter.yaml")

	_, err := execute(t, "config", path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(dir, "conf", vv.CONFIGSTOPSENG))
	assert.FileExists(t, filepath.Join(dir, "conf", vv.CONFIGSTOPSFRA))

	cfg, err := lnch.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, vv.DEFAULTUPDATEMODE, cfg.UpdateMode)

	_, err = execute(t, "config", path)
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	out, err := execute(t, "--bw", "version")
	require.NoError(t, err)
	assert.Contains(t, out, vv.MYNAME)
	assert.Contains(t, out, vv.VERSION)
}

// brokenstore - a Store whose lookups fail
type brokenstore struct {
	fetched bool
}

func (b *brokenstore) Check(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}
func (b *brokenstore) Add(context.Context, string, *emb.Table) (uuid.UUID, error) {
	return uuid.Nil, nil
}
func (b *brokenstore) Fetch(context.Context, string) (*emb.Table, error) {
	b.fetched = true
	return nil, errors.New("unreachable")
}
func (b *brokenstore) Reset(context.Context) error { return nil }
func (b *brokenstore) Close() error                { return nil }

func TestStoredReportsBrokenStore(t *testing.T) {
	var buf bytes.Buffer
	Msg.Configure(vv.DEFAULTGOLOGLEVEL, true)
	Msg.SetOutput(&buf)
	defer Msg.SetOutput(io.Discard)

	bs := &brokenstore{}
	assert.Nil(t, stored(context.Background(), bs, "0123456789abcdef0123456789abcdef"))
	assert.False(t, bs.fetched)
	assert.Contains(t, buf.String(), "connection refused")
}
