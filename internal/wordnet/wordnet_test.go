//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package wordnet

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/e-gun/retrofitter/internal/fault"
	"github.com/e-gun/retrofitter/internal/lex"
	"github.com/e-gun/retrofitter/internal/norm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lex.Msg.SetOutput(io.Discard)
}

// Sample - a tiny dog/canine/puppy hierarchy with one French synset
func sample(t *testing.T, path string) *DB {
	t.Helper()
	ctx := context.Background()
	db, err := Create(ctx, path)
	require.NoError(t, err)

	require.NoError(t, db.AddSynset(ctx, 100, lex.English, "dog", "domestic_dog", "Canis_familiaris"))
	require.NoError(t, db.AddSynset(ctx, 101, lex.English, "frump", "dog"))
	require.NoError(t, db.AddSynset(ctx, 200, lex.English, "canine", "canid"))
	require.NoError(t, db.AddSynset(ctx, 300, lex.English, "puppy"))
	require.NoError(t, db.AddSynset(ctx, 400, lex.French, "chien", "clébard"))
	require.NoError(t, db.AddHypernym(ctx, 100, 200))
	require.NoError(t, db.AddHypernym(ctx, 300, 100))
	return db
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	db := sample(t, ":memory:")
	defer db.Close()

	lemmas, err := db.Lemmas(ctx, lex.English)
	require.NoError(t, err)
	assert.Equal(t, []string{"Canis_familiaris", "canid", "canine", "dog", "domestic_dog", "frump", "puppy"}, lemmas)

	senses, err := db.Senses(ctx, "dog", lex.English)
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 101}, senses)

	syn, err := db.SenseLemmas(ctx, 101, lex.English)
	require.NoError(t, err)
	assert.Equal(t, []string{"frump", "dog"}, syn)

	hyper, err := db.Hypernyms(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{200}, hyper)

	hypo, err := db.Hyponyms(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{300}, hypo)

	fr, err := db.Senses(ctx, "chien", lex.French)
	require.NoError(t, err)
	assert.Equal(t, []int64{400}, fr)
	none, err := db.Senses(ctx, "chien", lex.English)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBuildFromWordNet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wordnet.db")
	db := sample(t, path)
	require.NoError(t, db.Close())

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	g, err := lex.Build(ctx, lex.NewWordNet(db, false), lex.English)
	require.NoError(t, err)
	assert.Equal(t, []string{norm.SYMBOL, "frump"}, g.Neighbors("dog"))
	assert.Equal(t, []string{"dog"}, g.Neighbors("frump"))
	assert.Empty(t, g.Neighbors("puppy"))
	assert.False(t, g.Has("chien"))

	g, err = lex.Build(ctx, lex.NewWordNet(db, true), lex.English)
	require.NoError(t, err)
	assert.Equal(t, []string{norm.SYMBOL, "frump", "canine", "canid", "puppy"}, g.Neighbors("dog"))
	assert.Equal(t, []string{"dog", norm.SYMBOL}, g.Neighbors("puppy"))

	g, err = lex.Build(ctx, lex.NewWordNet(db, false), lex.French)
	require.NoError(t, err)
	assert.Equal(t, []string{norm.SYMBOL}, g.Neighbors("chien"))
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.db"))
	assert.ErrorIs(t, err, fault.ErrSourceUnavailable)
}
