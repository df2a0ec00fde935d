//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package fault

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsIsByKind(t *testing.T) {
	e := &Error{Kind: ZeroNormVector, Source: "vec.txt", Line: 3, Word: "the"}
	wrapped := fmt.Errorf("loading: %w", e)

	assert.True(t, errors.Is(wrapped, ErrZeroNorm))
	assert.False(t, errors.Is(wrapped, ErrDimension))

	var f *Error
	require.True(t, errors.As(wrapped, &f))
	assert.Equal(t, 3, f.Line)
	assert.Equal(t, "the", f.Word)
	assert.Equal(t, ZeroNormVector, KindOf(wrapped))
}

func TestErrorMessage(t *testing.T) {
	e := &Error{Kind: MalformedEmbeddingLine, Source: "vec.txt", Line: 7, Detail: `component "x1" is not a number`}
	assert.Equal(t, `malformed embedding line: vec.txt:7: component "x1" is not a number`, e.Error())

	e = New(InvalidAlpha, "alpha must be > 0")
	assert.Equal(t, "invalid alpha: alpha must be > 0", e.Error())
}

func TestWrapUnwraps(t *testing.T) {
	e := Wrap(RelationSourceUnavailable, "ppdb.gz", os.ErrNotExist)
	assert.True(t, errors.Is(e, os.ErrNotExist))
	assert.True(t, errors.Is(e, ErrSourceUnavailable))
	assert.Equal(t, Unknown, KindOf(errors.New("plain")))
	assert.Equal(t, "unsupported language", UnsupportedLanguage.String())
}

func TestKindOfJoined(t *testing.T) {
	joined := errors.Join(errors.New("closing vec.txt"), New(DimensionMismatch, "3 != 2"))
	assert.Equal(t, DimensionMismatch, KindOf(joined))
	assert.Equal(t, DimensionMismatch, KindOf(fmt.Errorf("loading: %w", joined)))
	assert.Equal(t, Unknown, KindOf(nil))
}
