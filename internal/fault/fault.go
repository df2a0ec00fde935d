//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package fault holds the typed errors raised while loading inputs and validating a run.
package fault

import (
	"errors"
	"fmt"
	"strings"
)

// Kind - the category of a failure
type Kind int

const (
	Unknown Kind = iota
	MalformedEmbeddingLine
	ZeroNormVector
	DimensionMismatch
	InvalidIterationCount
	InvalidAlpha
	RelationSourceUnavailable
	UnsupportedLanguage
)

var kindnames = map[Kind]string{
	Unknown:                   "unknown error",
	MalformedEmbeddingLine:    "malformed embedding line",
	ZeroNormVector:            "zero-norm vector",
	DimensionMismatch:         "dimension mismatch",
	InvalidIterationCount:     "invalid iteration count",
	InvalidAlpha:              "invalid alpha",
	RelationSourceUnavailable: "relation source unavailable",
	UnsupportedLanguage:       "unsupported language",
}

func (k Kind) String() string {
	if n, ok := kindnames[k]; ok {
		return n
	}
	return kindnames[Unknown]
}

// Error - a Kind plus whatever context is known when it is raised
type Error struct {
	Kind   Kind
	Source string // file or source name
	Line   int    // 1-based; 0 when not applicable
	Word   string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.Source != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Source)
		if e.Line > 0 {
			sb.WriteString(fmt.Sprintf(":%d", e.Line))
		}
	} else if e.Line > 0 {
		sb.WriteString(fmt.Sprintf(": line %d", e.Line))
	}
	if e.Word != "" {
		sb.WriteString(fmt.Sprintf(" (%q)", e.Word))
	}
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is - two faults match when their kinds match; lets errors.Is(err, fault.ErrZeroNorm) work
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New - build an *Error of the given kind
func New(k Kind, detail string) *Error {
	return &Error{Kind: k, Detail: detail}
}

// Wrap - build an *Error of the given kind around an underlying error
func Wrap(k Kind, source string, err error) *Error {
	return &Error{Kind: k, Source: source, Err: err}
}

// KindOf - the Kind of the first *Error in the chain; Unknown if there is none
func KindOf(err error) Kind {
	var f *Error
	if errors.As(err, &f) {
		return f.Kind
	}
	return Unknown
}

var (
	ErrMalformedLine     = &Error{Kind: MalformedEmbeddingLine}
	ErrZeroNorm          = &Error{Kind: ZeroNormVector}
	ErrDimension         = &Error{Kind: DimensionMismatch}
	ErrIterations        = &Error{Kind: InvalidIterationCount}
	ErrAlpha             = &Error{Kind: InvalidAlpha}
	ErrSourceUnavailable = &Error{Kind: RelationSourceUnavailable}
	ErrLanguage          = &Error{Kind: UnsupportedLanguage}
)
