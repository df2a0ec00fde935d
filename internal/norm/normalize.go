//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package norm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	NUM    = "*NUM*"
	PUNC   = "*PUNC*"
	SYMBOL = "*SYMBOL*"

	// the ASCII punctuation set: !"#$%&'()*+,-./:;<=>?@[\]^_`{|}~
	ASCIIPUNCT = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// Category - what Normalize decided a token is
type Category int

const (
	Word Category = iota
	Numeric
	Punctuation
	Symbol
)

func (c Category) String() string {
	switch c {
	case Numeric:
		return "numeric"
	case Punctuation:
		return "punctuation"
	case Symbol:
		return "symbol"
	default:
		return "word"
	}
}

// Classify - sort a token into one of the four categories; the checks run in order and the first hit wins
func Classify(token string) Category {
	switch token {
	case "":
		return Word
	case NUM:
		return Numeric
	case PUNC:
		return Punctuation
	case SYMBOL:
		return Symbol
	}

	for _, r := range token {
		if unicode.IsDigit(r) {
			return Numeric
		}
	}

	if utf8.RuneCountInString(token) == 1 && strings.Contains(ASCIIPUNCT, token) {
		return Punctuation
	}

	for _, r := range token {
		if !isasciiletter(r) {
			return Symbol
		}
	}

	return Word
}

// Normalize - map a token to its lookup key: digits ==> NUM; a lone punctuation mark ==> PUNC; anything
// else that is not pure ASCII letters ==> SYMBOL; ordinary words come back untouched
func Normalize(token string) string {
	if IsSentinel(token) {
		return token
	}
	switch Classify(token) {
	case Numeric:
		return NUM
	case Punctuation:
		return PUNC
	case Symbol:
		return SYMBOL
	default:
		return token
	}
}

// IsSentinel - true for the three placeholder tokens
func IsSentinel(token string) bool {
	return token == NUM || token == PUNC || token == SYMBOL
}

func isasciiletter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
