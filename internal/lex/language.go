//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lex

import (
	"strings"

	"github.com/e-gun/retrofitter/internal/fault"
	"golang.org/x/text/language"
)

// Language - the languages a relation source can serve
type Language string

const (
	English Language = "eng"
	French  Language = "fra"
)

var (
	english, _ = language.English.Base()
	french, _  = language.French.Base()
)

// ParseLanguage - "eng", "ENG", "en", "en-GB" ==> English; "fra", "fr" ==> French; anything else is unsupported
func ParseLanguage(code string) (Language, error) {
	c := strings.ToLower(strings.TrimSpace(code))
	switch c {
	case string(English):
		return English, nil
	case string(French):
		return French, nil
	}

	tag, err := language.Parse(c)
	if err == nil {
		b, _ := tag.Base()
		switch b {
		case english:
			return English, nil
		case french:
			return French, nil
		}
	}
	return "", &fault.Error{Kind: fault.UnsupportedLanguage, Word: code, Detail: "expected eng or fra"}
}

// Tag - the x/text tag for the language
func (l Language) Tag() language.Tag {
	if l == French {
		return language.French
	}
	return language.English
}

func (l Language) String() string {
	return string(l)
}
