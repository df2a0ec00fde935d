//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lex

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/e-gun/retrofitter/internal/gen"
	"github.com/e-gun/retrofitter/internal/vv"
)

//
// STOPWORDS
//

// StopWords - the fixed stop list for a language
func StopWords(l Language) map[string]struct{} {
	if l == French {
		return gen.ToSet(frenchstops())
	}
	return gen.ToSet(englishstops())
}

// StopFile - the name of the override file for a language inside the config directory
func StopFile(l Language) string {
	if l == French {
		return vv.CONFIGSTOPSFRA
	}
	return vv.CONFIGSTOPSENG
}

// ReadStopConfig - the stop list for a language; a JSON array in dir/StopFile(l) replaces the built-in list
func ReadStopConfig(dir string, l Language) (map[string]struct{}, error) {
	const (
		ERR1 = "failed to parse %s: %w"
		MSG1 = "Using %d stop words from %s"
	)
	fn := filepath.Join(dir, StopFile(l))
	if dir == "" || !gen.FileExists(fn) {
		return StopWords(l), nil
	}

	content, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	var stp []string
	if err = json.Unmarshal(content, &stp); err != nil {
		return nil, fmt.Errorf(ERR1, fn, err)
	}
	for i := range stp {
		stp[i] = strings.ToLower(strings.TrimSpace(stp[i]))
	}
	Msg.PEEK(fmt.Sprintf(MSG1, len(stp), fn))
	return gen.ToSet(stp), nil
}

// WriteStopConfig - write the built-in list for a language to dir/StopFile(l) so that it can be edited
func WriteStopConfig(dir string, l Language) (string, error) {
	stops := gen.StringMapKeysIntoSlice(StopWords(l))
	content, err := json.MarshalIndent(stops, vv.JSONINDENT, vv.JSONINDENT)
	if err != nil {
		return "", err
	}
	fn := filepath.Join(dir, StopFile(l))
	return fn, os.WriteFile(fn, content, vv.WRITEPERMS)
}

func englishstops() []string {
	return []string{"a", "about", "above", "after", "again", "against", "ain", "all", "am", "an", "and", "any",
		"are", "aren", "aren't", "as", "at", "be", "because", "been", "before", "being", "below", "between",
		"both", "but", "by", "can", "couldn", "couldn't", "d", "did", "didn", "didn't", "do", "does", "doesn",
		"doesn't", "doing", "don", "don't", "down", "during", "each", "few", "for", "from", "further", "had",
		"hadn", "hadn't", "has", "hasn", "hasn't", "have", "haven", "haven't", "having", "he", "her", "here",
		"hers", "herself", "him", "himself", "his", "how", "i", "if", "in", "into", "is", "isn", "isn't", "it",
		"it's", "its", "itself", "just", "ll", "m", "ma", "me", "mightn", "mightn't", "more", "most", "mustn",
		"mustn't", "my", "myself", "needn", "needn't", "no", "nor", "not", "now", "o", "of", "off", "on",
		"once", "only", "or", "other", "our", "ours", "ourselves", "out", "over", "own", "re", "s", "same",
		"shan", "shan't", "she", "she's", "should", "should've", "shouldn", "shouldn't", "so", "some", "such",
		"t", "than", "that", "that'll", "the", "their", "theirs", "them", "themselves", "then", "there",
		"these", "they", "this", "those", "through", "to", "too", "under", "until", "up", "ve", "very", "was",
		"wasn", "wasn't", "we", "were", "weren", "weren't", "what", "when", "where", "which", "while", "who",
		"whom", "why", "will", "with", "won", "won't", "wouldn", "wouldn't", "y", "you", "you'd", "you'll",
		"you're", "you've", "your", "yours", "yourself", "yourselves"}
}

func frenchstops() []string {
	return []string{"ai", "aie", "aient", "aies", "ait", "as", "au", "aura", "aurai", "auraient", "aurais",
		"aurait", "auras", "aurez", "auriez", "aurions", "aurons", "auront", "aux", "avaient", "avais",
		"avait", "avec", "avez", "aviez", "avions", "avons", "ayant", "ayez", "ayons", "c", "ce", "ceci",
		"cela", "ces", "cet", "cette", "d", "dans", "de", "des", "du", "elle", "en", "es", "est", "et", "eu",
		"eue", "eues", "eurent", "eus", "eusse", "eussent", "eut", "eux", "furent", "fus", "fusse", "fut",
		"il", "ils", "j", "je", "l", "la", "le", "les", "leur", "leurs", "lui", "m", "ma", "mais", "me",
		"mes", "moi", "mon", "même", "n", "ne", "nos", "notre", "nous", "on", "ont", "ou", "par", "pas",
		"pour", "qu", "que", "quel", "quelle", "quelles", "quels", "qui", "s", "sa", "sans", "se", "sera",
		"serai", "seraient", "serais", "serait", "seras", "serez", "seriez", "serions", "serons", "seront",
		"ses", "soi", "soient", "sois", "soit", "sommes", "son", "sont", "soyez", "soyons", "suis", "sur",
		"t", "ta", "te", "tes", "toi", "ton", "tu", "un", "une", "vos", "votre", "vous", "y", "à", "étaient",
		"étais", "était", "étant", "étiez", "étions", "été", "êtes"}
}
