//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	DEFAULTALPHA       = 1.0
	DEFAULTITERATIONS  = 10
	DEFAULTUPDATEMODE  = "gauss-seidel"
	DEFAULTLEXICON     = "ppdb"
	DEFAULTSTORE       = "none"
	OUTPUTPRECISION    = 4
	PPDBENG            = "lexicons/ppdb-2.0-xl-lexical"
	PPDBFRA            = "lexicons/ppdb-1.0-xl-lexical"
	PPDBSEPARATOR      = "|||"
	WORDNETDB          = "lexicons/wordnet.db"
	VECTORNEIGHBORS    = 16
	VECTORNEIGHBORSMAX = 40
	VECTORNEIGHBORSMIN = 1
	VECTORTABLENAME    = "retrofitted_vectors"
	VECTORCACHESIZE    = 512
	CHARTWIDTH         = "1200px"
	CHARTHEIGHT        = "600px"
)
