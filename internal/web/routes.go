//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/e-gun/retrofitter/internal/chart"
	"github.com/e-gun/retrofitter/internal/emb"
	"github.com/e-gun/retrofitter/internal/gen"
	"github.com/e-gun/retrofitter/internal/vv"
	"github.com/e-gun/wego/pkg/search"
	"github.com/labstack/echo/v4"
)

type JSHealth struct {
	Status  string         `json:"status"`
	Version string         `json:"version"`
	Tables  map[string]int `json:"tables"`
	Dim     int            `json:"dim"`
}

type JSVector struct {
	Word   string    `json:"word"`
	Table  string    `json:"table"`
	Vector []float64 `json:"vector"`
}

type JSNeighbor struct {
	Rank       int     `json:"rank"`
	Word       string  `json:"word"`
	Similarity float64 `json:"similarity"`
}

type JSNeighbors struct {
	Word      string       `json:"word"`
	Table     string       `json:"table"`
	K         int          `json:"k"`
	Neighbors []JSNeighbor `json:"neighbors"`
}

// RtHealth - liveness plus table sizes
func (s *Server) RtHealth(c echo.Context) error {
	h := JSHealth{
		Status:  "ok",
		Version: vv.VERSION,
		Tables:  make(map[string]int),
		Dim:     s.tables[ORIGINAL].Dim(),
	}
	for n, t := range s.tables {
		h.Tables[n] = t.Len()
	}
	return gen.JSONresponse(c, h)
}

// RtVector - the stored vector for a word
func (s *Server) RtVector(c echo.Context) error {
	name, t, err := s.table(c)
	if err != nil {
		return err
	}
	word, i, err := lookup(c, t)
	if err != nil {
		return err
	}
	return gen.JSONresponse(c, JSVector{Word: word, Table: name, Vector: t.Vector(i)})
}

// RtNeighbors - "/neighbors/dog?k=8&table=original"
func (s *Server) RtNeighbors(c echo.Context) error {
	name, t, err := s.table(c)
	if err != nil {
		return err
	}
	word, _, err := lookup(c, t)
	if err != nil {
		return err
	}
	k, err := countparam(c)
	if err != nil {
		return err
	}
	nn, err := s.neighbors(name, word, k)
	if err != nil {
		return gen.JSONfailure(http.StatusInternalServerError, err.Error())
	}

	js := JSNeighbors{Word: word, Table: name, K: k, Neighbors: make([]JSNeighbor, len(nn))}
	for j, n := range nn {
		js.Neighbors[j] = JSNeighbor{Rank: int(n.Rank), Word: n.Word, Similarity: n.Similarity}
	}
	return gen.JSONresponse(c, js)
}

// RtGraph - an html force graph of a word's neighborhood
func (s *Server) RtGraph(c echo.Context) error {
	const (
		SETTINGS = "table: %s; neighbors: %d"
	)
	name, t, err := s.table(c)
	if err != nil {
		return err
	}
	word, _, err := lookup(c, t)
	if err != nil {
		return err
	}
	k, err := countparam(c)
	if err != nil {
		return err
	}

	nn := make(map[string]search.Neighbors)
	top, err := s.neighbors(name, word, k)
	if err != nil {
		return gen.JSONfailure(http.StatusInternalServerError, err.Error())
	}
	nn[word] = top
	for _, n := range top {
		if sub, e := s.neighbors(name, n.Word, k); e == nil {
			nn[n.Word] = sub
		}
	}

	var buf bytes.Buffer
	err = chart.RenderNeighbors(&buf, word, fmt.Sprintf(SETTINGS, name, k), nn, s.Cfg.VectorChtWd, s.Cfg.VectorChtHt)
	if err != nil {
		return gen.JSONfailure(http.StatusInternalServerError, err.Error())
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// lookup - resolve the :word param to the stored spelling
func lookup(c echo.Context, t *emb.Table) (string, int, error) {
	const (
		FAIL1 = "not in the vocabulary: %q"
	)
	w := c.Param("word")
	i, ok := t.Lookup(w)
	if !ok {
		return "", 0, gen.JSONfailure(http.StatusNotFound, fmt.Sprintf(FAIL1, w))
	}
	return t.Word(i), i, nil
}

// countparam - "k", clamped to the allowed range
func countparam(c echo.Context) (int, error) {
	const (
		FAIL1 = "k must be an integer: %q"
	)
	q := c.QueryParam("k")
	if q == "" {
		return vv.VECTORNEIGHBORS, nil
	}
	k, err := strconv.Atoi(q)
	if err != nil {
		return 0, gen.JSONfailure(http.StatusBadRequest, fmt.Sprintf(FAIL1, q))
	}
	if k < vv.VECTORNEIGHBORSMIN {
		k = vv.VECTORNEIGHBORSMIN
	}
	if k > vv.VECTORNEIGHBORSMAX {
		k = vv.VECTORNEIGHBORSMAX
	}
	return k, nil
}
