//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package web serves read-only lookups against an original table and its retrofitted counterpart.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/e-gun/retrofitter/internal/emb"
	"github.com/e-gun/retrofitter/internal/str"
	"github.com/e-gun/retrofitter/internal/vv"
	"github.com/e-gun/wego/pkg/search"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	ORIGINAL    = "original"
	RETROFITTED = "retrofitted"
)

// Server - an echo instance plus the tables it answers for
type Server struct {
	Cfg    *str.CurrentConfiguration
	tables map[string]*emb.Table
	srch   map[string]*search.Searcher
	smtx   sync.Mutex
	cache  *lru.Cache[string, search.Neighbors]
	e      *echo.Echo
}

// NewServer - retrofitted may be nil; only the original table is then served
func NewServer(cfg *str.CurrentConfiguration, original *emb.Table, retrofitted *emb.Table) (*Server, error) {
	const (
		FAIL1 = "the server needs an original table"
	)
	if original == nil {
		return nil, errors.New(FAIL1)
	}
	size := cfg.CacheSize
	if size < 1 {
		size = vv.VECTORCACHESIZE
	}
	c, err := lru.New[string, search.Neighbors](size)
	if err != nil {
		return nil, err
	}

	s := &Server{
		Cfg:    cfg,
		tables: map[string]*emb.Table{ORIGINAL: original},
		srch:   make(map[string]*search.Searcher),
		cache:  c,
	}
	if retrofitted != nil {
		s.tables[RETROFITTED] = retrofitted
	}
	s.e = s.build()
	return s, nil
}

// Handler - the underlying http.Handler
func (s *Server) Handler() http.Handler {
	return s.e
}

// build - middleware and routes
func (s *Server) build() *echo.Echo {
	const (
		LLOGFMT = "r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		RLOGFMT = "${remote_ip}\t${custom}\t${status}\t${bytes_out}\t${uri}\n"
	)

	// ctf - a CustomTagFunc return a short user agent
	ctf := func(c echo.Context, buf *bytes.Buffer) (int, error) {
		ua := strings.Split(c.Request().UserAgent(), " ")
		last := ua[len(ua)-1]
		return buf.WriteString(last)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = vv.TIMEOUTRD
	e.Server.WriteTimeout = vv.TIMEOUTWR

	switch s.Cfg.EchoLog {
	case 3:
		e.Use(middleware.Logger())
	case 2:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: RLOGFMT, CustomTagFunc: ctf}))
	case 1:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: LLOGFMT}))
	default:
		// do nothing
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(vv.MAXECHOREQPERSEC)))
	e.Use(middleware.Recover())

	e.GET("/healthz", s.RtHealth)
	e.GET("/vector/:word", s.RtVector)
	e.GET("/neighbors/:word", s.RtNeighbors)
	e.GET("/graph/:word", s.RtGraph)
	return e
}

// Serve - listen on HostIP:HostPort until the context ends
func (s *Server) Serve(ctx context.Context) error {
	const (
		MSG1 = "Serving vectors on http://%s"
		MSG2 = "Server shut down"
	)
	addr := fmt.Sprintf("%s:%d", s.Cfg.HostIP, s.Cfg.HostPort)
	Msg.MAND(fmt.Sprintf(MSG1, addr))

	errc := make(chan error, 1)
	go func() {
		errc <- s.e.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		err := s.e.Shutdown(context.Background())
		Msg.NOTE(MSG2)
		return err
	}
}

// table - which table a request asked for
func (s *Server) table(c echo.Context) (string, *emb.Table, error) {
	const (
		FAIL1 = "no %s table is being served"
	)
	name := c.QueryParam("table")
	if name == "" {
		name = ORIGINAL
		if _, ok := s.tables[RETROFITTED]; ok {
			name = RETROFITTED
		}
	}
	t, ok := s.tables[name]
	if !ok {
		return "", nil, echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf(FAIL1, name))
	}
	return name, t, nil
}

// searcher - built on first use and then kept
func (s *Server) searcher(name string) (*search.Searcher, error) {
	s.smtx.Lock()
	defer s.smtx.Unlock()
	if sr, ok := s.srch[name]; ok {
		return sr, nil
	}
	sr, err := emb.NewSearcher(s.tables[name])
	if err != nil {
		return nil, err
	}
	s.srch[name] = sr
	return sr, nil
}

// neighbors - k nearest neighbors of a stored word, cached per table
func (s *Server) neighbors(name string, word string, k int) (search.Neighbors, error) {
	key := fmt.Sprintf("%s|%s|%d", name, word, k)
	if nn, ok := s.cache.Get(key); ok {
		return nn, nil
	}
	sr, err := s.searcher(name)
	if err != nil {
		return nil, err
	}
	nn, err := sr.SearchInternal(word, k)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, nn)
	return nn, nil
}
