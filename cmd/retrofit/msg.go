//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"github.com/e-gun/retrofitter/internal/chart"
	"github.com/e-gun/retrofitter/internal/db"
	"github.com/e-gun/retrofitter/internal/diff"
	"github.com/e-gun/retrofitter/internal/emb"
	"github.com/e-gun/retrofitter/internal/lex"
	"github.com/e-gun/retrofitter/internal/mm"
	"github.com/e-gun/retrofitter/internal/retro"
	"github.com/e-gun/retrofitter/internal/vv"
	"github.com/e-gun/retrofitter/internal/web"
)

var Msg = mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION)

// messengers - every package-level MessageMaker that the config should reach
func messengers() []*mm.MessageMaker {
	return []*mm.MessageMaker{Msg, chart.Msg, db.Msg, diff.Msg, emb.Msg, lex.Msg, retro.Msg, web.Msg}
}
