//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package chart draws go-echarts pages for a run's convergence and for a word's neighborhood.
package chart

import (
	"github.com/e-gun/retrofitter/internal/mm"
	"github.com/e-gun/retrofitter/internal/vv"
)

var Msg = mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION)
