//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package diff

import (
	"github.com/e-gun/retrofitter/internal/mm"
	"github.com/e-gun/retrofitter/internal/vv"
)

var Msg = mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION)
