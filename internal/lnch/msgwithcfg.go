//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"github.com/e-gun/retrofitter/internal/mm"
	"github.com/e-gun/retrofitter/internal/str"
)

// UpdateMessageMakerWithConfig - push the level and color settings into every package's MessageMaker
func UpdateMessageMakerWithConfig(cc *str.CurrentConfiguration, mms ...*mm.MessageMaker) {
	Msg.Configure(cc.LogLevel, cc.BlackAndWhite)
	for _, m := range mms {
		m.Configure(cc.LogLevel, cc.BlackAndWhite)
	}
}
