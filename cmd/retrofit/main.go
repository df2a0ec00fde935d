//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		Msg.CRIT(err.Error())
		os.Exit(1)
	}
}
