//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"fmt"
	"io"
	"runtime"

	"github.com/e-gun/retrofitter/internal/str"
	"github.com/e-gun/retrofitter/internal/vv"
)

//
// VERSION INFO BUILD TIME INJECTION
//

// these next variables should be injected at build time: 'go build -ldflags "-X github.com/e-gun/retrofitter/internal/lnch.GitCommit=$GIT_COMMIT"', etc

var GitCommit string
var VersSuppl string
var BuildDate string

// VersionLine - e.g., "[RTF] Retrofitter (v0.2.1) [git: 64974732] [gl=2]"
func VersionLine(cc *str.CurrentConfiguration) string {
	const (
		SN = "[C1%sC0] "
		GC = " [C4git: C4%sC0]"
		LL = " [C6gl=%dC0]"
		ME = "C5%sC0 (C2v%sC0)"
	)
	sn := fmt.Sprintf(SN, vv.SHORTNAME)
	gc := ""
	if GitCommit != "" {
		gc = fmt.Sprintf(GC, GitCommit)
	}
	ll := fmt.Sprintf(LL, cc.LogLevel)
	versioninfo := fmt.Sprintf(ME, vv.MYNAME, vv.VERSION+VersSuppl)
	return Msg.ColStyle(sn + versioninfo + gc + ll)
}

// BuildInfo - build date, toolchain, platform, and workers
func BuildInfo(cc *str.CurrentConfiguration) string {
	// example:
	// 	Built:	2023-11-14@19:02:51		Golang:	go1.21.4
	//	System:	darwin-arm64			WKvCPU:	20/20
	const (
		BD = "\tS1Built:S0\tC3%sC0\t"
		GV = "\tS1Golang:S0\tC3%sC0\n"
		SY = "\tS1System:S0\tC3%s-%sC0\t"
		WC = "\t\tS1WKvCPU:S0\tC3%dC0/C3%dC0"
	)

	bi := ""
	if BuildDate != "" {
		bi = Msg.ColStyle(fmt.Sprintf(BD, BuildDate))
	}
	bi += Msg.ColStyle(fmt.Sprintf(GV, runtime.Version()))
	bi += Msg.ColStyle(fmt.Sprintf(SY, runtime.GOOS, runtime.GOARCH))
	bi += Msg.ColStyle(fmt.Sprintf(WC, cc.WorkerCount, runtime.NumCPU()))
	return bi
}

// PrintVersion - version line plus build info
func PrintVersion(w io.Writer, cc *str.CurrentConfiguration) {
	_, _ = fmt.Fprintln(w, VersionLine(cc))
	_, _ = fmt.Fprintln(w, BuildInfo(cc))
}
