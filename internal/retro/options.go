//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package retro

import (
	"fmt"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/e-gun/retrofitter/internal/fault"
	"github.com/e-gun/retrofitter/internal/vv"
)

// Mode - how updates inside one pass see each other
type Mode int

const (
	// GaussSeidel - updates are stored at once; later words in the same pass read the new values
	GaussSeidel Mode = iota
	// Jacobi - every update in a pass reads the values from the start of that pass
	Jacobi
)

func (m Mode) String() string {
	if m == Jacobi {
		return "jacobi"
	}
	return "gauss-seidel"
}

// ParseMode - "gauss-seidel" (also "gs", "seq") or "jacobi" (also "parallel")
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gauss-seidel", "gaussseidel", "gs", "seq", "sequential":
		return GaussSeidel, nil
	case "jacobi", "parallel":
		return Jacobi, nil
	}
	return GaussSeidel, fmt.Errorf("unknown update mode %q: expected gauss-seidel or jacobi", s)
}

// IterationStats - what one pass did
type IterationStats struct {
	Iteration int
	Updated   int
	Skipped   int
	MeanShift float64
	MaxShift  float64
	Elapsed   time.Duration
}

// Options - everything a run needs beyond the table and the graph
type Options struct {
	Iterations int
	Alpha      float64
	Mode       Mode
	Workers    int
	Observer   func(IterationStats)
}

// DefaultOptions - alpha 1, Gauss-Seidel
func DefaultOptions() Options {
	return Options{
		Iterations: vv.DEFAULTITERATIONS,
		Alpha:      vv.DEFAULTALPHA,
		Mode:       GaussSeidel,
		Workers:    runtime.NumCPU(),
	}
}

// Validate - reject what the update rule cannot use
func (o Options) Validate() error {
	if o.Iterations < 0 {
		return &fault.Error{Kind: fault.InvalidIterationCount, Detail: fmt.Sprintf("%d is negative", o.Iterations)}
	}
	if math.IsNaN(o.Alpha) || math.IsInf(o.Alpha, 0) || o.Alpha <= 0 {
		return &fault.Error{Kind: fault.InvalidAlpha, Detail: fmt.Sprintf("%v is not a positive finite number", o.Alpha)}
	}
	if o.Mode != GaussSeidel && o.Mode != Jacobi {
		return fmt.Errorf("unknown update mode %d", o.Mode)
	}
	return nil
}

// Report - the shape of the run
type Report struct {
	GraphWords int
	Resolved   int
	Unresolved int
	Isolated   int
	Iterations []IterationStats
	Elapsed    time.Duration
}
