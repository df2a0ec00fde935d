//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package retro pulls each word's vector toward the average of its related words while anchoring it to
// its original value.
//
// For a word w with k in-vocabulary neighbors and beta = 1/k:
//
//	new_w = (Σ beta*working[n] + alpha*original[w]) / (beta*k + alpha)
//
// The rule runs for exactly the requested number of passes over the graph's words in sorted order.
package retro

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/e-gun/retrofitter/internal/emb"
	"github.com/e-gun/retrofitter/internal/gen"
	"github.com/e-gun/retrofitter/internal/lex"
	"github.com/e-gun/retrofitter/internal/mm"
	"gonum.org/v1/gonum/floats"
)

// step - one update: the table row to rewrite and the rows it averages over
type step struct {
	target    int
	neighbors []int
}

// Retrofit - Gauss-Seidel retrofitting with default settings otherwise
func Retrofit(original *emb.Table, lexicon *lex.Graph, numIters int, alpha float64) (*emb.Table, error) {
	o := DefaultOptions()
	o.Iterations = numIters
	o.Alpha = alpha
	t, _, err := Run(context.Background(), original, lexicon, o)
	return t, err
}

// Run - validate, resolve the graph against the table once, then run the passes on a clone of the table
func Run(ctx context.Context, original *emb.Table, lexicon *lex.Graph, o Options) (*emb.Table, Report, error) {
	const (
		MSG1 = "Retrofitting word embeddings..."
		MSG2 = "%s graph words resolved; %s not in the vocabulary; %s with no usable neighbors"
		MSG3 = "iteration %d: %s updated; mean shift %.6f; max shift %.6f"
		MSG4 = "Retrofitting done!"
	)

	var rep Report
	if err := o.Validate(); err != nil {
		return nil, rep, err
	}
	if original == nil {
		return nil, rep, errors.New("no embedding table to retrofit")
	}
	if lexicon == nil {
		lexicon = lex.NewGraph()
	}
	if o.Workers < 1 {
		o.Workers = runtime.NumCPU()
	}

	Msg.NOTE(MSG1)
	start := time.Now()

	plan, unresolved, isolated := makeplan(original, lexicon)
	rep.GraphWords = lexicon.Len()
	rep.Resolved = len(plan)
	rep.Unresolved = unresolved
	rep.Isolated = isolated
	Msg.FYI(fmt.Sprintf(MSG2, mm.Count(len(plan)), mm.Count(unresolved), mm.Count(isolated)))

	var out *emb.Table
	var err error
	switch o.Mode {
	case Jacobi:
		out, err = jacobi(ctx, original, plan, o, &rep)
	default:
		out, err = gaussseidel(ctx, original, plan, o, &rep)
	}
	if err != nil {
		return nil, rep, err
	}

	for _, it := range rep.Iterations {
		Msg.PEEK(fmt.Sprintf(MSG3, it.Iteration, mm.Count(it.Updated), it.MeanShift, it.MaxShift))
	}
	rep.Elapsed = time.Since(start)
	Msg.Timer("R", MSG4, start, start)
	return out, rep, nil
}

// makeplan - resolve every graph word and its neighbors to table rows, in sorted word order
func makeplan(t *emb.Table, g *lex.Graph) (plan []step, unresolved int, isolated int) {
	for _, w := range g.Words() {
		i, ok := t.Lookup(w)
		if !ok {
			unresolved++
			continue
		}
		var nn []int
		for _, n := range g.Neighbors(w) {
			if j, found := t.Lookup(n); found {
				nn = append(nn, j)
			}
		}
		if len(nn) == 0 {
			isolated++
			continue
		}
		plan = append(plan, step{target: i, neighbors: nn})
	}
	return plan, unresolved, isolated
}

// update - the retrofitting rule for one step; reads neighbors from "from" and writes the result into acc
func update(acc []float64, s step, from *emb.Table, original *emb.Table, alpha float64) {
	for i := range acc {
		acc[i] = 0
	}
	k := float64(len(s.neighbors))
	beta := 1 / k
	for _, n := range s.neighbors {
		floats.AddScaled(acc, beta, from.Vector(n))
	}
	floats.AddScaled(acc, alpha, original.Vector(s.target))
	floats.Scale(1/(beta*k+alpha), acc)
}

// gaussseidel - each update is stored at once and is visible to the rest of the pass
func gaussseidel(ctx context.Context, original *emb.Table, plan []step, o Options, rep *Report) (*emb.Table, error) {
	work := original.Clone()
	acc := make([]float64, original.Dim())
	skipped := rep.Unresolved + rep.Isolated

	for iter := 1; iter <= o.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pass := time.Now()
		var sum, mx float64
		for _, s := range plan {
			update(acc, s, work, original, o.Alpha)
			d := floats.Distance(acc, work.Vector(s.target), 2)
			sum += d
			if d > mx {
				mx = d
			}
			work.Set(s.target, acc)
		}
		report(rep, o, IterationStats{
			Iteration: iter,
			Updated:   len(plan),
			Skipped:   skipped,
			MeanShift: mean(sum, len(plan)),
			MaxShift:  mx,
			Elapsed:   time.Since(pass),
		})
	}
	return work, nil
}

// jacobi - every update in a pass reads the start-of-pass table; chunks of the plan run in parallel
func jacobi(ctx context.Context, original *emb.Table, plan []step, o Options, rep *Report) (*emb.Table, error) {
	// two keys can resolve to the same row; the later key in sorted order wins, as it would sequentially
	plan = lastwins(plan)

	// rows outside the plan are never written, so both buffers agree on them for the whole run
	prev := original.Clone()
	next := original.Clone()
	skipped := rep.Unresolved + rep.Isolated

	chunks := gen.ChunkSlice(plan, gen.ChunkCount(len(plan), o.Workers))
	sums := make([]float64, len(chunks))
	maxes := make([]float64, len(chunks))

	for iter := 1; iter <= o.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pass := time.Now()

		var wg sync.WaitGroup
		for c := range chunks {
			wg.Add(1)
			go func(c int) {
				defer wg.Done()
				acc := make([]float64, original.Dim())
				var sum, mx float64
				for _, s := range chunks[c] {
					update(acc, s, prev, original, o.Alpha)
					d := floats.Distance(acc, prev.Vector(s.target), 2)
					sum += d
					if d > mx {
						mx = d
					}
					next.Set(s.target, acc)
				}
				sums[c] = sum
				maxes[c] = mx
			}(c)
		}
		wg.Wait()

		var sum, mx float64
		for c := range chunks {
			sum += sums[c]
			if maxes[c] > mx {
				mx = maxes[c]
			}
		}
		prev, next = next, prev

		report(rep, o, IterationStats{
			Iteration: iter,
			Updated:   len(plan),
			Skipped:   skipped,
			MeanShift: mean(sum, len(plan)),
			MaxShift:  mx,
			Elapsed:   time.Since(pass),
		})
	}
	return prev, nil
}

// lastwins - keep only the last step for each target row, in plan order
func lastwins(plan []step) []step {
	last := make(map[int]int, len(plan))
	for i, s := range plan {
		last[s.target] = i
	}
	if len(last) == len(plan) {
		return plan
	}
	kept := make([]step, 0, len(last))
	for i, s := range plan {
		if last[s.target] == i {
			kept = append(kept, s)
		}
	}
	return kept
}

func report(rep *Report, o Options, st IterationStats) {
	rep.Iterations = append(rep.Iterations, st)
	if o.Observer != nil {
		o.Observer(st)
	}
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
