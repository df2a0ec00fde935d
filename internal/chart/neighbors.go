//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package chart

import (
	"fmt"
	"io"

	"github.com/e-gun/retrofitter/internal/gen"
	"github.com/e-gun/wego/pkg/search"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// see also: https://echarts.apache.org/en/option.html#series-graph

// NeighborGraph - a force-directed graph of a word, its nearest neighbors, and the links among those neighbors
func NeighborGraph(coreword string, settings string, nn map[string]search.Neighbors, width string, height string) *charts.Graph {
	const (
		SYMSIZE       = 25
		SIZEDISTORT   = 2.25
		REPULSION     = 6000
		GRAVITY       = .15
		EDGELEN       = 40
		EDGEFNTSZ     = 8
		SERIESNAME    = ""
		LAYOUTTYPE    = "force"
		LABELPOSITON  = "right"
		DOTHUE        = 236
		DOTSL         = ", 33%, 40%, 1)"
		LINECURVINESS = 0 // from 0 to 1, but non-zero will double-up the lines...
		LINETYPE      = "solid"
		TITLESTR      = "Nearest neighbors of »%s«"
	)

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: fmt.Sprintf(TITLESTR, coreword), Width: width, Height: height}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf(TITLESTR, coreword), Subtitle: settings, Bottom: "3%", Left: "20"}),
	)

	var gnn []opts.GraphNode
	var gll []opts.GraphLink
	valuelabel := opts.EdgeLabel{Show: true, FontSize: EDGEFNTSZ, Formatter: "{c}"}
	dot := &opts.ItemStyle{Color: "hsla(" + fmt.Sprintf("%d", DOTHUE) + DOTSL}

	// find the max similarity: this will let you adjust bubble size so that most similar are biggest
	var maxsim float64
	for _, w := range nn[coreword] {
		if w.Similarity > maxsim {
			maxsim = w.Similarity
		}
	}
	if maxsim == 0 {
		maxsim = 1
	}

	// the center point
	gnn = append(gnn, opts.GraphNode{Name: coreword, Value: 0, SymbolSize: fmt.Sprintf("%.4f", SYMSIZE*SIZEDISTORT), ItemStyle: dot})
	used := map[string]struct{}{coreword: {}}

	// the words directly related to this word
	for _, w := range nn[coreword] {
		if _, ok := used[w.Word]; ok {
			continue
		}
		sizemod := fmt.Sprintf("%.4f", ((w.Similarity/maxsim)*SIZEDISTORT)*SYMSIZE)
		gnn = append(gnn, opts.GraphNode{Name: w.Word, Value: round(w.Similarity), SymbolSize: sizemod, ItemStyle: dot})
		gll = append(gll, opts.GraphLink{Source: coreword, Target: w.Word, Value: round(w.Similarity), Label: &valuelabel})
		used[w.Word] = struct{}{}
	}

	// the relationships between the other words; sorted so the output is stable
	for _, t := range gen.StringMapKeysIntoSlice(nn) {
		if t == coreword {
			continue
		}
		for _, w := range nn[t] {
			if _, ok := used[w.Word]; ok && w.Word != t {
				gll = append(gll, opts.GraphLink{Source: t, Target: w.Word, Value: round(w.Similarity), Label: &valuelabel})
			}
		}
	}

	graph.AddSeries(SERIESNAME, gnn, gll,
		charts.WithLabelOpts(
			opts.Label{
				Show:     true,
				Position: LABELPOSITON,
			},
		),
		charts.WithLineStyleOpts(
			opts.LineStyle{
				Curveness: LINECURVINESS,
				Type:      LINETYPE,
			}),
		charts.WithGraphChartOpts(
			opts.GraphChart{
				Layout: LAYOUTTYPE,
				Force: &opts.GraphForce{
					Repulsion:  REPULSION,
					Gravity:    GRAVITY,
					EdgeLength: EDGELEN,
				},
				Roam:               true,
				FocusNodeAdjacency: true,
			},
		),
	)
	return graph
}

// RenderNeighbors - render the neighbor graph into a writer
func RenderNeighbors(w io.Writer, coreword string, settings string, nn map[string]search.Neighbors, width string, height string) error {
	return NeighborGraph(coreword, settings, nn, width, height).Render(w)
}
