//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package chart

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/e-gun/retrofitter/internal/retro"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

//
// GRAPHING
//

const (
	PRECISON = 6
)

func round(val float64) float32 {
	ratio := math.Pow(10, float64(PRECISON))
	return float32(math.Round(val*ratio) / ratio)
}

// Convergence - a line chart of the mean and max shift per iteration
func Convergence(stats []retro.IterationStats, settings string, width string, height string) *charts.Line {
	const (
		TITLESTR  = "Retrofitting: vector shift per iteration"
		MEANNAME  = "mean shift"
		MAXNAME   = "max shift"
		XNAME     = "iteration"
		YNAME     = "L2 shift"
		FONTSTYLE = "normal"
		LEFTALIGN = "20"
		SAVETYPE  = "svg"
		SAVESTR   = "Save to file..."
	)

	tst := opts.TextStyle{
		FontStyle: FONTSTYLE,
		FontSize:  16,
	}
	sst := opts.TextStyle{
		FontStyle: FONTSTYLE,
		FontSize:  10,
	}
	tit := opts.Title{
		Title:         TITLESTR,
		TitleStyle:    &tst,
		Subtitle:      settings,
		SubtitleStyle: &sst,
		Left:          LEFTALIGN,
	}
	tbs := opts.ToolBoxFeatureSaveAsImage{
		Show:  true,
		Type:  SAVETYPE,
		Name:  "retrofitting-convergence",
		Title: SAVESTR,
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: TITLESTR, Width: width, Height: height}),
		charts.WithTitleOpts(tit),
		charts.WithToolboxOpts(opts.Toolbox{Show: true, Orient: "vertical", Left: LEFTALIGN, Feature: &opts.ToolBoxFeature{SaveAsImage: &tbs}}),
		charts.WithXAxisOpts(opts.XAxis{Name: XNAME}),
		charts.WithYAxisOpts(opts.YAxis{Name: YNAME}),
		charts.WithLegendOpts(opts.Legend{Show: true, Right: LEFTALIGN}),
	)

	x := make([]int, len(stats))
	mean := make([]opts.LineData, len(stats))
	mx := make([]opts.LineData, len(stats))
	for i, s := range stats {
		x[i] = s.Iteration
		mean[i] = opts.LineData{Value: round(s.MeanShift)}
		mx[i] = opts.LineData{Value: round(s.MaxShift)}
	}

	line.SetXAxis(x).
		AddSeries(MEANNAME, mean).
		AddSeries(MAXNAME, mx)
	return line
}

// WriteConvergence - render the convergence chart as a stand-alone html page
func WriteConvergence(path string, stats []retro.IterationStats, settings string, width string, height string) error {
	const (
		MSG1 = "Wrote convergence chart to %s"
	)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = RenderConvergence(f, stats, settings, width, height); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	Msg.NOTE(fmt.Sprintf(MSG1, path))
	return nil
}

// RenderConvergence - render the convergence chart into a writer
func RenderConvergence(w io.Writer, stats []retro.IterationStats, settings string, width string, height string) error {
	return Convergence(stats, settings, width, height).Render(w)
}
