package main

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// phaseOrder fixes the X axis; phases missing from the CSV are skipped.
var phaseOrder = []string{"insert", "lookup_hit", "lookup_miss", "scan", "mix_oltp", "mix_olap"}

// RenderChart draws one bar group per structure/config across the measured
// phases and saves the chart as a PNG.
func RenderChart(results []BenchResult, outPNG string) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to plot")
	}

	// Group latencies by series (structure + config) keeping first-seen order.
	type series struct {
		label   string
		byPhase map[string]int64
	}
	var ordered []*series
	byLabel := map[string]*series{}
	havePhase := map[string]bool{}
	for _, res := range results {
		label := res.Structure
		if res.Config != "" && res.Config != "-" {
			label = fmt.Sprintf("%s (M=%s)", res.Structure, res.Config)
		}
		s, ok := byLabel[label]
		if !ok {
			s = &series{label: label, byPhase: map[string]int64{}}
			byLabel[label] = s
			ordered = append(ordered, s)
		}
		s.byPhase[res.Phase] = res.LatencyNs
		havePhase[res.Phase] = true
	}
	var phases []string
	for _, ph := range phaseOrder {
		if havePhase[ph] {
			phases = append(phases, ph)
		}
	}

	p := plot.New()
	p.Title.Text = "per-operation latency by structure"
	p.Y.Label.Text = "latency (ns/op)"

	barWidth := vg.Points(14)
	for i, s := range ordered {
		vals := make(plotter.Values, len(phases))
		for j, ph := range phases {
			vals[j] = float64(s.byPhase[ph])
		}
		bars, err := plotter.NewBarChart(vals, barWidth)
		if err != nil {
			return fmt.Errorf("bar chart for %s: %w", s.label, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = barWidth * vg.Length(i-len(ordered)/2)
		p.Add(bars)
		p.Legend.Add(s.label, bars)
	}
	p.Legend.Top = true
	p.NominalX(phases...)

	if err := p.Save(9*vg.Inch, 5*vg.Inch, outPNG); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}
