// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package statistics

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// maxChartPoints bounds the number of points handed to the browser.
const maxChartPoints = 2000

// chartPoints converts windows into (instruction, rate) points, reduced with
// the Visvalingam-Whyatt algorithm when there are too many of them.
func chartPoints(windows []Window) [][2]float64 {
	ls := make(orb.LineString, 0, len(windows))
	for _, w := range windows {
		ls = append(ls, orb.Point{float64(w.LastInstruction), w.Rate})
	}
	if len(ls) > maxChartPoints {
		ls = simplify.VisvalingamKeep(maxChartPoints).Simplify(ls).(orb.LineString)
	}
	points := make([][2]float64, len(ls))
	for i := range ls {
		points[i] = [2]float64(ls[i])
	}
	return points
}

func newWindowChart(title string, points [][2]float64) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme: types.ThemeChalk,
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "misprediction rate per window over retired instructions",
		}))

	items := make([]opts.LineData, 0, len(points))
	for _, point := range points {
		items = append(items, opts.LineData{Value: point})
	}
	chart.AddSeries("Misprediction rate", items)
	return chart
}

// RenderWindowChart writes an html line chart of the windows to filename.
func RenderWindowChart(filename string, title string, windows []Window) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "cannot create chart %s", filename)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err = newWindowChart(title, chartPoints(windows)).Render(f); err != nil {
		return errors.Wrapf(err, "cannot render chart %s", filename)
	}
	return nil
}
