// Package charts renders a wrapped summary as an interactive HTML page.
package charts

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pable/go-cr-wrapped/internal/model"
)

const (
	chartWidth  = "900px"
	chartHeight = "450px"
)

// RenderWrapped writes an HTML page with the player's trophy-delta and
// card-usage charts to outputPath.
func RenderWrapped(ins model.Insights, outputPath string) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%s — Clash Royale Wrapped", ins.PlayerName)
	page.AddCharts(
		trophyLine(ins),
		loyalCardsBar(ins.TopLoyalCards),
	)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	return nil
}

// trophyLine charts the recent per-battle trophy deltas. The deltas are the
// engine's ±30 estimates, labeled as such.
func trophyLine(ins model.Insights) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Trophy roller coaster",
			Subtitle: fmt.Sprintf("current %d · best %d · estimated ±30 per battle", ins.TrophyRollerCoaster.Current, ins.TrophyRollerCoaster.Best),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	changes := ins.TrophyRollerCoaster.RecentChanges
	labels := make([]string, len(changes))
	points := make([]opts.LineData, len(changes))
	running := 0
	for i, delta := range changes {
		running += delta
		labels[i] = strconv.Itoa(i + 1)
		points[i] = opts.LineData{Value: running}
	}

	line.SetXAxis(labels).
		AddSeries("Trophy delta (cumulative)", points).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		)
	return line
}

// loyalCardsBar charts usage counts for the top loyal cards.
func loyalCardsBar(cards []model.LoyalCard) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Most loyal cards",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := make([]string, len(cards))
	points := make([]opts.BarData, len(cards))
	for i, c := range cards {
		labels[i] = c.Name
		points[i] = opts.BarData{Value: c.Count}
	}

	bar.SetXAxis(labels).AddSeries("Uses", points)
	return bar
}
