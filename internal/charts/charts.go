// Package charts renders the tracker's statistics as interactive HTML
// charts.
package charts

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Config holds chart rendering configuration.
type Config struct {
	Title    string
	Subtitle string
	Width    string
	Height   string
	Theme    string
	Colors   []string
}

// DefaultConfig returns default chart configuration.
func DefaultConfig() Config {
	return Config{
		Width:  "900px",
		Height: "500px",
		Theme:  "light",
		Colors: []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666"},
	}
}

// DeckCost is one deck's completion cost in wildcard-coefficient
// units.
type DeckCost struct {
	Name string
	Cost float64
}

// MissingByRarity is one deck's missing-card counts split by rarity.
type MissingByRarity struct {
	Name     string
	Common   int
	Uncommon int
	Rare     int
	Mythic   int
}

// RenderDeckCosts creates a bar chart of deck completion costs,
// cheapest first.
func RenderDeckCosts(costs []DeckCost, config Config, outputPath string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithColorsOpts(opts.Colors{config.Colors[0]}),
	)

	xLabels := make([]string, len(costs))
	yData := make([]opts.BarData, len(costs))
	for i, c := range costs {
		xLabels[i] = c.Name
		yData[i] = opts.BarData{Value: c.Cost}
	}

	bar.SetXAxis(xLabels).
		AddSeries("Completion cost", yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		)

	return render(bar, outputPath)
}

// RenderMissingByRarity creates a stacked bar chart of missing cards
// per deck, one series per rarity.
func RenderMissingByRarity(missing []MissingByRarity, config Config, outputPath string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithColorsOpts(opts.Colors{
			config.Colors[0], config.Colors[1], config.Colors[2], config.Colors[3],
		}),
	)

	xLabels := make([]string, len(missing))
	common := make([]opts.BarData, len(missing))
	uncommon := make([]opts.BarData, len(missing))
	rare := make([]opts.BarData, len(missing))
	mythic := make([]opts.BarData, len(missing))
	for i, m := range missing {
		xLabels[i] = m.Name
		common[i] = opts.BarData{Value: m.Common}
		uncommon[i] = opts.BarData{Value: m.Uncommon}
		rare[i] = opts.BarData{Value: m.Rare}
		mythic[i] = opts.BarData{Value: m.Mythic}
	}

	const stack = "missing"
	bar.SetXAxis(xLabels).
		AddSeries("Common", common).
		AddSeries("Uncommon", uncommon).
		AddSeries("Rare", rare).
		AddSeries("Mythic", mythic).
		SetSeriesOptions(
			charts.WithBarChartOpts(opts.BarChart{Stack: stack}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		)

	return render(bar, outputPath)
}

type renderer interface {
	Render(w io.Writer) error
}

func render(chart renderer, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := chart.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// OpenInBrowser opens a rendered chart in the system browser.
func OpenInBrowser(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("resolve chart path: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", absPath)
	case "linux":
		cmd = exec.Command("xdg-open", absPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
