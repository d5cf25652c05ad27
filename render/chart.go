package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/epimap/epimap-api/consts"
	"github.com/epimap/epimap-api/schema"
)

const chartLineWidth = 2

// CountryChart writes a line chart of the cumulative and daily counts of a
// single country's derived series.
func CountryChart(w io.Writer, country string, rows []schema.CountryDay) error {
	if len(rows) == 0 {
		return fmt.Errorf("no rows to chart for country %s", country)
	}

	labels := make([]string, len(rows))
	sumCases := make([]opts.LineData, len(rows))
	sumDeaths := make([]opts.LineData, len(rows))
	newCases := make([]opts.LineData, len(rows))

	for i, row := range rows {
		labels[i] = row.Date.Format("2006-01-02")
		sumCases[i] = opts.LineData{Value: row.SumCases}
		sumDeaths[i] = opts.LineData{Value: row.SumDeaths}
		newCases[i] = opts.LineData{Value: row.NewCases}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: country,
			Width:     "100%",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("COVID-19 cases: %s", country),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count"}),
	)
	line.SetXAxis(labels)
	line.AddSeries("Cumulative cases", sumCases,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: consts.Colors["red"]}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: chartLineWidth}),
	)
	line.AddSeries("Cumulative deaths", sumDeaths,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: consts.Colors["gray"]}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: chartLineWidth}),
	)
	line.AddSeries("New cases", newCases,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: consts.Colors["blue"]}),
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
	)

	return line.Render(w)
}
