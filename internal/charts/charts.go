// Package charts renders the dashboard series as a static HTML page.
package charts

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/verte-zerg/yks/internal/model"
	"github.com/verte-zerg/yks/internal/stats"
)

// PageTitle is the HTML title of the chart page.
const PageTitle = "YKS Takip Grafikleri"

// Render writes the daily, lesson and net trend charts as one HTML page.
func Render(w io.Writer, snap model.Snapshot, today time.Time, days int) error {
	if days <= 0 {
		days = stats.DefaultDayCount
	}
	page := components.NewPage()
	page.PageTitle = PageTitle
	page.AddCharts(
		dailyChart(snap.StudyEntries, today, days),
		lessonChart(snap.StudyEntries),
		netChart(snap.MockExams),
	)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return nil
}

func dailyChart(entries []model.StudyEntry, today time.Time, days int) *charts.Line {
	series := stats.DailySeries(entries, days, today)
	labels := make([]string, len(series))
	minutes := make([]opts.LineData, len(series))
	questions := make([]opts.LineData, len(series))
	for i, d := range series {
		labels[i] = d.Date
		minutes[i] = opts.LineData{Value: d.Minutes}
		questions[i] = opts.LineData{Value: d.Questions}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Zaman Analizleri",
			Subtitle: fmt.Sprintf("Son %d gün", days),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Top: "bottom"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
	)
	line.SetXAxis(labels).
		AddSeries("Dakika", minutes).
		AddSeries("Soru", questions).
		SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}

func lessonChart(entries []model.StudyEntry) *charts.Bar {
	dist := stats.TopLessons(stats.LessonDistribution(entries), len(entries))
	labels := make([]string, len(dist))
	minutes := make([]opts.BarData, len(dist))
	for i, b := range dist {
		labels[i] = b.Lesson
		minutes[i] = opts.BarData{Value: b.Minutes}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Ders Dağılımı"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 30}}),
	)
	bar.SetXAxis(labels).AddSeries("Dakika", minutes)
	return bar
}

func netChart(exams []model.MockExam) *charts.Line {
	trend := stats.NetTrend(exams)
	labels := make([]string, len(trend))
	tyt := make([]opts.LineData, len(trend))
	ayt := make([]opts.LineData, len(trend))
	for i, p := range trend {
		labels[i] = p.Date
		tyt[i] = opts.LineData{Value: p.TYT}
		ayt[i] = opts.LineData{Value: p.AYT}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Deneme Net Gelişimi"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Top: "bottom"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Scale: opts.Bool(true)}),
	)
	line.SetXAxis(labels).
		AddSeries("TYT", tyt).
		AddSeries("AYT", ayt).
		SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}
