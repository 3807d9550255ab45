package stats

import (
	"time"

	"github.com/verte-zerg/yks/internal/model"
)

// DefaultDayCount is the window of the daily series used by the dashboard.
const DefaultDayCount = 14

var weekdayLabels = [7]string{"Pzt", "Sal", "Çar", "Per", "Cum", "Cmt", "Paz"}

// DayBucket sums the entries of one calendar day.
type DayBucket struct {
	Date      string `json:"date"`
	Minutes   int    `json:"minutes"`
	Questions int    `json:"questions"`
}

// WeekdayBucket sums the entries of one day of the current week.
type WeekdayBucket struct {
	Label     string `json:"label"`
	Date      string `json:"date"`
	Minutes   int    `json:"minutes"`
	Questions int    `json:"questions"`
}

// EfficiencyPoint is questions per minute for one day.
type EfficiencyPoint struct {
	Date       string  `json:"date"`
	Efficiency float64 `json:"efficiency"`
}

type totals struct {
	minutes   int
	questions int
}

func groupByDate(entries []model.StudyEntry) map[string]totals {
	grouped := make(map[string]totals, len(entries))
	for _, e := range entries {
		cur := grouped[e.Date]
		cur.minutes += e.Minutes
		cur.questions += e.QuestionCount
		grouped[e.Date] = cur
	}
	return grouped
}

// StartOfDay returns midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DailySeries returns dayCount buckets, oldest first and ending on today.
// Days without entries are zero-filled.
func DailySeries(entries []model.StudyEntry, dayCount int, today time.Time) []DayBucket {
	if dayCount <= 0 {
		return []DayBucket{}
	}
	grouped := groupByDate(entries)
	end := StartOfDay(today)
	out := make([]DayBucket, dayCount)
	for i := 0; i < dayCount; i++ {
		key := model.DateKey(end.AddDate(0, 0, -(dayCount - 1 - i)))
		data := grouped[key]
		out[i] = DayBucket{Date: key, Minutes: data.minutes, Questions: data.questions}
	}
	return out
}

// StartOfWeek returns the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeeklyTotals returns seven buckets for the current Monday-based week.
func WeeklyTotals(entries []model.StudyEntry, today time.Time) []WeekdayBucket {
	grouped := groupByDate(entries)
	start := StartOfWeek(today)
	out := make([]WeekdayBucket, 7)
	for i := 0; i < 7; i++ {
		key := model.DateKey(start.AddDate(0, 0, i))
		data := grouped[key]
		out[i] = WeekdayBucket{
			Label:     weekdayLabels[i],
			Date:      key,
			Minutes:   data.minutes,
			Questions: data.questions,
		}
	}
	return out
}

// EfficiencyData computes questions per minute over the default daily series.
func EfficiencyData(entries []model.StudyEntry, today time.Time) []EfficiencyPoint {
	series := DailySeries(entries, DefaultDayCount, today)
	out := make([]EfficiencyPoint, len(series))
	for i, day := range series {
		out[i] = EfficiencyPoint{Date: day.Date, Efficiency: Efficiency(day.Questions, day.Minutes)}
	}
	return out
}

// Efficiency returns questions/minutes, or 0 when minutes is not positive.
func Efficiency(questions, minutes int) float64 {
	if minutes <= 0 {
		return 0
	}
	return float64(questions) / float64(minutes)
}
