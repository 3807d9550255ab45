// Package stats contains study aggregation, derived metrics and reporting.
package stats

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/yks/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary holds the headline totals of the dashboard.
type Summary struct {
	Minutes   int
	Questions int
	Exams     int
	Lessons   int
}

// Summarize totals minutes and questions and counts exams and distinct lessons.
func Summarize(entries []model.StudyEntry, exams []model.MockExam) Summary {
	lessons := map[string]struct{}{}
	var s Summary
	for _, e := range entries {
		s.Minutes += e.Minutes
		s.Questions += e.QuestionCount
		lessons[e.Lesson] = struct{}{}
	}
	s.Exams = len(exams)
	s.Lessons = len(lessons)
	return s
}

// FormatMinutes renders a duration as "45 dk" or "2 sa 5 dk".
func FormatMinutes(total int) string {
	hours := total / 60
	minutes := total % 60
	if hours == 0 {
		return fmt.Sprintf("%d dk", minutes)
	}
	return fmt.Sprintf("%d sa %d dk", hours, minutes)
}

// Streak counts consecutive study days ending today, or yesterday when
// nothing has been logged yet today.
func Streak(entries []model.StudyEntry, today time.Time) int {
	days := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Minutes > 0 {
			days[e.Date] = struct{}{}
		}
	}
	day := StartOfDay(today)
	if _, ok := days[model.DateKey(day)]; !ok {
		day = day.AddDate(0, 0, -1)
	}
	count := 0
	for {
		if _, ok := days[model.DateKey(day)]; !ok {
			return count
		}
		count++
		day = day.AddDate(0, 0, -1)
	}
}

// DaysUntil returns the number of calendar days from today to date, never negative.
func DaysUntil(date, today time.Time) int {
	target := StartOfDay(date.In(today.Location()))
	from := StartOfDay(today)
	days := int(math.Round(target.Sub(from).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// MinutesValues extracts the minutes of each bucket as floats.
func MinutesValues(series []DayBucket) []float64 {
	out := make([]float64, len(series))
	for i, d := range series {
		out[i] = float64(d.Minutes)
	}
	return out
}
