package stats

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/yks/internal/model"
)

const (
	suggestWindowDays = 7
	fallbackLesson    = "Matematik"
	noDataSuggestion  = "Henüz veri yok, ilk kaydı oluştur."
)

var suggestionTemplates = []string{
	"Bugün {lesson} için {questions} soru + {minutes} dk konu tekrar yap.",
	"{lesson} dersinde açığın var. {minutes} dk odak, ardından {questions} soru öneriyorum.",
	"Son günlerde {lesson} ihmal edildi. {questions} soru çöz ve notlarını gözden geçir.",
}

// Suggestion is the "what should I study today" recommendation.
type Suggestion struct {
	Lesson    string
	Minutes   int
	Questions int
	DaysAgo   int
	Text      string
}

// Suggest picks the least-studied lesson of the last seven days and sizes a
// session by how long ago it was last studied. Entries are expected newest first.
func Suggest(entries []model.StudyEntry, today time.Time) Suggestion {
	if len(entries) == 0 {
		return Suggestion{Text: noDataSuggestion}
	}
	end := StartOfDay(today)
	start := end.AddDate(0, 0, -(suggestWindowDays - 1))

	var recent []model.StudyEntry
	for _, e := range entries {
		d, err := model.ParseDate(e.Date)
		if err != nil {
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		recent = append(recent, e)
	}

	name := leastStudied(recent)
	if name == "" && len(recent) > 0 {
		name = recent[len(recent)-1].Lesson
	}
	if name == "" {
		name = fallbackLesson
	}

	daysAgo := suggestWindowDays
	for _, e := range entries {
		if e.Lesson != name {
			continue
		}
		if d, err := model.ParseDate(e.Date); err == nil {
			daysAgo = DaysUntil(end, d)
		}
		break
	}

	s := Suggestion{
		Lesson:    name,
		DaysAgo:   daysAgo,
		Minutes:   minInt(120, 40+daysAgo*10),
		Questions: minInt(120, 30+daysAgo*8),
	}
	s.Text = renderSuggestion(pickTemplate(name, daysAgo), s)
	return s
}

func leastStudied(entries []model.StudyEntry) string {
	buckets := LessonDistribution(entries)
	if len(buckets) == 0 {
		return ""
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Minutes < buckets[j].Minutes
	})
	return buckets[0].Lesson
}

func pickTemplate(name string, daysAgo int) string {
	hash := 0
	for _, r := range name {
		hash += int(r)
	}
	idx := (hash + daysAgo) % len(suggestionTemplates)
	if idx < 0 {
		idx += len(suggestionTemplates)
	}
	return suggestionTemplates[idx]
}

func renderSuggestion(tmpl string, s Suggestion) string {
	r := strings.NewReplacer(
		"{lesson}", s.Lesson,
		"{minutes}", strconv.Itoa(s.Minutes),
		"{questions}", strconv.Itoa(s.Questions),
	)
	return r.Replace(tmpl)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
