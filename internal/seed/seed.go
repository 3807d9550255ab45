// Package seed provides the placeholder and first-login records.
package seed

import (
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/yks/internal/model"
)

// Widget components rendered by the dashboard.
const (
	ComponentTimeSeries      = "timeSeries"
	ComponentLessonRadar     = "lessonRadar"
	ComponentMockPerformance = "mockPerformance"
	ComponentPlanSuggestion  = "planSuggestion"
)

// DefaultWidgets returns the four dashboard cards in display order.
func DefaultWidgets() []model.WidgetConfig {
	return []model.WidgetConfig{
		{ID: "time-series", Title: "Zaman Analizleri", Description: "Günlük ve haftalık süre akışı", Component: ComponentTimeSeries, Visible: true, Size: model.SizeMedium, Order: 0},
		{ID: "lesson-distribution", Title: "Ders Dağılımı", Description: "Ders ağırlıkları", Component: ComponentLessonRadar, Visible: true, Size: model.SizeMedium, Order: 1},
		{ID: "deneme-performance", Title: "Deneme Net Gelişimi", Description: "TYT & AYT net trendi", Component: ComponentMockPerformance, Visible: true, Size: model.SizeMedium, Order: 2},
		{ID: "plan-suggestion", Title: "Bugün Ne Yapmalıyım?", Description: "7 günlük dağılıma göre öneriler", Component: ComponentPlanSuggestion, Visible: true, Size: model.SizeMedium, Order: 3},
	}
}

// Goals returns the starter goals with fresh ids.
func Goals() []model.Goal {
	return []model.Goal{
		{ID: uuid.NewString(), Title: "Günlük 150 soru", Period: model.PeriodDaily, Target: 150, Current: 105, Unit: "soru"},
		{ID: uuid.NewString(), Title: "Günlük 5 saat", Period: model.PeriodDaily, Target: 300, Current: 270, Unit: "dk"},
		{ID: uuid.NewString(), Title: "Haftada 2 deneme", Period: model.PeriodWeekly, Target: 2, Current: 2, Unit: "deneme"},
		{ID: uuid.NewString(), Title: "Haftalık 1200 soru", Period: model.PeriodWeekly, Target: 1200, Current: 987, Unit: "soru"},
	}
}

// Topics returns the starter topic progress rows with fresh ids.
func Topics() []model.TopicProgress {
	return []model.TopicProgress{
		{ID: uuid.NewString(), Lesson: "Matematik", Completed: 35, Total: 40, MissingTopics: []string{"Olasılık", "Seriler", "İstatistik", "Diziler", "Karmaşık Sayılar"}},
		{ID: uuid.NewString(), Lesson: "AYT Matematik", Completed: 21, Total: 28, MissingTopics: []string{"İntegral Uygulamaları", "L'Hospital", "Parametre", "Seriler", "İkinci Dereceden Denklemler", "Logaritma İleri", "İntegral Hacim"}},
		{ID: uuid.NewString(), Lesson: "AYT Fizik", Completed: 12, Total: 18, MissingTopics: []string{"Modern Fizik", "Atom Fiziği", "Fotoelektrik Olay", "Kuantum", "Radyoaktivite", "Nükleer Fizik"}},
		{ID: uuid.NewString(), Lesson: "Fizik", Completed: 14, Total: 16, MissingTopics: []string{"Basınç İleri", "Hidrostatik"}},
		{ID: uuid.NewString(), Lesson: "AYT Kimya", Completed: 16, Total: 20, MissingTopics: []string{"Organik - Esterler", "Organik - Eterler", "Elektrokimya İleri", "Kimyasal Denge"}},
		{ID: uuid.NewString(), Lesson: "AYT Biyoloji", Completed: 10, Total: 15, MissingTopics: []string{"Evrim İleri", "Ekosistem Ekolojisi", "Bitki Biyolojisi", "DNA Replikasyonu", "Gen İfadesi"}},
	}
}

// Notifications returns the starter reminders, newest first relative to now.
func Notifications(now time.Time) []model.Notification {
	return []model.Notification{
		{ID: uuid.NewString(), Title: "Haftalık deneme hedefine ulaştın!", Description: "Bu hafta 2 deneme hedefini tamamladın. Netlerinde artış var, harika gidiyorsun!", Type: model.NotifyMotivation, CreatedAt: now},
		{ID: uuid.NewString(), Title: "Tarih ve Coğrafya ihmal ediliyor", Description: "Son 3 günde bu derslere hiç çalışmadın. 40 dk + 30 soru öneririm.", Type: model.NotifyWarning, CreatedAt: now.AddDate(0, 0, -1)},
		{ID: uuid.NewString(), Title: "TYT netlerinde artış var!", Description: "Son deneme: 89 net (önceki: 81 net). Matematik ve Türkçe'de çok iyi gidiyorsun.", Type: model.NotifyMotivation, CreatedAt: now.AddDate(0, 0, -1).Add(-time.Minute)},
		{ID: uuid.NewString(), Title: "AYT Fizik'te Modern Fizik eksik", Description: "6 eksik konu var. Haftaya deneme için bu konuları tamamlamalısın.", Type: model.NotifyInfo, CreatedAt: now.AddDate(0, 0, -2)},
		{ID: uuid.NewString(), Title: "Bu hafta 1545 dakika çalıştın!", Description: "Bu hafta toplam 25 saat 45 dakika çalışma yaptın. Harika bir tempo!", Type: model.NotifyMotivation, CreatedAt: now.AddDate(0, 0, -3), Read: true},
	}
}

// Defaults is the record set written on first login.
func Defaults(now time.Time) model.Defaults {
	return model.Defaults{
		Goals:         Goals(),
		Topics:        Topics(),
		Notifications: Notifications(now),
		Widgets:       DefaultWidgets(),
	}
}

type entryRecipe struct {
	daysAgo   int
	lesson    string
	studyType model.StudyType
	minutes   int
	questions int
	subTopic  string
	notes     string
	slot      model.TimeSlot
	tyt, ayt  float64
}

var sampleEntries = []entryRecipe{
	{0, "Matematik", model.StudyQuestions, 120, 50, "Fonksiyonlar", "Güzel gitti, hız kazandım", model.SlotMorning, 0, 0},
	{0, "AYT Fizik", model.StudyTopic, 90, 25, "Elektrik ve Manyetizma", "", model.SlotNoon, 0, 0},
	{0, "Türkçe", model.StudyQuestions, 60, 30, "Paragraf", "", model.SlotEvening, 0, 0},
	{1, "Matematik", model.StudyTYTExam, 165, 120, "", "TYT Deneme 15 - İyi geçti", model.SlotMorning, 89, 0},
	{1, "AYT Kimya", model.StudyQuestions, 75, 20, "Organik Kimya", "", model.SlotEvening, 0, 0},
	{2, "Tarih", model.StudyTopic, 45, 15, "Osmanlı Tarihi", "Okuldan sonra çok yorgundum", model.SlotEvening, 0, 0},
	{2, "Coğrafya", model.StudyReview, 40, 20, "İklim", "", model.SlotEvening, 0, 0},
	{3, "AYT Matematik", model.StudyQuestions, 100, 35, "Türev", "Zorlandığım sorular için video izledim", model.SlotNoon, 0, 0},
	{3, "Fizik", model.StudyQuestions, 80, 28, "Kuvvet ve Hareket", "", model.SlotEvening, 0, 0},
	{3, "Biyoloji", model.StudyTopic, 60, 18, "Genetik", "", model.SlotEvening, 0, 0},
	{4, "Türkçe", model.StudyQuestions, 70, 35, "Anlatım Bozuklukları", "", model.SlotMorning, 0, 0},
	{4, "Matematik", model.StudyQuestions, 110, 45, "Geometri", "", model.SlotNoon, 0, 0},
	{4, "AYT Fizik", model.StudyTopic, 95, 30, "Modern Fizik", "Atom fiziği çok karışık, tekrar lazım", model.SlotEvening, 0, 0},
	{4, "Kimya", model.StudyReview, 50, 22, "", "", model.SlotEvening, 0, 0},
	{5, "AYT Matematik", model.StudyAYTExam, 180, 80, "", "AYT Sayısal Deneme 8 - Matematik iyiydi", model.SlotMorning, 0, 62},
	{5, "Felsefe", model.StudyQuestions, 55, 18, "Bilgi Felsefesi", "", model.SlotEvening, 0, 0},
	{6, "Matematik", model.StudyTopic, 85, 32, "Permütasyon - Kombinasyon", "Yeni konu, güzel anladım", model.SlotMorning, 0, 0},
	{6, "AYT Biyoloji", model.StudyQuestions, 70, 24, "Ekosistem", "", model.SlotNoon, 0, 0},
	{6, "Türkçe", model.StudyQuestions, 65, 30, "Söz Sanatları", "", model.SlotEvening, 0, 0},
	{6, "AYT Kimya", model.StudyReview, 45, 15, "Asit-Baz", "", model.SlotEvening, 0, 0},
}

type examRecipe struct {
	daysAgo    int
	title      string
	examType   model.ExamType
	duration   int
	difficulty model.Difficulty
	nets       []model.ExamDetail
}

func net(lessonName string, value float64) model.ExamDetail {
	return model.ExamDetail{Lesson: lessonName, Net: value}
}

var sampleExams = []examRecipe{
	{1, "TYT Deneme 15", model.ExamTYT, 165, model.DifficultyMedium, []model.ExamDetail{net("Türkçe", 35), net("Matematik", 31), net("Fizik", 6), net("Kimya", 6), net("Biyoloji", 5), net("Tarih", 4), net("Coğrafya", 3), net("Felsefe", 4), net("Din Kültürü", 4)}},
	{5, "AYT Sayısal 8", model.ExamAYT, 180, model.DifficultyMedium, []model.ExamDetail{net("AYT Matematik", 34), net("AYT Fizik", 12), net("AYT Kimya", 11), net("AYT Biyoloji", 10)}},
	{8, "TYT Deneme 14", model.ExamTYT, 165, model.DifficultyEasy, []model.ExamDetail{net("Türkçe", 32), net("Matematik", 28), net("Fizik", 5), net("Kimya", 6), net("Biyoloji", 4), net("Tarih", 4), net("Coğrafya", 3), net("Felsefe", 4), net("Din Kültürü", 3)}},
	{12, "AYT Sayısal 7", model.ExamAYT, 180, model.DifficultyHard, []model.ExamDetail{net("AYT Matematik", 30), net("AYT Fizik", 10), net("AYT Kimya", 9), net("AYT Biyoloji", 8)}},
	{15, "TYT Deneme 13", model.ExamTYT, 165, model.DifficultyMedium, []model.ExamDetail{net("Türkçe", 30), net("Matematik", 26), net("Fizik", 4), net("Kimya", 5), net("Biyoloji", 4), net("Tarih", 3), net("Coğrafya", 3), net("Felsefe", 3), net("Din Kültürü", 3)}},
}

// Sample returns a realistic week of placeholder data ending on today, newest first.
func Sample(today time.Time) model.Snapshot {
	snap := model.Snapshot{
		StudyEntries: make([]model.StudyEntry, 0, len(sampleEntries)),
		MockExams:    make([]model.MockExam, 0, len(sampleExams)),
		Goals:        Goals(),
		Topics:       Topics(),
		Widgets:      DefaultWidgets(),
	}
	for _, s := range sampleEntries {
		e := model.StudyEntry{
			ID:            uuid.NewString(),
			Date:          model.DateKey(today.AddDate(0, 0, -s.daysAgo)),
			Lesson:        s.lesson,
			SubTopic:      s.subTopic,
			Minutes:       s.minutes,
			QuestionCount: s.questions,
			StudyType:     s.studyType,
			TimeSlot:      s.slot,
			Notes:         s.notes,
		}
		if s.tyt > 0 || s.ayt > 0 {
			e.Net = &model.EntryNet{}
			if s.tyt > 0 {
				v := s.tyt
				e.Net.TYT = &v
			}
			if s.ayt > 0 {
				v := s.ayt
				e.Net.AYT = &v
			}
		}
		snap.StudyEntries = append(snap.StudyEntries, e)
	}
	for _, s := range sampleExams {
		summary := make([]model.ExamDetail, len(s.nets))
		copy(summary, s.nets)
		snap.MockExams = append(snap.MockExams, model.MockExam{
			ID:         uuid.NewString(),
			Title:      s.title,
			Date:       model.DateKey(today.AddDate(0, 0, -s.daysAgo)),
			ExamType:   s.examType,
			Duration:   s.duration,
			Difficulty: s.difficulty,
			Summary:    summary,
		})
	}
	return snap
}
