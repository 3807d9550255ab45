// Package model defines shared data structures.
package model

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar-date format used for every record date.
const DateLayout = "2006-01-02"

// DateKey formats t as a calendar date in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a calendar date. Timestamps are truncated to their date part.
func ParseDate(value string) (time.Time, error) {
	if len(value) > len(DateLayout) && value[len(DateLayout)] == 'T' {
		value = value[:len(DateLayout)]
	}
	parsed, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return parsed, nil
}

// StudyType classifies a study session.
type StudyType string

// Study types.
const (
	StudyTYTExam     StudyType = "tyt-deneme"
	StudyAYTExam     StudyType = "ayt-deneme"
	StudyLessonExam  StudyType = "ders-deneme"
	StudyQuestions   StudyType = "soru-cozumu"
	StudyTopic       StudyType = "konu-calismasi"
	StudyReview      StudyType = "tekrar"
	DefaultStudyType           = StudyTopic
)

// StudyTypes lists every known study type.
var StudyTypes = []StudyType{StudyTYTExam, StudyAYTExam, StudyLessonExam, StudyQuestions, StudyTopic, StudyReview}

// Valid reports whether t is a known study type.
func (t StudyType) Valid() bool {
	for _, known := range StudyTypes {
		if t == known {
			return true
		}
	}
	return false
}

// TimeSlot is the part of day a session took place in.
type TimeSlot string

// Time slots.
const (
	SlotMorning TimeSlot = "sabah"
	SlotNoon    TimeSlot = "öğlen"
	SlotEvening TimeSlot = "akşam"
)

// Valid reports whether s is a known time slot.
func (s TimeSlot) Valid() bool {
	switch s {
	case SlotMorning, SlotNoon, SlotEvening:
		return true
	}
	return false
}

// EntryNet holds net scores attached to an entry that doubles as a post-exam log.
type EntryNet struct {
	TYT *float64 `json:"tyt,omitempty"`
	AYT *float64 `json:"ayt,omitempty"`
}

// StudyEntry is one logged study session.
type StudyEntry struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	Lesson        string    `json:"lesson"`
	SubTopic      string    `json:"subTopic,omitempty"`
	Minutes       int       `json:"minutes"`
	QuestionCount int       `json:"questionCount"`
	StudyType     StudyType `json:"studyType"`
	TimeSlot      TimeSlot  `json:"timeSlot"`
	Notes         string    `json:"notes,omitempty"`
	Net           *EntryNet `json:"net,omitempty"`
}

// Validate checks the creation-time invariants of an entry.
func (e StudyEntry) Validate() error {
	if e.Lesson == "" {
		return fmt.Errorf("lesson must not be empty")
	}
	if _, err := ParseDate(e.Date); err != nil {
		return err
	}
	if e.Minutes <= 0 {
		return fmt.Errorf("minutes must be > 0")
	}
	if e.QuestionCount < 0 {
		return fmt.Errorf("question count must be >= 0")
	}
	if !e.StudyType.Valid() {
		return fmt.Errorf("unknown study type %q", e.StudyType)
	}
	if !e.TimeSlot.Valid() {
		return fmt.Errorf("unknown time slot %q", e.TimeSlot)
	}
	return nil
}

// ExamType is the category of a mock exam.
type ExamType string

// Exam types.
const (
	ExamTYT    ExamType = "TYT"
	ExamAYT    ExamType = "AYT"
	ExamLesson ExamType = "Ders"
)

// Valid reports whether t is a known exam type.
func (t ExamType) Valid() bool {
	switch t {
	case ExamTYT, ExamAYT, ExamLesson:
		return true
	}
	return false
}

// Difficulty is the subjective difficulty of a mock exam.
type Difficulty string

// Difficulties.
const (
	DifficultyEasy   Difficulty = "kolay"
	DifficultyMedium Difficulty = "orta"
	DifficultyHard   Difficulty = "zor"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ExamDetail is one subject row of a mock exam.
type ExamDetail struct {
	Lesson  string  `json:"lesson"`
	Correct int     `json:"correct"`
	Wrong   int     `json:"wrong"`
	Empty   int     `json:"empty"`
	Net     float64 `json:"net"`
}

// Validate checks the answer counts against the subject's question count.
func (d ExamDetail) Validate(maxQuestions int) error {
	if d.Lesson == "" {
		return fmt.Errorf("lesson must not be empty")
	}
	if d.Correct < 0 || d.Wrong < 0 || d.Empty < 0 {
		return fmt.Errorf("%s: answer counts must be >= 0", d.Lesson)
	}
	if total := d.Correct + d.Wrong + d.Empty; total > maxQuestions {
		return fmt.Errorf("%s: %d answers exceed %d questions", d.Lesson, total, maxQuestions)
	}
	return nil
}

// MockExam is one mock-exam attempt.
type MockExam struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Date       string       `json:"date"`
	ExamType   ExamType     `json:"examType"`
	Duration   int          `json:"duration,omitempty"`
	Difficulty Difficulty   `json:"difficulty"`
	Summary    []ExamDetail `json:"summary"`
}

// TotalNet sums the net score of every subject.
func (e MockExam) TotalNet() float64 {
	var total float64
	for _, d := range e.Summary {
		total += d.Net
	}
	return total
}

// GoalPeriod is the reset period of a goal.
type GoalPeriod string

// Goal periods.
const (
	PeriodDaily  GoalPeriod = "günlük"
	PeriodWeekly GoalPeriod = "haftalık"
)

// Goal is a target/current pair.
type Goal struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Target  float64    `json:"target"`
	Current float64    `json:"current"`
	Unit    string     `json:"unit"`
	Period  GoalPeriod `json:"period"`
}

// Progress returns the completion percentage capped at 100.
func (g Goal) Progress() int {
	if g.Target <= 0 {
		return 0
	}
	pct := roundInt(g.Current / g.Target * 100)
	if pct > 100 {
		return 100
	}
	return pct
}

// TopicProgress tracks completed topics for one lesson.
type TopicProgress struct {
	ID            string   `json:"id"`
	Lesson        string   `json:"lesson"`
	Completed     int      `json:"completed"`
	Total         int      `json:"total"`
	MissingTopics []string `json:"missingTopics"`
}

// Completion returns the completed percentage.
func (t TopicProgress) Completion() int {
	if t.Total <= 0 {
		return 0
	}
	return roundInt(float64(t.Completed) / float64(t.Total) * 100)
}

// WidgetSize is the dashboard card size.
type WidgetSize string

// Widget sizes.
const (
	SizeMedium WidgetSize = "md"
	SizeLarge  WidgetSize = "lg"
)

// Valid reports whether s is a known widget size.
func (s WidgetSize) Valid() bool {
	return s == SizeMedium || s == SizeLarge
}

// WidgetConfig describes one dashboard card.
type WidgetConfig struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Component   string     `json:"component"`
	Visible     bool       `json:"visible"`
	Size        WidgetSize `json:"size"`
	Order       int        `json:"order"`
}

// StudyField is the AYT specialization track.
type StudyField string

// Study fields.
const (
	FieldQuantitative StudyField = "sayisal"
	FieldMixed        StudyField = "esit-agirlik"
	FieldVerbal       StudyField = "sozel"
)

// Valid reports whether f is a known study field.
func (f StudyField) Valid() bool {
	switch f {
	case FieldQuantitative, FieldMixed, FieldVerbal:
		return true
	}
	return false
}

// TargetExam returns the AYT score type chosen by the field.
func (f StudyField) TargetExam() string {
	switch f {
	case FieldQuantitative:
		return "AYT-SAY"
	case FieldMixed:
		return "AYT-EA"
	case FieldVerbal:
		return "AYT-SOZ"
	}
	return ""
}

// StudentProfile is the per-user identity and preference record.
type StudentProfile struct {
	ID         string     `json:"id"`
	Email      string     `json:"email,omitempty"`
	FullName   string     `json:"fullName,omitempty"`
	TargetExam string     `json:"targetExam,omitempty"`
	StudyField StudyField `json:"studyField,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// NotificationType classifies a reminder.
type NotificationType string

// Notification types.
const (
	NotifyWarning    NotificationType = "uyarı"
	NotifyInfo       NotificationType = "bilgi"
	NotifyMotivation NotificationType = "motivasyon"
)

// Notification is a dashboard reminder.
type Notification struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        NotificationType `json:"type"`
	CreatedAt   time.Time        `json:"createdAt"`
	Read        bool             `json:"read,omitempty"`
}

// Snapshot is the locally persisted slice of user state.
type Snapshot struct {
	UserID       string          `json:"userId,omitempty"`
	StudyEntries []StudyEntry    `json:"studyEntries"`
	MockExams    []MockExam      `json:"mockExams"`
	Goals        []Goal          `json:"goals"`
	Topics       []TopicProgress `json:"topics"`
	Widgets      []WidgetConfig  `json:"widgets"`
	Profile      *StudentProfile `json:"profile,omitempty"`
}

func roundInt(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Defaults is the record set written for a user on first login.
type Defaults struct {
	Goals         []Goal
	Topics        []TopicProgress
	Notifications []Notification
	Widgets       []WidgetConfig
}
