package remote

import "time"

// StudyEntryRow is the stored form of a study entry.
type StudyEntryRow struct {
	ID            string  `gorm:"primaryKey;size:64"`
	UserID        string  `gorm:"size:64;not null;index"`
	Date          *string `gorm:"size:32"`
	Lesson        *string `gorm:"size:64"`
	SubTopic      *string
	Minutes       *int
	QuestionCount *int
	StudyType     *string `gorm:"size:32"`
	TimeSlot      *string `gorm:"size:16"`
	Notes         *string
	TYTNet        *float64 `gorm:"column:tyt_net"`
	AYTNet        *float64 `gorm:"column:ayt_net"`
	CreatedAt     time.Time
}

// TableName sets the table name.
func (StudyEntryRow) TableName() string { return "study_entries" }

// MockExamRow is the stored header of a mock exam.
type MockExamRow struct {
	ID         string  `gorm:"primaryKey;size:64"`
	UserID     string  `gorm:"size:64;not null;index"`
	Title      *string `gorm:"size:128"`
	Date       *string `gorm:"size:32"`
	ExamType   *string `gorm:"size:16"`
	Duration   *int
	Difficulty *string `gorm:"size:16"`
	CreatedAt  time.Time
	Details    []MockExamDetailRow `gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name.
func (MockExamRow) TableName() string { return "mock_exams" }

// MockExamDetailRow is one subject row of a stored mock exam.
type MockExamDetailRow struct {
	ID      uint    `gorm:"primaryKey"`
	ExamID  string  `gorm:"size:64;not null;index"`
	Lesson  *string `gorm:"size:64"`
	Correct *int
	Wrong   *int
	Empty   *int
	Net     *float64
}

// TableName sets the table name.
func (MockExamDetailRow) TableName() string { return "mock_exam_details" }

// GoalRow is a stored goal.
type GoalRow struct {
	UserID    string  `gorm:"primaryKey;size:64"`
	ID        string  `gorm:"primaryKey;size:64"`
	Title     *string `gorm:"size:128"`
	Target    *float64
	Current   *float64
	Unit      *string `gorm:"size:32"`
	Period    *string `gorm:"size:16"`
	CreatedAt time.Time
}

// TableName sets the table name.
func (GoalRow) TableName() string { return "goals" }

// TopicRow is stored topic progress.
type TopicRow struct {
	UserID        string  `gorm:"primaryKey;size:64"`
	ID            string  `gorm:"primaryKey;size:64"`
	Lesson        *string `gorm:"size:64"`
	Completed     *int
	Total         *int
	MissingTopics []string `gorm:"serializer:json"`
	CreatedAt     time.Time
}

// TableName sets the table name.
func (TopicRow) TableName() string { return "topic_progress" }

// NotificationRow is a stored notification.
type NotificationRow struct {
	UserID      string  `gorm:"primaryKey;size:64"`
	ID          string  `gorm:"primaryKey;size:64"`
	Title       *string `gorm:"size:256"`
	Description *string
	Type        *string `gorm:"size:16"`
	Read        *bool
	CreatedAt   *time.Time `gorm:"index"`
}

// TableName sets the table name.
func (NotificationRow) TableName() string { return "notifications" }

// WidgetRow is a stored widget configuration.
type WidgetRow struct {
	UserID       string  `gorm:"primaryKey;size:64"`
	ID           string  `gorm:"primaryKey;size:64"`
	Title        *string `gorm:"size:128"`
	Description  *string
	Component    *string `gorm:"size:64"`
	Visible      *bool
	Size         *string `gorm:"size:8"`
	DisplayOrder *int
}

// TableName sets the table name.
func (WidgetRow) TableName() string { return "widget_configs" }

// ProfileRow is a stored student profile.
type ProfileRow struct {
	ID         string  `gorm:"primaryKey;size:64"`
	Email      *string `gorm:"size:256"`
	FullName   *string `gorm:"size:128"`
	TargetExam *string `gorm:"size:16"`
	StudyField *string `gorm:"size:16"`
	UpdatedAt  *time.Time
}

// TableName sets the table name.
func (ProfileRow) TableName() string { return "profiles" }

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func boolPtr(v bool) *bool { return &v }

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
