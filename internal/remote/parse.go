package remote

import (
	"strings"
	"time"

	"github.com/verte-zerg/yks/internal/lesson"
	"github.com/verte-zerg/yks/internal/model"
)

const defaultExamTitle = "Deneme"

func parseDateField(table, id string, value *string) (string, error) {
	raw := strings.TrimSpace(deref(value, ""))
	if raw == "" {
		return "", &ParseError{Table: table, ID: id, Field: "date", Reason: "is missing"}
	}
	t, err := model.ParseDate(raw)
	if err != nil {
		return "", &ParseError{Table: table, ID: id, Field: "date", Reason: "is not a date: " + raw}
	}
	return model.DateKey(t), nil
}

func parseLessonField(table, id string, value *string) (string, error) {
	raw := strings.TrimSpace(deref(value, ""))
	if raw == "" {
		return "", &ParseError{Table: table, ID: id, Field: "lesson", Reason: "is missing"}
	}
	name, _ := lesson.Canonical(raw)
	return name, nil
}

// ParseStudyEntry converts a stored row, canonicalizing the lesson name.
func ParseStudyEntry(row StudyEntryRow) (model.StudyEntry, error) {
	date, err := parseDateField("study_entries", row.ID, row.Date)
	if err != nil {
		return model.StudyEntry{}, err
	}
	name, err := parseLessonField("study_entries", row.ID, row.Lesson)
	if err != nil {
		return model.StudyEntry{}, err
	}
	entry := model.StudyEntry{
		ID:            row.ID,
		Date:          date,
		Lesson:        name,
		SubTopic:      deref(row.SubTopic, ""),
		Minutes:       deref(row.Minutes, 0),
		QuestionCount: deref(row.QuestionCount, 0),
		StudyType:     model.StudyType(deref(row.StudyType, "")),
		TimeSlot:      model.TimeSlot(deref(row.TimeSlot, "")),
		Notes:         deref(row.Notes, ""),
	}
	if entry.StudyType == "" {
		entry.StudyType = model.DefaultStudyType
	}
	if entry.TimeSlot == "" {
		entry.TimeSlot = model.SlotMorning
	}
	if row.TYTNet != nil || row.AYTNet != nil {
		entry.Net = &model.EntryNet{TYT: copyFloat(row.TYTNet), AYT: copyFloat(row.AYTNet)}
	}
	return entry, nil
}

// ParseMockExam converts a stored header and its details.
func ParseMockExam(row MockExamRow) (model.MockExam, error) {
	date, err := parseDateField("mock_exams", row.ID, row.Date)
	if err != nil {
		return model.MockExam{}, err
	}
	exam := model.MockExam{
		ID:         row.ID,
		Title:      deref(row.Title, ""),
		Date:       date,
		ExamType:   model.ExamType(deref(row.ExamType, "")),
		Duration:   deref(row.Duration, 0),
		Difficulty: model.Difficulty(deref(row.Difficulty, "")),
		Summary:    make([]model.ExamDetail, 0, len(row.Details)),
	}
	if exam.Title == "" {
		exam.Title = defaultExamTitle
	}
	if exam.ExamType == "" {
		exam.ExamType = model.ExamTYT
	}
	if exam.Difficulty == "" {
		exam.Difficulty = model.DifficultyMedium
	}
	for _, d := range row.Details {
		name, err := parseLessonField("mock_exam_details", row.ID, d.Lesson)
		if err != nil {
			return model.MockExam{}, err
		}
		exam.Summary = append(exam.Summary, model.ExamDetail{
			Lesson:  name,
			Correct: deref(d.Correct, 0),
			Wrong:   deref(d.Wrong, 0),
			Empty:   deref(d.Empty, 0),
			Net:     deref(d.Net, 0),
		})
	}
	return exam, nil
}

// ParseGoal converts a stored goal.
func ParseGoal(row GoalRow) (model.Goal, error) {
	goal := model.Goal{
		ID:      row.ID,
		Title:   deref(row.Title, ""),
		Target:  deref(row.Target, 0),
		Current: deref(row.Current, 0),
		Unit:    deref(row.Unit, ""),
		Period:  model.GoalPeriod(deref(row.Period, "")),
	}
	if goal.Period == "" {
		goal.Period = model.PeriodDaily
	}
	return goal, nil
}

// ParseTopic converts stored topic progress.
func ParseTopic(row TopicRow) (model.TopicProgress, error) {
	name, err := parseLessonField("topic_progress", row.ID, row.Lesson)
	if err != nil {
		return model.TopicProgress{}, err
	}
	missing := make([]string, len(row.MissingTopics))
	copy(missing, row.MissingTopics)
	return model.TopicProgress{
		ID:            row.ID,
		Lesson:        name,
		Completed:     deref(row.Completed, 0),
		Total:         deref(row.Total, 0),
		MissingTopics: missing,
	}, nil
}

// ParseWidget converts a stored widget configuration.
func ParseWidget(row WidgetRow) (model.WidgetConfig, error) {
	component := strings.TrimSpace(deref(row.Component, ""))
	if component == "" {
		return model.WidgetConfig{}, &ParseError{Table: "widget_configs", ID: row.ID, Field: "component", Reason: "is missing"}
	}
	w := model.WidgetConfig{
		ID:          row.ID,
		Title:       deref(row.Title, ""),
		Description: deref(row.Description, ""),
		Component:   component,
		Visible:     deref(row.Visible, false),
		Size:        model.WidgetSize(deref(row.Size, "")),
		Order:       deref(row.DisplayOrder, 0),
	}
	if !w.Size.Valid() {
		w.Size = model.SizeMedium
	}
	return w, nil
}

// ParseProfile converts a stored profile.
func ParseProfile(row ProfileRow) (model.StudentProfile, error) {
	p := model.StudentProfile{
		ID:         row.ID,
		Email:      deref(row.Email, ""),
		FullName:   deref(row.FullName, ""),
		TargetExam: deref(row.TargetExam, ""),
		StudyField: model.StudyField(deref(row.StudyField, "")),
	}
	if row.UpdatedAt != nil {
		t := *row.UpdatedAt
		p.UpdatedAt = &t
	}
	return p, nil
}

// ParseNotification converts a stored notification.
func ParseNotification(row NotificationRow) (model.Notification, error) {
	n := model.Notification{
		ID:          row.ID,
		Title:       deref(row.Title, ""),
		Description: deref(row.Description, ""),
		Type:        model.NotificationType(deref(row.Type, "")),
		CreatedAt:   deref(row.CreatedAt, time.Time{}),
		Read:        deref(row.Read, false),
	}
	if n.Type == "" {
		n.Type = model.NotifyInfo
	}
	return n, nil
}

func studyEntryRow(userID string, e model.StudyEntry) StudyEntryRow {
	row := StudyEntryRow{
		ID:            e.ID,
		UserID:        userID,
		Date:          strPtr(e.Date),
		Lesson:        strPtr(e.Lesson),
		SubTopic:      strPtr(e.SubTopic),
		Minutes:       intPtr(e.Minutes),
		QuestionCount: intPtr(e.QuestionCount),
		StudyType:     strPtr(string(e.StudyType)),
		TimeSlot:      strPtr(string(e.TimeSlot)),
		Notes:         strPtr(e.Notes),
	}
	if e.Net != nil {
		row.TYTNet = copyFloat(e.Net.TYT)
		row.AYTNet = copyFloat(e.Net.AYT)
	}
	return row
}

func mockExamRow(userID string, exam model.MockExam) MockExamRow {
	row := MockExamRow{
		ID:         exam.ID,
		UserID:     userID,
		Title:      strPtr(exam.Title),
		Date:       strPtr(exam.Date),
		ExamType:   strPtr(string(exam.ExamType)),
		Duration:   intPtr(exam.Duration),
		Difficulty: strPtr(string(exam.Difficulty)),
	}
	for _, d := range exam.Summary {
		row.Details = append(row.Details, MockExamDetailRow{
			ExamID:  exam.ID,
			Lesson:  strPtr(d.Lesson),
			Correct: intPtr(d.Correct),
			Wrong:   intPtr(d.Wrong),
			Empty:   intPtr(d.Empty),
			Net:     floatPtr(d.Net),
		})
	}
	return row
}

func goalRow(userID string, g model.Goal) GoalRow {
	return GoalRow{
		UserID:  userID,
		ID:      g.ID,
		Title:   strPtr(g.Title),
		Target:  floatPtr(g.Target),
		Current: floatPtr(g.Current),
		Unit:    strPtr(g.Unit),
		Period:  strPtr(string(g.Period)),
	}
}

func topicRow(userID string, t model.TopicProgress) TopicRow {
	missing := make([]string, len(t.MissingTopics))
	copy(missing, t.MissingTopics)
	return TopicRow{
		UserID:        userID,
		ID:            t.ID,
		Lesson:        strPtr(t.Lesson),
		Completed:     intPtr(t.Completed),
		Total:         intPtr(t.Total),
		MissingTopics: missing,
	}
}

func notificationRow(userID string, n model.Notification) NotificationRow {
	row := NotificationRow{
		UserID:      userID,
		ID:          n.ID,
		Title:       strPtr(n.Title),
		Description: strPtr(n.Description),
		Type:        strPtr(string(n.Type)),
		Read:        boolPtr(n.Read),
	}
	if !n.CreatedAt.IsZero() {
		created := n.CreatedAt
		row.CreatedAt = &created
	}
	return row
}

func widgetRow(userID string, w model.WidgetConfig, order int) WidgetRow {
	return WidgetRow{
		UserID:       userID,
		ID:           w.ID,
		Title:        strPtr(w.Title),
		Description:  strPtr(w.Description),
		Component:    strPtr(w.Component),
		Visible:      boolPtr(w.Visible),
		Size:         strPtr(string(w.Size)),
		DisplayOrder: intPtr(order),
	}
}

func profileRow(userID string, p model.StudentProfile, now time.Time) ProfileRow {
	return ProfileRow{
		ID:         userID,
		Email:      strPtr(p.Email),
		FullName:   strPtr(p.FullName),
		TargetExam: strPtr(p.TargetExam),
		StudyField: strPtr(string(p.StudyField)),
		UpdatedAt:  &now,
	}
}
