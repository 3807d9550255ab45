package remote

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/yks/internal/model"
)

type memoryUser struct {
	entries       []StudyEntryRow
	exams         []MockExamRow
	goals         []GoalRow
	topics        []TopicRow
	notifications []NotificationRow
	widgets       []WidgetRow
	profile       *ProfileRow
}

// Memory is an in-process Repository.
type Memory struct {
	mu    sync.RWMutex
	users map[string]*memoryUser
	now   func() time.Time
}

// NewMemory returns an empty in-process repository.
func NewMemory() *Memory {
	return &Memory{
		users: map[string]*memoryUser{},
		now:   time.Now,
	}
}

func (m *Memory) user(userID string) *memoryUser {
	u, ok := m.users[userID]
	if !ok {
		u = &memoryUser{}
		m.users[userID] = u
	}
	return u
}

func (m *Memory) lookup(userID string) *memoryUser {
	if u, ok := m.users[userID]; ok {
		return u
	}
	return &memoryUser{}
}

// newestFirst orders rows by date descending; later inserts win ties.
func newestFirst[R any](rows []R, date func(R) string, limit int) []R {
	out := make([]R, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = r
	}
	sort.SliceStable(out, func(i, j int) bool { return date(out[i]) > date(out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ListStudyEntries returns the newest entries of the user.
func (m *Memory) ListStudyEntries(_ context.Context, userID string, limit int) ([]model.StudyEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := newestFirst(m.lookup(userID).entries, func(r StudyEntryRow) string { return deref(r.Date, "") }, limit)
	return parseRows(rows, ParseStudyEntry)
}

// AddStudyEntry stores an entry and returns its id.
func (m *Memory) AddStudyEntry(_ context.Context, userID string, entry model.StudyEntry) (string, error) {
	row := studyEntryRow(userID, entry)
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	row.CreatedAt = m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.user(userID)
	u.entries = append(u.entries, row)
	return row.ID, nil
}

// ListMockExams returns the newest exams of the user with their details.
func (m *Memory) ListMockExams(_ context.Context, userID string, limit int) ([]model.MockExam, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := newestFirst(m.lookup(userID).exams, func(r MockExamRow) string { return deref(r.Date, "") }, limit)
	return parseRows(rows, ParseMockExam)
}

// AddMockExam stores an exam with its details and returns its id.
func (m *Memory) AddMockExam(_ context.Context, userID string, exam model.MockExam) (string, error) {
	row := mockExamRow(userID, exam)
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	for i := range row.Details {
		row.Details[i].ID = uint(i + 1)
		row.Details[i].ExamID = row.ID
	}
	row.CreatedAt = m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.user(userID)
	u.exams = append(u.exams, row)
	return row.ID, nil
}

// ListGoals returns the goals of the user in insertion order.
func (m *Memory) ListGoals(_ context.Context, userID string) ([]model.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return parseRows(m.lookup(userID).goals, ParseGoal)
}

// UpdateGoalProgress sets the current value of a goal.
func (m *Memory) UpdateGoalProgress(_ context.Context, userID, goalID string, current float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.lookup(userID)
	for i := range u.goals {
		if u.goals[i].ID == goalID {
			u.goals[i].Current = floatPtr(current)
			return nil
		}
	}
	return ErrNotFound
}

// ListTopics returns the topic progress rows of the user.
func (m *Memory) ListTopics(_ context.Context, userID string) ([]model.TopicProgress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return parseRows(m.lookup(userID).topics, ParseTopic)
}

// UpsertTopic inserts or replaces a topic progress row.
func (m *Memory) UpsertTopic(_ context.Context, userID string, topic model.TopicProgress) error {
	row := topicRow(userID, topic)
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.user(userID)
	for i := range u.topics {
		if u.topics[i].ID == row.ID {
			row.CreatedAt = u.topics[i].CreatedAt
			u.topics[i] = row
			return nil
		}
	}
	row.CreatedAt = m.now()
	u.topics = append(u.topics, row)
	return nil
}

// ListNotifications returns the newest notifications of the user.
func (m *Memory) ListNotifications(_ context.Context, userID string, limit int) ([]model.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := make([]NotificationRow, len(m.lookup(userID).notifications))
	copy(rows, m.lookup(userID).notifications)
	sort.SliceStable(rows, func(i, j int) bool {
		return deref(rows[i].CreatedAt, time.Time{}).After(deref(rows[j].CreatedAt, time.Time{}))
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return parseRows(rows, ParseNotification)
}

// MarkNotificationRead flags a notification as read.
func (m *Memory) MarkNotificationRead(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.lookup(userID)
	for i := range u.notifications {
		if u.notifications[i].ID == id {
			u.notifications[i].Read = boolPtr(true)
			return nil
		}
	}
	return ErrNotFound
}

// ListWidgets returns the widget configs of the user by display order.
func (m *Memory) ListWidgets(_ context.Context, userID string) ([]model.WidgetConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := make([]WidgetRow, len(m.lookup(userID).widgets))
	copy(rows, m.lookup(userID).widgets)
	sort.SliceStable(rows, func(i, j int) bool {
		return deref(rows[i].DisplayOrder, 0) < deref(rows[j].DisplayOrder, 0)
	})
	return parseRows(rows, ParseWidget)
}

// SaveWidgets upserts every widget with its index as display order.
func (m *Memory) SaveWidgets(_ context.Context, userID string, widgets []model.WidgetConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.user(userID)
	for i, w := range widgets {
		row := widgetRow(userID, w, i)
		replaced := false
		for j := range u.widgets {
			if u.widgets[j].ID == row.ID {
				u.widgets[j] = row
				replaced = true
				break
			}
		}
		if !replaced {
			u.widgets = append(u.widgets, row)
		}
	}
	return nil
}

// GetProfile returns the profile of the user, or nil.
func (m *Memory) GetProfile(_ context.Context, userID string) (*model.StudentProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	row := m.lookup(userID).profile
	if row == nil {
		return nil, nil
	}
	profile, err := ParseProfile(*row)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile writes the editable profile fields and returns the stored row.
func (m *Memory) UpdateProfile(_ context.Context, userID string, profile model.StudentProfile) (model.StudentProfile, error) {
	row := profileRow(userID, profile, m.now().UTC())
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.user(userID)
	if u.profile != nil {
		row.Email = u.profile.Email
	}
	u.profile = &row
	return ParseProfile(row)
}

// SeedDefaults writes the first-login records unless the user has goals.
func (m *Memory) SeedDefaults(_ context.Context, userID string, defaults model.Defaults) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.user(userID)
	if len(u.goals) > 0 {
		return false, nil
	}
	now := m.now()
	for _, g := range defaults.Goals {
		row := goalRow(userID, g)
		row.CreatedAt = now
		u.goals = append(u.goals, row)
	}
	for _, t := range defaults.Topics {
		row := topicRow(userID, t)
		row.CreatedAt = now
		u.topics = append(u.topics, row)
	}
	for _, n := range defaults.Notifications {
		row := notificationRow(userID, n)
		if row.CreatedAt == nil {
			created := now
			row.CreatedAt = &created
		}
		u.notifications = append(u.notifications, row)
	}
	for i, w := range defaults.Widgets {
		u.widgets = append(u.widgets, widgetRow(userID, w, i))
	}
	return true, nil
}
