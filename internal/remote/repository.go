// Package remote is the per-user record store shared across devices.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/yks/internal/model"
)

// List limits, newest first.
const (
	StudyEntryLimit   = 100
	MockExamLimit     = 30
	NotificationLimit = 50
)

// ErrNotFound is returned when an update targets a record the user does not own.
var ErrNotFound = errors.New("record not found")

// Repository is the remote record store.
type Repository interface {
	ListStudyEntries(ctx context.Context, userID string, limit int) ([]model.StudyEntry, error)
	AddStudyEntry(ctx context.Context, userID string, entry model.StudyEntry) (string, error)
	ListMockExams(ctx context.Context, userID string, limit int) ([]model.MockExam, error)
	AddMockExam(ctx context.Context, userID string, exam model.MockExam) (string, error)
	ListGoals(ctx context.Context, userID string) ([]model.Goal, error)
	UpdateGoalProgress(ctx context.Context, userID, goalID string, current float64) error
	ListTopics(ctx context.Context, userID string) ([]model.TopicProgress, error)
	UpsertTopic(ctx context.Context, userID string, topic model.TopicProgress) error
	ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id string) error
	ListWidgets(ctx context.Context, userID string) ([]model.WidgetConfig, error)
	SaveWidgets(ctx context.Context, userID string, widgets []model.WidgetConfig) error
	// GetProfile returns nil without error when the user has no profile row.
	GetProfile(ctx context.Context, userID string) (*model.StudentProfile, error)
	// UpdateProfile writes the name, field and target exam, creating the row if needed.
	UpdateProfile(ctx context.Context, userID string, profile model.StudentProfile) (model.StudentProfile, error)
	// SeedDefaults writes first-login records unless the user already has goals.
	SeedDefaults(ctx context.Context, userID string, defaults model.Defaults) (bool, error)
}

// ParseError describes a stored row that cannot be turned into a record.
type ParseError struct {
	Table  string
	ID     string
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s row %s: %s %s", e.Table, e.ID, e.Field, e.Reason)
}

// PartialError is returned next to the records that did parse.
type PartialError struct {
	Errs []error
}

func (e *PartialError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("skipped %d rows: %s", len(e.Errs), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual row errors to errors.As.
func (e *PartialError) Unwrap() []error {
	return e.Errs
}

func parseRows[R any, T any](rows []R, parse func(R) (T, error)) ([]T, error) {
	out := make([]T, 0, len(rows))
	var errs []error
	for _, row := range rows {
		v, err := parse(row)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, v)
	}
	if len(errs) > 0 {
		return out, &PartialError{Errs: errs}
	}
	return out, nil
}
