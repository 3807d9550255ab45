// Package state is the single source of truth the dashboard and the CLI read from.
// It mirrors the remote tables into memory and into the local snapshot.
package state

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/yks/internal/lesson"
	"github.com/verte-zerg/yks/internal/model"
	"github.com/verte-zerg/yks/internal/remote"
	"github.com/verte-zerg/yks/internal/seed"
	"github.com/verte-zerg/yks/internal/stats"
)

// Local collection caps, newest first.
const (
	MaxStudyEntries = remote.StudyEntryLimit
	MaxMockExams    = remote.MockExamLimit
)

var (
	// ErrNoUser is returned by mutations before a user is selected.
	ErrNoUser = errors.New("no user selected")
	// ErrNotFound is returned for ids that are not in the local state.
	ErrNotFound = remote.ErrNotFound
)

// Persister stores the local snapshot.
type Persister interface {
	Save(ctx context.Context, snap model.Snapshot) error
}

// View is a deep copy of the current state.
type View struct {
	UserID        string
	Initialized   bool
	StudyEntries  []model.StudyEntry
	MockExams     []model.MockExam
	Goals         []model.Goal
	Topics        []model.TopicProgress
	Notifications []model.Notification
	Widgets       []model.WidgetConfig
	Profile       *model.StudentProfile
}

// Snapshot returns the persisted slice of the view.
func (v View) Snapshot() model.Snapshot {
	return model.Snapshot{
		UserID:       v.UserID,
		StudyEntries: v.StudyEntries,
		MockExams:    v.MockExams,
		Goals:        v.Goals,
		Topics:       v.Topics,
		Widgets:      v.Widgets,
		Profile:      v.Profile,
	}
}

// ProfileUpdate carries the editable profile fields. Nil fields keep their value.
type ProfileUpdate struct {
	FullName   *string
	StudyField *model.StudyField
}

// Option configures a Store.
type Option func(*Store)

// WithRepository enables write-through to a remote repository.
func WithRepository(repo remote.Repository) Option {
	return func(s *Store) { s.repo = repo }
}

// WithPersister saves the snapshot after every commit.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// collection flags the record sets that can still hold placeholder data.
type collection uint8

const (
	colEntries collection = 1 << iota
	colExams
	colGoals
	colTopics
	colNotifications

	colAll = colEntries | colExams | colGoals | colTopics | colNotifications
)

// Store holds the user's records. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	widgetMu  sync.Mutex // serializes layout edits across the remote write
	repo      remote.Repository
	persister Persister
	log       *zap.Logger
	now       func() time.Time

	userID        string
	initialized   bool
	placeholders  collection
	entries       []model.StudyEntry
	exams         []model.MockExam
	goals         []model.Goal
	topics        []model.TopicProgress
	notifications []model.Notification
	widgets       []model.WidgetConfig
	profile       *model.StudentProfile
}

// New returns a store showing placeholder data and no user.
func New(opts ...Option) *Store {
	s := &Store{log: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.loadPlaceholders()
	return s
}

func (s *Store) loadPlaceholders() {
	now := s.now()
	sample := seed.Sample(now)
	s.entries = sample.StudyEntries
	s.exams = sample.MockExams
	s.goals = sample.Goals
	s.topics = sample.Topics
	s.widgets = sample.Widgets
	s.notifications = seed.Notifications(now)
	s.profile = nil
	s.placeholders = colAll
}

// claimLocked drops the placeholder records of c before the first real write.
// Placeholder goals, topics and notifications match the first-login defaults and are kept.
func (s *Store) claimLocked(c collection) {
	if s.placeholders&c == 0 {
		return
	}
	s.placeholders &^= c
	switch c {
	case colEntries:
		s.entries = []model.StudyEntry{}
	case colExams:
		s.exams = []model.MockExam{}
	}
}

// Restore replaces the state with a persisted snapshot. The store stays uninitialized.
// Empty collections keep showing placeholders until Bootstrap.
func (s *Store) Restore(snap model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = snap.UserID
	s.initialized = false
	s.loadPlaceholders()
	if len(snap.StudyEntries) > 0 {
		s.entries = copyEntries(snap.StudyEntries)
		s.placeholders &^= colEntries
	}
	if len(snap.MockExams) > 0 {
		s.exams = copyExams(snap.MockExams)
		s.placeholders &^= colExams
	}
	if len(snap.Goals) > 0 {
		s.goals = slices.Clone(snap.Goals)
		s.placeholders &^= colGoals
	}
	if len(snap.Topics) > 0 {
		s.topics = copyTopics(snap.Topics)
		s.placeholders &^= colTopics
	}
	if len(snap.Widgets) > 0 {
		s.widgets = slices.Clone(snap.Widgets)
	}
	s.profile = copyProfile(snap.Profile)
}

// Offline reports whether the store has no remote repository.
func (s *Store) Offline() bool {
	return s.repo == nil
}

// View returns a deep copy of the state.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewLocked()
}

func (s *Store) viewLocked() View {
	return View{
		UserID:        s.userID,
		Initialized:   s.initialized,
		StudyEntries:  copyEntries(s.entries),
		MockExams:     copyExams(s.exams),
		Goals:         slices.Clone(s.goals),
		Topics:        copyTopics(s.topics),
		Notifications: slices.Clone(s.notifications),
		Widgets:       slices.Clone(s.widgets),
		Profile:       copyProfile(s.profile),
	}
}

// persistLocked saves the snapshot without placeholder records. Failures are logged, not returned.
func (s *Store) persistLocked(ctx context.Context) {
	if s.persister == nil {
		return
	}
	snap := s.viewLocked().Snapshot()
	if s.placeholders&colEntries != 0 {
		snap.StudyEntries = nil
	}
	if s.placeholders&colExams != 0 {
		snap.MockExams = nil
	}
	if s.placeholders&colGoals != 0 {
		snap.Goals = nil
	}
	if s.placeholders&colTopics != 0 {
		snap.Topics = nil
	}
	if err := s.persister.Save(ctx, snap); err != nil {
		s.log.Warn("failed to persist local snapshot", zap.Error(err))
	}
}

// SetUser selects the active user. Switching users drops the loaded records.
func (s *Store) SetUser(ctx context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if userID != "" && userID == s.userID {
		return
	}
	s.userID = userID
	s.initialized = false
	s.loadPlaceholders()
	s.persistLocked(ctx)
}

func (s *Store) currentUser() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.userID == "" {
		return "", ErrNoUser
	}
	return s.userID, nil
}

// commit applies fn if userID is still the active user, then persists.
func (s *Store) commit(ctx context.Context, userID string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		s.log.Warn("user changed during write, skipping local commit", zap.String("user", userID))
		return
	}
	fn()
	s.persistLocked(ctx)
}

type fetched struct {
	entries       []model.StudyEntry
	exams         []model.MockExam
	goals         []model.Goal
	topics        []model.TopicProgress
	notifications []model.Notification
	widgets       []model.WidgetConfig
	profile       *model.StudentProfile

	entriesOK, examsOK, goalsOK, topicsOK, notificationsOK, widgetsOK, profileOK bool
}

// Bootstrap loads every collection of the active user from the repository.
// Failed collections keep their restored value, placeholder records are
// dropped and the store is marked initialized in every case. The returned
// error joins the individual failures. Without a repository the placeholder
// study entries and mock exams are cleared.
func (s *Store) Bootstrap(ctx context.Context) error {
	s.mu.RLock()
	userID, initialized := s.userID, s.initialized
	s.mu.RUnlock()
	if userID == "" || initialized {
		return nil
	}
	if s.repo == nil {
		s.commit(ctx, userID, func() {
			s.claimLocked(colEntries)
			s.claimLocked(colExams)
			s.placeholders = 0
			s.initialized = true
		})
		return nil
	}

	var errMu sync.Mutex
	var failures []error
	record := func(what string, err error) bool {
		if err == nil {
			return true
		}
		s.log.Warn("failed to load "+what, zap.String("user", userID), zap.Error(err))
		errMu.Lock()
		failures = append(failures, fmt.Errorf("%s: %w", what, err))
		errMu.Unlock()
		var partial *remote.PartialError
		return errors.As(err, &partial)
	}

	if _, err := s.repo.SeedDefaults(ctx, userID, seed.Defaults(s.now())); err != nil {
		record("defaults", err)
	}

	var res fetched
	var g errgroup.Group
	g.Go(func() error {
		v, err := s.repo.ListStudyEntries(ctx, userID, remote.StudyEntryLimit)
		res.entries, res.entriesOK = v, record("study entries", err)
		return nil
	})
	g.Go(func() error {
		v, err := s.repo.ListMockExams(ctx, userID, remote.MockExamLimit)
		res.exams, res.examsOK = v, record("mock exams", err)
		return nil
	})
	g.Go(func() error {
		v, err := s.repo.ListGoals(ctx, userID)
		res.goals, res.goalsOK = v, record("goals", err)
		return nil
	})
	g.Go(func() error {
		v, err := s.repo.ListTopics(ctx, userID)
		res.topics, res.topicsOK = v, record("topics", err)
		return nil
	})
	g.Go(func() error {
		v, err := s.repo.ListNotifications(ctx, userID, remote.NotificationLimit)
		res.notifications, res.notificationsOK = v, record("notifications", err)
		return nil
	})
	g.Go(func() error {
		v, err := s.repo.ListWidgets(ctx, userID)
		res.widgets, res.widgetsOK = v, record("widgets", err)
		return nil
	})
	g.Go(func() error {
		v, err := s.repo.GetProfile(ctx, userID)
		res.profile, res.profileOK = v, record("profile", err)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.commit(ctx, userID, func() {
		if res.entriesOK || s.placeholders&colEntries != 0 {
			s.entries = nonNil(res.entries)
		}
		if res.examsOK || s.placeholders&colExams != 0 {
			s.exams = nonNil(res.exams)
		}
		if res.goalsOK || s.placeholders&colGoals != 0 {
			s.goals = nonNil(res.goals)
		}
		if res.topicsOK || s.placeholders&colTopics != 0 {
			s.topics = nonNil(res.topics)
		}
		if res.notificationsOK || s.placeholders&colNotifications != 0 {
			s.notifications = nonNil(res.notifications)
		}
		s.placeholders = 0
		if res.widgetsOK {
			s.widgets = res.widgets
		}
		if len(s.widgets) == 0 {
			s.widgets = seed.DefaultWidgets()
		}
		if res.profileOK {
			s.profile = res.profile
		}
		s.initialized = true
	})
	s.log.Info("state loaded", zap.String("user", userID), zap.Int("failures", len(failures)))
	return errors.Join(failures...)
}

// AddStudyEntry validates and stores a new entry, newest first.
func (s *Store) AddStudyEntry(ctx context.Context, entry model.StudyEntry) (model.StudyEntry, error) {
	userID, err := s.currentUser()
	if err != nil {
		return model.StudyEntry{}, err
	}
	entry.Lesson, _ = lesson.Canonical(entry.Lesson)
	if entry.StudyType == "" {
		entry.StudyType = model.DefaultStudyType
	}
	if entry.TimeSlot == "" {
		entry.TimeSlot = model.SlotMorning
	}
	if err := entry.Validate(); err != nil {
		return model.StudyEntry{}, fmt.Errorf("invalid study entry: %w", err)
	}
	if date, err := model.ParseDate(entry.Date); err == nil {
		entry.Date = model.DateKey(date)
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if s.repo != nil {
		id, err := s.repo.AddStudyEntry(ctx, userID, entry)
		if err != nil {
			s.log.Error("failed to add study entry", zap.Error(err))
			return model.StudyEntry{}, err
		}
		entry.ID = id
	}
	stored := copyEntries([]model.StudyEntry{entry})[0]
	s.commit(ctx, userID, func() {
		s.claimLocked(colEntries)
		s.entries = prepend(s.entries, stored, MaxStudyEntries)
	})
	return entry, nil
}

// AddMockExam validates an exam, computes each subject net and stores it.
func (s *Store) AddMockExam(ctx context.Context, exam model.MockExam) (model.MockExam, error) {
	userID, err := s.currentUser()
	if err != nil {
		return model.MockExam{}, err
	}
	exam, err = normalizeExam(exam)
	if err != nil {
		return model.MockExam{}, err
	}
	if s.repo != nil {
		id, err := s.repo.AddMockExam(ctx, userID, exam)
		if err != nil {
			s.log.Error("failed to add mock exam", zap.Error(err))
			return model.MockExam{}, err
		}
		exam.ID = id
	} else if exam.ID == "" {
		exam.ID = uuid.NewString()
	}
	stored := copyExams([]model.MockExam{exam})[0]
	s.commit(ctx, userID, func() {
		s.claimLocked(colExams)
		s.exams = prepend(s.exams, stored, MaxMockExams)
	})
	return exam, nil
}

func normalizeExam(exam model.MockExam) (model.MockExam, error) {
	date, err := model.ParseDate(exam.Date)
	if err != nil {
		return model.MockExam{}, fmt.Errorf("invalid mock exam: %w", err)
	}
	exam.Date = model.DateKey(date)
	if exam.Title == "" {
		exam.Title = "Deneme"
	}
	if exam.ExamType == "" {
		exam.ExamType = model.ExamTYT
	}
	if !exam.ExamType.Valid() {
		return model.MockExam{}, fmt.Errorf("invalid mock exam: unknown exam type %q", exam.ExamType)
	}
	if exam.Difficulty == "" {
		exam.Difficulty = model.DifficultyMedium
	}
	if !exam.Difficulty.Valid() {
		return model.MockExam{}, fmt.Errorf("invalid mock exam: unknown difficulty %q", exam.Difficulty)
	}
	if exam.Duration < 0 {
		return model.MockExam{}, fmt.Errorf("invalid mock exam: duration must be >= 0")
	}
	if len(exam.Summary) == 0 {
		return model.MockExam{}, fmt.Errorf("invalid mock exam: at least one subject is required")
	}
	summary := make([]model.ExamDetail, len(exam.Summary))
	for i, d := range exam.Summary {
		d.Lesson, _ = lesson.Canonical(d.Lesson)
		if err := d.Validate(lesson.MaxQuestions(d.Lesson)); err != nil {
			return model.MockExam{}, fmt.Errorf("invalid mock exam: %w", err)
		}
		summary[i] = stats.NewExamDetail(d.Lesson, d.Correct, d.Wrong, d.Empty)
	}
	exam.Summary = summary
	return exam, nil
}

// UpdateGoalProgress sets the current value of a goal.
func (s *Store) UpdateGoalProgress(ctx context.Context, goalID string, current float64) error {
	userID, err := s.currentUser()
	if err != nil {
		return err
	}
	if current < 0 {
		return fmt.Errorf("goal progress must be >= 0")
	}
	if !s.has(func() bool { return slices.ContainsFunc(s.goals, func(g model.Goal) bool { return g.ID == goalID }) }) {
		return ErrNotFound
	}
	if s.repo != nil {
		if err := s.repo.UpdateGoalProgress(ctx, userID, goalID, current); err != nil {
			s.log.Error("failed to update goal", zap.String("goal", goalID), zap.Error(err))
			return err
		}
	}
	s.commit(ctx, userID, func() {
		s.claimLocked(colGoals)
		for i := range s.goals {
			if s.goals[i].ID == goalID {
				s.goals[i].Current = current
			}
		}
	})
	return nil
}

// UpdateTopic stores topic progress, replacing the row with the same id.
func (s *Store) UpdateTopic(ctx context.Context, topic model.TopicProgress) error {
	userID, err := s.currentUser()
	if err != nil {
		return err
	}
	if topic.ID == "" {
		topic.ID = uuid.NewString()
	}
	topic.Lesson, _ = lesson.Canonical(topic.Lesson)
	if topic.Lesson == "" {
		return fmt.Errorf("invalid topic: lesson must not be empty")
	}
	if topic.Completed < 0 || topic.Total < 0 || topic.Completed > topic.Total {
		return fmt.Errorf("invalid topic: completed must be between 0 and total")
	}
	if topic.MissingTopics == nil {
		topic.MissingTopics = []string{}
	}
	if s.repo != nil {
		if err := s.repo.UpsertTopic(ctx, userID, topic); err != nil {
			s.log.Error("failed to save topic", zap.String("topic", topic.ID), zap.Error(err))
			return err
		}
	}
	stored := copyTopics([]model.TopicProgress{topic})[0]
	s.commit(ctx, userID, func() {
		s.claimLocked(colTopics)
		for i := range s.topics {
			if s.topics[i].ID == stored.ID {
				s.topics[i] = stored
				return
			}
		}
		s.topics = append(s.topics, stored)
	})
	return nil
}

// FetchProfile reloads the profile of the active user.
func (s *Store) FetchProfile(ctx context.Context) error {
	userID, err := s.currentUser()
	if err != nil {
		return err
	}
	if s.repo == nil {
		return nil
	}
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		s.log.Error("failed to load profile", zap.Error(err))
		return err
	}
	s.commit(ctx, userID, func() { s.profile = profile })
	return nil
}

// UpdateProfile merges the update into the current profile and stores it.
// Choosing a study field also sets the matching target exam.
func (s *Store) UpdateProfile(ctx context.Context, update ProfileUpdate) (model.StudentProfile, error) {
	userID, err := s.currentUser()
	if err != nil {
		return model.StudentProfile{}, err
	}
	s.mu.RLock()
	next := model.StudentProfile{ID: userID}
	if s.profile != nil {
		next = *copyProfile(s.profile)
	}
	s.mu.RUnlock()

	if update.FullName != nil {
		next.FullName = *update.FullName
	}
	if update.StudyField != nil {
		if !update.StudyField.Valid() {
			return model.StudentProfile{}, fmt.Errorf("unknown study field %q", *update.StudyField)
		}
		next.StudyField = *update.StudyField
		next.TargetExam = update.StudyField.TargetExam()
	}

	if s.repo != nil {
		stored, err := s.repo.UpdateProfile(ctx, userID, next)
		if err != nil {
			s.log.Error("failed to update profile", zap.Error(err))
			return model.StudentProfile{}, err
		}
		next = stored
	} else {
		now := s.now().UTC()
		next.UpdatedAt = &now
	}
	stored := copyProfile(&next)
	s.commit(ctx, userID, func() { s.profile = stored })
	return next, nil
}

// MarkNotificationRead flags a notification as read.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	userID, err := s.currentUser()
	if err != nil {
		return err
	}
	if !s.has(func() bool {
		return slices.ContainsFunc(s.notifications, func(n model.Notification) bool { return n.ID == id })
	}) {
		return ErrNotFound
	}
	if s.repo != nil {
		if err := s.repo.MarkNotificationRead(ctx, userID, id); err != nil {
			s.log.Error("failed to mark notification", zap.String("notification", id), zap.Error(err))
			return err
		}
	}
	s.commit(ctx, userID, func() {
		s.claimLocked(colNotifications)
		for i := range s.notifications {
			if s.notifications[i].ID == id {
				s.notifications[i].Read = true
			}
		}
	})
	return nil
}

// ToggleWidget flips the visibility of a widget.
func (s *Store) ToggleWidget(ctx context.Context, id string) error {
	return s.updateWidgets(ctx, func(widgets []model.WidgetConfig) ([]model.WidgetConfig, error) {
		i := widgetIndex(widgets, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		widgets[i].Visible = !widgets[i].Visible
		return widgets, nil
	})
}

// ResizeWidget sets the size of a widget.
func (s *Store) ResizeWidget(ctx context.Context, id string, size model.WidgetSize) error {
	if !size.Valid() {
		return fmt.Errorf("unknown widget size %q", size)
	}
	return s.updateWidgets(ctx, func(widgets []model.WidgetConfig) ([]model.WidgetConfig, error) {
		i := widgetIndex(widgets, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		widgets[i].Size = size
		return widgets, nil
	})
}

// ReorderWidgets moves activeID to the position currently held by overID.
func (s *Store) ReorderWidgets(ctx context.Context, activeID, overID string) error {
	return s.updateWidgets(ctx, func(widgets []model.WidgetConfig) ([]model.WidgetConfig, error) {
		from, to := widgetIndex(widgets, activeID), widgetIndex(widgets, overID)
		if from < 0 || to < 0 {
			return nil, ErrNotFound
		}
		moved := widgets[from]
		widgets = slices.Delete(widgets, from, from+1)
		return slices.Insert(widgets, to, moved), nil
	})
}

// SyncWidgets pushes the local widget layout to the repository.
func (s *Store) SyncWidgets(ctx context.Context) error {
	return s.updateWidgets(ctx, func(widgets []model.WidgetConfig) ([]model.WidgetConfig, error) {
		return widgets, nil
	})
}

func (s *Store) updateWidgets(ctx context.Context, fn func([]model.WidgetConfig) ([]model.WidgetConfig, error)) error {
	userID, err := s.currentUser()
	if err != nil {
		return err
	}
	s.widgetMu.Lock()
	defer s.widgetMu.Unlock()

	s.mu.RLock()
	widgets := slices.Clone(s.widgets)
	s.mu.RUnlock()

	widgets, err = fn(widgets)
	if err != nil {
		return err
	}
	for i := range widgets {
		widgets[i].Order = i
	}
	if s.repo != nil {
		if err := s.repo.SaveWidgets(ctx, userID, widgets); err != nil {
			s.log.Error("failed to save widgets", zap.Error(err))
			return err
		}
	}
	s.commit(ctx, userID, func() { s.widgets = widgets })
	return nil
}

func (s *Store) has(fn func() bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}

func widgetIndex(widgets []model.WidgetConfig, id string) int {
	return slices.IndexFunc(widgets, func(w model.WidgetConfig) bool { return w.ID == id })
}

func prepend[T any](items []T, item T, limit int) []T {
	out := make([]T, 0, min(len(items)+1, limit))
	out = append(out, item)
	for _, it := range items {
		if len(out) == limit {
			break
		}
		out = append(out, it)
	}
	return out
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func copyEntries(in []model.StudyEntry) []model.StudyEntry {
	if in == nil {
		return nil
	}
	out := make([]model.StudyEntry, len(in))
	for i, e := range in {
		if e.Net != nil {
			net := model.EntryNet{}
			if e.Net.TYT != nil {
				v := *e.Net.TYT
				net.TYT = &v
			}
			if e.Net.AYT != nil {
				v := *e.Net.AYT
				net.AYT = &v
			}
			e.Net = &net
		}
		out[i] = e
	}
	return out
}

func copyExams(in []model.MockExam) []model.MockExam {
	if in == nil {
		return nil
	}
	out := make([]model.MockExam, len(in))
	for i, e := range in {
		e.Summary = slices.Clone(e.Summary)
		out[i] = e
	}
	return out
}

func copyTopics(in []model.TopicProgress) []model.TopicProgress {
	if in == nil {
		return nil
	}
	out := make([]model.TopicProgress, len(in))
	for i, t := range in {
		t.MissingTopics = slices.Clone(t.MissingTopics)
		out[i] = t
	}
	return out
}

func copyProfile(p *model.StudentProfile) *model.StudentProfile {
	if p == nil {
		return nil
	}
	out := *p
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		out.UpdatedAt = &t
	}
	return &out
}
