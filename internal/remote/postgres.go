package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/verte-zerg/yks/internal/logging"
	"github.com/verte-zerg/yks/internal/model"
)

// Postgres stores records in PostgreSQL through GORM.
type Postgres struct {
	db  *gorm.DB
	log *zap.Logger
}

// OpenPostgres connects to dsn and migrates the schema.
func OpenPostgres(dsn string, log *zap.Logger) (*Postgres, error) {
	return openDialector(postgres.Open(dsn), log)
}

func openDialector(dialector gorm.Dialector, log *zap.Logger) (*Postgres, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  logging.NewGormLogger(log),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	p := &Postgres{db: db, log: log}
	if err := p.migrate(); err != nil {
		if cerr := p.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	log.Info("database ready")
	return p, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (p *Postgres) migrate() error {
	err := p.db.AutoMigrate(
		&StudyEntryRow{},
		&MockExamRow{},
		&MockExamDetailRow{},
		&GoalRow{},
		&TopicRow{},
		&NotificationRow{},
		&WidgetRow{},
		&ProfileRow{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_study_entries_user_date ON study_entries (user_id, date DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_mock_exams_user_date ON mock_exams (user_id, date DESC);`,
	}
	for _, stmt := range indexes {
		if err := p.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// ListStudyEntries returns the newest entries of the user.
func (p *Postgres) ListStudyEntries(ctx context.Context, userID string, limit int) ([]model.StudyEntry, error) {
	var rows []StudyEntryRow
	err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list study entries: %w", err)
	}
	return parseRows(rows, ParseStudyEntry)
}

// AddStudyEntry inserts an entry and returns its id.
func (p *Postgres) AddStudyEntry(ctx context.Context, userID string, entry model.StudyEntry) (string, error) {
	row := studyEntryRow(userID, entry)
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if err := p.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("failed to add study entry: %w", err)
	}
	return row.ID, nil
}

// ListMockExams returns the newest exams of the user with their details.
func (p *Postgres) ListMockExams(ctx context.Context, userID string, limit int) ([]model.MockExam, error) {
	var rows []MockExamRow
	err := p.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("user_id = ?", userID).
		Order("date DESC").Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list mock exams: %w", err)
	}
	return parseRows(rows, ParseMockExam)
}

// AddMockExam inserts the header and then its details in one transaction.
func (p *Postgres) AddMockExam(ctx context.Context, userID string, exam model.MockExam) (string, error) {
	row := mockExamRow(userID, exam)
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	details := row.Details
	row.Details = nil
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if len(details) == 0 {
			return nil
		}
		for i := range details {
			details[i].ExamID = row.ID
		}
		return tx.Create(&details).Error
	})
	if err != nil {
		return "", fmt.Errorf("failed to add mock exam: %w", err)
	}
	return row.ID, nil
}

// ListGoals returns the goals of the user in creation order.
func (p *Postgres) ListGoals(ctx context.Context, userID string) ([]model.Goal, error) {
	var rows []GoalRow
	if err := p.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return parseRows(rows, ParseGoal)
}

// UpdateGoalProgress sets the current value of a goal.
func (p *Postgres) UpdateGoalProgress(ctx context.Context, userID, goalID string, current float64) error {
	res := p.db.WithContext(ctx).Model(&GoalRow{}).
		Where("user_id = ? AND id = ?", userID, goalID).
		Update("current", current)
	if res.Error != nil {
		return fmt.Errorf("failed to update goal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListTopics returns the topic progress rows of the user.
func (p *Postgres) ListTopics(ctx context.Context, userID string) ([]model.TopicProgress, error) {
	var rows []TopicRow
	if err := p.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return parseRows(rows, ParseTopic)
}

// UpsertTopic inserts or replaces a topic progress row.
func (p *Postgres) UpsertTopic(ctx context.Context, userID string, topic model.TopicProgress) error {
	row := topicRow(userID, topic)
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"lesson", "completed", "total", "missing_topics"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save topic: %w", err)
	}
	return nil
}

// ListNotifications returns the newest notifications of the user.
func (p *Postgres) ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	var rows []NotificationRow
	err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return parseRows(rows, ParseNotification)
}

// MarkNotificationRead flags a notification as read.
func (p *Postgres) MarkNotificationRead(ctx context.Context, userID, id string) error {
	res := p.db.WithContext(ctx).Model(&NotificationRow{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("read", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListWidgets returns the widget configs of the user by display order.
func (p *Postgres) ListWidgets(ctx context.Context, userID string) ([]model.WidgetConfig, error) {
	var rows []WidgetRow
	if err := p.db.WithContext(ctx).Where("user_id = ?", userID).Order("display_order").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list widgets: %w", err)
	}
	return parseRows(rows, ParseWidget)
}

// SaveWidgets upserts every widget with its index as display order.
func (p *Postgres) SaveWidgets(ctx context.Context, userID string, widgets []model.WidgetConfig) error {
	if len(widgets) == 0 {
		return nil
	}
	rows := make([]WidgetRow, len(widgets))
	for i, w := range widgets {
		rows[i] = widgetRow(userID, w, i)
	}
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "id"}},
		UpdateAll: true,
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to save widgets: %w", err)
	}
	return nil
}

// GetProfile loads the profile row of the user.
func (p *Postgres) GetProfile(ctx context.Context, userID string) (*model.StudentProfile, error) {
	var row ProfileRow
	err := p.db.WithContext(ctx).Where("id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	profile, err := ParseProfile(row)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile writes the editable profile fields and returns the stored row.
func (p *Postgres) UpdateProfile(ctx context.Context, userID string, profile model.StudentProfile) (model.StudentProfile, error) {
	row := profileRow(userID, profile, time.Now().UTC())
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "study_field", "target_exam", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return model.StudentProfile{}, fmt.Errorf("failed to update profile: %w", err)
	}
	stored, err := p.GetProfile(ctx, userID)
	if err != nil {
		return model.StudentProfile{}, err
	}
	if stored == nil {
		return model.StudentProfile{}, ErrNotFound
	}
	return *stored, nil
}

// SeedDefaults writes the first-login records in one transaction.
func (p *Postgres) SeedDefaults(ctx context.Context, userID string, defaults model.Defaults) (bool, error) {
	var count int64
	if err := p.db.WithContext(ctx).Model(&GoalRow{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check existing goals: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	base := time.Now().UTC()
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, g := range defaults.Goals {
			row := goalRow(userID, g)
			row.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for i, t := range defaults.Topics {
			row := topicRow(userID, t)
			row.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, n := range defaults.Notifications {
			row := notificationRow(userID, n)
			if row.CreatedAt == nil {
				row.CreatedAt = &base
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for i, w := range defaults.Widgets {
			row := widgetRow(userID, w, i)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed defaults: %w", err)
	}
	p.log.Info("seeded first-login records", zap.String("user", userID))
	return true, nil
}
