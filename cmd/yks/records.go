package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/yks/internal/lesson"
	"github.com/verte-zerg/yks/internal/model"
	"github.com/verte-zerg/yks/internal/state"
	"github.com/verte-zerg/yks/internal/stats"
)

var (
	logLesson    string
	logMinutes   int
	logQuestions int
	logDate      string
	logType      string
	logSlot      string
	logTopic     string
	logNotes     string
	logTYTNet    float64
	logAYTNet    float64

	examTitle      string
	examType       string
	examDate       string
	examDuration   int
	examDifficulty string
	examSubjects   []string

	topicLesson    string
	topicCompleted int
	topicTotal     int
	topicMissing   []string

	profileName  string
	profileField string

	notificationRead string
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a study session",
		Args:  cobra.NoArgs,
		RunE:  runLogCmd,
	}
	cmd.Flags().StringVar(&logLesson, "lesson", "", "lesson name (default: first lesson of the profile field)")
	cmd.Flags().IntVar(&logMinutes, "minutes", 0, "minutes studied")
	cmd.Flags().IntVar(&logQuestions, "questions", 0, "questions solved")
	cmd.Flags().StringVar(&logDate, "date", "", "date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&logType, "type", string(model.DefaultStudyType), "study type")
	cmd.Flags().StringVar(&logSlot, "slot", string(model.SlotMorning), "time slot (sabah, öğlen, akşam)")
	cmd.Flags().StringVar(&logTopic, "topic", "", "sub topic")
	cmd.Flags().StringVar(&logNotes, "notes", "", "free text notes")
	cmd.Flags().Float64Var(&logTYTNet, "tyt-net", 0, "TYT net of an exam session")
	cmd.Flags().Float64Var(&logAYTNet, "ayt-net", 0, "AYT net of an exam session")
	return cmd
}

func runLogCmd(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		entry := model.StudyEntry{
			Date:          dateOrToday(logDate),
			Lesson:        strings.TrimSpace(logLesson),
			SubTopic:      strings.TrimSpace(logTopic),
			Minutes:       logMinutes,
			QuestionCount: logQuestions,
			StudyType:     model.StudyType(logType),
			TimeSlot:      model.TimeSlot(logSlot),
			Notes:         logNotes,
		}
		if entry.Lesson == "" {
			field := model.FieldQuantitative
			if p := a.state.View().Profile; p != nil && p.StudyField.Valid() {
				field = p.StudyField
			}
			entry.Lesson = lesson.DefaultForField(field)
		}
		if cmd.Flags().Changed("tyt-net") || cmd.Flags().Changed("ayt-net") {
			entry.Net = &model.EntryNet{}
			if cmd.Flags().Changed("tyt-net") {
				entry.Net.TYT = &logTYTNet
			}
			if cmd.Flags().Changed("ayt-net") {
				entry.Net.AYT = &logAYTNet
			}
		}
		saved, err := a.state.AddStudyEntry(ctx, entry)
		if err != nil {
			return describeError(err)
		}
		return printf(cmd.OutOrStdout(), "Kaydedildi: %s %s %d dk, %d soru (%s)\n",
			saved.Date, saved.Lesson, saved.Minutes, saved.QuestionCount, saved.ID)
	})
}

func newExamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exam",
		Short: "Record a mock exam",
		Args:  cobra.NoArgs,
		RunE:  runExamCmd,
	}
	cmd.Flags().StringVar(&examTitle, "title", "", "exam title (default: Deneme)")
	cmd.Flags().StringVar(&examType, "type", string(model.ExamTYT), "exam type (TYT, AYT, Ders)")
	cmd.Flags().StringVar(&examDate, "date", "", "date (YYYY-MM-DD, default: today)")
	cmd.Flags().IntVar(&examDuration, "duration", 0, "duration in minutes")
	cmd.Flags().StringVar(&examDifficulty, "difficulty", string(model.DifficultyMedium), "difficulty (kolay, orta, zor)")
	cmd.Flags().StringArrayVar(&examSubjects, "subject", nil, `subject result "Lesson:correct:wrong[:empty]", repeatable`)
	return cmd
}

func runExamCmd(cmd *cobra.Command, _ []string) error {
	summary := make([]model.ExamDetail, 0, len(examSubjects))
	for _, raw := range examSubjects {
		detail, err := parseSubject(raw)
		if err != nil {
			return err
		}
		summary = append(summary, detail)
	}
	return withApp(cmd, func(ctx context.Context, a *app) error {
		saved, err := a.state.AddMockExam(ctx, model.MockExam{
			Title:      strings.TrimSpace(examTitle),
			Date:       dateOrToday(examDate),
			ExamType:   model.ExamType(examType),
			Duration:   examDuration,
			Difficulty: model.Difficulty(examDifficulty),
			Summary:    summary,
		})
		if err != nil {
			return describeError(err)
		}
		rows := make([][]string, 0, len(saved.Summary))
		for _, d := range saved.Summary {
			rows = append(rows, []string{d.Lesson, strconv.Itoa(d.Correct), strconv.Itoa(d.Wrong), strconv.Itoa(d.Empty), formatFloat(d.Net)})
		}
		out := cmd.OutOrStdout()
		if err := printf(out, "Kaydedildi: %s %s (%s) toplam net %s\n", saved.Date, saved.Title, saved.ExamType, formatFloat(saved.TotalNet())); err != nil {
			return err
		}
		return stats.WriteTable(out, []string{"Ders", "D", "Y", "B", "Net"}, rows)
	})
}

// parseSubject reads "Lesson:correct:wrong[:empty]". The lesson may contain spaces.
func parseSubject(raw string) (model.ExamDetail, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 3 {
		return model.ExamDetail{}, fmt.Errorf("invalid --subject %q: want Lesson:correct:wrong[:empty]", raw)
	}
	counts := parts[1:]
	if len(counts) > 3 {
		return model.ExamDetail{}, fmt.Errorf("invalid --subject %q: too many fields", raw)
	}
	values := [3]int{}
	for i, c := range counts {
		n, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil || n < 0 {
			return model.ExamDetail{}, fmt.Errorf("invalid --subject %q: %q is not a count", raw, c)
		}
		values[i] = n
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return model.ExamDetail{}, fmt.Errorf("invalid --subject %q: lesson is empty", raw)
	}
	return model.ExamDetail{Lesson: name, Correct: values[0], Wrong: values[1], Empty: values[2]}, nil
}

func newGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goal [<id> <current>]",
		Short: "List goals or set the progress of one",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected no arguments or <id> <current>")
			}
			return nil
		},
		RunE: runGoalCmd,
	}
}

func runGoalCmd(cmd *cobra.Command, args []string) error {
	var current float64
	if len(args) == 2 {
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid goal progress %q: %w", args[1], err)
		}
		current = v
	}
	return withApp(cmd, func(ctx context.Context, a *app) error {
		if len(args) == 2 {
			if err := a.state.UpdateGoalProgress(ctx, args[0], current); err != nil {
				return describeError(err)
			}
		}
		goals := a.state.View().Goals
		rows := make([][]string, 0, len(goals))
		for _, g := range goals {
			rows = append(rows, []string{g.ID, g.Title, string(g.Period), formatFloat(g.Current) + "/" + formatFloat(g.Target) + " " + g.Unit, fmt.Sprintf("%%%d", g.Progress())})
		}
		return stats.WriteTable(cmd.OutOrStdout(), []string{"ID", "Hedef", "Periyot", "Durum", "İlerleme"}, rows)
	})
}

func newTopicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic [<id>]",
		Short: "List topic progress or update one lesson",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTopicCmd,
	}
	cmd.Flags().StringVar(&topicLesson, "lesson", "", "lesson of a new topic row")
	cmd.Flags().IntVar(&topicCompleted, "completed", 0, "completed topic count")
	cmd.Flags().IntVar(&topicTotal, "total", 0, "total topic count")
	cmd.Flags().StringSliceVar(&topicMissing, "missing", nil, "missing topics (comma separated)")
	return cmd
}

func runTopicCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		if len(args) == 1 {
			topic := findTopic(a.state.View().Topics, args[0])
			if cmd.Flags().Changed("lesson") {
				topic.Lesson = topicLesson
			}
			if cmd.Flags().Changed("completed") {
				topic.Completed = topicCompleted
			}
			if cmd.Flags().Changed("total") {
				topic.Total = topicTotal
			}
			if cmd.Flags().Changed("missing") {
				topic.MissingTopics = trimAll(topicMissing)
			} else if topic.MissingTopics == nil {
				// New rows start with the whole topic pool missing.
				topic.MissingTopics = lesson.Topics(topic.Lesson)
				if !cmd.Flags().Changed("total") {
					topic.Total = len(topic.MissingTopics)
				}
			}
			if err := a.state.UpdateTopic(ctx, topic); err != nil {
				return describeError(err)
			}
		}
		topics := a.state.View().Topics
		rows := make([][]string, 0, len(topics))
		for _, t := range topics {
			rows = append(rows, []string{t.ID, t.Lesson, fmt.Sprintf("%d/%d", t.Completed, t.Total), fmt.Sprintf("%%%d", t.Completion()), strings.Join(t.MissingTopics, ", ")})
		}
		return stats.WriteTable(cmd.OutOrStdout(), []string{"ID", "Ders", "Konu", "Tamam", "Eksik"}, rows)
	})
}

// findTopic returns the topic with id, or a new row carrying only the id.
func findTopic(topics []model.TopicProgress, id string) model.TopicProgress {
	for _, t := range topics {
		if t.ID == id {
			return t
		}
	}
	return model.TopicProgress{ID: id}
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the student profile",
		Args:  cobra.NoArgs,
		RunE:  runProfileCmd,
	}
	cmd.Flags().StringVar(&profileName, "name", "", "full name")
	cmd.Flags().StringVar(&profileField, "field", "", "study field (sayisal, esit-agirlik, sozel)")
	return cmd
}

func runProfileCmd(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		var update state.ProfileUpdate
		if cmd.Flags().Changed("name") {
			name := strings.TrimSpace(profileName)
			update.FullName = &name
		}
		if cmd.Flags().Changed("field") {
			field := model.StudyField(profileField)
			update.StudyField = &field
		}
		profile := a.state.View().Profile
		if update.FullName != nil || update.StudyField != nil {
			saved, err := a.state.UpdateProfile(ctx, update)
			if err != nil {
				return describeError(err)
			}
			profile = &saved
		}
		if profile == nil {
			return printf(cmd.OutOrStdout(), "Profil yok. --name ve --field ile oluştur.\n")
		}
		lines := []string{
			"Kullanıcı: " + profile.ID,
			"Ad: " + profile.FullName,
			"Alan: " + string(profile.StudyField),
			"Hedef: " + profile.TargetExam,
		}
		if profile.Email != "" {
			lines = append(lines, "E-posta: "+profile.Email)
		}
		if field := profile.StudyField; field.Valid() {
			lines = append(lines, "Dersler: "+strings.Join(lesson.OptionsForField(field), ", "))
		}
		return printf(cmd.OutOrStdout(), "%s\n", strings.Join(lines, "\n"))
	})
}

func newWidgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widgets",
		Short: "Manage dashboard widgets",
		Args:  cobra.NoArgs,
		RunE:  runWidgetList,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List widgets in display order",
		Args:  cobra.NoArgs,
		RunE:  runWidgetList,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Show or hide a widget",
		Args:  cobra.ExactArgs(1),
		RunE: widgetAction(func(ctx context.Context, st *state.Store, args []string) error {
			return st.ToggleWidget(ctx, args[0])
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "resize <id> <md|lg>",
		Short: "Set the size of a widget",
		Args:  cobra.ExactArgs(2),
		RunE: widgetAction(func(ctx context.Context, st *state.Store, args []string) error {
			return st.ResizeWidget(ctx, args[0], model.WidgetSize(args[1]))
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "move <id> <over-id>",
		Short: "Move a widget to the position of another",
		Args:  cobra.ExactArgs(2),
		RunE: widgetAction(func(ctx context.Context, st *state.Store, args []string) error {
			return st.ReorderWidgets(ctx, args[0], args[1])
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Push the widget layout to the database",
		Args:  cobra.NoArgs,
		RunE: widgetAction(func(ctx context.Context, st *state.Store, _ []string) error {
			return st.SyncWidgets(ctx)
		}),
	})
	return cmd
}

func widgetAction(fn func(context.Context, *state.Store, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if err := fn(ctx, a.state, args); err != nil {
				return describeError(err)
			}
			return writeWidgets(cmd.OutOrStdout(), a.state.View().Widgets)
		})
	}
}

func runWidgetList(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(_ context.Context, a *app) error {
		return writeWidgets(cmd.OutOrStdout(), a.state.View().Widgets)
	})
}

func writeWidgets(w io.Writer, widgets []model.WidgetConfig) error {
	rows := make([][]string, 0, len(widgets))
	for _, wc := range widgets {
		visible := "gizli"
		if wc.Visible {
			visible = "açık"
		}
		rows = append(rows, []string{strconv.Itoa(wc.Order), wc.ID, wc.Title, string(wc.Size), visible})
	}
	return stats.WriteTable(w, []string{"Sıra", "ID", "Başlık", "Boyut", "Durum"}, rows)
}

func newNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List notifications",
		Args:  cobra.NoArgs,
		RunE:  runNotificationsCmd,
	}
	cmd.Flags().StringVar(&notificationRead, "read", "", "mark the notification with this id as read")
	return cmd
}

func runNotificationsCmd(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		if notificationRead != "" {
			if err := a.state.MarkNotificationRead(ctx, notificationRead); err != nil {
				return describeError(err)
			}
		}
		out := cmd.OutOrStdout()
		for _, n := range a.state.View().Notifications {
			mark := "*"
			if n.Read {
				mark = " "
			}
			if err := printf(out, "%s [%s] %s  %s\n   %s\n   %s\n", mark, n.Type, n.Title, n.CreatedAt.Local().Format("2006-01-02 15:04"), n.Description, n.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

// describeError adds a hint to the sentinel errors of the state store.
func describeError(err error) error {
	switch {
	case errors.Is(err, state.ErrNoUser):
		return fmt.Errorf("%w: pass --user", err)
	case errors.Is(err, state.ErrNotFound):
		return fmt.Errorf("%w: check the id with the list command", err)
	default:
		return err
	}
}

func dateOrToday(value string) string {
	if strings.TrimSpace(value) == "" {
		return model.DateKey(time.Now())
	}
	return strings.TrimSpace(value)
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func printf(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
