package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/yks/internal/dashboard"
	"github.com/verte-zerg/yks/internal/lesson"
)

var (
	pomodoroLesson string
	pomodoroFocus  int
	pomodoroBreak  int
)

func newPomodoroCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pomodoro",
		Short: "Run a focus timer that logs finished sessions",
		Args:  cobra.NoArgs,
		RunE:  runPomodoroCmd,
	}
	cmd.Flags().StringVar(&pomodoroLesson, "lesson", "", "lesson of the logged sessions (default: Matematik)")
	cmd.Flags().IntVar(&pomodoroFocus, "focus", int(dashboard.DefaultFocus/time.Minute), "focus minutes")
	cmd.Flags().IntVar(&pomodoroBreak, "break", int(dashboard.DefaultShortBreak/time.Minute), "break minutes")
	return cmd
}

func runPomodoroCmd(cmd *cobra.Command, _ []string) error {
	if pomodoroFocus <= 0 || pomodoroBreak <= 0 {
		return fmt.Errorf("focus and break must be > 0 minutes")
	}
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a.bootstrap(ctx)
	name := strings.TrimSpace(pomodoroLesson)
	if name != "" {
		name, _ = lesson.Canonical(name)
	}
	p := dashboard.NewPomodoro(a.state, dashboard.PomodoroOptions{
		Focus:  time.Duration(pomodoroFocus) * time.Minute,
		Break:  time.Duration(pomodoroBreak) * time.Minute,
		Lesson: name,
		Logger: a.log.Named("pomodoro"),
	})
	if _, err := tea.NewProgram(p).Run(); err != nil {
		return fmt.Errorf("failed to run pomodoro: %w", err)
	}
	return nil
}
