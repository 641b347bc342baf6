package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/samber/mo"

	"recur-tracker/internal/model"
	"recur-tracker/internal/repository"
)

// ReminderService builds human-readable summaries for notifications,
// driven by the estimator output stored on each task.
type ReminderService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
}

func NewReminderService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *ReminderService {
	return &ReminderService{taskRepo: taskRepo, categoryRepo: categoryRepo}
}

// DailySummary lists the user's ongoing tasks grouped into overdue, due
// soon and later, ordered by their estimated next occurrence.
func (s *ReminderService) DailySummary(ctx context.Context, user model.User, now time.Time) (string, error) {
	tasks, err := s.taskRepo.List(ctx, user.ID, repository.TaskFilter{
		Status: mo.Some(model.StatusOngoing),
	})
	if err != nil {
		return "", err
	}

	categories, err := s.categoryRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return "", err
	}
	catNames := make(map[uint]string)
	for _, cat := range categories {
		catNames[cat.ID] = cat.Name
	}

	var overdue, dueSoon, later []model.Task
	for _, task := range tasks {
		switch {
		case task.NextEventAt == nil:
			later = append(later, task)
		case task.NextEventAt.Before(now):
			overdue = append(overdue, task)
		case task.NextEventAt.Sub(now) <= 48*time.Hour:
			dueSoon = append(dueSoon, task)
		default:
			later = append(later, task)
		}
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Ежедневный отчёт</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("02.01.2006")))

	builder.WriteString("⚠️ <b>Просроченные</b>\n")
	if len(overdue) == 0 {
		builder.WriteString("— ничего не просрочено\n")
	} else {
		for _, task := range overdue {
			builder.WriteString(formatDueTask(task, catNames, now))
		}
	}

	builder.WriteString("\n⏳ <b>Ближайшие (48 ч.)</b>\n")
	if len(dueSoon) == 0 {
		builder.WriteString("— ничего срочного\n")
	} else {
		for _, task := range dueSoon {
			builder.WriteString(formatDueTask(task, catNames, now))
		}
	}

	if len(later) > 0 {
		builder.WriteString("\n🟢 <b>Позже</b>\n")
		for _, task := range later {
			builder.WriteString(formatDueTask(task, catNames, now))
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

func formatDueTask(task model.Task, catNames map[uint]string, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("• %s", html.EscapeString(strings.TrimSpace(task.Name))))

	if task.CategoryID != nil {
		if name, ok := catNames[*task.CategoryID]; ok {
			trimmed := strings.TrimSpace(name)
			if trimmed != "" {
				sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(trimmed)))
			}
		}
	}

	if task.NextEventAt != nil {
		d := task.NextEventAt.In(now.Location())
		if d.Before(now) {
			sb.WriteString(fmt.Sprintf("\n   ⏰ ориентир был %s — <b>пора!</b>", d.Format("2006-01-02 15:04")))
		} else {
			sb.WriteString(fmt.Sprintf("\n   ⏰ ориентир: %s", d.Format("2006-01-02 15:04")))
		}
	} else {
		sb.WriteString("\n   ⏰ без ориентира")
	}

	sb.WriteByte('\n')
	return sb.String()
}
