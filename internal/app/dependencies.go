package app

import (
	"context"
	"database/sql"

	log "github.com/sirupsen/logrus"
	"github.com/tutormaster/tutormaster/internal/auth"
	"github.com/tutormaster/tutormaster/internal/config"
	"github.com/tutormaster/tutormaster/internal/event_bus"
	"github.com/tutormaster/tutormaster/internal/utils"
	"github.com/tutormaster/tutormaster/pkg/lesson"
	"github.com/tutormaster/tutormaster/pkg/reminder"
	"github.com/tutormaster/tutormaster/pkg/schedule"
	"github.com/tutormaster/tutormaster/pkg/summary"
	"github.com/tutormaster/tutormaster/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus    *event_bus.EventBus
	TokenIssuer *auth.TokenIssuer

	UserService user.Service
	UserHandler *user.Handler

	LessonRepo    lesson.Repository
	LessonService lesson.Service
	LessonHandler *lesson.Handler

	ScheduleHandler *schedule.Handler

	ReminderScanner *reminder.Scanner
	ReminderService *reminder.Service
	ReminderHandler *reminder.Handler

	SummaryService summary.Service
	SummaryHandler *summary.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.TokenIssuer = auth.NewTokenIssuer(cfg.Auth)
	deps.UserService = user.NewUserService(user.NewUserRepo(db), deps.TokenIssuer, deps.EventBus)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.LessonRepo = lesson.NewRepository(db)
	deps.LessonService = lesson.NewService(deps.LessonRepo)
	deps.LessonHandler = lesson.NewHandler(deps.LessonService)

	deps.ScheduleHandler = schedule.NewHandler(deps.LessonService.List, deps.Clock)

	deps.ReminderScanner = reminder.NewScanner(deps.LessonRepo, deps.Clock, deps.EventBus, cfg.Reminder.LeadTime)
	deps.ReminderService = reminder.NewService(deps.EventBus)
	deps.ReminderHandler = reminder.NewHandler(deps.ReminderService)

	var aiClient summary.Client
	if cfg.AI.APIKey != "" {
		client, err := summary.NewGeminiClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			log.Errorf("failed to initialize AI client, summaries will be unavailable: %v", err)
		} else {
			aiClient = client
		}
	} else {
		log.Info("no AI API key configured, summaries will be unavailable")
	}
	deps.SummaryService = summary.NewService(aiClient)
	deps.SummaryHandler = summary.NewHandler(deps.SummaryService)

	return deps
}
