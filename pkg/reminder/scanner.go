package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/tutormaster/tutormaster/internal/event_bus"
	"github.com/tutormaster/tutormaster/internal/utils"
	"github.com/tutormaster/tutormaster/pkg/lesson"
)

// LessonSource supplies the current lesson collection on every tick. The
// scanner never holds a snapshot of its own; it re-reads through this
// interface so edits between ticks are always visible.
type LessonSource interface {
	ListAllLessons(ctx context.Context) ([]lesson.OwnedLesson, error)
}

// Scanner periodically checks every lesson slot falling on the current weekday
// and fires a reminder when the slot's start time is within the lead-time
// window. Each (lesson, slot, date) reminder fires at most once; there is no
// catch-up for windows missed while the process was down.
type Scanner struct {
	source   LessonSource
	clock    utils.Clock
	eventBus *event_bus.EventBus
	leadTime time.Duration

	mu    sync.Mutex
	fired map[string]struct{}

	cron *cron.Cron
}

func NewScanner(source LessonSource, clock utils.Clock, eventBus *event_bus.EventBus, leadTime time.Duration) *Scanner {
	s := &Scanner{
		source:   source,
		clock:    clock,
		eventBus: eventBus,
		leadTime: leadTime,
		fired:    map[string]struct{}{},
	}
	// A session change must not suppress reminders for the next user.
	event_bus.SubscribeTyped[event_bus.UserLoggedIn](
		eventBus,
		event_bus.EventUserLoggedIn,
		func(e event_bus.EventT[event_bus.UserLoggedIn]) error {
			log.Debugf("resetting reminder registry after login of %s", e.Data.UserId)
			s.Reset()
			return nil
		},
	)
	return s
}

// Start begins scanning once a minute. The tick interval is coarser than the
// one-minute trigger window would allow to drift, which the half-open window
// check tolerates.
func (s *Scanner) Start() error {
	if s.cron != nil {
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc("@every 1m", func() {
		if err := s.Scan(context.Background()); err != nil {
			log.Errorf("reminder scan failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder scan: %w", err)
	}
	c.Start()
	s.cron = c
	log.Info("Reminder scanner started")
	return nil
}

func (s *Scanner) Stop() {
	if s.cron == nil {
		return
	}
	s.cron.Stop()
	s.cron = nil
	log.Info("Reminder scanner stopped")
}

// Scan runs a single tick: it fires one reminder for every slot of today's
// weekday whose start lies within (leadTime-1m, leadTime] from now and has not
// fired yet for today's date.
func (s *Scanner) Scan(ctx context.Context) error {
	now := s.clock.Now()
	date := now.Format("2006-01-02")

	owned, err := s.source.ListAllLessons(ctx)
	if err != nil {
		return fmt.Errorf("failed to list lessons: %w", err)
	}

	for _, o := range owned {
		for _, slot := range o.Lesson.Slots {
			if slot.DayOfWeek.Weekday() != now.Weekday() {
				continue
			}
			until := slot.StartOn(now).Sub(now)
			if until <= s.leadTime-time.Minute || until > s.leadTime {
				continue
			}
			if !s.markFired(o.Lesson.Id, slot, date) {
				continue
			}

			log.Debugf("reminder due for lesson %s at %s %s", o.Lesson.Id, slot.DayOfWeek, slot.Time)
			event := event_bus.NewEvent(ctx, event_bus.EventLessonReminderDue, event_bus.LessonReminderDue{
				UserId:      o.UserId,
				LessonId:    o.Lesson.Id,
				StudentName: o.Lesson.StudentName,
				Course:      o.Lesson.Course,
				DayOfWeek:   string(slot.DayOfWeek),
				Time:        slot.Time,
				Date:        date,
			})
			if err := s.eventBus.Publish(event); err != nil {
				log.Errorf("failed to publish reminder event: %v", err)
			}
		}
	}
	return nil
}

// Reset clears the fired-reminder registry, re-arming today's reminders.
func (s *Scanner) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fired = map[string]struct{}{}
}

// markFired records the reminder key and reports whether it was newly recorded.
func (s *Scanner) markFired(lessonId string, slot lesson.ScheduleSlot, date string) bool {
	key := fmt.Sprintf("%s|%s|%s|%s", lessonId, slot.DayOfWeek, slot.Time, date)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.fired[key]; ok {
		return false
	}
	s.fired[key] = struct{}{}
	return true
}
