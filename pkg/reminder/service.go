package reminder

import (
	"sync"
	"time"

	"github.com/tutormaster/tutormaster/internal/event_bus"
)

// keep at most this many notifications per user
const maxRecent = 20

// Notification is one fired reminder, held for the UI to poll as a toast.
type Notification struct {
	LessonId    string
	StudentName string
	Course      string
	DayOfWeek   string
	Time        string
	Date        string
	FiredAt     time.Time
}

// Service collects reminder events into a per-user in-memory feed. Reminders
// are best-effort; the feed is not persisted.
type Service struct {
	mu     sync.Mutex
	recent map[string][]Notification
}

func NewService(eventBus *event_bus.EventBus) *Service {
	s := &Service{recent: map[string][]Notification{}}
	event_bus.SubscribeTyped[event_bus.LessonReminderDue](
		eventBus,
		event_bus.EventLessonReminderDue,
		func(e event_bus.EventT[event_bus.LessonReminderDue]) error {
			s.add(e.Data.UserId, Notification{
				LessonId:    e.Data.LessonId,
				StudentName: e.Data.StudentName,
				Course:      e.Data.Course,
				DayOfWeek:   e.Data.DayOfWeek,
				Time:        e.Data.Time,
				Date:        e.Data.Date,
				FiredAt:     e.Timestamp,
			})
			return nil
		},
	)
	return s
}

func (s *Service) add(userId string, n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notifications := append(s.recent[userId], n)
	if len(notifications) > maxRecent {
		notifications = notifications[len(notifications)-maxRecent:]
	}
	s.recent[userId] = notifications
}

// RecentForUser returns the user's fired reminders, newest last.
func (s *Service) RecentForUser(userId string) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.recent[userId]...)
}
