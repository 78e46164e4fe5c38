package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutormaster/tutormaster/internal/event_bus"
	"github.com/tutormaster/tutormaster/internal/utils"
	"github.com/tutormaster/tutormaster/pkg/lesson"
)

type stubLessonSource struct {
	lessons []lesson.OwnedLesson
}

func (s *stubLessonSource) ListAllLessons(ctx context.Context) ([]lesson.OwnedLesson, error) {
	return s.lessons, nil
}

// mondayAt builds an instant on Monday 2025-01-13 with the given wall-clock time.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2025, 1, 13, hour, minute, 0, 0, time.UTC)
}

func setupScanner(lessons ...lesson.OwnedLesson) (*Scanner, *utils.MockClock, *[]event_bus.LessonReminderDue) {
	source := &stubLessonSource{lessons: lessons}
	clock := &utils.MockClock{FixedNow: mondayAt(9, 0)}
	bus := event_bus.NewEventBus()
	scanner := NewScanner(source, clock, bus, 30*time.Minute)

	var fired []event_bus.LessonReminderDue
	event_bus.SubscribeTyped[event_bus.LessonReminderDue](
		bus,
		event_bus.EventLessonReminderDue,
		func(e event_bus.EventT[event_bus.LessonReminderDue]) error {
			fired = append(fired, e.Data)
			return nil
		},
	)
	return scanner, clock, &fired
}

func mondayLesson() lesson.OwnedLesson {
	return lesson.OwnedLesson{
		UserId: "tutor-1",
		Lesson: lesson.Lesson{
			Id:           "l1",
			StudentName:  "Anna",
			Course:       "Math",
			LessonNumber: 1,
			Slots:        []lesson.ScheduleSlot{{DayOfWeek: lesson.Monday, Time: "10:00"}},
		},
	}
}

func TestScanner_Scan(t *testing.T) {
	t.Run("should fire when the lesson starts exactly lead time from now", func(t *testing.T) {
		// given
		scanner, clock, fired := setupScanner(mondayLesson())
		clock.SetNow(mondayAt(9, 30))

		// when
		err := scanner.Scan(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, *fired, 1)
		event := (*fired)[0]
		assert.Equal(t, "tutor-1", event.UserId)
		assert.Equal(t, "l1", event.LessonId)
		assert.Equal(t, "Anna", event.StudentName)
		assert.Equal(t, "Monday", event.DayOfWeek)
		assert.Equal(t, "10:00", event.Time)
		assert.Equal(t, "2025-01-13", event.Date)
	})

	t.Run("should not fire when the lesson is still beyond the window", func(t *testing.T) {
		scanner, clock, fired := setupScanner(mondayLesson())
		clock.SetNow(mondayAt(9, 29))

		require.NoError(t, scanner.Scan(context.Background()))

		assert.Empty(t, *fired)
	})

	t.Run("should not fire once the window has passed", func(t *testing.T) {
		scanner, clock, fired := setupScanner(mondayLesson())
		clock.SetNow(mondayAt(9, 31))

		require.NoError(t, scanner.Scan(context.Background()))

		assert.Empty(t, *fired)
	})

	t.Run("should fire at most once for two consecutive in-window ticks", func(t *testing.T) {
		// given
		scanner, clock, fired := setupScanner(mondayLesson())
		clock.SetNow(mondayAt(9, 30))

		// when
		require.NoError(t, scanner.Scan(context.Background()))
		clock.Advance(30 * time.Second)
		require.NoError(t, scanner.Scan(context.Background()))

		// then
		assert.Len(t, *fired, 1)
	})

	t.Run("should skip slots on a different weekday", func(t *testing.T) {
		// given
		owned := mondayLesson()
		owned.Lesson.Slots = []lesson.ScheduleSlot{{DayOfWeek: lesson.Tuesday, Time: "10:00"}}
		scanner, clock, fired := setupScanner(owned)
		clock.SetNow(mondayAt(9, 30))

		// when
		require.NoError(t, scanner.Scan(context.Background()))

		// then
		assert.Empty(t, *fired)
	})

	t.Run("should fire separately for each in-window slot", func(t *testing.T) {
		// given
		owned := mondayLesson()
		owned.Lesson.Slots = []lesson.ScheduleSlot{
			{DayOfWeek: lesson.Monday, Time: "10:00"},
			{DayOfWeek: lesson.Monday, Time: "10:15"},
		}
		scanner, clock, fired := setupScanner(owned)

		// when
		clock.SetNow(mondayAt(9, 30))
		require.NoError(t, scanner.Scan(context.Background()))
		clock.SetNow(mondayAt(9, 45))
		require.NoError(t, scanner.Scan(context.Background()))

		// then
		require.Len(t, *fired, 2)
		assert.Equal(t, "10:00", (*fired)[0].Time)
		assert.Equal(t, "10:15", (*fired)[1].Time)
	})

	t.Run("should fire again for the same slot a week later", func(t *testing.T) {
		// given
		scanner, clock, fired := setupScanner(mondayLesson())
		clock.SetNow(mondayAt(9, 30))
		require.NoError(t, scanner.Scan(context.Background()))

		// when
		clock.SetNow(mondayAt(9, 30).AddDate(0, 0, 7))
		require.NoError(t, scanner.Scan(context.Background()))

		// then
		require.Len(t, *fired, 2)
		assert.Equal(t, "2025-01-13", (*fired)[0].Date)
		assert.Equal(t, "2025-01-20", (*fired)[1].Date)
	})

	t.Run("should see lessons added after the previous tick", func(t *testing.T) {
		// given
		source := &stubLessonSource{}
		clock := &utils.MockClock{FixedNow: mondayAt(9, 30)}
		bus := event_bus.NewEventBus()
		scanner := NewScanner(source, clock, bus, 30*time.Minute)

		var fired []event_bus.LessonReminderDue
		event_bus.SubscribeTyped[event_bus.LessonReminderDue](
			bus,
			event_bus.EventLessonReminderDue,
			func(e event_bus.EventT[event_bus.LessonReminderDue]) error {
				fired = append(fired, e.Data)
				return nil
			},
		)

		require.NoError(t, scanner.Scan(context.Background()))
		require.Empty(t, fired)

		// when
		source.lessons = []lesson.OwnedLesson{mondayLesson()}
		require.NoError(t, scanner.Scan(context.Background()))

		// then
		assert.Len(t, fired, 1)
	})
}

func TestScanner_Reset(t *testing.T) {
	t.Run("should re-arm a reminder that already fired", func(t *testing.T) {
		// given
		scanner, clock, fired := setupScanner(mondayLesson())
		clock.SetNow(mondayAt(9, 30))
		require.NoError(t, scanner.Scan(context.Background()))
		require.Len(t, *fired, 1)

		// when
		scanner.Reset()
		require.NoError(t, scanner.Scan(context.Background()))

		// then
		assert.Len(t, *fired, 2)
	})

	t.Run("should be triggered by a login event", func(t *testing.T) {
		// given
		source := &stubLessonSource{lessons: []lesson.OwnedLesson{mondayLesson()}}
		clock := &utils.MockClock{FixedNow: mondayAt(9, 30)}
		bus := event_bus.NewEventBus()
		scanner := NewScanner(source, clock, bus, 30*time.Minute)

		var fired []event_bus.LessonReminderDue
		event_bus.SubscribeTyped[event_bus.LessonReminderDue](
			bus,
			event_bus.EventLessonReminderDue,
			func(e event_bus.EventT[event_bus.LessonReminderDue]) error {
				fired = append(fired, e.Data)
				return nil
			},
		)

		require.NoError(t, scanner.Scan(context.Background()))
		require.Len(t, fired, 1)

		// when
		err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.EventUserLoggedIn, event_bus.UserLoggedIn{
			UserId: "tutor-2",
			Email:  "other@example.com",
		}))
		require.NoError(t, err)
		require.NoError(t, scanner.Scan(context.Background()))

		// then
		assert.Len(t, fired, 2)
	})
}
