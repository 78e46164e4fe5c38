package reminder

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutormaster/tutormaster/internal/event_bus"
)

func publishReminder(t *testing.T, bus *event_bus.EventBus, userId string, lessonId string) {
	t.Helper()
	err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.EventLessonReminderDue, event_bus.LessonReminderDue{
		UserId:      userId,
		LessonId:    lessonId,
		StudentName: "Anna",
		Course:      "Math",
		DayOfWeek:   "Monday",
		Time:        "10:00",
		Date:        "2025-01-13",
	}))
	require.NoError(t, err)
}

func TestService_RecentForUser(t *testing.T) {
	t.Run("should collect fired reminders for the user", func(t *testing.T) {
		// given
		bus := event_bus.NewEventBus()
		service := NewService(bus)

		// when
		publishReminder(t, bus, "tutor-1", "l1")
		publishReminder(t, bus, "tutor-1", "l2")

		// then
		notifications := service.RecentForUser("tutor-1")
		require.Len(t, notifications, 2)
		assert.Equal(t, "l1", notifications[0].LessonId)
		assert.Equal(t, "l2", notifications[1].LessonId)
		assert.Equal(t, "Anna", notifications[0].StudentName)
		assert.False(t, notifications[0].FiredAt.IsZero())
	})

	t.Run("should keep feeds of different users separate", func(t *testing.T) {
		bus := event_bus.NewEventBus()
		service := NewService(bus)

		publishReminder(t, bus, "tutor-1", "l1")
		publishReminder(t, bus, "tutor-2", "l2")

		assert.Len(t, service.RecentForUser("tutor-1"), 1)
		assert.Len(t, service.RecentForUser("tutor-2"), 1)
		assert.Empty(t, service.RecentForUser("tutor-3"))
	})

	t.Run("should drop the oldest entries past the cap", func(t *testing.T) {
		// given
		bus := event_bus.NewEventBus()
		service := NewService(bus)

		// when
		for i := 0; i < maxRecent+5; i++ {
			publishReminder(t, bus, "tutor-1", fmt.Sprintf("l%d", i))
		}

		// then
		notifications := service.RecentForUser("tutor-1")
		require.Len(t, notifications, maxRecent)
		assert.Equal(t, "l5", notifications[0].LessonId)
		assert.Equal(t, fmt.Sprintf("l%d", maxRecent+4), notifications[maxRecent-1].LessonId)
	})
}
