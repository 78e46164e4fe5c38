package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutormaster/tutormaster/pkg/lesson"
)

func TestStartOfWeek(t *testing.T) {
	t.Run("should return midnight of the same day for a Monday", func(t *testing.T) {
		// given
		monday := time.Date(2025, 1, 13, 15, 42, 11, 0, time.UTC)

		// when
		start := StartOfWeek(monday)

		// then
		assert.Equal(t, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("should return the previous Monday for a midweek day", func(t *testing.T) {
		// given
		thursday := time.Date(2025, 1, 16, 9, 0, 0, 0, time.UTC)

		// when
		start := StartOfWeek(thursday)

		// then
		assert.Equal(t, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Monday, start.Weekday())
	})

	t.Run("should go back six days for a Sunday, not forward", func(t *testing.T) {
		// given
		sunday := time.Date(2025, 1, 19, 23, 59, 0, 0, time.UTC)

		// when
		start := StartOfWeek(sunday)

		// then
		assert.Equal(t, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("should satisfy start <= d < start+7d for every weekday", func(t *testing.T) {
		for i := 0; i < 7; i++ {
			d := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC).AddDate(0, 0, i)
			start := StartOfWeek(d)
			assert.Equal(t, time.Monday, start.Weekday())
			assert.False(t, d.Before(start), "day %s before its week start", d)
			assert.True(t, d.Before(start.AddDate(0, 0, 7)), "day %s outside its week", d)
		}
	})
}

func TestWeekNavigation(t *testing.T) {
	t.Run("should shift by exactly seven days in both directions", func(t *testing.T) {
		d := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

		assert.Equal(t, d.AddDate(0, 0, 7), NextWeek(d))
		assert.Equal(t, d.AddDate(0, 0, -7), PreviousWeek(d))
		assert.Equal(t, d, PreviousWeek(NextWeek(d)))
	})
}

func TestFormatDateRange(t *testing.T) {
	t.Run("should render the seven day span", func(t *testing.T) {
		start := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)

		assert.Equal(t, "13 Jan — 19 Jan", FormatDateRange(start))
	})

	t.Run("should cross month boundaries", func(t *testing.T) {
		start := time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC)

		assert.Equal(t, "27 Jan — 2 Feb", FormatDateRange(start))
	})
}

func TestCellsForSlot(t *testing.T) {
	lessons := []lesson.Lesson{
		{
			Id:          "l1",
			StudentName: "Anna",
			Course:      "Math",
			Slots: []lesson.ScheduleSlot{
				{DayOfWeek: lesson.Monday, Time: "10:30"},
				{DayOfWeek: lesson.Wednesday, Time: "14:00"},
			},
			Description: "prep for finals",
		},
		{
			Id:          "l2",
			StudentName: "Bartek",
			Course:      "Physics",
			Slots: []lesson.ScheduleSlot{
				{DayOfWeek: lesson.Monday, Time: "10:00"},
			},
		},
	}

	t.Run("should bucket by hour ignoring minutes", func(t *testing.T) {
		// when
		instances := CellsForSlot(lessons, lesson.Monday, 10)

		// then
		require.Len(t, instances, 2)
		assert.Equal(t, "l1", instances[0].Lesson.Id)
		assert.Equal(t, "10:30", instances[0].CurrentSlot.Time)
		assert.Equal(t, "l2", instances[1].Lesson.Id)
	})

	t.Run("should carry the series description on every instance", func(t *testing.T) {
		instances := CellsForSlot(lessons, lesson.Wednesday, 14)

		require.Len(t, instances, 1)
		assert.Equal(t, "prep for finals", instances[0].InstanceDescription)
	})

	t.Run("should return nothing for an empty cell", func(t *testing.T) {
		assert.Empty(t, CellsForSlot(lessons, lesson.Friday, 10))
		assert.Empty(t, CellsForSlot(lessons, lesson.Monday, 11))
	})
}

func TestBuildWeek(t *testing.T) {
	t.Run("should place each slot of a twice-a-week lesson on its own day", func(t *testing.T) {
		// given
		lessons := []lesson.Lesson{
			{
				Id:          "l1",
				StudentName: "Anna",
				Course:      "Math",
				Slots: []lesson.ScheduleSlot{
					{DayOfWeek: lesson.Monday, Time: "10:00"},
					{DayOfWeek: lesson.Wednesday, Time: "14:00"},
				},
			},
		}
		// viewing from a Sunday still renders the week that began the previous Monday
		sunday := time.Date(2025, 1, 19, 18, 0, 0, 0, time.UTC)

		// when
		week := BuildWeek(lessons, sunday)

		// then
		assert.Equal(t, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), week.Start)
		assert.Equal(t, time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC), week.End)
		require.Len(t, week.Days, 7)

		monday := week.Days[0]
		require.Len(t, monday.Cells, 1)
		assert.Equal(t, 10, monday.Cells[0].Hour)
		require.Len(t, monday.Cells[0].Instances, 1)
		assert.Equal(t, lesson.ScheduleSlot{DayOfWeek: lesson.Monday, Time: "10:00"}, monday.Cells[0].Instances[0].CurrentSlot)

		wednesday := week.Days[2]
		require.Len(t, wednesday.Cells, 1)
		assert.Equal(t, 14, wednesday.Cells[0].Hour)

		for _, day := range []Day{week.Days[1], week.Days[3], week.Days[4], week.Days[5], week.Days[6]} {
			assert.Empty(t, day.Cells, "day %s should have no cells", day.DayOfWeek)
		}
	})

	t.Run("should assign consecutive dates starting at the week start", func(t *testing.T) {
		week := BuildWeek(nil, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))

		require.Len(t, week.Days, 7)
		for i, day := range week.Days {
			assert.Equal(t, week.Start.AddDate(0, 0, i), day.Date)
		}
		assert.Equal(t, lesson.Monday, week.Days[0].DayOfWeek)
		assert.Equal(t, lesson.Sunday, week.Days[6].DayOfWeek)
	})
}
