package schedule

import (
	"time"

	"github.com/tutormaster/tutormaster/pkg/lesson"
)

// The displayed grid covers hour rows 08:00 through 22:00.
const (
	FirstHour = 8
	LastHour  = 22
)

// LessonInstance is the read-model view of one lesson occurrence in the
// context of a displayed week: the series plus the slot being viewed.
type LessonInstance struct {
	Lesson      lesson.Lesson
	CurrentSlot lesson.ScheduleSlot
	// InstanceDescription mirrors the series description; notes are shared
	// across all occurrences of a series.
	InstanceDescription string
}

// Cell is one (day, hour) calendar cell with the instances rendered in it.
// Multiple lessons may share a cell; no overlap resolution is performed.
type Cell struct {
	Hour      int
	Instances []LessonInstance
}

// Day is one column of the week grid.
type Day struct {
	DayOfWeek lesson.DayOfWeek
	Date      time.Time
	Cells     []Cell
}

// Week is the projection of a lesson collection onto one displayed week.
type Week struct {
	Start time.Time
	End   time.Time
	Days  []Day
}

// StartOfWeek returns the Monday of the week containing t, at local midnight.
// When t itself falls on a Sunday the week started six days earlier, not the
// following day.
func StartOfWeek(t time.Time) time.Time {
	offset := 1 - int(t.Weekday())
	if t.Weekday() == time.Sunday {
		offset = -6
	}
	return time.Date(t.Year(), t.Month(), t.Day()+offset, 0, 0, 0, 0, t.Location())
}

// PreviousWeek and NextWeek shift the reference date by exactly seven days;
// they carry no state of their own.
func PreviousWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, -7)
}

func NextWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, 7)
}

// FormatDateRange renders the 7-day span starting at start as "2 Jan — 8 Jan".
func FormatDateRange(start time.Time) string {
	end := start.AddDate(0, 0, 6)
	return start.Format("2 Jan") + " — " + end.Format("2 Jan")
}

// CellsForSlot returns an instance for every lesson slot falling on the given
// weekday whose hour component equals hour. Minutes are ignored for bucketing:
// a 10:30 lesson renders in the 10:00 row.
func CellsForSlot(lessons []lesson.Lesson, day lesson.DayOfWeek, hour int) []LessonInstance {
	var instances []LessonInstance
	for _, l := range lessons {
		for _, slot := range l.Slots {
			if slot.DayOfWeek == day && slot.Hour() == hour {
				instances = append(instances, LessonInstance{
					Lesson:              l,
					CurrentSlot:         slot,
					InstanceDescription: l.Description,
				})
			}
		}
	}
	return instances
}

// BuildWeek projects the lesson collection onto the week containing viewDate.
// Only cells that contain at least one instance are materialized.
func BuildWeek(lessons []lesson.Lesson, viewDate time.Time) Week {
	start := StartOfWeek(viewDate)
	week := Week{
		Start: start,
		End:   start.AddDate(0, 0, 6),
		Days:  make([]Day, 0, len(lesson.Days)),
	}
	for i, day := range lesson.Days {
		d := Day{
			DayOfWeek: day,
			Date:      start.AddDate(0, 0, i),
		}
		for hour := FirstHour; hour <= LastHour; hour++ {
			if instances := CellsForSlot(lessons, day, hour); len(instances) > 0 {
				d.Cells = append(d.Cells, Cell{Hour: hour, Instances: instances})
			}
		}
		week.Days = append(week.Days, d)
	}
	return week
}
