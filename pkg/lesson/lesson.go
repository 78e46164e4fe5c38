package lesson

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidLesson = errors.New("invalid lesson")

// DayOfWeek names one of the seven weekdays a recurring slot can fall on.
type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
	Sunday    DayOfWeek = "Sunday"
)

// Days lists all weekdays in display order, Monday first.
var Days = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func ParseDayOfWeek(s string) (DayOfWeek, error) {
	for _, d := range Days {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: unknown day of week: %q", ErrInvalidLesson, s)
}

func (d DayOfWeek) Valid() bool {
	_, err := ParseDayOfWeek(string(d))
	return err == nil
}

func (d DayOfWeek) Weekday() time.Weekday {
	switch d {
	case Monday:
		return time.Monday
	case Tuesday:
		return time.Tuesday
	case Wednesday:
		return time.Wednesday
	case Thursday:
		return time.Thursday
	case Friday:
		return time.Friday
	case Saturday:
		return time.Saturday
	default:
		return time.Sunday
	}
}

// ScheduleSlot is one weekly recurrence point of a lesson: a weekday plus a
// "HH:MM" 24-hour wall-clock time. It has no date component; the slot recurs
// every week until removed.
type ScheduleSlot struct {
	DayOfWeek DayOfWeek
	Time      string
}

// DefaultSlot is appended when the slot count grows; the tutor is expected to
// edit the day and time afterwards.
var DefaultSlot = ScheduleSlot{DayOfWeek: Monday, Time: "10:00"}

func (s ScheduleSlot) Validate() error {
	if !s.DayOfWeek.Valid() {
		return fmt.Errorf("%w: unknown day of week: %q", ErrInvalidLesson, s.DayOfWeek)
	}
	if _, _, err := ParseSlotTime(s.Time); err != nil {
		return err
	}
	return nil
}

// Hour returns the hour component of the slot time. Minutes are ignored when
// bucketing slots into calendar rows, so a 10:30 lesson lands in the 10:00 row.
func (s ScheduleSlot) Hour() int {
	hour, _, _ := ParseSlotTime(s.Time)
	return hour
}

// StartOn resolves the slot's wall-clock time on the given date.
func (s ScheduleSlot) StartOn(date time.Time) time.Time {
	hour, minute, _ := ParseSlotTime(s.Time)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

// ParseSlotTime parses a "HH:MM" 24-hour time into its components.
func ParseSlotTime(t string) (hour int, minute int, err error) {
	parsed, err := time.Parse("15:04", t)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid slot time %q", ErrInvalidLesson, t)
	}
	return parsed.Hour(), parsed.Minute(), nil
}

// Lesson is a recurring weekly booking for one student (a "series").
// Its frequency is always derived from the slot list, never stored, so the
// frequency == len(slots) invariant cannot drift.
type Lesson struct {
	Id             string
	StudentName    string
	ParentName     string
	StudentContact string
	ParentContact  string
	Course         string
	// LessonNumber is a manual session counter incremented when the tutor
	// marks a session completed. It is not derived from calendar time.
	LessonNumber int
	Slots        []ScheduleSlot
	// Description holds the tutor's notes. It is shared across all
	// occurrences of the series.
	Description string
}

// Frequency is the number of weekly occurrences of the series.
func (l *Lesson) Frequency() int {
	return len(l.Slots)
}

func (l *Lesson) Validate() error {
	if l.StudentName == "" {
		return fmt.Errorf("%w: student name is required", ErrInvalidLesson)
	}
	if l.Course == "" {
		return fmt.Errorf("%w: course is required", ErrInvalidLesson)
	}
	if l.LessonNumber < 1 {
		return fmt.Errorf("%w: lesson number must be positive", ErrInvalidLesson)
	}
	if len(l.Slots) == 0 {
		return fmt.Errorf("%w: at least one schedule slot is required", ErrInvalidLesson)
	}
	for _, slot := range l.Slots {
		if err := slot.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ApplySlotCount resizes the slot list to n entries. Growing appends copies of
// DefaultSlot (duplicates are allowed until the tutor edits them); shrinking
// truncates from the end, keeping the first n slots untouched.
func (l *Lesson) ApplySlotCount(n int) {
	if n < 0 {
		n = 0
	}
	for len(l.Slots) < n {
		l.Slots = append(l.Slots, DefaultSlot)
	}
	if len(l.Slots) > n {
		l.Slots = l.Slots[:n]
	}
}

// RemoveSlot removes the first slot matching the given (day, time) pair and
// reports whether a slot was removed.
func (l *Lesson) RemoveSlot(slot ScheduleSlot) bool {
	for i, s := range l.Slots {
		if s.DayOfWeek == slot.DayOfWeek && s.Time == slot.Time {
			l.Slots = append(l.Slots[:i], l.Slots[i+1:]...)
			return true
		}
	}
	return false
}
