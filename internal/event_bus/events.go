package event_bus

const (
	EventUserLoggedIn      EventType = "user.logged_in"
	EventLessonReminderDue EventType = "lesson.reminder_due"
)

type UserLoggedIn struct {
	UserId string
	Email  string
}

type LessonReminderDue struct {
	UserId      string
	LessonId    string
	StudentName string
	Course      string
	DayOfWeek   string
	// Time is the lesson start in "HH:MM" wall-clock format.
	Time string
	// Date is the concrete day the reminder fired for, formatted 2006-01-02.
	Date string
}
