package app

import (
	"github.com/gorilla/mux"
	"github.com/tutormaster/tutormaster/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Auth
	r.HandleFunc("/api/auth/register", deps.UserHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", deps.UserHandler.Login).Methods("POST")

	// Lessons
	r.HandleFunc("/api/lesson", deps.LessonHandler.ListLessons).Methods("GET")
	r.HandleFunc("/api/lesson", deps.LessonHandler.CreateLesson).Methods("POST")
	r.HandleFunc("/api/lesson/{lessonId}", deps.LessonHandler.GetLesson).Methods("GET")
	r.HandleFunc("/api/lesson/{lessonId}", deps.LessonHandler.UpdateLesson).Methods("PUT")
	r.HandleFunc("/api/lesson/{lessonId}", deps.LessonHandler.DeleteLesson).Methods("DELETE")
	r.HandleFunc("/api/lesson/{lessonId}/complete", deps.LessonHandler.CompleteLesson).Methods("POST")
	r.HandleFunc("/api/lesson/{lessonId}/frequency", deps.LessonHandler.SetFrequency).Methods("PUT")

	// Week schedule
	r.HandleFunc("/api/schedule/week", deps.ScheduleHandler.GetWeek).Methods("GET")

	// Reminders
	r.HandleFunc("/api/reminder", deps.ReminderHandler.GetNotifications).Methods("GET")

	// AI summaries
	r.HandleFunc("/api/summary", deps.SummaryHandler.Summarize).Methods("POST")
}
