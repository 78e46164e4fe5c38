package reminder

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tutormaster/tutormaster/pkg/user"
)

type NotificationDTO struct {
	LessonId    string    `json:"lessonId"`
	StudentName string    `json:"studentName"`
	Course      string    `json:"course"`
	DayOfWeek   string    `json:"dayOfWeek"`
	Time        string    `json:"time"`
	Date        string    `json:"date"`
	FiredAt     time.Time `json:"firedAt"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetNotifications godoc
// @Summary List recently fired lesson reminders for the current tutor
// @Tags Reminder
// @Produce json
// @Success 200 {array} NotificationDTO
// @Router /api/reminder [get]
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userId, err := user.CurrentId(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	notifications := h.service.RecentForUser(userId)
	dtos := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		dtos = append(dtos, NotificationDTO{
			LessonId:    n.LessonId,
			StudentName: n.StudentName,
			Course:      n.Course,
			DayOfWeek:   n.DayOfWeek,
			Time:        n.Time,
			Date:        n.Date,
			FiredAt:     n.FiredAt,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
