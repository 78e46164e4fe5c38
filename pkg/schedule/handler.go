package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tutormaster/tutormaster/internal/rest"
	"github.com/tutormaster/tutormaster/internal/utils"
	"github.com/tutormaster/tutormaster/pkg/lesson"
)

// LessonsProvider supplies the current tutor's lessons for projection.
type LessonsProvider func(ctx context.Context) ([]lesson.Lesson, error)

type WeekDTO struct {
	Start     string   `json:"start"`
	End       string   `json:"end"`
	DateRange string   `json:"dateRange"`
	Days      []DayDTO `json:"days"`
}

type DayDTO struct {
	DayOfWeek string    `json:"dayOfWeek"`
	Date      string    `json:"date"`
	Today     bool      `json:"today"`
	Cells     []CellDTO `json:"cells,omitempty"`
}

type CellDTO struct {
	Hour      string              `json:"hour"`
	Instances []LessonInstanceDTO `json:"instances"`
}

type LessonInstanceDTO struct {
	lesson.LessonDTO
	CurrentSlot         lesson.ScheduleSlotDTO `json:"currentSlot"`
	InstanceDescription string                 `json:"instanceDescription,omitempty"`
}

type Handler struct {
	lessons LessonsProvider
	clock   utils.Clock
}

func NewHandler(lessons LessonsProvider, clock utils.Clock) *Handler {
	return &Handler{lessons: lessons, clock: clock}
}

// GetWeek godoc
// @Summary Get the week-grid projection of the tutor's lessons
// @Description The date query parameter (2006-01-02) selects the displayed week; defaults to the current week
// @Tags Schedule
// @Produce json
// @Success 200 {object} WeekDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date format"
// @Router /api/schedule/week [get]
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	viewDate := h.clock.Now()
	if dateString := r.URL.Query().Get("date"); dateString != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateString, viewDate.Location())
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid date format",
				Details: "'date' must be formatted as 2006-01-02",
			})
			return
		}
		viewDate = parsed
	}

	lessons, err := h.lessons(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	week := BuildWeek(lessons, viewDate)

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.weekToDTO(week)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) weekToDTO(week Week) WeekDTO {
	today := h.clock.Now()
	days := make([]DayDTO, 0, len(week.Days))
	for _, day := range week.Days {
		dayDTO := DayDTO{
			DayOfWeek: string(day.DayOfWeek),
			Date:      day.Date.Format("2006-01-02"),
			Today:     sameDate(day.Date, today),
		}
		for _, cell := range day.Cells {
			cellDTO := CellDTO{Hour: fmt.Sprintf("%02d:00", cell.Hour)}
			for _, instance := range cell.Instances {
				cellDTO.Instances = append(cellDTO.Instances, instanceToDTO(instance))
			}
			dayDTO.Cells = append(dayDTO.Cells, cellDTO)
		}
		days = append(days, dayDTO)
	}
	return WeekDTO{
		Start:     week.Start.Format("2006-01-02"),
		End:       week.End.Format("2006-01-02"),
		DateRange: FormatDateRange(week.Start),
		Days:      days,
	}
}

func instanceToDTO(instance LessonInstance) LessonInstanceDTO {
	return LessonInstanceDTO{
		LessonDTO: lesson.ToDTO(instance.Lesson),
		CurrentSlot: lesson.ScheduleSlotDTO{
			DayOfWeek: string(instance.CurrentSlot.DayOfWeek),
			Time:      instance.CurrentSlot.Time,
		},
		InstanceDescription: instance.InstanceDescription,
	}
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
