package lesson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/tutormaster/tutormaster/internal/rest"
)

type ScheduleSlotDTO struct {
	DayOfWeek string `json:"dayOfWeek"`
	Time      string `json:"time"`
}

type LessonDTO struct {
	Id             string            `json:"id,omitempty"`
	StudentName    string            `json:"studentName"`
	ParentName     string            `json:"parentName"`
	StudentContact string            `json:"studentContact"`
	ParentContact  string            `json:"parentContact"`
	Course         string            `json:"course"`
	LessonNumber   int               `json:"lessonNumber"`
	Frequency      int               `json:"frequency"`
	Slots          []ScheduleSlotDTO `json:"slots"`
	Description    string            `json:"description,omitempty"`
}

type FrequencyDTO struct {
	Frequency int `json:"frequency"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListLessons godoc
// @Summary List all lessons of the current tutor
// @Tags Lesson
// @Produce json
// @Success 200 {array} LessonDTO
// @Router /api/lesson [get]
func (h *Handler) ListLessons(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	lessons, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]LessonDTO, 0, len(lessons))
	for _, l := range lessons {
		dtos = append(dtos, ToDTO(l))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetLesson godoc
// @Summary Get a single lesson
// @Tags Lesson
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} LessonDTO
// @Failure 404 {object} rest.ErrorResponse "Lesson not found"
// @Router /api/lesson/{lessonId} [get]
func (h *Handler) GetLesson(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	lessonId := mux.Vars(r)["lessonId"]
	l, err := h.service.Get(r.Context(), lessonId)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(l)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateLesson godoc
// @Summary Create a new recurring lesson
// @Tags Lesson
// @Accept json
// @Produce json
// @Param lesson body LessonDTO true "Lesson"
// @Success 201 {object} LessonDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid lesson"
// @Router /api/lesson [post]
func (h *Handler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Creating lesson")

	var dto LessonDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	created, err := h.service.Create(r.Context(), dtoToLesson(dto))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags Lesson
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Param lesson body LessonDTO true "Lesson"
// @Success 200 {object} LessonDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid lesson"
// @Failure 404 {object} rest.ErrorResponse "Lesson not found"
// @Router /api/lesson/{lessonId} [put]
func (h *Handler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto LessonDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	dto.Id = mux.Vars(r)["lessonId"]

	updated, err := h.service.Update(r.Context(), dtoToLesson(dto))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteLesson godoc
// @Summary Delete a lesson series or a single weekly occurrence
// @Description With scope=occurrence the day and time query parameters select the occurrence to remove
// @Tags Lesson
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Param scope query string false "series (default) or occurrence"
// @Param day query string false "Day of week of the selected occurrence"
// @Param time query string false "HH:MM time of the selected occurrence"
// @Success 204
// @Failure 400 {object} rest.ErrorResponse "No occurrence selected"
// @Failure 404 {object} rest.ErrorResponse "Lesson not found"
// @Router /api/lesson/{lessonId} [delete]
func (h *Handler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	lessonId := mux.Vars(r)["lessonId"]
	scope := DeleteWholeSeries
	if r.URL.Query().Get("scope") == string(DeleteOnlyThisOccurrence) {
		scope = DeleteOnlyThisOccurrence
	}

	var slot *ScheduleSlot
	day := r.URL.Query().Get("day")
	slotTime := r.URL.Query().Get("time")
	if day != "" || slotTime != "" {
		parsedDay, err := ParseDayOfWeek(day)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid day of week", Details: day})
			return
		}
		slot = &ScheduleSlot{DayOfWeek: parsedDay, Time: slotTime}
	}

	if err := h.service.Delete(r.Context(), lessonId, scope, slot); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteLesson godoc
// @Summary Mark a session completed, incrementing the lesson counter
// @Tags Lesson
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} LessonDTO
// @Failure 404 {object} rest.ErrorResponse "Lesson not found"
// @Router /api/lesson/{lessonId}/complete [post]
func (h *Handler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	lessonId := mux.Vars(r)["lessonId"]
	updated, err := h.service.MarkCompleted(r.Context(), lessonId)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// SetFrequency godoc
// @Summary Change how many times per week the lesson occurs
// @Tags Lesson
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Param frequency body FrequencyDTO true "New frequency"
// @Success 200 {object} LessonDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid frequency"
// @Failure 404 {object} rest.ErrorResponse "Lesson not found"
// @Router /api/lesson/{lessonId}/frequency [put]
func (h *Handler) SetFrequency(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto FrequencyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	lessonId := mux.Vars(r)["lessonId"]
	updated, err := h.service.SetFrequency(r.Context(), lessonId, dto.Frequency)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrLessonNotFound):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Lesson not found"})
	case errors.Is(err, ErrNoOccurrenceSelected),
		errors.Is(err, ErrSlotNotFound),
		errors.Is(err, ErrInvalidFrequency),
		errors.Is(err, ErrInvalidLesson):
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ToDTO converts a lesson to its wire representation; the frequency field is
// filled from the derived slot count.
func ToDTO(l Lesson) LessonDTO {
	slots := make([]ScheduleSlotDTO, 0, len(l.Slots))
	for _, s := range l.Slots {
		slots = append(slots, ScheduleSlotDTO{DayOfWeek: string(s.DayOfWeek), Time: s.Time})
	}
	return LessonDTO{
		Id:             l.Id,
		StudentName:    l.StudentName,
		ParentName:     l.ParentName,
		StudentContact: l.StudentContact,
		ParentContact:  l.ParentContact,
		Course:         l.Course,
		LessonNumber:   l.LessonNumber,
		Frequency:      l.Frequency(),
		Slots:          slots,
		Description:    l.Description,
	}
}

// dtoToLesson ignores the wire frequency field: the count is always derived
// from the slot list, which keeps the frequency invariant structural.
func dtoToLesson(dto LessonDTO) Lesson {
	slots := make([]ScheduleSlot, 0, len(dto.Slots))
	for _, s := range dto.Slots {
		slots = append(slots, ScheduleSlot{DayOfWeek: DayOfWeek(s.DayOfWeek), Time: s.Time})
	}
	return Lesson{
		Id:             dto.Id,
		StudentName:    dto.StudentName,
		ParentName:     dto.ParentName,
		StudentContact: dto.StudentContact,
		ParentContact:  dto.ParentContact,
		Course:         dto.Course,
		LessonNumber:   dto.LessonNumber,
		Slots:          slots,
		Description:    dto.Description,
	}
}
