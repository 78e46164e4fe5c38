package lesson

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tutormaster/tutormaster/pkg/user"
)

var ErrNoOccurrenceSelected = errors.New("no occurrence selected")
var ErrSlotNotFound = errors.New("occurrence not found in lesson")
var ErrInvalidFrequency = errors.New("frequency must be positive")

// DeleteScope distinguishes removing a single weekly occurrence from removing
// the whole recurring series.
type DeleteScope string

const (
	DeleteWholeSeries        DeleteScope = "series"
	DeleteOnlyThisOccurrence DeleteScope = "occurrence"
)

type Service interface {
	List(ctx context.Context) ([]Lesson, error)
	Get(ctx context.Context, id string) (Lesson, error)
	Create(ctx context.Context, l Lesson) (Lesson, error)
	Update(ctx context.Context, l Lesson) (Lesson, error)
	// Delete removes either the whole series or, with DeleteOnlyThisOccurrence,
	// exactly the given (day, time) slot. Deleting the last remaining slot
	// removes the lesson entirely.
	Delete(ctx context.Context, id string, scope DeleteScope, slot *ScheduleSlot) error
	// MarkCompleted increments the lesson's session counter by exactly one.
	MarkCompleted(ctx context.Context, id string) (Lesson, error)
	// SetFrequency resizes the slot list, appending default slots or
	// truncating from the end.
	SetFrequency(ctx context.Context, id string, frequency int) (Lesson, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Lesson, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListLessons(ctx, userId)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Lesson, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Lesson{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetLesson(ctx, userId, id)
}

func (s *ServiceImpl) Create(ctx context.Context, l Lesson) (Lesson, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Lesson{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if l.Id == "" {
		l.Id = uuid.NewString()
	}
	if err := l.Validate(); err != nil {
		return Lesson{}, err
	}
	if err := s.repo.StoreLesson(ctx, userId, l); err != nil {
		return Lesson{}, fmt.Errorf("failed to store lesson: %w", err)
	}
	return l, nil
}

// Update replaces the stored lesson with the given value. Reapplying an
// identical lesson yields no observable change.
func (s *ServiceImpl) Update(ctx context.Context, l Lesson) (Lesson, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Lesson{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if l.Id == "" {
		return Lesson{}, fmt.Errorf("%w: id is required", ErrInvalidLesson)
	}
	if err := l.Validate(); err != nil {
		return Lesson{}, err
	}
	if err := s.repo.UpdateLesson(ctx, userId, l); err != nil {
		if errors.Is(err, ErrLessonNotFound) {
			return Lesson{}, err
		}
		return Lesson{}, fmt.Errorf("failed to update lesson: %w", err)
	}
	return l, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string, scope DeleteScope, slot *ScheduleSlot) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	if scope != DeleteOnlyThisOccurrence {
		return s.repo.DeleteLesson(ctx, userId, id)
	}

	if slot == nil {
		return ErrNoOccurrenceSelected
	}

	l, err := s.repo.GetLesson(ctx, userId, id)
	if err != nil {
		return err
	}
	if !l.RemoveSlot(*slot) {
		return ErrSlotNotFound
	}
	// A series with zero remaining occurrences cannot exist.
	if len(l.Slots) == 0 {
		return s.repo.DeleteLesson(ctx, userId, id)
	}
	if err := s.repo.UpdateLesson(ctx, userId, l); err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}
	return nil
}

func (s *ServiceImpl) MarkCompleted(ctx context.Context, id string) (Lesson, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Lesson{}, fmt.Errorf("failed to get current user: %w", err)
	}

	l, err := s.repo.GetLesson(ctx, userId, id)
	if err != nil {
		return Lesson{}, err
	}
	l.LessonNumber++
	if err := s.repo.UpdateLesson(ctx, userId, l); err != nil {
		return Lesson{}, fmt.Errorf("failed to update lesson: %w", err)
	}
	return l, nil
}

func (s *ServiceImpl) SetFrequency(ctx context.Context, id string, frequency int) (Lesson, error) {
	if frequency < 1 {
		return Lesson{}, ErrInvalidFrequency
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Lesson{}, fmt.Errorf("failed to get current user: %w", err)
	}

	l, err := s.repo.GetLesson(ctx, userId, id)
	if err != nil {
		return Lesson{}, err
	}
	l.ApplySlotCount(frequency)
	if err := s.repo.UpdateLesson(ctx, userId, l); err != nil {
		return Lesson{}, fmt.Errorf("failed to update lesson: %w", err)
	}
	return l, nil
}
