package lesson

import (
	"context"
	"sort"
)

type StubRepository struct {
	// data maps userId -> lessonId -> lesson
	data map[string]map[string]Lesson
	// order maps userId -> lessonIds in insertion order
	order map[string][]string
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]map[string]Lesson{}, order: map[string][]string{}}
}

func (s *StubRepository) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	return fn(s)
}

func (s *StubRepository) ListLessons(ctx context.Context, userId string) ([]Lesson, error) {
	lessons := make([]Lesson, 0, len(s.data[userId]))
	for _, id := range s.order[userId] {
		if l, ok := s.data[userId][id]; ok {
			lessons = append(lessons, copyLesson(l))
		}
	}
	return lessons, nil
}

func (s *StubRepository) GetLesson(ctx context.Context, userId string, lessonId string) (Lesson, error) {
	l, ok := s.data[userId][lessonId]
	if !ok {
		return Lesson{}, ErrLessonNotFound
	}
	return copyLesson(l), nil
}

func (s *StubRepository) StoreLesson(ctx context.Context, userId string, lesson Lesson) error {
	if s.data[userId] == nil {
		s.data[userId] = map[string]Lesson{}
	}
	if _, ok := s.data[userId][lesson.Id]; !ok {
		s.order[userId] = append(s.order[userId], lesson.Id)
	}
	s.data[userId][lesson.Id] = copyLesson(lesson)
	return nil
}

func (s *StubRepository) UpdateLesson(ctx context.Context, userId string, lesson Lesson) error {
	if _, ok := s.data[userId][lesson.Id]; !ok {
		return ErrLessonNotFound
	}
	s.data[userId][lesson.Id] = copyLesson(lesson)
	return nil
}

func (s *StubRepository) DeleteLesson(ctx context.Context, userId string, lessonId string) error {
	if _, ok := s.data[userId][lessonId]; !ok {
		return ErrLessonNotFound
	}
	delete(s.data[userId], lessonId)
	return nil
}

func (s *StubRepository) ListAllLessons(ctx context.Context) ([]OwnedLesson, error) {
	userIds := make([]string, 0, len(s.data))
	for userId := range s.data {
		userIds = append(userIds, userId)
	}
	sort.Strings(userIds)

	var owned []OwnedLesson
	for _, userId := range userIds {
		for _, id := range s.order[userId] {
			if l, ok := s.data[userId][id]; ok {
				owned = append(owned, OwnedLesson{UserId: userId, Lesson: copyLesson(l)})
			}
		}
	}
	return owned, nil
}

func copyLesson(l Lesson) Lesson {
	c := l
	c.Slots = append([]ScheduleSlot(nil), l.Slots...)
	return c
}
