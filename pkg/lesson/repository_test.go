package lesson

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutormaster/tutormaster/internal/test_utils"
)

func setupTestRepository(t *testing.T) (context.Context, Repository, string) {
	db := test_utils.SetupTestDB(t)
	userId := test_utils.SeedTutor(t, db, uuid.NewString()+"@example.com")
	return context.Background(), NewRepository(db), userId
}

func storedLesson() Lesson {
	return Lesson{
		Id:             uuid.NewString(),
		StudentName:    "Anna",
		ParentName:     "Maria",
		StudentContact: "anna@example.com",
		ParentContact:  "maria@example.com",
		Course:         "Math",
		LessonNumber:   3,
		Slots: []ScheduleSlot{
			{DayOfWeek: Monday, Time: "10:00"},
			{DayOfWeek: Wednesday, Time: "14:30"},
		},
		Description: "algebra revision",
	}
}

func TestRepositoryImpl_StoreLesson(t *testing.T) {
	t.Run("should store and read back a lesson with its slots in order", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		l := storedLesson()

		// when
		err := repo.StoreLesson(ctx, userId, l)

		// then
		require.NoError(t, err)
		stored, err := repo.GetLesson(ctx, userId, l.Id)
		require.NoError(t, err)
		assert.Equal(t, l, stored)
	})

	t.Run("should store a lesson without optional fields", func(t *testing.T) {
		ctx, repo, userId := setupTestRepository(t)
		l := Lesson{
			Id:           uuid.NewString(),
			StudentName:  "Bartek",
			Course:       "Physics",
			LessonNumber: 1,
			Slots:        []ScheduleSlot{{DayOfWeek: Friday, Time: "16:00"}},
		}

		err := repo.StoreLesson(ctx, userId, l)

		require.NoError(t, err)
		stored, err := repo.GetLesson(ctx, userId, l.Id)
		require.NoError(t, err)
		assert.Equal(t, l, stored)
	})
}

func TestRepositoryImpl_GetLesson(t *testing.T) {
	t.Run("should return not found for an unknown id", func(t *testing.T) {
		ctx, repo, userId := setupTestRepository(t)

		_, err := repo.GetLesson(ctx, userId, uuid.NewString())

		assert.ErrorIs(t, err, ErrLessonNotFound)
	})

	t.Run("should not expose another tutor's lesson", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		l := storedLesson()
		require.NoError(t, repo.StoreLesson(ctx, userId, l))

		// when
		_, err := repo.GetLesson(ctx, "other-tutor", l.Id)

		// then
		assert.ErrorIs(t, err, ErrLessonNotFound)
	})
}

func TestRepositoryImpl_ListLessons(t *testing.T) {
	t.Run("should list only the given tutor's lessons", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		first := storedLesson()
		second := storedLesson()
		second.Id = uuid.NewString()
		second.StudentName = "Bartek"
		require.NoError(t, repo.StoreLesson(ctx, userId, first))
		require.NoError(t, repo.StoreLesson(ctx, userId, second))

		// when
		lessons, err := repo.ListLessons(ctx, userId)

		// then
		require.NoError(t, err)
		require.Len(t, lessons, 2)
		for _, l := range lessons {
			assert.Len(t, l.Slots, 2)
		}
	})

	t.Run("should return an empty list for a tutor without lessons", func(t *testing.T) {
		ctx, repo, userId := setupTestRepository(t)

		lessons, err := repo.ListLessons(ctx, userId)

		require.NoError(t, err)
		assert.Empty(t, lessons)
	})
}

func TestRepositoryImpl_UpdateLesson(t *testing.T) {
	t.Run("should replace fields and the slot list", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		l := storedLesson()
		require.NoError(t, repo.StoreLesson(ctx, userId, l))

		// when
		l.Course = "Chemistry"
		l.LessonNumber = 4
		l.Slots = []ScheduleSlot{{DayOfWeek: Sunday, Time: "09:15"}}
		err := repo.UpdateLesson(ctx, userId, l)

		// then
		require.NoError(t, err)
		stored, err := repo.GetLesson(ctx, userId, l.Id)
		require.NoError(t, err)
		assert.Equal(t, l, stored)
	})

	t.Run("should return not found for an unknown lesson", func(t *testing.T) {
		ctx, repo, userId := setupTestRepository(t)
		l := storedLesson()

		err := repo.UpdateLesson(ctx, userId, l)

		assert.ErrorIs(t, err, ErrLessonNotFound)
	})
}

func TestRepositoryImpl_DeleteLesson(t *testing.T) {
	t.Run("should delete the lesson and its slots", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		l := storedLesson()
		require.NoError(t, repo.StoreLesson(ctx, userId, l))

		// when
		err := repo.DeleteLesson(ctx, userId, l.Id)

		// then
		require.NoError(t, err)
		_, err = repo.GetLesson(ctx, userId, l.Id)
		assert.ErrorIs(t, err, ErrLessonNotFound)
	})

	t.Run("should not delete another tutor's lesson", func(t *testing.T) {
		ctx, repo, userId := setupTestRepository(t)
		l := storedLesson()
		require.NoError(t, repo.StoreLesson(ctx, userId, l))

		err := repo.DeleteLesson(ctx, "other-tutor", l.Id)

		assert.ErrorIs(t, err, ErrLessonNotFound)
		_, err = repo.GetLesson(ctx, userId, l.Id)
		assert.NoError(t, err)
	})
}

func TestRepositoryImpl_ListAllLessons(t *testing.T) {
	t.Run("should return lessons across tutors with their owner", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		l := storedLesson()
		require.NoError(t, repo.StoreLesson(ctx, userId, l))

		// when
		owned, err := repo.ListAllLessons(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, owned, 1)
		assert.Equal(t, userId, owned[0].UserId)
		assert.Equal(t, l, owned[0].Lesson)
	})
}
