package lesson

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrLessonNotFound = errors.New("lesson not found")

// OwnedLesson pairs a lesson with its owning tutor's id. It is the shape the
// reminder scanner reads, which crosses user boundaries by design.
type OwnedLesson struct {
	UserId string
	Lesson Lesson
}

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	ListLessons(ctx context.Context, userId string) ([]Lesson, error)
	GetLesson(ctx context.Context, userId string, lessonId string) (Lesson, error)
	StoreLesson(ctx context.Context, userId string, lesson Lesson) error
	UpdateLesson(ctx context.Context, userId string, lesson Lesson) error
	DeleteLesson(ctx context.Context, userId string, lessonId string) error
	// ListAllLessons returns every lesson of every tutor, for the reminder scanner.
	ListAllLessons(ctx context.Context) ([]OwnedLesson, error)
}

type RepositoryImpl struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db, tx: nil}
}

// getQueryer returns the appropriate database interface for queries (either tx or db)
func (r *RepositoryImpl) getQueryer() interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *RepositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	if r.tx != nil {
		return fn(r)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	txRepo := &RepositoryImpl{db: r.db, tx: tx}
	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) ListLessons(ctx context.Context, userId string) ([]Lesson, error) {
	query := `SELECT l.id, l.student_name, l.parent_name, l.student_contact, l.parent_contact,
				l.course, l.lesson_number, l.description, s.day_of_week, s.time
			  FROM lessons l
			  LEFT JOIN lesson_slots s ON s.lesson_id = l.id
			  WHERE l.user_id = $1
			  ORDER BY l.created_at DESC, l.id, s.position`

	rows, err := r.getQueryer().QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query lessons: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return assembleLessons(rows)
}

func (r *RepositoryImpl) GetLesson(ctx context.Context, userId string, lessonId string) (Lesson, error) {
	query := `SELECT l.id, l.student_name, l.parent_name, l.student_contact, l.parent_contact,
				l.course, l.lesson_number, l.description, s.day_of_week, s.time
			  FROM lessons l
			  LEFT JOIN lesson_slots s ON s.lesson_id = l.id
			  WHERE l.user_id = $1 AND l.id = $2
			  ORDER BY s.position`

	rows, err := r.getQueryer().QueryContext(ctx, query, userId, lessonId)
	if err != nil {
		err := fmt.Errorf("could not query lesson: %w", err)
		log.Error(err)
		return Lesson{}, err
	}
	defer rows.Close()

	lessons, err := assembleLessons(rows)
	if err != nil {
		return Lesson{}, err
	}
	if len(lessons) == 0 {
		return Lesson{}, ErrLessonNotFound
	}
	return lessons[0], nil
}

func (r *RepositoryImpl) StoreLesson(ctx context.Context, userId string, lesson Lesson) error {
	return r.WithTransaction(ctx, func(repo Repository) error {
		txRepo := repo.(*RepositoryImpl)
		now := time.Now().UnixMilli()
		query := `INSERT INTO lessons (id, user_id, student_name, parent_name, student_contact,
					parent_contact, course, lesson_number, description, created_at, updated_at)
				  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
		_, err := txRepo.getQueryer().ExecContext(ctx, query, lesson.Id, userId, lesson.StudentName,
			lesson.ParentName, lesson.StudentContact, lesson.ParentContact, lesson.Course,
			lesson.LessonNumber, lesson.Description, now, now)
		if err != nil {
			err := fmt.Errorf("could not store lesson: %w", err)
			log.Error(err)
			return err
		}
		return txRepo.storeSlots(ctx, lesson)
	})
}

func (r *RepositoryImpl) UpdateLesson(ctx context.Context, userId string, lesson Lesson) error {
	return r.WithTransaction(ctx, func(repo Repository) error {
		txRepo := repo.(*RepositoryImpl)
		query := `UPDATE lessons SET student_name = $1, parent_name = $2, student_contact = $3,
					parent_contact = $4, course = $5, lesson_number = $6, description = $7, updated_at = $8
				  WHERE id = $9 AND user_id = $10`
		result, err := txRepo.getQueryer().ExecContext(ctx, query, lesson.StudentName, lesson.ParentName,
			lesson.StudentContact, lesson.ParentContact, lesson.Course, lesson.LessonNumber,
			lesson.Description, time.Now().UnixMilli(), lesson.Id, userId)
		if err != nil {
			err := fmt.Errorf("could not update lesson: %w", err)
			log.Error(err)
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrLessonNotFound
		}

		deleteQuery := `DELETE FROM lesson_slots WHERE lesson_id = $1`
		if _, err := txRepo.getQueryer().ExecContext(ctx, deleteQuery, lesson.Id); err != nil {
			err := fmt.Errorf("could not delete lesson slots: %w", err)
			log.Error(err)
			return err
		}
		return txRepo.storeSlots(ctx, lesson)
	})
}

func (r *RepositoryImpl) storeSlots(ctx context.Context, lesson Lesson) error {
	query := `INSERT INTO lesson_slots (lesson_id, position, day_of_week, time) VALUES ($1, $2, $3, $4)`
	for i, slot := range lesson.Slots {
		if _, err := r.getQueryer().ExecContext(ctx, query, lesson.Id, i, string(slot.DayOfWeek), slot.Time); err != nil {
			err := fmt.Errorf("could not store lesson slot: %w", err)
			log.Error(err)
			return err
		}
	}
	return nil
}

func (r *RepositoryImpl) DeleteLesson(ctx context.Context, userId string, lessonId string) error {
	query := `DELETE FROM lessons WHERE id = $1 AND user_id = $2`
	result, err := r.getQueryer().ExecContext(ctx, query, lessonId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete lesson: %w", err)
		log.Error(err)
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrLessonNotFound
	}
	return nil
}

func (r *RepositoryImpl) ListAllLessons(ctx context.Context) ([]OwnedLesson, error) {
	query := `SELECT l.user_id, l.id, l.student_name, l.parent_name, l.student_contact, l.parent_contact,
				l.course, l.lesson_number, l.description, s.day_of_week, s.time
			  FROM lessons l
			  LEFT JOIN lesson_slots s ON s.lesson_id = l.id
			  ORDER BY l.user_id, l.id, s.position`

	rows, err := r.getQueryer().QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query lessons: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	owned := make([]OwnedLesson, 0, 10)
	for rows.Next() {
		var userId string
		var l Lesson
		var day, slotTime sql.NullString
		if err := rows.Scan(&userId, &l.Id, &l.StudentName, &l.ParentName, &l.StudentContact,
			&l.ParentContact, &l.Course, &l.LessonNumber, &l.Description, &day, &slotTime); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		if len(owned) > 0 && owned[len(owned)-1].Lesson.Id == l.Id {
			if day.Valid {
				last := &owned[len(owned)-1]
				last.Lesson.Slots = append(last.Lesson.Slots, ScheduleSlot{DayOfWeek: DayOfWeek(day.String), Time: slotTime.String})
			}
			continue
		}
		if day.Valid {
			l.Slots = append(l.Slots, ScheduleSlot{DayOfWeek: DayOfWeek(day.String), Time: slotTime.String})
		}
		owned = append(owned, OwnedLesson{UserId: userId, Lesson: l})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return owned, nil
}

func assembleLessons(rows *sql.Rows) ([]Lesson, error) {
	lessons := make([]Lesson, 0, 10)
	for rows.Next() {
		var l Lesson
		var day, slotTime sql.NullString
		if err := rows.Scan(&l.Id, &l.StudentName, &l.ParentName, &l.StudentContact,
			&l.ParentContact, &l.Course, &l.LessonNumber, &l.Description, &day, &slotTime); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		if len(lessons) > 0 && lessons[len(lessons)-1].Id == l.Id {
			if day.Valid {
				last := &lessons[len(lessons)-1]
				last.Slots = append(last.Slots, ScheduleSlot{DayOfWeek: DayOfWeek(day.String), Time: slotTime.String})
			}
			continue
		}
		if day.Valid {
			l.Slots = append(l.Slots, ScheduleSlot{DayOfWeek: DayOfWeek(day.String), Time: slotTime.String})
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lessons, nil
}
