package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) CreateUser(ctx context.Context, user User) error {
	query := `INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, user.Id, user.Email, user.PasswordHash, user.CreatedAt.UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not create user: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) GetUser(ctx context.Context, id string) (User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *RepoImpl) GetUserByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *RepoImpl) scanUser(row *sql.Row) (User, error) {
	var user User
	var createdAtMillis int64
	err := row.Scan(&user.Id, &user.Email, &user.PasswordHash, &createdAtMillis)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		err := fmt.Errorf("could not scan user: %w", err)
		log.Error(err)
		return User{}, err
	}
	user.CreatedAt = time.UnixMilli(createdAtMillis)
	return user, nil
}
