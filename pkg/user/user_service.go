package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tutormaster/tutormaster/internal/auth"
	"github.com/tutormaster/tutormaster/internal/event_bus"
	"golang.org/x/crypto/bcrypt"
)

var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid email or password")

type Service interface {
	Register(ctx context.Context, email string, password string) (User, string, error)
	Authenticate(ctx context.Context, email string, password string) (User, string, error)
	GetUser(ctx context.Context, id string) (User, error)
}

type ServiceImpl struct {
	repo     Repo
	tokens   *auth.TokenIssuer
	eventBus *event_bus.EventBus
}

func NewUserService(repo Repo, tokens *auth.TokenIssuer, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, tokens: tokens, eventBus: eventBus}
}

// Register creates a new tutor account with a bcrypt-hashed password and
// returns the account together with a freshly issued bearer token.
func (s *ServiceImpl) Register(ctx context.Context, email string, password string) (User, string, error) {
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return User{}, "", ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, "", fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := User{
		Id:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.Id)
	if err != nil {
		return User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// Authenticate verifies the credentials and issues a bearer token. Unknown
// emails and password mismatches are indistinguishable to the caller.
func (s *ServiceImpl) Authenticate(ctx context.Context, email string, password string) (User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return User{}, "", ErrInvalidCredentials
	} else if err != nil {
		return User{}, "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Id)
	if err != nil {
		return User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	if s.eventBus != nil {
		event := event_bus.NewEvent(ctx, event_bus.EventUserLoggedIn, event_bus.UserLoggedIn{
			UserId: user.Id,
			Email:  user.Email,
		})
		if err := s.eventBus.Publish(event); err != nil {
			log.Errorf("failed to publish login event: %v", err)
		}
	}

	return user, token, nil
}

func (s *ServiceImpl) GetUser(ctx context.Context, id string) (User, error) {
	return s.repo.GetUser(ctx, id)
}
