package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tutormaster/tutormaster/internal/rest"
)

type CredentialsDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	Id    string `json:"id"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{
		userService: userService,
	}
}

// Register godoc
// @Summary Register a new tutor account
// @Description Creates an account and returns it together with a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsDTO true "Credentials"
// @Success 201 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 409 {object} rest.ErrorResponse "Email already registered"
// @Router /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Registering user")

	credentials, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, token, err := h.userService.Register(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Email already registered"})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(userToDTO(user, token)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Login godoc
// @Summary Log in with email and password
// @Description Returns the account together with a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsDTO true "Credentials"
// @Success 200 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 401 {object} rest.ErrorResponse "Invalid email or password"
// @Router /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Logging in user")

	credentials, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, token, err := h.userService.Authenticate(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid email or password"})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(userToDTO(user, token)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (CredentialsDTO, bool) {
	var credentials CredentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return CredentialsDTO{}, false
	}
	credentials.Email = strings.TrimSpace(credentials.Email)
	if credentials.Email == "" || credentials.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Email and password are required"})
		return CredentialsDTO{}, false
	}
	return credentials, true
}

func userToDTO(u User, token string) UserDTO {
	return UserDTO{
		Id:    u.Id,
		Email: u.Email,
		Token: token,
	}
}
