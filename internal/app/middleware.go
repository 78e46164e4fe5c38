package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/tutormaster/tutormaster/internal/config"
	"github.com/tutormaster/tutormaster/internal/rest"
	"github.com/tutormaster/tutormaster/pkg/user"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Resolve the bearer token into the current user and put it on the context.
	// Registration and login are reachable without a token.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !strings.HasPrefix(req.URL.Path, "/api/") || strings.HasPrefix(req.URL.Path, "/api/auth/") {
				next.ServeHTTP(w, req)
				return
			}

			token := bearerToken(req)
			if token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			userId, err := deps.TokenIssuer.Validate(token)
			if err != nil {
				log.Debugf("token rejected: %v", err)
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := req.Context()
			u, err := deps.UserService.GetUser(ctx, userId)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					log.Debugf("user not found: %s", userId)
					unauthorized(w, "unknown user")
					return
				}
				log.Errorf("failed to get user: %v", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			ctx = user.WithUser(ctx, u)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}

func bearerToken(req *http.Request) string {
	header := req.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "unauthorized", Details: details})
}
