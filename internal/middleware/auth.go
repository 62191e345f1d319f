package middleware

import (
	"context"
	"fmt"
	"net/http"

	model "github.com/WordPulse/WordPulse-backend/internal/models"
	"github.com/WordPulse/WordPulse-backend/internal/store"
	"github.com/WordPulse/WordPulse-backend/internal/utils"
	"github.com/gorilla/mux"
)

// Context keys
type contextKey string

const userContextKey = contextKey("user")

// AuthMiddleware valide le token de session et injecte l'utilisateur dans le
// contexte de la requête
func AuthMiddleware(s store.Store) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			if token == "" {
				utils.Error(w, http.StatusUnauthorized, utils.CodeUnauthorized, "missing authorization token")
				return
			}

			user, err := s.UserByToken(r.Context(), token)
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, utils.CodeUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, *user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext récupère l'utilisateur injecté par AuthMiddleware
func GetUserFromContext(r *http.Request) (model.UserProfile, error) {
	user, ok := r.Context().Value(userContextKey).(model.UserProfile)
	if !ok {
		return model.UserProfile{}, fmt.Errorf("no user in request context")
	}
	return user, nil
}

// WithUser retourne une requête portant l'utilisateur donné.
// Utilisé par les tests de handlers.
func WithUser(r *http.Request, user model.UserProfile) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userContextKey, user))
}
