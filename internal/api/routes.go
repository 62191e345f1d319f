package api

import (
	"net/http"

	"github.com/WordPulse/WordPulse-backend/internal/handler"
	"github.com/WordPulse/WordPulse-backend/internal/middleware"
	"github.com/WordPulse/WordPulse-backend/internal/store"
	"github.com/WordPulse/WordPulse-backend/internal/utils"
	"github.com/fatih/color"
	"github.com/gorilla/mux"
)

func SetupRouter(s store.Store) http.Handler {
	handler.Init(s)

	r := mux.NewRouter()
	r.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/signup", handler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)

	// Leaderboard (public)
	r.HandleFunc("/leaderboard", handler.GetLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/top", handler.GetTopUsers).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/page", handler.GetLeaderboardPage).Methods(http.MethodGet)

	// Routes authentifiées
	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware(s))
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/workpoints/sync", handler.SyncWorkPoints).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/workpoints/heartbeat", handler.Heartbeat).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/workpoints/daily", handler.GetDailyTotals).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/streak", handler.GetStreak).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/leaderboard/me", handler.GetMyLeaderboard).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/{id}/stats", handler.GetUserStats).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		utils.Error(w, http.StatusNotFound, utils.CodeNotFound, "route not found")
	})

	return r
}
