package handler

import (
	"net/http"
	"strconv"

	"github.com/WordPulse/WordPulse-backend/internal/middleware"
	"github.com/WordPulse/WordPulse-backend/internal/utils"
)

// GetLeaderboard récupère le classement général, optionnellement tronqué
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, utils.CodeValidation, "limit must be an integer")
			return
		}
		entries, err := boardSvc.Top(r.Context(), limit)
		if err != nil {
			fail(w, err)
			return
		}
		utils.Success(w, entries)
		return
	}

	entries, err := boardSvc.Full(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	utils.Success(w, entries)
}

// GetTopUsers récupère les N premiers du classement
func GetTopUsers(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		utils.Error(w, http.StatusBadRequest, utils.CodeValidation, "limit is required")
		return
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, utils.CodeValidation, "limit must be an integer")
		return
	}

	entries, err := boardSvc.Top(r.Context(), limit)
	if err != nil {
		fail(w, err)
		return
	}
	utils.Success(w, entries)
}

// GetLeaderboardPage récupère une page du classement avec métadonnées
func GetLeaderboardPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := strconv.Atoi(query.Get("page"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, utils.CodeValidation, "page must be an integer")
		return
	}
	pageSize, err := strconv.Atoi(query.Get("pageSize"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, utils.CodeValidation, "pageSize must be an integer")
		return
	}

	result, err := boardSvc.Page(r.Context(), page, pageSize)
	if err != nil {
		fail(w, err)
		return
	}
	utils.Success(w, result)
}

// GetMyLeaderboard récupère le classement avec l'entrée du spectateur marquée
func GetMyLeaderboard(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, utils.CodeUnauthorized, "user not found in context")
		return
	}

	view, err := boardSvc.WithCurrentUser(r.Context(), user.ID)
	if err != nil {
		fail(w, err)
		return
	}
	utils.Success(w, view)
}
