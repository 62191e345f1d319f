package handler

import (
	"net/http"

	"github.com/WordPulse/WordPulse-backend/internal/middleware"
	"github.com/WordPulse/WordPulse-backend/internal/utils"
	"github.com/gorilla/mux"
)

// GetUserStats renvoie les vues dérivées d'un utilisateur : total vie entière
// recalculé, compteur, séries, totaux du jour et de la veille. Un profil privé
// n'est visible que par lui-même et répond 404 aux autres.
func GetUserStats(w http.ResponseWriter, r *http.Request) {
	viewer, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, utils.CodeUnauthorized, "user not found in context")
		return
	}

	userID := mux.Vars(r)["id"]

	target, err := db.UserByID(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	if !target.IsPublic && target.ID != viewer.ID {
		utils.Error(w, http.StatusNotFound, utils.CodeNotFound, "resource not found")
		return
	}

	stats, err := syncSvc.Stats(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	utils.Success(w, stats)
}
