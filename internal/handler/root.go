package handler

import (
	"net/http"

	"github.com/WordPulse/WordPulse-backend/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "WordPulse API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/signup", "description": "Inscription utilisateur"},
				{"method": "POST", "path": "/auth/login", "description": "Connexion utilisateur"},
				{"method": "POST", "path": "/auth/logout", "description": "Déconnexion utilisateur"},
			},
			"workpoints": []map[string]string{
				{"method": "POST", "path": "/workpoints/sync", "description": "Synchroniser les observations d'un ou plusieurs appareils"},
				{"method": "POST", "path": "/workpoints/heartbeat", "description": "Ping d'activité rate-limité (+1 point)"},
				{"method": "GET", "path": "/workpoints/daily", "description": "Totaux journaliers du demandeur"},
				{"method": "GET", "path": "/streak", "description": "Séries courante et record du demandeur"},
			},
			"leaderboard": []map[string]string{
				{"method": "GET", "path": "/leaderboard", "description": "Classement général (limit optionnel)"},
				{"method": "GET", "path": "/leaderboard/top", "description": "N premiers du classement"},
				{"method": "GET", "path": "/leaderboard/page", "description": "Classement paginé (page, pageSize)"},
				{"method": "GET", "path": "/leaderboard/me", "description": "Classement avec l'entrée du demandeur marquée"},
			},
			"users": []map[string]string{
				{"method": "GET", "path": "/users/{id}/stats", "description": "Statistiques dérivées d'un utilisateur"},
			},
			"system": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check"},
			},
		},
	}

	utils.Success(w, routes)
}
