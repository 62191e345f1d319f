package handler

import (
	"errors"
	"net/http"

	"github.com/WordPulse/WordPulse-backend/internal/service"
	"github.com/WordPulse/WordPulse-backend/internal/store"
	"github.com/WordPulse/WordPulse-backend/internal/utils"
)

var (
	db       store.Store
	syncSvc  *service.SyncService
	boardSvc *service.LeaderboardService
)

// Init câble les handlers sur le store injecté
func Init(s store.Store) {
	db = s
	syncSvc = service.NewSyncService(s)
	boardSvc = service.NewLeaderboardService(s)
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}

// fail traduit une erreur interne en réponse enveloppe. Les détails du
// stockage ne traversent jamais.
func fail(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.Error(w, http.StatusBadRequest, utils.CodeValidation, ve.Error())
	case errors.Is(err, store.ErrNotFound):
		utils.Error(w, http.StatusNotFound, utils.CodeNotFound, "resource not found")
	default:
		// Échec transitoire du stockage : réessayable côté client
		utils.Error(w, http.StatusInternalServerError, utils.CodeStorage, "temporary storage failure, please retry")
	}
}
