package handler

import (
	"fmt"
	"net/http"

	"github.com/WordPulse/WordPulse-backend/internal/middleware"
	model "github.com/WordPulse/WordPulse-backend/internal/models"
	"github.com/WordPulse/WordPulse-backend/internal/service"
	"github.com/WordPulse/WordPulse-backend/internal/utils"
)

// syncRequest est l'union étiquetée du corps de /workpoints/sync : soit une
// entrée unique, soit un lot. La variante est décidée une seule fois ici,
// jamais ré-inspectée dans la logique métier.
type syncRequest struct {
	Date              string            `json:"date,omitempty"`
	WorkPoints        *int              `json:"workPoints,omitempty"`
	DeviceFingerprint string            `json:"deviceFingerprint,omitempty"`
	Entries           []model.SyncEntry `json:"entries,omitempty"`
}

// entries résout l'union : (entrées du lot, est un lot, erreur)
func (req *syncRequest) entries() ([]model.SyncEntry, bool, error) {
	if len(req.Entries) > 0 {
		if req.Date != "" || req.WorkPoints != nil || req.DeviceFingerprint != "" {
			return nil, true, service.Validationf("body must be either a single entry or an entries list, not both")
		}
		return req.Entries, true, nil
	}
	if req.WorkPoints == nil {
		return nil, false, service.Validationf("workPoints is required")
	}
	return []model.SyncEntry{{
		Date:              req.Date,
		WorkPoints:        *req.WorkPoints,
		DeviceFingerprint: req.DeviceFingerprint,
	}}, false, nil
}

// SyncWorkPoints réconcilie les observations d'un ou plusieurs appareils
func SyncWorkPoints(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, utils.CodeUnauthorized, "user not found in context")
		return
	}

	var req syncRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, utils.CodeValidation, "invalid JSON body")
		return
	}

	entries, bulk, err := req.entries()
	if err != nil {
		fail(w, err)
		return
	}

	saved, err := syncSvc.BulkUpsert(r.Context(), user.ID, r.UserAgent(), entries)
	if err != nil {
		fail(w, err)
		return
	}

	if !bulk {
		utils.Success(w, saved[0])
		return
	}
	utils.Success(w, saved)
}

// Heartbeat est le ping d'activité rate-limité. Un refus n'est pas une
// erreur : la réponse porte l'attente restante.
func Heartbeat(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, utils.CodeUnauthorized, "user not found in context")
		return
	}

	res, err := syncSvc.Heartbeat(r.Context(), user.ID)
	if err != nil {
		fail(w, err)
		return
	}

	if !res.Accepted {
		utils.JSON(w, http.StatusTooManyRequests, utils.APIResponse{
			Success: false,
			Code:    utils.CodeRateLimited,
			Error:   fmt.Sprintf("please wait %ds before the next heartbeat", res.RetryInSeconds),
			Data:    res,
		})
		return
	}

	utils.Success(w, res)
}

// GetDailyTotals renvoie l'historique journalier agrégé du demandeur
func GetDailyTotals(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, utils.CodeUnauthorized, "user not found in context")
		return
	}

	totals, err := syncSvc.DailyTotals(r.Context(), user.ID)
	if err != nil {
		fail(w, err)
		return
	}
	if totals == nil {
		totals = []model.DayTotal{}
	}
	utils.Success(w, totals)
}

// GetStreak renvoie les séries courante et record du demandeur
func GetStreak(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, utils.CodeUnauthorized, "user not found in context")
		return
	}

	streak, err := syncSvc.Streak(r.Context(), user.ID)
	if err != nil {
		fail(w, err)
		return
	}
	utils.Success(w, streak)
}
