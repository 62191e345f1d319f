package service

import (
	"context"
	"crypto/sha1"
	"fmt"
	"time"

	model "github.com/WordPulse/WordPulse-backend/internal/models"
	"github.com/WordPulse/WordPulse-backend/internal/store"
)

// SyncService réconcilie les observations d'appareils dans le ledger et porte
// le chemin heartbeat rate-limité.
type SyncService struct {
	store store.Store
	now   func() time.Time
}

func NewSyncService(s store.Store) *SyncService {
	return &SyncService{store: s, now: time.Now}
}

// UpsertObservation valide puis applique une observation : le total absolu de
// l'appareil pour le jour remplace entièrement la valeur précédente.
// Resoumettre la même valeur est un no-op (idempotent, sûr à réessayer).
func (s *SyncService) UpsertObservation(ctx context.Context, userID string, entry model.SyncEntry) (*model.WorkPointEntry, error) {
	date, err := validateEntry(userID, entry)
	if err != nil {
		return nil, err
	}
	return s.store.UpsertObservation(ctx, userID, date, entry.DeviceFingerprint, entry.WorkPoints)
}

// BulkUpsert applique chaque entrée du lot. Les entrées sans fingerprint
// partagent un compartiment de repli synthétisé une fois par appel, dérivé du
// User-Agent et de l'heure serveur : deux appels distincts ne collisionnent
// pas entre eux.
func (s *SyncService) BulkUpsert(ctx context.Context, userID, userAgent string, entries []model.SyncEntry) ([]*model.WorkPointEntry, error) {
	if len(entries) == 0 {
		return nil, Validationf("entries must not be empty")
	}

	fallback := fallbackFingerprint(userAgent, s.now())
	prepared := make([]model.SyncEntry, len(entries))
	for i, e := range entries {
		if e.DeviceFingerprint == "" {
			e.DeviceFingerprint = fallback
		}
		// Tout valider avant d'écrire quoi que ce soit
		if _, err := validateEntry(userID, e); err != nil {
			return nil, err
		}
		prepared[i] = e
	}

	saved := make([]*model.WorkPointEntry, 0, len(prepared))
	for _, e := range prepared {
		entry, err := s.UpsertObservation(ctx, userID, e)
		if err != nil {
			return nil, err
		}
		saved = append(saved, entry)
	}
	return saved, nil
}

// Heartbeat délègue au store : l'admission et le crédit doivent être une seule
// opération atomique par utilisateur.
func (s *SyncService) Heartbeat(ctx context.Context, userID string) (*model.HeartbeatResult, error) {
	if userID == "" {
		return nil, Validationf("userId is required")
	}
	return s.store.Heartbeat(ctx, userID)
}

func (s *SyncService) DailyTotals(ctx context.Context, userID string) ([]model.DayTotal, error) {
	return s.store.DailyTotals(ctx, userID)
}

// Streak calcule l'état de série pour un utilisateur. Aucun historique donne
// des zéros, jamais une erreur.
func (s *SyncService) Streak(ctx context.Context, userID string) (*model.StreakState, error) {
	totals, err := s.store.DailyTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.StreakState{
		CurrentStreak: CurrentStreak(totals, s.now()),
		LongestStreak: LongestStreak(totals),
	}, nil
}

// Stats assemble les vues dérivées d'un utilisateur. Le total vie entière est
// recalculé depuis le ledger ; le compteur rapide est renvoyé à côté.
func (s *SyncService) Stats(ctx context.Context, userID string) (*model.UserStats, error) {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	totals, err := s.store.DailyTotals(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := now.Format(store.DateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(store.DateLayout)

	stats := &model.UserStats{
		UserID:          user.ID,
		TotalWorkPoints: user.TotalWorkPoints,
		CurrentStreak:   CurrentStreak(totals, now),
		LongestStreak:   LongestStreak(totals),
	}
	for _, t := range totals {
		stats.LifetimePoints += t.Points
		switch t.Date {
		case today:
			stats.TodayPoints = t.Points
		case yesterday:
			stats.YesterdayPoints = t.Points
		}
	}
	return stats, nil
}

func validateEntry(userID string, entry model.SyncEntry) (string, error) {
	if userID == "" {
		return "", Validationf("userId is required")
	}
	if entry.Date == "" {
		return "", Validationf("date is required")
	}
	parsed, err := time.Parse(store.DateLayout, entry.Date)
	if err != nil {
		return "", Validationf("date must be YYYY-MM-DD")
	}
	if entry.DeviceFingerprint == "" {
		return "", Validationf("deviceFingerprint is required")
	}
	if entry.WorkPoints < 0 {
		return "", Validationf("workPoints must be >= 0")
	}
	return parsed.Format(store.DateLayout), nil
}

// fallbackFingerprint isole les entrées d'un appel dans leur propre
// compartiment plutôt que de les laisser collisionner silencieusement
func fallbackFingerprint(userAgent string, now time.Time) string {
	sum := sha1.Sum([]byte(userAgent))
	return fmt.Sprintf("ua:%x:%d", sum[:6], now.UnixNano())
}
