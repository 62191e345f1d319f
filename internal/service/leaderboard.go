package service

import (
	"context"
	"sort"
	"time"

	model "github.com/WordPulse/WordPulse-backend/internal/models"
	"github.com/WordPulse/WordPulse-backend/internal/store"
)

// LeaderboardService produit le classement des utilisateurs publics, calculé
// à la demande — aucune vue dérivée n'est persistée ni mise en cache.
type LeaderboardService struct {
	store store.Store
	now   func() time.Time
}

func NewLeaderboardService(s store.Store) *LeaderboardService {
	return &LeaderboardService{store: s, now: time.Now}
}

// build assemble le classement complet : une entrée par utilisateur public,
// triée puis rangée positionnellement.
func (l *LeaderboardService) build(ctx context.Context) ([]model.LeaderboardEntry, error) {
	users, err := l.store.PublicUsers(ctx)
	if err != nil {
		return nil, err
	}

	now := l.now()
	today := now.Format(store.DateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(store.DateLayout)

	entries := make([]model.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		totals, err := l.store.DailyTotals(ctx, u.ID)
		if err != nil {
			return nil, err
		}

		entry := model.LeaderboardEntry{
			UserID:        u.ID,
			UserName:      u.Name,
			Email:         u.Email,
			CurrentStreak: CurrentStreak(totals, now),
		}
		for _, t := range totals {
			entry.TotalWorkPoints += t.Points
			switch t.Date {
			case today:
				entry.TodayPoints = t.Points
			case yesterday:
				entry.YesterdayPoints = t.Points
			}
		}
		entries = append(entries, entry)
	}

	// Clé primaire : points d'hier, décroissant. Hier plutôt qu'aujourd'hui :
	// le jour courant est encore en cours d'accumulation au moment de la
	// requête. Départage : total vie entière décroissant.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].YesterdayPoints != entries[j].YesterdayPoints {
			return entries[i].YesterdayPoints > entries[j].YesterdayPoints
		}
		return entries[i].TotalWorkPoints > entries[j].TotalWorkPoints
	})

	// Rangs strictement positionnels : jamais de rang partagé
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (l *LeaderboardService) Full(ctx context.Context) ([]model.LeaderboardEntry, error) {
	return l.build(ctx)
}

// WithCurrentUser marque l'entrée du spectateur et la remonte à part, même si
// elle tombe hors d'une tranche demandée. Un spectateur privé voit le
// classement mais n'y figure pas.
func (l *LeaderboardService) WithCurrentUser(ctx context.Context, userID string) (*model.LeaderboardView, error) {
	entries, err := l.build(ctx)
	if err != nil {
		return nil, err
	}

	view := &model.LeaderboardView{Entries: entries}
	for i := range entries {
		if entries[i].UserID == userID {
			entries[i].IsCurrentUser = true
			cu := entries[i]
			view.CurrentUser = &cu
			break
		}
	}
	return view, nil
}

func (l *LeaderboardService) Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, Validationf("limit must be positive")
	}
	entries, err := l.build(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (l *LeaderboardService) Page(ctx context.Context, page, pageSize int) (*model.LeaderboardPage, error) {
	if page <= 0 {
		return nil, Validationf("page must be positive")
	}
	if pageSize <= 0 {
		return nil, Validationf("pageSize must be positive")
	}

	entries, err := l.build(ctx)
	if err != nil {
		return nil, err
	}

	total := len(entries)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	slice := []model.LeaderboardEntry{}
	if start < total {
		if end > total {
			end = total
		}
		slice = entries[start:end]
	}

	return &model.LeaderboardPage{
		Entries:     slice,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalUsers:  total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}, nil
}
