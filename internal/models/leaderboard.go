package model

type LeaderboardEntry struct {
	UserID          string `json:"userId"`
	UserName        string `json:"userName"`
	Email           string `json:"email"`
	TotalWorkPoints int    `json:"totalWorkPoints"` // total vie entière (SUM du ledger)
	CurrentStreak   int    `json:"currentStreak"`
	TodayPoints     int    `json:"todayPoints"`
	YesterdayPoints int    `json:"yesterdayPoints"`
	Rank            int    `json:"rank"`
	IsCurrentUser   bool   `json:"isCurrentUser,omitempty"`
}

// LeaderboardView ajoute l'entrée du spectateur, même hors tranche demandée
type LeaderboardView struct {
	Entries     []LeaderboardEntry `json:"entries"`
	CurrentUser *LeaderboardEntry  `json:"currentUser,omitempty"`
}

type LeaderboardPage struct {
	Entries     []LeaderboardEntry `json:"entries"`
	CurrentPage int                `json:"currentPage"`
	PageSize    int                `json:"pageSize"`
	TotalUsers  int                `json:"totalUsers"`
	TotalPages  int                `json:"totalPages"`
	HasNextPage bool               `json:"hasNextPage"`
	HasPrevPage bool               `json:"hasPrevPage"`
}
