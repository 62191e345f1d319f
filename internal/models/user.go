package model

import (
	"time"
)

// DateFields contient les champs d'audit standard pour toutes les entités
type DateFields struct {
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

type UserProfile struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsPublic bool   `json:"isPublic"`
	// Compteur rapide alimenté par le chemin heartbeat. Le total faisant
	// autorité pour le classement est recalculé depuis le ledger.
	TotalWorkPoints        int        `json:"totalWorkPoints"`
	LastWorkPointIncrement *time.Time `json:"lastWorkPointIncrement,omitempty"`
	JoinDate               time.Time  `json:"joinDate,omitempty"`
	DateFields
}

// UserStats regroupe les vues dérivées pour un utilisateur
type UserStats struct {
	UserID          string `json:"userId"`
	LifetimePoints  int    `json:"lifetimePoints"` // SUM du ledger
	TotalWorkPoints int    `json:"totalWorkPoints"`
	CurrentStreak   int    `json:"currentStreak"`
	LongestStreak   int    `json:"longestStreak"`
	TodayPoints     int    `json:"todayPoints"`
	YesterdayPoints int    `json:"yesterdayPoints"`
}
