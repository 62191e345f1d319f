package model

import (
	"time"
)

// WorkPointEntry est une ligne du ledger : le total absolu rapporté par un
// appareil pour un utilisateur et un jour donnés. Clé composite
// (userId, date, deviceFingerprint), jamais supprimée par le coeur.
type WorkPointEntry struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	StudyDate         string    `json:"date"` // YYYY-MM-DD, jour local serveur
	DeviceFingerprint string    `json:"deviceFingerprint"`
	WorkPoints        int       `json:"workPoints"`
	LastSync          time.Time `json:"lastSyncTimestamp"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// DayTotal est le total journalier dérivé : SUM sur tous les appareils
type DayTotal struct {
	Date   string `json:"date"`
	Points int    `json:"points"`
}

// SyncEntry est une observation envoyée par un client
type SyncEntry struct {
	Date              string `json:"date"`
	WorkPoints        int    `json:"workPoints"`
	DeviceFingerprint string `json:"deviceFingerprint,omitempty"`
}

// HeartbeatResult est le résultat du chemin heartbeat. Un refus n'est pas une
// erreur : RetryInSeconds indique l'attente restante.
type HeartbeatResult struct {
	Accepted        bool   `json:"accepted"`
	RetryInSeconds  int    `json:"retryInSeconds,omitempty"`
	TotalWorkPoints int    `json:"totalWorkPoints"`
	Date            string `json:"date,omitempty"`
}

// StreakState est dérivé à la demande, jamais persisté
type StreakState struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}
