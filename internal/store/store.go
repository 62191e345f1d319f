package store

import (
	"context"
	"errors"

	model "github.com/WordPulse/WordPulse-backend/internal/models"
)

// ErrNotFound est renvoyé quand la ligne visée n'existe pas (ou est supprimée)
var ErrNotFound = errors.New("not found")

// Store est la capacité de stockage injectée dans les services. Une
// implémentation Postgres sert en production, une implémentation mémoire sert
// les tests ; les deux doivent respecter les mêmes sémantiques atomiques.
type Store interface {
	// Ledger des points de travail
	UpsertObservation(ctx context.Context, userID, date, fingerprint string, points int) (*model.WorkPointEntry, error)
	DailyTotals(ctx context.Context, userID string) ([]model.DayTotal, error)

	// Heartbeat : crédit fixe sous rate limiting, en une seule transaction.
	// Un refus est un résultat normal (Accepted=false), pas une erreur.
	Heartbeat(ctx context.Context, userID string) (*model.HeartbeatResult, error)

	// Utilisateurs et sessions
	PublicUsers(ctx context.Context) ([]model.UserProfile, error)
	UserByID(ctx context.Context, id string) (*model.UserProfile, error)
	UserByToken(ctx context.Context, token string) (*model.UserProfile, error)
	CreateUser(ctx context.Context, name, email, passwordHash string, isPublic bool) (*model.UserProfile, error)
	CredentialsByEmail(ctx context.Context, email string) (userID, passwordHash string, err error)
	CreateSession(ctx context.Context, userID string) (string, error)
	CloseSession(ctx context.Context, token string) error
}
