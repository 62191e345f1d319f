package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	model "github.com/WordPulse/WordPulse-backend/internal/models"
	"github.com/google/uuid"
)

// Memory est l'implémentation en mémoire du Store, avec les mêmes
// sémantiques atomiques que Postgres (mutex par store au lieu de transactions
// par ligne). Now est remplaçable dans les tests pour piloter l'horloge.
type Memory struct {
	mu  sync.Mutex
	Now func() time.Time

	users    map[string]*memUser
	sessions map[string]string // token -> userID
	ledger   map[string]*model.WorkPointEntry
}

type memUser struct {
	model.UserProfile
	passwordHash string
}

func NewMemory() *Memory {
	return &Memory{
		Now:      time.Now,
		users:    make(map[string]*memUser),
		sessions: make(map[string]string),
		ledger:   make(map[string]*model.WorkPointEntry),
	}
}

func ledgerKey(userID, date, fingerprint string) string {
	return userID + "|" + date + "|" + fingerprint
}

func (m *Memory) UpsertObservation(ctx context.Context, userID, date, fingerprint string, points int) (*model.WorkPointEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.Now()
	key := ledgerKey(userID, date, fingerprint)
	if entry, ok := m.ledger[key]; ok {
		entry.WorkPoints = points
		entry.LastSync = now
		entry.UpdatedAt = now
		cp := *entry
		return &cp, nil
	}

	entry := &model.WorkPointEntry{
		ID:                uuid.NewString(),
		UserID:            userID,
		StudyDate:         date,
		DeviceFingerprint: fingerprint,
		WorkPoints:        points,
		LastSync:          now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	m.ledger[key] = entry
	cp := *entry
	return &cp, nil
}

func (m *Memory) DailyTotals(ctx context.Context, userID string) ([]model.DayTotal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byDay := make(map[string]int)
	for _, entry := range m.ledger {
		if entry.UserID == userID {
			byDay[entry.StudyDate] += entry.WorkPoints
		}
	}

	totals := make([]model.DayTotal, 0, len(byDay))
	for date, points := range byDay {
		totals = append(totals, model.DayTotal{Date: date, Points: points})
	}
	// Plus récent d'abord, comme la requête SQL
	sort.Slice(totals, func(i, j int) bool { return totals[i].Date > totals[j].Date })
	return totals, nil
}

func (m *Memory) Heartbeat(ctx context.Context, userID string) (*model.HeartbeatResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok || user.DeletedAt != nil {
		return nil, ErrNotFound
	}

	now := m.Now()
	if remaining := Remaining(user.LastWorkPointIncrement, now); remaining > 0 {
		return &model.HeartbeatResult{
			Accepted:        false,
			RetryInSeconds:  RetrySeconds(remaining),
			TotalWorkPoints: user.TotalWorkPoints,
		}, nil
	}

	ts := now
	user.LastWorkPointIncrement = &ts
	user.TotalWorkPoints += HeartbeatUnit
	user.UpdatedAt = now

	date := now.Format(DateLayout)
	key := ledgerKey(userID, date, HeartbeatDevice)
	if entry, ok := m.ledger[key]; ok {
		entry.WorkPoints += HeartbeatUnit
		entry.LastSync = now
		entry.UpdatedAt = now
	} else {
		m.ledger[key] = &model.WorkPointEntry{
			ID:                uuid.NewString(),
			UserID:            userID,
			StudyDate:         date,
			DeviceFingerprint: HeartbeatDevice,
			WorkPoints:        HeartbeatUnit,
			LastSync:          now,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
	}

	return &model.HeartbeatResult{Accepted: true, TotalWorkPoints: user.TotalWorkPoints, Date: date}, nil
}

func (m *Memory) PublicUsers(ctx context.Context) ([]model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var users []model.UserProfile
	for _, user := range m.users {
		if user.IsPublic && user.DeletedAt == nil {
			users = append(users, user.UserProfile)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (m *Memory) UserByID(ctx context.Context, id string) (*model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok || user.DeletedAt != nil {
		return nil, ErrNotFound
	}
	cp := user.UserProfile
	return &cp, nil
}

func (m *Memory) UserByToken(ctx context.Context, token string) (*model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	userID, ok := m.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	user, ok := m.users[userID]
	if !ok || user.DeletedAt != nil {
		return nil, ErrNotFound
	}
	cp := user.UserProfile
	return &cp, nil
}

func (m *Memory) CreateUser(ctx context.Context, name, email, passwordHash string, isPublic bool) (*model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email && user.DeletedAt == nil {
			return nil, fmt.Errorf("email already in use")
		}
	}

	now := m.Now()
	user := &memUser{
		UserProfile: model.UserProfile{
			ID:       uuid.NewString(),
			Name:     name,
			Email:    email,
			IsPublic: isPublic,
			JoinDate: now,
			DateFields: model.DateFields{
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		passwordHash: passwordHash,
	}
	m.users[user.ID] = user
	cp := user.UserProfile
	return &cp, nil
}

func (m *Memory) CredentialsByEmail(ctx context.Context, email string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email && user.DeletedAt == nil {
			return user.ID, user.passwordHash, nil
		}
	}
	return "", "", ErrNotFound
}

func (m *Memory) CreateSession(ctx context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := uuid.NewString()
	m.sessions[token] = userID
	return token, nil
}

func (m *Memory) CloseSession(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}
