package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	model "github.com/WordPulse/WordPulse-backend/internal/models"
	"github.com/WordPulse/WordPulse-backend/internal/scanner"
	"github.com/WordPulse/WordPulse-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

const entryColumns = `id, user_id, to_char(study_date, 'YYYY-MM-DD'), device_fingerprint, work_points, last_sync, created_at, updated_at`

// UpsertObservation insère ou remplace le total absolu d'un appareil pour un
// jour. La résolution de conflit se fait côté base (ON CONFLICT), jamais en
// lecture-modification-écriture applicative.
func (s *Postgres) UpsertObservation(ctx context.Context, userID, date, fingerprint string, points int) (*model.WorkPointEntry, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO work_point_entries (id, user_id, study_date, device_fingerprint, work_points)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, study_date, device_fingerprint)
		DO UPDATE SET work_points = EXCLUDED.work_points, last_sync = NOW(), updated_at = NOW()
		RETURNING `+entryColumns,
		uuid.NewString(), userID, date, fingerprint, points,
	)

	entry, err := scanner.ScanWorkPointEntry(row)
	if err != nil {
		return nil, fmt.Errorf("could not upsert observation: %w", err)
	}
	return entry, nil
}

func (s *Postgres) DailyTotals(ctx context.Context, userID string) ([]model.DayTotal, error) {
	rows, err := s.db.Query(ctx, `
		SELECT to_char(study_date, 'YYYY-MM-DD') AS day, SUM(work_points)::int AS points
		FROM work_point_entries
		WHERE user_id = $1
		GROUP BY study_date
		ORDER BY study_date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not query daily totals: %w", err)
	}
	defer rows.Close()

	var totals []model.DayTotal
	for rows.Next() {
		var t model.DayTotal
		if err := rows.Scan(&t.Date, &t.Points); err != nil {
			return nil, fmt.Errorf("could not scan daily total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// Heartbeat exécute le crédit rate-limité en une transaction : avance
// conditionnelle du timestamp + compteur sur la ligne utilisateur, puis bump
// du compartiment "heartbeat" du jour. Tout ou rien.
func (s *Postgres) Heartbeat(ctx context.Context, userID string) (*model.HeartbeatResult, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not begin heartbeat transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// L'UPDATE conditionnel est la barrière anti-double-admission : deux
	// requêtes simultanées ne peuvent pas toutes les deux toucher la ligne.
	var total int
	err = tx.QueryRow(ctx, `
		UPDATE users
		SET total_work_points = total_work_points + $2,
		    last_work_point_increment = NOW(),
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		  AND (last_work_point_increment IS NULL
		       OR NOW() - last_work_point_increment >= make_interval(secs => $3))
		RETURNING total_work_points
	`, userID, HeartbeatUnit, CooldownSeconds).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		return s.heartbeatRejected(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("could not advance heartbeat state: %w", err)
	}

	var date string
	err = tx.QueryRow(ctx, `
		INSERT INTO work_point_entries (id, user_id, study_date, device_fingerprint, work_points)
		VALUES ($1, $2, CURRENT_DATE, $3, $4)
		ON CONFLICT (user_id, study_date, device_fingerprint)
		DO UPDATE SET work_points = work_point_entries.work_points + $4,
		              last_sync = NOW(), updated_at = NOW()
		RETURNING to_char(study_date, 'YYYY-MM-DD')
	`, uuid.NewString(), userID, HeartbeatDevice, HeartbeatUnit).Scan(&date)
	if err != nil {
		return nil, fmt.Errorf("could not credit heartbeat entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("could not commit heartbeat: %w", err)
	}

	return &model.HeartbeatResult{Accepted: true, TotalWorkPoints: total, Date: date}, nil
}

func (s *Postgres) heartbeatRejected(ctx context.Context, userID string) (*model.HeartbeatResult, error) {
	var last sql.NullTime
	var total int
	var now sql.NullTime
	err := s.db.QueryRow(ctx, `
		SELECT last_work_point_increment, total_work_points, NOW()
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`, userID).Scan(&last, &total, &now)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not read heartbeat state: %w", err)
	}

	remaining := Remaining(utils.NullTimeToPointer(last), now.Time)
	if remaining <= 0 {
		// Course perdue entre l'UPDATE et cette relecture
		remaining = Cooldown
	}
	return &model.HeartbeatResult{
		Accepted:        false,
		RetryInSeconds:  RetrySeconds(remaining),
		TotalWorkPoints: total,
	}, nil
}

const userColumns = `id, name, email, is_public, total_work_points, last_work_point_increment, join_date, created_at, updated_at`

// PublicUsers renvoie les seuls utilisateurs visibles publiquement : le filtre
// se fait à la source, jamais dans une tranche dérivée.
func (s *Postgres) PublicUsers(ctx context.Context) ([]model.UserProfile, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE is_public = TRUE AND deleted_at IS NULL
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("could not query public users: %w", err)
	}
	defer rows.Close()

	var users []model.UserProfile
	for rows.Next() {
		user, err := scanner.ScanUserProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan user row: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (s *Postgres) UserByID(ctx context.Context, id string) (*model.UserProfile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`, id)

	user, err := scanner.ScanUserProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not fetch user: %w", err)
	}
	return user, nil
}

func (s *Postgres) UserByToken(ctx context.Context, token string) (*model.UserProfile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT u.id, u.name, u.email, u.is_public, u.total_work_points,
		       u.last_work_point_increment, u.join_date, u.created_at, u.updated_at
		FROM users u
		INNER JOIN sessions s ON u.id = s.user_id
		WHERE s.token = $1 AND s.is_active = TRUE AND u.deleted_at IS NULL
	`, token)

	user, err := scanner.ScanUserProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not resolve token: %w", err)
	}
	return user, nil
}

func (s *Postgres) CreateUser(ctx context.Context, name, email, passwordHash string, isPublic bool) (*model.UserProfile, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, is_public)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		uuid.NewString(), name, email, passwordHash, isPublic,
	)

	user, err := scanner.ScanUserProfile(row)
	if err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}
	return user, nil
}

func (s *Postgres) CredentialsByEmail(ctx context.Context, email string) (string, string, error) {
	var userID, passwordHash string
	err := s.db.QueryRow(ctx, `
		SELECT id, password_hash FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`, email).Scan(&userID, &passwordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", ErrNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("could not fetch credentials: %w", err)
	}
	return userID, passwordHash, nil
}

func (s *Postgres) CreateSession(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO sessions (id, user_id, token, is_active)
		VALUES ($1, $2, $3, TRUE)
	`, uuid.NewString(), userID, token)
	if err != nil {
		return "", fmt.Errorf("could not create session: %w", err)
	}
	return token, nil
}

func (s *Postgres) CloseSession(ctx context.Context, token string) error {
	_, err := s.db.Exec(ctx, `UPDATE sessions SET is_active = FALSE WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("could not close session: %w", err)
	}
	return nil
}
