package scanner

import (
	"database/sql"

	model "github.com/WordPulse/WordPulse-backend/internal/models"
	"github.com/WordPulse/WordPulse-backend/internal/utils"
)

// ScanUserProfile scanne une ligne SQL vers un UserProfile
// Utilise les types sql.Null* et les convertit automatiquement
func ScanUserProfile(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.UserProfile, error) {
	var user model.UserProfile
	var lastIncrement sql.NullTime

	err := scanner.Scan(
		&user.ID, &user.Name, &user.Email, &user.IsPublic,
		&user.TotalWorkPoints, &lastIncrement,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.LastWorkPointIncrement = utils.NullTimeToPointer(lastIncrement)

	return &user, nil
}

// ScanWorkPointEntry scanne une ligne SQL vers un WorkPointEntry
func ScanWorkPointEntry(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.WorkPointEntry, error) {
	var entry model.WorkPointEntry

	err := scanner.Scan(
		&entry.ID, &entry.UserID, &entry.StudyDate, &entry.DeviceFingerprint,
		&entry.WorkPoints, &entry.LastSync, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}
