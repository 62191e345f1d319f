package utils

import (
	"database/sql"
	"time"
)

// NullTimeToPointer convertit sql.NullTime en *time.Time
func NullTimeToPointer(nt sql.NullTime) *time.Time {
	if nt.Valid {
		return &nt.Time
	}
	return nil
}
