package service

import (
	"fmt"
)

// ValidationError signale une entrée invalide du client. Rapportée en 4xx,
// jamais réessayée automatiquement.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validationf construit une ValidationError formatée
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
