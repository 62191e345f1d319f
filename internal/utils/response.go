package utils

import (
	"encoding/json"
	"net/http"

	"github.com/WordPulse/WordPulse-backend/internal/logger"
)

// Codes d'erreur lisibles par machine renvoyés dans l'enveloppe
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeRateLimited  = "RATE_LIMITED"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeStorage      = "STORAGE_ERROR"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

// Error renvoie une enveloppe d'échec avec code machine + message humain.
// Jamais de détails internes du stockage dans le message.
func Error(w http.ResponseWriter, status int, code, msg string) {
	logger.Error("[%d][%s] %s", status, code, msg)
	JSON(w, status, APIResponse{Success: false, Code: code, Error: msg})
}

func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Message: msg})
}
