package handler

import (
	"errors"
	"net/http"

	"github.com/WordPulse/WordPulse-backend/internal/store"
	"github.com/WordPulse/WordPulse-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsPublic *bool  `json:"isPublic,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup crée un compte et ouvre une session
func Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, utils.CodeValidation, "invalid JSON body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.Error(w, http.StatusBadRequest, utils.CodeValidation, "name, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(w, err)
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	user, err := db.CreateUser(r.Context(), req.Name, req.Email, string(hash), isPublic)
	if err != nil {
		fail(w, err)
		return
	}

	token, err := db.CreateSession(r.Context(), user.ID)
	if err != nil {
		fail(w, err)
		return
	}

	utils.Success(w, map[string]interface{}{"user": user, "token": token})
}

// Login vérifie les identifiants et ouvre une session
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, utils.CodeValidation, "invalid JSON body")
		return
	}

	userID, hash, err := db.CredentialsByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		utils.Error(w, http.StatusUnauthorized, utils.CodeUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		fail(w, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		utils.Error(w, http.StatusUnauthorized, utils.CodeUnauthorized, "invalid credentials")
		return
	}

	user, err := db.UserByID(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}

	token, err := db.CreateSession(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}

	utils.Success(w, map[string]interface{}{"user": user, "token": token})
}

// Logout ferme la session du token présenté
func Logout(w http.ResponseWriter, r *http.Request) {
	token, err := utils.GetToken(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, utils.CodeUnauthorized, "missing authorization token")
		return
	}

	if err := db.CloseSession(r.Context(), token); err != nil {
		fail(w, err)
		return
	}
	utils.Message(w, "logged out")
}
