package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/database"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/logger"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/model"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/security"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/security/validation"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/utils"
)

const minPasswordLength = 8

// AuthHandler serves registration and login.
type AuthHandler struct {
	authService *security.AuthService
}

func NewAuthHandler(authService *security.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// RegisterUserHandler creates a local account.
func (h *AuthHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	username := validation.SanitizeText(strings.TrimSpace(payload.Username))
	email := strings.TrimSpace(payload.Email)
	if username == "" || email == "" {
		utils.SendJSONError(w, "Username and email are required", http.StatusBadRequest)
		return
	}
	if len(payload.Password) < minPasswordLength {
		utils.SendJSONError(w, "Password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	hash, err := model.HashPassword(payload.Password)
	if err != nil {
		ctxLogger.Error("Failed to hash password", "error", err)
		utils.SendJSONError(w, "Failed to create account", http.StatusInternalServerError)
		return
	}

	user, err := model.CreateUser(database.DB, username, email, hash)
	if err != nil {
		ctxLogger.Warn("Failed to create user", "username", username, "error", err)
		utils.SendJSONError(w, "Username or email already in use", http.StatusConflict)
		return
	}

	token, err := h.authService.GenerateToken(user.ID)
	if err != nil {
		ctxLogger.Error("Failed to issue token after registration", "userID", user.ID, "error", err)
		utils.SendJSONError(w, "Account created but login failed; please log in", http.StatusInternalServerError)
		return
	}

	ctxLogger.Info("User registered", "userID", user.ID, "username", user.Username)
	utils.SendJSON(w, authResponse{Token: token, User: user}, http.StatusCreated)
}

// LoginUserHandler authenticates a local account and issues a token.
func (h *AuthHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := model.GetUserByUsername(database.DB, strings.TrimSpace(payload.Username))
	if err != nil || !user.CheckPassword(payload.Password) {
		ctxLogger.Warn("Login failed", "username", payload.Username)
		utils.SendJSONError(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	token, err := h.authService.GenerateToken(user.ID)
	if err != nil {
		ctxLogger.Error("Failed to issue token", "userID", user.ID, "error", err)
		utils.SendJSONError(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	ctxLogger.Info("User logged in", "userID", user.ID)
	utils.SendJSON(w, authResponse{Token: token, User: user}, http.StatusOK)
}
