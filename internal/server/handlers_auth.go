package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/folium-app/folium/internal/common"
	"github.com/folium-app/folium/internal/models"
)

// signJWT creates a signed HMAC-SHA256 JWT for the given user.
func signJWT(user *models.User, config *common.AuthConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"iss":      "folium-server",
		"iat":      now.Unix(),
		"exp":      now.Add(config.GetTokenExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// validateUsername checks that a username is safe for storage.
func validateUsername(username string) string {
	if username == "" {
		return "username is required"
	}
	if len(username) > 128 {
		return "username must be 128 characters or fewer"
	}
	for _, c := range username {
		if c < 0x20 || c == 0x7f {
			return "username contains invalid control characters"
		}
	}
	return ""
}

// hashPassword hashes a password with bcrypt, truncating to bcrypt's 72-byte
// input limit.
func hashPassword(password string) (string, error) {
	passwordBytes := []byte(password)
	if len(passwordBytes) > 72 {
		passwordBytes = passwordBytes[:72]
	}
	hash, err := bcrypt.GenerateFromPassword(passwordBytes, 10)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// userResponse is the public view of an account.
func userResponse(user *models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	}
}

// handleAuthRegister handles POST /api/auth/register.
func (s *Server) handleAuthRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if errMsg := validateUsername(req.Username); errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}
	if req.Password == "" {
		WriteError(w, http.StatusBadRequest, "password is required")
		return
	}

	ctx := r.Context()
	store := s.app.Storage.UserStore()

	if _, err := store.GetByUsername(ctx, req.Username); err == nil {
		WriteError(w, http.StatusConflict, "username already exists")
		return
	}
	if req.Email != "" {
		if _, err := store.GetByEmail(ctx, req.Email); err == nil {
			WriteError(w, http.StatusConflict, "email already exists")
			return
		}
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := store.Save(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("username", req.Username).Msg("Failed to save user")
		WriteError(w, http.StatusInternalServerError, "failed to save user")
		return
	}

	token, err := signJWT(user, &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign JWT")
		WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"access_token": token,
		"user":         userResponse(user),
	})
}

// handleAuthLogin handles POST /api/auth/login.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	store := s.app.Storage.UserStore()

	// Same generic error for unknown user and wrong password.
	user, err := store.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		WriteError(w, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
		return
	}

	passwordBytes := []byte(req.Password)
	if len(passwordBytes) > 72 {
		passwordBytes = passwordBytes[:72]
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordBytes); err != nil {
		WriteError(w, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
		return
	}

	token, err := signJWT(user, &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign JWT")
		WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"user":         userResponse(user),
	})
}

// handleAuthProfile handles GET /api/auth/profile.
func (s *Server) handleAuthProfile(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uc := requireUser(w, r)
	if uc == nil {
		return
	}

	user, err := s.app.Storage.UserStore().Get(r.Context(), uc.UserID)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "user not found")
		return
	}

	WriteJSON(w, http.StatusOK, userResponse(user))
}
