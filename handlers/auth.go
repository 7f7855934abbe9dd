package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LovationAdmin/wealth-sync/middleware"
	"github.com/LovationAdmin/wealth-sync/models"
	"github.com/LovationAdmin/wealth-sync/services"
	"github.com/LovationAdmin/wealth-sync/utils"
)

type AuthHandler struct {
	Accounts services.Table[models.Account]
	Profiles services.Table[models.UserProfile]
	Secret   []byte
	TokenTTL time.Duration
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, utils.FieldErrors{"_": {"must be a valid JSON object"}})
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if fe := utils.Validate(req); fe != nil {
		invalid(c, fe)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Accounts.GetByKey(ctx, req.Email); err == nil {
		invalid(c, utils.FieldErrors{"email": {"is already registered"}})
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to hash password", nil)
		return
	}

	now := time.Now().UTC()
	account := models.Account{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}
	err = h.Accounts.Insert(ctx, services.Row[models.Account]{
		ID: account.ID, OwnerID: account.ID, Key: account.Email, Data: account, CreatedAt: now,
	})
	if errors.Is(err, services.ErrConflict) {
		invalid(c, utils.FieldErrors{"email": {"is already registered"}})
		return
	}
	if err != nil {
		storeError(c, err, "Account")
		return
	}

	email := account.Email
	profile := models.UserProfile{ID: account.ID, FullName: strings.TrimSpace(req.FullName), Email: &email, CreatedAt: now}
	if err := h.Profiles.Insert(ctx, services.Row[models.UserProfile]{
		ID: account.ID, OwnerID: account.ID, Data: profile, CreatedAt: now,
	}); err != nil {
		storeError(c, err, "Profile")
		return
	}

	h.issue(c, http.StatusCreated, "signup", account, profile)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, utils.FieldErrors{"_": {"must be a valid JSON object"}})
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if fe := utils.Validate(req); fe != nil {
		invalid(c, fe)
		return
	}

	ctx := c.Request.Context()
	row, err := h.Accounts.GetByKey(ctx, req.Email)
	if err != nil || !utils.CheckPassword(req.Password, row.Data.PasswordHash) {
		utils.LogAuthEvent("login", req.Email, "invalid credentials")
		fail(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	account := row.Data
	if account.TOTPEnabled {
		if req.TOTPCode == "" {
			fail(c, http.StatusUnauthorized, "Two-factor code required", nil)
			return
		}
		if !utils.VerifyTOTP(account.TOTPSecret, req.TOTPCode) {
			utils.LogAuthEvent("login", req.Email, "invalid 2fa code")
			fail(c, http.StatusUnauthorized, "Invalid two-factor code", nil)
			return
		}
	}

	profileRow, err := h.Profiles.Get(ctx, account.ID)
	if err != nil {
		storeError(c, err, "Profile")
		return
	}
	h.issue(c, http.StatusOK, "login", account, profileRow.Data)
}

// SetupTOTP generates a secret; 2FA stays off until EnableTOTP confirms a code.
func (h *AuthHandler) SetupTOTP(c *gin.Context) {
	ctx := c.Request.Context()
	row, err := h.Accounts.Get(ctx, middleware.GetUserID(c))
	if err != nil {
		storeError(c, err, "Account")
		return
	}

	secret, url, err := utils.GenerateTOTPSecret(row.Data.Email)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to generate TOTP secret", nil)
		return
	}

	account := row.Data
	account.TOTPSecret = secret
	account.TOTPEnabled = false
	if err := h.Accounts.Update(ctx, account.ID, account); err != nil {
		storeError(c, err, "Account")
		return
	}

	respond(c, http.StatusOK, "Scan the QR code with your authenticator app", models.TOTPSetupResponse{Secret: secret, URL: url})
}

func (h *AuthHandler) EnableTOTP(c *gin.Context) {
	var req models.VerifyTOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, utils.FieldErrors{"_": {"must be a valid JSON object"}})
		return
	}
	if fe := utils.Validate(req); fe != nil {
		invalid(c, fe)
		return
	}

	ctx := c.Request.Context()
	row, err := h.Accounts.Get(ctx, middleware.GetUserID(c))
	if err != nil {
		storeError(c, err, "Account")
		return
	}
	account := row.Data
	if account.TOTPSecret == "" || !utils.VerifyTOTP(account.TOTPSecret, req.Code) {
		invalid(c, utils.FieldErrors{"code": {"is invalid"}})
		return
	}

	account.TOTPEnabled = true
	if err := h.Accounts.Update(ctx, account.ID, account); err != nil {
		storeError(c, err, "Account")
		return
	}
	utils.LogAuthEvent("2fa enabled", account.Email, "ok")
	respond(c, http.StatusOK, "Two-factor authentication enabled", nil)
}

func (h *AuthHandler) issue(c *gin.Context, status int, action string, account models.Account, profile models.UserProfile) {
	token, expiresAt, err := utils.GenerateAccessToken(h.Secret, account.ID, account.Email, h.TokenTTL)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to generate token", nil)
		return
	}
	utils.LogAuthEvent(action, account.Email, "ok")
	respond(c, status, "Authenticated", models.AuthResponse{
		Identity: models.Identity{
			UserID:      account.ID,
			Email:       account.Email,
			AccessToken: token,
			ExpiresAt:   expiresAt,
		},
		Profile: profile,
	})
}
