package store

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/LovationAdmin/wealth-sync/client"
	"github.com/LovationAdmin/wealth-sync/models"
	"github.com/LovationAdmin/wealth-sync/storage"
	"github.com/LovationAdmin/wealth-sync/utils"
)

// AuthStore holds the session identity issued by the auth collaborator.
type AuthStore struct {
	api     client.API
	persist Persister
	now     func() time.Time

	mu       sync.Mutex
	identity *models.Identity
	status   Status
	errMsg   string

	subs notifier
}

func NewAuthStore(api client.API, persist Persister) *AuthStore {
	return &AuthStore{api: api, persist: persist, now: time.Now, status: StatusIdle}
}

// Identity returns the current session, if one is live.
func (s *AuthStore) Identity() (models.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil || s.identity.Expired(s.now()) {
		return models.Identity{}, false
	}
	return *s.identity, true
}

// UserID is "" when signed out.
func (s *AuthStore) UserID() string {
	id, _ := s.Identity()
	return id.UserID
}

// Token is the bearer token source handed to client.Remote.
func (s *AuthStore) Token() string {
	id, _ := s.Identity()
	return id.AccessToken
}

func (s *AuthStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *AuthStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *AuthStore) Subscribe(fn func()) (cancel func()) { return s.subs.subscribe(fn) }

func (s *AuthStore) SignIn(ctx context.Context, email, password, totpCode string) (models.AuthResponse, error) {
	req := models.LoginRequest{
		Email:    strings.TrimSpace(strings.ToLower(email)),
		Password: password,
		TOTPCode: strings.TrimSpace(totpCode),
	}
	if fe := utils.Validate(req); fe != nil {
		return models.AuthResponse{}, client.NewValidationError(fe)
	}
	return s.authenticate(ctx, "login", "/api/auth/login", req.Email, req)
}

func (s *AuthStore) SignUp(ctx context.Context, email, password, fullName string) (models.AuthResponse, error) {
	req := models.SignupRequest{
		Email:    strings.TrimSpace(strings.ToLower(email)),
		Password: password,
		FullName: strings.TrimSpace(fullName),
	}
	if fe := utils.Validate(req); fe != nil {
		return models.AuthResponse{}, client.NewValidationError(fe)
	}
	return s.authenticate(ctx, "signup", "/api/auth/signup", req.Email, req)
}

// SetupTOTP asks the server for a new authenticator secret for the
// signed-in account.
func (s *AuthStore) SetupTOTP(ctx context.Context) (models.TOTPSetupResponse, error) {
	data, err := s.api.Do(ctx, http.MethodPost, "/api/auth/2fa/setup", nil, struct{}{})
	if err != nil {
		return models.TOTPSetupResponse{}, err
	}
	return client.DecodeData[models.TOTPSetupResponse](data)
}

func (s *AuthStore) EnableTOTP(ctx context.Context, code string) error {
	req := models.VerifyTOTPRequest{Code: strings.TrimSpace(code)}
	if fe := utils.Validate(req); fe != nil {
		return client.NewValidationError(fe)
	}
	_, err := s.api.Do(ctx, http.MethodPost, "/api/auth/2fa/enable", nil, req)
	return err
}

// SignOut forgets the identity in memory and on disk.
func (s *AuthStore) SignOut(ctx context.Context) {
	s.mu.Lock()
	email := ""
	if s.identity != nil {
		email = s.identity.Email
	}
	s.identity = nil
	s.status = StatusIdle
	s.errMsg = ""
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.Delete(ctx, storage.PartitionAuth); err != nil {
			utils.SafeWarn("[Auth] clear persisted identity: %v", err)
		}
	}
	utils.LogAuthEvent("logout", email, "ok")
	s.subs.notify()
}

// Restore reloads a persisted identity. Expired identities are discarded.
func (s *AuthStore) Restore(ctx context.Context) (models.Identity, bool, error) {
	if s.persist == nil {
		return models.Identity{}, false, nil
	}
	var id models.Identity
	found, err := s.persist.Load(ctx, storage.PartitionAuth, &id)
	if err != nil {
		return models.Identity{}, false, fmt.Errorf("restore identity: %w", err)
	}
	if !found {
		return models.Identity{}, false, nil
	}
	if utils.Validate(id) != nil || id.Expired(s.now()) {
		utils.SafeInfo("[Auth] persisted identity expired or invalid, discarding")
		if err := s.persist.Delete(ctx, storage.PartitionAuth); err != nil {
			utils.SafeWarn("[Auth] clear persisted identity: %v", err)
		}
		return models.Identity{}, false, nil
	}

	s.set(id)
	return id, true, nil
}

func (s *AuthStore) authenticate(ctx context.Context, action, path, email string, body any) (models.AuthResponse, error) {
	s.mu.Lock()
	s.status = StatusPending
	s.mu.Unlock()
	s.subs.notify()

	resp, err := s.exchange(ctx, path, body)
	if err != nil {
		s.mu.Lock()
		s.status = StatusFailed
		s.errMsg = client.UserMessage(err)
		s.mu.Unlock()
		utils.LogAuthEvent(action, email, "failed")
		s.subs.notify()
		return models.AuthResponse{}, err
	}

	s.set(resp.Identity)
	if s.persist != nil {
		if err := s.persist.Save(ctx, storage.PartitionAuth, resp.Identity); err != nil {
			utils.SafeWarn("[Auth] persist identity: %v", err)
		}
	}
	utils.LogAuthEvent(action, email, "ok")
	return resp, nil
}

func (s *AuthStore) exchange(ctx context.Context, path string, body any) (models.AuthResponse, error) {
	data, err := s.api.Do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return models.AuthResponse{}, err
	}
	resp, err := client.DecodeData[models.AuthResponse](data)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if fe := utils.Validate(resp.Identity); fe != nil {
		return models.AuthResponse{}, client.NewInvalidDataError(fe)
	}
	return resp, nil
}

func (s *AuthStore) set(id models.Identity) {
	s.mu.Lock()
	s.identity = &id
	s.status = StatusSucceeded
	s.errMsg = ""
	s.mu.Unlock()
	s.subs.notify()
}
