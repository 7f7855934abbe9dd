package store

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/LovationAdmin/wealth-sync/client"
	"github.com/LovationAdmin/wealth-sync/models"
	"github.com/LovationAdmin/wealth-sync/storage"
	"github.com/LovationAdmin/wealth-sync/utils"
)

// Persister is the slice of the Persisted Client Store the stores use.
type Persister interface {
	Load(ctx context.Context, partition string, v any) (bool, error)
	Save(ctx context.Context, partition string, v any) error
	Delete(ctx context.Context, partition string) error
}

const profilePath = "/api/profile"

type ProfileState struct {
	Profile *models.UserProfile `json:"profile"`
	Status  Status              `json:"status"`
	Error   string              `json:"error,omitempty"`
}

// ProfileStore holds the single profile of the signed-in identity.
type ProfileStore struct {
	api     client.API
	persist Persister

	mu      sync.Mutex
	profile *models.UserProfile
	status  Status
	errMsg  string
	seq     uint64
	epoch   uint64

	subs notifier
}

// NewProfileStore builds the store. persist may be nil.
func NewProfileStore(api client.API, persist Persister) *ProfileStore {
	return &ProfileStore{api: api, persist: persist, status: StatusIdle}
}

func (s *ProfileStore) State() ProfileState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := ProfileState{Status: s.status, Error: s.errMsg}
	if s.profile != nil {
		p := *s.profile
		st.Profile = &p
	}
	return st
}

func (s *ProfileStore) Profile() (models.UserProfile, bool) {
	st := s.State()
	if st.Profile == nil {
		return models.UserProfile{}, false
	}
	return *st.Profile, true
}

func (s *ProfileStore) Status() Status { return s.State().Status }

func (s *ProfileStore) Err() string { return s.State().Error }

func (s *ProfileStore) Subscribe(fn func()) (cancel func()) { return s.subs.subscribe(fn) }

// FetchProfile loads the owner's profile. A profile whose id is not the owner
// is rejected with ErrForbidden and the previous profile is kept.
func (s *ProfileStore) FetchProfile(ctx context.Context, ownerID string) (models.UserProfile, error) {
	if fe := utils.Required("owner_id", ownerID); fe != nil {
		return models.UserProfile{}, client.NewValidationError(fe)
	}
	return s.exchange(ctx, "fetchProfile", ownerID, http.MethodGet, nil)
}

// UpdateProfile sends a partial patch; only the set fields change.
func (s *ProfileStore) UpdateProfile(ctx context.Context, ownerID string, patch models.ProfilePatch) (models.UserProfile, error) {
	fe := utils.Validate(patch)
	if missing := utils.Required("owner_id", ownerID); missing != nil {
		fe = mergeFieldErrors(fe, missing)
	}
	if fe != nil {
		return models.UserProfile{}, client.NewValidationError(fe)
	}
	return s.exchange(ctx, "updateProfile", ownerID, http.MethodPatch, patch)
}

// Restore loads the persisted profile, if any. It does not touch status.
func (s *ProfileStore) Restore(ctx context.Context) (models.UserProfile, bool, error) {
	if s.persist == nil {
		return models.UserProfile{}, false, nil
	}
	var p models.UserProfile
	found, err := s.persist.Load(ctx, storage.PartitionProfile, &p)
	if err != nil {
		return models.UserProfile{}, false, fmt.Errorf("restore profile: %w", err)
	}
	if !found {
		return models.UserProfile{}, false, nil
	}
	if fe := utils.Validate(p); fe != nil {
		utils.SafeWarn("[Store] persisted profile discarded: %s", fe)
		return models.UserProfile{}, false, nil
	}

	s.mu.Lock()
	s.profile = &p
	s.mu.Unlock()
	s.subs.notify()
	return p, true, nil
}

// Reset clears memory only; the persisted partition is the caller's concern.
func (s *ProfileStore) Reset() {
	s.mu.Lock()
	s.epoch++
	s.profile = nil
	s.status = StatusIdle
	s.errMsg = ""
	s.mu.Unlock()
	s.subs.notify()
}

func (s *ProfileStore) exchange(ctx context.Context, name, ownerID, method string, body any) (models.UserProfile, error) {
	op := s.begin(name)

	data, err := s.api.Do(ctx, method, profilePath, client.OwnerQuery(ownerID), body)
	if err != nil {
		return models.UserProfile{}, s.fail(op, err)
	}
	p, err := client.DecodeData[models.UserProfile](data)
	if err != nil {
		return models.UserProfile{}, s.fail(op, err)
	}
	if fe := utils.Validate(p); fe != nil {
		return models.UserProfile{}, s.fail(op, client.NewInvalidDataError(fe))
	}
	if p.ID != ownerID {
		cause := fmt.Errorf("profile %s returned for owner %s", utils.MaskID(p.ID), utils.MaskID(ownerID))
		return models.UserProfile{}, s.fail(op, client.NewForbiddenError(cause))
	}

	if !s.commit(op, p) {
		return p, nil
	}
	s.save(ctx, p)
	return p, nil
}

func (s *ProfileStore) begin(name string) operation {
	s.mu.Lock()
	s.seq++
	op := operation{name: name, seq: s.seq, epoch: s.epoch}
	s.status = StatusPending
	s.mu.Unlock()

	utils.LogStoreTransition("profile", name, string(StatusPending), op.seq)
	s.subs.notify()
	return op
}

func (s *ProfileStore) fail(op operation, err error) error {
	s.mu.Lock()
	latest := op.seq == s.seq && op.epoch == s.epoch
	if latest {
		s.status = StatusFailed
		s.errMsg = client.UserMessage(err)
	}
	s.mu.Unlock()

	utils.SafeWarn("[Store] profile.%s failed (seq %d, latest=%t): %v", op.name, op.seq, latest, err)
	if latest {
		s.subs.notify()
	}
	return err
}

// commit reports whether p became the current profile.
func (s *ProfileStore) commit(op operation, p models.UserProfile) bool {
	s.mu.Lock()
	if op.seq != s.seq || op.epoch != s.epoch {
		s.mu.Unlock()
		utils.SafeDebug("[Store] profile.%s stale response discarded (seq %d)", op.name, op.seq)
		return false
	}
	s.profile = &p
	s.status = StatusSucceeded
	s.errMsg = ""
	s.mu.Unlock()

	utils.LogStoreTransition("profile", op.name, string(StatusSucceeded), op.seq)
	s.subs.notify()
	return true
}

// save persists p. Failures are logged and never surface to the caller.
func (s *ProfileStore) save(ctx context.Context, p models.UserProfile) {
	if s.persist == nil {
		return
	}
	if err := s.persist.Save(ctx, storage.PartitionProfile, p); err != nil {
		utils.SafeWarn("[Store] persist profile %s: %v", utils.MaskID(p.ID), err)
	}
}
