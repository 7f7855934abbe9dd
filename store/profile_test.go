package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/LovationAdmin/wealth-sync/client"
	"github.com/LovationAdmin/wealth-sync/models"
	"github.com/LovationAdmin/wealth-sync/storage"
)

// memPersister is an in-memory Persister.
type memPersister struct {
	data  map[string][]byte
	saves int
	err   error
}

func newMemPersister() *memPersister { return &memPersister{data: map[string][]byte{}} }

func (m *memPersister) Load(_ context.Context, partition string, v any) (bool, error) {
	raw, ok := m.data[partition]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

func (m *memPersister) Save(_ context.Context, partition string, v any) error {
	if m.err != nil {
		return m.err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.saves++
	m.data[partition] = raw
	return nil
}

func (m *memPersister) Delete(_ context.Context, partition string) error {
	delete(m.data, partition)
	return nil
}

func profile(id, name string) models.UserProfile {
	return models.UserProfile{ID: id, FullName: name, CreatedAt: created}
}

func TestFetchProfileRejectsOtherIdentity(t *testing.T) {
	api := &fakeAPI{}
	api.handler = func(c call) (json.RawMessage, error) {
		return mustJSON(t, profile("u1", "Someone Else")), nil
	}
	s := NewProfileStore(api, nil)

	_, err := s.FetchProfile(context.Background(), "u2")
	if !errors.Is(err, client.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	st := s.State()
	if st.Status != StatusFailed || st.Profile != nil || st.Error != client.MsgForbidden {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestFetchProfileKeepsPreviousOnFailure(t *testing.T) {
	api := &fakeAPI{}
	api.handler = func(c call) (json.RawMessage, error) { return mustJSON(t, profile("u1", "Ada Lovelace")), nil }
	s := NewProfileStore(api, nil)
	if _, err := s.FetchProfile(context.Background(), "u1"); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	api.handler = func(c call) (json.RawMessage, error) { return mustJSON(t, profile("u9", "Intruder")), nil }
	if _, err := s.FetchProfile(context.Background(), "u1"); !errors.Is(err, client.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	p, ok := s.Profile()
	if !ok || p.FullName != "Ada Lovelace" {
		t.Fatalf("previous profile lost: %+v", p)
	}
}

func TestUpdateProfileSendsPatchAndPersists(t *testing.T) {
	api := &fakeAPI{}
	eur := "EUR"
	api.handler = func(c call) (json.RawMessage, error) {
		p := profile("u1", "Ada Lovelace")
		p.Currency = &eur
		return mustJSON(t, p), nil
	}
	persist := newMemPersister()
	s := NewProfileStore(api, persist)

	got, err := s.UpdateProfile(context.Background(), "u1", models.ProfilePatch{Currency: &eur})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Currency == nil || *got.Currency != "EUR" {
		t.Fatalf("unexpected profile %+v", got)
	}

	c := api.Calls()[0]
	if c.Method != http.MethodPatch || c.Path != "/api/profile" || c.Query.Get("user_id") != "u1" {
		t.Fatalf("unexpected call %+v", c)
	}
	if persist.saves != 1 {
		t.Fatalf("expected profile persisted once, got %d", persist.saves)
	}

	restored := NewProfileStore(api, persist)
	p, found, err := restored.Restore(context.Background())
	if err != nil || !found || p.ID != "u1" {
		t.Fatalf("restore: %+v %v %v", p, found, err)
	}
}

func TestUpdateProfileValidatesCurrency(t *testing.T) {
	api := &fakeAPI{}
	s := NewProfileStore(api, nil)

	bad := "eu"
	_, err := s.UpdateProfile(context.Background(), "u1", models.ProfilePatch{Currency: &bad})
	if !errors.Is(err, client.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(client.FieldErrorsOf(err)["currency"]) == 0 {
		t.Fatalf("expected currency error, got %v", client.FieldErrorsOf(err))
	}
	if len(api.Calls()) != 0 {
		t.Fatal("expected no remote call")
	}
}

func TestPersistFailureDoesNotFailUpdate(t *testing.T) {
	api := &fakeAPI{}
	api.handler = func(c call) (json.RawMessage, error) { return mustJSON(t, profile("u1", "Ada Lovelace")), nil }
	persist := newMemPersister()
	persist.err = storage.ErrPartitionNotPersisted
	s := NewProfileStore(api, persist)

	name := "Ada Lovelace"
	if _, err := s.UpdateProfile(context.Background(), "u1", models.ProfilePatch{FullName: &name}); err != nil {
		t.Fatalf("persistence error leaked: %v", err)
	}
	if s.Status() != StatusSucceeded {
		t.Fatalf("expected succeeded, got %s", s.Status())
	}
}
