package storage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

type session struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

func openTemp(t *testing.T, path, key string) *Store {
	t.Helper()
	s, err := Open(path, key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func TestSaveSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	s := openTemp(t, path, "")
	if err := s.Save(ctx, PartitionAuth, session{UserID: "u1", Token: "abc"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, PartitionAuth, session{UserID: "u1", Token: "def"}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	s.Close()

	s = openTemp(t, path, "")
	defer s.Close()
	var got session
	found, err := s.Load(ctx, PartitionAuth, &got)
	if err != nil || !found {
		t.Fatalf("load: %v %v", found, err)
	}
	if got.Token != "def" {
		t.Fatalf("expected latest value, got %+v", got)
	}
}

func TestLoadMissingPartition(t *testing.T) {
	s := openTemp(t, filepath.Join(t.TempDir(), "state.db"), "")
	defer s.Close()

	var got session
	found, err := s.Load(context.Background(), PartitionProfile, &got)
	if err != nil || found {
		t.Fatalf("expected not found, got %v %v", found, err)
	}
}

func TestOnlyWhitelistedPartitionsPersist(t *testing.T) {
	s := openTemp(t, filepath.Join(t.TempDir(), "state.db"), "")
	defer s.Close()

	err := s.Save(context.Background(), "wallets", []string{"a"})
	if !errors.Is(err, ErrPartitionNotPersisted) {
		t.Fatalf("expected ErrPartitionNotPersisted, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t, filepath.Join(t.TempDir(), "state.db"), "")
	defer s.Close()

	if err := s.Save(ctx, PartitionAuth, session{UserID: "u1"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, PartitionAuth); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, PartitionAuth); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	var got session
	if found, _ := s.Load(ctx, PartitionAuth, &got); found {
		t.Fatal("partition still present")
	}
}

func TestSealedPayloads(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")
	key := strings.Repeat("k", 32)

	s := openTemp(t, path, key)
	if err := s.Save(ctx, PartitionAuth, session{UserID: "u1", Token: "secret-token"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var raw string
	if err := s.db.QueryRow(`SELECT payload FROM client_state WHERE partition = ?`, PartitionAuth).Scan(&raw); err != nil {
		t.Fatalf("read raw: %v", err)
	}
	if strings.Contains(raw, "secret-token") {
		t.Fatal("payload stored in clear text")
	}
	s.Close()

	s = openTemp(t, path, key)
	defer s.Close()
	var got session
	if found, err := s.Load(ctx, PartitionAuth, &got); err != nil || !found || got.Token != "secret-token" {
		t.Fatalf("load sealed: %+v %v %v", got, found, err)
	}
}

func TestOpenRejectsShortKey(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "state.db"), "short"); err == nil {
		t.Fatal("expected key length error")
	}
}
