package store

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/LovationAdmin/wealth-sync/models"
)

type call struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// fakeAPI records every call and answers with handler.
type fakeAPI struct {
	mu      sync.Mutex
	calls   []call
	handler func(c call) (json.RawMessage, error)
}

func (f *fakeAPI) Do(_ context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	c := call{Method: method, Path: path, Query: query, Body: body}
	f.mu.Lock()
	f.calls = append(f.calls, c)
	h := f.handler
	f.mu.Unlock()
	if h == nil {
		return nil, nil
	}
	return h(c)
}

func (f *fakeAPI) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

var created = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func wallet(id, name string, balance float64) models.Wallet {
	return models.Wallet{
		ID:        id,
		UserID:    "u1",
		Name:      name,
		Type:      models.WalletBank,
		Balance:   balance,
		CreatedAt: created,
	}
}

func walletIDs(ws []models.Wallet) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.ID)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
