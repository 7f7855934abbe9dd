package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/wealth-sync/client"
	"github.com/LovationAdmin/wealth-sync/handlers"
	"github.com/LovationAdmin/wealth-sync/models"
	"github.com/LovationAdmin/wealth-sync/services"
	"github.com/LovationAdmin/wealth-sync/store"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ws := handlers.NewWSHandler()
	router := NewRouter(Options{JWTSecret: []byte("test-secret"), TokenTTL: time.Hour}, services.NewMemoryBackend(), ws)
	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		ws.Close()
		srv.Close()
	})
	return srv
}

func signedUp(t *testing.T, srv *httptest.Server, email string) *store.Container {
	t.Helper()
	c := store.NewContainer(client.NewRemote(srv.URL, 5*time.Second), nil, store.Options{})
	if _, err := c.SignUp(context.Background(), email, "secret1", "Ada Lovelace"); err != nil {
		t.Fatalf("sign up %s: %v", email, err)
	}
	return c
}

func TestStoresAgainstReferenceAPI(t *testing.T) {
	srv := newServer(t)
	c := signedUp(t, srv, "ada@example.com")
	ctx := context.Background()
	owner := c.Auth.UserID()

	if c.Profile.Status() != store.StatusSucceeded || c.Wallets.Status() != store.StatusSucceeded {
		t.Fatalf("hydration incomplete: profile=%s wallets=%s", c.Profile.Status(), c.Wallets.Status())
	}

	a, err := c.Wallets.Create(ctx, owner, models.WalletInput{Name: "Alpha", Balance: 10})
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	b, err := c.Wallets.Create(ctx, owner, models.WalletInput{Name: "Bravo", Type: models.WalletBank, Balance: 20})
	if err != nil {
		t.Fatalf("create B: %v", err)
	}
	if _, err := c.Wallets.Create(ctx, owner, models.WalletInput{Name: "Charlie", Balance: 30}); err != nil {
		t.Fatalf("create C: %v", err)
	}
	if a.ID == "" || a.Type != models.WalletCash {
		t.Fatalf("server entity not canonical: %+v", a)
	}

	if err := c.Wallets.Remove(ctx, b.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items, err := c.Wallets.FetchAll(ctx, owner)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Alpha" || items[1].Name != "Charlie" {
		t.Fatalf("unexpected wallets %+v", items)
	}
	if c.Wallets.Totals().TotalBalance != 40 {
		t.Fatalf("unexpected total %v", c.Wallets.Totals().TotalBalance)
	}

	eur := "EUR"
	p, err := c.Profile.UpdateProfile(ctx, owner, models.ProfilePatch{Currency: &eur})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if p.FullName != "Ada Lovelace" || p.Currency == nil || *p.Currency != "EUR" {
		t.Fatalf("patch did not merge: %+v", p)
	}

	if err := c.Wallets.Remove(ctx, "does-not-exist"); !errors.Is(err, client.ErrRemoteRejected) {
		t.Fatalf("expected rejected for unknown id, got %v", err)
	}
	if c.Wallets.Status() != store.StatusFailed || len(c.Wallets.Items()) != 2 {
		t.Fatalf("failed remove should keep items: %+v", c.Wallets.State())
	}
}

func TestOwnerMismatchIsForbidden(t *testing.T) {
	srv := newServer(t)
	ada := signedUp(t, srv, "ada@example.com")
	bob := signedUp(t, srv, "bob@example.com")
	ctx := context.Background()

	w, err := ada.Wallets.Create(ctx, ada.Auth.UserID(), models.WalletInput{Name: "Private"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = bob.Wallets.FetchAll(ctx, ada.Auth.UserID())
	var ce *client.Error
	if !errors.As(err, &ce) || ce.Status != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}

	name := "Stolen"
	_, err = bob.Wallets.Update(ctx, w.ID, models.WalletPatch{Name: &name})
	if !errors.As(err, &ce) || ce.Status != http.StatusNotFound {
		t.Fatalf("expected 404 for another owner's record, got %v", err)
	}
}

func TestServerValidationErrorsReachTheStore(t *testing.T) {
	srv := newServer(t)
	c := store.NewContainer(client.NewRemote(srv.URL, 5*time.Second), nil, store.Options{})

	_, err := c.Auth.SignIn(context.Background(), "nobody@example.com", "wrong", "")
	if !errors.Is(err, client.ErrRemoteRejected) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if c.Auth.Err() != "Invalid credentials" {
		t.Fatalf("unexpected message %q", c.Auth.Err())
	}
}

func TestLiveChangesTriggerRefresh(t *testing.T) {
	srv := newServer(t)
	c := signedUp(t, srv, "ada@example.com")
	owner := c.Auth.UserID()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var events []models.ChangeEvent
	done := make(chan error, 1)
	go func() {
		done <- client.Listen(ctx, client.WebSocketURL(srv.URL), c.Auth.Token(), func(ev models.ChangeEvent) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		})
	}()

	deadline := time.Now().Add(3 * time.Second)
	for {
		if _, err := c.Wallets.Create(context.Background(), owner, models.WalletInput{Name: "Live wallet"}); err != nil {
			t.Fatalf("create: %v", err)
		}
		mu.Lock()
		n := len(events)
		mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("no change event received")
		}
		time.Sleep(100 * time.Millisecond)
	}

	mu.Lock()
	ev := events[0]
	mu.Unlock()
	if ev.Resource != "wallets" || ev.Action != models.ActionCreated || ev.ID == "" {
		t.Fatalf("unexpected event %+v", ev)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("listen: %v", err)
	}
}

func TestServerRejectsInvalidInput(t *testing.T) {
	srv := newServer(t)
	c := signedUp(t, srv, "ada@example.com")

	remote := client.NewRemote(srv.URL, 5*time.Second)
	remote.SetTokenSource(c.Auth.Token)
	_, err := remote.Do(context.Background(), http.MethodPost, "/api/wallets", client.OwnerQuery(c.Auth.UserID()),
		map[string]any{"name": "A", "type": "gold", "balance": -5})

	var ce *client.Error
	if !errors.As(err, &ce) || ce.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	for _, field := range []string{"name", "type", "balance"} {
		if len(ce.Fields[field]) == 0 {
			t.Errorf("missing error for %s: %v", field, ce.Fields)
		}
	}
}

func TestHealth(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
