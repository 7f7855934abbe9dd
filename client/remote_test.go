package client

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRemoteSendsOwnerTokenAndBody(t *testing.T) {
	var gotAuth, gotQuery, gotBody, gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("user_id")
		gotMethod, gotPath = r.Method, r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"success":true,"message":"created","data":{"id":"w1"}}`)
	}))
	defer srv.Close()

	r := NewRemote(srv.URL+"/", time.Second)
	r.SetTokenSource(func() string { return "tok" })

	data, err := r.Do(context.Background(), http.MethodPost, "/api/wallets", OwnerQuery("u1"), map[string]string{"name": "Main"})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if string(data) != `{"id":"w1"}` {
		t.Fatalf("unexpected data %s", data)
	}
	if gotAuth != "Bearer tok" || gotQuery != "u1" || gotMethod != http.MethodPost || gotPath != "/api/wallets" {
		t.Fatalf("unexpected request: %q %q %q %q", gotAuth, gotQuery, gotMethod, gotPath)
	}
	if gotBody != `{"name":"Main"}` {
		t.Fatalf("unexpected body %s", gotBody)
	}
}

func TestRemoteUnencodableBodyIsValidationError(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer srv.Close()

	r := NewRemote(srv.URL, time.Second)
	_, err := r.Do(context.Background(), http.MethodPost, "/api/assets", nil, map[string]any{"details": map[string]any{"ratio": math.NaN()}})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(FieldErrorsOf(err)["_"]) == 0 {
		t.Fatalf("expected a body error, got %v", FieldErrorsOf(err))
	}
	if hit {
		t.Fatal("request must not be sent")
	}
}

func TestRemoteNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewRemote(url, time.Second).Do(context.Background(), http.MethodGet, "/api/wallets", nil, nil)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if UserMessage(err) != MsgNetwork {
		t.Fatalf("unexpected message %q", UserMessage(err))
	}
}

func TestRemoteTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	_, err := NewRemote(srv.URL, 50*time.Millisecond).Do(context.Background(), http.MethodGet, "/slow", nil, nil)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected network error on timeout, got %v", err)
	}
}

func TestWebSocketURL(t *testing.T) {
	tests := map[string]string{
		"http://localhost:8080":    "ws://localhost:8080/api/ws",
		"https://api.example.com/": "wss://api.example.com/api/ws",
	}
	for in, want := range tests {
		if got := WebSocketURL(in); got != want {
			t.Errorf("WebSocketURL(%q) = %q, want %q", in, got, want)
		}
	}
}
