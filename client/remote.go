package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/LovationAdmin/wealth-sync/utils"
)

const maxResponseBytes = 8 << 20

// API is the Remote Resource API as seen by the stores.
type API interface {
	Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error)
}

// TokenSource returns the current bearer token, or "" when signed out.
type TokenSource func() string

// Remote talks to the Remote Resource API over HTTP. Timeout policy lives
// here, in the http.Client, not in the stores.
type Remote struct {
	BaseURL string
	Client  *http.Client

	mu    sync.RWMutex
	token TokenSource
}

func NewRemote(baseURL string, timeout time.Duration) *Remote {
	return &Remote{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (r *Remote) SetTokenSource(fn TokenSource) {
	r.mu.Lock()
	r.token = fn
	r.mu.Unlock()
}

func (r *Remote) bearer() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.token == nil {
		return ""
	}
	return r.token()
}

// Do sends one request and returns the envelope data. Every failure is a *Error.
func (r *Remote) Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	endpoint := r.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			utils.SafeWarn("[Remote] encode %s %s body: %v", method, path, err)
			return nil, NewValidationError(utils.FieldErrors{"_": {"could not be encoded as JSON"}})
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, NewNetworkError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := r.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, NewNetworkError(fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, NewNetworkError(fmt.Errorf("read %s %s: %w", method, path, err))
	}
	utils.SafeDebug("[Remote] %s %s -> %d (%v)", method, path, resp.StatusCode, time.Since(start))

	return DecodeEnvelope(resp.StatusCode, raw)
}

// OwnerQuery scopes a request to an owner identifier.
func OwnerQuery(ownerID string) url.Values {
	return url.Values{"user_id": {ownerID}}
}
