package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/LovationAdmin/wealth-sync/models"
)

// WebSocketURL derives the change-feed endpoint from the API base URL.
func WebSocketURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/api/ws"
}

// Listen reads change events until ctx ends or the connection drops. It does
// not reconnect.
func Listen(ctx context.Context, wsURL, token string, onEvent func(models.ChangeEvent)) error {
	endpoint := wsURL + "?token=" + url.QueryEscape(token)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return NewNetworkError(fmt.Errorf("dial change feed: %w", err))
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		var ev models.ChangeEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return NewNetworkError(fmt.Errorf("read change feed: %w", err))
		}
		if ev.Resource == "" {
			continue
		}
		onEvent(ev)
	}
}
