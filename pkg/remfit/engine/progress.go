package engine

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

// Event is a training-progress event published by the engine while a
// fit job runs.
type Event struct {
	Dataset string  `json:"dataset"`
	Kind    string  `json:"kind"`
	Stage   string  `json:"stage"`
	Iter    int64   `json:"iter"`
	Loss    float64 `json:"loss"`
	Message string  `json:"message"`
}

func (e Event) String() string {
	if e.Message != "" {
		return fmt.Sprintf("%s/%s: %s: %s", e.Dataset, e.Kind, e.Stage, e.Message)
	}
	return fmt.Sprintf("%s/%s: %s: iter=%d loss=%g", e.Dataset, e.Kind, e.Stage, e.Iter, e.Loss)
}

// Watch subscribes to the progress events the engine publishes for
// fits on the given dataset and calls fn for each of them.  Watch
// blocks until the context is canceled or the engine closes the
// stream; a canceled context is not an error.  Fit stays synchronous,
// the watcher only mirrors the engine's log.
func Watch(ctx context.Context, addr string, data Dataset, fn func(Event)) error {
	u := wsURL(addr) + "/v1/events?dataset=" + url.QueryEscape(string(data))
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("watch %s: %v", data, err)
	}
	defer conn.Close()
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("watch %s: %v", data, err)
		}
		fn(ev)
	}
}

func wsURL(addr string) string {
	switch {
	case strings.HasPrefix(addr, "https://"):
		return "wss://" + strings.TrimRight(strings.TrimPrefix(addr, "https://"), "/")
	case strings.HasPrefix(addr, "http://"):
		return "ws://" + strings.TrimRight(strings.TrimPrefix(addr, "http://"), "/")
	}
	return "ws://" + strings.TrimRight(addr, "/")
}
