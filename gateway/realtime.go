// ABOUTME: Websocket change feed against the backend's realtime endpoint
// ABOUTME: Emits table-change events so the client can refetch collections
package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	feedHeartbeat = 25 * time.Second
	feedTopic     = "realtime:public:"
)

// TableChange reports that rows in a table changed remotely. The payload
// is deliberately not carried: the client answers with a fetch-all, which
// is the portal's consistency mechanism everywhere else too.
type TableChange struct {
	Table string
}

// Feed is a subscription to change events for a set of tables. When the
// socket drops the feed stays down; there is no retry loop, matching the
// rest of the client's error policy.
type Feed struct {
	conn    *websocket.Conn
	changes chan TableChange
	done    chan struct{}
	log     zerolog.Logger
}

type feedMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Ref     string          `json:"ref,omitempty"`
}

// DialFeed connects and subscribes to change events for the given tables.
func DialFeed(endpoint, apiKey, token string, tables []string, log zerolog.Logger) (*Feed, error) {
	url := fmt.Sprintf("%s?apikey=%s&vsn=1.0.0", endpoint, apiKey)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial realtime feed: %w", err)
	}

	f := &Feed{
		conn:    conn,
		changes: make(chan TableChange, 16),
		done:    make(chan struct{}),
		log:     log,
	}

	for i, table := range tables {
		join := feedMessage{
			Topic:   feedTopic + table,
			Event:   "phx_join",
			Payload: json.RawMessage(`{"user_token":"` + token + `"}`),
			Ref:     fmt.Sprintf("%d", i+1),
		}
		if err := conn.WriteJSON(join); err != nil {
			conn.Close()
			return nil, fmt.Errorf("join %s: %w", table, err)
		}
	}

	go f.readLoop()
	go f.heartbeatLoop()
	return f, nil
}

// Changes is closed when the feed goes down.
func (f *Feed) Changes() <-chan TableChange {
	return f.changes
}

func (f *Feed) Close() error {
	select {
	case <-f.done:
		return nil
	default:
	}
	close(f.done)
	return f.conn.Close()
}

func (f *Feed) readLoop() {
	defer close(f.changes)
	for {
		var msg feedMessage
		if err := f.conn.ReadJSON(&msg); err != nil {
			select {
			case <-f.done:
			default:
				f.log.Warn().Err(err).Msg("realtime feed closed")
			}
			return
		}

		switch msg.Event {
		case "INSERT", "UPDATE", "DELETE":
			table := strings.TrimPrefix(msg.Topic, feedTopic)
			select {
			case f.changes <- TableChange{Table: table}:
			default:
				// Slow consumer; the pending event already forces a
				// refetch, so dropping this one loses nothing.
			}
		}
	}
}

func (f *Feed) heartbeatLoop() {
	ticker := time.NewTicker(feedHeartbeat)
	defer ticker.Stop()
	ref := 0
	for {
		select {
		case <-f.done:
			return
		case <-ticker.C:
			ref++
			beat := feedMessage{
				Topic:   "phoenix",
				Event:   "heartbeat",
				Payload: json.RawMessage(`{}`),
				Ref:     fmt.Sprintf("hb-%d", ref),
			}
			if err := f.conn.WriteJSON(beat); err != nil {
				f.log.Warn().Err(err).Msg("realtime heartbeat failed")
				return
			}
		}
	}
}
