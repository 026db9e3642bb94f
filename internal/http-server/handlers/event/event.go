package event

import (
	"encoding/json"

	"github.com/LIL3ASTARD33/CoinClash/internal/lib/logger/sl"
	"github.com/gorilla/websocket"
	"github.com/pusher/pusher-http-go/v5"
	"golang.org/x/exp/slog"
)

type Publisher interface {
	TriggerEvent(channel string, eventName string, data map[string]interface{}) error
}

type Message struct {
	Channel string                 `json:"channel"`
	Event   string                 `json:"event"`
	Data    map[string]interface{} `json:"data"`
}

// WSEvent publishes through the in-house websocket hub (cmd/ws).
type WSEvent struct {
	log  *slog.Logger
	conn *websocket.Conn
}

func NewWSEvent(log *slog.Logger, conn *websocket.Conn) *WSEvent {
	return &WSEvent{
		log:  log,
		conn: conn,
	}
}

func (p *WSEvent) TriggerEvent(channel string, eventName string, data map[string]interface{}) error {
	const op = "handlers.event.WSEvent.TriggerEvent"

	msg, err := json.Marshal(Message{
		Channel: channel,
		Event:   eventName,
		Data:    data,
	})
	if err != nil {
		p.log.Error("failed to marshal message", sl.Err(err))

		return err
	}

	if err = p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		p.log.Error("failed to write message", sl.Err(err))

		return err
	}

	return nil
}

// PusherEvent publishes through a hosted Pusher channel instead of the
// in-house hub.
type PusherEvent struct {
	log    *slog.Logger
	pusher *pusher.Client
}

func NewPusherEvent(log *slog.Logger, pusherClient *pusher.Client) *PusherEvent {
	return &PusherEvent{
		log:    log,
		pusher: pusherClient,
	}
}

func (p *PusherEvent) TriggerEvent(channel string, eventName string, data map[string]interface{}) error {
	if err := p.pusher.Trigger(channel, eventName, data); err != nil {
		p.log.Error("failed to trigger pusher event", sl.Err(err))

		return err
	}

	return nil
}
