package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

const (
	ActionConnect = "connect"
	ActionMove    = "game:move"
	ActionJump    = "game:jump"
	ActionName    = "player:name"
)

const writeTimeout = 10 * time.Second

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type MovePayload struct {
	Cell *int `json:"cell"`
}

type JumpPayload struct {
	Step *int `json:"step"`
}

type NamePayload struct {
	Mark entity.Mark `json:"mark"`
	Name *string     `json:"name"`
}

type ResponsePayload struct {
	SessionID string          `json:"session_id,omitempty"`
	View      *tictactoe.View `json:"view,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func (that *client) sendMessage(action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) sendView(action string, view tictactoe.View) error {
	return that.sendMessage(action, ResponsePayload{View: &view})
}

func (that *client) sendErrorResponse(action, message string) error {
	return that.sendMessage(action, ResponsePayload{Error: message})
}

func (that *client) readMessage() (*Message, error) {
	messageType, data, err := that.conn.ReadMessage()
	if err != nil {
		return nil, err
	}

	if messageType != websocket.TextMessage {
		return nil, fmt.Errorf("%w: message type %d", errUnsupportedMessage, messageType)
	}

	var message Message
	if err = json.Unmarshal(data, &message); err != nil {
		return nil, fmt.Errorf("%w: %w", errUnsupportedMessage, err)
	}

	return &message, nil
}
