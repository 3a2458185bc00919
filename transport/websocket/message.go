package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

const (
	actionGameNew   = "game:new"
	actionGameTurn  = "game:turn"
	actionGameState = "game:state"
	actionGameLeave = "game:leave"
	actionError     = "error"

	gameStatusLeave = "leave"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload is sent by the client.
type RequestPayload struct {
	Mark    string `json:"mark,omitempty"`
	Starter string `json:"starter,omitempty"`
	Cell    *int   `json:"cell,omitempty"`
}

// ResponsePayload is sent by the server.
type ResponsePayload struct {
	Game   *entity.Game `json:"game,omitempty"`
	Result string       `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

func (that *session) sendMessage(action string, payload ResponsePayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	responseBytes, err := json.Marshal(Message{Action: action, Payload: payloadBytes})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err = that.conn.WriteMessage(websocket.TextMessage, responseBytes); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *session) sendGame(action string, game *entity.Game) error {
	return that.sendMessage(action, ResponsePayload{Game: game, Result: game.ResultText()})
}

func (that *session) sendErrorResponse(action, message string) error {
	return that.sendMessage(action, ResponsePayload{Error: message})
}
