package ws

import "time"

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types. Only the operator connection may
// send transition messages; spectators can only ping.
const (
	MsgStartRound   MessageType = "start_round"
	MsgSuccess      MessageType = "success"
	MsgSkip         MessageType = "skip"
	MsgEnemyGuessed MessageType = "enemy_guessed"
	MsgEndRound     MessageType = "end_round"
	MsgReset        MessageType = "reset"
	MsgPing         MessageType = "ping"
)

// Server → Client message types. Game updates are broadcast as
// domain.GameEvent values and carry the event type directly
// (COUNTDOWN_TICK, ROUND_TICK, TIME_UP, ...); only the connection
// bookkeeping messages use these types.
const (
	MsgConnected MessageType = "connected"
	MsgError     MessageType = "error"
	MsgPong      MessageType = "pong"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type MessageType `json:"type"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ConnectedPayload is the payload for the connected message
type ConnectedPayload struct {
	ClientID string      `json:"clientId"`
	GameID   string      `json:"gameId"`
	Operator bool        `json:"operator"`
	State    interface{} `json:"state"`
}

// ErrorPayload is the payload for error messages
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInvalidMessage       = "INVALID_MESSAGE"
	ErrCodeInvalidAction        = "INVALID_ACTION"
	ErrCodeInvalidConfiguration = "INVALID_CONFIGURATION"
	ErrCodeNotOperator          = "NOT_OPERATOR"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)
