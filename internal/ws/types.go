package ws

import (
	"encoding/json"

	"github.com/benbeisheim/duckboard-backend/internal/board"
)

// MessageType represents the different kinds of messages a board socket carries
type MessageType string

const (
	// inbound
	MessageTypePointer  MessageType = "pointer"
	MessageTypeTakeback MessageType = "takeback"
	MessageTypeFlip     MessageType = "flip"

	// both directions: a notation to apply, or a completed move to announce
	MessageTypeMove MessageType = "move"

	// outbound
	MessageTypeFrame MessageType = "frame"
	MessageTypeError MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type PointerKind string

const (
	PointerDown PointerKind = "down"
	PointerMove PointerKind = "move"
	PointerUp   PointerKind = "up"
)

// PointerPayload carries coordinates normalized to the board element. Either
// coordinate may be missing, e.g. for a touchend without touches.
type PointerPayload struct {
	Kind PointerKind `json:"kind"`
	X    *float64    `json:"x"`
	Y    *float64    `json:"y"`
}

func (p PointerPayload) Pointer() board.Pointer {
	if p.X == nil || p.Y == nil {
		return board.Pointer{}
	}
	return board.At(*p.X, *p.Y)
}

type MovePayload struct {
	Notation string `json:"notation"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// Encode wraps payload in a Message and marshals it.
func Encode(t MessageType, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: t, Payload: raw})
}
