package ws

import (
	"encoding/json"
)

// MessageType represents the kinds of messages exchanged on /ws/standard
type MessageType string

const (
	// client -> server, payload is a FEN string
	MessageTypePosition MessageType = "position"
	// server -> client, payload is the array of legal move records
	MessageTypeLegalMoves MessageType = "legalMoves"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage marshals payload into a Message of the given type.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: b}, nil
}

// ErrorMessage builds an error message. Unlike a raw payload, the text is always
// encoded as a JSON string.
func ErrorMessage(text string) Message {
	b, _ := json.Marshal(text)
	return Message{Type: MessageTypeError, Payload: b}
}
