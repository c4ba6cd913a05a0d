// Package protocol defines the WebSocket messages exchanged between the server and the
// browser client.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/janpfeifer/GoShuffle/internal/sim"
)

// Message type for WebSocket communication between client and server.
type MessageType string

const (
	MsgTypeState  MessageType = "state"  // Server sends the latest statistics
	MsgTypeToggle MessageType = "toggle" // Client wants to pause a running simulation, or resume a paused one
	MsgTypePause  MessageType = "pause"  // Client wants to pause the simulation
	MsgTypeResume MessageType = "resume" // Client wants to resume the simulation
	MsgTypeError  MessageType = "error"  // Server sends an error message
)

// WsMessage represents a WebSocket message.
type WsMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewWsMessage creates a new WsMessage with a marshaled payload.
func NewWsMessage(msgType MessageType, payload any) (WsMessage, error) {
	if payload == nil {
		return WsMessage{Type: msgType}, nil
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return WsMessage{}, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return WsMessage{
		Type:    msgType,
		Payload: payloadBytes,
	}, nil
}

// Parse unmarshals the message payload into one of the message types (StateMessage, ToggleMessage, etc.)
func (m *WsMessage) Parse() (any, error) {
	var target any
	switch m.Type {
	case MsgTypeState:
		target = &StateMessage{}
	case MsgTypeToggle:
		target = &ToggleMessage{}
	case MsgTypePause:
		target = &PauseMessage{}
	case MsgTypeResume:
		target = &ResumeMessage{}
	case MsgTypeError:
		target = &ErrorMessage{}
	default:
		return nil, fmt.Errorf("unknown message type: %s", m.Type)
	}

	if len(m.Payload) == 0 {
		return target, nil
	}

	err := json.Unmarshal(m.Payload, target)
	return target, err
}

// StateMessage is the payload for MsgTypeState
type StateMessage struct {
	sim.State
}

// ToggleMessage: empty.
type ToggleMessage struct{}

// PauseMessage: empty.
type PauseMessage struct{}

// ResumeMessage: empty.
type ResumeMessage struct{}

// ErrorMessage is the payload for MsgTypeError
type ErrorMessage struct {
	Message string `json:"message"`
}
