package server

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/sagythepigy/LAN-Poker/internal/game"
)

// MessageType identifies a WebSocket message.
type MessageType string

const (
	// Client to server messages
	MessageTypeJoin   MessageType = "join"
	MessageTypeAction MessageType = "action"
	MessageTypeLeave  MessageType = "leave"

	// Server to client messages
	MessageTypeJoined MessageType = "joined"
	MessageTypeLeft   MessageType = "left"
	MessageTypeState  MessageType = "state"
	MessageTypeError  MessageType = "error"
)

// String returns the string representation of the message type.
func (mt MessageType) String() string {
	return string(mt)
}

// Message is the base WebSocket message structure. Data carries the
// type-specific payload.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message of the given type with the current timestamp.
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server payloads

// JoinData seats the connection in a room. The room is created on first
// join.
type JoinData struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
}

// ActionData is a betting action. Amount is the target total street
// contribution for a raise and is ignored for other actions.
type ActionData struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// Server → Client payloads

// JoinedData acknowledges a join with the seat identity the server minted
// for this connection.
type JoinedData struct {
	RoomID string `json:"roomId"`
	SeatID string `json:"seatId"`
}

// ErrorData reports a rejected message back to the client.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// The state payload is a game.Snapshot, redacted for the recipient.

// errorCode maps an engine error to a stable wire code.
func errorCode(err error) string {
	var amountErr game.InvalidAmountError
	switch {
	case errors.Is(err, game.ErrOutOfTurn):
		return "out_of_turn"
	case errors.Is(err, game.ErrSeatInactive):
		return "seat_inactive"
	case errors.Is(err, game.ErrNotAcceptingActions):
		return "not_accepting_actions"
	case errors.Is(err, game.ErrRoomFull):
		return "room_full"
	case errors.Is(err, game.ErrNameTaken):
		return "name_taken"
	case errors.Is(err, ErrRoomNotFound):
		return "room_not_found"
	case errors.As(err, &amountErr):
		return "invalid_amount"
	default:
		return "internal_error"
	}
}
