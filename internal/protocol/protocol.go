// Package protocol defines the WebSocket wire format shared with the game
// client. Every message is an envelope whose data field is itself an
// independently JSON-encoded string (the client both sends and expects this
// double encoding), with a fixed id of 0.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Kind tags a message envelope with its payload type.
type Kind string

const (
	KindReg           Kind = "reg"
	KindCreateRoom    Kind = "create_room"
	KindAddUserToRoom Kind = "add_user_to_room"
	KindCreateGame    Kind = "create_game"
	KindAddShips      Kind = "add_ships"
	KindStartGame     Kind = "start_game"
	KindTurn          Kind = "turn"
	KindAttack        Kind = "attack"
	KindRandomAttack  Kind = "randomAttack"
	KindFinish        Kind = "finish"
	KindUpdateRoom    Kind = "update_room"
	KindUpdateWinners Kind = "update_winners"
)

// Envelope is the outer message frame. Data holds the JSON encoding of the
// kind-specific payload; it may be empty for payload-less requests.
type Envelope struct {
	Type Kind   `json:"type"`
	Data string `json:"data"`
	ID   int    `json:"id"`
}

// Decode parses a raw frame into an envelope. The payload is not decoded;
// use DecodeData once the kind is known.
func Decode(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("decode envelope: missing type")
	}
	return &env, nil
}

// DecodeData unmarshals the envelope's inner payload into v. An empty data
// string leaves v untouched (payload-less kinds such as create_room).
func (e *Envelope) DecodeData(v any) error {
	if e.Data == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(e.Data), v); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}

// Encode builds a raw frame for the given kind and payload.
func Encode(kind Kind, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	raw, err := json.Marshal(Envelope{Type: kind, Data: string(data), ID: 0})
	if err != nil {
		return nil, fmt.Errorf("encode %s envelope: %w", kind, err)
	}
	return raw, nil
}
