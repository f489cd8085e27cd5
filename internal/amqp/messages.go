package amqp

import (
	"encoding/json"
	"time"
)

// MutationMessage announces a committed write on one of the stores.
// Consumers fetch whatever detail they need; the message carries only
// the identity of the change.
type MutationMessage struct {
	Entity    string    `json:"entity"` // record | debt | balance
	Action    string    `json:"action"` // created | updated | deleted
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMutationMessage creates a mutation message stamped now.
func NewMutationMessage(entity, action string, id int64) *MutationMessage {
	return &MutationMessage{
		Entity:    entity,
		Action:    action,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *MutationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MutationMessageFromJSON creates a message from JSON bytes.
func MutationMessageFromJSON(data []byte) (*MutationMessage, error) {
	var msg MutationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
