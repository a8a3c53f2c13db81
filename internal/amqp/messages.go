package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ChangeMessage announces that a command changed the tracker state. It
// carries only counts; consumers read the snapshot itself from storage.
type ChangeMessage struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"`
	Expenses  int       `json:"expenses"`
	Incomes   int       `json:"incomes"`
	Budgets   int       `json:"budgets"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChangeMessage creates a message with a fresh ID and the current time.
func NewChangeMessage(command string, expenses, incomes, budgets int) *ChangeMessage {
	return &ChangeMessage{
		ID:        uuid.NewString(),
		Command:   command,
		Expenses:  expenses,
		Incomes:   incomes,
		Budgets:   budgets,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON creates a message from JSON bytes
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
