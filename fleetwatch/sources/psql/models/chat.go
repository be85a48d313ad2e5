package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SenderCustomer = "customer"
	SenderAI       = "ai"
)

// ChatMessage is an append-only log per VIN, read in timestamp order.
type ChatMessage struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	VIN        string    `json:"vin" gorm:"type:varchar(64);index;not null"`
	SenderRole string    `json:"sender_role" gorm:"type:varchar(32);not null"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	Timestamp  time.Time `json:"timestamp" gorm:"not null;index"`
}

func (ChatMessage) TableName() string { return "chat_messages" }

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	return nil
}
