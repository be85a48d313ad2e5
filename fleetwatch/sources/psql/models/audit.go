package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionLogin              = "LOGIN"
	ActionLogout             = "LOGOUT"
	ActionServiceBooked      = "SERVICE_BOOKED"
	ActionAIChatResponse     = "AI_CHAT_RESPONSE"
	ActionAINotificationSent = "AI_NOTIFICATION_SENT"
)

// AuditLog is insert-only; nothing in the service updates or deletes rows.
type AuditLog struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserRole  string    `json:"user_role" gorm:"type:varchar(32);not null"`
	Action    string    `json:"action" gorm:"type:varchar(64);not null;index"`
	VIN       string    `json:"vin" gorm:"type:varchar(64);index"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index"`
}

func (AuditLog) TableName() string { return "audit_logs" }

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	return nil
}
