// Package notify implements the one-shot proactive alert workflow: insert an
// AI chat message, flip the vehicle's notified flag, append an audit entry.
// All three writes share one transaction so readers never see a notified
// vehicle without its alert message.
package notify

import (
	"context"
	"errors"

	"fleetwatch/fleetwatch/sources/psql/models"

	"gorm.io/gorm"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

// AlertMessage is the AI-authored chat line inserted by the workflow.
const AlertMessage = "AI Alert: our diagnostics flag this vehicle as High risk. Immediate service recommended."

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Notify runs the workflow for a VIN. It is idempotent: when the vehicle was
// already notified it reports already=true and writes nothing.
func (s *Service) Notify(ctx context.Context, vin string) (already bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v models.Vehicle
		if err := tx.Where("vin = ?", vin).First(&v).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVehicleNotFound
			}
			return err
		}
		if v.Notified {
			already = true
			return nil
		}

		msg := models.ChatMessage{
			VIN:        vin,
			SenderRole: models.SenderAI,
			Message:    AlertMessage,
		}
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Vehicle{}).Where("vin = ?", vin).
			Update("notified", true).Error; err != nil {
			return err
		}

		entry := models.AuditLog{
			UserRole: models.RoleAdmin,
			Action:   models.ActionAINotificationSent,
			VIN:      vin,
		}
		return tx.Create(&entry).Error
	})
	return already, err
}
