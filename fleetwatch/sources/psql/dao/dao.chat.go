package dao

import (
	"context"

	"fleetwatch/fleetwatch/sources/psql/models"

	"gorm.io/gorm"
)

type ChatMessageDAO struct {
	DB *gorm.DB
}

func NewChatMessageDAO(db *gorm.DB) *ChatMessageDAO {
	return &ChatMessageDAO{DB: db}
}

func (dao *ChatMessageDAO) SaveMessage(ctx context.Context, vin, senderRole, message string) (*models.ChatMessage, error) {
	msg := models.ChatMessage{
		VIN:        vin,
		SenderRole: senderRole,
		Message:    message,
	}
	err := dao.DB.WithContext(ctx).Create(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (dao *ChatMessageDAO) GetHistoryByVIN(ctx context.Context, vin string) ([]models.ChatMessage, error) {
	var history []models.ChatMessage
	err := dao.DB.WithContext(ctx).Where("vin = ?", vin).Order("timestamp asc").Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (dao *ChatMessageDAO) CountByVIN(ctx context.Context, vin string) (int64, error) {
	var n int64
	err := dao.DB.WithContext(ctx).Model(&models.ChatMessage{}).Where("vin = ?", vin).Count(&n).Error
	return n, err
}
