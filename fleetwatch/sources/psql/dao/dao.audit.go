package dao

import (
	"context"

	"fleetwatch/fleetwatch/sources/psql/models"

	"gorm.io/gorm"
)

type AuditLogDAO struct {
	DB *gorm.DB
}

func NewAuditLogDAO(db *gorm.DB) *AuditLogDAO {
	return &AuditLogDAO{DB: db}
}

func (dao *AuditLogDAO) Append(ctx context.Context, userRole, action, vin string) error {
	entry := models.AuditLog{
		UserRole: userRole,
		Action:   action,
		VIN:      vin,
	}
	return dao.DB.WithContext(ctx).Create(&entry).Error
}

func (dao *AuditLogDAO) ListNewestFirst(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 200
	}
	var entries []models.AuditLog
	err := dao.DB.WithContext(ctx).Order("timestamp desc").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
