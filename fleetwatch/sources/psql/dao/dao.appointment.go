package dao

import (
	"context"

	"fleetwatch/fleetwatch/sources/psql/models"

	"gorm.io/gorm"
)

type AppointmentDAO struct {
	DB *gorm.DB
}

func NewAppointmentDAO(db *gorm.DB) *AppointmentDAO {
	return &AppointmentDAO{DB: db}
}

func (dao *AppointmentDAO) Create(ctx context.Context, appt *models.ServiceAppointment) error {
	return dao.DB.WithContext(ctx).Create(appt).Error
}

func (dao *AppointmentDAO) ListByVIN(ctx context.Context, vin string) ([]models.ServiceAppointment, error) {
	var appts []models.ServiceAppointment
	err := dao.DB.WithContext(ctx).Where("vin = ?", vin).Order("created_at desc").Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (dao *AppointmentDAO) ListAll(ctx context.Context) ([]models.ServiceAppointment, error) {
	var appts []models.ServiceAppointment
	err := dao.DB.WithContext(ctx).Order("created_at desc").Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}
