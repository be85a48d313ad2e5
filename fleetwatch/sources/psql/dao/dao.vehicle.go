package dao

import (
	"context"

	"fleetwatch/fleetwatch/sources/psql/models"

	"gorm.io/gorm"
)

type VehicleDAO struct {
	DB *gorm.DB
}

func NewVehicleDAO(db *gorm.DB) *VehicleDAO {
	return &VehicleDAO{DB: db}
}

func (dao *VehicleDAO) GetByVIN(ctx context.Context, vin string) (*models.Vehicle, error) {
	var v models.Vehicle
	err := dao.DB.WithContext(ctx).Where("vin = ?", vin).First(&v).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (dao *VehicleDAO) ListAll(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := dao.DB.WithContext(ctx).Order("vin asc").Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Upsert writes the full row; used by seeding and fleet imports.
func (dao *VehicleDAO) Upsert(ctx context.Context, v *models.Vehicle) error {
	return dao.DB.WithContext(ctx).Save(v).Error
}
