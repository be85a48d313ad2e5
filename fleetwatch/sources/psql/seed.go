package psql

import (
	"context"

	"fleetwatch/fleetwatch/sources/psql/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDev loads a small fixture fleet for local development. It is a no-op
// when users already exist.
func SeedDev(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash := func(pw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		return string(h)
	}

	users := []models.User{
		{Username: "admin", PasswordHash: hash("admin123"), Role: models.RoleAdmin},
		{Username: "alice", PasswordHash: hash("alice123"), Role: models.RoleCustomer, VIN: "VIN1001"},
		{Username: "bob", PasswordHash: hash("bob123"), Role: models.RoleCustomer, VIN: "VIN1002"},
	}
	if err := db.WithContext(ctx).Create(&users).Error; err != nil {
		return err
	}

	vehicles := []models.Vehicle{
		{VIN: "VIN1001", Age: 3, Mileage: 42000, EngineTemp: 92, ErrorCount: 1},
		{VIN: "VIN1002", Age: 9, Mileage: 160000, EngineTemp: 111, ErrorCount: 7},
		{VIN: "VIN1003", Age: 5, Mileage: 78000, EngineTemp: 98, ErrorCount: 2},
	}
	return db.WithContext(ctx).Create(&vehicles).Error
}
