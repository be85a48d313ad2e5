package models

import "time"

const AppointmentStatusScheduled = "Scheduled"

type ServiceAppointment struct {
	ID            int       `json:"id" gorm:"primaryKey;autoIncrement"`
	VIN           string    `json:"vin" gorm:"type:varchar(64);index;not null"`
	ServiceCenter string    `json:"service_center" gorm:"type:varchar(255);not null"`
	ServiceDate   string    `json:"service_date" gorm:"type:varchar(32);not null"`
	ServiceTime   string    `json:"service_time" gorm:"type:varchar(32);not null"`
	Status        string    `json:"status" gorm:"type:varchar(32);not null"`
	Cost          float64   `json:"cost" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (ServiceAppointment) TableName() string { return "service_appointments" }
