package models

// Vehicle holds the raw sensor attributes the risk model scores. Risk and
// risk_score are derived per read and never persisted; only the notified
// flag survives the notification workflow.
type Vehicle struct {
	VIN        string  `json:"vin" gorm:"primaryKey;type:varchar(64)"`
	Age        float64 `json:"age" gorm:"not null;default:0"`
	Mileage    float64 `json:"mileage" gorm:"not null;default:0"`
	EngineTemp float64 `json:"engine_temp" gorm:"not null;default:0"`
	ErrorCount float64 `json:"error_count" gorm:"not null;default:0"`
	Notified   bool    `json:"notified" gorm:"not null;default:false"`
}

func (Vehicle) TableName() string { return "vehicles" }
