package models

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User rows are read-only in this service; there is no signup flow.
// A customer user is bound to exactly one VIN.
type User struct {
	ID           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"type:varchar(255);not null"`
	Role         string `json:"role" gorm:"type:varchar(32);not null"`
	VIN          string `json:"vin" gorm:"type:varchar(64)"`
}

func (User) TableName() string { return "users" }
