package model

import (
	"time"
)

// CustomerModel mirrors the 'customers' table. The unique index on email is
// the backstop for the service's uniqueness pre-check. RegistrationDate is
// stored in UTC.
type CustomerModel struct {
	ID               uint   `gorm:"primaryKey;autoIncrement"`
	FirstName        string `gorm:"type:varchar(50);not null"`
	LastName         string `gorm:"type:varchar(50);not null"`
	Email            string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Region           string `gorm:"type:varchar(50)"`
	RegistrationDate time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerModel) TableName() string {
	return "customers"
}
