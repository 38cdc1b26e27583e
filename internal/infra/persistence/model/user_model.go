// Package model holds the GORM persistence models. They mirror tables and
// stay separate from the pure domain entities.
package model

import (
	"time"
)

// UserModel mirrors the 'users' table. Username and email each carry a
// unique index; the index on username is the backstop for the service's
// check-then-insert registration flow.
type UserModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Role         string `gorm:"type:varchar(50);not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
