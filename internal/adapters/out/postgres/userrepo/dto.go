// Package userrepo reads owner display profiles from the user service's users table.
package userrepo

import (
	"github.com/google/uuid"
)

type UserDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"type:varchar(255);not null"`
	Email string    `gorm:"type:varchar(255);not null"`
}

func (UserDTO) TableName() string {
	return "users"
}
