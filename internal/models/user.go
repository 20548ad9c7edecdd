package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is the profile row kept next to the identity provider's account.
type User struct {
	ID           string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	Role         Role    `gorm:"type:varchar(16)" json:"role"`
	OIDCID       *string `gorm:"column:oidc_id;uniqueIndex" json:"-"` // OpenID Connect identifier
	PasswordHash string  `json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return nil
}
