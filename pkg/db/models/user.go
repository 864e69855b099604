package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	"gorm.io/gorm"
)

// User represents an account. Email and display name are unique.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string     `gorm:"column:email;type:text;not null;uniqueIndex:users_email_key"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	DisplayName  *string    `gorm:"column:display_name;type:text;uniqueIndex:users_display_name_key"`
	Role         enums.Role `gorm:"column:role;type:user_role;not null;default:'USER'"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	return assignID(&u.ID)
}
