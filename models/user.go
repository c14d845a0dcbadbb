package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the permission level of a user
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// User represents a registered reader or author of the blog
type User struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name            string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email           string    `json:"email,omitempty" db:"email" gorm:"type:text;not null;uniqueIndex:idx_users_email"`
	Password        string    `json:"-" db:"password" gorm:"type:text;not null"`
	Role            Role      `json:"role,omitempty" db:"role" gorm:"type:text;not null"`
	ProfileImageURL *string   `json:"profileImageUrl" db:"profile_image_url" gorm:"type:text"`
	Bio             string    `json:"bio,omitempty" db:"bio" gorm:"type:text"`
	CreatedAt       time.Time `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
