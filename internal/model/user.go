package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account that can open a session.
type User struct {
	ID           string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Username     string    `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate generates the UUID when none was set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// Credentials is the body of POST /register and POST /login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
