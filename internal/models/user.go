package models

import "time"

// User is an account keyed by phone number. The phone number is the primary
// login identifier; the password column always holds an Argon2id hash, never
// the plaintext. Rows are never deleted by any account flow.
type User struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	FullName    string `gorm:"uniqueIndex;not null" json:"full_name"`
	PhoneNumber string `gorm:"uniqueIndex;not null" json:"phone_number"`
	Password    string `gorm:"not null" json:"-"`

	IsVerified bool `gorm:"default:false;not null" json:"is_verified"`

	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
