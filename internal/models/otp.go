package models

import "time"

// OTP is a single-use verification code sent to a phone number. Multiple rows
// may exist for the same number over time; a row is live only while it is
// unused and unexpired, and verification always picks the newest live row.
// Successful verification deletes the row.
type OTP struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PhoneNumber string    `gorm:"index;not null" json:"phone_number"`
	Code        string    `gorm:"size:6;not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `gorm:"index;not null" json:"expires_at"`
	Used        bool      `gorm:"default:false;not null" json:"used"`
}

// Valid reports whether the code is still usable at the given instant.
func (o OTP) Valid(now time.Time) bool {
	return !o.Used && now.Before(o.ExpiresAt)
}
