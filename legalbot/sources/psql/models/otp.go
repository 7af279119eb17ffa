package models

import "time"

// PasswordOTP is a single-use reset code mailed to the user during the
// forgot-password flow.
type PasswordOTP struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string    `json:"email" gorm:"type:varchar(255);index;not null"`
	Code      string    `json:"-" gorm:"type:varchar(12);not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	Consumed  bool      `json:"consumed" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
}
