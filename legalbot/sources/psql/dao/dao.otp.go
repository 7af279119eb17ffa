package dao

import (
	"context"
	"time"

	"legalbot/legalbot/sources/psql/models"

	"gorm.io/gorm"
)

type OTPDAO struct {
	DB *gorm.DB
}

func NewOTPDAO(db *gorm.DB) *OTPDAO {
	return &OTPDAO{DB: db}
}

func (dao *OTPDAO) CreateOTP(ctx context.Context, otp *models.PasswordOTP) error {
	return dao.DB.WithContext(ctx).Create(otp).Error
}

// GetActiveOTP returns the newest unconsumed, unexpired code for the email,
// or nil when none exists.
func (dao *OTPDAO) GetActiveOTP(ctx context.Context, email, code string, now time.Time) (*models.PasswordOTP, error) {
	var otp models.PasswordOTP
	err := dao.DB.WithContext(ctx).
		Where("email = ? AND code = ? AND consumed = ? AND expires_at > ?", email, code, false, now).
		Order("created_at DESC").
		First(&otp).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (dao *OTPDAO) ConsumeOTP(ctx context.Context, id uint) error {
	return dao.DB.WithContext(ctx).
		Model(&models.PasswordOTP{}).
		Where("id = ?", id).
		Update("consumed", true).Error
}
