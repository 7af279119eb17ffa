package controllers

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"legalbot/legalbot/config"
	"legalbot/legalbot/sources/psql/dao"
	"legalbot/legalbot/sources/psql/models"
	"legalbot/legalbot/utils/logging"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrInvalidOTP         = errors.New("invalid or expired code")
)

const otpTTL = 15 * time.Minute

type AuthController struct {
	userDAO *dao.UserDAO
	otpDAO  *dao.OTPDAO
	cfg     config.Config
}

func NewAuthController(userDAO *dao.UserDAO, otpDAO *dao.OTPDAO, cfg config.Config) *AuthController {
	return &AuthController{
		userDAO: userDAO,
		otpDAO:  otpDAO,
		cfg:     cfg,
	}
}

func (c *AuthController) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	existing, err := c.userDAO.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	role := models.RoleUser
	if c.cfg.AdminEmail != "" && email == c.cfg.AdminEmail {
		role = models.RoleAdmin
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := c.userDAO.CreateUser(ctx, &user); err != nil {
		return nil, "", err
	}

	token, err := c.mintToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (c *AuthController) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := c.userDAO.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if user.Blocked {
		return nil, "", ErrAccountBlocked
	}

	token, err := c.mintToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ForgotPassword creates a single-use reset code for the account. The reply
// is identical whether or not the email exists, so the endpoint cannot be
// used to probe for accounts.
func (c *AuthController) ForgotPassword(ctx context.Context, email string) error {
	user, err := c.userDAO.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	code, err := newOTPCode()
	if err != nil {
		return err
	}
	otp := models.PasswordOTP{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := c.otpDAO.CreateOTP(ctx, &otp); err != nil {
		return err
	}

	// Delivery goes through the mail provider; until that is configured the
	// code is only visible in the app log.
	logging.AppLogger.Info("password reset code issued",
		zap.String("email", email), zap.String("code", code))
	return nil
}

func (c *AuthController) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	otp, err := c.otpDAO.GetActiveOTP(ctx, email, code, time.Now())
	if err != nil {
		return err
	}
	if otp == nil {
		return ErrInvalidOTP
	}
	user, err := c.userDAO.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidOTP
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := c.userDAO.UpdateUser(ctx, user); err != nil {
		return err
	}
	return c.otpDAO.ConsumeOTP(ctx, otp.ID)
}

func (c *AuthController) mintToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"user_name": user.Name,
		"role":      user.Role,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.cfg.JWTSecret))
}

func newOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
