package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rallypoint/rallypoint-api/internal/logger"
	"github.com/rallypoint/rallypoint-api/internal/mail"
	"github.com/rallypoint/rallypoint-api/internal/models"
	"github.com/rallypoint/rallypoint-api/internal/repository"
	"github.com/rallypoint/rallypoint-api/internal/token"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountPending     = errors.New("your account is pending approval")
	ErrAccountRejected    = errors.New("your account application has been rejected")
	ErrResetTokenInvalid  = errors.New("token is invalid or has expired")
	ErrResetEmailFailed   = errors.New("email could not be sent")
	ErrHashPassword       = errors.New("failed to hash password")
)

// dummyPasswordHash is compared against when the email is unknown so the
// unknown-email and wrong-password paths cost the same bcrypt work and
// return the same error.
var dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService handles registration, login and the password-reset lifecycle.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Issuer
	notifier *mail.Notifier
	log      *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *token.Issuer, notifier *mail.Notifier) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		notifier: notifier,
		log:      logger.WithModule("auth"),
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	MobileNumber string
}

// Register creates a volunteer account in pending status and issues a
// session token. The welcome email is dispatched on a goroutine after the
// user row is committed; a delivery failure never fails the registration.
func (s *AuthService) Register(input RegisterInput) (*models.User, string, error) {
	email := strings.TrimSpace(input.Email)

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", ErrHashPassword
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		MobileNumber: strings.TrimSpace(input.MobileNumber),
		PasswordHash: string(hashed),
		Role:         models.RoleVolunteer,
		Status:       models.StatusPending,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	sessionToken, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	go func(to, name string) {
		if err := s.notifier.SendWelcome(to, name); err != nil {
			s.log.Warn("welcome email failed", zap.String("email", to), zap.Error(err))
		}
	}(user.Email, user.Name)

	return user, sessionToken, nil
}

// Login verifies credentials and the account's approval status, then
// issues a session token. Unknown email and wrong password return the
// identical ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a comparable amount of time before answering.
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	// Approval status gates login for non-admin accounts only.
	if !user.IsAdmin() {
		switch user.Status {
		case models.StatusPending:
			return nil, "", ErrAccountPending
		case models.StatusRejected:
			return nil, "", ErrAccountRejected
		}
	}

	sessionToken, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	return user, sessionToken, nil
}

// ForgotPassword issues a single-use reset token and emails its raw value.
// An unknown email reports success without creating anything, so the
// endpoint cannot be used to enumerate accounts. If delivery fails after
// the token was persisted, the stored fields are cleared so a retried
// request can issue a fresh token.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Info("password reset requested for unknown email", zap.String("email", email))
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	raw, digest, err := token.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expires := time.Now().Add(token.ResetTokenTTL)
	user.ResetPasswordToken = digest
	user.ResetPasswordExpires = &expires
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.notifier.SendPasswordReset(user.Email, raw); err != nil {
		s.log.Error("password reset email failed", zap.String("email", user.Email), zap.Error(err))

		user.ResetPasswordToken = ""
		user.ResetPasswordExpires = nil
		if cleanupErr := s.userRepo.Update(user); cleanupErr != nil {
			s.log.Error("failed to clear reset token after send failure", zap.Error(cleanupErr))
		}
		return ErrResetEmailFailed
	}

	return nil
}

// ResetPassword consumes a raw reset token, stores the new password hash
// and issues a fresh session token so the user is logged in immediately.
func (s *AuthService) ResetPassword(rawToken, newPassword string) (*models.User, string, error) {
	user, err := s.userRepo.FindByResetToken(token.HashResetToken(rawToken), time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrResetTokenInvalid
		}
		return nil, "", fmt.Errorf("failed to look up reset token: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", ErrHashPassword
	}

	user.PasswordHash = string(hashed)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", fmt.Errorf("failed to update password: %w", err)
	}

	sessionToken, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	return user, sessionToken, nil
}
