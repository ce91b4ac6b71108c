// Package service contains business logic for the application's domains.
package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"pulse/internal/mailer"
	"pulse/internal/middleware"
	"pulse/internal/models"
	"pulse/internal/repository"
	"pulse/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// otpTTL is how long a verification code stays valid after issuance.
const otpTTL = 10 * time.Minute

type AuthService struct {
	userRepo repository.UserRepository
	mail     mailer.Sender
	now      func() time.Time
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type VerifyOTPInput struct {
	Email string
	Code  string
}

type ResetPasswordInput struct {
	Email       string
	Code        string
	NewPassword string
}

type LoginInput struct {
	Email    string
	Password string
}

func NewAuthService(userRepo repository.UserRepository, mail mailer.Sender) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		mail:     mail,
		now:      time.Now,
	}
}

// generateOTP returns a 6-digit numeric code, zero-padded.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Signup registers a new account, or reactivates a soft-deleted one
// claiming the same username or email. An active duplicate is a conflict.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Username, email, and password are required")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.FindForSignup(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil && !existing.IsDeleted() {
		return nil, models.NewConflictError("Username or email already taken")
	}
	if existing != nil && (existing.Username != in.Username || existing.Email != in.Email) {
		// The deleted row only partially matches the request. Reactivating
		// it would hand over someone else's old identity, so treat it as
		// taken instead.
		return nil, models.NewConflictError("Username or email already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	code, err := generateOTP()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	expiresAt := s.now().Add(otpTTL)

	var user *models.User
	if existing != nil {
		// Soft-deleted row claims the identity; bring it back with
		// fresh credentials and an unverified state.
		existing.Password = string(hashed)
		existing.VerificationCode = code
		existing.CodeExpiresAt = &expiresAt
		if err := s.userRepo.Reactivate(ctx, existing); err != nil {
			return nil, err
		}
		user = existing
	} else {
		user = &models.User{
			Username:         in.Username,
			Email:            in.Email,
			Password:         string(hashed),
			VerificationCode: code,
			CodeExpiresAt:    &expiresAt,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	middleware.OTPIssued.WithLabelValues("signup").Inc()
	if err := s.mail.SendVerificationCode(ctx, user.Email, code); err != nil {
		middleware.Logger.Error("failed to send verification code", "error", err, "email", user.Email)
	}
	return user, nil
}

// VerifyOTP moves an account from unverified to verified. Verified is
// terminal; repeat attempts are rejected.
func (s *AuthService) VerifyOTP(ctx context.Context, in VerifyOTPInput) error {
	if in.Email == "" || in.Code == "" {
		return models.NewValidationError("Email and verification code are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewValidationError("Invalid email or verification code")
	}
	if user.IsVerified {
		return models.NewValidationError("Account is already verified")
	}
	if user.VerificationCode == "" || user.VerificationCode != in.Code {
		return models.NewValidationError("Invalid email or verification code")
	}
	if user.CodeExpired(s.now()) {
		return models.NewValidationError("Verification code has expired")
	}

	user.IsVerified = true
	user.VerificationCode = ""
	user.CodeExpiresAt = nil
	return s.userRepo.Update(ctx, user)
}

// ResendOTP regenerates and re-sends a verification code for an
// unverified account.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	if email == "" {
		return models.NewValidationError("Email is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("User")
	}
	if user.IsVerified {
		return models.NewValidationError("Account is already verified")
	}

	code, err := generateOTP()
	if err != nil {
		return models.NewInternalError(err)
	}
	expiresAt := s.now().Add(otpTTL)
	user.VerificationCode = code
	user.CodeExpiresAt = &expiresAt
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	middleware.OTPIssued.WithLabelValues("resend").Inc()
	if err := s.mail.SendVerificationCode(ctx, user.Email, code); err != nil {
		middleware.Logger.Error("failed to send verification code", "error", err, "email", user.Email)
	}
	return nil
}

// ForgotPassword issues a reset code when the account exists. It never
// reports whether it did, to avoid account enumeration.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return models.NewValidationError("Email is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil
	}

	code, err := generateOTP()
	if err != nil {
		return nil
	}
	expiresAt := s.now().Add(otpTTL)
	user.VerificationCode = code
	user.CodeExpiresAt = &expiresAt
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil
	}

	middleware.OTPIssued.WithLabelValues("password_reset").Inc()
	if err := s.mail.SendPasswordReset(ctx, user.Email, code); err != nil {
		middleware.Logger.Error("failed to send password reset code", "error", err, "email", user.Email)
	}
	return nil
}

// ResetPassword replaces the password after checking the reset code.
func (s *AuthService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if in.Email == "" || in.Code == "" || in.NewPassword == "" {
		return models.NewValidationError("Email, verification code, and new password are required")
	}
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewValidationError("Invalid email or verification code")
	}
	if user.VerificationCode == "" || user.VerificationCode != in.Code {
		return models.NewValidationError("Invalid email or verification code")
	}
	if user.CodeExpired(s.now()) {
		return models.NewValidationError("Verification code has expired")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hashed)
	user.VerificationCode = ""
	user.CodeExpiresAt = nil
	return s.userRepo.Update(ctx, user)
}

// Login checks credentials and returns the account. Soft-deleted and
// unverified accounts cannot authenticate.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	// GetByEmail excludes soft-deleted rows.
	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if !user.IsVerified {
		return nil, models.NewUnauthorizedError("Account is not verified")
	}
	return user, nil
}
