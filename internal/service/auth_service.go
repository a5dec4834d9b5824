package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/rvermeer/authd/internal/model"
	appErr "github.com/rvermeer/authd/internal/pkg/errors"
	"github.com/rvermeer/authd/internal/pkg/jwt"
	"github.com/rvermeer/authd/internal/pkg/password"
	"github.com/rvermeer/authd/internal/pkg/timeutil"
)

// UserStore is the persistence surface the auth flows need. Each call reads
// or replaces a single account record.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByVerificationCode(ctx context.Context, code string, now int64) (*model.User, error)
	GetByResetToken(ctx context.Context, token string, now int64) (*model.User, error)
}

type AuthService struct {
	users     UserStore
	notifier  Notifier
	jwtSecret []byte
	jwtTTL    time.Duration
	clientURL string
}

func NewAuthService(users UserStore, notifier Notifier, secret []byte, ttl time.Duration, clientURL string) *AuthService {
	return &AuthService{
		users:     users,
		notifier:  notifier,
		jwtSecret: secret,
		jwtTTL:    ttl,
		clientURL: clientURL,
	}
}

// Signup creates an unverified account with a pending verification code and
// returns it along with a fresh session token. A failed verification mail
// surfaces as an error but the account is already committed at that point.
func (s *AuthService) Signup(ctx context.Context, email, plainPassword, name string) (*model.User, string, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, "", err
	}
	now := timeutil.NowUnix()
	code := newVerificationCode()
	expires := now + verificationCodeTTLSeconds
	user := &model.User{
		ID:                  uuid.NewString(),
		Email:               email,
		Name:                name,
		PasswordHash:        hash,
		IsVerified:          false,
		VerificationCode:    &code,
		VerificationExpires: &expires,
		Ctime:               now,
		Mtime:               now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := jwt.GenerateToken(user.ID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	if err := s.notifier.SendVerificationEmail(user.Email, code); err != nil {
		return nil, "", fmt.Errorf("send verification email: %w", err)
	}
	return user, token, nil
}

// Login deliberately reports the same error for an unknown email and a wrong
// password so callers cannot probe which addresses have accounts.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, "", appErr.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", appErr.ErrInvalidCredentials
	}
	now := timeutil.NowUnix()
	user.LastLoginAt = &now
	user.Mtime = now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := jwt.GenerateToken(user.ID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// VerifyEmail consumes a pending verification code. The code is single-use:
// the matching lookup already enforces expiry and the fields are cleared on
// success, so a second call with the same code fails.
func (s *AuthService) VerifyEmail(ctx context.Context, code string) (*model.User, error) {
	if code == "" {
		return nil, appErr.ErrCodeInvalid
	}
	user, err := s.users.GetByVerificationCode(ctx, code, timeutil.NowUnix())
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.ErrCodeInvalid
		}
		return nil, err
	}
	user.IsVerified = true
	user.VerificationCode = nil
	user.VerificationExpires = nil
	user.Mtime = timeutil.NowUnix()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := s.notifier.SendWelcomeEmail(user.Email, user.Name); err != nil {
		return nil, fmt.Errorf("send welcome email: %w", err)
	}
	return user, nil
}

// ResendVerification re-sends the pending code without regenerating it, so a
// user clicking "resend" twice still holds one valid code.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.VerificationCode == nil {
		return appErr.ErrCodeInvalid
	}
	if err := s.notifier.SendVerificationEmail(user.Email, *user.VerificationCode); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	now := timeutil.NowUnix()
	token := newResetToken()
	expires := now + resetTokenTTLSeconds
	user.ResetToken = &token
	user.ResetExpires = &expires
	user.Mtime = now
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	resetURL := fmt.Sprintf("%s/reset-password/%s", s.clientURL, token)
	if err := s.notifier.SendPasswordResetEmail(user.Email, resetURL); err != nil {
		return fmt.Errorf("send password reset email: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
// There is no compare-and-clear guard: two concurrent calls with the same
// token can both pass the lookup before either clears it, and save order
// decides which password sticks.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if resetToken == "" {
		return appErr.ErrResetInvalid
	}
	user, err := s.users.GetByResetToken(ctx, resetToken, timeutil.NowUnix())
	if err != nil {
		if appErr.IsNotFound(err) {
			return appErr.ErrResetInvalid
		}
		return err
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ResetToken = nil
	user.ResetExpires = nil
	user.Mtime = timeutil.NowUnix()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	// Best-effort only: the password change already committed.
	if err := s.notifier.SendResetSuccessEmail(user.Email); err != nil {
		logutil.GetLogger(ctx).Warn("send reset success email failed",
			zap.String("email", user.Email), zap.Error(err))
	}
	return nil
}

// CheckAuth resolves a session's account id to the live record. An account
// deleted after the token was issued is reported as a nil user, not an error.
func (s *AuthService) CheckAuth(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
