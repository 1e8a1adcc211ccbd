package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/thierryazur06/site-api/internal/domain/entity"
	"github.com/thierryazur06/site-api/internal/domain/repository"
	apperrors "github.com/thierryazur06/site-api/internal/pkg/errors"
	"github.com/thierryazur06/site-api/internal/verification"
)

// TokenIssuer mints session tokens. *auth.JWTService implements it.
type TokenIssuer interface {
	GenerateToken(userID uint, email string) (string, error)
}

// LoginResult is returned once the second factor has been verified.
type LoginResult struct {
	Token string
	User  *entity.User
}

// AuthService runs the two step admin login and the password reset flow.
// Codes are keyed by user id in the durable store.
type AuthService struct {
	users  repository.UserRepository
	codes  verification.Codes[uint]
	tokens TokenIssuer
	email  EmailService
}

// NewAuthService creates the auth service.
func NewAuthService(users repository.UserRepository, codes verification.Codes[uint], tokens TokenIssuer, email EmailService) (*AuthService, error) {
	if users == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if codes == nil {
		return nil, fmt.Errorf("verification codes are required for AuthService")
	}
	if tokens == nil {
		return nil, fmt.Errorf("TokenIssuer is required for AuthService")
	}
	if email == nil {
		return nil, fmt.Errorf("EmailService is required for AuthService")
	}
	return &AuthService{users: users, codes: codes, tokens: tokens, email: email}, nil
}

// Login checks the password and mails a login code. It returns the user
// id the client must send back with the code.
func (s *AuthService) Login(ctx context.Context, email, password string) (uint, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return 0, required("email and password")
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, ErrInvalidCredentials
		}
		return 0, err
	}
	if !user.CheckPassword(password) {
		zap.L().Info("login rejected", zap.Uint("user_id", user.ID))
		return 0, ErrInvalidCredentials
	}

	code, err := s.codes.Issue(ctx, user.ID)
	if err != nil {
		return 0, err
	}
	if err := s.email.SendLoginCode(ctx, user.Email, code); err != nil {
		return 0, err
	}
	return user.ID, nil
}

// VerifyLogin consumes the login code and issues a session token.
func (s *AuthService) VerifyLogin(ctx context.Context, userID uint, code string) (*LoginResult, error) {
	if userID == 0 || code == "" {
		return nil, required("userId and code")
	}

	ok, err := s.codes.Verify(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvalidCode
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	zap.L().Info("admin logged in", zap.Uint("user_id", user.ID))
	return &LoginResult{Token: token, User: user}, nil
}

// RequestPasswordReset mails a reset code when the email belongs to an
// account. found is false for unknown emails, which is not an error.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (userID uint, found bool, err error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return 0, false, required("email")
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	code, err := s.codes.Issue(ctx, user.ID)
	if err != nil {
		return 0, false, err
	}
	if err := s.email.SendPasswordResetCode(ctx, user.Email, code); err != nil {
		return 0, false, err
	}
	return user.ID, true, nil
}

// ResetPassword consumes the reset code and stores the new password.
func (s *AuthService) ResetPassword(ctx context.Context, userID uint, code, newPassword string) error {
	if userID == 0 || code == "" || newPassword == "" {
		return required("userId, code and newPassword")
	}
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	ok, err := s.codes.Verify(ctx, userID, code)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrInvalidCode
	}
	return s.users.UpdatePassword(userID, newPassword, false)
}
