package service

import (
	"context"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"github.com/thierryazur06/site-api/internal/domain/entity"
	"github.com/thierryazur06/site-api/internal/domain/repository"
	apperrors "github.com/thierryazur06/site-api/internal/pkg/errors"
	"github.com/thierryazur06/site-api/internal/verification"
)

const (
	tempPasswordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()_+"
	tempPasswordLength  = 12
)

// CreateUserInput describes a new admin account.
type CreateUserInput struct {
	Email     string
	FirstName string
	LastName  string
}

// ChangePasswordInput is the authenticated password change request.
type ChangePasswordInput struct {
	UserID      uint
	NewPassword string
	OldPassword string
	Code        string
}

// AccountService manages admin accounts from the back office.
type AccountService struct {
	users    repository.UserRepository
	codes    verification.Codes[uint]
	email    EmailService
	password func() (string, error)
}

// NewAccountService creates the account service.
func NewAccountService(users repository.UserRepository, codes verification.Codes[uint], email EmailService) (*AccountService, error) {
	if users == nil {
		return nil, fmt.Errorf("UserRepository is required for AccountService")
	}
	if codes == nil {
		return nil, fmt.Errorf("verification codes are required for AccountService")
	}
	if email == nil {
		return nil, fmt.Errorf("EmailService is required for AccountService")
	}
	return &AccountService{
		users: users,
		codes: codes,
		email: email,
		password: func() (string, error) {
			return gonanoid.Generate(tempPasswordCharset, tempPasswordLength)
		},
	}, nil
}

func (s *AccountService) Me(userID uint) (*entity.User, error) {
	return s.users.GetByID(userID)
}

func (s *AccountService) List() ([]entity.User, error) {
	return s.users.List()
}

// Create stores an admin with a random temporary password that must be
// changed at first login, then mails it to them.
func (s *AccountService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.Email == "" || in.FirstName == "" || in.LastName == "" {
		return nil, required("email, firstName and lastName")
	}

	tempPassword, err := s.password()
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}

	user := &entity.User{
		Email:              in.Email,
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		Password:           tempPassword,
		MustChangePassword: true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	zap.L().Info("admin created", zap.Uint("user_id", user.ID))

	if err := s.email.SendWelcome(ctx, user.Email, user.FirstName, tempPassword); err != nil {
		return user, err
	}
	return user, nil
}

// Delete removes targetID. Admins cannot delete themselves.
func (s *AccountService) Delete(callerID, targetID uint) error {
	if callerID == targetID {
		return ErrCannotDeleteSelf
	}
	if err := s.users.Delete(targetID); err != nil {
		return err
	}
	zap.L().Info("admin deleted", zap.Uint("user_id", targetID), zap.Uint("by", callerID))
	return nil
}

// RequestPasswordChangeCode mails a code to the account's address.
func (s *AccountService) RequestPasswordChangeCode(ctx context.Context, userID uint) error {
	if userID == 0 {
		return required("userId")
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	code, err := s.codes.Issue(ctx, user.ID)
	if err != nil {
		return err
	}
	return s.email.SendLoginCode(ctx, user.Email, code)
}

// ChangePassword requires the old password unless the account is flagged
// for a forced change, then consumes the emailed code.
func (s *AccountService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if in.UserID == 0 || in.NewPassword == "" || in.Code == "" {
		return required("userId, newPassword and code")
	}
	if len(in.NewPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.users.GetByID(in.UserID)
	if err != nil {
		return err
	}
	if !user.MustChangePassword {
		if in.OldPassword == "" {
			return ErrOldPasswordRequired
		}
		if !user.CheckPassword(in.OldPassword) {
			return ErrOldPasswordMismatch
		}
	}

	ok, err := s.codes.Verify(ctx, user.ID, in.Code)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrInvalidCode
	}
	return s.users.UpdatePassword(user.ID, in.NewPassword, false)
}
