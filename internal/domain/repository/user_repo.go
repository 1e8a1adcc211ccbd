package repository

import (
	"github.com/thierryazur06/site-api/internal/domain/entity"
)

// UserRepository defines access to admin accounts.
type UserRepository interface {
	// Create inserts a user. A duplicate email yields apperrors.ErrConflict.
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	List() ([]entity.User, error)
	// UpdatePassword stores the hash of newPassword and sets the
	// must-change flag to mustChange.
	UpdatePassword(userID uint, newPassword string, mustChange bool) error
	// Delete removes the user together with its verification codes.
	Delete(id uint) error
}
