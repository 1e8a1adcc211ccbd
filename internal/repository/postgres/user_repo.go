package postgres

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/thierryazur06/site-api/internal/domain/entity"
)

// UserRepo implements repository.UserRepository.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a user repository.
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a user. The password is hashed by the BeforeSave hook.
func (r *UserRepo) Create(user *entity.User) error {
	return translate(r.db.Create(user).Error, "create user")
}

// GetByID returns a user by id.
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translate(err, "get user")
	}
	return &user, nil
}

// GetByEmail returns a user by email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "get user by email")
	}
	return &user, nil
}

// List returns every user ordered by id.
func (r *UserRepo) List() ([]entity.User, error) {
	var users []entity.User
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		return nil, translate(err, "list users")
	}
	return users, nil
}

// UpdatePassword hashes newPassword and writes it with UpdateColumns so
// that BeforeSave does not run on the already hashed value.
func (r *UserRepo) UpdatePassword(userID uint, newPassword string, mustChange bool) error {
	hashed, err := entity.HashPassword(newPassword)
	if err != nil {
		return err
	}

	result := r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"password":             hashed,
			"must_change_password": mustChange,
		})
	if err := affected(result, "update password"); err != nil {
		return err
	}

	zap.L().Info("password updated", zap.Uint("user_id", userID))
	return nil
}

// Delete removes the user and its codes in one transaction.
func (r *UserRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&entity.VerificationCode{}).Error; err != nil {
			return translate(err, "delete user codes")
		}
		return affected(tx.Delete(&entity.User{}, id), "delete user")
	})
}
