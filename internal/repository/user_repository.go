package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fakhrymubarak/city-dashboard/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts user. A taken username yields ErrUserExists, also when two
// registrations race past the lookup and the unique index rejects the second.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return ErrUserExists
	}

	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
