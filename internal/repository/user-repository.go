package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"gorm.io/gorm"
)

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (domain.InsertResult, error)
	SetRole(ctx context.Context, id string, role domain.Role) (domain.UpdateResult, error)
	Delete(ctx context.Context, id string) (domain.DeleteResult, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.WithContext(ctx).First(user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (domain.InsertResult, error) {
	if user == nil {
		return domain.InsertResult{}, errors.New("nil user")
	}
	if user.ID == "" {
		user.ID = newID()
	}
	if user.Role == "" {
		user.Role = domain.RoleNone
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return domain.InsertResult{}, domain.ErrUserExists
		}
		return domain.InsertResult{}, fmt.Errorf("create user: %w", err)
	}
	return domain.Inserted(user.ID), nil
}

func (r *userRepository) SetRole(ctx context.Context, id string, role domain.Role) (domain.UpdateResult, error) {
	id, err := parseID(id)
	if err != nil {
		return domain.UpdateResult{}, err
	}

	var matched, modified int64
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.User{}).Where("id = ?", id).Count(&matched).Error; err != nil {
			return err
		}
		if matched == 0 {
			return nil
		}
		// rows already holding the role are matched but not modified
		res := tx.Model(&domain.User{}).
			Where("id = ? AND role <> ?", id, role).
			Update("role", role)
		modified = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("set user role: %w", err)
	}
	return updated(matched, modified), nil
}

func (r *userRepository) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	id, err := parseID(id)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return domain.DeleteResult{}, fmt.Errorf("delete user: %w", res.Error)
	}
	return deleted(res.RowsAffected), nil
}
