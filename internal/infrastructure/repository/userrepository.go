package repository

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"inkwell/internal/domain/content"
	"inkwell/internal/infrastructure/persistence/models"
	"inkwell/internal/shared/authorization"
	"inkwell/internal/shared/errors"
)

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) content.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, identifier string) (*content.User, error) {
	var model models.UserModel

	var err error
	if id, convErr := strconv.ParseUint(identifier, 10, 64); convErr == nil {
		err = r.db.WithContext(ctx).First(&model, id).Error
	} else {
		err = r.db.WithContext(ctx).Where("uuid = ?", identifier).First(&model).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user %q: %w", identifier, err)
	}

	return toUserEntity(&model), nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*content.User, error) {
	var model models.UserModel

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return toUserEntity(&model), nil
}

func (r *UserRepositoryImpl) FindByUUID(ctx context.Context, uuid string) (*content.User, error) {
	var model models.UserModel

	err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by uuid: %w", err)
	}

	return toUserEntity(&model), nil
}

func (r *UserRepositoryImpl) List(ctx context.Context, opts content.UserListOptions) ([]*content.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var modelList []*models.UserModel
	err := r.db.WithContext(ctx).Order("created_at DESC").
		Limit(opts.Size).
		Offset((opts.Page - 1) * opts.Size).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*content.User, 0, len(modelList))
	for _, m := range modelList {
		users = append(users, toUserEntity(m))
	}

	return users, total, nil
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *content.User) error {
	model := toUserModel(user)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = model.ID
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *content.User) error {
	result := r.db.WithContext(ctx).Save(toUserModel(user))
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("user not found")
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.UserModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("user not found")
	}
	return nil
}

func toUserModel(u *content.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID,
		UUID:         u.UUID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role.String(),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toUserEntity(m *models.UserModel) *content.User {
	return &content.User{
		ID:           m.ID,
		UUID:         m.UUID,
		Name:         m.Name,
		Email:        m.Email,
		Role:         authorization.ParseUserRole(m.Role),
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
