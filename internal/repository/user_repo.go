package repository

import (
	"context"
	"time"

	"github.com/khairunnisaa/palmcode-api/internal/models"
	"gorm.io/gorm"
)

type UserRepository interface {
	GetDB() *gorm.DB
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	return tx.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

type TokenRepository interface {
	Create(ctx context.Context, tx *gorm.DB, token *models.PersonalAccessToken) error
	FindByHash(ctx context.Context, hash string) (*models.PersonalAccessToken, error)
	Touch(ctx context.Context, id uint, at time.Time) error
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, tx *gorm.DB, token *models.PersonalAccessToken) error {
	return tx.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) FindByHash(ctx context.Context, hash string) (*models.PersonalAccessToken, error) {
	var token models.PersonalAccessToken
	if err := r.db.WithContext(ctx).Where("token = ?", hash).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// Touch stamps last_used_at without bumping updated_at.
func (r *tokenRepository) Touch(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.PersonalAccessToken{}).
		Where("id = ?", id).
		UpdateColumn("last_used_at", at).Error
}
