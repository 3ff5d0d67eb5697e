package repository

import (
	"context"

	"github.com/khairunnisaa/palmcode-api/internal/models"
	"gorm.io/gorm"
)

type IdVerificationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *models.IdVerification) error
	Exists(ctx context.Context, id uint) (bool, error)
	FindByMemberIDs(ctx context.Context, memberIDs []uint) ([]models.IdVerification, error)
	UpdateByMemberID(ctx context.Context, memberID uint, fields map[string]any) (int64, error)
}

type idVerificationRepository struct {
	db *gorm.DB
}

func NewIdVerificationRepository(db *gorm.DB) IdVerificationRepository {
	return &idVerificationRepository{db: db}
}

func (r *idVerificationRepository) Create(ctx context.Context, tx *gorm.DB, v *models.IdVerification) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *idVerificationRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.IdVerification{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// FindByMemberIDs returns the verifications of the given members ordered by id.
func (r *idVerificationRepository) FindByMemberIDs(ctx context.Context, memberIDs []uint) ([]models.IdVerification, error) {
	var out []models.IdVerification
	if len(memberIDs) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("member_id IN ?", memberIDs).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *idVerificationRepository) UpdateByMemberID(ctx context.Context, memberID uint, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.IdVerification{}).
		Where("member_id = ?", memberID).
		Updates(fields)
	return res.RowsAffected, res.Error
}
