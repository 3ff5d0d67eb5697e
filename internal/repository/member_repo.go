package repository

import (
	"context"

	"github.com/khairunnisaa/palmcode-api/internal/models"
	"gorm.io/gorm"
)

type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, id uint) (*models.Member, error)
	List(ctx context.Context, q PageQuery) ([]models.Member, int64, error)
	Update(ctx context.Context, member *models.Member, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Member, error)
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) List(ctx context.Context, q PageQuery) ([]models.Member, int64, error) {
	var members []models.Member
	total, err := paginate(ctx, r.db, &models.Member{}, q, &members)
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (r *memberRepository) Update(ctx context.Context, member *models.Member, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(member).Updates(fields).Error
}

// Delete removes the member together with its bookings and id verifications.
func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&models.IdVerification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Member{}, id).Error
	})
}

func (r *memberRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *memberRepository) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Member{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *memberRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Member, error) {
	var members []models.Member
	if len(ids) == 0 {
		return members, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
