package repository

import (
	"context"

	"github.com/khairunnisaa/palmcode-api/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	GetDB() *gorm.DB
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	List(ctx context.Context, q PageQuery) ([]models.Booking, int64, error)
	FindByMemberIDs(ctx context.Context, memberIDs []uint) ([]models.Booking, error)
	Search(ctx context.Context, memberID *uint) ([]models.Booking, error)
	SortAll(ctx context.Context, column string, desc bool) ([]models.Booking, error)
	Update(ctx context.Context, booking *models.Booking, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, q PageQuery) ([]models.Booking, int64, error) {
	var bookings []models.Booking
	total, err := paginate(ctx, r.db, &models.Booking{}, q, &bookings)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *bookingRepository) FindByMemberIDs(ctx context.Context, memberIDs []uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if len(memberIDs) == 0 {
		return bookings, nil
	}
	err := r.db.WithContext(ctx).
		Where("member_id IN ?", memberIDs).
		Order("id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) Search(ctx context.Context, memberID *uint) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx)
	if memberID != nil {
		q = q.Where("member_id = ?", *memberID)
	}
	if err := q.Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) SortAll(ctx context.Context, column string, desc bool) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).Scopes(OrderBy(column, desc)).Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(booking).Updates(fields).Error
}

func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}
