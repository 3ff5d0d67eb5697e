package repository

import (
	"context"

	"github.com/khairunnisaa/palmcode-api/internal/models"
	"gorm.io/gorm"
)

type CountryRepository interface {
	Create(ctx context.Context, country *models.Country) error
	FindByID(ctx context.Context, id uint) (*models.Country, error)
	List(ctx context.Context, q PageQuery) ([]models.Country, int64, error)
	Update(ctx context.Context, country *models.Country, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Country, error)
}

type countryRepository struct {
	db *gorm.DB
}

func NewCountryRepository(db *gorm.DB) CountryRepository {
	return &countryRepository{db: db}
}

func (r *countryRepository) Create(ctx context.Context, country *models.Country) error {
	return r.db.WithContext(ctx).Create(country).Error
}

func (r *countryRepository) FindByID(ctx context.Context, id uint) (*models.Country, error) {
	var country models.Country
	if err := r.db.WithContext(ctx).First(&country, id).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *countryRepository) List(ctx context.Context, q PageQuery) ([]models.Country, int64, error) {
	var countries []models.Country
	total, err := paginate(ctx, r.db, &models.Country{}, q, &countries)
	if err != nil {
		return nil, 0, err
	}
	return countries, total, nil
}

func (r *countryRepository) Update(ctx context.Context, country *models.Country, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(country).Updates(fields).Error
}

// Delete removes the country and the bookings made for it.
func (r *countryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("country_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Country{}, id).Error
	})
}

func (r *countryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Country{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *countryRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Country, error) {
	var countries []models.Country
	if len(ids) == 0 {
		return countries, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}
