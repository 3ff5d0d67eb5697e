package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PageQuery describes one page of an ordered listing. SortBy must already be
// a known column; callers validate it against their allowlist.
type PageQuery struct {
	Page    int
	PerPage int
	SortBy  string
	Desc    bool
}

func (q PageQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}

// OrderBy orders by column (id when empty) with id as tie-breaker.
func OrderBy(column string, desc bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if column == "" {
			column = "id"
		}
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
		if column != "id" {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
		}
		return db
	}
}

func paginate(ctx context.Context, db *gorm.DB, model any, q PageQuery, dest any, scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	var total int64
	if err := db.WithContext(ctx).Model(model).Scopes(scopes...).Count(&total).Error; err != nil {
		return 0, err
	}

	err := db.WithContext(ctx).
		Scopes(scopes...).
		Scopes(OrderBy(q.SortBy, q.Desc)).
		Offset(q.Offset()).
		Limit(q.PerPage).
		Find(dest).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
