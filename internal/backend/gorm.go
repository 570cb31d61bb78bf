package backend

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GormRepository stores rows of R in the local sqlite database.
type GormRepository[R any] struct {
	db *gorm.DB
}

// NewGormRepository returns a repository for the table of R.
func NewGormRepository[R any](gdb *gorm.DB) *GormRepository[R] {
	return &GormRepository[R]{db: gdb}
}

// List returns the rows matching query.
func (r *GormRepository[R]) List(ctx context.Context, query Query) ([]R, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).Model(new(R))
	for _, filter := range query.Filters {
		tx = tx.Where(fmt.Sprintf("%s = ?", filter.Column), filter.Value)
	}
	for _, order := range query.Order {
		direction := "asc"
		if order.Descending {
			direction = "desc"
		}
		tx = tx.Order(fmt.Sprintf("%s %s", order.Column, direction))
	}
	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}

	rows := make([]R, 0)
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Get fetches one row by id.
func (r *GormRepository[R]) Get(ctx context.Context, id string) (R, error) {
	var row R
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return row, ErrNotFound
		}
		return row, err
	}
	return row, nil
}

// Insert creates row and returns it as stored.
func (r *GormRepository[R]) Insert(ctx context.Context, row R) (R, error) {
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		var zero R
		return zero, err
	}
	return row, nil
}

// Update overwrites every column of the row with id, including zero values.
func (r *GormRepository[R]) Update(ctx context.Context, id string, row R) (R, error) {
	result := r.db.WithContext(ctx).
		Model(new(R)).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at").
		Updates(&row)
	if result.Error != nil {
		var zero R
		return zero, result.Error
	}
	if result.RowsAffected == 0 {
		var zero R
		return zero, ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes the row with id.
func (r *GormRepository[R]) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(R))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
