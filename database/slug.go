package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// countSlugPrefix counts rows of model whose slug starts with prefix.
// Slugs only hold [a-z0-9-] so the prefix needs no LIKE escaping.
func countSlugPrefix(ctx context.Context, db *gorm.DB, model interface{}, prefix string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(model).Where("slug LIKE ?", prefix+"%").Count(&count).Error
	return count, err
}

// slugTaken reports whether a row other than exclude already holds slug.
func slugTaken(ctx context.Context, db *gorm.DB, model interface{}, slug string, exclude uuid.UUID) (bool, error) {
	var count int64
	q := db.WithContext(ctx).Model(model).Where("slug = ?", slug)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
