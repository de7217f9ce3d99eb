package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HeroSliderRepo struct {
	db *gorm.DB
}

func NewHeroSliderRepo(db *gorm.DB) *HeroSliderRepo {
	return &HeroSliderRepo{db}
}

func (r *HeroSliderRepo) FindAll(ctx context.Context) ([]*models.HeroSlider, error) {
	var slides []*models.HeroSlider
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&slides).Error
	return slides, err
}

// FindPublished returns valid slides in the order they were added
func (r *HeroSliderRepo) FindPublished(ctx context.Context) ([]*models.HeroSlider, error) {
	var slides []*models.HeroSlider
	err := r.db.WithContext(ctx).Where("status = ?", models.StatusValid).Order("created_at ASC").Find(&slides).Error
	return slides, err
}

func (r *HeroSliderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.HeroSlider, error) {
	var slide models.HeroSlider
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&slide).Error; err != nil {
		return nil, err
	}
	return &slide, nil
}

func (r *HeroSliderRepo) Add(ctx context.Context, slide *models.HeroSlider) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(slide).Error
}

func (r *HeroSliderRepo) Update(ctx context.Context, slide *models.HeroSlider) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(slide).Error
}

func (r *HeroSliderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.HeroSlider{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *HeroSliderRepo) CountSlugPrefix(ctx context.Context, prefix string) (int64, error) {
	return countSlugPrefix(ctx, r.db, &models.HeroSlider{}, prefix)
}

func (r *HeroSliderRepo) SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	return slugTaken(ctx, r.db, &models.HeroSlider{}, slug, exclude)
}
