package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ServiceRepo struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) *ServiceRepo {
	return &ServiceRepo{db}
}

func orderedFaqs(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, created_at ASC")
}

// FindAll returns every service, newest first
func (r *ServiceRepo) FindAll(ctx context.Context) ([]*models.Service, error) {
	var services []*models.Service
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&services).Error
	return services, err
}

// FindPublished returns valid services with their FAQs, newest first. limit <= 0 means no limit.
func (r *ServiceRepo) FindPublished(ctx context.Context, limit int) ([]*models.Service, error) {
	var services []*models.Service
	q := r.db.WithContext(ctx).
		Preload("Faqs", orderedFaqs).
		Where("status = ?", models.StatusValid).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&services).Error
	return services, err
}

// FindByID returns a service with its FAQs and categories
func (r *ServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var service models.Service
	err := r.db.WithContext(ctx).
		Preload("Faqs", orderedFaqs).
		Preload("Categories").
		Where("id = ?", id).
		First(&service).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// FindPublishedBySlug returns a valid service and its FAQs by slug
func (r *ServiceRepo) FindPublishedBySlug(ctx context.Context, slug string) (*models.Service, error) {
	var service models.Service
	err := r.db.WithContext(ctx).
		Preload("Faqs", orderedFaqs).
		Where("slug = ? AND status = ?", slug, models.StatusValid).
		First(&service).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// Add inserts a new service together with any FAQs already attached to it
func (r *ServiceRepo) Add(ctx context.Context, service *models.Service) error {
	return r.db.WithContext(ctx).Omit("Categories", "User").Create(service).Error
}

// Update overwrites the scalar columns of an existing service. FAQs are reconciled separately.
func (r *ServiceRepo) Update(ctx context.Context, service *models.Service) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(service).Error
}

func (r *ServiceRepo) ReplaceCategories(ctx context.Context, service *models.Service, categories []models.Category) error {
	assoc := r.db.WithContext(ctx).Model(service).Association("Categories")
	if len(categories) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(categories)
}

// Delete removes a service, its FAQs and its category links
func (r *ServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Select("Faqs", "Categories").Delete(&models.Service{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ServiceRepo) CountSlugPrefix(ctx context.Context, prefix string) (int64, error) {
	return countSlugPrefix(ctx, r.db, &models.Service{}, prefix)
}

func (r *ServiceRepo) SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	return slugTaken(ctx, r.db, &models.Service{}, slug, exclude)
}
