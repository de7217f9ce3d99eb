package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns every project, newest first
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// FindPublished returns valid projects, newest first. limit <= 0 means no limit.
func (r *ProjectRepo) FindPublished(ctx context.Context, limit int) ([]*models.Project, error) {
	var projects []*models.Project
	q := r.db.WithContext(ctx).
		Preload("Files", orderedFiles).
		Where("status = ?", models.StatusValid).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&projects).Error
	return projects, err
}

// FindByID returns a project with its files and categories
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Files", orderedFiles).
		Preload("Categories").
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindPublishedBySlug returns a valid project by slug
func (r *ProjectRepo) FindPublishedBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Files", orderedFiles).
		Where("slug = ? AND status = ?", slug, models.StatusValid).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project together with any files already attached to it
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit("Categories", "User").Create(project).Error
}

// Update overwrites the scalar columns of an existing project
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
}

// ReplaceCategories sets the project's categories to exactly categories
func (r *ProjectRepo) ReplaceCategories(ctx context.Context, project *models.Project, categories []models.Category) error {
	assoc := r.db.WithContext(ctx).Model(project).Association("Categories")
	if len(categories) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(categories)
}

// Delete removes a project, its file rows and its category links
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Select("Files", "Categories").Delete(&models.Project{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProjectRepo) CountSlugPrefix(ctx context.Context, prefix string) (int64, error) {
	return countSlugPrefix(ctx, r.db, &models.Project{}, prefix)
}

func (r *ProjectRepo) SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	return slugTaken(ctx, r.db, &models.Project{}, slug, exclude)
}
