package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectFileRepo struct {
	db *gorm.DB
}

func NewProjectFileRepo(db *gorm.DB) *ProjectFileRepo {
	return &ProjectFileRepo{db}
}

func orderedFiles(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, created_at ASC")
}

// FindByProject returns the files owned by a project in upload order
func (r *ProjectFileRepo) FindByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectFile, error) {
	var files []models.ProjectFile
	err := orderedFiles(r.db.WithContext(ctx).Where("project_id = ?", projectID)).Find(&files).Error
	return files, err
}

// NextPosition is the position after the last file of projectID, 0 for a project without files.
func (r *ProjectFileRepo) NextPosition(ctx context.Context, projectID uuid.UUID) (int, error) {
	var next int
	err := r.db.WithContext(ctx).
		Model(&models.ProjectFile{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(position) + 1, 0)").
		Scan(&next).Error
	return next, err
}

// FindOwned returns a file only when it belongs to projectID
func (r *ProjectFileRepo) FindOwned(ctx context.Context, projectID, id uuid.UUID) (*models.ProjectFile, error) {
	var file models.ProjectFile
	err := r.db.WithContext(ctx).Where("id = ? AND project_id = ?", id, projectID).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *ProjectFileRepo) AddMany(ctx context.Context, files []models.ProjectFile) error {
	if len(files) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&files).Error
}

func (r *ProjectFileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProjectFile{}).Error
}
