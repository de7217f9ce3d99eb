package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project represents a portfolio entry shown on the projects page
type Project struct {
	ID          uuid.UUID     `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string        `json:"name" db:"name" gorm:"type:varchar(255);not null"`
	Slug        string        `json:"slug" db:"slug" gorm:"type:varchar(255);not null;uniqueIndex:idx_projects_slug"`
	Description string        `json:"description" db:"description" gorm:"type:text;not null"`
	GithubLink  *string       `json:"github_link,omitempty" db:"github_link" gorm:"type:text"`
	Image       *string       `json:"image,omitempty" db:"image" gorm:"type:text"`
	Status      Status        `json:"status" db:"status" gorm:"type:varchar(16);not null;default:valid;index"`
	UserID      uuid.UUID     `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
	Files       []ProjectFile `json:"files,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Categories  []Category    `json:"categories,omitempty" gorm:"many2many:category_project;constraint:OnDelete:CASCADE"`

	User *User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = StatusValid
	}
	return nil
}

// ProjectFile is an extra image attached to a project gallery
type ProjectFile struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_project_files_project_id"`
	Path      string    `json:"path" db:"path" gorm:"type:text;not null"`
	Position  int       `json:"position" db:"position" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (f *ProjectFile) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
