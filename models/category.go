package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:varchar(255);not null"`
	Slug      string    `json:"slug" db:"slug" gorm:"type:varchar(255);not null;uniqueIndex:idx_categories_slug"`
	Image     *string   `json:"image,omitempty" db:"image" gorm:"type:text"`
	Status    Status    `json:"status" db:"status" gorm:"type:varchar(16);not null;default:valid;index"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = StatusValid
	}
	return nil
}
