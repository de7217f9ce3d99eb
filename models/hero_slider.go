package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HeroSlider is one slide of the home page hero carousel
type HeroSlider struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string    `json:"title" db:"title" gorm:"type:varchar(255);not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:varchar(255);not null;uniqueIndex:idx_hero_sliders_slug"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null"`
	Image       *string   `json:"image,omitempty" db:"image" gorm:"type:text"`
	Status      Status    `json:"status" db:"status" gorm:"type:varchar(16);not null;default:valid;index"`
	UserID      uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	User *User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (h *HeroSlider) BeforeCreate(*gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.Status == "" {
		h.Status = StatusValid
	}
	return nil
}
