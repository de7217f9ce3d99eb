package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service represents an offering listed on the services page, with its FAQ
type Service struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string     `json:"name" db:"name" gorm:"type:varchar(255);not null"`
	Slug        string     `json:"slug" db:"slug" gorm:"type:varchar(255);not null;uniqueIndex:idx_services_slug"`
	Description string     `json:"description" db:"description" gorm:"type:text;not null"`
	Image       *string    `json:"image,omitempty" db:"image" gorm:"type:text"`
	Status      Status     `json:"status" db:"status" gorm:"type:varchar(16);not null;default:valid;index"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	Faqs        []Faq      `json:"faqs,omitempty" gorm:"foreignKey:ServiceID;references:ID;constraint:OnDelete:CASCADE"`
	Categories  []Category `json:"categories,omitempty" gorm:"many2many:category_service;constraint:OnDelete:CASCADE"`

	User *User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (s *Service) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = StatusValid
	}
	return nil
}

// Faq is one question of a service. Position is the index the admin submitted it at.
type Faq struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ServiceID uuid.UUID `json:"service_id" db:"service_id" gorm:"type:uuid;not null;index:idx_faqs_service_id"`
	Question  string    `json:"question" db:"question" gorm:"type:text;not null"`
	Answer    string    `json:"answer" db:"answer" gorm:"type:text;not null"`
	Position  int       `json:"position" db:"position" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (f *Faq) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
