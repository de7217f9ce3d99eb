package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Contact is a message submitted through the public contact form. Rows are never updated.
type Contact struct {
	ID        uuid.UUID         `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	FirstName string            `json:"first_name" db:"first_name" gorm:"type:varchar(255);not null"`
	LastName  string            `json:"last_name" db:"last_name" gorm:"type:varchar(255);not null"`
	Email     string            `json:"email" db:"email" gorm:"type:varchar(255);not null;index"`
	Subject   *string           `json:"subject,omitempty" db:"subject" gorm:"type:varchar(255)"`
	Content   string            `json:"content" db:"content" gorm:"type:text;not null"`
	Meta      datatypes.JSONMap `json:"meta,omitempty" db:"meta" gorm:"type:jsonb"`
	CreatedAt time.Time         `json:"created_at" db:"created_at" gorm:"index"`
}

func (c *Contact) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}
