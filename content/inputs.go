package content

import (
	"strings"

	"github.com/rpupo63/portfolio-backend/storage"
)

// Form inputs. Text fields are trimmed before validation, so a blank value fails "required".

type CategoryInput struct {
	Name   string          `form:"name" validate:"required,max=255"`
	Status string          `form:"status" validate:"omitempty,oneof=valid invalid"`
	Image  *storage.Upload `form:"image" validate:"-"`
}

func (in *CategoryInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Status = strings.TrimSpace(in.Status)
}

type ProjectInput struct {
	Name        string `form:"name" validate:"required,max=255"`
	Description string `form:"description" validate:"required"`
	GithubLink  string `form:"github_link" validate:"omitempty,url,max=2048"`
	Status      string `form:"status" validate:"omitempty,oneof=valid invalid"`
	// CategoryIDs replaces the project's categories when non-nil.
	CategoryIDs []string          `form:"category_ids" validate:"omitempty,dive,uuid"`
	Image       *storage.Upload   `form:"image" validate:"-"`
	Files       []*storage.Upload `form:"files" validate:"-"`
}

func (in *ProjectInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = sanitizeRichText(in.Description)
	in.GithubLink = strings.TrimSpace(in.GithubLink)
	in.Status = strings.TrimSpace(in.Status)
}

// FaqInput is one submitted FAQ row. An empty ID asks for a new row.
type FaqInput struct {
	ID       string `form:"id" validate:"omitempty,uuid"`
	Question string `form:"question" validate:"required"`
	Answer   string `form:"answer" validate:"required"`
}

type ServiceInput struct {
	Name        string          `form:"name" validate:"required,max=255"`
	Description string          `form:"description" validate:"required"`
	Status      string          `form:"status" validate:"omitempty,oneof=valid invalid"`
	CategoryIDs []string        `form:"category_ids" validate:"omitempty,dive,uuid"`
	Image       *storage.Upload `form:"image" validate:"-"`
	Faqs        []FaqInput      `form:"faqs" validate:"omitempty,dive"`
}

func (in *ServiceInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = sanitizeRichText(in.Description)
	in.Status = strings.TrimSpace(in.Status)
	for i := range in.Faqs {
		in.Faqs[i].ID = strings.TrimSpace(in.Faqs[i].ID)
		in.Faqs[i].Question = strings.TrimSpace(in.Faqs[i].Question)
		in.Faqs[i].Answer = sanitizeRichText(in.Faqs[i].Answer)
	}
}

type HeroSlideInput struct {
	Title       string          `form:"title" validate:"required,max=255"`
	Description string          `form:"description" validate:"required"`
	Status      string          `form:"status" validate:"omitempty,oneof=valid invalid"`
	Image       *storage.Upload `form:"image" validate:"-"`
}

func (in *HeroSlideInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = sanitizeRichText(in.Description)
	in.Status = strings.TrimSpace(in.Status)
}

type ContactInput struct {
	FirstName string `form:"first_name" json:"first_name" validate:"required,max=255"`
	LastName  string `form:"last_name" json:"last_name" validate:"required,max=255"`
	Email     string `form:"email" json:"email" validate:"required,email,max=255"`
	Subject   string `form:"subject" json:"subject" validate:"omitempty,max=255"`
	Content   string `form:"content" json:"content" validate:"required,max=255"`
}

func (in *ContactInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Subject = strings.TrimSpace(in.Subject)
	in.Content = strings.TrimSpace(in.Content)
}

// ContactMeta is request context stored alongside a contact message.
type ContactMeta struct {
	IP        string
	UserAgent string
	Locale    string
}
