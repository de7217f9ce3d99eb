package api

import (
	"github.com/rpupo63/portfolio-backend/content"
	"github.com/rpupo63/portfolio-backend/locale"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/storage"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler      authHandler
	publicHandler    publicHandler
	categoryHandler  categoryHandler
	projectHandler   projectHandler
	serviceHandler   serviceHandler
	heroSlideHandler heroSlideHandler
	contactHandler   contactHandler
	healthHandler    healthHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string            `json:"error" example:"validation failed"`
	Status  string            `json:"status" example:"error"`
	Field   string            `json:"field,omitempty" example:"title"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details string            `json:"details,omitempty" example:"Additional error details"`
	Cause   string            `json:"cause,omitempty" example:"Underlying error cause"`
}

// MessageResponse acknowledges a mutation without a body.
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Records are returned as stored plus public URLs for their files.

type CategoryResponse struct {
	*models.Category
	ImageURL *string `json:"image_url"`
}

type ProjectFileResponse struct {
	models.ProjectFile
	URL string `json:"url"`
}

type ProjectResponse struct {
	*models.Project
	ImageURL   *string               `json:"image_url"`
	Files      []ProjectFileResponse `json:"files"`
	Categories []CategoryResponse    `json:"categories"`
}

type ServiceResponse struct {
	*models.Service
	ImageURL   *string            `json:"image_url"`
	Categories []CategoryResponse `json:"categories"`
}

type HeroSlideResponse struct {
	*models.HeroSlider
	ImageURL *string `json:"image_url"`
}

type HomeResponse struct {
	Locale     string              `json:"locale"`
	Direction  string              `json:"direction"`
	HeroSlides []HeroSlideResponse `json:"hero_slides"`
	Projects   []ProjectResponse   `json:"projects"`
	Services   []ServiceResponse   `json:"services"`
}

// FormResponse describes an empty create form; EditResponse pre-fills the edit form.
type FormResponse struct {
	Statuses       []models.Status    `json:"statuses"`
	ImageTypes     []string           `json:"image_types"`
	MaxUploadBytes int64              `json:"max_upload_bytes"`
	Categories     []CategoryResponse `json:"categories,omitempty"`
}

type EditResponse struct {
	Form   FormResponse `json:"form"`
	Record any          `json:"record"`
}

type TranslationsResponse struct {
	Locale       string                  `json:"locale"`
	Direction    string                  `json:"direction"`
	Translations map[string]locale.Group `json:"translations"`
}

// presenter turns stored keys into URLs.
type presenter struct {
	store storage.Storage
}

func (p presenter) url(key *string) *string {
	if key == nil || *key == "" {
		return nil
	}
	u := p.store.URL(*key)
	return &u
}

func (p presenter) category(c *models.Category) CategoryResponse {
	return CategoryResponse{Category: c, ImageURL: p.url(c.Image)}
}

func (p presenter) categories(cs []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(cs))
	for i := range cs {
		out = append(out, p.category(&cs[i]))
	}
	return out
}

func (p presenter) categoryList(cs []*models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, p.category(c))
	}
	return out
}

func (p presenter) project(pr *models.Project) ProjectResponse {
	files := make([]ProjectFileResponse, 0, len(pr.Files))
	for _, f := range pr.Files {
		files = append(files, ProjectFileResponse{ProjectFile: f, URL: p.store.URL(f.Path)})
	}
	return ProjectResponse{
		Project:    pr,
		ImageURL:   p.url(pr.Image),
		Files:      files,
		Categories: p.categories(pr.Categories),
	}
}

func (p presenter) projects(ps []*models.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(ps))
	for _, pr := range ps {
		out = append(out, p.project(pr))
	}
	return out
}

func (p presenter) service(s *models.Service) ServiceResponse {
	if s.Faqs == nil {
		s.Faqs = []models.Faq{}
	}
	return ServiceResponse{Service: s, ImageURL: p.url(s.Image), Categories: p.categories(s.Categories)}
}

func (p presenter) services(ss []*models.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, p.service(s))
	}
	return out
}

func (p presenter) heroSlide(s *models.HeroSlider) HeroSlideResponse {
	return HeroSlideResponse{HeroSlider: s, ImageURL: p.url(s.Image)}
}

func (p presenter) heroSlides(ss []*models.HeroSlider) []HeroSlideResponse {
	out := make([]HeroSlideResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, p.heroSlide(s))
	}
	return out
}

func (p presenter) home(h *content.Home, locale, direction string) HomeResponse {
	return HomeResponse{
		Locale:     locale,
		Direction:  direction,
		HeroSlides: p.heroSlides(h.HeroSlides),
		Projects:   p.projects(h.Projects),
		Services:   p.services(h.Services),
	}
}
