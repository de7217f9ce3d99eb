package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/content"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/locale"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/storage"
)

// Deps are the collaborators the HTTP layer is built on.
type Deps struct {
	Database database.Database
	Content  *content.Content
	Storage  storage.Storage
	Catalog  *locale.Catalog
	Locales  *locale.Resolver
	Cache    *cache.Cache
	// MaxUploadBytes caps each uploaded file; zero means storage.DefaultMaxImageBytes.
	MaxUploadBytes int64
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Deps, t tokens) *routeHandlers {
	p := presenter{store: deps.Storage}
	forms := formMeta{maxUpload: deps.MaxUploadBytes}
	return &routeHandlers{
		authHandler:      newAuthHandler(deps.Database.UserRepo(), t),
		publicHandler:    newPublicHandler(deps.Content.Site, deps.Content.Inbox, deps.Catalog, p),
		categoryHandler:  newCategoryHandler(deps.Content.Categories, p, forms),
		projectHandler:   newProjectHandler(deps.Content.Projects, deps.Content.Categories, p, forms),
		serviceHandler:   newServiceHandler(deps.Content.Services, deps.Content.Categories, p, forms),
		heroSlideHandler: newHeroSlideHandler(deps.Content.HeroSlides, p, forms),
		contactHandler:   newContactHandler(deps.Content.Inbox),
		healthHandler:    newHealthHandler(deps.Database, deps.Cache),
	}
}

// formMeta describes the constraints of admin forms.
type formMeta struct {
	maxUpload int64
}

func (f formMeta) limit() int64 {
	if f.maxUpload <= 0 {
		return storage.DefaultMaxImageBytes
	}
	return f.maxUpload
}

func (f formMeta) response(categories []CategoryResponse) FormResponse {
	return FormResponse{
		Statuses:       models.Statuses,
		ImageTypes:     storage.ImageTypes,
		MaxUploadBytes: f.limit(),
		Categories:     categories,
	}
}

// idParam parses a uuid path parameter.
func idParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		// Malformed ids cannot name a record
		return uuid.Nil, errs.NewNotFoundError("invalid " + name)
	}
	return id, nil
}
