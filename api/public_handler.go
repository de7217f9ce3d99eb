package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-backend/content"
	"github.com/rpupo63/portfolio-backend/locale"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type publicHandler struct {
	responder Responder
	logger    zerolog.Logger
	site      *content.Site
	inbox     *content.Inbox
	catalog   *locale.Catalog
	present   presenter
}

func newPublicHandler(site *content.Site, inbox *content.Inbox, catalog *locale.Catalog, p presenter) publicHandler {
	logger := log.With().Str("handlerName", "publicHandler").Logger()

	return publicHandler{
		responder: NewResponder(logger),
		logger:    logger,
		site:      site,
		inbox:     inbox,
		catalog:   catalog,
		present:   p,
	}
}

// home returns everything the landing page renders
// @Summary Home page data
// @Tags Public
// @Produce json
// @Success 200 {object} HomeResponse
// @Router /api/home [get]
func (h publicHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		home, err := h.site.Home(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		lang := locale.FromContext(r.Context())
		h.responder.WriteJSON(w, h.present.home(home, lang, locale.Direction(lang)))
	}
}

// @Summary Published projects
// @Tags Public
// @Produce json
// @Success 200 {array} ProjectResponse
// @Router /api/projects [get]
func (h publicHandler) projects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.site.Projects(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present.projects(projects))
	}
}

// @Summary Published project by slug
// @Tags Public
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} ProjectResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/projects/{slug} [get]
func (h publicHandler) project() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.site.Project(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present.project(project))
	}
}

// @Summary Published services
// @Tags Public
// @Produce json
// @Success 200 {array} ServiceResponse
// @Router /api/services [get]
func (h publicHandler) services() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := h.site.Services(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present.services(services))
	}
}

// @Summary Published service by slug, with its FAQs
// @Tags Public
// @Produce json
// @Param slug path string true "Service slug"
// @Success 200 {object} ServiceResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/services/{slug} [get]
func (h publicHandler) service() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, err := h.site.Service(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present.service(service))
	}
}

// submitContact stores a message from the contact form
// @Summary Send a contact message
// @Tags Public
// @Accept json
// @Produce json
// @Success 201 {object} MessageResponse
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Failure 429 {object} ErrorResponse "Too many messages"
// @Router /api/contact [post]
func (h publicHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeContact(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		meta := content.ContactMeta{
			IP:        clientIP(r),
			UserAgent: r.UserAgent(),
			Locale:    locale.FromContext(r.Context()),
		}
		if _, err := h.inbox.Submit(r.Context(), in, meta); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		lang := locale.FromContext(r.Context())
		h.responder.WriteStatus(w, http.StatusCreated, MessageResponse{
			Status:  "success",
			Message: h.catalog.T(lang, locale.DefaultLocale, "layout.message_sent"),
		})
	}
}

// translations exports translation groups for the request locale
// @Summary Translations
// @Tags Public
// @Produce json
// @Param groups query string false "Comma separated group names" default(layout)
// @Success 200 {object} TranslationsResponse
// @Router /api/translations [get]
func (h publicHandler) translations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups := []string{"layout"}
		if raw := r.URL.Query().Get("groups"); raw != "" {
			groups = groups[:0]
			for _, g := range strings.Split(raw, ",") {
				if g = strings.TrimSpace(g); g != "" {
					groups = append(groups, g)
				}
			}
		}

		lang := locale.FromContext(r.Context())
		h.responder.WriteJSON(w, TranslationsResponse{
			Locale:       lang,
			Direction:    locale.Direction(lang),
			Translations: h.catalog.Export(lang, groups),
		})
	}
}
