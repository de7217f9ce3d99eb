package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/content"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type categoryHandler struct {
	responder  Responder
	logger     zerolog.Logger
	categories *content.Categories
	present    presenter
	forms      formMeta
}

func newCategoryHandler(categories *content.Categories, p presenter, forms formMeta) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		categories: categories,
		present:    p,
		forms:      forms,
	}
}

// @Summary List categories
// @Tags Admin Categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CategoryResponse
// @Router /api/admin/categories [get]
func (h categoryHandler) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categories.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present.categoryList(categories))
	}
}

// @Summary Empty category form
// @Tags Admin Categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} FormResponse
// @Router /api/admin/categories/create [get]
func (h categoryHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.forms.response(nil))
	}
}

// @Summary Create a category
// @Tags Admin Categories
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Name"
// @Param status formData string false "valid or invalid"
// @Param image formData file false "Image"
// @Success 201 {object} CategoryResponse
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Router /api/admin/categories [post]
func (h categoryHandler) store() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := h.bind(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		category, err := h.categories.Create(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("categoryID", category.ID.String()).Str("slug", category.Slug).Msg("category created")
		h.responder.WriteStatus(w, http.StatusCreated, h.present.category(category))
	}
}

// @Summary Show a category
// @Tags Admin Categories
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID" format(uuid)
// @Success 200 {object} CategoryResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/categories/{categoryID} [get]
func (h categoryHandler) show() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		category, err := h.categories.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present.category(category))
	}
}

// @Summary Category edit form
// @Tags Admin Categories
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID" format(uuid)
// @Success 200 {object} EditResponse
// @Router /api/admin/categories/{categoryID}/edit [get]
func (h categoryHandler) edit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		category, err := h.categories.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, EditResponse{Form: h.forms.response(nil), Record: h.present.category(category)})
	}
}

// @Summary Update a category
// @Tags Admin Categories
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID" format(uuid)
// @Success 200 {object} CategoryResponse
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Router /api/admin/categories/{categoryID} [put]
func (h categoryHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		in, err := h.bind(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		category, err := h.categories.Update(r.Context(), id, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present.category(category))
	}
}

// @Summary Delete a category
// @Tags Admin Categories
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID" format(uuid)
// @Success 200 {object} MessageResponse
// @Router /api/admin/categories/{categoryID} [delete]
func (h categoryHandler) destroy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.categories.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, MessageResponse{Status: "success", Message: "category deleted"})
	}
}

func (h categoryHandler) bind(r *http.Request) (content.CategoryInput, error) {
	var in content.CategoryInput
	f, err := readForm(r, h.forms.limit())
	if err != nil {
		return in, err
	}
	in.Name = f.get("name")
	in.Status = f.get("status")
	in.Image, err = f.upload("image")
	return in, err
}
