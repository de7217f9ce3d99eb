package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/content"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type serviceHandler struct {
	responder  Responder
	logger     zerolog.Logger
	services   *content.Services
	categories *content.Categories
	present    presenter
	forms      formMeta
}

func newServiceHandler(services *content.Services, categories *content.Categories, p presenter, forms formMeta) serviceHandler {
	logger := log.With().Str("handlerName", "serviceHandler").Logger()

	return serviceHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		services:   services,
		categories: categories,
		present:    p,
		forms:      forms,
	}
}

// @Summary List services
// @Tags Admin Services
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ServiceResponse
// @Router /api/admin/services [get]
func (h serviceHandler) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := h.services.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present.services(services))
	}
}

// @Summary Empty service form
// @Tags Admin Services
// @Produce json
// @Security BearerAuth
// @Success 200 {object} FormResponse
// @Router /api/admin/services/create [get]
func (h serviceHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := h.form(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, form)
	}
}

// store creates a service together with its FAQs
// @Summary Create a service
// @Tags Admin Services
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Name"
// @Param description formData string true "Description (HTML)"
// @Param status formData string false "valid or invalid"
// @Param category_ids[] formData []string false "Category IDs"
// @Param image formData file false "Image"
// @Success 201 {object} ServiceResponse
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Router /api/admin/services [post]
func (h serviceHandler) store() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		in, err := h.bind(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		service, err := h.services.Create(r.Context(), ownerID, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().
			Str("serviceID", service.ID.String()).
			Str("slug", service.Slug).
			Int("faqs", len(service.Faqs)).
			Msg("service created")
		h.responder.WriteStatus(w, http.StatusCreated, h.present.service(service))
	}
}

// @Summary Show a service
// @Tags Admin Services
// @Produce json
// @Security BearerAuth
// @Param serviceID path string true "Service ID" format(uuid)
// @Success 200 {object} ServiceResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/services/{serviceID} [get]
func (h serviceHandler) show() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "serviceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		service, err := h.services.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present.service(service))
	}
}

// @Summary Service edit form
// @Tags Admin Services
// @Produce json
// @Security BearerAuth
// @Param serviceID path string true "Service ID" format(uuid)
// @Success 200 {object} EditResponse
// @Router /api/admin/services/{serviceID}/edit [get]
func (h serviceHandler) edit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "serviceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		service, err := h.services.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		form, err := h.form(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, EditResponse{Form: form, Record: h.present.service(service)})
	}
}

// update edits a service and reconciles its FAQs against faqs[N][id|question|answer].
// Rows without an id are added and stored rows missing from the submission are removed.
// @Summary Update a service
// @Tags Admin Services
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param serviceID path string true "Service ID" format(uuid)
// @Success 200 {object} ServiceResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Router /api/admin/services/{serviceID} [put]
func (h serviceHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "serviceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		in, err := h.bind(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		service, err := h.services.Update(r.Context(), id, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present.service(service))
	}
}

// @Summary Delete a service
// @Tags Admin Services
// @Produce json
// @Security BearerAuth
// @Param serviceID path string true "Service ID" format(uuid)
// @Success 200 {object} MessageResponse
// @Router /api/admin/services/{serviceID} [delete]
func (h serviceHandler) destroy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "serviceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.services.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, MessageResponse{Status: "success", Message: "service deleted"})
	}
}

func (h serviceHandler) form(r *http.Request) (FormResponse, error) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		return FormResponse{}, err
	}
	return h.forms.response(h.present.categoryList(categories)), nil
}

func (h serviceHandler) bind(r *http.Request) (content.ServiceInput, error) {
	var in content.ServiceInput
	f, err := readForm(r, h.forms.limit())
	if err != nil {
		return in, err
	}
	in.Name = f.get("name")
	in.Description = f.get("description")
	in.Status = f.get("status")
	in.CategoryIDs = f.list("category_ids")
	in.Faqs = f.faqs()
	in.Image, err = f.upload("image")
	return in, err
}
