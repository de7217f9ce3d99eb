package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/content"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type heroSlideHandler struct {
	responder Responder
	logger    zerolog.Logger
	slides    *content.HeroSlides
	present   presenter
	forms     formMeta
}

func newHeroSlideHandler(slides *content.HeroSlides, p presenter, forms formMeta) heroSlideHandler {
	logger := log.With().Str("handlerName", "heroSlideHandler").Logger()

	return heroSlideHandler{
		responder: NewResponder(logger),
		logger:    logger,
		slides:    slides,
		present:   p,
		forms:     forms,
	}
}

// @Summary List hero slides
// @Tags Admin Hero Slides
// @Produce json
// @Security BearerAuth
// @Success 200 {array} HeroSlideResponse
// @Router /api/admin/hero-sliders [get]
func (h heroSlideHandler) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slides, err := h.slides.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present.heroSlides(slides))
	}
}

// @Summary Empty hero slide form
// @Tags Admin Hero Slides
// @Produce json
// @Security BearerAuth
// @Success 200 {object} FormResponse
// @Router /api/admin/hero-sliders/create [get]
func (h heroSlideHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.forms.response(nil))
	}
}

// @Summary Create a hero slide
// @Tags Admin Hero Slides
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description (HTML)"
// @Param status formData string false "valid or invalid"
// @Param image formData file false "Background image"
// @Success 201 {object} HeroSlideResponse
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Router /api/admin/hero-sliders [post]
func (h heroSlideHandler) store() http.HandlerFunc {
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
		slide, err := h.slides.Create(r.Context(), ownerID, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteStatus(w, http.StatusCreated, h.present.heroSlide(slide))
	}
}

// @Summary Show a hero slide
// @Tags Admin Hero Slides
// @Produce json
// @Security BearerAuth
// @Param slideID path string true "Slide ID" format(uuid)
// @Success 200 {object} HeroSlideResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/hero-sliders/{slideID} [get]
func (h heroSlideHandler) show() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "slideID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		slide, err := h.slides.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present.heroSlide(slide))
	}
}

// @Summary Hero slide edit form
// @Tags Admin Hero Slides
// @Produce json
// @Security BearerAuth
// @Param slideID path string true "Slide ID" format(uuid)
// @Success 200 {object} EditResponse
// @Router /api/admin/hero-sliders/{slideID}/edit [get]
func (h heroSlideHandler) edit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "slideID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		slide, err := h.slides.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, EditResponse{Form: h.forms.response(nil), Record: h.present.heroSlide(slide)})
	}
}

// @Summary Update a hero slide
// @Tags Admin Hero Slides
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param slideID path string true "Slide ID" format(uuid)
// @Success 200 {object} HeroSlideResponse
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Router /api/admin/hero-sliders/{slideID} [put]
func (h heroSlideHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "slideID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		in, err := h.bind(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		slide, err := h.slides.Update(r.Context(), id, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present.heroSlide(slide))
	}
}

// @Summary Delete a hero slide
// @Tags Admin Hero Slides
// @Produce json
// @Security BearerAuth
// @Param slideID path string true "Slide ID" format(uuid)
// @Success 200 {object} MessageResponse
// @Router /api/admin/hero-sliders/{slideID} [delete]
func (h heroSlideHandler) destroy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "slideID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.slides.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, MessageResponse{Status: "success", Message: "slide deleted"})
	}
}

func (h heroSlideHandler) bind(r *http.Request) (content.HeroSlideInput, error) {
	var in content.HeroSlideInput
	f, err := readForm(r, h.forms.limit())
	if err != nil {
		return in, err
	}
	in.Title = f.get("title")
	in.Description = f.get("description")
	in.Status = f.get("status")
	in.Image, err = f.upload("image")
	return in, err
}
