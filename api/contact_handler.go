package api

import (
	"net/http"
	"strconv"

	"github.com/rpupo63/portfolio-backend/content"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	inbox     *content.Inbox
}

func newContactHandler(inbox *content.Inbox) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		inbox:     inbox,
	}
}

// index pages through received messages, newest first
// @Summary List contact messages
// @Tags Admin Contacts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param per_page query int false "Page size" default(20)
// @Success 200 {object} content.ContactPage
// @Router /api/admin/contacts [get]
func (h contactHandler) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		perPage, _ := strconv.Atoi(q.Get("per_page"))

		result, err := h.inbox.List(r.Context(), page, perPage)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, result)
	}
}

// @Summary Show a contact message
// @Tags Admin Contacts
// @Produce json
// @Security BearerAuth
// @Param contactID path string true "Contact ID" format(uuid)
// @Success 200 {object} models.Contact
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/contacts/{contactID} [get]
func (h contactHandler) show() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "contactID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		contact, err := h.inbox.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, contact)
	}
}
