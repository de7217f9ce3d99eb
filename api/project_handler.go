package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/content"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder  Responder
	logger     zerolog.Logger
	projects   *content.Projects
	categories *content.Categories
	present    presenter
	forms      formMeta
}

func newProjectHandler(projects *content.Projects, categories *content.Categories, p presenter, forms formMeta) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		projects:   projects,
		categories: categories,
		present:    p,
		forms:      forms,
	}
}

// index lists every project, published or not
// @Summary List projects
// @Tags Admin Projects
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ProjectResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/admin/projects [get]
func (h projectHandler) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present.projects(projects))
	}
}

// @Summary Empty project form
// @Tags Admin Projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} FormResponse
// @Router /api/admin/projects/create [get]
func (h projectHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := h.form(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, form)
	}
}

// store creates a project with its image, files and categories
// @Summary Create a project
// @Tags Admin Projects
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Name"
// @Param description formData string true "Description (HTML)"
// @Param github_link formData string false "Repository URL"
// @Param status formData string false "valid or invalid"
// @Param category_ids[] formData []string false "Category IDs"
// @Param image formData file false "Cover image"
// @Param files[] formData file false "Gallery files"
// @Success 201 {object} ProjectResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Router /api/admin/projects [post]
func (h projectHandler) store() http.HandlerFunc {
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
		project, err := h.projects.Create(r.Context(), ownerID, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().
			Str("projectID", project.ID.String()).
			Str("slug", project.Slug).
			Int("files", len(project.Files)).
			Msg("project created")
		h.responder.WriteStatus(w, http.StatusCreated, h.present.project(project))
	}
}

// @Summary Show a project
// @Tags Admin Projects
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} ProjectResponse
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /api/admin/projects/{projectID} [get]
func (h projectHandler) show() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		project, err := h.projects.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present.project(project))
	}
}

// @Summary Project edit form
// @Tags Admin Projects
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} EditResponse
// @Router /api/admin/projects/{projectID}/edit [get]
func (h projectHandler) edit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		project, err := h.projects.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		form, err := h.form(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, EditResponse{Form: form, Record: h.present.project(project)})
	}
}

// update edits a project. New files are appended; category_ids replaces the links when sent.
// @Summary Update a project
// @Tags Admin Projects
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} ProjectResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Router /api/admin/projects/{projectID} [put]
func (h projectHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		in, err := h.bind(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		project, err := h.projects.Update(r.Context(), id, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present.project(project))
	}
}

// @Summary Delete a project
// @Tags Admin Projects
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/projects/{projectID} [delete]
func (h projectHandler) destroy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.projects.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, MessageResponse{Status: "success", Message: "project deleted"})
	}
}

// removeFile detaches one gallery file from a project
// @Summary Remove a project file
// @Tags Admin Projects
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID" format(uuid)
// @Param fileID path string true "File ID" format(uuid)
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/projects/{projectID}/files/{fileID} [delete]
func (h projectHandler) removeFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := idParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		fileID, err := idParam(r, "fileID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.projects.RemoveFile(r.Context(), projectID, fileID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, MessageResponse{Status: "success", Message: "file removed"})
	}
}

func (h projectHandler) form(r *http.Request) (FormResponse, error) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		return FormResponse{}, err
	}
	return h.forms.response(h.present.categoryList(categories)), nil
}

func (h projectHandler) bind(r *http.Request) (content.ProjectInput, error) {
	var in content.ProjectInput
	f, err := readForm(r, h.forms.limit())
	if err != nil {
		return in, err
	}
	in.Name = f.get("name")
	in.Description = f.get("description")
	in.GithubLink = f.get("github_link")
	in.Status = f.get("status")
	in.CategoryIDs = f.list("category_ids")
	if in.Image, err = f.upload("image"); err != nil {
		return in, err
	}
	in.Files, err = f.uploads("files")
	return in, err
}
