package content

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/slug"
	"github.com/rs/zerolog/log"
)

type Projects struct {
	db    database.Database
	files *attachments
	cache *cache.Cache
}

func NewProjects(db database.Database, files *attachments, c *cache.Cache) *Projects {
	return &Projects{db: db, files: files, cache: c}
}

func (s *Projects) List(ctx context.Context) ([]*models.Project, error) {
	projects, err := s.db.ProjectRepo().FindAll(ctx)
	if err != nil {
		return nil, dbError("list", "projects", err)
	}
	return projects, nil
}

// Get returns a project with its files and categories.
func (s *Projects) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.db.ProjectRepo().FindByID(ctx, id)
	if err != nil {
		return nil, dbError("find", "project", err)
	}
	return project, nil
}

func (s *Projects) check(ctx context.Context, in *ProjectInput, update bool) ([]models.Category, error) {
	in.normalize()
	v := validateStruct(in)
	if update {
		requireStatus(in.Status, v)
	}
	s.files.check("image", in.Image, v)
	s.files.checkAll("files", in.Files, v)

	categories, err := resolveCategories(ctx, s.db, in.CategoryIDs, v)
	if err != nil {
		return nil, err
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	return categories, nil
}

// Create stores the project, its uploaded image and files. ownerID is the acting admin.
func (s *Projects) Create(ctx context.Context, ownerID uuid.UUID, in ProjectInput) (*models.Project, error) {
	categories, err := s.check(ctx, &in, false)
	if err != nil {
		return nil, err
	}

	image, err := s.files.put(ctx, dirProjects, in.Image)
	if err != nil {
		return nil, err
	}
	paths, err := s.files.putAll(ctx, dirProjects, in.Files)
	if err != nil {
		s.files.discard(ctx, deref(image))
		return nil, err
	}

	project := &models.Project{
		Name:        in.Name,
		Description: in.Description,
		GithubLink:  optional(in.GithubLink),
		Image:       image,
		Status:      statusOr(in.Status, models.StatusValid),
		UserID:      ownerID,
	}
	err = withSlugRetry("project", func() error {
		return s.db.Transaction(ctx, func(tx database.Database) error {
			sl, err := slug.NewGenerator(tx.ProjectRepo(), "project").Generate(ctx, project.Name, uuid.Nil)
			if err != nil {
				return err
			}
			project.Slug = sl
			project.Files = newProjectFiles(paths, 0)
			if err := tx.ProjectRepo().Add(ctx, project); err != nil {
				return err
			}
			if len(categories) > 0 {
				return tx.ProjectRepo().ReplaceCategories(ctx, project, categories)
			}
			return nil
		})
	})
	if err != nil {
		s.files.discard(ctx, append(paths, deref(image))...)
		return nil, dbError("create", "project", err)
	}

	invalidatePublic(ctx, s.cache)
	log.Info().Str("project_id", project.ID.String()).Str("slug", project.Slug).Int("files", len(paths)).Msg("Project created")
	return s.Get(ctx, project.ID)
}

// Update rewrites the project's fields. New files are appended to the existing ones; a new
// image replaces the old one, which is removed from storage once the change is saved.
func (s *Projects) Update(ctx context.Context, id uuid.UUID, in ProjectInput) (*models.Project, error) {
	project, err := s.db.ProjectRepo().FindByID(ctx, id)
	if err != nil {
		return nil, dbError("find", "project", err)
	}
	categories, err := s.check(ctx, &in, true)
	if err != nil {
		return nil, err
	}

	image, err := s.files.put(ctx, dirProjects, in.Image)
	if err != nil {
		return nil, err
	}
	paths, err := s.files.putAll(ctx, dirProjects, in.Files)
	if err != nil {
		s.files.discard(ctx, deref(image))
		return nil, err
	}
	previous := project.Image

	project.Name = in.Name
	project.Description = in.Description
	project.GithubLink = optional(in.GithubLink)
	project.Status = statusOr(in.Status, project.Status)
	if image != nil {
		project.Image = image
	}
	err = withSlugRetry("project", func() error {
		return s.db.Transaction(ctx, func(tx database.Database) error {
			sl, err := slug.NewGenerator(tx.ProjectRepo(), "project").Generate(ctx, project.Name, project.ID)
			if err != nil {
				return err
			}
			project.Slug = sl
			if err := tx.ProjectRepo().Update(ctx, project); err != nil {
				return err
			}
			next, err := tx.ProjectFileRepo().NextPosition(ctx, project.ID)
			if err != nil {
				return err
			}
			files := newProjectFiles(paths, next)
			for i := range files {
				files[i].ProjectID = project.ID
			}
			if err := tx.ProjectFileRepo().AddMany(ctx, files); err != nil {
				return err
			}
			if in.CategoryIDs != nil {
				return tx.ProjectRepo().ReplaceCategories(ctx, project, categories)
			}
			return nil
		})
	})
	if err != nil {
		s.files.discard(ctx, append(paths, deref(image))...)
		return nil, dbError("update", "project", err)
	}
	if image != nil {
		s.files.discard(ctx, deref(previous))
	}

	invalidatePublic(ctx, s.cache)
	return s.Get(ctx, project.ID)
}

// Delete removes the project with its files and category links, then its stored files.
func (s *Projects) Delete(ctx context.Context, id uuid.UUID) error {
	project, err := s.db.ProjectRepo().FindByID(ctx, id)
	if err != nil {
		return dbError("find", "project", err)
	}
	if err := s.db.ProjectRepo().Delete(ctx, id); err != nil {
		return dbError("delete", "project", err)
	}

	keys := []string{deref(project.Image)}
	for _, f := range project.Files {
		keys = append(keys, f.Path)
	}
	s.files.discard(ctx, keys...)

	invalidatePublic(ctx, s.cache)
	log.Info().Str("project_id", id.String()).Int("files", len(project.Files)).Msg("Project deleted")
	return nil
}

// RemoveFile deletes one attached file of a project.
func (s *Projects) RemoveFile(ctx context.Context, projectID, fileID uuid.UUID) error {
	file, err := s.db.ProjectFileRepo().FindOwned(ctx, projectID, fileID)
	if err != nil {
		return dbError("find", "project file", err)
	}
	if err := s.db.ProjectFileRepo().Delete(ctx, file.ID); err != nil {
		return dbError("delete", "project file", err)
	}
	s.files.discard(ctx, file.Path)

	invalidatePublic(ctx, s.cache)
	return nil
}

// newProjectFiles numbers paths from start in upload order.
func newProjectFiles(paths []string, start int) []models.ProjectFile {
	files := make([]models.ProjectFile, 0, len(paths))
	for i, p := range paths {
		files = append(files, models.ProjectFile{Path: p, Position: start + i})
	}
	return files
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
