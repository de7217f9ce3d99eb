package content

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/slug"
	"github.com/rs/zerolog/log"
)

type Categories struct {
	db    database.Database
	files *attachments
	cache *cache.Cache
}

func NewCategories(db database.Database, files *attachments, c *cache.Cache) *Categories {
	return &Categories{db: db, files: files, cache: c}
}

func (s *Categories) List(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.db.CategoryRepo().FindAll(ctx)
	if err != nil {
		return nil, dbError("list", "categories", err)
	}
	return categories, nil
}

func (s *Categories) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.db.CategoryRepo().FindByID(ctx, id)
	if err != nil {
		return nil, dbError("find", "category", err)
	}
	return category, nil
}

func (s *Categories) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	in.normalize()
	v := validateStruct(in)
	s.files.check("image", in.Image, v)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	image, err := s.files.put(ctx, dirCategories, in.Image)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:   in.Name,
		Image:  image,
		Status: statusOr(in.Status, models.StatusValid),
	}
	err = withSlugRetry("category", func() error {
		return s.db.Transaction(ctx, func(tx database.Database) error {
			repo := tx.CategoryRepo()
			sl, err := slug.NewGenerator(repo, "category").Generate(ctx, category.Name, uuid.Nil)
			if err != nil {
				return err
			}
			category.Slug = sl
			return repo.Add(ctx, category)
		})
	})
	if err != nil {
		s.files.discard(ctx, deref(image))
		return nil, dbError("create", "category", err)
	}

	invalidatePublic(ctx, s.cache)
	log.Info().Str("category_id", category.ID.String()).Str("slug", category.Slug).Msg("Category created")
	return category, nil
}

func (s *Categories) Update(ctx context.Context, id uuid.UUID, in CategoryInput) (*models.Category, error) {
	category, err := s.db.CategoryRepo().FindByID(ctx, id)
	if err != nil {
		return nil, dbError("find", "category", err)
	}

	in.normalize()
	v := validateStruct(in)
	requireStatus(in.Status, v)
	s.files.check("image", in.Image, v)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	image, err := s.files.put(ctx, dirCategories, in.Image)
	if err != nil {
		return nil, err
	}
	previous := category.Image

	category.Name = in.Name
	category.Status = statusOr(in.Status, category.Status)
	if image != nil {
		category.Image = image
	}
	err = withSlugRetry("category", func() error {
		return s.db.Transaction(ctx, func(tx database.Database) error {
			repo := tx.CategoryRepo()
			sl, err := slug.NewGenerator(repo, "category").Generate(ctx, category.Name, category.ID)
			if err != nil {
				return err
			}
			category.Slug = sl
			return repo.Update(ctx, category)
		})
	})
	if err != nil {
		s.files.discard(ctx, deref(image))
		return nil, dbError("update", "category", err)
	}
	if image != nil {
		s.files.discard(ctx, deref(previous))
	}

	invalidatePublic(ctx, s.cache)
	return category, nil
}

func (s *Categories) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.db.CategoryRepo().FindByID(ctx, id)
	if err != nil {
		return dbError("find", "category", err)
	}
	if err := s.db.CategoryRepo().Delete(ctx, id); err != nil {
		return dbError("delete", "category", err)
	}
	s.files.discard(ctx, deref(category.Image))

	invalidatePublic(ctx, s.cache)
	log.Info().Str("category_id", id.String()).Msg("Category deleted")
	return nil
}

// resolveCategories loads the categories named by ids, reporting unknown ones into v.
func resolveCategories(ctx context.Context, db database.Database, ids []string, v errs.ValidationErrors) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		u, err := uuid.Parse(id)
		if err != nil {
			return nil, nil // already reported by the uuid rule
		}
		parsed = append(parsed, u)
	}

	found, err := db.CategoryRepo().FindByIDs(ctx, parsed)
	if err != nil {
		return nil, dbError("find", "categories", err)
	}
	known := make(map[uuid.UUID]bool, len(found))
	for _, c := range found {
		known[c.ID] = true
	}
	for i, id := range parsed {
		if !known[id] {
			field := fieldIndex("category_ids", i)
			v.Add(field, "The selected "+field+" is invalid.")
		}
	}
	return found, nil
}
