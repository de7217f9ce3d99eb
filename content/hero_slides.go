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

type HeroSlides struct {
	db    database.Database
	files *attachments
	cache *cache.Cache
}

func NewHeroSlides(db database.Database, files *attachments, c *cache.Cache) *HeroSlides {
	return &HeroSlides{db: db, files: files, cache: c}
}

func (s *HeroSlides) List(ctx context.Context) ([]*models.HeroSlider, error) {
	slides, err := s.db.HeroSliderRepo().FindAll(ctx)
	if err != nil {
		return nil, dbError("list", "hero slides", err)
	}
	return slides, nil
}

func (s *HeroSlides) Get(ctx context.Context, id uuid.UUID) (*models.HeroSlider, error) {
	slide, err := s.db.HeroSliderRepo().FindByID(ctx, id)
	if err != nil {
		return nil, dbError("find", "hero slide", err)
	}
	return slide, nil
}

func (s *HeroSlides) Create(ctx context.Context, ownerID uuid.UUID, in HeroSlideInput) (*models.HeroSlider, error) {
	in.normalize()
	v := validateStruct(in)
	s.files.check("image", in.Image, v)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	image, err := s.files.put(ctx, dirHeroSlides, in.Image)
	if err != nil {
		return nil, err
	}

	slide := &models.HeroSlider{
		Title:       in.Title,
		Description: in.Description,
		Image:       image,
		Status:      statusOr(in.Status, models.StatusValid),
		UserID:      ownerID,
	}
	err = withSlugRetry("hero slide", func() error {
		return s.db.Transaction(ctx, func(tx database.Database) error {
			repo := tx.HeroSliderRepo()
			sl, err := slug.NewGenerator(repo, "slide").Generate(ctx, slide.Title, uuid.Nil)
			if err != nil {
				return err
			}
			slide.Slug = sl
			return repo.Add(ctx, slide)
		})
	})
	if err != nil {
		s.files.discard(ctx, deref(image))
		return nil, dbError("create", "hero slide", err)
	}

	invalidatePublic(ctx, s.cache)
	log.Info().Str("slide_id", slide.ID.String()).Str("slug", slide.Slug).Msg("Hero slide created")
	return slide, nil
}

func (s *HeroSlides) Update(ctx context.Context, id uuid.UUID, in HeroSlideInput) (*models.HeroSlider, error) {
	slide, err := s.db.HeroSliderRepo().FindByID(ctx, id)
	if err != nil {
		return nil, dbError("find", "hero slide", err)
	}

	in.normalize()
	v := validateStruct(in)
	requireStatus(in.Status, v)
	s.files.check("image", in.Image, v)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	image, err := s.files.put(ctx, dirHeroSlides, in.Image)
	if err != nil {
		return nil, err
	}
	previous := slide.Image

	slide.Title = in.Title
	slide.Description = in.Description
	slide.Status = statusOr(in.Status, slide.Status)
	if image != nil {
		slide.Image = image
	}
	err = withSlugRetry("hero slide", func() error {
		return s.db.Transaction(ctx, func(tx database.Database) error {
			repo := tx.HeroSliderRepo()
			sl, err := slug.NewGenerator(repo, "slide").Generate(ctx, slide.Title, slide.ID)
			if err != nil {
				return err
			}
			slide.Slug = sl
			return repo.Update(ctx, slide)
		})
	})
	if err != nil {
		s.files.discard(ctx, deref(image))
		return nil, dbError("update", "hero slide", err)
	}
	if image != nil {
		s.files.discard(ctx, deref(previous))
	}

	invalidatePublic(ctx, s.cache)
	return slide, nil
}

func (s *HeroSlides) Delete(ctx context.Context, id uuid.UUID) error {
	slide, err := s.db.HeroSliderRepo().FindByID(ctx, id)
	if err != nil {
		return dbError("find", "hero slide", err)
	}
	if err := s.db.HeroSliderRepo().Delete(ctx, id); err != nil {
		return dbError("delete", "hero slide", err)
	}
	s.files.discard(ctx, deref(slide.Image))

	invalidatePublic(ctx, s.cache)
	log.Info().Str("slide_id", id.String()).Msg("Hero slide deleted")
	return nil
}
