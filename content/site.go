package content

import (
	"context"

	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"golang.org/x/sync/errgroup"
)

// HomeListLimit is how many projects and services the home page shows.
const HomeListLimit = 5

// Site serves the published records to visitors. Listings are cached when a cache is configured.
type Site struct {
	db    database.Database
	cache *cache.Cache
}

func NewSite(db database.Database, c *cache.Cache) *Site {
	return &Site{db: db, cache: c}
}

type Home struct {
	HeroSlides []*models.HeroSlider `json:"hero_slides"`
	Projects   []*models.Project    `json:"projects"`
	Services   []*models.Service    `json:"services"`
}

// Home loads the slides, latest projects and latest services concurrently.
func (s *Site) Home(ctx context.Context) (*Home, error) {
	return cache.Remember(ctx, s.cache, publicCachePrefix+"home", func(ctx context.Context) (*Home, error) {
		home := &Home{}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			home.HeroSlides, err = s.db.HeroSliderRepo().FindPublished(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			home.Projects, err = s.db.ProjectRepo().FindPublished(gctx, HomeListLimit)
			return err
		})
		g.Go(func() error {
			var err error
			home.Services, err = s.db.ServiceRepo().FindPublished(gctx, HomeListLimit)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, dbError("load", "home", err)
		}
		return home, nil
	})
}

func (s *Site) Projects(ctx context.Context) ([]*models.Project, error) {
	return cache.Remember(ctx, s.cache, publicCachePrefix+"projects", func(ctx context.Context) ([]*models.Project, error) {
		projects, err := s.db.ProjectRepo().FindPublished(ctx, 0)
		if err != nil {
			return nil, dbError("list", "projects", err)
		}
		return projects, nil
	})
}

func (s *Site) Services(ctx context.Context) ([]*models.Service, error) {
	return cache.Remember(ctx, s.cache, publicCachePrefix+"services", func(ctx context.Context) ([]*models.Service, error) {
		services, err := s.db.ServiceRepo().FindPublished(ctx, 0)
		if err != nil {
			return nil, dbError("list", "services", err)
		}
		return services, nil
	})
}

// Project returns a published project by slug. Unpublished projects are not found.
func (s *Site) Project(ctx context.Context, slug string) (*models.Project, error) {
	return cache.Remember(ctx, s.cache, publicCachePrefix+"project:"+slug, func(ctx context.Context) (*models.Project, error) {
		project, err := s.db.ProjectRepo().FindPublishedBySlug(ctx, slug)
		if err != nil {
			return nil, dbError("find", "project", err)
		}
		return project, nil
	})
}

func (s *Site) Service(ctx context.Context, slug string) (*models.Service, error) {
	return cache.Remember(ctx, s.cache, publicCachePrefix+"service:"+slug, func(ctx context.Context) (*models.Service, error) {
		service, err := s.db.ServiceRepo().FindPublishedBySlug(ctx, slug)
		if err != nil {
			return nil, dbError("find", "service", err)
		}
		return service, nil
	})
}
