// Package content implements the admin and public operations on portfolio records.
package content

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/storage"
	"github.com/rs/zerolog/log"
)

// Storage directories per record type.
const (
	dirCategories = "categories"
	dirProjects   = "projects"
	dirServices   = "services"
	dirHeroSlides = "hero-slides"
)

// publicCachePrefix prefixes every cached public listing; any admin mutation drops them all.
const publicCachePrefix = "public:"

// slugAttempts bounds how often a write is retried after losing a slug race to a
// concurrent insert.
const slugAttempts = 3

type Options struct {
	MaxUploadBytes int64
	Cache          *cache.Cache
	Notifier       Notifier
}

// Content groups the operations of every resource.
type Content struct {
	Categories *Categories
	Projects   *Projects
	Services   *Services
	HeroSlides *HeroSlides
	Inbox      *Inbox
	Site       *Site
}

func New(db database.Database, store storage.Storage, opts Options) *Content {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = storage.DefaultMaxImageBytes
	}
	files := &attachments{
		store:    store,
		maxBytes: opts.MaxUploadBytes,
		logger:   log.With().Str("component", "attachments").Logger(),
	}
	// Admin operations read back what they just wrote, so they never use a lagging replica.
	primary := db.Primary()
	return &Content{
		Categories: NewCategories(primary, files, opts.Cache),
		Projects:   NewProjects(primary, files, opts.Cache),
		Services:   NewServices(primary, files, opts.Cache),
		HeroSlides: NewHeroSlides(primary, files, opts.Cache),
		Inbox:      NewInbox(primary, opts.Notifier),
		Site:       NewSite(db, opts.Cache),
	}
}

// withSlugRetry reruns write while it fails on a unique constraint, which for these tables
// means another request took the generated slug first. write must regenerate the slug.
func withSlugRetry(entity string, write func() error) error {
	var err error
	for attempt := 0; attempt < slugAttempts; attempt++ {
		if err = write(); err == nil || !database.IsDuplicateKey(err) {
			return err
		}
		log.Debug().Int("attempt", attempt+1).Err(err).Msg("Slug taken concurrently, retrying")
	}
	return errs.NewUniqueConstraintViolationError(entity, "slug", err)
}

// dbError turns a repository error into an API error for entity.
func dbError(operation, entity string, err error) error {
	if errs.IsUniqueConstraintViolationError(err) {
		return err
	}
	if database.IsNotFound(err) {
		return errs.NewNotFound(entity)
	}
	return errs.NewDatabaseError(operation, entity, err)
}

func invalidatePublic(ctx context.Context, c *cache.Cache) {
	c.Invalidate(ctx, publicCachePrefix)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fieldIndex(field string, i int) string {
	return fmt.Sprintf("%s.%d", field, i)
}
