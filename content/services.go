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

// Services manages offered services and their FAQs.
type Services struct {
	db    database.Database
	files *attachments
	cache *cache.Cache
}

func NewServices(db database.Database, files *attachments, c *cache.Cache) *Services {
	return &Services{db: db, files: files, cache: c}
}

func (s *Services) List(ctx context.Context) ([]*models.Service, error) {
	services, err := s.db.ServiceRepo().FindAll(ctx)
	if err != nil {
		return nil, dbError("list", "services", err)
	}
	return services, nil
}

// Get returns a service with its FAQs and categories.
func (s *Services) Get(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	service, err := s.db.ServiceRepo().FindByID(ctx, id)
	if err != nil {
		return nil, dbError("find", "service", err)
	}
	return service, nil
}

func (s *Services) check(ctx context.Context, in *ServiceInput, update bool) ([]models.Category, error) {
	in.normalize()
	v := validateStruct(in)
	if update {
		requireStatus(in.Status, v)
	}
	s.files.check("image", in.Image, v)

	categories, err := resolveCategories(ctx, s.db, in.CategoryIDs, v)
	if err != nil {
		return nil, err
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	return categories, nil
}

// Create stores a service with its FAQs. Submitted FAQ ids are ignored since none can exist yet.
func (s *Services) Create(ctx context.Context, ownerID uuid.UUID, in ServiceInput) (*models.Service, error) {
	categories, err := s.check(ctx, &in, false)
	if err != nil {
		return nil, err
	}

	image, err := s.files.put(ctx, dirServices, in.Image)
	if err != nil {
		return nil, err
	}

	service := &models.Service{
		Name:        in.Name,
		Description: in.Description,
		Image:       image,
		Status:      statusOr(in.Status, models.StatusValid),
		UserID:      ownerID,
	}
	err = withSlugRetry("service", func() error {
		return s.db.Transaction(ctx, func(tx database.Database) error {
			sl, err := slug.NewGenerator(tx.ServiceRepo(), "service").Generate(ctx, service.Name, uuid.Nil)
			if err != nil {
				return err
			}
			service.Slug = sl
			service.Faqs = make([]models.Faq, 0, len(in.Faqs))
			for i, f := range in.Faqs {
				service.Faqs = append(service.Faqs, models.Faq{Question: f.Question, Answer: f.Answer, Position: i})
			}
			if err := tx.ServiceRepo().Add(ctx, service); err != nil {
				return err
			}
			if len(categories) > 0 {
				return tx.ServiceRepo().ReplaceCategories(ctx, service, categories)
			}
			return nil
		})
	})
	if err != nil {
		s.files.discard(ctx, deref(image))
		return nil, dbError("create", "service", err)
	}

	invalidatePublic(ctx, s.cache)
	log.Info().Str("service_id", service.ID.String()).Str("slug", service.Slug).Int("faqs", len(service.Faqs)).Msg("Service created")
	return s.Get(ctx, service.ID)
}

// Update rewrites the service and reconciles its FAQs with in.Faqs. The FAQ list is
// validated as a whole before anything is written.
func (s *Services) Update(ctx context.Context, id uuid.UUID, in ServiceInput) (*models.Service, error) {
	service, err := s.db.ServiceRepo().FindByID(ctx, id)
	if err != nil {
		return nil, dbError("find", "service", err)
	}
	categories, err := s.check(ctx, &in, true)
	if err != nil {
		return nil, err
	}
	plan, invalid := PlanFaqSync(service.ID, service.Faqs, in.Faqs)
	if len(invalid) > 0 {
		return nil, invalid
	}

	image, err := s.files.put(ctx, dirServices, in.Image)
	if err != nil {
		return nil, err
	}
	previous := service.Image

	service.Name = in.Name
	service.Description = in.Description
	service.Status = statusOr(in.Status, service.Status)
	if image != nil {
		service.Image = image
	}
	err = withSlugRetry("service", func() error {
		return s.db.Transaction(ctx, func(tx database.Database) error {
			sl, err := slug.NewGenerator(tx.ServiceRepo(), "service").Generate(ctx, service.Name, service.ID)
			if err != nil {
				return err
			}
			service.Slug = sl
			if err := tx.ServiceRepo().Update(ctx, service); err != nil {
				return err
			}
			if err := applyFaqPlan(ctx, tx, service.ID, plan); err != nil {
				return err
			}
			if in.CategoryIDs != nil {
				return tx.ServiceRepo().ReplaceCategories(ctx, service, categories)
			}
			return nil
		})
	})
	if err != nil {
		s.files.discard(ctx, deref(image))
		return nil, dbError("update", "service", err)
	}
	if image != nil {
		s.files.discard(ctx, deref(previous))
	}

	invalidatePublic(ctx, s.cache)
	log.Info().
		Str("service_id", service.ID.String()).
		Int("faqs_deleted", len(plan.Delete)).
		Int("faqs_updated", len(plan.Update)).
		Int("faqs_inserted", len(plan.Insert)).
		Msg("Service updated")
	return s.Get(ctx, service.ID)
}

func applyFaqPlan(ctx context.Context, tx database.Database, serviceID uuid.UUID, plan FaqPlan) error {
	if plan.Empty() {
		return nil
	}
	if err := tx.FaqRepo().DeleteByIDs(ctx, serviceID, plan.Delete); err != nil {
		return err
	}
	for _, f := range plan.Update {
		if err := tx.FaqRepo().UpdateContent(ctx, serviceID, f); err != nil {
			return err
		}
	}
	return tx.FaqRepo().AddMany(ctx, plan.Insert)
}

// Delete removes the service with its FAQs and category links, then its image.
func (s *Services) Delete(ctx context.Context, id uuid.UUID) error {
	service, err := s.db.ServiceRepo().FindByID(ctx, id)
	if err != nil {
		return dbError("find", "service", err)
	}
	if err := s.db.ServiceRepo().Delete(ctx, id); err != nil {
		return dbError("delete", "service", err)
	}
	s.files.discard(ctx, deref(service.Image))

	invalidatePublic(ctx, s.cache)
	log.Info().Str("service_id", id.String()).Msg("Service deleted")
	return nil
}
