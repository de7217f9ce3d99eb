package content

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// Notifier is told about every stored contact message.
type Notifier interface {
	NotifyContact(ctx context.Context, contact *models.Contact) error
}

const (
	notifyTimeout  = 30 * time.Second
	defaultPerPage = 20
	maxPerPage     = 100
)

// Inbox receives contact form messages.
type Inbox struct {
	db       database.Database
	notifier Notifier
	pending  sync.WaitGroup
	logger   zerolog.Logger
}

// NewInbox creates an inbox. notifier may be nil.
func NewInbox(db database.Database, notifier Notifier) *Inbox {
	return &Inbox{
		db:       db,
		notifier: notifier,
		logger:   log.With().Str("component", "inbox").Logger(),
	}
}

// Submit validates and stores a message, then notifies in the background. A failed
// notification does not affect the stored message.
func (i *Inbox) Submit(ctx context.Context, in ContactInput, meta ContactMeta) (*models.Contact, error) {
	in.normalize()
	if err := validateStruct(in).OrNil(); err != nil {
		return nil, err
	}

	contact := &models.Contact{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Subject:   optional(in.Subject),
		Content:   in.Content,
		Meta:      meta.toJSON(),
	}
	if err := i.db.ContactRepo().Add(ctx, contact); err != nil {
		return nil, dbError("create", "contact", err)
	}
	i.logger.Info().Str("contact_id", contact.ID.String()).Msg("Contact message received")

	if i.notifier != nil {
		i.pending.Add(1)
		go func(c models.Contact) {
			defer i.pending.Done()
			nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
			defer cancel()
			if err := i.notifier.NotifyContact(nctx, &c); err != nil {
				i.logger.Error().Err(err).Str("contact_id", c.ID.String()).Msg("Failed to send contact notification")
			}
		}(*contact)
	}
	return contact, nil
}

// Wait blocks until in-flight notifications finish.
func (i *Inbox) Wait() {
	i.pending.Wait()
}

// ContactPage is one page of the inbox, newest first.
type ContactPage struct {
	Data     []*models.Contact `json:"data"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
	Total    int64             `json:"total"`
	LastPage int               `json:"last_page"`
}

func (i *Inbox) List(ctx context.Context, page, perPage int) (*ContactPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	contacts, total, err := i.db.ContactRepo().FindPage(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, dbError("list", "contacts", err)
	}
	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	return &ContactPage{Data: contacts, Page: page, PerPage: perPage, Total: total, LastPage: last}, nil
}

func (i *Inbox) Get(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	contact, err := i.db.ContactRepo().FindByID(ctx, id)
	if err != nil {
		return nil, dbError("find", "contact", err)
	}
	return contact, nil
}

func (m ContactMeta) toJSON() datatypes.JSONMap {
	out := datatypes.JSONMap{}
	if m.IP != "" {
		out["ip"] = m.IP
	}
	if m.UserAgent != "" {
		out["user_agent"] = m.UserAgent
	}
	if m.Locale != "" {
		out["locale"] = m.Locale
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
