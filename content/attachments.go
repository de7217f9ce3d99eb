package content

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/storage"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// attachments stores and discards the files referenced by records. Discarding never fails
// the calling operation: a file left behind is only logged.
type attachments struct {
	store    storage.Storage
	maxBytes int64
	logger   zerolog.Logger
}

// check validates an optional image upload into v.
func (a *attachments) check(field string, up *storage.Upload, v errs.ValidationErrors) {
	if up == nil {
		return
	}
	if err := storage.ValidateImage(up, a.maxBytes); err != nil {
		v.Add(field, fmt.Sprintf("The %s field %s.", field, err.Error()))
	}
}

func (a *attachments) checkAll(field string, ups []*storage.Upload, v errs.ValidationErrors) {
	for i, up := range ups {
		if up == nil {
			v.Add(fieldIndex(field, i), fmt.Sprintf("The %s field is required.", fieldIndex(field, i)))
			continue
		}
		a.check(fieldIndex(field, i), up, v)
	}
}

// put stores up under dir. A nil upload stores nothing and returns nil.
func (a *attachments) put(ctx context.Context, dir string, up *storage.Upload) (*string, error) {
	if up == nil {
		return nil, nil
	}
	key, err := a.store.Put(ctx, dir, up)
	if err != nil {
		return nil, errs.NewStorageError("store file in "+dir, err)
	}
	a.logger.Debug().Str("key", key).Msg("Stored file")
	return &key, nil
}

// putAll stores every upload, removing the ones already written when one fails.
func (a *attachments) putAll(ctx context.Context, dir string, ups []*storage.Upload) ([]string, error) {
	keys := make([]string, 0, len(ups))
	for _, up := range ups {
		key, err := a.put(ctx, dir, up)
		if err != nil {
			a.discard(ctx, keys...)
			return nil, err
		}
		keys = append(keys, *key)
	}
	return keys, nil
}

// discard deletes keys concurrently, best effort. It outlives a cancelled request context.
func (a *attachments) discard(ctx context.Context, keys ...string) {
	ctx = context.WithoutCancel(ctx)

	var g errgroup.Group
	g.SetLimit(4)
	for _, key := range keys {
		if key == "" {
			continue
		}
		key := key
		g.Go(func() error {
			if err := a.store.Delete(ctx, key); err != nil {
				a.logger.Warn().Err(err).Str("key", key).Msg("Failed to delete stored file")
				return nil
			}
			a.logger.Debug().Str("key", key).Msg("Deleted stored file")
			return nil
		})
	}
	_ = g.Wait()
}
