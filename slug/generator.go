package slug

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Store is the slug column of one entity table.
type Store interface {
	// CountSlugPrefix counts rows whose slug starts with prefix.
	CountSlugPrefix(ctx context.Context, prefix string) (int64, error)
	// SlugTaken reports whether a row other than exclude holds slug.
	SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
}

type Generator struct {
	store    Store
	fallback string
}

// NewGenerator returns a generator over store. fallback is used as the base when a name
// has no characters that survive Make, e.g. one made only of emoji.
func NewGenerator(store Store, fallback string) *Generator {
	if f := Make(fallback); f != "" {
		fallback = f
	} else {
		fallback = "item"
	}
	return &Generator{store: store, fallback: fallback}
}

// Generate derives the slug for name. With k existing rows whose slug starts with the base the
// result is base-(k+1), or the next free suffix above it when that one is already held.
// self is the row being renamed, uuid.Nil on create; the row counts toward k but never blocks
// its own candidate, so re-saving a record under the same name can still move its suffix.
func (g *Generator) Generate(ctx context.Context, name string, self uuid.UUID) (string, error) {
	base := Make(name)
	if base == "" {
		base = g.fallback
	}

	count, err := g.store.CountSlugPrefix(ctx, base)
	if err != nil {
		return "", fmt.Errorf("count slugs like %q: %w", base, err)
	}
	if count == 0 {
		return base, nil
	}

	// at most count rows can hold a candidate, so this ends within count+1 steps
	for n := count + 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		taken, err := g.store.SlugTaken(ctx, candidate, self)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
}
