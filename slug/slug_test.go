package slug

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Web Design", "web-design"},
		{"  Web   Design  ", "web-design"},
		{"Don't Stop!", "dont-stop"},
		{"Café crème", "cafe-creme"},
		{"snake_case and-dashes", "snake-case-and-dashes"},
		{"--Leading & trailing--", "leading-trailing"},
		{"mail@home", "mail-at-home"},
		{"تصميم المواقع", "tsmym-almwaqa"},
		{"Release ٢٠٢٤", "release-2024"},
		{"🚀🚀", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestMakeAlwaysProducesURLSafeSlugs(t *testing.T) {
	alphabet := []rune("aZ09 -_.,!?'\"&@/\\é ü ß 日本 ب ت ٣ \t\n🚀()[]{}")
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		var b strings.Builder
		for j := 0; j < rng.Intn(24); j++ {
			b.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		got := Make(b.String())
		if got == "" {
			continue
		}
		require.Regexp(t, slugShape, got, "input %q", b.String())
	}
}

// memStore holds the slugs of one table keyed by row id.
type memStore struct {
	rows map[uuid.UUID]string
	err  error
}

func newMemStore(slugs ...string) *memStore {
	s := &memStore{rows: map[uuid.UUID]string{}}
	for _, sl := range slugs {
		s.rows[uuid.New()] = sl
	}
	return s
}

func (s *memStore) CountSlugPrefix(_ context.Context, prefix string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	var n int64
	for _, sl := range s.rows {
		if strings.HasPrefix(sl, prefix) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) SlugTaken(_ context.Context, slug string, exclude uuid.UUID) (bool, error) {
	for id, sl := range s.rows {
		if sl == slug && id != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) idOf(slug string) uuid.UUID {
	for id, sl := range s.rows {
		if sl == slug {
			return id
		}
	}
	return uuid.Nil
}

func TestGenerateWithoutCollisionsReturnsBase(t *testing.T) {
	g := NewGenerator(newMemStore("branding"), "service")
	got, err := g.Generate(context.Background(), "Web Design", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, "web-design", got)
}

func TestGenerateWithKCollisions(t *testing.T) {
	for k := 1; k <= 5; k++ {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			slugs := []string{"web-design"}
			for i := 2; i <= k; i++ {
				slugs = append(slugs, fmt.Sprintf("web-design-%d", i))
			}
			g := NewGenerator(newMemStore(slugs...), "service")

			got, err := g.Generate(context.Background(), "Web Design", uuid.Nil)
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("web-design-%d", k+1), got)
		})
	}
}

func TestGenerateSkipsSuffixesAlreadyHeld(t *testing.T) {
	// web-design was deleted, leaving one prefix match that already holds -2
	g := NewGenerator(newMemStore("web-design-2"), "service")
	got, err := g.Generate(context.Background(), "Web Design", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, "web-design-3", got)
}

func TestGenerateCountsPrefixMatchesOfLongerNames(t *testing.T) {
	g := NewGenerator(newMemStore("web-designer"), "service")
	got, err := g.Generate(context.Background(), "Web Design", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, "web-design-2", got)
}

func TestGenerateOnEditCountsTheRecordItself(t *testing.T) {
	store := newMemStore("web-design", "web-design-2")
	g := NewGenerator(store, "service")

	// Known quirk: re-saving the first record under its unchanged name moves its slug,
	// since the prefix count includes the record being edited.
	got, err := g.Generate(context.Background(), "Web Design", store.idOf("web-design"))
	require.NoError(t, err)
	assert.Equal(t, "web-design-3", got)
}

func TestGenerateFallsBackForEmptyBase(t *testing.T) {
	store := newMemStore()
	g := NewGenerator(store, "Hero Slide")

	got, err := g.Generate(context.Background(), "🚀", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, "hero-slide", got)

	store.rows[uuid.New()] = got
	got, err = g.Generate(context.Background(), "!!!", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, "hero-slide-2", got)

	assert.Equal(t, "item", NewGenerator(store, "").fallback)
}

func TestGeneratePropagatesStoreErrors(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("db down")

	_, err := NewGenerator(store, "x").Generate(context.Background(), "Web Design", uuid.Nil)
	assert.ErrorIs(t, err, store.err)
}
