package content

import (
	"errors"
	"net/http"
	"testing"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSlugRetry(t *testing.T) {
	t.Run("succeeds after a lost race", func(t *testing.T) {
		calls := 0
		err := withSlugRetry("category", func() error {
			calls++
			if calls == 1 {
				return gorm.ErrDuplicatedKey
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("other errors are not retried", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		err := withSlugRetry("category", func() error {
			calls++
			return boom
		})
		assert.Same(t, boom, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up with a conflict", func(t *testing.T) {
		calls := 0
		err := withSlugRetry("category", func() error {
			calls++
			return gorm.ErrDuplicatedKey
		})
		assert.Equal(t, slugAttempts, calls)
		require.True(t, errs.IsUniqueConstraintViolationError(err))

		var apiErr *errs.ApiErr
		require.ErrorAs(t, dbError("create", "category", err), &apiErr)
		assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
		assert.Equal(t, "slug", apiErr.Field)
		assert.Contains(t, apiErr.Details, "category.slug")
	})
}
