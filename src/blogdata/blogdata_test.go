package blogdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaginationNormalized(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		page := Pagination{}.Normalized()
		assert.Equal(t, 0, page.Page)
		assert.Equal(t, 10, page.Limit)
		assert.Equal(t, 0, page.Offset())
	})

	t.Run("negative values are clamped", func(t *testing.T) {
		page := Pagination{Page: -3, Limit: -1}.Normalized()
		assert.Equal(t, 0, page.Page)
		assert.Equal(t, 10, page.Limit)
	})

	t.Run("offset", func(t *testing.T) {
		page := Pagination{Page: 3, Limit: 25}.Normalized()
		assert.Equal(t, 75, page.Offset())
	})
}

func TestWindowElapsed(t *testing.T) {
	policy := VersionPolicy{UpdateWindow: time.Minute}
	base := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	assert.False(t, policy.windowElapsed(base, base))
	assert.False(t, policy.windowElapsed(base, base.Add(59*time.Second)))
	assert.True(t, policy.windowElapsed(base, base.Add(time.Minute)))
	assert.True(t, policy.windowElapsed(base, base.Add(time.Hour)))

	// A zero window means every update starts a new version.
	zero := VersionPolicy{UpdateWindow: 0}
	assert.True(t, zero.windowElapsed(base, base))
}
