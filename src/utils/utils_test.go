package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type myError struct{}

func (err *myError) Error() string {
	return "autosave exploded"
}

func TestMust(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		f := func() error { return nil }
		Must(f())
	})
	t.Run("non-nil error", func(t *testing.T) {
		f := func() error { return &myError{} }
		assert.Panics(t, func() {
			Must(f())
		})
	})
}

func TestMust1(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		f := func() (int, error) { return 3, nil }
		assert.Equal(t, 3, Must1(f()))
	})
	t.Run("non-nil error", func(t *testing.T) {
		f := func() (int, error) { return 0, &myError{} }
		assert.Panics(t, func() {
			Must1(f())
		})
	})
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, 10, OrDefault(0, 10))
	assert.Equal(t, 3, OrDefault(3, 10))
	assert.Equal(t, "fallback", OrDefault("", "fallback"))
	assert.Equal(t, "value", OrDefault("value", "fallback"))
}

func TestIntClamp(t *testing.T) {
	assert.Equal(t, 5, IntClamp(0, 5, 10))
	assert.Equal(t, 0, IntClamp(0, -5, 10))
	assert.Equal(t, 10, IntClamp(0, 15, 10))
}
