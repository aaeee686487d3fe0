package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string {
	return &s
}

func TestVariantKeyEqual(t *testing.T) {
	en := VariantKey{Lang: strptr("en")}
	enCopy := VariantKey{Lang: strptr("en")}
	de := VariantKey{Lang: strptr("de")}
	enEU := VariantKey{Lang: strptr("en"), Region: strptr("eu")}
	none := VariantKey{}

	assert.True(t, en.Equal(enCopy))
	assert.True(t, none.Equal(VariantKey{}))
	assert.False(t, en.Equal(de))
	assert.False(t, en.Equal(enEU))
	assert.False(t, en.Equal(none))
	assert.False(t, none.Equal(en))
}

func TestVariantKeyIsZero(t *testing.T) {
	assert.True(t, VariantKey{}.IsZero())
	assert.False(t, VariantKey{ABTest: strptr("b")}.IsZero())
	assert.False(t, VariantKey{Region: strptr("apac")}.IsZero())
}

func TestVariantKeyString(t *testing.T) {
	assert.Equal(t, "default", VariantKey{}.String())
	assert.Equal(t, "lang=en", VariantKey{Lang: strptr("en")}.String())
	assert.Equal(t,
		"lang=en,ab_test=b,region=eu",
		VariantKey{Lang: strptr("en"), ABTest: strptr("b"), Region: strptr("eu")}.String(),
	)
}

func TestVariantKeyDimensions(t *testing.T) {
	dims := VariantKey{Format: strptr("amp")}.Dimensions()
	assert.Len(t, dims, 5)
	assert.Equal(t, "variant_lang", dims[0].Column)
	assert.Nil(t, dims[0].Value)
	assert.Equal(t, "variant_format", dims[2].Column)
	assert.Equal(t, "amp", *dims[2].Value)
}
