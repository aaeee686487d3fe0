package models

import "strings"

/*
The five orthogonal dimensions along which a piece of content can vary. Each
dimension is independently present or absent, and absence is part of the
identity: a draft with no dimensions set is the "default" variant, which is
just another variant, not a fallback for the others.

Two keys identify the same variant only if every dimension matches exactly.
*/
type VariantKey struct {
	Lang     *string `db:"variant_lang"`
	ABTest   *string `db:"variant_ab_test"`
	Format   *string `db:"variant_format"`
	Audience *string `db:"variant_audience"`
	Region   *string `db:"variant_region"`
}

type VariantDimension struct {
	Column string
	Value  *string
}

// The dimensions in stable column order, for building predicates and
// insert argument lists. Every query over drafts or articles must constrain
// all of these; see blogdata.
func (v VariantKey) Dimensions() []VariantDimension {
	return []VariantDimension{
		{"variant_lang", v.Lang},
		{"variant_ab_test", v.ABTest},
		{"variant_format", v.Format},
		{"variant_audience", v.Audience},
		{"variant_region", v.Region},
	}
}

func (v VariantKey) Equal(other VariantKey) bool {
	dims, otherDims := v.Dimensions(), other.Dimensions()
	for i := range dims {
		a, b := dims[i].Value, otherDims[i].Value
		if (a == nil) != (b == nil) {
			return false
		}
		if a != nil && *a != *b {
			return false
		}
	}
	return true
}

func (v VariantKey) IsZero() bool {
	return v.Lang == nil && v.ABTest == nil && v.Format == nil && v.Audience == nil && v.Region == nil
}

// A human-readable label for logs and errors, like "lang=en,region=eu".
// The all-absent key reads "default".
func (v VariantKey) String() string {
	var parts []string
	for _, dim := range v.Dimensions() {
		if dim.Value != nil {
			parts = append(parts, strings.TrimPrefix(dim.Column, "variant_")+"="+*dim.Value)
		}
	}
	if len(parts) == 0 {
		return "default"
	}
	return strings.Join(parts, ",")
}
