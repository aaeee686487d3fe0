package blogdata

import (
	"github.com/inkstonehq/inkstone/src/db"
	"github.com/inkstonehq/inkstone/src/models"
)

/*
Appends predicates constraining every variant dimension of the given table.
A set dimension requires exact equality; an absent dimension requires the
stored dimension to be NULL. There is no wildcard form: the variant key is a
strict compound identity, and the all-absent key is its own distinct variant.

Callers must already have a WHERE clause open; every chunk starts with AND.
*/
func addVariantPredicate(qb *db.QueryBuilder, table string, variant models.VariantKey) {
	for _, dim := range variant.Dimensions() {
		col := table + "." + dim.Column
		if dim.Value != nil {
			qb.Add(`AND `+col+` = $?`, *dim.Value)
		} else {
			qb.Add(`AND ` + col + ` IS NULL`)
		}
	}
}

// The variant columns in insert order, matching variantColumnList.
func variantArgs(variant models.VariantKey) []interface{} {
	dims := variant.Dimensions()
	args := make([]interface{}, len(dims))
	for i, dim := range dims {
		args[i] = dim.Value
	}
	return args
}

const variantColumnList = `variant_lang, variant_ab_test, variant_format, variant_audience, variant_region`
