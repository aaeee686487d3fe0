package blogdata

import (
	"testing"

	"github.com/inkstonehq/inkstone/src/db"
	"github.com/inkstonehq/inkstone/src/models"
	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string {
	return &s
}

func TestAddVariantPredicate(t *testing.T) {
	t.Run("all dimensions absent", func(t *testing.T) {
		var qb db.QueryBuilder
		qb.Add(`SELECT * FROM draft WHERE blog_id = $?`, 1)
		addVariantPredicate(&qb, "draft", models.VariantKey{})

		sql := qb.String()
		assert.Contains(t, sql, "AND draft.variant_lang IS NULL")
		assert.Contains(t, sql, "AND draft.variant_ab_test IS NULL")
		assert.Contains(t, sql, "AND draft.variant_format IS NULL")
		assert.Contains(t, sql, "AND draft.variant_audience IS NULL")
		assert.Contains(t, sql, "AND draft.variant_region IS NULL")
		assert.Equal(t, []interface{}{1}, qb.Args())
	})

	t.Run("set dimensions use equality", func(t *testing.T) {
		var qb db.QueryBuilder
		qb.Add(`SELECT * FROM article WHERE blog_id = $?`, 1)
		addVariantPredicate(&qb, "article", models.VariantKey{
			Lang:   strptr("en"),
			Region: strptr("eu"),
		})

		sql := qb.String()
		assert.Contains(t, sql, "AND article.variant_lang = $2")
		assert.Contains(t, sql, "AND article.variant_ab_test IS NULL")
		assert.Contains(t, sql, "AND article.variant_format IS NULL")
		assert.Contains(t, sql, "AND article.variant_audience IS NULL")
		assert.Contains(t, sql, "AND article.variant_region = $3")
		assert.Equal(t, []interface{}{1, "en", "eu"}, qb.Args())
	})

	t.Run("every dimension is always constrained", func(t *testing.T) {
		var qb db.QueryBuilder
		qb.Add(`SELECT * FROM draft WHERE blog_id = $?`, 1)
		addVariantPredicate(&qb, "draft", models.VariantKey{Lang: strptr("en")})

		for _, dim := range (models.VariantKey{}).Dimensions() {
			assert.Contains(t, qb.String(), "draft."+dim.Column)
		}
	})
}

func TestVariantArgs(t *testing.T) {
	args := variantArgs(models.VariantKey{
		Lang:     strptr("en"),
		Audience: strptr("staff"),
	})

	assert.Len(t, args, 5)
	assert.Equal(t, strptr("en"), args[0])
	assert.Nil(t, args[1])
	assert.Nil(t, args[2])
	assert.Equal(t, strptr("staff"), args[3])
	assert.Nil(t, args[4])
}
