package db

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaths(t *testing.T) {
	type CustomInt int
	type S struct {
		I   int        `db:"I"`
		PI  *int       `db:"PI"`
		CI  CustomInt  `db:"CI"`
		PCI *CustomInt `db:"PCI"`
		B   bool       `db:"B"`
		PB  *bool      `db:"PB"`

		NoTag int
	}
	type Embedded struct {
		E  string `db:"E"`
		PE *string `db:"PE"`
	}
	type Nested struct {
		S  S  `db:"S"`
		PS *S `db:"PS"`
		Embedded

		NoTag S
	}

	names, paths := getColumnNamesAndPaths(reflect.TypeOf(Nested{}), nil, "")
	assert.Equal(t, []string{
		"S.I", "S.PI",
		"S.CI", "S.PCI",
		"S.B", "S.PB",
		"PS.I", "PS.PI",
		"PS.CI", "PS.PCI",
		"PS.B", "PS.PB",
		"E", "PE",
	}, names)
	assert.Equal(t, [][]int{
		{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5},
		{1, 0}, {1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5},
		{2, 0}, {2, 1},
	}, paths)
	assert.True(t, len(names) == len(paths))

	testStruct := Nested{}
	for _, path := range paths {
		val, _ := followPathThroughStructs(reflect.ValueOf(&testStruct), path)
		assert.True(t, val.IsValid())
	}
}

func TestCompileQuery(t *testing.T) {
	type Row struct {
		ID   int64   `db:"id"`
		Slug *string `db:"slug"`
	}

	t.Run("no prefix", func(t *testing.T) {
		compiled := compileQuery(`SELECT $columns FROM blog`, reflect.TypeOf(Row{}))
		assert.Equal(t, `SELECT id, slug FROM blog`, compiled.query)
	})
	t.Run("with prefix", func(t *testing.T) {
		compiled := compileQuery(`SELECT $columns{blog} FROM blog`, reflect.TypeOf(Row{}))
		assert.Equal(t, `SELECT blog.id, blog.slug FROM blog`, compiled.query)
	})
	t.Run("no placeholder", func(t *testing.T) {
		compiled := compileQuery(`SELECT id FROM blog`, reflect.TypeOf(int64(0)))
		assert.Equal(t, `SELECT id FROM blog`, compiled.query)
		assert.Nil(t, compiled.fieldPaths)
	})
}

func TestQueryBuilder(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		var qb QueryBuilder
		qb.Add("SELECT stuff FROM thing WHERE id = $? AND foo = $?", 3, "bar")
		qb.Add("AND (baz = $?)", true)
		assert.Equal(t, "SELECT stuff FROM thing WHERE id = $1 AND foo = $2\nAND (baz = $3)\n", qb.String())
		assert.Equal(t, []interface{}{3, "bar", true}, qb.Args())
	})
	t.Run("too many arguments", func(t *testing.T) {
		var qb QueryBuilder
		assert.Panics(t, func() {
			qb.Add("HELLO $? $?", 1, 2, 3)
		})
	})
	t.Run("too few arguments", func(t *testing.T) {
		var qb QueryBuilder
		assert.Panics(t, func() {
			qb.Add("HELLO $? $?", 1)
		})
	})
}
