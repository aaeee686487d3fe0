/*
This package contains lowish-level APIs for making queries to our Postgres
database. It streamlines the process of mapping query results to Go types,
while allowing you to write arbitrary SQL queries.

The primary functions are Query and QueryIterator.

# Query syntax

This package allows a few small extensions to SQL syntax to streamline the
interaction between Go and Postgres.

Arguments can be provided using placeholders like $1, $2, etc. All arguments
will be safely escaped and mapped from their Go type to the correct Postgres
type. (This is a direct proxy to pgx.)

	ids, err := db.Query[int64](ctx, conn,
		`
		SELECT id
		FROM blog
		WHERE
			slug = ANY($1)
		`,
		[]string{"devlog", "release-notes"},
	)

(This also demonstrates a useful tip: if you want to use a slice in your
query, use Postgres arrays instead of IN.)

When querying individual fields, you can simply select the field like so:

	ids, err := db.Query[int64](ctx, conn, `SELECT id FROM blog`)

To query multiple columns at once, you may use a struct type with
`db:"column_name"` tags, and the special $columns placeholder:

	type Blog struct {
		ID      int64     `db:"id"`
		Slug    *string   `db:"slug"`
		Created time.Time `db:"created"`
	}
	blogs, err := db.Query[Blog](ctx, conn, `SELECT $columns FROM ...`)
	// Resulting query:
	// SELECT id, slug, created FROM ...

Sometimes a table name prefix is required on each column to disambiguate
between column names, especially when performing a JOIN. In those situations,
you can include the prefix in the $columns placeholder like $columns{prefix}:

	drafts, err := db.Query[Draft](ctx, conn, `
		SELECT $columns{draft}
		FROM
			draft
			JOIN blog ON blog.id = draft.blog_id
		WHERE
			blog.owner_id = $1
	`, ownerID)
	// Resulting query:
	// SELECT draft.id, draft.public_id, ... FROM ...
*/
package db
