package models

import "time"

/*
One stored version of a draft. A draft "family" is every row sharing
(blog, public id, variant key); the row with the highest version number is
the current one, and earlier rows are append-only history.

Content and metadata are JSON text, stored and returned verbatim. The store
never looks inside them; validating the content tree is the caller's problem.
*/
type Draft struct {
	ID int64 `db:"id"`

	// The content-id: shared by all versions and all variant families of
	// the same logical draft, and by the articles published from them.
	PublicID string `db:"public_id"`

	BlogID int64 `db:"blog_id"`

	Name *string `db:"name"`
	Slug *string `db:"slug"`

	Content  string `db:"content"`
	Metadata string `db:"metadata"`

	VariantKey

	Version int `db:"version"`

	Created time.Time `db:"created"`
	Updated time.Time `db:"updated"`
}

// The projection returned by draft listings.
type DraftSummary struct {
	PublicID string  `db:"public_id"`
	Name     *string `db:"name"`
	Slug     *string `db:"slug"`
	Version  int     `db:"version"`

	Created time.Time `db:"created"`
	Updated time.Time `db:"updated"`
}
