package models

import "time"

// A content scope. Everything else hangs off a blog by foreign key, and
// deleting one cascades to all of its drafts and articles.
type Blog struct {
	ID int64 `db:"id"`

	// The stable identifier handed to external callers. The serial ID is
	// only for foreign keys and never leaves the store.
	PublicID string `db:"public_id"`

	OwnerID int64 `db:"owner_id"`

	Name *string `db:"name"`
	Slug *string `db:"slug"`

	Created time.Time `db:"created"`
}
