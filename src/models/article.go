package models

import "time"

/*
An immutable published snapshot of a draft. There is exactly one article row
per (blog, public id, variant key); republishing overwrites it in place
rather than accumulating versions.

DraftID records which draft row produced the snapshot. It goes NULL if that
draft version is later deleted; the article itself is unaffected.
*/
type Article struct {
	ID int64 `db:"id"`

	PublicID string `db:"public_id"`

	BlogID  int64  `db:"blog_id"`
	DraftID *int64 `db:"draft_id"`

	Name *string `db:"name"`
	Slug *string `db:"slug"`

	Content  string `db:"content"`
	Metadata string `db:"metadata"`

	VariantKey

	PublishedAt time.Time `db:"published_at"`
}

// The projection returned by article listings.
type ArticleSummary struct {
	PublicID string  `db:"public_id"`
	Name     *string `db:"name"`
	Slug     *string `db:"slug"`

	PublishedAt time.Time `db:"published_at"`
}
