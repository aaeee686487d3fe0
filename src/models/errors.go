package models

import "errors"

// Domain errors shared across the data helpers. Absence of a row is
// db.NotFound, following the db package's convention.
var (
	// A uniqueness violation: most commonly, seeding a variant for a
	// content-id that already has that exact variant key.
	ErrConflict = errors.New("resource already exists")

	// The caller's identity does not own the blog scope it supplied.
	ErrUnauthorized = errors.New("not authorized for this blog")

	// An optimistic draft update found its version superseded. Retried
	// internally; callers only see this wrapped, after retries run out.
	ErrTransientRace = errors.New("draft version changed concurrently")
)
