/*
The blogdata package is the versioned content store: blogs, their draft
version families, and the published articles snapshotted from them.

All helpers take a db.ConnOrTx so they can run standalone or inside a larger
transaction. Helpers that fetch a single row return db.NotFound when there is
nothing to find; uniqueness violations come back as models.ErrConflict.
*/
package blogdata

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type Pagination struct {
	Page  int // zero-indexed
	Limit int
}

const defaultPageSize = 10

// Applies the store's pagination defaults: limit 10, first page. Negative
// values are treated as unspecified.
func (p Pagination) Normalized() Pagination {
	if p.Limit <= 0 {
		p.Limit = defaultPageSize
	}
	if p.Page < 0 {
		p.Page = 0
	}
	return p
}

func (p Pagination) Offset() int {
	return p.Page * p.Limit
}

const pgErrUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == pgErrUniqueViolation
}
