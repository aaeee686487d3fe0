package blogdata

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inkstonehq/inkstone/src/db"
	"github.com/inkstonehq/inkstone/src/models"
	"github.com/inkstonehq/inkstone/src/oops"
)

type CreateBlogInput struct {
	OwnerID int64
	Name    *string
	Slug    *string
}

func CreateBlog(
	ctx context.Context,
	dbConn db.ConnOrTx,
	input CreateBlogInput,
) (*models.Blog, error) {
	blog, err := db.QueryOne[models.Blog](ctx, dbConn,
		`
		INSERT INTO blog (public_id, owner_id, name, slug)
		VALUES ($1, $2, $3, $4)
		RETURNING $columns
		`,
		uuid.NewString(),
		input.OwnerID,
		input.Name,
		input.Slug,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, oops.New(models.ErrConflict, "a blog with that slug already exists")
		}
		return nil, oops.New(err, "failed to create blog")
	}

	return blog, nil
}

/*
Fetches a blog by its public id, scoped to the given owner. A blog owned by
somebody else is db.NotFound, exactly like a blog that doesn't exist; the
store never confirms the existence of other people's blogs.
*/
func FetchBlog(
	ctx context.Context,
	dbConn db.ConnOrTx,
	ownerID int64,
	publicID string,
) (*models.Blog, error) {
	blog, err := db.QueryOne[models.Blog](ctx, dbConn,
		`
		SELECT $columns
		FROM blog
		WHERE
			public_id = $1
			AND owner_id = $2
		`,
		publicID,
		ownerID,
	)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, err
		}
		return nil, oops.New(err, "failed to fetch blog")
	}

	return blog, nil
}

/*
Resolves a blog into an authorization scope for draft and article calls.
Unlike FetchBlog, an existing blog owned by a different identity comes back
as models.ErrUnauthorized rather than db.NotFound, so callers that already
hold a blog id can distinguish the two.
*/
func ResolveScope(
	ctx context.Context,
	dbConn db.ConnOrTx,
	ownerID int64,
	publicID string,
) (*models.Blog, error) {
	blog, err := db.QueryOne[models.Blog](ctx, dbConn,
		`
		SELECT $columns
		FROM blog
		WHERE public_id = $1
		`,
		publicID,
	)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, err
		}
		return nil, oops.New(err, "failed to fetch blog")
	}

	if blog.OwnerID != ownerID {
		return nil, models.ErrUnauthorized
	}

	return blog, nil
}

type BlogsQuery struct {
	OwnerID int64
	Pagination
}

/*
Fetches one page of the owner's blogs, newest first, along with the total
count of blogs in scope.
*/
func FetchBlogs(
	ctx context.Context,
	dbConn db.ConnOrTx,
	q BlogsQuery,
) ([]*models.Blog, int, error) {
	page := q.Pagination.Normalized()

	blogs, err := db.Query[models.Blog](ctx, dbConn,
		`
		SELECT $columns
		FROM blog
		WHERE owner_id = $1
		ORDER BY created DESC
		LIMIT $2 OFFSET $3
		`,
		q.OwnerID,
		page.Limit,
		page.Offset(),
	)
	if err != nil {
		return nil, 0, oops.New(err, "failed to fetch blogs")
	}

	count, err := db.QueryOneScalar[int](ctx, dbConn,
		`SELECT COUNT(*) FROM blog WHERE owner_id = $1`,
		q.OwnerID,
	)
	if err != nil {
		return nil, 0, oops.New(err, "failed to count blogs")
	}

	return blogs, count, nil
}

// Deletes a blog and, through the schema's cascades, every draft and article
// in its scope. Deleting an absent blog is not an error.
func DeleteBlog(
	ctx context.Context,
	dbConn db.ConnOrTx,
	ownerID int64,
	publicID string,
) error {
	_, err := dbConn.Exec(ctx,
		`
		DELETE FROM blog
		WHERE
			public_id = $1
			AND owner_id = $2
		`,
		publicID,
		ownerID,
	)
	if err != nil {
		return oops.New(err, "failed to delete blog")
	}

	return nil
}
