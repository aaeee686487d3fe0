package blogdata

import (
	"context"
	"errors"
	"time"

	"github.com/inkstonehq/inkstone/src/db"
	"github.com/inkstonehq/inkstone/src/models"
	"github.com/inkstonehq/inkstone/src/oops"
)

/*
Snapshots the current draft for (contentID, variant) into the published
article for that same identity. Publishing is an idempotent upsert: the first
publish inserts the article row, and every republish overwrites that row's
fields and refreshes published_at. There is never more than one article per
(blog, content-id, variant).

Returns db.NotFound if there is no draft to publish. The draft itself is
untouched and can keep evolving; the article only changes on the next
publish.
*/
func PublishDraft(
	ctx context.Context,
	dbConn db.ConnOrTx,
	blogID int64,
	contentID string,
	variant models.VariantKey,
) (*models.Article, error) {
	draft, err := FetchDraft(ctx, dbConn, blogID, contentID, variant)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, err
		}
		return nil, oops.New(err, "failed to fetch draft for publishing")
	}

	args := []any{
		contentID,
		blogID,
		draft.ID,
		draft.Name,
		draft.Slug,
		draft.Content,
		draft.Metadata,
		time.Now(),
	}
	args = append(args, variantArgs(variant)...)

	article, err := db.QueryOne[models.Article](ctx, dbConn,
		`
		INSERT INTO article (public_id, blog_id, draft_id, name, slug, content, metadata, published_at, `+variantColumnList+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (blog_id, public_id, `+variantColumnList+`)
		DO UPDATE SET
			draft_id = EXCLUDED.draft_id,
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			content = EXCLUDED.content,
			metadata = EXCLUDED.metadata,
			published_at = EXCLUDED.published_at
		RETURNING $columns
		`,
		args...,
	)
	if err != nil {
		return nil, oops.New(err, "failed to publish draft")
	}

	return article, nil
}

// Fetches the published article for the exact variant key, or db.NotFound.
func FetchArticle(
	ctx context.Context,
	dbConn db.ConnOrTx,
	blogID int64,
	contentID string,
	variant models.VariantKey,
) (*models.Article, error) {
	var qb db.QueryBuilder
	qb.Add(
		`
		SELECT $columns
		FROM article
		WHERE
			blog_id = $?
			AND public_id = $?
		`,
		blogID,
		contentID,
	)
	addVariantPredicate(&qb, "article", variant)

	article, err := db.QueryOne[models.Article](ctx, dbConn, qb.String(), qb.Args()...)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, err
		}
		return nil, oops.New(err, "failed to fetch article")
	}

	return article, nil
}

type ArticlesQuery struct {
	BlogID  int64
	Variant models.VariantKey
	Pagination
}

/*
Fetches one page of article summaries for the exact variant key, most
recently published first, along with the total count matching.
*/
func FetchArticles(
	ctx context.Context,
	dbConn db.ConnOrTx,
	q ArticlesQuery,
) ([]*models.ArticleSummary, int, error) {
	page := q.Pagination.Normalized()

	var qb db.QueryBuilder
	qb.Add(
		`
		SELECT $columns
		FROM article
		WHERE
			blog_id = $?
		`,
		q.BlogID,
	)
	addVariantPredicate(&qb, "article", q.Variant)
	qb.Add(
		`
		ORDER BY published_at DESC
		LIMIT $? OFFSET $?
		`,
		page.Limit,
		page.Offset(),
	)

	articles, err := db.Query[models.ArticleSummary](ctx, dbConn, qb.String(), qb.Args()...)
	if err != nil {
		return nil, 0, oops.New(err, "failed to fetch articles")
	}

	var qbCount db.QueryBuilder
	qbCount.Add(
		`
		SELECT COUNT(*)
		FROM article
		WHERE
			blog_id = $?
		`,
		q.BlogID,
	)
	addVariantPredicate(&qbCount, "article", q.Variant)

	count, err := db.QueryOneScalar[int](ctx, dbConn, qbCount.String(), qbCount.Args()...)
	if err != nil {
		return nil, 0, oops.New(err, "failed to count articles")
	}

	return articles, count, nil
}

// Unpublishes the article for the exact variant key. Idempotent; the drafts
// it was published from are untouched.
func DeleteArticle(
	ctx context.Context,
	dbConn db.ConnOrTx,
	blogID int64,
	contentID string,
	variant models.VariantKey,
) error {
	var qb db.QueryBuilder
	qb.Add(
		`
		DELETE FROM article
		WHERE
			blog_id = $?
			AND public_id = $?
		`,
		blogID,
		contentID,
	)
	addVariantPredicate(&qb, "article", variant)

	_, err := dbConn.Exec(ctx, qb.String(), qb.Args()...)
	if err != nil {
		return oops.New(err, "failed to delete article")
	}

	return nil
}
