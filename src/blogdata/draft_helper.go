package blogdata

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/inkstonehq/inkstone/src/config"
	"github.com/inkstonehq/inkstone/src/db"
	"github.com/inkstonehq/inkstone/src/logging"
	"github.com/inkstonehq/inkstone/src/models"
	"github.com/inkstonehq/inkstone/src/oops"
	"github.com/inkstonehq/inkstone/src/utils"
	"github.com/jpillora/backoff"
)

/*
The knobs of the draft versioning algorithm. Construct one at wiring time
(DefaultVersionPolicy pulls the configured values) and hand it to whatever
calls UpdateDraft; the policy is deliberately an explicit value rather than
something the engine reads from global state.

Updates landing within UpdateWindow of the previous write collapse into the
current version row. Editors autosave every few seconds; without the window
every keystroke burst would mint a version, and the history would be useless
noise. One version per quiet period keeps history inspectable and bounds
storage growth.
*/
type VersionPolicy struct {
	UpdateWindow      time.Duration
	MaxUpdateAttempts int
}

func DefaultVersionPolicy() VersionPolicy {
	return VersionPolicy{
		UpdateWindow:      config.Config.Versioning.UpdateWindow,
		MaxUpdateAttempts: config.Config.Versioning.MaxUpdateAttempts,
	}
}

func (p VersionPolicy) windowElapsed(updated, now time.Time) bool {
	return now.Sub(updated) >= p.UpdateWindow
}

type CreateDraftInput struct {
	BlogID   int64
	Name     *string
	Slug     *string
	Content  string // JSON, stored verbatim; empty means "[]"
	Metadata string // JSON, stored verbatim; empty means "{}"
	Variant  models.VariantKey
}

// Creates version 0 of a brand-new draft with a generated content-id.
func CreateDraft(
	ctx context.Context,
	dbConn db.ConnOrTx,
	input CreateDraftInput,
) (*models.Draft, error) {
	return insertInitialDraft(ctx, dbConn, uuid.NewString(), input)
}

/*
Seeds a new variant family for an existing content-id: the new family starts
over at version 0 and evolves independently of every other variant of that
content. Returns models.ErrConflict if that exact variant key already exists
for the content-id.
*/
func CreateDraftVariant(
	ctx context.Context,
	dbConn db.ConnOrTx,
	contentID string,
	input CreateDraftInput,
) (*models.Draft, error) {
	return insertInitialDraft(ctx, dbConn, contentID, input)
}

func insertInitialDraft(
	ctx context.Context,
	dbConn db.ConnOrTx,
	contentID string,
	input CreateDraftInput,
) (*models.Draft, error) {
	args := []any{
		contentID,
		input.BlogID,
		input.Name,
		input.Slug,
		utils.OrDefault(input.Content, "[]"),
		utils.OrDefault(input.Metadata, "{}"),
	}
	args = append(args, variantArgs(input.Variant)...)

	draft, err := db.QueryOne[models.Draft](ctx, dbConn,
		`
		INSERT INTO draft (public_id, blog_id, name, slug, content, metadata, `+variantColumnList+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING $columns
		`,
		args...,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, oops.New(models.ErrConflict, "draft %q already has variant %q", contentID, input.Variant)
		}
		return nil, oops.New(err, "failed to create draft")
	}

	return draft, nil
}

/*
Fields to apply to a draft. Nil pointers leave the stored value alone; to
clear a name or slug, pass a pointer to the empty string.
*/
type UpdateDraftInput struct {
	BlogID    int64
	ContentID string
	Variant   models.VariantKey

	Name     *string
	Slug     *string
	Content  *string
	Metadata *string
}

/*
Applies an edit to the current version of a draft, following the versioning
policy: if the previous write is at least UpdateWindow old, the edit starts a
fresh version row; otherwise it folds into the current row in place.

The read-decide-write sequence runs in one transaction with the current row
locked, and the write is still guarded by the version number observed at
read time. A guarded write that affects no rows means another writer won the
race; that attempt is retried with backoff, up to MaxUpdateAttempts, before
giving up with an error wrapping models.ErrTransientRace.

Returns db.NotFound if the draft family does not exist.
*/
func (p VersionPolicy) UpdateDraft(
	ctx context.Context,
	dbConn db.ConnOrTx,
	input UpdateDraftInput,
) (*models.Draft, error) {
	attempts := utils.IntMax(1, p.MaxUpdateAttempts)
	boff := backoff.Backoff{
		Min:    10 * time.Millisecond,
		Max:    500 * time.Millisecond,
		Jitter: true,
	}

	for i := 0; i < attempts; i++ {
		draft, err := p.applyDraftUpdate(ctx, dbConn, input)
		if errors.Is(err, models.ErrTransientRace) {
			logging.ExtractLogger(ctx).Debug().
				Str("draft", input.ContentID).
				Str("variant", input.Variant.String()).
				Msg("draft update lost a version race; retrying")
			if err := utils.SleepContext(ctx, boff.Duration()); err != nil {
				return nil, err
			}
			continue
		}
		return draft, err
	}

	return nil, oops.New(models.ErrTransientRace, "draft update for %q gave up after %d attempts", input.ContentID, attempts)
}

func (p VersionPolicy) applyDraftUpdate(
	ctx context.Context,
	dbConn db.ConnOrTx,
	input UpdateDraftInput,
) (*models.Draft, error) {
	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	var qb db.QueryBuilder
	qb.Add(
		`
		SELECT $columns
		FROM draft
		WHERE
			blog_id = $?
			AND public_id = $?
		`,
		input.BlogID,
		input.ContentID,
	)
	addVariantPredicate(&qb, "draft", input.Variant)
	qb.Add(`ORDER BY version DESC LIMIT 1 FOR UPDATE`)

	current, err := db.QueryOne[models.Draft](ctx, tx, qb.String(), qb.Args()...)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, err
		}
		return nil, oops.New(err, "failed to fetch current draft version")
	}

	// We may have blocked on the row lock while another writer committed. If
	// a newer version appeared in the meantime, the row we locked is no
	// longer current and must not be touched.
	var qbCheck db.QueryBuilder
	qbCheck.Add(
		`
		SELECT COALESCE(MAX(version), -1)
		FROM draft
		WHERE
			blog_id = $?
			AND public_id = $?
		`,
		input.BlogID,
		input.ContentID,
	)
	addVariantPredicate(&qbCheck, "draft", input.Variant)
	newestVersion, err := db.QueryOneScalar[int](ctx, tx, qbCheck.String(), qbCheck.Args()...)
	if err != nil {
		return nil, oops.New(err, "failed to check newest draft version")
	}
	if newestVersion != current.Version {
		return nil, models.ErrTransientRace
	}

	name := current.Name
	if input.Name != nil {
		name = input.Name
	}
	slug := current.Slug
	if input.Slug != nil {
		slug = input.Slug
	}
	content := current.Content
	if input.Content != nil {
		content = *input.Content
	}
	metadata := current.Metadata
	if input.Metadata != nil {
		metadata = *input.Metadata
	}

	now := time.Now()

	var updated *models.Draft
	if p.windowElapsed(current.Updated, now) {
		// The previous edit burst is over; start a new version row.
		args := []any{
			input.ContentID,
			input.BlogID,
			name,
			slug,
			content,
			metadata,
			current.Version + 1,
			now,
		}
		args = append(args, variantArgs(input.Variant)...)

		updated, err = db.QueryOne[models.Draft](ctx, tx,
			`
			INSERT INTO draft (public_id, blog_id, name, slug, content, metadata, version, updated, `+variantColumnList+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING $columns
			`,
			args...,
		)
		if err != nil {
			if isUniqueViolation(err) {
				// Someone else minted this version number first.
				return nil, models.ErrTransientRace
			}
			return nil, oops.New(err, "failed to insert new draft version")
		}
	} else {
		// Still within the edit burst; fold the edit into the current row.
		// Superseded rows are immutable, so the write is conditioned on the
		// version we read still being in place.
		updated, err = db.QueryOne[models.Draft](ctx, tx,
			`
			UPDATE draft
			SET name = $1, slug = $2, content = $3, metadata = $4, updated = $5
			WHERE
				id = $6
				AND version = $7
			RETURNING $columns
			`,
			name,
			slug,
			content,
			metadata,
			now,
			current.ID,
			current.Version,
		)
		if err != nil {
			if errors.Is(err, db.NotFound) {
				return nil, models.ErrTransientRace
			}
			return nil, oops.New(err, "failed to update draft version in place")
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to commit draft update")
	}

	return updated, nil
}

// Fetches the current (highest-version) draft for the exact variant key.
// Returns db.NotFound if the family does not exist.
func FetchDraft(
	ctx context.Context,
	dbConn db.ConnOrTx,
	blogID int64,
	contentID string,
	variant models.VariantKey,
) (*models.Draft, error) {
	var qb db.QueryBuilder
	qb.Add(
		`
		SELECT $columns
		FROM draft
		WHERE
			blog_id = $?
			AND public_id = $?
		`,
		blogID,
		contentID,
	)
	addVariantPredicate(&qb, "draft", variant)
	qb.Add(`ORDER BY version DESC LIMIT 1`)

	draft, err := db.QueryOne[models.Draft](ctx, dbConn, qb.String(), qb.Args()...)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, err
		}
		return nil, oops.New(err, "failed to fetch draft")
	}

	return draft, nil
}

// Fetches one specific historical version of a draft family.
func FetchDraftVersion(
	ctx context.Context,
	dbConn db.ConnOrTx,
	blogID int64,
	contentID string,
	variant models.VariantKey,
	version int,
) (*models.Draft, error) {
	var qb db.QueryBuilder
	qb.Add(
		`
		SELECT $columns
		FROM draft
		WHERE
			blog_id = $?
			AND public_id = $?
			AND version = $?
		`,
		blogID,
		contentID,
		version,
	)
	addVariantPredicate(&qb, "draft", variant)

	draft, err := db.QueryOne[models.Draft](ctx, dbConn, qb.String(), qb.Args()...)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, err
		}
		return nil, oops.New(err, "failed to fetch draft version")
	}

	return draft, nil
}

type DraftsQuery struct {
	BlogID  int64
	Variant models.VariantKey
	Pagination
}

/*
Fetches one page of draft summaries for the exact variant key, most recently
updated first, along with the total number of draft families matching. Only
the current version of each family is listed.
*/
func FetchDrafts(
	ctx context.Context,
	dbConn db.ConnOrTx,
	q DraftsQuery,
) ([]*models.DraftSummary, int, error) {
	page := q.Pagination.Normalized()

	var qb db.QueryBuilder
	qb.Add(
		`
		SELECT $columns
		FROM (
			SELECT DISTINCT ON (public_id) *
			FROM draft
			WHERE
				blog_id = $?
		`,
		q.BlogID,
	)
	addVariantPredicate(&qb, "draft", q.Variant)
	qb.Add(
		`
			ORDER BY public_id, version DESC
		) AS draft
		ORDER BY updated DESC
		LIMIT $? OFFSET $?
		`,
		page.Limit,
		page.Offset(),
	)

	drafts, err := db.Query[models.DraftSummary](ctx, dbConn, qb.String(), qb.Args()...)
	if err != nil {
		return nil, 0, oops.New(err, "failed to fetch drafts")
	}

	var qbCount db.QueryBuilder
	qbCount.Add(
		`
		SELECT COUNT(DISTINCT public_id)
		FROM draft
		WHERE
			blog_id = $?
		`,
		q.BlogID,
	)
	addVariantPredicate(&qbCount, "draft", q.Variant)

	count, err := db.QueryOneScalar[int](ctx, dbConn, qbCount.String(), qbCount.Args()...)
	if err != nil {
		return nil, 0, oops.New(err, "failed to count drafts")
	}

	return drafts, count, nil
}

// Deletes every version of the draft family for the exact variant key.
// Other variant families of the same content-id are untouched. Idempotent.
func DeleteDraft(
	ctx context.Context,
	dbConn db.ConnOrTx,
	blogID int64,
	contentID string,
	variant models.VariantKey,
) error {
	var qb db.QueryBuilder
	qb.Add(
		`
		DELETE FROM draft
		WHERE
			blog_id = $?
			AND public_id = $?
		`,
		blogID,
		contentID,
	)
	addVariantPredicate(&qb, "draft", variant)

	_, err := dbConn.Exec(ctx, qb.String(), qb.Args()...)
	if err != nil {
		return oops.New(err, "failed to delete draft")
	}

	return nil
}
