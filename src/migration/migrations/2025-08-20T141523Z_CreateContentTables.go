package migrations

import (
	"context"
	"time"

	"github.com/inkstonehq/inkstone/src/migration/types"
	"github.com/jackc/pgx/v5"
)

func init() {
	registerMigration(CreateContentTables{})
}

type CreateContentTables struct{}

func (m CreateContentTables) Version() types.MigrationVersion {
	return types.MigrationVersion(time.Date(2025, 8, 20, 14, 15, 23, 0, time.UTC))
}

func (m CreateContentTables) Name() string {
	return "CreateContentTables"
}

func (m CreateContentTables) Description() string {
	return "Create the blog, draft and article tables"
}

func (m CreateContentTables) Up(ctx context.Context, tx pgx.Tx) error {
	// The variant columns form part of each row's identity. Absent
	// dimensions are NULL, and the unique indexes treat NULLs as equal so
	// that the all-absent variant is one identity, not infinitely many.
	_, err := tx.Exec(ctx, `
		CREATE TABLE blog (
			id BIGSERIAL PRIMARY KEY,
			public_id TEXT UNIQUE NOT NULL,
			owner_id BIGINT NOT NULL,
			name TEXT,
			slug TEXT UNIQUE,
			created TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
		CREATE INDEX blog_owner ON blog (owner_id);

		CREATE TABLE draft (
			id BIGSERIAL PRIMARY KEY,
			public_id TEXT NOT NULL,
			blog_id BIGINT NOT NULL REFERENCES blog (id) ON DELETE CASCADE,
			name TEXT,
			slug TEXT,
			content TEXT NOT NULL DEFAULT '[]',
			metadata TEXT NOT NULL DEFAULT '{}',
			variant_lang TEXT,
			variant_ab_test TEXT,
			variant_format TEXT,
			variant_audience TEXT,
			variant_region TEXT,
			version INT NOT NULL DEFAULT 0,
			created TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			updated TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX draft_family_version ON draft
			(blog_id, public_id, variant_lang, variant_ab_test, variant_format, variant_audience, variant_region, version)
			NULLS NOT DISTINCT;
		CREATE INDEX draft_blog ON draft (blog_id);
		CREATE INDEX draft_updated ON draft (updated);

		CREATE TABLE article (
			id BIGSERIAL PRIMARY KEY,
			public_id TEXT NOT NULL,
			blog_id BIGINT NOT NULL REFERENCES blog (id) ON DELETE CASCADE,
			draft_id BIGINT REFERENCES draft (id) ON DELETE SET NULL,
			name TEXT,
			slug TEXT,
			content TEXT NOT NULL DEFAULT '[]',
			metadata TEXT NOT NULL DEFAULT '{}',
			variant_lang TEXT,
			variant_ab_test TEXT,
			variant_format TEXT,
			variant_audience TEXT,
			variant_region TEXT,
			published_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX article_identity ON article
			(blog_id, public_id, variant_lang, variant_ab_test, variant_format, variant_audience, variant_region)
			NULLS NOT DISTINCT;
		CREATE INDEX article_blog ON article (blog_id);
	`)
	return err
}

func (m CreateContentTables) Down(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		DROP TABLE article;
		DROP TABLE draft;
		DROP TABLE blog;
	`)
	return err
}
