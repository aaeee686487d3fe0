package migration

import (
	"context"
	"fmt"
	"os"

	"github.com/inkstonehq/inkstone/src/blogdata"
	"github.com/inkstonehq/inkstone/src/db"
	"github.com/inkstonehq/inkstone/src/models"
	"github.com/inkstonehq/inkstone/src/store"
	"github.com/spf13/cobra"
)

func init() {
	seedCommand := &cobra.Command{
		Use:   "seed",
		Short: "Migrate to the latest version and fill the store with sample content",
		Run: func(cmd *cobra.Command, args []string) {
			Migrate(LatestVersion())
			Seed()
		},
	}

	store.StoreCommand.AddCommand(seedCommand)
}

func strptr(s string) *string {
	return &s
}

// Creates a couple of blogs with drafts, variants, and published articles.
// Assumes the database schema is fully up to date.
func Seed() {
	ctx := context.Background()

	conn := db.NewConn()
	defer conn.Close(ctx)

	fmt.Println("Seeding blogs and content...")

	const ownerID = 1

	blog, err := blogdata.CreateBlog(ctx, conn, blogdata.CreateBlogInput{
		OwnerID: ownerID,
		Name:    strptr("Field Notes"),
		Slug:    strptr("field-notes"),
	})
	if err != nil {
		fmt.Printf("ERROR: failed to seed blog: %v\n", err)
		os.Exit(1)
	}

	draft, err := blogdata.CreateDraft(ctx, conn, blogdata.CreateDraftInput{
		BlogID:  blog.ID,
		Name:    strptr("Hello, world"),
		Slug:    strptr("hello-world"),
		Content: `[{"type":"paragraph","text":"First post."}]`,
	})
	if err != nil {
		fmt.Printf("ERROR: failed to seed draft: %v\n", err)
		os.Exit(1)
	}

	// An independent French variant of the same content.
	_, err = blogdata.CreateDraftVariant(ctx, conn, draft.PublicID, blogdata.CreateDraftInput{
		BlogID:  blog.ID,
		Name:    strptr("Bonjour, le monde"),
		Slug:    strptr("bonjour-le-monde"),
		Content: `[{"type":"paragraph","text":"Premier billet."}]`,
		Variant: models.VariantKey{Lang: strptr("fr")},
	})
	if err != nil {
		fmt.Printf("ERROR: failed to seed draft variant: %v\n", err)
		os.Exit(1)
	}

	policy := blogdata.DefaultVersionPolicy()
	_, err = policy.UpdateDraft(ctx, conn, blogdata.UpdateDraftInput{
		BlogID:    blog.ID,
		ContentID: draft.PublicID,
		Content:   strptr(`[{"type":"paragraph","text":"First post, now with edits."}]`),
	})
	if err != nil {
		fmt.Printf("ERROR: failed to seed draft update: %v\n", err)
		os.Exit(1)
	}

	_, err = blogdata.PublishDraft(ctx, conn, blog.ID, draft.PublicID, models.VariantKey{})
	if err != nil {
		fmt.Printf("ERROR: failed to seed article: %v\n", err)
		os.Exit(1)
	}

	secondBlog, err := blogdata.CreateBlog(ctx, conn, blogdata.CreateBlogInput{
		OwnerID: ownerID,
		Name:    strptr("Scratchpad"),
	})
	if err != nil {
		fmt.Printf("ERROR: failed to seed blog: %v\n", err)
		os.Exit(1)
	}

	_, err = blogdata.CreateDraft(ctx, conn, blogdata.CreateDraftInput{
		BlogID: secondBlog.ID,
		Name:   strptr("Untitled"),
	})
	if err != nil {
		fmt.Printf("ERROR: failed to seed draft: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
	fmt.Printf("Seeded blog %s with draft %s (published).\n", blog.PublicID, draft.PublicID)
}
