package blogposts

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
)

// BunRepository implements Repository on a bun database.
type BunRepository struct {
	db       *bun.DB
	table    *store.Table[record]
	settings store.Settings
}

var _ Repository = (*BunRepository)(nil)

// NewRemoteRepository targets zirospace_blog_posts_{locale} on Postgres.
func NewRemoteRepository(db *bun.DB, opts ...store.Option) *BunRepository {
	return newRepository(db, store.RemoteLayout, opts...)
}

// NewLocalRepository targets blog_posts_{locale} on SQLite.
func NewLocalRepository(db *bun.DB, opts ...store.Option) *BunRepository {
	return newRepository(db, store.LocalLayout, opts...)
}

func newRepository(db *bun.DB, layout store.Layout, opts ...store.Option) *BunRepository {
	return &BunRepository{
		db:       db,
		table:    store.NewTable[record](db, layout, entityName, resourceName, store.ByCreatedDesc),
		settings: store.ResolveSettings(opts...),
	}
}

func (r *BunRepository) List(ctx context.Context, locale domain.Locale) ([]BlogPost, error) {
	rows, err := r.table.List(ctx, r.db, locale)
	if err != nil {
		return nil, r.fail("list", locale, "", err)
	}
	return store.MapRecords(r.settings.Logger, rows, toDomain), nil
}

func (r *BunRepository) GetByID(ctx context.Context, id string, locale domain.Locale) (*BlogPost, error) {
	return r.findOne(ctx, r.db, locale, "id", id)
}

func (r *BunRepository) GetBySlug(ctx context.Context, slug string, locale domain.Locale) (*BlogPost, error) {
	return r.findOne(ctx, r.db, locale, "slug", slug)
}

// Pinned returns the pinned post of locale, or nil when none is pinned.
func (r *BunRepository) Pinned(ctx context.Context, locale domain.Locale) (*BlogPost, error) {
	return r.findOne(ctx, r.db, locale, "is_pinned", true)
}

func (r *BunRepository) Create(ctx context.Context, input CreateBlogPostInput, locale domain.Locale) (*BlogPost, error) {
	post := newBlogPost(input, r.settings.NewID(), r.settings.Now())
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if post.IsPinned {
			if err := r.unpinOthers(ctx, tx, locale, post.ID); err != nil {
				return err
			}
		}
		rec := toRecord(post)
		return r.table.Insert(ctx, tx, locale, &rec)
	})
	if err != nil {
		return nil, r.fail("create", locale, post.ID, err)
	}
	return &post, nil
}

func (r *BunRepository) Update(ctx context.Context, id string, patch BlogPostPatch, locale domain.Locale) (*BlogPost, error) {
	var updated *BlogPost
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		now := r.settings.Now()
		columns := patchColumns(patch)
		columns["updated_at"] = now
		if err := r.table.Update(ctx, tx, locale, id, columns); err != nil {
			return err
		}
		if patch.IsPinned != nil && *patch.IsPinned {
			if err := r.unpinOthers(ctx, tx, locale, id); err != nil {
				return err
			}
		}
		found, err := r.findOne(ctx, tx, locale, "id", id)
		updated = found
		return err
	})
	if err != nil {
		return nil, r.fail("update", locale, id, err)
	}
	return updated, nil
}

// Pin makes id the only pinned post of locale in one transaction.
func (r *BunRepository) Pin(ctx context.Context, id string, locale domain.Locale) (*BlogPost, error) {
	pinned := true
	return r.Update(ctx, id, BlogPostPatch{IsPinned: &pinned}, locale)
}

// Unpin clears the pin of id.
func (r *BunRepository) Unpin(ctx context.Context, id string, locale domain.Locale) (*BlogPost, error) {
	pinned := false
	return r.Update(ctx, id, BlogPostPatch{IsPinned: &pinned}, locale)
}

func (r *BunRepository) Delete(ctx context.Context, id string, locale domain.Locale) error {
	if err := r.table.Delete(ctx, r.db, locale, id); err != nil {
		return r.fail("delete", locale, id, err)
	}
	return nil
}

// EnsureSchema creates the locale's table when it does not exist yet.
func (r *BunRepository) EnsureSchema(ctx context.Context, locale domain.Locale) error {
	return r.table.CreateSchema(ctx, r.db, locale)
}

func (r *BunRepository) unpinOthers(ctx context.Context, idb bun.IDB, locale domain.Locale, keepID string) error {
	cleared, err := r.table.UpdateWhere(ctx, idb, locale,
		map[string]any{"is_pinned": false, "updated_at": r.settings.Now()},
		"is_pinned = ? AND id <> ?", true, keepID)
	if err != nil {
		return err
	}
	if cleared > 0 {
		r.settings.Logger.Debug("blog post pin moved", "locale", locale.String(), "id", keepID, "cleared", cleared)
	}
	return nil
}

func (r *BunRepository) findOne(ctx context.Context, idb bun.IDB, locale domain.Locale, column string, value any) (*BlogPost, error) {
	rec, err := r.table.FindBy(ctx, idb, locale, column, value)
	if err != nil {
		return nil, r.fail("get", locale, "", err)
	}
	if rec == nil {
		return nil, nil
	}
	post, err := toDomain(*rec)
	if err != nil {
		return nil, r.fail("get", locale, rec.ID, err)
	}
	return &post, nil
}

func (r *BunRepository) fail(op string, locale domain.Locale, id string, err error) error {
	if domain.IsNotFound(err) {
		return err
	}
	r.settings.Logger.Error("blog post store operation failed",
		"op", op, "entity", entityName, "locale", locale.String(), "id", id, "error", err)
	return err
}
