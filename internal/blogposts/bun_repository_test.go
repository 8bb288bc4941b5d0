package blogposts

import (
	"context"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
	"github.com/zirospace/zirospace-cms/pkg/testsupport"
)

type constructor func(db *bun.DB, opts ...store.Option) *BunRepository

var layouts = map[string]constructor{
	"remote": NewRemoteRepository,
	"local":  NewLocalRepository,
}

func newTestRepository(t *testing.T, ctor constructor) *BunRepository {
	t.Helper()
	repo := ctor(testsupport.NewSQLiteDB(t),
		store.WithClock(testsupport.SteppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Second)),
		store.WithIDGenerator(testsupport.SequentialIDs("post")),
	)
	for _, locale := range domain.SupportedLocales {
		if err := repo.EnsureSchema(context.Background(), locale); err != nil {
			t.Fatalf("ensure schema %s: %v", locale, err)
		}
	}
	return repo
}

func forEachLayout(t *testing.T, fn func(t *testing.T, repo *BunRepository)) {
	for name, ctor := range layouts {
		t.Run(name, func(t *testing.T) {
			fn(t, newTestRepository(t, ctor))
		})
	}
}

func mustCreate(t *testing.T, repo *BunRepository, locale domain.Locale, input CreateBlogPostInput) *BlogPost {
	t.Helper()
	if input.Slug == "" {
		input.Slug = "post-" + input.Title
	}
	created, err := repo.Create(context.Background(), input, locale)
	if err != nil {
		t.Fatalf("create %q: %v", input.Title, err)
	}
	return created
}

func pinnedIDs(t *testing.T, repo *BunRepository, locale domain.Locale) []string {
	t.Helper()
	posts, err := repo.List(context.Background(), locale)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var ids []string
	for _, post := range posts {
		if post.IsPinned {
			ids = append(ids, post.ID)
		}
	}
	return ids
}

func TestBunRepository_PinMovesExclusively(t *testing.T) {
	forEachLayout(t, func(t *testing.T, repo *BunRepository) {
		ctx := context.Background()
		a := mustCreate(t, repo, domain.LocaleEN, CreateBlogPostInput{Title: "a", IsPinned: true})
		b := mustCreate(t, repo, domain.LocaleEN, CreateBlogPostInput{Title: "b"})

		if _, err := repo.Pin(ctx, b.ID, domain.LocaleEN); err != nil {
			t.Fatalf("pin: %v", err)
		}

		gotA, _ := repo.GetByID(ctx, a.ID, domain.LocaleEN)
		gotB, _ := repo.GetByID(ctx, b.ID, domain.LocaleEN)
		if gotA.IsPinned || !gotB.IsPinned {
			t.Fatalf("expected only b pinned, got a=%v b=%v", gotA.IsPinned, gotB.IsPinned)
		}
		pinned, err := repo.Pinned(ctx, domain.LocaleEN)
		if err != nil || pinned == nil || pinned.ID != b.ID {
			t.Fatalf("expected pinned b, got (%v, %v)", pinned, err)
		}
	})
}

func TestBunRepository_PinSequencesKeepSinglePin(t *testing.T) {
	forEachLayout(t, func(t *testing.T, repo *BunRepository) {
		ctx := context.Background()
		ids := make([]string, 4)
		for i := range ids {
			ids[i] = mustCreate(t, repo, domain.LocalePL, CreateBlogPostInput{Title: string(rune('a' + i))}).ID
		}

		rng := rand.New(rand.NewSource(7))
		var last string
		for step := 0; step < 25; step++ {
			id := ids[rng.Intn(len(ids))]
			if rng.Intn(4) == 0 {
				if _, err := repo.Unpin(ctx, id, domain.LocalePL); err != nil {
					t.Fatalf("unpin: %v", err)
				}
				if id == last {
					last = ""
				}
			} else {
				if _, err := repo.Pin(ctx, id, domain.LocalePL); err != nil {
					t.Fatalf("pin: %v", err)
				}
				last = id
			}

			pinned := pinnedIDs(t, repo, domain.LocalePL)
			if len(pinned) > 1 {
				t.Fatalf("step %d: more than one pinned post: %v", step, pinned)
			}
			if last != "" && (len(pinned) != 1 || pinned[0] != last) {
				t.Fatalf("step %d: expected %s pinned, got %v", step, last, pinned)
			}
		}
	})
}

func TestBunRepository_CreatePinnedClearsPreviousPin(t *testing.T) {
	forEachLayout(t, func(t *testing.T, repo *BunRepository) {
		mustCreate(t, repo, domain.LocaleEN, CreateBlogPostInput{Title: "old", IsPinned: true})
		fresh := mustCreate(t, repo, domain.LocaleEN, CreateBlogPostInput{Title: "new", IsPinned: true})

		if got := pinnedIDs(t, repo, domain.LocaleEN); !reflect.DeepEqual(got, []string{fresh.ID}) {
			t.Fatalf("expected only %s pinned, got %v", fresh.ID, got)
		}
	})
}

func TestBunRepository_PinIsPerLocale(t *testing.T) {
	forEachLayout(t, func(t *testing.T, repo *BunRepository) {
		en := mustCreate(t, repo, domain.LocaleEN, CreateBlogPostInput{Title: "en", IsPinned: true})
		pl := mustCreate(t, repo, domain.LocalePL, CreateBlogPostInput{Title: "pl", IsPinned: true})

		if got := pinnedIDs(t, repo, domain.LocaleEN); !reflect.DeepEqual(got, []string{en.ID}) {
			t.Fatalf("en pin lost: %v", got)
		}
		if got := pinnedIDs(t, repo, domain.LocalePL); !reflect.DeepEqual(got, []string{pl.ID}) {
			t.Fatalf("pl pin lost: %v", got)
		}
	})
}

func TestBunRepository_PinMissingRollsBack(t *testing.T) {
	forEachLayout(t, func(t *testing.T, repo *BunRepository) {
		a := mustCreate(t, repo, domain.LocaleEN, CreateBlogPostInput{Title: "a", IsPinned: true})

		if _, err := repo.Pin(context.Background(), "ghost", domain.LocaleEN); !domain.IsNotFound(err) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if got := pinnedIDs(t, repo, domain.LocaleEN); !reflect.DeepEqual(got, []string{a.ID}) {
			t.Fatalf("expected pin untouched, got %v", got)
		}
	})
}

func TestBunRepository_ListNewestFirstWithKeywords(t *testing.T) {
	forEachLayout(t, func(t *testing.T, repo *BunRepository) {
		ctx := context.Background()
		first := mustCreate(t, repo, domain.LocaleEN, CreateBlogPostInput{Title: "first", Keywords: []string{"go", "cms"}})
		second := mustCreate(t, repo, domain.LocaleEN, CreateBlogPostInput{Title: "second"})

		posts, err := repo.List(ctx, domain.LocaleEN)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(posts) != 2 || posts[0].ID != second.ID || posts[1].ID != first.ID {
			t.Fatalf("expected newest first, got %v", posts)
		}
		if !reflect.DeepEqual(posts[1].Keywords, []string{"go", "cms"}) {
			t.Fatalf("keywords not preserved: %v", posts[1].Keywords)
		}
		if posts[0].Keywords == nil {
			t.Fatal("expected empty keywords slice, got nil")
		}
	})
}

func TestBunRepository_PartialUpdateAndDelete(t *testing.T) {
	forEachLayout(t, func(t *testing.T, repo *BunRepository) {
		ctx := context.Background()
		published := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		created := mustCreate(t, repo, domain.LocaleEN, CreateBlogPostInput{
			Title:       "Keep",
			Excerpt:     "Keep me",
			AuthorName:  "Ola",
			PublishedAt: &published,
		})

		excerpt := "Changed"
		updated, err := repo.Update(ctx, created.ID, BlogPostPatch{Excerpt: &excerpt}, domain.LocaleEN)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Excerpt != "Changed" || updated.Title != "Keep" || updated.AuthorName != "Ola" {
			t.Fatalf("unexpected merge result %#v", updated)
		}
		if updated.PublishedAt == nil || !updated.PublishedAt.Equal(published) {
			t.Fatalf("published at lost: %v", updated.PublishedAt)
		}

		if err := repo.Delete(ctx, created.ID, domain.LocaleEN); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := repo.Delete(ctx, created.ID, domain.LocaleEN); !domain.IsNotFound(err) {
			t.Fatalf("expected NotFoundError on second delete, got %v", err)
		}
		if got, err := repo.GetByID(ctx, created.ID, domain.LocaleEN); got != nil || err != nil {
			t.Fatalf("expected (nil, nil), got (%v, %v)", got, err)
		}
	})
}
