package services

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
	"github.com/zirospace/zirospace-cms/pkg/testsupport"
)

func newTestRepository(t *testing.T, ctor func(*bun.DB, ...store.Option) *BunRepository) *BunRepository {
	t.Helper()
	repo := ctor(testsupport.NewSQLiteDB(t),
		store.WithClock(testsupport.SteppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Second)),
		store.WithIDGenerator(testsupport.SequentialIDs("svc")),
	)
	for _, locale := range domain.SupportedLocales {
		if err := repo.EnsureSchema(context.Background(), locale); err != nil {
			t.Fatalf("ensure schema: %v", err)
		}
	}
	return repo
}

func TestMapperRoundTrip(t *testing.T) {
	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	want := Offering{
		ID:              "svc-1",
		Title:           "Web App",
		Slug:            "web-app",
		Description:     "Products for the browser",
		Content:         "<p>Body</p>",
		ImageURL:        "https://cdn.example.com/w.png",
		ImageAlt:        "Browser",
		Keywords:        []string{"react", "go"},
		MetaTitle:       "Web apps",
		MetaDescription: "We build web apps",
		IsPublished:     true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	got, err := toDomain(toRecord(want))
	if err != nil {
		t.Fatalf("toDomain: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestService_CreateNormalizesTitleAndSlug(t *testing.T) {
	for name, ctor := range map[string]func(*bun.DB, ...store.Option) *BunRepository{
		"remote": NewRemoteRepository,
		"local":  NewLocalRepository,
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewService(newTestRepository(t, ctor), nil)
			ctx := context.Background()

			created, err := svc.Create(ctx, CreateOfferingInput{Title: "  Web App  "}, domain.LocaleEN)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if created.Title != "Web App" || created.Slug != "web-app" {
				t.Fatalf("expected title %q slug %q, got %q %q", "Web App", "web-app", created.Title, created.Slug)
			}

			bySlug, err := svc.GetBySlug(ctx, "web-app", domain.LocaleEN)
			if err != nil || bySlug == nil || bySlug.ID != created.ID {
				t.Fatalf("get by slug: (%v, %v)", bySlug, err)
			}
			if missing, err := svc.GetBySlug(ctx, "Web-App", domain.LocaleEN); missing != nil || err != nil {
				t.Fatalf("slug lookup must be exact, got (%v, %v)", missing, err)
			}
		})
	}
}

func TestService_PublishedAndPartialUpdate(t *testing.T) {
	svc := NewService(newTestRepository(t, NewLocalRepository), nil)
	ctx := context.Background()

	draft, err := svc.Create(ctx, CreateOfferingInput{Title: "Draft", Keywords: []string{"a"}}, domain.LocaleEN)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateOfferingInput{Title: "Live", IsPublished: true}, domain.LocaleEN); err != nil {
		t.Fatalf("create: %v", err)
	}

	published, err := svc.Published(ctx, domain.LocaleEN)
	if err != nil {
		t.Fatalf("published: %v", err)
	}
	if len(published) != 1 || published[0].Title != "Live" {
		t.Fatalf("expected only Live, got %v", published)
	}

	on := true
	updated, err := svc.Update(ctx, draft.ID, OfferingPatch{IsPublished: &on}, domain.LocaleEN)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.IsPublished || updated.Slug != "draft" || !reflect.DeepEqual(updated.Keywords, []string{"a"}) {
		t.Fatalf("unexpected merge %#v", updated)
	}
	if err := svc.Delete(ctx, "ghost", domain.LocaleEN); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
