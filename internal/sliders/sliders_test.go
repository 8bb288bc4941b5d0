package sliders

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
	"github.com/zirospace/zirospace-cms/pkg/testsupport"
)

var layouts = map[string]func(*bun.DB, ...store.Option) *BunRepository{
	"remote": NewRemoteRepository,
	"local":  NewLocalRepository,
}

func newTestRepository(t *testing.T, ctor func(*bun.DB, ...store.Option) *BunRepository) *BunRepository {
	t.Helper()
	repo := ctor(testsupport.NewSQLiteDB(t),
		store.WithClock(testsupport.SteppingClock(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Second)),
		store.WithIDGenerator(testsupport.SequentialIDs("sl")),
	)
	for _, locale := range domain.SupportedLocales {
		if err := repo.EnsureSchema(context.Background(), locale); err != nil {
			t.Fatalf("ensure schema: %v", err)
		}
	}
	return repo
}

func TestRepository_ImagesFollowParent(t *testing.T) {
	for name, ctor := range layouts {
		t.Run(name, func(t *testing.T) {
			repo := newTestRepository(t, ctor)
			ctx := context.Background()

			first := []SliderImage{{URL: "https://cdn.example.com/1.png", Alt: "one"}, {URL: "https://cdn.example.com/2.png", Alt: "two"}}
			created, err := repo.Create(ctx, CreateSliderInput{Title: "Mobile", Images: first}, domain.LocaleEN)
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			got, err := repo.GetByID(ctx, created.ID, domain.LocaleEN)
			if err != nil || got == nil {
				t.Fatalf("get: (%v, %v)", got, err)
			}
			if !reflect.DeepEqual(got.Images, first) {
				t.Fatalf("expected images %v, got %v", first, got.Images)
			}

			replaced := []SliderImage{{URL: "https://cdn.example.com/3.png", Alt: "three"}}
			updated, err := repo.Update(ctx, created.ID, SliderPatch{Images: &replaced}, domain.LocaleEN)
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if !reflect.DeepEqual(updated.Images, replaced) || updated.Title != "Mobile" {
				t.Fatalf("expected replaced images and kept title, got %#v", updated)
			}

			theme := "dark"
			updated, err = repo.Update(ctx, created.ID, SliderPatch{Theme: &theme}, domain.LocaleEN)
			if err != nil {
				t.Fatalf("update theme: %v", err)
			}
			if !reflect.DeepEqual(updated.Images, replaced) {
				t.Fatalf("images must survive an update that omits them, got %v", updated.Images)
			}

			if err := repo.Delete(ctx, created.ID, domain.LocaleEN); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if missing, err := repo.GetByID(ctx, created.ID, domain.LocaleEN); missing != nil || err != nil {
				t.Fatalf("expected deleted slider to be gone, got (%v, %v)", missing, err)
			}
		})
	}
}

func TestRepository_EmptyImagesRenderAsEmptySlice(t *testing.T) {
	for name, ctor := range layouts {
		t.Run(name, func(t *testing.T) {
			repo := newTestRepository(t, ctor)
			created, err := repo.Create(context.Background(), CreateSliderInput{Title: "Bare"}, domain.LocalePL)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			list, err := repo.List(context.Background(), domain.LocalePL)
			if err != nil || len(list) != 1 {
				t.Fatalf("list: (%v, %v)", list, err)
			}
			if list[0].ID != created.ID || list[0].Images == nil || len(list[0].Images) != 0 {
				t.Fatalf("expected empty non-nil images, got %#v", list[0].Images)
			}
		})
	}
}

func TestRepository_Reorder(t *testing.T) {
	repo := newTestRepository(t, NewRemoteRepository)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"A", "B", "C"} {
		created, err := repo.Create(ctx, CreateSliderInput{Title: title}, domain.LocaleEN)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, created.ID)
	}
	if err := repo.UpdateOrder(ctx, domain.OrderFromSlice([]string{ids[1], ids[2], ids[0]}), domain.LocaleEN); err != nil {
		t.Fatalf("update order: %v", err)
	}
	list, _ := repo.List(ctx, domain.LocaleEN)
	var titles []string
	for _, s := range list {
		titles = append(titles, s.Title)
	}
	if !reflect.DeepEqual(titles, []string{"B", "C", "A"}) {
		t.Fatalf("unexpected order %v", titles)
	}
}

func TestService_RejectsImagesWithoutAlt(t *testing.T) {
	svc := NewService(newTestRepository(t, NewLocalRepository), nil)

	_, err := svc.Create(context.Background(), CreateSliderInput{
		Title:  "Gallery",
		Images: []SliderImage{{URL: "https://cdn.example.com/1.png"}, {URL: " ", Alt: " "}},
	}, domain.LocaleEN)
	var invalid *domain.ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := invalid.Fields()["images[0]"]; !ok || len(invalid.Fields()) != 1 {
		t.Fatalf("expected only images[0] to fail, got %v", invalid.Fields())
	}
}

func TestMapperRoundTrip(t *testing.T) {
	created := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	want := Slider{
		ID:    "sl-1",
		Title: "Clinic rollout",
		Theme: "dark",
		Images: []SliderImage{
			{URL: "https://cdn.example.com/a.png", Alt: "Reception"},
			{URL: "https://cdn.example.com/b.png", Alt: "Tablet"},
		},
		OrderIndex: 1,
		CreatedAt:  created,
		UpdatedAt:  created.Add(time.Hour),
	}

	got, err := toDomain(toRecord(want), want.Images)
	if err != nil {
		t.Fatalf("toDomain: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch\nwant: %#v\ngot:  %#v", want, got)
	}
}
