package banners

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

var base = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestRepository(t *testing.T, ctor func(*bun.DB, ...store.Option) *BunRepository) *BunRepository {
	t.Helper()
	repo := ctor(testsupport.NewSQLiteDB(t),
		store.WithClock(testsupport.SteppingClock(base, time.Second)),
		store.WithIDGenerator(testsupport.SequentialIDs("banner")),
	)
	for _, locale := range domain.SupportedLocales {
		if err := repo.EnsureSchema(context.Background(), locale); err != nil {
			t.Fatalf("ensure schema: %v", err)
		}
	}
	return repo
}

func at(days int) *time.Time {
	t := base.AddDate(0, 0, days)
	return &t
}

func TestMapperRoundTrip(t *testing.T) {
	want := Banner{
		ID:              "b-1",
		Title:           "Summer",
		Content:         "Sale",
		ImageURL:        "https://cdn.example.com/s.png",
		ImageAlt:        "Sun",
		BackgroundColor: "#ff0",
		IsActive:        true,
		StartsAt:        at(1),
		EndsAt:          at(10),
		CreatedAt:       base,
		UpdatedAt:       base,
	}
	got, err := toDomain(toRecord(want))
	if err != nil {
		t.Fatalf("toDomain: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestBannerLiveAt(t *testing.T) {
	banner := Banner{IsActive: true, StartsAt: at(1), EndsAt: at(3)}
	cases := []struct {
		when time.Time
		want bool
	}{
		{*at(0), false},
		{*at(1), true},
		{*at(2), true},
		{*at(3), false},
	}
	for _, tc := range cases {
		if got := banner.LiveAt(tc.when); got != tc.want {
			t.Fatalf("LiveAt(%v) = %v, want %v", tc.when, got, tc.want)
		}
	}
	if (Banner{IsActive: false}).LiveAt(base) {
		t.Fatal("inactive banner must not be live")
	}
}

func TestBunRepository_Contract(t *testing.T) {
	for name, ctor := range map[string]func(*bun.DB, ...store.Option) *BunRepository{
		"remote": NewRemoteRepository,
		"local":  NewLocalRepository,
	} {
		t.Run(name, func(t *testing.T) {
			repo := newTestRepository(t, ctor)
			ctx := context.Background()

			created, err := repo.Create(ctx, CreateBannerInput{Title: "Promo", IsActive: true, StartsAt: at(1), EndsAt: at(5)}, domain.LocalePL)
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			got, err := repo.GetByID(ctx, created.ID, domain.LocalePL)
			if err != nil || got == nil {
				t.Fatalf("get: (%v, %v)", got, err)
			}
			if got.StartsAt == nil || !got.StartsAt.Equal(*at(1)) {
				t.Fatalf("starts at not preserved: %v", got.StartsAt)
			}

			updated, err := repo.Update(ctx, created.ID, BannerPatch{ClearEndsAt: true}, domain.LocalePL)
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if updated.EndsAt != nil {
				t.Fatalf("expected ends at cleared, got %v", updated.EndsAt)
			}
			if updated.StartsAt == nil || updated.Title != "Promo" || !updated.IsActive {
				t.Fatalf("unrelated fields changed: %#v", updated)
			}

			if got, err := repo.GetByID(ctx, "ghost", domain.LocalePL); got != nil || err != nil {
				t.Fatalf("expected (nil, nil), got (%v, %v)", got, err)
			}
			if err := repo.Delete(ctx, "ghost", domain.LocalePL); !domain.IsNotFound(err) {
				t.Fatalf("expected NotFoundError, got %v", err)
			}
		})
	}
}

func TestService_LiveAndWindowValidation(t *testing.T) {
	repo := newTestRepository(t, NewLocalRepository)
	svc := NewService(repo, func() time.Time { return *at(2) }, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateBannerInput{Title: "Bad", StartsAt: at(5), EndsAt: at(1)}, domain.LocaleEN); domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected window validation error, got %v", err)
	}

	live, err := svc.Create(ctx, CreateBannerInput{Title: "Live", IsActive: true, StartsAt: at(1), EndsAt: at(3)}, domain.LocaleEN)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateBannerInput{Title: "Later", IsActive: true, StartsAt: at(4)}, domain.LocaleEN); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateBannerInput{Title: "Off"}, domain.LocaleEN); err != nil {
		t.Fatalf("create: %v", err)
	}

	banners, err := svc.Live(ctx, domain.LocaleEN)
	if err != nil {
		t.Fatalf("live: %v", err)
	}
	if len(banners) != 1 || banners[0].ID != live.ID {
		t.Fatalf("expected only %s live, got %v", live.ID, banners)
	}

	if _, err := svc.Update(ctx, live.ID, BannerPatch{EndsAt: at(0)}, domain.LocaleEN); domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected merged window to be rejected, got %v", err)
	}
}
