package casestudies

import (
	"context"
	"errors"
	"testing"

	"github.com/zirospace/zirospace-cms/internal/domain"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(newTestRepository(t, NewLocalRepository))
}

func TestService_CreateTrimsAndDerivesSlug(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), CreateCaseStudyInput{
		Title: "  Mobile Banking  ",
		Tags:  []Tag{{Name: " finance "}, {Name: "Finance"}},
	}, domain.LocaleEN)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Title != "Mobile Banking" {
		t.Fatalf("expected trimmed title, got %q", created.Title)
	}
	if created.Slug != "mobile-banking" {
		t.Fatalf("expected derived slug, got %q", created.Slug)
	}
	if len(created.Tags) != 1 || created.Tags[0].Name != "finance" {
		t.Fatalf("expected normalized tags, got %v", created.Tags)
	}
}

func TestService_CreateValidatesInput(t *testing.T) {
	svc := newTestService(t)
	negative := -1

	_, err := svc.Create(context.Background(), CreateCaseStudyInput{
		Title:      "   ",
		Images:     []CaseStudyImage{{URL: "https://cdn.example.com/x.png"}},
		OrderIndex: &negative,
	}, domain.LocaleEN)

	var invalid *domain.ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	fields := invalid.Fields()
	for _, field := range []string{"title", "slug", "images[0]", "orderIndex"} {
		if _, ok := fields[field]; !ok {
			t.Fatalf("expected %s to be rejected, got %v", field, fields)
		}
	}
}

func TestService_RejectsTakenSlug(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateCaseStudyInput{Title: "Travel"}, domain.LocaleEN)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, CreateCaseStudyInput{Title: "Travel app"}, domain.LocaleEN)
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	if _, err := svc.Create(ctx, CreateCaseStudyInput{Title: "Travel"}, domain.LocaleEN); domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error for taken slug, got %v", err)
	}

	taken := first.Slug
	if _, err := svc.Update(ctx, second.ID, CaseStudyPatch{Slug: &taken}, domain.LocaleEN); domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error when renaming onto a taken slug, got %v", err)
	}

	own := first.Slug
	if _, err := svc.Update(ctx, first.ID, CaseStudyPatch{Slug: &own}, domain.LocaleEN); err != nil {
		t.Fatalf("keeping own slug should succeed, got %v", err)
	}
}

func TestService_UpdateRejectsBlankTitle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCaseStudyInput{Title: "Health"}, domain.LocaleEN)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	blank := "  "
	if _, err := svc.Update(ctx, created.ID, CaseStudyPatch{Title: &blank}, domain.LocaleEN); domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
