package services

import (
	"context"
	"fmt"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/logging"
	"github.com/zirospace/zirospace-cms/internal/store"
	"github.com/zirospace/zirospace-cms/pkg/interfaces"
)

// Service exposes the offering use-cases.
type Service interface {
	List(ctx context.Context, locale domain.Locale) ([]Offering, error)
	// Published lists the offerings visible on the public site.
	Published(ctx context.Context, locale domain.Locale) ([]Offering, error)
	Get(ctx context.Context, id string, locale domain.Locale) (*Offering, error)
	GetBySlug(ctx context.Context, slug string, locale domain.Locale) (*Offering, error)
	Create(ctx context.Context, input CreateOfferingInput, locale domain.Locale) (*Offering, error)
	Update(ctx context.Context, id string, patch OfferingPatch, locale domain.Locale) (*Offering, error)
	Delete(ctx context.Context, id string, locale domain.Locale) error
}

type service struct {
	repo   Repository
	logger interfaces.Logger
}

// NewService wraps repo with trimming, slug derivation and validation.
func NewService(repo Repository, logger interfaces.Logger) Service {
	return &service{repo: repo, logger: logging.Or(logger)}
}

func (s *service) List(ctx context.Context, locale domain.Locale) ([]Offering, error) {
	return s.repo.List(ctx, locale)
}

func (s *service) Published(ctx context.Context, locale domain.Locale) ([]Offering, error) {
	all, err := s.repo.List(ctx, locale)
	if err != nil {
		return nil, err
	}
	published := make([]Offering, 0, len(all))
	for _, offering := range all {
		if offering.IsPublished {
			published = append(published, offering)
		}
	}
	return published, nil
}

func (s *service) Get(ctx context.Context, id string, locale domain.Locale) (*Offering, error) {
	return s.repo.GetByID(ctx, id, locale)
}

func (s *service) GetBySlug(ctx context.Context, slug string, locale domain.Locale) (*Offering, error) {
	return s.repo.GetBySlug(ctx, slug, locale)
}

func (s *service) Create(ctx context.Context, input CreateOfferingInput, locale domain.Locale) (*Offering, error) {
	domain.TrimAll(&input.Title, &input.Slug, &input.Description, &input.ImageURL,
		&input.ImageAlt, &input.MetaTitle, &input.MetaDescription)
	input.Keywords = store.StringList(domain.TrimList(input.Keywords))

	rules := domain.NewRules(resourceName)
	rules.Required("title", input.Title)
	input.Slug = rules.ResolveSlug(input.Slug, input.Title)
	rules.ImageAlt("imageAlt", input.ImageURL, input.ImageAlt)
	if err := s.checkSlugFree(ctx, rules, input.Slug, "", locale); err != nil {
		return nil, err
	}
	if err := rules.Err(); err != nil {
		s.logger.Debug("service create rejected", "locale", locale.String(), "error", err)
		return nil, err
	}
	return s.repo.Create(ctx, input, locale)
}

func (s *service) Update(ctx context.Context, id string, patch OfferingPatch, locale domain.Locale) (*Offering, error) {
	patch.Title = domain.Trimmed(patch.Title)
	patch.Slug = domain.Trimmed(patch.Slug)
	patch.Description = domain.Trimmed(patch.Description)
	patch.ImageURL = domain.Trimmed(patch.ImageURL)
	patch.ImageAlt = domain.Trimmed(patch.ImageAlt)
	patch.MetaTitle = domain.Trimmed(patch.MetaTitle)
	patch.MetaDescription = domain.Trimmed(patch.MetaDescription)
	if patch.Keywords != nil {
		keywords := store.StringList(domain.TrimList(*patch.Keywords))
		patch.Keywords = &keywords
	}

	rules := domain.NewRules(resourceName)
	rules.RequiredIfSet("title", patch.Title)
	if patch.Slug != nil {
		rules.Slug(*patch.Slug)
		if err := s.checkSlugFree(ctx, rules, *patch.Slug, id, locale); err != nil {
			return nil, err
		}
	}
	if patch.ImageURL != nil && patch.ImageAlt != nil {
		rules.ImageAlt("imageAlt", *patch.ImageURL, *patch.ImageAlt)
	}
	if err := rules.Err(); err != nil {
		s.logger.Debug("service update rejected", "locale", locale.String(), "id", id, "error", err)
		return nil, err
	}
	return s.repo.Update(ctx, id, patch, locale)
}

func (s *service) Delete(ctx context.Context, id string, locale domain.Locale) error {
	return s.repo.Delete(ctx, id, locale)
}

func (s *service) checkSlugFree(ctx context.Context, rules *domain.Rules, slug, selfID string, locale domain.Locale) error {
	if slug == "" {
		return nil
	}
	existing, err := s.repo.GetBySlug(ctx, slug, locale)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		rules.Fail("slug", "slug_taken", fmt.Sprintf("slug %q is already used", slug))
	}
	return nil
}
