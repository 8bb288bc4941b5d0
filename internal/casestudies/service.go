package casestudies

import (
	"context"
	"fmt"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/logging"
	"github.com/zirospace/zirospace-cms/pkg/interfaces"
)

// Service exposes the case study use-cases to transports and the admin
// container. Input is trimmed and validated before it reaches the
// repository.
type Service interface {
	List(ctx context.Context, locale domain.Locale) ([]CaseStudy, error)
	Get(ctx context.Context, id string, locale domain.Locale) (*CaseStudy, error)
	GetBySlug(ctx context.Context, slug string, locale domain.Locale) (*CaseStudy, error)
	Create(ctx context.Context, input CreateCaseStudyInput, locale domain.Locale) (*CaseStudy, error)
	Update(ctx context.Context, id string, patch CaseStudyPatch, locale domain.Locale) (*CaseStudy, error)
	Delete(ctx context.Context, id string, locale domain.Locale) error
	UpdateOrder(ctx context.Context, orders []domain.OrderUpdate, locale domain.Locale) error
}

// ServiceOption configures the service.
type ServiceOption func(*service)

// WithLogger sets the logger used for rejected input.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo   Repository
	logger interfaces.Logger
}

// NewService wraps repo with validation and slug generation.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{repo: repo, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *service) List(ctx context.Context, locale domain.Locale) ([]CaseStudy, error) {
	return s.repo.List(ctx, locale)
}

func (s *service) Get(ctx context.Context, id string, locale domain.Locale) (*CaseStudy, error) {
	return s.repo.GetByID(ctx, id, locale)
}

func (s *service) GetBySlug(ctx context.Context, slug string, locale domain.Locale) (*CaseStudy, error) {
	return s.repo.GetBySlug(ctx, slug, locale)
}

func (s *service) Create(ctx context.Context, input CreateCaseStudyInput, locale domain.Locale) (*CaseStudy, error) {
	domain.TrimAll(&input.Title, &input.Subtitle, &input.Description, &input.Slug,
		&input.URL, &input.Color, &input.BackgroundColor)
	input.Images = trimImages(input.Images)
	input.Tags = normalizeTags(input.Tags)

	rules := domain.NewRules(resourceName)
	rules.Required("title", input.Title)
	input.Slug = rules.ResolveSlug(input.Slug, input.Title)
	rules.NonNegative("orderIndex", input.OrderIndex)
	checkImages(rules, input.Images)
	if err := s.checkSlugFree(ctx, rules, input.Slug, "", locale); err != nil {
		return nil, err
	}
	if err := rules.Err(); err != nil {
		s.logger.Debug("case study create rejected", "locale", locale.String(), "error", err)
		return nil, err
	}
	return s.repo.Create(ctx, input, locale)
}

func (s *service) Update(ctx context.Context, id string, patch CaseStudyPatch, locale domain.Locale) (*CaseStudy, error) {
	patch.Title = domain.Trimmed(patch.Title)
	patch.Subtitle = domain.Trimmed(patch.Subtitle)
	patch.Description = domain.Trimmed(patch.Description)
	patch.Slug = domain.Trimmed(patch.Slug)
	patch.URL = domain.Trimmed(patch.URL)
	patch.Color = domain.Trimmed(patch.Color)
	patch.BackgroundColor = domain.Trimmed(patch.BackgroundColor)

	rules := domain.NewRules(resourceName)
	rules.RequiredIfSet("title", patch.Title)
	rules.NonNegative("orderIndex", patch.OrderIndex)
	if patch.Slug != nil {
		rules.Slug(*patch.Slug)
		if err := s.checkSlugFree(ctx, rules, *patch.Slug, id, locale); err != nil {
			return nil, err
		}
	}
	if patch.Images != nil {
		images := trimImages(*patch.Images)
		checkImages(rules, images)
		patch.Images = &images
	}
	if patch.Tags != nil {
		tags := normalizeTags(*patch.Tags)
		patch.Tags = &tags
	}
	if err := rules.Err(); err != nil {
		s.logger.Debug("case study update rejected", "locale", locale.String(), "id", id, "error", err)
		return nil, err
	}
	return s.repo.Update(ctx, id, patch, locale)
}

func (s *service) Delete(ctx context.Context, id string, locale domain.Locale) error {
	return s.repo.Delete(ctx, id, locale)
}

func (s *service) UpdateOrder(ctx context.Context, orders []domain.OrderUpdate, locale domain.Locale) error {
	return s.repo.UpdateOrder(ctx, orders, locale)
}

// checkSlugFree records a field error when slug belongs to another case
// study of the partition.
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

func trimImages(images []CaseStudyImage) []CaseStudyImage {
	if images == nil {
		return nil
	}
	out := make([]CaseStudyImage, 0, len(images))
	for _, img := range images {
		domain.TrimAll(&img.URL, &img.Alt)
		if img.URL == "" && img.Alt == "" {
			continue
		}
		out = append(out, img)
	}
	return out
}

func checkImages(rules *domain.Rules, images []CaseStudyImage) {
	for i, img := range images {
		field := fmt.Sprintf("images[%d]", i)
		if img.URL == "" {
			rules.Fail(field, "image_url_required", "image url cannot be blank")
			continue
		}
		rules.ImageAlt(field, img.URL, img.Alt)
	}
}
