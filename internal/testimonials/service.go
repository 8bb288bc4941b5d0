package testimonials

import (
	"context"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/logging"
	"github.com/zirospace/zirospace-cms/pkg/interfaces"
)

// Service exposes the testimonial use-cases.
type Service interface {
	List(ctx context.Context, locale domain.Locale) ([]Testimonial, error)
	Get(ctx context.Context, id string, locale domain.Locale) (*Testimonial, error)
	Create(ctx context.Context, input CreateTestimonialInput, locale domain.Locale) (*Testimonial, error)
	Update(ctx context.Context, id string, patch TestimonialPatch, locale domain.Locale) (*Testimonial, error)
	Delete(ctx context.Context, id string, locale domain.Locale) error
}

type service struct {
	repo   Repository
	logger interfaces.Logger
}

// NewService wraps repo with input validation. A nil logger disables logging.
func NewService(repo Repository, logger interfaces.Logger) Service {
	return &service{repo: repo, logger: logging.Or(logger)}
}

func (s *service) List(ctx context.Context, locale domain.Locale) ([]Testimonial, error) {
	return s.repo.List(ctx, locale)
}

func (s *service) Get(ctx context.Context, id string, locale domain.Locale) (*Testimonial, error) {
	return s.repo.GetByID(ctx, id, locale)
}

func (s *service) Create(ctx context.Context, input CreateTestimonialInput, locale domain.Locale) (*Testimonial, error) {
	domain.TrimAll(&input.Quote, &input.AuthorName, &input.Position, &input.Company, &input.ImageURL, &input.ImageAlt)

	rules := domain.NewRules(resourceName)
	rules.Required("quote", input.Quote)
	rules.Required("authorName", input.AuthorName)
	rules.ImageAlt("imageAlt", input.ImageURL, input.ImageAlt)
	if err := rules.Err(); err != nil {
		s.logger.Debug("testimonial create rejected", "locale", locale.String(), "error", err)
		return nil, err
	}
	return s.repo.Create(ctx, input, locale)
}

func (s *service) Update(ctx context.Context, id string, patch TestimonialPatch, locale domain.Locale) (*Testimonial, error) {
	patch.Quote = domain.Trimmed(patch.Quote)
	patch.AuthorName = domain.Trimmed(patch.AuthorName)
	patch.Position = domain.Trimmed(patch.Position)
	patch.Company = domain.Trimmed(patch.Company)
	patch.ImageURL = domain.Trimmed(patch.ImageURL)
	patch.ImageAlt = domain.Trimmed(patch.ImageAlt)

	rules := domain.NewRules(resourceName)
	rules.RequiredIfSet("quote", patch.Quote)
	rules.RequiredIfSet("authorName", patch.AuthorName)
	if patch.ImageURL != nil && patch.ImageAlt != nil {
		rules.ImageAlt("imageAlt", *patch.ImageURL, *patch.ImageAlt)
	}
	if err := rules.Err(); err != nil {
		s.logger.Debug("testimonial update rejected", "locale", locale.String(), "id", id, "error", err)
		return nil, err
	}
	return s.repo.Update(ctx, id, patch, locale)
}

func (s *service) Delete(ctx context.Context, id string, locale domain.Locale) error {
	return s.repo.Delete(ctx, id, locale)
}
