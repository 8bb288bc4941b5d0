package advisors

import (
	"context"
	"net/url"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/logging"
	"github.com/zirospace/zirospace-cms/pkg/interfaces"
)

// Service exposes the advisor use-cases.
type Service interface {
	List(ctx context.Context, locale domain.Locale) ([]Advisor, error)
	Get(ctx context.Context, id string, locale domain.Locale) (*Advisor, error)
	Create(ctx context.Context, input CreateAdvisorInput, locale domain.Locale) (*Advisor, error)
	Update(ctx context.Context, id string, patch AdvisorPatch, locale domain.Locale) (*Advisor, error)
	Delete(ctx context.Context, id string, locale domain.Locale) error
	UpdateOrder(ctx context.Context, orders []domain.OrderUpdate, locale domain.Locale) error
}

type service struct {
	repo   Repository
	logger interfaces.Logger
}

// NewService wraps repo with input validation.
func NewService(repo Repository, logger interfaces.Logger) Service {
	return &service{repo: repo, logger: logging.Or(logger)}
}

func (s *service) List(ctx context.Context, locale domain.Locale) ([]Advisor, error) {
	return s.repo.List(ctx, locale)
}

func (s *service) Get(ctx context.Context, id string, locale domain.Locale) (*Advisor, error) {
	return s.repo.GetByID(ctx, id, locale)
}

func (s *service) Create(ctx context.Context, input CreateAdvisorInput, locale domain.Locale) (*Advisor, error) {
	domain.TrimAll(&input.Name, &input.Role, &input.Bio, &input.ImageURL, &input.ImageAlt, &input.LinkedInURL)

	rules := domain.NewRules(resourceName)
	rules.Required("name", input.Name)
	rules.ImageAlt("imageAlt", input.ImageURL, input.ImageAlt)
	rules.NonNegative("orderIndex", input.OrderIndex)
	checkLink(rules, input.LinkedInURL)
	if err := rules.Err(); err != nil {
		s.logger.Debug("advisor create rejected", "locale", locale.String(), "error", err)
		return nil, err
	}
	return s.repo.Create(ctx, input, locale)
}

func (s *service) Update(ctx context.Context, id string, patch AdvisorPatch, locale domain.Locale) (*Advisor, error) {
	patch.Name = domain.Trimmed(patch.Name)
	patch.Role = domain.Trimmed(patch.Role)
	patch.Bio = domain.Trimmed(patch.Bio)
	patch.ImageURL = domain.Trimmed(patch.ImageURL)
	patch.ImageAlt = domain.Trimmed(patch.ImageAlt)
	patch.LinkedInURL = domain.Trimmed(patch.LinkedInURL)

	rules := domain.NewRules(resourceName)
	rules.RequiredIfSet("name", patch.Name)
	rules.NonNegative("orderIndex", patch.OrderIndex)
	if patch.ImageURL != nil && patch.ImageAlt != nil {
		rules.ImageAlt("imageAlt", *patch.ImageURL, *patch.ImageAlt)
	}
	if patch.LinkedInURL != nil {
		checkLink(rules, *patch.LinkedInURL)
	}
	if err := rules.Err(); err != nil {
		s.logger.Debug("advisor update rejected", "locale", locale.String(), "id", id, "error", err)
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

// checkLink accepts an empty link or an absolute http(s) URL.
func checkLink(rules *domain.Rules, raw string) {
	if raw == "" {
		return
	}
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		rules.Fail("linkedinUrl", "link_invalid", "link must be an absolute http(s) URL")
	}
}
