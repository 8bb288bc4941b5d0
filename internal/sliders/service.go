package sliders

import (
	"context"
	"fmt"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/logging"
	"github.com/zirospace/zirospace-cms/pkg/interfaces"
)

type Service interface {
	List(ctx context.Context, locale domain.Locale) ([]Slider, error)
	Get(ctx context.Context, id string, locale domain.Locale) (*Slider, error)
	Create(ctx context.Context, input CreateSliderInput, locale domain.Locale) (*Slider, error)
	Update(ctx context.Context, id string, patch SliderPatch, locale domain.Locale) (*Slider, error)
	Delete(ctx context.Context, id string, locale domain.Locale) error
	UpdateOrder(ctx context.Context, orders []domain.OrderUpdate, locale domain.Locale) error
}

type service struct {
	repo   Repository
	logger interfaces.Logger
}

func NewService(repo Repository, logger interfaces.Logger) Service {
	return &service{repo: repo, logger: logging.Or(logger)}
}

func (s *service) List(ctx context.Context, locale domain.Locale) ([]Slider, error) {
	return s.repo.List(ctx, locale)
}

func (s *service) Get(ctx context.Context, id string, locale domain.Locale) (*Slider, error) {
	return s.repo.GetByID(ctx, id, locale)
}

func (s *service) Create(ctx context.Context, input CreateSliderInput, locale domain.Locale) (*Slider, error) {
	domain.TrimAll(&input.Title, &input.Theme)
	input.Images = trimImages(input.Images)

	rules := domain.NewRules(resourceName)
	rules.Required("title", input.Title)
	rules.NonNegative("orderIndex", input.OrderIndex)
	checkImages(rules, input.Images)
	if err := rules.Err(); err != nil {
		s.logger.Debug("slider create rejected", "locale", locale.String(), "error", err)
		return nil, err
	}
	return s.repo.Create(ctx, input, locale)
}

func (s *service) Update(ctx context.Context, id string, patch SliderPatch, locale domain.Locale) (*Slider, error) {
	patch.Title = domain.Trimmed(patch.Title)
	patch.Theme = domain.Trimmed(patch.Theme)

	rules := domain.NewRules(resourceName)
	rules.RequiredIfSet("title", patch.Title)
	rules.NonNegative("orderIndex", patch.OrderIndex)
	if patch.Images != nil {
		images := trimImages(*patch.Images)
		checkImages(rules, images)
		patch.Images = &images
	}
	if err := rules.Err(); err != nil {
		s.logger.Debug("slider update rejected", "locale", locale.String(), "id", id, "error", err)
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

func trimImages(images []SliderImage) []SliderImage {
	if images == nil {
		return nil
	}
	out := make([]SliderImage, 0, len(images))
	for _, img := range images {
		domain.TrimAll(&img.URL, &img.Alt)
		if img.URL == "" && img.Alt == "" {
			continue
		}
		out = append(out, img)
	}
	return out
}

func checkImages(rules *domain.Rules, images []SliderImage) {
	for i, img := range images {
		field := fmt.Sprintf("images[%d]", i)
		if img.URL == "" {
			rules.Fail(field, "image_url_required", "image url cannot be blank")
			continue
		}
		rules.ImageAlt(field, img.URL, img.Alt)
	}
}
