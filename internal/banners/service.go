package banners

import (
	"context"
	"time"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/logging"
	"github.com/zirospace/zirospace-cms/pkg/interfaces"
)

// Service exposes the banner use-cases.
type Service interface {
	List(ctx context.Context, locale domain.Locale) ([]Banner, error)
	// Live returns the banners shown at the current time.
	Live(ctx context.Context, locale domain.Locale) ([]Banner, error)
	Get(ctx context.Context, id string, locale domain.Locale) (*Banner, error)
	Create(ctx context.Context, input CreateBannerInput, locale domain.Locale) (*Banner, error)
	Update(ctx context.Context, id string, patch BannerPatch, locale domain.Locale) (*Banner, error)
	Delete(ctx context.Context, id string, locale domain.Locale) error
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger interfaces.Logger
}

// NewService wraps repo with window validation. A nil clock uses time.Now.
func NewService(repo Repository, now func() time.Time, logger interfaces.Logger) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now, logger: logging.Or(logger)}
}

func (s *service) List(ctx context.Context, locale domain.Locale) ([]Banner, error) {
	return s.repo.List(ctx, locale)
}

func (s *service) Live(ctx context.Context, locale domain.Locale) ([]Banner, error) {
	all, err := s.repo.List(ctx, locale)
	if err != nil {
		return nil, err
	}
	at := s.now()
	live := make([]Banner, 0, len(all))
	for _, banner := range all {
		if banner.LiveAt(at) {
			live = append(live, banner)
		}
	}
	return live, nil
}

func (s *service) Get(ctx context.Context, id string, locale domain.Locale) (*Banner, error) {
	return s.repo.GetByID(ctx, id, locale)
}

func (s *service) Create(ctx context.Context, input CreateBannerInput, locale domain.Locale) (*Banner, error) {
	domain.TrimAll(&input.Title, &input.ImageURL, &input.ImageAlt, &input.BackgroundColor)

	rules := domain.NewRules(resourceName)
	rules.Required("title", input.Title)
	rules.ImageAlt("imageAlt", input.ImageURL, input.ImageAlt)
	checkWindow(rules, input.StartsAt, input.EndsAt)
	if err := rules.Err(); err != nil {
		s.logger.Debug("banner create rejected", "locale", locale.String(), "error", err)
		return nil, err
	}
	return s.repo.Create(ctx, input, locale)
}

func (s *service) Update(ctx context.Context, id string, patch BannerPatch, locale domain.Locale) (*Banner, error) {
	patch.Title = domain.Trimmed(patch.Title)
	patch.ImageURL = domain.Trimmed(patch.ImageURL)
	patch.ImageAlt = domain.Trimmed(patch.ImageAlt)
	patch.BackgroundColor = domain.Trimmed(patch.BackgroundColor)

	rules := domain.NewRules(resourceName)
	rules.RequiredIfSet("title", patch.Title)
	if patch.StartsAt != nil || patch.EndsAt != nil {
		current, err := s.repo.GetByID(ctx, id, locale)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, &domain.NotFoundError{Resource: resourceName, Key: id, Locale: locale}
		}
		starts, ends := current.StartsAt, current.EndsAt
		if patch.ClearStartsAt {
			starts = nil
		} else if patch.StartsAt != nil {
			starts = patch.StartsAt
		}
		if patch.ClearEndsAt {
			ends = nil
		} else if patch.EndsAt != nil {
			ends = patch.EndsAt
		}
		checkWindow(rules, starts, ends)
	}
	if err := rules.Err(); err != nil {
		s.logger.Debug("banner update rejected", "locale", locale.String(), "id", id, "error", err)
		return nil, err
	}
	return s.repo.Update(ctx, id, patch, locale)
}

func (s *service) Delete(ctx context.Context, id string, locale domain.Locale) error {
	return s.repo.Delete(ctx, id, locale)
}

func checkWindow(rules *domain.Rules, starts, ends *time.Time) {
	if starts != nil && ends != nil && !ends.After(*starts) {
		rules.Fail("endsAt", "window_invalid", "end must be after start")
	}
}
