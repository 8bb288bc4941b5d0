package blogposts

import (
	"context"
	"fmt"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/logging"
	"github.com/zirospace/zirospace-cms/internal/store"
	"github.com/zirospace/zirospace-cms/pkg/interfaces"
)

// Service exposes the blog post use-cases.
type Service interface {
	List(ctx context.Context, locale domain.Locale) ([]BlogPost, error)
	Get(ctx context.Context, id string, locale domain.Locale) (*BlogPost, error)
	GetBySlug(ctx context.Context, slug string, locale domain.Locale) (*BlogPost, error)
	Pinned(ctx context.Context, locale domain.Locale) (*BlogPost, error)
	Create(ctx context.Context, input CreateBlogPostInput, locale domain.Locale) (*BlogPost, error)
	Update(ctx context.Context, id string, patch BlogPostPatch, locale domain.Locale) (*BlogPost, error)
	Pin(ctx context.Context, id string, locale domain.Locale) (*BlogPost, error)
	Unpin(ctx context.Context, id string, locale domain.Locale) (*BlogPost, error)
	Delete(ctx context.Context, id string, locale domain.Locale) error
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

func (s *service) List(ctx context.Context, locale domain.Locale) ([]BlogPost, error) {
	return s.repo.List(ctx, locale)
}

func (s *service) Get(ctx context.Context, id string, locale domain.Locale) (*BlogPost, error) {
	return s.repo.GetByID(ctx, id, locale)
}

func (s *service) GetBySlug(ctx context.Context, slug string, locale domain.Locale) (*BlogPost, error) {
	return s.repo.GetBySlug(ctx, slug, locale)
}

func (s *service) Pinned(ctx context.Context, locale domain.Locale) (*BlogPost, error) {
	return s.repo.Pinned(ctx, locale)
}

func (s *service) Create(ctx context.Context, input CreateBlogPostInput, locale domain.Locale) (*BlogPost, error) {
	domain.TrimAll(&input.Title, &input.Slug, &input.Subtitle, &input.Excerpt,
		&input.ImageURL, &input.ImageAlt, &input.AuthorName)
	input.Keywords = store.StringList(domain.TrimList(input.Keywords))

	rules := domain.NewRules(resourceName)
	rules.Required("title", input.Title)
	input.Slug = rules.ResolveSlug(input.Slug, input.Title)
	rules.ImageAlt("imageAlt", input.ImageURL, input.ImageAlt)
	if err := s.checkSlugFree(ctx, rules, input.Slug, "", locale); err != nil {
		return nil, err
	}
	if err := rules.Err(); err != nil {
		s.logger.Debug("blog post create rejected", "locale", locale.String(), "error", err)
		return nil, err
	}
	return s.repo.Create(ctx, input, locale)
}

func (s *service) Update(ctx context.Context, id string, patch BlogPostPatch, locale domain.Locale) (*BlogPost, error) {
	patch.Title = domain.Trimmed(patch.Title)
	patch.Slug = domain.Trimmed(patch.Slug)
	patch.Subtitle = domain.Trimmed(patch.Subtitle)
	patch.Excerpt = domain.Trimmed(patch.Excerpt)
	patch.ImageURL = domain.Trimmed(patch.ImageURL)
	patch.ImageAlt = domain.Trimmed(patch.ImageAlt)
	patch.AuthorName = domain.Trimmed(patch.AuthorName)
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
	if patch.ImageURL != nil || patch.ImageAlt != nil {
		if err := s.checkImage(ctx, rules, id, patch, locale); err != nil {
			return nil, err
		}
	}
	if err := rules.Err(); err != nil {
		s.logger.Debug("blog post update rejected", "locale", locale.String(), "id", id, "error", err)
		return nil, err
	}
	return s.repo.Update(ctx, id, patch, locale)
}

func (s *service) Pin(ctx context.Context, id string, locale domain.Locale) (*BlogPost, error) {
	return s.repo.Pin(ctx, id, locale)
}

func (s *service) Unpin(ctx context.Context, id string, locale domain.Locale) (*BlogPost, error) {
	return s.repo.Unpin(ctx, id, locale)
}

func (s *service) Delete(ctx context.Context, id string, locale domain.Locale) error {
	return s.repo.Delete(ctx, id, locale)
}

// checkImage validates the image pair after merging the patch over the
// stored post, so clearing only the alt of an imaged post is rejected.
func (s *service) checkImage(ctx context.Context, rules *domain.Rules, id string, patch BlogPostPatch, locale domain.Locale) error {
	current, err := s.repo.GetByID(ctx, id, locale)
	if err != nil {
		return err
	}
	if current == nil {
		return &domain.NotFoundError{Resource: resourceName, Key: id, Locale: locale}
	}
	url, alt := current.ImageURL, current.ImageAlt
	if patch.ImageURL != nil {
		url = *patch.ImageURL
	}
	if patch.ImageAlt != nil {
		alt = *patch.ImageAlt
	}
	rules.ImageAlt("imageAlt", url, alt)
	return nil
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
