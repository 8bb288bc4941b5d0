package cms

import (
	"context"

	"github.com/zirospace/zirospace-cms/internal/admin"
	"github.com/zirospace/zirospace-cms/internal/advisors"
	"github.com/zirospace/zirospace-cms/internal/banners"
	"github.com/zirospace/zirospace-cms/internal/blogposts"
	"github.com/zirospace/zirospace-cms/internal/casestudies"
	"github.com/zirospace/zirospace-cms/internal/di"
	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/httpapi"
	"github.com/zirospace/zirospace-cms/internal/services"
	"github.com/zirospace/zirospace-cms/internal/sliders"
	"github.com/zirospace/zirospace-cms/internal/testimonials"
)

// Locale exports the locale type for consumers of the cms package.
type Locale = domain.Locale

const (
	LocaleEN = domain.LocaleEN
	LocalePL = domain.LocalePL
)

// CaseStudyService exports the case study service contract.
type CaseStudyService = casestudies.Service

// BlogPostService exports the blog post service contract.
type BlogPostService = blogposts.Service

type TestimonialService = testimonials.Service

type BannerService = banners.Service

// OfferingService exports the service offering contract.
type OfferingService = services.Service

type AdvisorService = advisors.Service

type SliderService = sliders.Service

// AdminStore exports the admin state container.
type AdminStore = *admin.Store

// Module represents the top level CMS runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a CMS module using the provided configuration and optional DI overrides.
func New(ctx context.Context, cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

func (m *Module) CaseStudies() CaseStudyService {
	return m.container.Services().CaseStudies
}

func (m *Module) BlogPosts() BlogPostService {
	return m.container.Services().BlogPosts
}

func (m *Module) Testimonials() TestimonialService {
	return m.container.Services().Testimonials
}

func (m *Module) Banners() BannerService {
	return m.container.Services().Banners
}

func (m *Module) Services() OfferingService {
	return m.container.Services().Services
}

func (m *Module) Advisors() AdvisorService {
	return m.container.Services().Advisors
}

func (m *Module) Sliders() SliderService {
	return m.container.Services().Sliders
}

// Admin returns the in-process admin state container.
func (m *Module) Admin() AdminStore {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.AdminStore()
}

// HTTPServer returns the gin server exposing the public and admin API.
func (m *Module) HTTPServer() *httpapi.Server {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.HTTPServer()
}

// EnsureSchema creates missing tables for every enabled locale.
func (m *Module) EnsureSchema(ctx context.Context) error {
	return m.container.EnsureSchema(ctx)
}

// Close releases the database opened by New.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
