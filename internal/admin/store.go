package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/zirospace/zirospace-cms/internal/advisors"
	"github.com/zirospace/zirospace-cms/internal/banners"
	"github.com/zirospace/zirospace-cms/internal/blogposts"
	"github.com/zirospace/zirospace-cms/internal/casestudies"
	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/services"
	"github.com/zirospace/zirospace-cms/internal/sliders"
	"github.com/zirospace/zirospace-cms/internal/testimonials"
)

// Entity names used as collection keys and revalidation tags.
const (
	EntityCaseStudies  = "case_studies"
	EntityBlogPosts    = "blog_posts"
	EntityTestimonials = "testimonials"
	EntityBanners      = "banners"
	EntityServices     = "services"
	EntityAdvisors     = "advisors"
	EntitySliders      = "case_study_sliders"
)

// Backends groups the server surfaces of every entity type.
type Backends struct {
	CaseStudies  Backend[casestudies.CaseStudy, casestudies.CreateCaseStudyInput, casestudies.CaseStudyPatch]
	BlogPosts    Backend[blogposts.BlogPost, blogposts.CreateBlogPostInput, blogposts.BlogPostPatch]
	Testimonials Backend[testimonials.Testimonial, testimonials.CreateTestimonialInput, testimonials.TestimonialPatch]
	Banners      Backend[banners.Banner, banners.CreateBannerInput, banners.BannerPatch]
	Services     Backend[services.Offering, services.CreateOfferingInput, services.OfferingPatch]
	Advisors     Backend[advisors.Advisor, advisors.CreateAdvisorInput, advisors.AdvisorPatch]
	Sliders      Backend[sliders.Slider, sliders.CreateSliderInput, sliders.SliderPatch]
}

// Store is the process-wide admin state: one collection per entity type.
type Store struct {
	CaseStudies  *Collection[casestudies.CaseStudy, casestudies.CreateCaseStudyInput, casestudies.CaseStudyPatch]
	BlogPosts    *BlogPosts
	Testimonials *Collection[testimonials.Testimonial, testimonials.CreateTestimonialInput, testimonials.TestimonialPatch]
	Banners      *Collection[banners.Banner, banners.CreateBannerInput, banners.BannerPatch]
	Services     *Collection[services.Offering, services.CreateOfferingInput, services.OfferingPatch]
	Advisors     *Collection[advisors.Advisor, advisors.CreateAdvisorInput, advisors.AdvisorPatch]
	Sliders      *Collection[sliders.Slider, sliders.CreateSliderInput, sliders.SliderPatch]
	Pins         *PinCoordinator
}

func NewStore(b Backends, opts ...Option) *Store {
	s := &Store{
		CaseStudies:  NewCollection(EntityCaseStudies, b.CaseStudies, opts...),
		BlogPosts:    NewCollection(EntityBlogPosts, b.BlogPosts, opts...),
		Testimonials: NewCollection(EntityTestimonials, b.Testimonials, opts...),
		Banners:      NewCollection(EntityBanners, b.Banners, opts...),
		Services:     NewCollection(EntityServices, b.Services, opts...),
		Advisors:     NewCollection(EntityAdvisors, b.Advisors, opts...),
		Sliders:      NewCollection(EntitySliders, b.Sliders, opts...),
	}
	s.Pins = NewPinCoordinator(s.BlogPosts)
	return s
}

type refresher interface {
	Entity() string
	Refresh(ctx context.Context, locale domain.Locale) error
}

func (s *Store) collections() []refresher {
	return []refresher{s.CaseStudies, s.BlogPosts, s.Testimonials, s.Banners, s.Services, s.Advisors, s.Sliders}
}

// RefreshAll reloads every collection of locale. Failures are joined; the
// collections that loaded keep their new items.
func (s *Store) RefreshAll(ctx context.Context, locale domain.Locale) error {
	var errs []error
	for _, c := range s.collections() {
		if err := c.Refresh(ctx, locale); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Entity(), err))
		}
	}
	return errors.Join(errs...)
}
