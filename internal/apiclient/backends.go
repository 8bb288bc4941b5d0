package apiclient

import (
	"github.com/zirospace/zirospace-cms/internal/admin"
	"github.com/zirospace/zirospace-cms/internal/advisors"
	"github.com/zirospace/zirospace-cms/internal/banners"
	"github.com/zirospace/zirospace-cms/internal/casestudies"
	"github.com/zirospace/zirospace-cms/internal/httpapi"
	"github.com/zirospace/zirospace-cms/internal/services"
	"github.com/zirospace/zirospace-cms/internal/sliders"
	"github.com/zirospace/zirospace-cms/internal/testimonials"
)

// Backends points every admin collection at the server behind client.
func Backends(client *Client) admin.Backends {
	return admin.Backends{
		CaseStudies: NewOrderedResource[casestudies.CaseStudy, casestudies.CreateCaseStudyInput, casestudies.CaseStudyPatch](
			client, httpapi.SegmentCaseStudies, "case_study"),
		BlogPosts: NewBlogPosts(client),
		Testimonials: NewResource[testimonials.Testimonial, testimonials.CreateTestimonialInput, testimonials.TestimonialPatch](
			client, httpapi.SegmentTestimonials, "testimonial"),
		Banners: NewResource[banners.Banner, banners.CreateBannerInput, banners.BannerPatch](
			client, httpapi.SegmentBanners, "banner"),
		Services: NewResource[services.Offering, services.CreateOfferingInput, services.OfferingPatch](
			client, httpapi.SegmentServices, "service"),
		Advisors: NewOrderedResource[advisors.Advisor, advisors.CreateAdvisorInput, advisors.AdvisorPatch](
			client, httpapi.SegmentAdvisors, "advisor"),
		Sliders: NewOrderedResource[sliders.Slider, sliders.CreateSliderInput, sliders.SliderPatch](
			client, httpapi.SegmentSliders, "case_study_slider"),
	}
}
