package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zirospace/zirospace-cms/internal/advisors"
	"github.com/zirospace/zirospace-cms/internal/banners"
	"github.com/zirospace/zirospace-cms/internal/blogposts"
	"github.com/zirospace/zirospace-cms/internal/casestudies"
	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/logging"
	"github.com/zirospace/zirospace-cms/internal/services"
	"github.com/zirospace/zirospace-cms/internal/sliders"
	"github.com/zirospace/zirospace-cms/internal/testimonials"
	"github.com/zirospace/zirospace-cms/pkg/interfaces"
)

// Route segments, one per entity type.
const (
	SegmentCaseStudies  = "case-studies"
	SegmentBlogPosts    = "blog-posts"
	SegmentTestimonials = "testimonials"
	SegmentBanners      = "banners"
	SegmentServices     = "services"
	SegmentAdvisors     = "advisors"
	SegmentSliders      = "sliders"
)

const localeKey = "cms.locale"

// Services are the entity use-cases served over HTTP.
type Services struct {
	CaseStudies  casestudies.Service
	BlogPosts    blogposts.Service
	Testimonials testimonials.Service
	Banners      banners.Service
	Services     services.Service
	Advisors     advisors.Service
	Sliders      sliders.Service
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// Server exposes the public content API and the admin mutation API.
type Server struct {
	Engine  *gin.Engine
	logger  interfaces.Logger
	health  HealthChecker
	auth    gin.HandlerFunc
	locales map[domain.Locale]struct{}
	metrics *metrics
}

type Option func(*Server)

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHealthChecker makes /healthz ping the store.
func WithHealthChecker(checker HealthChecker) Option {
	return func(s *Server) { s.health = checker }
}

// WithAdminAuth guards every admin route. The default allows all requests.
func WithAdminAuth(mw gin.HandlerFunc) Option {
	return func(s *Server) {
		if mw != nil {
			s.auth = mw
		}
	}
}

// WithLocales restricts the served locales to a subset of the supported ones.
func WithLocales(locales ...domain.Locale) Option {
	return func(s *Server) {
		if len(locales) == 0 {
			return
		}
		s.locales = make(map[domain.Locale]struct{}, len(locales))
		for _, locale := range locales {
			s.locales[locale] = struct{}{}
		}
	}
}

// New builds the gin engine and registers every route for the non-nil
// services.
func New(svcs Services, opts ...Option) *Server {
	s := &Server{
		Engine:  gin.New(),
		logger:  logging.NoOp(),
		auth:    func(c *gin.Context) { c.Next() },
		metrics: newMetrics(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.Engine.Use(gin.Recovery(), s.metrics.middleware(), s.requestLog())
	s.Engine.GET("/healthz", s.healthz)
	s.Engine.GET("/metrics", s.metrics.handler())

	public := s.Engine.Group("/api/:locale", s.resolveLocale)
	admin := s.Engine.Group("/api/admin/:locale", s.auth, s.resolveLocale)

	if svcs.CaseStudies != nil {
		mount(s, public, admin, SegmentCaseStudies, "case_study", svcs.CaseStudies)
	}
	if svcs.BlogPosts != nil {
		posts := mount(s, public, admin, SegmentBlogPosts, "blog_post", svcs.BlogPosts)
		public.GET("/"+SegmentBlogPosts+"/pinned", s.pinned(svcs.BlogPosts))
		admin.POST("/"+SegmentBlogPosts+"/:id/pin", posts.pinAction(svcs.BlogPosts.Pin))
		admin.POST("/"+SegmentBlogPosts+"/:id/unpin", posts.pinAction(svcs.BlogPosts.Unpin))
	}
	if svcs.Testimonials != nil {
		mount(s, public, admin, SegmentTestimonials, "testimonial", svcs.Testimonials)
	}
	if svcs.Banners != nil {
		banner := mount(s, public, admin, SegmentBanners, "banner", svcs.Banners)
		public.GET("/"+SegmentBanners+"/live", banner.collection(svcs.Banners.Live))
	}
	if svcs.Services != nil {
		offering := mount(s, public, admin, SegmentServices, "service", svcs.Services)
		public.GET("/"+SegmentServices+"/published", offering.collection(svcs.Services.Published))
	}
	if svcs.Advisors != nil {
		mount(s, public, admin, SegmentAdvisors, "advisor", svcs.Advisors)
	}
	if svcs.Sliders != nil {
		mount(s, public, admin, SegmentSliders, "case_study_slider", svcs.Sliders)
	}
	return s
}

// ServeHTTP lets the server be used directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// Run serves addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server forced to shut down", "error", err)
		}
	}()

	s.logger.Info("http server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}

func (s *Server) resolveLocale(c *gin.Context) {
	locale, err := domain.ParseLocale(c.Param("locale"))
	if err == nil && s.locales != nil {
		if _, ok := s.locales[locale]; !ok {
			err = domain.UnsupportedLocale(c.Param("locale"))
		}
	}
	if err != nil {
		s.abort(c, err)
		return
	}
	c.Set(localeKey, locale)
	c.Request = c.Request.WithContext(logging.ContextWithFields(c.Request.Context(), map[string]any{
		"locale": locale.String(),
	}))
	c.Next()
}

func localeOf(c *gin.Context) domain.Locale {
	if value, ok := c.Get(localeKey); ok {
		if locale, ok := value.(domain.Locale); ok {
			return locale
		}
	}
	return domain.DefaultLocale
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (s *Server) healthz(c *gin.Context) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.PingContext(ctx); err != nil {
			s.logger.Error("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "store unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) pinned(svc blogposts.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.Pinned(c.Request.Context(), localeOf(c))
		if err != nil {
			s.abort(c, err)
			return
		}
		if post == nil {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

func (r *resource[T, C, U]) pinAction(fn func(ctx context.Context, id string, locale domain.Locale) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := fn(c.Request.Context(), c.Param("id"), localeOf(c))
		if err != nil {
			r.server.abort(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}
