package di

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/admin"
	"github.com/zirospace/zirospace-cms/internal/advisors"
	"github.com/zirospace/zirospace-cms/internal/banners"
	"github.com/zirospace/zirospace-cms/internal/blogposts"
	"github.com/zirospace/zirospace-cms/internal/casestudies"
	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/httpapi"
	"github.com/zirospace/zirospace-cms/internal/logging"
	"github.com/zirospace/zirospace-cms/internal/runtimeconfig"
	"github.com/zirospace/zirospace-cms/internal/services"
	"github.com/zirospace/zirospace-cms/internal/sliders"
	"github.com/zirospace/zirospace-cms/internal/store"
	"github.com/zirospace/zirospace-cms/internal/testimonials"
	"github.com/zirospace/zirospace-cms/pkg/interfaces"
)

// Container wires the repositories, services and transports for the one
// backing store selected by configuration.
type Container struct {
	Config runtimeconfig.Config

	db             *bun.DB
	ownsDB         bool
	loggerProvider interfaces.LoggerProvider
	clock          func() time.Time
	idGenerator    func() string

	locales       []domain.Locale
	defaultLocale domain.Locale

	schemas []schemaOwner

	caseStudies  casestudies.Service
	blogPosts    blogposts.Service
	testimonials testimonials.Service
	banners      banners.Service
	services     services.Service
	advisors     advisors.Service
	sliders      sliders.Service

	server     *httpapi.Server
	adminStore *admin.Store
}

type schemaOwner interface {
	EnsureSchema(ctx context.Context, locale domain.Locale) error
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an open database instead of opening one from the
// storage config. The caller keeps ownership of db.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.db = db
	}
}

// WithLoggerProvider overrides the provider selected by the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithClock sets the clock used for timestamps and banner visibility.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		c.clock = clock
	}
}

// WithIDGenerator sets the generator used for new record ids.
func WithIDGenerator(generator func() string) Option {
	return func(c *Container) {
		c.idGenerator = generator
	}
}

// NewContainer validates cfg, opens the configured store and builds every
// service on top of it.
func NewContainer(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	locales, err := cfg.EnabledLocales()
	if err != nil {
		return nil, err
	}
	defaultLocale, err := cfg.Default(locales)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:        cfg,
		locales:       locales,
		defaultLocale: defaultLocale,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.openStore(ctx); err != nil {
		return nil, err
	}
	c.configureServices()
	c.configureTransports()

	if cfg.Schema.Bootstrap {
		if err := c.EnsureSchema(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	logging.ModuleLogger(c.loggerProvider, "cms.di").Info("container.configured",
		"storage", cfg.StorageProvider(),
		"locales", len(locales),
		"default_locale", defaultLocale.String(),
	)
	return c, nil
}

func (c *Container) openStore(ctx context.Context) error {
	if c.db != nil {
		return nil
	}
	var (
		db  *bun.DB
		err error
	)
	switch c.Config.StorageProvider() {
	case runtimeconfig.StorageRemote:
		remote := c.Config.Storage.Remote
		db, err = store.OpenRemote(ctx, store.RemoteOptions{
			DSN:          remote.DSN,
			MaxOpenConns: remote.MaxOpenConns,
			MaxIdleConns: remote.MaxIdleConns,
			MaxLifetime:  remote.ConnMaxLifetime,
		})
	case runtimeconfig.StorageLocal:
		db, err = store.OpenLocal(ctx, c.Config.Storage.Local.Path)
	default:
		err = fmt.Errorf("%w: %q", runtimeconfig.ErrStorageProviderUnknown, c.Config.Storage.Provider)
	}
	if err != nil {
		return err
	}
	c.db = db
	c.ownsDB = true
	return nil
}

func (c *Container) configureServices() {
	remote := c.Config.StorageProvider() == runtimeconfig.StorageRemote
	storeOpts := []store.Option{store.WithLogger(logging.StoreLogger(c.loggerProvider))}
	if c.clock != nil {
		storeOpts = append(storeOpts, store.WithClock(c.clock))
	}
	if c.idGenerator != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(c.idGenerator))
	}

	caseStudyRepo := repository(remote, c.db, storeOpts, casestudies.NewRemoteRepository, casestudies.NewLocalRepository)
	blogPostRepo := repository(remote, c.db, storeOpts, blogposts.NewRemoteRepository, blogposts.NewLocalRepository)
	testimonialRepo := repository(remote, c.db, storeOpts, testimonials.NewRemoteRepository, testimonials.NewLocalRepository)
	bannerRepo := repository(remote, c.db, storeOpts, banners.NewRemoteRepository, banners.NewLocalRepository)
	serviceRepo := repository(remote, c.db, storeOpts, services.NewRemoteRepository, services.NewLocalRepository)
	advisorRepo := repository(remote, c.db, storeOpts, advisors.NewRemoteRepository, advisors.NewLocalRepository)
	sliderRepo := repository(remote, c.db, storeOpts, sliders.NewRemoteRepository, sliders.NewLocalRepository)

	c.schemas = []schemaOwner{caseStudyRepo, blogPostRepo, testimonialRepo, bannerRepo, serviceRepo, advisorRepo, sliderRepo}

	now := c.clock
	if now == nil {
		now = time.Now
	}
	contentLogger := func(entity string) interfaces.Logger {
		return logging.ContentLogger(c.loggerProvider, entity)
	}

	c.caseStudies = casestudies.NewService(caseStudyRepo, casestudies.WithLogger(contentLogger(admin.EntityCaseStudies)))
	c.blogPosts = blogposts.NewService(blogPostRepo, blogposts.WithLogger(contentLogger(admin.EntityBlogPosts)))
	c.testimonials = testimonials.NewService(testimonialRepo, contentLogger(admin.EntityTestimonials))
	c.banners = banners.NewService(bannerRepo, now, contentLogger(admin.EntityBanners))
	c.services = services.NewService(serviceRepo, contentLogger(admin.EntityServices))
	c.advisors = advisors.NewService(advisorRepo, contentLogger(admin.EntityAdvisors))
	c.sliders = sliders.NewService(sliderRepo, contentLogger(admin.EntitySliders))
}

func repository[R any](remote bool, db *bun.DB, opts []store.Option, newRemote, newLocal func(*bun.DB, ...store.Option) R) R {
	if remote {
		return newRemote(db, opts...)
	}
	return newLocal(db, opts...)
}

func (c *Container) configureTransports() {
	c.server = httpapi.New(c.Services(),
		httpapi.WithLogger(logging.HTTPLogger(c.loggerProvider)),
		httpapi.WithHealthChecker(c.db),
		httpapi.WithAdminAuth(httpapi.BearerToken(c.Config.Admin.Token)),
		httpapi.WithLocales(c.locales...),
	)
	c.adminStore = admin.NewStore(admin.Backends{
		CaseStudies:  c.caseStudies,
		BlogPosts:    c.blogPosts,
		Testimonials: c.testimonials,
		Banners:      c.banners,
		Services:     c.services,
		Advisors:     c.advisors,
		Sliders:      c.sliders,
	},
		admin.WithTimeout(c.Config.Admin.RequestTimeout),
		admin.WithLogger(logging.AdminLogger(c.loggerProvider)),
	)
}

// EnsureSchema creates the tables of every entity for every enabled locale.
func (c *Container) EnsureSchema(ctx context.Context) error {
	logger := logging.StoreLogger(c.loggerProvider)
	for _, locale := range c.locales {
		for _, owner := range c.schemas {
			if err := owner.EnsureSchema(ctx, locale); err != nil {
				logger.Error("schema.bootstrap_failed", "locale", locale.String(), "error", err)
				return fmt.Errorf("ensure schema for %s: %w", locale, err)
			}
		}
		logger.Info("schema.bootstrapped", "locale", locale.String())
	}
	return nil
}

// Services exposes the entity services to transports.
func (c *Container) Services() httpapi.Services {
	return httpapi.Services{
		CaseStudies:  c.caseStudies,
		BlogPosts:    c.blogPosts,
		Testimonials: c.testimonials,
		Banners:      c.banners,
		Services:     c.services,
		Advisors:     c.advisors,
		Sliders:      c.sliders,
	}
}

func (c *Container) HTTPServer() *httpapi.Server {
	return c.server
}

// AdminStore returns the in-process admin state bound to the services.
func (c *Container) AdminStore() *admin.Store {
	return c.adminStore
}

func (c *Container) DB() *bun.DB {
	return c.db
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Locales returns the enabled locales in configured order.
func (c *Container) Locales() []domain.Locale {
	return append([]domain.Locale(nil), c.locales...)
}

func (c *Container) DefaultLocale() domain.Locale {
	return c.defaultLocale
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	if c.db == nil || !c.ownsDB {
		return nil
	}
	return c.db.Close()
}
