package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zirospace/zirospace-cms/internal/domain"
)

// crud is the service surface every entity exposes over HTTP.
type crud[T any, C any, U any] interface {
	List(ctx context.Context, locale domain.Locale) ([]T, error)
	Get(ctx context.Context, id string, locale domain.Locale) (*T, error)
	Create(ctx context.Context, input C, locale domain.Locale) (*T, error)
	Update(ctx context.Context, id string, patch U, locale domain.Locale) (*T, error)
	Delete(ctx context.Context, id string, locale domain.Locale) error
}

type slugLookup[T any] interface {
	GetBySlug(ctx context.Context, slug string, locale domain.Locale) (*T, error)
}

type orderer interface {
	UpdateOrder(ctx context.Context, orders []domain.OrderUpdate, locale domain.Locale) error
}

type resource[T any, C any, U any] struct {
	server  *Server
	name    string
	segment string
	svc     crud[T, C, U]
}

// mount registers the public and admin routes of one entity. Slug and order
// routes are added only when svc supports them.
func mount[T any, C any, U any](s *Server, public, admin *gin.RouterGroup, segment, name string, svc crud[T, C, U]) *resource[T, C, U] {
	r := &resource[T, C, U]{server: s, name: name, segment: segment, svc: svc}

	pub := public.Group("/" + segment)
	pub.GET("", r.list)
	pub.GET("/:id", r.get)
	if lookup, ok := svc.(slugLookup[T]); ok {
		pub.GET("/slug/:slug", r.bySlug(lookup))
	}

	adm := admin.Group("/" + segment)
	adm.POST("", r.create)
	adm.PATCH("/:id", r.update)
	adm.DELETE("/:id", r.remove)
	if o, ok := svc.(orderer); ok {
		adm.PUT("/order", r.reorder(o))
	}
	return r
}

func (r *resource[T, C, U]) list(c *gin.Context) {
	items, err := r.svc.List(c.Request.Context(), localeOf(c))
	if err != nil {
		r.server.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (r *resource[T, C, U]) get(c *gin.Context) {
	locale := localeOf(c)
	item, err := r.svc.Get(c.Request.Context(), c.Param("id"), locale)
	r.respondOne(c, item, err, c.Param("id"), locale)
}

func (r *resource[T, C, U]) bySlug(lookup slugLookup[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := localeOf(c)
		item, err := lookup.GetBySlug(c.Request.Context(), c.Param("slug"), locale)
		r.respondOne(c, item, err, c.Param("slug"), locale)
	}
}

func (r *resource[T, C, U]) create(c *gin.Context) {
	var input C
	if err := c.ShouldBindJSON(&input); err != nil {
		r.server.abort(c, badRequest(r.name, err))
		return
	}
	created, err := r.svc.Create(c.Request.Context(), input, localeOf(c))
	if err != nil {
		r.server.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (r *resource[T, C, U]) update(c *gin.Context) {
	var patch U
	if err := c.ShouldBindJSON(&patch); err != nil {
		r.server.abort(c, badRequest(r.name, err))
		return
	}
	updated, err := r.svc.Update(c.Request.Context(), c.Param("id"), patch, localeOf(c))
	if err != nil {
		r.server.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (r *resource[T, C, U]) remove(c *gin.Context) {
	if err := r.svc.Delete(c.Request.Context(), c.Param("id"), localeOf(c)); err != nil {
		r.server.abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *resource[T, C, U]) reorder(o orderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []domain.OrderUpdate
		if err := c.ShouldBindJSON(&orders); err != nil {
			r.server.abort(c, badRequest(r.name, err))
			return
		}
		if err := o.UpdateOrder(c.Request.Context(), orders, localeOf(c)); err != nil {
			r.server.abort(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (r *resource[T, C, U]) respondOne(c *gin.Context, item *T, err error, key string, locale domain.Locale) {
	if err != nil {
		r.server.abort(c, err)
		return
	}
	if item == nil {
		r.server.abort(c, &domain.NotFoundError{Resource: r.name, Key: key, Locale: locale})
		return
	}
	c.JSON(http.StatusOK, item)
}

// collection serves a filtered public list such as live banners.
func (r *resource[T, C, U]) collection(fn func(ctx context.Context, locale domain.Locale) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := fn(c.Request.Context(), localeOf(c))
		if err != nil {
			r.server.abort(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
