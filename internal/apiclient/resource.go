package apiclient

import (
	"context"
	"net/http"

	"github.com/zirospace/zirospace-cms/internal/blogposts"
	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/httpapi"
)

// Resource is the typed client of one entity segment. It satisfies
// admin.Backend.
type Resource[T any, C any, U any] struct {
	client   *Client
	segment  string
	resource string
}

// NewResource binds segment (e.g. "testimonials") to entity type T.
func NewResource[T any, C any, U any](client *Client, segment, resource string) *Resource[T, C, U] {
	return &Resource[T, C, U]{client: client, segment: segment, resource: resource}
}

func (r *Resource[T, C, U]) meta(op string, locale domain.Locale, key string) call {
	return call{op: r.resource + "." + op, resource: r.resource, locale: locale, key: key}
}

func (r *Resource[T, C, U]) List(ctx context.Context, locale domain.Locale) ([]T, error) {
	var items []T
	endpoint := r.client.endpoint(locale.String(), r.segment)
	if err := r.client.do(ctx, r.meta("list", locale, ""), http.MethodGet, endpoint, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns nil, nil when the server has no such id.
func (r *Resource[T, C, U]) Get(ctx context.Context, id string, locale domain.Locale) (*T, error) {
	return r.find(ctx, locale, id, r.client.endpoint(locale.String(), r.segment, id))
}

// GetBySlug returns nil, nil when no entity uses slug.
func (r *Resource[T, C, U]) GetBySlug(ctx context.Context, slug string, locale domain.Locale) (*T, error) {
	return r.find(ctx, locale, slug, r.client.endpoint(locale.String(), r.segment, "slug", slug))
}

func (r *Resource[T, C, U]) find(ctx context.Context, locale domain.Locale, key, endpoint string) (*T, error) {
	item := new(T)
	err := r.client.do(ctx, r.meta("get", locale, key), http.MethodGet, endpoint, nil, item)
	if domain.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *Resource[T, C, U]) Create(ctx context.Context, input C, locale domain.Locale) (*T, error) {
	created := new(T)
	endpoint := r.client.endpoint("admin", locale.String(), r.segment)
	if err := r.client.do(ctx, r.meta("create", locale, ""), http.MethodPost, endpoint, input, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Resource[T, C, U]) Update(ctx context.Context, id string, patch U, locale domain.Locale) (*T, error) {
	updated := new(T)
	endpoint := r.client.endpoint("admin", locale.String(), r.segment, id)
	if err := r.client.do(ctx, r.meta("update", locale, id), http.MethodPatch, endpoint, patch, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Resource[T, C, U]) Delete(ctx context.Context, id string, locale domain.Locale) error {
	endpoint := r.client.endpoint("admin", locale.String(), r.segment, id)
	return r.client.do(ctx, r.meta("delete", locale, id), http.MethodDelete, endpoint, nil, nil)
}

// OrderedResource adds the reorder endpoint of orderable entities.
type OrderedResource[T any, C any, U any] struct {
	*Resource[T, C, U]
}

func NewOrderedResource[T any, C any, U any](client *Client, segment, resource string) *OrderedResource[T, C, U] {
	return &OrderedResource[T, C, U]{Resource: NewResource[T, C, U](client, segment, resource)}
}

func (r *OrderedResource[T, C, U]) UpdateOrder(ctx context.Context, orders []domain.OrderUpdate, locale domain.Locale) error {
	endpoint := r.client.endpoint("admin", locale.String(), r.segment, "order")
	return r.client.do(ctx, r.meta("update_order", locale, ""), http.MethodPut, endpoint, orders, nil)
}

// BlogPosts adds the pin endpoints.
type BlogPosts struct {
	*Resource[blogposts.BlogPost, blogposts.CreateBlogPostInput, blogposts.BlogPostPatch]
}

func NewBlogPosts(client *Client) *BlogPosts {
	return &BlogPosts{Resource: NewResource[blogposts.BlogPost, blogposts.CreateBlogPostInput, blogposts.BlogPostPatch](
		client, httpapi.SegmentBlogPosts, "blog_post")}
}

func (b *BlogPosts) Pin(ctx context.Context, id string, locale domain.Locale) (*blogposts.BlogPost, error) {
	return b.pinAction(ctx, "pin", id, locale)
}

func (b *BlogPosts) Unpin(ctx context.Context, id string, locale domain.Locale) (*blogposts.BlogPost, error) {
	return b.pinAction(ctx, "unpin", id, locale)
}

func (b *BlogPosts) pinAction(ctx context.Context, action, id string, locale domain.Locale) (*blogposts.BlogPost, error) {
	post := new(blogposts.BlogPost)
	endpoint := b.client.endpoint("admin", locale.String(), b.segment, id, action)
	if err := b.client.do(ctx, b.meta(action, locale, id), http.MethodPost, endpoint, nil, post); err != nil {
		return nil, err
	}
	return post, nil
}
