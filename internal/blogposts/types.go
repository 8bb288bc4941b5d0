package blogposts

import (
	"context"
	"time"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
)

const (
	entityName   = "blog_posts"
	resourceName = "blog_post"
)

// BlogPost is an article. At most one post per locale is pinned.
type BlogPost struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Subtitle    string     `json:"subtitle,omitempty"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	ImageAlt    string     `json:"imageAlt,omitempty"`
	AuthorName  string     `json:"authorName,omitempty"`
	Keywords    []string   `json:"keywords"`
	IsPinned    bool       `json:"isPinned"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// EntityID returns the identifier used by the admin container.
func (p BlogPost) EntityID() string { return p.ID }

// Pinned reports whether the post is the pinned one of its locale.
func (p BlogPost) Pinned() bool { return p.IsPinned }

// WithPinned returns a copy of p with IsPinned set to pinned.
func (p BlogPost) WithPinned(pinned bool) BlogPost {
	p.IsPinned = pinned
	return p
}

// CreateBlogPostInput carries the fields accepted on create. Keywords accept
// a JSON array or a JSON string holding one.
type CreateBlogPostInput struct {
	Title       string           `json:"title"`
	Slug        string           `json:"slug,omitempty"`
	Subtitle    string           `json:"subtitle,omitempty"`
	Excerpt     string           `json:"excerpt,omitempty"`
	Content     string           `json:"content,omitempty"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	ImageAlt    string           `json:"imageAlt,omitempty"`
	AuthorName  string           `json:"authorName,omitempty"`
	Keywords    store.StringList `json:"keywords,omitempty"`
	IsPinned    bool             `json:"isPinned,omitempty"`
	PublishedAt *time.Time       `json:"publishedAt,omitempty"`
}

// BlogPostPatch is a partial update; nil fields are left untouched.
type BlogPostPatch struct {
	Title       *string           `json:"title,omitempty"`
	Slug        *string           `json:"slug,omitempty"`
	Subtitle    *string           `json:"subtitle,omitempty"`
	Excerpt     *string           `json:"excerpt,omitempty"`
	Content     *string           `json:"content,omitempty"`
	ImageURL    *string           `json:"imageUrl,omitempty"`
	ImageAlt    *string           `json:"imageAlt,omitempty"`
	AuthorName  *string           `json:"authorName,omitempty"`
	Keywords    *store.StringList `json:"keywords,omitempty"`
	IsPinned    *bool             `json:"isPinned,omitempty"`
	PublishedAt *time.Time        `json:"publishedAt,omitempty"`
}

// Repository persists blog posts per locale. Writes that pin a post clear
// every other pin of the locale in the same transaction.
type Repository interface {
	List(ctx context.Context, locale domain.Locale) ([]BlogPost, error)
	GetByID(ctx context.Context, id string, locale domain.Locale) (*BlogPost, error)
	GetBySlug(ctx context.Context, slug string, locale domain.Locale) (*BlogPost, error)
	Pinned(ctx context.Context, locale domain.Locale) (*BlogPost, error)
	Create(ctx context.Context, input CreateBlogPostInput, locale domain.Locale) (*BlogPost, error)
	Update(ctx context.Context, id string, patch BlogPostPatch, locale domain.Locale) (*BlogPost, error)
	Pin(ctx context.Context, id string, locale domain.Locale) (*BlogPost, error)
	Unpin(ctx context.Context, id string, locale domain.Locale) (*BlogPost, error)
	Delete(ctx context.Context, id string, locale domain.Locale) error
	EnsureSchema(ctx context.Context, locale domain.Locale) error
}
