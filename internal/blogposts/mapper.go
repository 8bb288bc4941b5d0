package blogposts

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
)

type record struct {
	bun.BaseModel `bun:"table:blog_posts,alias:r"`

	ID          string           `bun:"id,pk"`
	Title       string           `bun:"title,notnull"`
	Slug        string           `bun:"slug,notnull,unique"`
	Subtitle    string           `bun:"subtitle"`
	Excerpt     string           `bun:"excerpt"`
	Content     string           `bun:"content"`
	ImageURL    string           `bun:"image_url"`
	ImageAlt    string           `bun:"image_alt"`
	AuthorName  string           `bun:"author_name"`
	Keywords    store.StringList `bun:"keywords,type:text"`
	IsPinned    bool             `bun:"is_pinned,notnull"`
	PublishedAt *time.Time       `bun:"published_at"`
	CreatedAt   time.Time        `bun:"created_at,notnull"`
	UpdatedAt   time.Time        `bun:"updated_at,notnull"`
}

func toDomain(rec record) (BlogPost, error) {
	switch {
	case rec.ID == "":
		return BlogPost{}, &domain.MappingError{Resource: resourceName, Field: "id"}
	case rec.Title == "":
		return BlogPost{}, &domain.MappingError{Resource: resourceName, ID: rec.ID, Field: "title"}
	case rec.Slug == "":
		return BlogPost{}, &domain.MappingError{Resource: resourceName, ID: rec.ID, Field: "slug"}
	}
	return BlogPost{
		ID:          rec.ID,
		Title:       rec.Title,
		Slug:        rec.Slug,
		Subtitle:    rec.Subtitle,
		Excerpt:     rec.Excerpt,
		Content:     rec.Content,
		ImageURL:    rec.ImageURL,
		ImageAlt:    rec.ImageAlt,
		AuthorName:  rec.AuthorName,
		Keywords:    store.OrEmpty([]string(rec.Keywords)),
		IsPinned:    rec.IsPinned,
		PublishedAt: utcPtr(rec.PublishedAt),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}, nil
}

func toRecord(p BlogPost) record {
	return record{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Subtitle:    p.Subtitle,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		ImageURL:    p.ImageURL,
		ImageAlt:    p.ImageAlt,
		AuthorName:  p.AuthorName,
		Keywords:    store.StringList(store.OrEmpty(p.Keywords)),
		IsPinned:    p.IsPinned,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func newBlogPost(in CreateBlogPostInput, id string, now time.Time) BlogPost {
	return BlogPost{
		ID:          id,
		Title:       in.Title,
		Slug:        in.Slug,
		Subtitle:    in.Subtitle,
		Excerpt:     in.Excerpt,
		Content:     in.Content,
		ImageURL:    in.ImageURL,
		ImageAlt:    in.ImageAlt,
		AuthorName:  in.AuthorName,
		Keywords:    store.OrEmpty([]string(in.Keywords)),
		IsPinned:    in.IsPinned,
		PublishedAt: utcPtr(in.PublishedAt),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func patchColumns(p BlogPostPatch) store.Columns {
	columns := store.Columns{}
	store.SetColumn(columns, "title", p.Title)
	store.SetColumn(columns, "slug", p.Slug)
	store.SetColumn(columns, "subtitle", p.Subtitle)
	store.SetColumn(columns, "excerpt", p.Excerpt)
	store.SetColumn(columns, "content", p.Content)
	store.SetColumn(columns, "image_url", p.ImageURL)
	store.SetColumn(columns, "image_alt", p.ImageAlt)
	store.SetColumn(columns, "author_name", p.AuthorName)
	store.SetColumn(columns, "is_pinned", p.IsPinned)
	if p.Keywords != nil {
		columns["keywords"] = store.StringList(store.OrEmpty([]string(*p.Keywords)))
	}
	if p.PublishedAt != nil {
		columns["published_at"] = p.PublishedAt.UTC()
	}
	return columns
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
