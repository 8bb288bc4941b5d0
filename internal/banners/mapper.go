package banners

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
)

type record struct {
	bun.BaseModel `bun:"table:banners,alias:r"`

	ID              string     `bun:"id,pk"`
	Title           string     `bun:"title,notnull"`
	Content         string     `bun:"content"`
	ImageURL        string     `bun:"image_url"`
	ImageAlt        string     `bun:"image_alt"`
	BackgroundColor string     `bun:"background_color"`
	IsActive        bool       `bun:"is_active,notnull"`
	StartsAt        *time.Time `bun:"starts_at"`
	EndsAt          *time.Time `bun:"ends_at"`
	CreatedAt       time.Time  `bun:"created_at,notnull"`
	UpdatedAt       time.Time  `bun:"updated_at,notnull"`
}

func toDomain(rec record) (Banner, error) {
	switch {
	case rec.ID == "":
		return Banner{}, &domain.MappingError{Resource: resourceName, Field: "id"}
	case rec.Title == "":
		return Banner{}, &domain.MappingError{Resource: resourceName, ID: rec.ID, Field: "title"}
	}
	return Banner{
		ID:              rec.ID,
		Title:           rec.Title,
		Content:         rec.Content,
		ImageURL:        rec.ImageURL,
		ImageAlt:        rec.ImageAlt,
		BackgroundColor: rec.BackgroundColor,
		IsActive:        rec.IsActive,
		StartsAt:        utcPtr(rec.StartsAt),
		EndsAt:          utcPtr(rec.EndsAt),
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}, nil
}

func toRecord(b Banner) record {
	return record{
		ID:              b.ID,
		Title:           b.Title,
		Content:         b.Content,
		ImageURL:        b.ImageURL,
		ImageAlt:        b.ImageAlt,
		BackgroundColor: b.BackgroundColor,
		IsActive:        b.IsActive,
		StartsAt:        b.StartsAt,
		EndsAt:          b.EndsAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func newBanner(in CreateBannerInput, id string, now time.Time) Banner {
	return Banner{
		ID:              id,
		Title:           in.Title,
		Content:         in.Content,
		ImageURL:        in.ImageURL,
		ImageAlt:        in.ImageAlt,
		BackgroundColor: in.BackgroundColor,
		IsActive:        in.IsActive,
		StartsAt:        utcPtr(in.StartsAt),
		EndsAt:          utcPtr(in.EndsAt),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func patchColumns(p BannerPatch) store.Columns {
	columns := store.Columns{}
	store.SetColumn(columns, "title", p.Title)
	store.SetColumn(columns, "content", p.Content)
	store.SetColumn(columns, "image_url", p.ImageURL)
	store.SetColumn(columns, "image_alt", p.ImageAlt)
	store.SetColumn(columns, "background_color", p.BackgroundColor)
	store.SetColumn(columns, "is_active", p.IsActive)
	setWindowBound(columns, "starts_at", p.StartsAt, p.ClearStartsAt)
	setWindowBound(columns, "ends_at", p.EndsAt, p.ClearEndsAt)
	return columns
}

func setWindowBound(columns store.Columns, column string, value *time.Time, clear bool) {
	switch {
	case clear:
		columns[column] = nil
	case value != nil:
		columns[column] = value.UTC()
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
