package services

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
)

type record struct {
	bun.BaseModel `bun:"table:services,alias:r"`

	ID              string           `bun:"id,pk"`
	Title           string           `bun:"title,notnull"`
	Slug            string           `bun:"slug,notnull,unique"`
	Description     string           `bun:"description"`
	Content         string           `bun:"content"`
	ImageURL        string           `bun:"image_url"`
	ImageAlt        string           `bun:"image_alt"`
	Keywords        store.StringList `bun:"keywords,type:text"`
	MetaTitle       string           `bun:"meta_title"`
	MetaDescription string           `bun:"meta_description"`
	IsPublished     bool             `bun:"is_published,notnull"`
	CreatedAt       time.Time        `bun:"created_at,notnull"`
	UpdatedAt       time.Time        `bun:"updated_at,notnull"`
}

func toDomain(rec record) (Offering, error) {
	switch {
	case rec.ID == "":
		return Offering{}, &domain.MappingError{Resource: resourceName, Field: "id"}
	case rec.Title == "":
		return Offering{}, &domain.MappingError{Resource: resourceName, ID: rec.ID, Field: "title"}
	case rec.Slug == "":
		return Offering{}, &domain.MappingError{Resource: resourceName, ID: rec.ID, Field: "slug"}
	}
	return Offering{
		ID:              rec.ID,
		Title:           rec.Title,
		Slug:            rec.Slug,
		Description:     rec.Description,
		Content:         rec.Content,
		ImageURL:        rec.ImageURL,
		ImageAlt:        rec.ImageAlt,
		Keywords:        store.OrEmpty([]string(rec.Keywords)),
		MetaTitle:       rec.MetaTitle,
		MetaDescription: rec.MetaDescription,
		IsPublished:     rec.IsPublished,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}, nil
}

func toRecord(o Offering) record {
	return record{
		ID:              o.ID,
		Title:           o.Title,
		Slug:            o.Slug,
		Description:     o.Description,
		Content:         o.Content,
		ImageURL:        o.ImageURL,
		ImageAlt:        o.ImageAlt,
		Keywords:        store.StringList(store.OrEmpty(o.Keywords)),
		MetaTitle:       o.MetaTitle,
		MetaDescription: o.MetaDescription,
		IsPublished:     o.IsPublished,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func newOffering(in CreateOfferingInput, id string, now time.Time) Offering {
	return Offering{
		ID:              id,
		Title:           in.Title,
		Slug:            in.Slug,
		Description:     in.Description,
		Content:         in.Content,
		ImageURL:        in.ImageURL,
		ImageAlt:        in.ImageAlt,
		Keywords:        store.OrEmpty([]string(in.Keywords)),
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		IsPublished:     in.IsPublished,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func patchColumns(p OfferingPatch) store.Columns {
	columns := store.Columns{}
	store.SetColumn(columns, "title", p.Title)
	store.SetColumn(columns, "slug", p.Slug)
	store.SetColumn(columns, "description", p.Description)
	store.SetColumn(columns, "content", p.Content)
	store.SetColumn(columns, "image_url", p.ImageURL)
	store.SetColumn(columns, "image_alt", p.ImageAlt)
	store.SetColumn(columns, "meta_title", p.MetaTitle)
	store.SetColumn(columns, "meta_description", p.MetaDescription)
	store.SetColumn(columns, "is_published", p.IsPublished)
	if p.Keywords != nil {
		columns["keywords"] = store.StringList(store.OrEmpty([]string(*p.Keywords)))
	}
	return columns
}
