package testimonials

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
)

type record struct {
	bun.BaseModel `bun:"table:testimonials,alias:r"`

	ID         string    `bun:"id,pk"`
	Quote      string    `bun:"quote,notnull"`
	AuthorName string    `bun:"author_name,notnull"`
	Position   string    `bun:"position"`
	Company    string    `bun:"company"`
	ImageURL   string    `bun:"image_url"`
	ImageAlt   string    `bun:"image_alt"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
	UpdatedAt  time.Time `bun:"updated_at,notnull"`
}

func toDomain(rec record) (Testimonial, error) {
	switch {
	case rec.ID == "":
		return Testimonial{}, &domain.MappingError{Resource: resourceName, Field: "id"}
	case rec.Quote == "":
		return Testimonial{}, &domain.MappingError{Resource: resourceName, ID: rec.ID, Field: "quote"}
	case rec.AuthorName == "":
		return Testimonial{}, &domain.MappingError{Resource: resourceName, ID: rec.ID, Field: "author_name"}
	}
	return Testimonial{
		ID:         rec.ID,
		Quote:      rec.Quote,
		AuthorName: rec.AuthorName,
		Position:   rec.Position,
		Company:    rec.Company,
		ImageURL:   rec.ImageURL,
		ImageAlt:   rec.ImageAlt,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}, nil
}

func toRecord(t Testimonial) record {
	return record{
		ID:         t.ID,
		Quote:      t.Quote,
		AuthorName: t.AuthorName,
		Position:   t.Position,
		Company:    t.Company,
		ImageURL:   t.ImageURL,
		ImageAlt:   t.ImageAlt,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func newTestimonial(in CreateTestimonialInput, id string, now time.Time) Testimonial {
	return Testimonial{
		ID:         id,
		Quote:      in.Quote,
		AuthorName: in.AuthorName,
		Position:   in.Position,
		Company:    in.Company,
		ImageURL:   in.ImageURL,
		ImageAlt:   in.ImageAlt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func patchColumns(p TestimonialPatch) store.Columns {
	columns := store.Columns{}
	store.SetColumn(columns, "quote", p.Quote)
	store.SetColumn(columns, "author_name", p.AuthorName)
	store.SetColumn(columns, "position", p.Position)
	store.SetColumn(columns, "company", p.Company)
	store.SetColumn(columns, "image_url", p.ImageURL)
	store.SetColumn(columns, "image_alt", p.ImageAlt)
	return columns
}
