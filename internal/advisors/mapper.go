package advisors

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
)

type record struct {
	bun.BaseModel `bun:"table:advisors,alias:r"`

	ID          string    `bun:"id,pk"`
	Name        string    `bun:"name,notnull"`
	Role        string    `bun:"role"`
	Bio         string    `bun:"bio"`
	ImageURL    string    `bun:"image_url"`
	ImageAlt    string    `bun:"image_alt"`
	LinkedInURL string    `bun:"linkedin_url"`
	OrderIndex  int       `bun:"order_index,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

func toDomain(rec record) (Advisor, error) {
	switch {
	case rec.ID == "":
		return Advisor{}, &domain.MappingError{Resource: resourceName, Field: "id"}
	case rec.Name == "":
		return Advisor{}, &domain.MappingError{Resource: resourceName, ID: rec.ID, Field: "name"}
	}
	return Advisor{
		ID:          rec.ID,
		Name:        rec.Name,
		Role:        rec.Role,
		Bio:         rec.Bio,
		ImageURL:    rec.ImageURL,
		ImageAlt:    rec.ImageAlt,
		LinkedInURL: rec.LinkedInURL,
		OrderIndex:  rec.OrderIndex,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}, nil
}

func toRecord(a Advisor) record {
	return record{
		ID:          a.ID,
		Name:        a.Name,
		Role:        a.Role,
		Bio:         a.Bio,
		ImageURL:    a.ImageURL,
		ImageAlt:    a.ImageAlt,
		LinkedInURL: a.LinkedInURL,
		OrderIndex:  a.OrderIndex,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func newAdvisor(in CreateAdvisorInput, id string, orderIndex int, now time.Time) Advisor {
	return Advisor{
		ID:          id,
		Name:        in.Name,
		Role:        in.Role,
		Bio:         in.Bio,
		ImageURL:    in.ImageURL,
		ImageAlt:    in.ImageAlt,
		LinkedInURL: in.LinkedInURL,
		OrderIndex:  orderIndex,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func patchColumns(p AdvisorPatch) store.Columns {
	columns := store.Columns{}
	store.SetColumn(columns, "name", p.Name)
	store.SetColumn(columns, "role", p.Role)
	store.SetColumn(columns, "bio", p.Bio)
	store.SetColumn(columns, "image_url", p.ImageURL)
	store.SetColumn(columns, "image_alt", p.ImageAlt)
	store.SetColumn(columns, "linkedin_url", p.LinkedInURL)
	store.SetColumn(columns, "order_index", p.OrderIndex)
	return columns
}
