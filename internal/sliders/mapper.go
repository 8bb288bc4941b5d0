package sliders

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
)

type record struct {
	bun.BaseModel `bun:"table:case_study_sliders,alias:r"`

	ID         string    `bun:"id,pk"`
	Title      string    `bun:"title,notnull"`
	Theme      string    `bun:"theme"`
	OrderIndex int       `bun:"order_index,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
	UpdatedAt  time.Time `bun:"updated_at,notnull"`
}

type imageRecord struct {
	bun.BaseModel `bun:"table:case_study_slider_images,alias:r"`

	ID       string `bun:"id,pk"`
	SliderID string `bun:"slider_id,notnull"`
	Position int    `bun:"position,notnull"`
	URL      string `bun:"url,notnull"`
	Alt      string `bun:"alt"`
}

func toDomain(rec record, images []SliderImage) (Slider, error) {
	switch {
	case rec.ID == "":
		return Slider{}, &domain.MappingError{Resource: resourceName, Field: "id"}
	case rec.Title == "":
		return Slider{}, &domain.MappingError{Resource: resourceName, ID: rec.ID, Field: "title"}
	}
	return Slider{
		ID:         rec.ID,
		Title:      rec.Title,
		Theme:      rec.Theme,
		Images:     store.OrEmpty(images),
		OrderIndex: rec.OrderIndex,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}, nil
}

func toRecord(s Slider) record {
	return record{
		ID:         s.ID,
		Title:      s.Title,
		Theme:      s.Theme,
		OrderIndex: s.OrderIndex,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func newSlider(in CreateSliderInput, id string, orderIndex int, now time.Time) Slider {
	return Slider{
		ID:         id,
		Title:      in.Title,
		Theme:      in.Theme,
		Images:     store.OrEmpty(in.Images),
		OrderIndex: orderIndex,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func patchColumns(p SliderPatch) store.Columns {
	columns := store.Columns{}
	store.SetColumn(columns, "title", p.Title)
	store.SetColumn(columns, "theme", p.Theme)
	store.SetColumn(columns, "order_index", p.OrderIndex)
	return columns
}

func imageToRow(parentID string, position int, img SliderImage) imageRecord {
	return imageRecord{
		ID:       uuid.NewString(),
		SliderID: parentID,
		Position: position,
		URL:      img.URL,
		Alt:      img.Alt,
	}
}

func imageFromRow(row imageRecord) (string, SliderImage) {
	return row.SliderID, SliderImage{URL: row.URL, Alt: row.Alt}
}
