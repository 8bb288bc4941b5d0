package casestudies

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
)

type record struct {
	bun.BaseModel `bun:"table:case_studies,alias:r"`

	ID              string    `bun:"id,pk"`
	Title           string    `bun:"title,notnull"`
	Subtitle        string    `bun:"subtitle"`
	Description     string    `bun:"description"`
	Slug            string    `bun:"slug,notnull,unique"`
	URL             string    `bun:"url"`
	Color           string    `bun:"color"`
	BackgroundColor string    `bun:"background_color"`
	OrderIndex      int       `bun:"order_index,notnull"`
	CreatedAt       time.Time `bun:"created_at,notnull"`
	UpdatedAt       time.Time `bun:"updated_at,notnull"`
}

type imageRecord struct {
	bun.BaseModel `bun:"table:case_study_images,alias:r"`

	ID          string `bun:"id,pk"`
	CaseStudyID string `bun:"case_study_id,notnull"`
	Position    int    `bun:"position,notnull"`
	URL         string `bun:"url,notnull"`
	Alt         string `bun:"alt"`
}

type tagRecord struct {
	bun.BaseModel `bun:"table:case_study_tags,alias:r"`

	ID          string `bun:"id,pk"`
	CaseStudyID string `bun:"case_study_id,notnull"`
	Position    int    `bun:"position,notnull"`
	Name        string `bun:"name,notnull"`
}

func toDomain(rec record, images []CaseStudyImage, tags []Tag) (CaseStudy, error) {
	switch {
	case rec.ID == "":
		return CaseStudy{}, &domain.MappingError{Resource: resourceName, Field: "id"}
	case rec.Title == "":
		return CaseStudy{}, &domain.MappingError{Resource: resourceName, ID: rec.ID, Field: "title"}
	case rec.Slug == "":
		return CaseStudy{}, &domain.MappingError{Resource: resourceName, ID: rec.ID, Field: "slug"}
	}
	return CaseStudy{
		ID:              rec.ID,
		Title:           rec.Title,
		Subtitle:        rec.Subtitle,
		Description:     rec.Description,
		Slug:            rec.Slug,
		URL:             rec.URL,
		Color:           rec.Color,
		BackgroundColor: rec.BackgroundColor,
		Images:          images,
		Tags:            tags,
		OrderIndex:      rec.OrderIndex,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}, nil
}

func toRecord(cs CaseStudy) record {
	return record{
		ID:              cs.ID,
		Title:           cs.Title,
		Subtitle:        cs.Subtitle,
		Description:     cs.Description,
		Slug:            cs.Slug,
		URL:             cs.URL,
		Color:           cs.Color,
		BackgroundColor: cs.BackgroundColor,
		OrderIndex:      cs.OrderIndex,
		CreatedAt:       cs.CreatedAt,
		UpdatedAt:       cs.UpdatedAt,
	}
}

func newCaseStudy(in CreateCaseStudyInput, id string, orderIndex int, now time.Time) CaseStudy {
	return CaseStudy{
		ID:              id,
		Title:           in.Title,
		Subtitle:        in.Subtitle,
		Description:     in.Description,
		Slug:            in.Slug,
		URL:             in.URL,
		Color:           in.Color,
		BackgroundColor: in.BackgroundColor,
		Images:          store.OrEmpty(in.Images),
		Tags:            store.OrEmpty(in.Tags),
		OrderIndex:      orderIndex,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func patchColumns(p CaseStudyPatch) store.Columns {
	columns := store.Columns{}
	store.SetColumn(columns, "title", p.Title)
	store.SetColumn(columns, "subtitle", p.Subtitle)
	store.SetColumn(columns, "description", p.Description)
	store.SetColumn(columns, "slug", p.Slug)
	store.SetColumn(columns, "url", p.URL)
	store.SetColumn(columns, "color", p.Color)
	store.SetColumn(columns, "background_color", p.BackgroundColor)
	store.SetColumn(columns, "order_index", p.OrderIndex)
	return columns
}

func imageToRow(parentID string, position int, img CaseStudyImage) imageRecord {
	return imageRecord{
		ID:          uuid.NewString(),
		CaseStudyID: parentID,
		Position:    position,
		URL:         img.URL,
		Alt:         img.Alt,
	}
}

func imageFromRow(row imageRecord) (string, CaseStudyImage) {
	return row.CaseStudyID, CaseStudyImage{URL: row.URL, Alt: row.Alt}
}

func tagToRow(parentID string, position int, tag Tag) tagRecord {
	return tagRecord{
		ID:          uuid.NewString(),
		CaseStudyID: parentID,
		Position:    position,
		Name:        tag.Name,
	}
}

func tagFromRow(row tagRecord) (string, Tag) {
	return row.CaseStudyID, Tag{Name: row.Name}
}

// normalizeTags trims names and drops blanks and case-insensitive duplicates.
func normalizeTags(tags []Tag) []Tag {
	if tags == nil {
		return nil
	}
	out := make([]Tag, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		name := strings.TrimSpace(tag.Name)
		key := strings.ToLower(name)
		if name == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Tag{Name: name})
	}
	return out
}
