package casestudies

import (
	"context"
	"time"

	"github.com/zirospace/zirospace-cms/internal/domain"
)

const (
	entityName   = "case_studies"
	resourceName = "case_study"
)

// CaseStudy is a portfolio entry shown in display order.
type CaseStudy struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Subtitle        string           `json:"subtitle,omitempty"`
	Description     string           `json:"description,omitempty"`
	Slug            string           `json:"slug"`
	URL             string           `json:"url,omitempty"`
	Color           string           `json:"color,omitempty"`
	BackgroundColor string           `json:"backgroundColor,omitempty"`
	Images          []CaseStudyImage `json:"images"`
	Tags            []Tag            `json:"tags"`
	OrderIndex      int              `json:"orderIndex"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// EntityID returns the identifier used by the admin container.
func (c CaseStudy) EntityID() string { return c.ID }

func (c CaseStudy) WithOrder(index int) CaseStudy {
	c.OrderIndex = index
	return c
}

// CaseStudyImage is one gallery image, kept in display order.
type CaseStudyImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Tag links a case study to a tag by name.
type Tag struct {
	Name string `json:"name"`
}

// CreateCaseStudyInput carries the fields accepted on create. A nil
// OrderIndex appends the case study after the current last one.
type CreateCaseStudyInput struct {
	Title           string           `json:"title"`
	Subtitle        string           `json:"subtitle,omitempty"`
	Description     string           `json:"description,omitempty"`
	Slug            string           `json:"slug,omitempty"`
	URL             string           `json:"url,omitempty"`
	Color           string           `json:"color,omitempty"`
	BackgroundColor string           `json:"backgroundColor,omitempty"`
	Images          []CaseStudyImage `json:"images,omitempty"`
	Tags            []Tag            `json:"tags,omitempty"`
	OrderIndex      *int             `json:"orderIndex,omitempty"`
}

// CaseStudyPatch is a partial update. Nil fields are left untouched; a
// non-nil Images or Tags replaces the whole collection.
type CaseStudyPatch struct {
	Title           *string           `json:"title,omitempty"`
	Subtitle        *string           `json:"subtitle,omitempty"`
	Description     *string           `json:"description,omitempty"`
	Slug            *string           `json:"slug,omitempty"`
	URL             *string           `json:"url,omitempty"`
	Color           *string           `json:"color,omitempty"`
	BackgroundColor *string           `json:"backgroundColor,omitempty"`
	Images          *[]CaseStudyImage `json:"images,omitempty"`
	Tags            *[]Tag            `json:"tags,omitempty"`
	OrderIndex      *int              `json:"orderIndex,omitempty"`
}

// Repository persists case studies per locale partition.
type Repository interface {
	List(ctx context.Context, locale domain.Locale) ([]CaseStudy, error)
	GetByID(ctx context.Context, id string, locale domain.Locale) (*CaseStudy, error)
	GetBySlug(ctx context.Context, slug string, locale domain.Locale) (*CaseStudy, error)
	Create(ctx context.Context, input CreateCaseStudyInput, locale domain.Locale) (*CaseStudy, error)
	Update(ctx context.Context, id string, patch CaseStudyPatch, locale domain.Locale) (*CaseStudy, error)
	Delete(ctx context.Context, id string, locale domain.Locale) error
	UpdateOrder(ctx context.Context, orders []domain.OrderUpdate, locale domain.Locale) error
	EnsureSchema(ctx context.Context, locale domain.Locale) error
}
