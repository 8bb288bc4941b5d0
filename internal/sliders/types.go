package sliders

import (
	"context"
	"time"

	"github.com/zirospace/zirospace-cms/internal/domain"
)

const (
	entityName   = "case_study_sliders"
	resourceName = "case_study_slider"
)

// Slider is a themed image carousel placed between case studies.
type Slider struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Theme      string        `json:"theme,omitempty"`
	Images     []SliderImage `json:"images"`
	OrderIndex int           `json:"orderIndex"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// EntityID returns the identifier used by the admin container.
func (s Slider) EntityID() string { return s.ID }

// WithOrder returns a copy of s placed at index.
func (s Slider) WithOrder(index int) Slider {
	s.OrderIndex = index
	return s
}

type SliderImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type CreateSliderInput struct {
	Title      string        `json:"title"`
	Theme      string        `json:"theme,omitempty"`
	Images     []SliderImage `json:"images,omitempty"`
	OrderIndex *int          `json:"orderIndex,omitempty"`
}

// SliderPatch updates only the supplied fields. A non-nil Images replaces
// the whole collection.
type SliderPatch struct {
	Title      *string        `json:"title,omitempty"`
	Theme      *string        `json:"theme,omitempty"`
	Images     *[]SliderImage `json:"images,omitempty"`
	OrderIndex *int           `json:"orderIndex,omitempty"`
}

// Repository persists sliders and their images per locale partition.
type Repository interface {
	List(ctx context.Context, locale domain.Locale) ([]Slider, error)
	GetByID(ctx context.Context, id string, locale domain.Locale) (*Slider, error)
	Create(ctx context.Context, input CreateSliderInput, locale domain.Locale) (*Slider, error)
	Update(ctx context.Context, id string, patch SliderPatch, locale domain.Locale) (*Slider, error)
	Delete(ctx context.Context, id string, locale domain.Locale) error
	UpdateOrder(ctx context.Context, orders []domain.OrderUpdate, locale domain.Locale) error
	EnsureSchema(ctx context.Context, locale domain.Locale) error
}
