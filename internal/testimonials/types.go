package testimonials

import (
	"context"
	"time"

	"github.com/zirospace/zirospace-cms/internal/domain"
)

const (
	entityName   = "testimonials"
	resourceName = "testimonial"
)

// Testimonial is a client quote.
type Testimonial struct {
	ID         string    `json:"id"`
	Quote      string    `json:"quote"`
	AuthorName string    `json:"authorName"`
	Position   string    `json:"position,omitempty"`
	Company    string    `json:"company,omitempty"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	ImageAlt   string    `json:"imageAlt,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// EntityID returns the identifier used by the admin container.
func (t Testimonial) EntityID() string { return t.ID }

type CreateTestimonialInput struct {
	Quote      string `json:"quote"`
	AuthorName string `json:"authorName"`
	Position   string `json:"position,omitempty"`
	Company    string `json:"company,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	ImageAlt   string `json:"imageAlt,omitempty"`
}

type TestimonialPatch struct {
	Quote      *string `json:"quote,omitempty"`
	AuthorName *string `json:"authorName,omitempty"`
	Position   *string `json:"position,omitempty"`
	Company    *string `json:"company,omitempty"`
	ImageURL   *string `json:"imageUrl,omitempty"`
	ImageAlt   *string `json:"imageAlt,omitempty"`
}

// Repository persists testimonials per locale partition.
type Repository interface {
	List(ctx context.Context, locale domain.Locale) ([]Testimonial, error)
	GetByID(ctx context.Context, id string, locale domain.Locale) (*Testimonial, error)
	Create(ctx context.Context, input CreateTestimonialInput, locale domain.Locale) (*Testimonial, error)
	Update(ctx context.Context, id string, patch TestimonialPatch, locale domain.Locale) (*Testimonial, error)
	Delete(ctx context.Context, id string, locale domain.Locale) error
	EnsureSchema(ctx context.Context, locale domain.Locale) error
}
