// Package services manages the offerings listed on the services page. The
// entity is called Offering to keep it apart from the Service use-case type.
package services

import (
	"context"
	"time"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
)

const (
	entityName   = "services"
	resourceName = "service"
)

// Offering is one service the company sells, with its own landing page.
type Offering struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description,omitempty"`
	Content         string    `json:"content,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	ImageAlt        string    `json:"imageAlt,omitempty"`
	Keywords        []string  `json:"keywords"`
	MetaTitle       string    `json:"metaTitle,omitempty"`
	MetaDescription string    `json:"metaDescription,omitempty"`
	IsPublished     bool      `json:"isPublished"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// EntityID returns the identifier used by the admin container.
func (o Offering) EntityID() string { return o.ID }

type CreateOfferingInput struct {
	Title           string           `json:"title"`
	Slug            string           `json:"slug,omitempty"`
	Description     string           `json:"description,omitempty"`
	Content         string           `json:"content,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	ImageAlt        string           `json:"imageAlt,omitempty"`
	Keywords        store.StringList `json:"keywords,omitempty"`
	MetaTitle       string           `json:"metaTitle,omitempty"`
	MetaDescription string           `json:"metaDescription,omitempty"`
	IsPublished     bool             `json:"isPublished,omitempty"`
}

type OfferingPatch struct {
	Title           *string           `json:"title,omitempty"`
	Slug            *string           `json:"slug,omitempty"`
	Description     *string           `json:"description,omitempty"`
	Content         *string           `json:"content,omitempty"`
	ImageURL        *string           `json:"imageUrl,omitempty"`
	ImageAlt        *string           `json:"imageAlt,omitempty"`
	Keywords        *store.StringList `json:"keywords,omitempty"`
	MetaTitle       *string           `json:"metaTitle,omitempty"`
	MetaDescription *string           `json:"metaDescription,omitempty"`
	IsPublished     *bool             `json:"isPublished,omitempty"`
}

// Repository persists offerings per locale partition.
type Repository interface {
	List(ctx context.Context, locale domain.Locale) ([]Offering, error)
	GetByID(ctx context.Context, id string, locale domain.Locale) (*Offering, error)
	GetBySlug(ctx context.Context, slug string, locale domain.Locale) (*Offering, error)
	Create(ctx context.Context, input CreateOfferingInput, locale domain.Locale) (*Offering, error)
	Update(ctx context.Context, id string, patch OfferingPatch, locale domain.Locale) (*Offering, error)
	Delete(ctx context.Context, id string, locale domain.Locale) error
	EnsureSchema(ctx context.Context, locale domain.Locale) error
}
