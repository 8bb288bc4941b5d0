package banners

import (
	"context"
	"time"

	"github.com/zirospace/zirospace-cms/internal/domain"
)

const (
	entityName   = "banners"
	resourceName = "banner"
)

// Banner is a site-wide announcement, optionally limited to a time window.
type Banner struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Content         string     `json:"content,omitempty"`
	ImageURL        string     `json:"imageUrl,omitempty"`
	ImageAlt        string     `json:"imageAlt,omitempty"`
	BackgroundColor string     `json:"backgroundColor,omitempty"`
	IsActive        bool       `json:"isActive"`
	StartsAt        *time.Time `json:"startsAt,omitempty"`
	EndsAt          *time.Time `json:"endsAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// EntityID returns the identifier used by the admin container.
func (b Banner) EntityID() string { return b.ID }

// LiveAt reports whether the banner is active and at falls inside its window.
// Open bounds are unbounded.
func (b Banner) LiveAt(at time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartsAt != nil && at.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && !at.Before(*b.EndsAt) {
		return false
	}
	return true
}

type CreateBannerInput struct {
	Title           string     `json:"title"`
	Content         string     `json:"content,omitempty"`
	ImageURL        string     `json:"imageUrl,omitempty"`
	ImageAlt        string     `json:"imageAlt,omitempty"`
	BackgroundColor string     `json:"backgroundColor,omitempty"`
	IsActive        bool       `json:"isActive,omitempty"`
	StartsAt        *time.Time `json:"startsAt,omitempty"`
	EndsAt          *time.Time `json:"endsAt,omitempty"`
}

// BannerPatch is a partial update. ClearStartsAt and ClearEndsAt remove a
// window bound, which a nil pointer cannot express.
type BannerPatch struct {
	Title           *string    `json:"title,omitempty"`
	Content         *string    `json:"content,omitempty"`
	ImageURL        *string    `json:"imageUrl,omitempty"`
	ImageAlt        *string    `json:"imageAlt,omitempty"`
	BackgroundColor *string    `json:"backgroundColor,omitempty"`
	IsActive        *bool      `json:"isActive,omitempty"`
	StartsAt        *time.Time `json:"startsAt,omitempty"`
	EndsAt          *time.Time `json:"endsAt,omitempty"`
	ClearStartsAt   bool       `json:"clearStartsAt,omitempty"`
	ClearEndsAt     bool       `json:"clearEndsAt,omitempty"`
}

// Repository persists banners per locale partition.
type Repository interface {
	List(ctx context.Context, locale domain.Locale) ([]Banner, error)
	GetByID(ctx context.Context, id string, locale domain.Locale) (*Banner, error)
	Create(ctx context.Context, input CreateBannerInput, locale domain.Locale) (*Banner, error)
	Update(ctx context.Context, id string, patch BannerPatch, locale domain.Locale) (*Banner, error)
	Delete(ctx context.Context, id string, locale domain.Locale) error
	EnsureSchema(ctx context.Context, locale domain.Locale) error
}
