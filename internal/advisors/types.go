package advisors

import (
	"context"
	"time"

	"github.com/zirospace/zirospace-cms/internal/domain"
)

const (
	entityName   = "advisors"
	resourceName = "advisor"
)

// Advisor is a board member profile shown in display order.
type Advisor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Role        string    `json:"role,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	ImageAlt    string    `json:"imageAlt,omitempty"`
	LinkedInURL string    `json:"linkedinUrl,omitempty"`
	OrderIndex  int       `json:"orderIndex"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EntityID returns the identifier used by the admin container.
func (a Advisor) EntityID() string { return a.ID }

// WithOrder returns a copy of a placed at index.
func (a Advisor) WithOrder(index int) Advisor {
	a.OrderIndex = index
	return a
}

// CreateAdvisorInput carries the fields accepted on create. A nil
// OrderIndex appends the advisor after the current last one.
type CreateAdvisorInput struct {
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	Bio         string `json:"bio,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	ImageAlt    string `json:"imageAlt,omitempty"`
	LinkedInURL string `json:"linkedinUrl,omitempty"`
	OrderIndex  *int   `json:"orderIndex,omitempty"`
}

type AdvisorPatch struct {
	Name        *string `json:"name,omitempty"`
	Role        *string `json:"role,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	ImageAlt    *string `json:"imageAlt,omitempty"`
	LinkedInURL *string `json:"linkedinUrl,omitempty"`
	OrderIndex  *int    `json:"orderIndex,omitempty"`
}

// Repository persists advisors per locale partition.
type Repository interface {
	List(ctx context.Context, locale domain.Locale) ([]Advisor, error)
	GetByID(ctx context.Context, id string, locale domain.Locale) (*Advisor, error)
	Create(ctx context.Context, input CreateAdvisorInput, locale domain.Locale) (*Advisor, error)
	Update(ctx context.Context, id string, patch AdvisorPatch, locale domain.Locale) (*Advisor, error)
	Delete(ctx context.Context, id string, locale domain.Locale) error
	UpdateOrder(ctx context.Context, orders []domain.OrderUpdate, locale domain.Locale) error
	EnsureSchema(ctx context.Context, locale domain.Locale) error
}
