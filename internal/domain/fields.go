package domain

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
)

// TrimAll trims the referenced strings in place.
func TrimAll(fields ...*string) {
	for _, field := range fields {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
}

// Trimmed returns a trimmed copy of an optional patch value, keeping nil as
// "not provided".
func Trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

// TrimList trims every entry and drops the blank ones.
func TrimList(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Slugify derives a URL slug from free text, e.g. "Web App" -> "web-app".
func Slugify(source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", nil
	}
	return slug.Normalize(source)
}

// Rules accumulates field errors for one resource.
type Rules struct {
	resource string
	errs     validation.Errors
}

// NewRules starts an empty rule set for resource.
func NewRules(resource string) *Rules {
	return &Rules{resource: resource, errs: validation.Errors{}}
}

// Fail records a field error with a cms.<resource>.<reason> code.
func (r *Rules) Fail(field, reason, message string) {
	if _, exists := r.errs[field]; exists {
		return
	}
	r.errs[field] = validation.NewError("cms."+r.resource+"."+reason, message)
}

// Required rejects a blank value.
func (r *Rules) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		r.Fail(field, field+"_required", field+" cannot be blank")
	}
}

// RequiredIfSet rejects an explicitly supplied blank value.
func (r *Rules) RequiredIfSet(field string, value *string) {
	if value != nil {
		r.Required(field, *value)
	}
}

// NonNegative rejects negative positions.
func (r *Rules) NonNegative(field string, value *int) {
	if value != nil && *value < 0 {
		r.Fail(field, field+"_negative", field+" must be zero or positive")
	}
}

// ImageAlt requires alt text whenever an image URL is present.
func (r *Rules) ImageAlt(field, url, alt string) {
	if strings.TrimSpace(url) != "" && strings.TrimSpace(alt) == "" {
		r.Fail(field, "image_alt_required", "alt text is required when an image is set")
	}
}

// Slug validates an explicit slug.
func (r *Rules) Slug(value string) {
	if value == "" {
		r.Fail("slug", "slug_required", "slug cannot be blank")
		return
	}
	if !slug.IsValid(value) {
		r.Fail("slug", "slug_invalid", "slug may only contain lowercase letters, digits and dashes")
	}
}

// ResolveSlug returns explicit when set, otherwise a slug derived from
// source. Failures are recorded on the slug field.
func (r *Rules) ResolveSlug(explicit, source string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		r.Slug(explicit)
		return explicit
	}
	derived, err := Slugify(source)
	if err != nil || derived == "" {
		r.Fail("slug", "slug_required", "slug cannot be derived from an empty title")
		return ""
	}
	return derived
}

// Err returns a ValidationError when any rule failed.
func (r *Rules) Err() error {
	if len(r.errs) == 0 {
		return nil
	}
	return NewValidationError(r.resource, r.errs)
}
