package domain

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

// Kind classifies failures so callers can branch without inspecting messages.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindMapping
	KindStore
	KindConflict
	KindPartial
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindMapping:
		return "mapping"
	case KindStore:
		return "store"
	case KindConflict:
		return "conflict"
	case KindPartial:
		return "partial_failure"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// NotFoundError reports a lookup or mutation target missing from a locale partition.
type NotFoundError struct {
	Resource string
	Key      string
	Locale   Locale
}

func (e *NotFoundError) Error() string {
	switch {
	case e.Key == "":
		return fmt.Sprintf("%s not found", e.Resource)
	case e.Locale == "":
		return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
	default:
		return fmt.Sprintf("%s %q not found in locale %s", e.Resource, e.Key, e.Locale)
	}
}

// ValidationError reports input rejected before or at the persistence boundary.
type ValidationError struct {
	Resource string
	Err      error
}

// NewValidationError wraps err (typically validation.Errors) for resource.
func NewValidationError(resource string, err error) *ValidationError {
	return &ValidationError{Resource: resource, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: validation failed", e.Resource)
	}
	return fmt.Sprintf("%s: validation failed: %v", e.Resource, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Fields flattens field level messages, keyed by field name.
func (e *ValidationError) Fields() map[string]string {
	var errs validation.Errors
	if !errors.As(e.Err, &errs) {
		return nil
	}
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		if err != nil {
			out[field] = err.Error()
		}
	}
	return out
}

// MappingError reports a stored row that cannot become a domain object.
type MappingError struct {
	Resource string
	ID       string
	Field    string
}

func (e *MappingError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: record is missing required field %q", e.Resource, e.Field)
	}
	return fmt.Sprintf("%s %q: record is missing required field %q", e.Resource, e.ID, e.Field)
}

// StoreError reports an operation rejected by the backing store.
type StoreError struct {
	Op       string
	Resource string
	Locale   Locale
	Conflict bool
	Err      error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s (%s): %v", e.Resource, e.Op, e.Locale, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// PartialFailureError reports a multi-step operation where some steps were
// applied before another failed.
type PartialFailureError struct {
	Op        string
	Completed []string
	Failed    string
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s partially applied (done: %s; failed: %s): %v",
		e.Op, strings.Join(e.Completed, ", "), e.Failed, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

// TransportError reports a failure to reach the API at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// KindOf classifies err. PartialFailureError wins over whatever it wraps.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var (
		partial   *PartialFailureError
		notFound  *NotFoundError
		invalid   *ValidationError
		mapping   *MappingError
		store     *StoreError
		transport *TransportError
		fieldErrs validation.Errors
	)
	switch {
	case errors.As(err, &partial):
		return KindPartial
	case errors.As(err, &notFound):
		return KindNotFound
	case errors.As(err, &invalid), errors.As(err, &fieldErrs):
		return KindValidation
	case errors.As(err, &mapping):
		return KindMapping
	case errors.As(err, &store):
		if store.Conflict {
			return KindConflict
		}
		return KindStore
	case errors.As(err, &transport):
		return KindTransport
	default:
		return KindUnknown
	}
}

// IsNotFound reports whether err carries a NotFoundError.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// Describe renders err as the single user facing message shown by admin surfaces.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var invalid *ValidationError
	switch KindOf(err) {
	case KindNotFound:
		var nf *NotFoundError
		errors.As(err, &nf)
		return fmt.Sprintf("The requested %s no longer exists.", humanize(nf.Resource))
	case KindValidation:
		if errors.As(err, &invalid) {
			if fields := invalid.Fields(); len(fields) > 0 {
				return "Please correct: " + joinFields(fields)
			}
		}
		return "The submitted data is invalid."
	case KindConflict:
		return "Another entry already uses one of these values."
	case KindPartial:
		return "The change was only partly saved. Please retry."
	case KindTransport:
		return "The server could not be reached. Check your connection and retry."
	case KindMapping:
		return "Stored content is malformed."
	default:
		return "Something went wrong while saving. Please retry."
	}
}

// Categorize maps err onto a go-errors value carrying the transport status.
func Categorize(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	kind := KindOf(err)
	var wrapped *goerrors.Error
	switch kind {
	case KindNotFound:
		wrapped = goerrors.Wrap(err, goerrors.CategoryNotFound, err.Error()).WithCode(http.StatusNotFound)
	case KindValidation:
		wrapped = goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).WithCode(http.StatusBadRequest)
	case KindConflict:
		wrapped = goerrors.Wrap(err, goerrors.CategoryConflict, err.Error()).WithCode(http.StatusConflict)
	case KindPartial:
		wrapped = goerrors.Wrap(err, goerrors.CategoryOperation, err.Error()).WithCode(http.StatusBadGateway)
	case KindTransport:
		wrapped = goerrors.Wrap(err, goerrors.CategoryExternal, err.Error()).WithCode(http.StatusServiceUnavailable)
	default:
		wrapped = goerrors.Wrap(err, goerrors.CategoryInternal, err.Error()).WithCode(http.StatusInternalServerError)
	}
	return wrapped.WithTextCode(strings.ToUpper(kind.String()))
}

func humanize(resource string) string {
	if resource == "" {
		return "item"
	}
	return strings.ReplaceAll(resource, "_", " ")
}

func joinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+" "+fields[key])
	}
	return strings.Join(parts, "; ")
}
