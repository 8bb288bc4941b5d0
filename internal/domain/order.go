package domain

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// OrderUpdate assigns a display position to one entity of a locale partition.
// Orders are expected to be a zero-based dense sequence; gaps are tolerated.
type OrderUpdate struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// ValidateOrderUpdates rejects batches with blank ids, negative orders or
// duplicate ids.
func ValidateOrderUpdates(resource string, updates []OrderUpdate) error {
	errs := validation.Errors{}
	seen := make(map[string]int, len(updates))
	for i, update := range updates {
		key := fmt.Sprintf("orders[%d]", i)
		id := strings.TrimSpace(update.ID)
		switch {
		case id == "":
			errs[key] = validation.NewError("cms.order.id_required", "id is required")
		case update.Order < 0:
			errs[key] = validation.NewError("cms.order.negative", "order must be zero or positive")
		default:
			if prev, ok := seen[id]; ok {
				errs[key] = validation.NewError("cms.order.duplicate_id",
					fmt.Sprintf("id %q already listed at position %d", id, prev))
			}
			seen[id] = i
		}
	}
	if len(errs) > 0 {
		return NewValidationError(resource, errs)
	}
	return nil
}

// OrderFromSlice derives a dense ordering from ids listed in display order.
func OrderFromSlice(ids []string) []OrderUpdate {
	out := make([]OrderUpdate, len(ids))
	for i, id := range ids {
		out[i] = OrderUpdate{ID: id, Order: i}
	}
	return out
}
