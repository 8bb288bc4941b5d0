package store

import (
	"github.com/zirospace/zirospace-cms/pkg/interfaces"
)

// MapRecords converts rows with toDomain, skipping (and logging) rows that
// fail to map so one malformed record never hides a whole partition.
func MapRecords[R any, E any](logger interfaces.Logger, rows []R, toDomain func(R) (E, error)) []E {
	out := make([]E, 0, len(rows))
	for _, row := range rows {
		entity, err := toDomain(row)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping unmappable record", "error", err)
			}
			continue
		}
		out = append(out, entity)
	}
	return out
}

// Columns collects the persistence columns of a partial update. Only
// provided fields are present, so absent never collapses into cleared.
type Columns map[string]any

// SetColumn records column when value was provided.
func SetColumn[T any](c Columns, column string, value *T) {
	if value != nil {
		c[column] = *value
	}
}
