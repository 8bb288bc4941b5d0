package store

import (
	"github.com/zirospace/zirospace-cms/internal/domain"
)

// Layout describes how a backing store names its per-locale tables.
type Layout struct {
	Name   string
	Prefix string
}

var (
	// RemoteLayout is used against the hosted Postgres (Supabase) database,
	// e.g. zirospace_case_studies_en.
	RemoteLayout = Layout{Name: "remote", Prefix: "zirospace_"}
	// LocalLayout is used against the SQLite file, e.g. case_studies_en.
	LocalLayout = Layout{Name: "local"}
)

// TableName resolves the physical table holding entity rows for locale.
func (l Layout) TableName(entity string, locale domain.Locale) string {
	return l.Prefix + entity + "_" + string(locale)
}
