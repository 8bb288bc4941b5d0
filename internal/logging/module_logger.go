package logging

import (
	"context"
	"strings"

	"github.com/zirospace/zirospace-cms/pkg/interfaces"
)

const (
	rootModule    = "cms"
	storeModule   = "cms.store"
	contentModule = "cms.content"
	adminModule   = "cms.admin"
	httpModule    = "cms.http"
)

const (
	fieldEntity = "entity"
	fieldLocale = "locale"
	fieldID     = "id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// StoreLogger returns the namespace used by storage plumbing.
func StoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storeModule)
}

// ContentLogger returns the namespace of one content entity, e.g.
// cms.content.case_studies.
func ContentLogger(provider interfaces.LoggerProvider, entity string) interfaces.Logger {
	entity = strings.TrimSpace(entity)
	if entity == "" {
		return ModuleLogger(provider, contentModule)
	}
	return ModuleLogger(provider, contentModule+"."+entity)
}

// AdminLogger returns the namespace of the admin synchronization layer.
func AdminLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, adminModule)
}

// HTTPLogger returns the namespace of the HTTP transport.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithRecord enriches logger with the entity, locale and id of the row being
// worked on. Empty values are ignored.
func WithRecord(logger interfaces.Logger, entity, locale, id string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(entity); trimmed != "" {
		fields[fieldEntity] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldLocale] = trimmed
	}
	if trimmed := strings.TrimSpace(id); trimmed != "" {
		fields[fieldID] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
