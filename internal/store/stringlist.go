package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is a list column. It is written as a JSON array and read back
// from a JSON array, a JSON-encoded string holding an array, a Postgres array
// literal, or a native driver slice, whichever the engine hands back.
// A NULL column reads as nil; an empty array reads as an empty slice.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	encoded, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return l.decode(string(value))
	case string:
		return l.decode(value)
	case []string:
		*l = append(StringList{}, value...)
		return nil
	case []any:
		out := make(StringList, 0, len(value))
		for _, item := range value {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("store: cannot scan %T into StringList", src)
	}
}

// UnmarshalJSON accepts either a JSON array or a JSON string holding one.
func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = nil
		return nil
	}
	return l.decode(trimmed)
}

func (l *StringList) decode(raw string) error {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		*l = nil
		return nil
	case strings.HasPrefix(trimmed, "["):
		var out []string
		if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
			return fmt.Errorf("store: decode list: %w", err)
		}
		if out == nil {
			out = []string{}
		}
		*l = out
		return nil
	case strings.HasPrefix(trimmed, `"`):
		var inner string
		if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
			return fmt.Errorf("store: decode list: %w", err)
		}
		return l.decode(inner)
	case strings.HasPrefix(trimmed, "{"):
		out, err := parsePGArray(trimmed)
		if err != nil {
			return err
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("store: unsupported list encoding %q", trimmed)
	}
}

// parsePGArray reads a one-dimensional Postgres text[] literal.
func parsePGArray(literal string) (StringList, error) {
	if !strings.HasSuffix(literal, "}") {
		return nil, fmt.Errorf("store: malformed array literal %q", literal)
	}
	body := literal[1 : len(literal)-1]
	out := StringList{}
	if body == "" {
		return out, nil
	}

	var (
		current  strings.Builder
		quoted   bool
		wasQuote bool
		escaped  bool
	)
	flush := func() {
		item := current.String()
		if !wasQuote && strings.EqualFold(item, "NULL") {
			current.Reset()
			return
		}
		out = append(out, item)
		current.Reset()
		wasQuote = false
	}
	for _, r := range body {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quoted:
			escaped = true
		case r == '"':
			quoted = !quoted
			wasQuote = true
		case r == ',' && !quoted:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	if quoted {
		return nil, fmt.Errorf("store: unterminated quote in array literal %q", literal)
	}
	flush()
	return out, nil
}
