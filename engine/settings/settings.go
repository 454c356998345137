// Package settings is the typed key/value lookup every engine component
// reads its tunables from. Values are stored as strings, the way the
// preferences file keeps them, and converted on lookup.
package settings

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/hubastard/bastion/engine/colors"
)

var (
	ErrUnknownKey = errors.New("settings: unknown key")
	ErrLocked     = errors.New("settings: key is locked")
)

// Entry is one stored value.
type Entry struct {
	Value       string
	Description string
	Locked      bool
}

// Store holds every known key. The zero value is empty; use New for the
// built-in defaults.
type Store struct {
	entries map[string]Entry
}

// New returns a store populated with the built-in defaults.
func New() *Store {
	s := &Store{entries: make(map[string]Entry, len(defaults))}
	for _, d := range defaults {
		s.entries[d.key] = Entry{Value: d.value, Description: d.description, Locked: d.locked}
	}
	return s
}

// String returns the raw value, or "" for an unknown key.
func (s *Store) String(key string) string {
	return s.entries[key].Value
}

// Float parses the value; unparsable or unknown values read as 0.
func (s *Store) Float(key string) float32 {
	v, err := strconv.ParseFloat(s.String(key), 32)
	if err != nil {
		return 0
	}
	return float32(v)
}

// Int is Float truncated.
func (s *Store) Int(key string) int { return int(s.Float(key)) }

// Bool is true for anything other than "false".
func (s *Store) Bool(key string) bool { return s.String(key) != "false" }

// Color parses an "rrggbbaa" value; malformed values read as transparent black.
func (s *Store) Color(key string) colors.Color {
	c, err := colors.ParseHex(s.String(key))
	if err != nil {
		return colors.Color{}
	}
	return c
}

// Has reports whether key is known.
func (s *Store) Has(key string) bool {
	_, ok := s.entries[key]
	return ok
}

// Set stores v under an existing key, formatted the same way defaults are.
func (s *Store) Set(key string, v any) error {
	e, ok := s.entries[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if e.Locked {
		return fmt.Errorf("%w: %q", ErrLocked, key)
	}
	str, err := format(v)
	if err != nil {
		return fmt.Errorf("settings: %q: %w", key, err)
	}
	e.Value = str
	s.entries[key] = e
	return nil
}

// Keys lists every key in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entry returns the stored entry for key.
func (s *Store) Entry(key string) (Entry, bool) {
	e, ok := s.entries[key]
	return e, ok
}

// Overlay decodes a YAML mapping and applies every value to the store.
// Unknown keys are reported together after the known ones are applied.
func (s *Store) Overlay(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("settings: decode: %w", err)
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		if err := s.Set(k, raw[k]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadFile overlays the YAML file at path. A missing file is not an error.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %q: %w", path, err)
	}
	return s.Overlay(data)
}

func format(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case colors.Color:
		return x.Hex(), nil
	case []any:
		if len(x) != 4 {
			return "", fmt.Errorf("colour list needs 4 components, got %d", len(x))
		}
		var c colors.Color
		for i, e := range x {
			switch n := e.(type) {
			case int:
				c[i] = float32(n)
			case float64:
				c[i] = float32(n)
			default:
				return "", fmt.Errorf("colour component %v is not a number", e)
			}
		}
		return c.Hex(), nil
	}
	return "", fmt.Errorf("unsupported value %T", v)
}
