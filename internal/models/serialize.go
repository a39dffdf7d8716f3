package models

import (
	"errors"
	"fmt"
	"time"
)

// Mapping is the flattened, JSON-safe view of a record. Values are integers,
// strings, booleans, date strings, nested Mappings or []Mapping.
type Mapping map[string]any

// Serializer is implemented by every entity.
type Serializer interface {
	Serialize() (Mapping, error)
}

// ErrMissingRelation is returned when Serialize needs a related record that was not loaded.
var ErrMissingRelation = errors.New("missing_relation")

// MissingRelationError names the entity and relation that were absent.
type MissingRelationError struct {
	Entity   string
	ID       uint
	Relation string
}

func (e *MissingRelationError) Error() string {
	return fmt.Sprintf("%s %d: %s not loaded", e.Entity, e.ID, e.Relation)
}

func (e *MissingRelationError) Unwrap() error { return ErrMissingRelation }

func missing(entity string, id uint, relation string) error {
	return &MissingRelationError{Entity: entity, ID: id, Relation: relation}
}

// Date layouts used by FormatDate: seconds precision, or microseconds when present.
const (
	DateLayout      = "2006-01-02T15:04:05"
	DateLayoutMicro = "2006-01-02T15:04:05.000000"
)

// FormatDate renders t as an ISO-8601 date-time in UTC without offset,
// e.g. 2024-03-01T09:30:00 or 2024-03-01T09:30:00.250000.
func FormatDate(t time.Time) string {
	t = t.UTC().Truncate(time.Microsecond)
	if t.Nanosecond() == 0 {
		return t.Format(DateLayout)
	}
	return t.Format(DateLayoutMicro)
}

// ParseDate is the inverse of FormatDate.
func ParseDate(s string) (time.Time, error) {
	layout := DateLayout
	if len(s) > len(DateLayout) {
		layout = DateLayoutMicro
	}
	return time.ParseInLocation(layout, s, time.UTC)
}
