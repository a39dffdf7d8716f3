package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/validation"
)

var (
	ErrNotFound            = errors.New("not_found")
	ErrConstraintViolation = errors.New("constraint_violation")
)

// ConstraintKind names the kind of declared constraint a write violated.
type ConstraintKind string

const (
	KindUnique     ConstraintKind = "unique"
	KindPrimaryKey ConstraintKind = "primary_key"
	KindForeignKey ConstraintKind = "foreign_key"
	KindNotNull    ConstraintKind = "not_null"
	KindLength     ConstraintKind = "length"
	KindRequired   ConstraintKind = "required"
	KindFormat     ConstraintKind = "format"
)

// ConstraintError reports a write rejected by a declared constraint, either by
// validation before the write or by the database itself.
type ConstraintError struct {
	Kind       ConstraintKind
	Entity     string
	Field      string
	Constraint string
	Violations validation.Violations
	Err        error
}

func (e *ConstraintError) Error() string {
	msg := fmt.Sprintf("%s: %s constraint violated", e.Entity, e.Kind)
	if e.Field != "" {
		msg += " on " + e.Field
	}
	if e.Constraint != "" {
		msg += " (" + e.Constraint + ")"
	}
	return msg
}

func (e *ConstraintError) Is(target error) bool { return target == ErrConstraintViolation }

func (e *ConstraintError) Unwrap() error { return e.Err }

func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

func foreignKey(entity, field string) error {
	return &ConstraintError{Kind: KindForeignKey, Entity: entity, Field: field}
}

// checkStruct runs the validate tags of v.
func checkStruct(entity string, v any) error {
	return fromViolations(entity, validation.Struct(v))
}

func fromViolations(entity string, v validation.Violations) error {
	if v.Empty() {
		return nil
	}
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	first := fields[0]
	kind := KindFormat
	switch v[first] {
	case "required":
		kind = KindRequired
	case "too_long":
		kind = KindLength
	}
	return &ConstraintError{Kind: kind, Entity: entity, Field: first, Violations: v}
}

// classify maps storage errors onto ErrNotFound and *ConstraintError.
// Anything it does not recognize is returned wrapped with the entity name.
func classify(entity string, err error) error {
	if err == nil {
		return nil
	}
	var ce *ConstraintError
	if errors.As(err, &ce) || errors.Is(err, ErrNotFound) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind, ok := pgKinds[pgErr.Code]
		if ok {
			if kind == KindUnique && strings.HasSuffix(pgErr.ConstraintName, "_pkey") {
				kind = KindPrimaryKey
			}
			return &ConstraintError{Kind: kind, Entity: entity, Field: pgErr.ColumnName, Constraint: pgErr.ConstraintName, Err: err}
		}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		kind, ok := sqliteKinds[liteErr.ExtendedCode]
		if !ok {
			kind = KindUnique
		}
		constraint, field := sqliteTarget(liteErr.Error())
		return &ConstraintError{Kind: kind, Entity: entity, Field: field, Constraint: constraint, Err: err}
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ConstraintError{Kind: KindUnique, Entity: entity, Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &ConstraintError{Kind: KindForeignKey, Entity: entity, Err: err}
	}
	return fmt.Errorf("%s: %w", entity, err)
}

var pgKinds = map[string]ConstraintKind{
	"23505": KindUnique,
	"23503": KindForeignKey,
	"23502": KindNotNull,
	"22001": KindLength,
}

var sqliteKinds = map[sqlite3.ErrNoExtended]ConstraintKind{
	sqlite3.ErrConstraintUnique:     KindUnique,
	sqlite3.ErrConstraintPrimaryKey: KindPrimaryKey,
	sqlite3.ErrConstraintForeignKey: KindForeignKey,
	sqlite3.ErrConstraintNotNull:    KindNotNull,
}

// sqliteTarget extracts "users.email" style targets from messages such as
// "UNIQUE constraint failed: users.email". field is set when a single column failed.
func sqliteTarget(msg string) (constraint, field string) {
	i := strings.LastIndex(msg, ": ")
	if i < 0 {
		return "", ""
	}
	constraint = strings.TrimSpace(msg[i+2:])
	cols := strings.Split(constraint, ",")
	if len(cols) == 1 {
		if j := strings.LastIndex(constraint, "."); j >= 0 {
			field = constraint[j+1:]
		}
	}
	return constraint, field
}
