package errors

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies every failure the pipeline can produce so callers can
// branch on the class of error without string matching.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindMalformedID       Kind = "malformed_id"
	KindInvalidParent     Kind = "invalid_parent"
	KindInvalidConfig     Kind = "invalid_config"
	KindConfigMismatch    Kind = "config_mismatch"
	KindDimensionMismatch Kind = "dimension_mismatch"
	KindMissingInput      Kind = "missing_input"
	KindInvalidField      Kind = "invalid_field"
)

// Error carries a kind plus structured detail (offending field, expected vs
// actual shape) so the caller can correct input without inspecting internals.
type Error struct {
	Kind    Kind           `json:"kind"`
	Message string         `json:"message"`
	Detail  map[string]any `json:"detail,omitempty"`
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// With attaches a detail entry and returns the same error for chaining.
func (e *Error) With(key string, value any) *Error {
	if e.Detail == nil {
		e.Detail = map[string]any{}
	}
	e.Detail[key] = value
	return e
}

func (e *Error) Error() string {
	if len(e.Detail) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}

	keys := make([]string, 0, len(e.Detail))
	for k := range e.Detail {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	builder := &strings.Builder{}
	fmt.Fprintf(builder, "%s: %s (", e.Kind, e.Message)
	for i, k := range keys {
		if i > 0 {
			builder.WriteString(", ")
		}
		fmt.Fprintf(builder, "%s=%v", k, e.Detail[k])
	}
	builder.WriteString(")")
	return builder.String()
}

// Is makes errors.Is match on kind, so sentinel-style checks like
// errors.Is(err, &Error{Kind: KindNotFound}) work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// IsKind reports whether err (or anything it wraps) is a pipeline error of
// the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func NotFound(id string) *Error {
	return New(KindNotFound, "resource not found").With("id", id)
}

func MalformedID(id, reason string) *Error {
	return New(KindMalformedID, "malformed resource id").
		With("id", id).
		With("reason", reason)
}

func InvalidParent(parentID string) *Error {
	return New(KindInvalidParent, "parent resource not found at creation").
		With("parent_id", parentID)
}

func InvalidField(field string) *Error {
	return New(KindInvalidField, "field does not exist in the source dataset").
		With("field", field)
}

func DimensionMismatch(what string, expected, actual int) *Error {
	return New(KindDimensionMismatch, "%s length disagrees with criterion count", what).
		With("expected", expected).
		With("actual", actual)
}

func MissingInput(expected string, actual any) *Error {
	return New(KindMissingInput, "upstream resource has the wrong shape").
		With("expected", expected).
		With("actual", fmt.Sprintf("%T", actual))
}

func ConfigMismatch(reason string) *Error {
	return New(KindConfigMismatch, "%s", reason)
}

func InvalidConfig(problems []string) *Error {
	return New(KindInvalidConfig, "configuration failed validation").
		With("problems", strings.Join(problems, "; "))
}
