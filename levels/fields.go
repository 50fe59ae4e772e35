package levels

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/solarlune/ldtkgo"
)

var (
	ErrMissingField = errors.New("missing field")
	ErrFieldType    = errors.New("unexpected field type")
	ErrNullField    = errors.New("field has no value")
	ErrUnknownEnum  = errors.New("unknown enum value")
)

// FieldError reports a field of an entity instance that could not be decoded.
// It wraps one of the Err* sentinels.
type FieldError struct {
	Entity string
	IID    string
	Field  string
	Value  string
	Err    error
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("levels: entity %q (%s): field %q: %v", e.Entity, e.IID, e.Field, e.Err)
	if e.Value != "" {
		msg += fmt.Sprintf(" (value %s)", e.Value)
	}
	return msg
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError builds a *FieldError for ent.
func NewFieldError(ent *ldtkgo.Entity, field string, err error, value string) *FieldError {
	return &FieldError{Entity: ent.Identifier, IID: ent.IID, Field: field, Value: value, Err: err}
}

// Field finds a field by exact identifier.
func Field(ent *ldtkgo.Entity, identifier string) (*ldtkgo.Property, error) {
	if p := ent.PropertyByIdentifier(identifier); p != nil {
		return p, nil
	}
	return nil, NewFieldError(ent, identifier, ErrMissingField, "")
}

// Points decodes an Array<Point> field. Null slots stay nil so callers can
// decide whether to skip them.
func Points(ent *ldtkgo.Entity, identifier string) ([]*GridPoint, error) {
	f, err := Field(ent, identifier)
	if err != nil {
		return nil, err
	}
	if f.Type != "" && f.Type != "Array<Point>" {
		return nil, NewFieldError(ent, identifier, ErrFieldType, f.Type)
	}
	if f.Value == nil {
		return nil, nil
	}
	items, ok := f.Value.([]any)
	if !ok {
		return nil, NewFieldError(ent, identifier, ErrFieldType, fmt.Sprint(f.Value))
	}
	points := make([]*GridPoint, len(items))
	for i, item := range items {
		if item == nil {
			continue
		}
		p, ok := gridPoint(item)
		if !ok {
			return nil, NewFieldError(ent, identifier, fmt.Errorf("%w: element %d", ErrFieldType, i), fmt.Sprint(item))
		}
		points[i] = p
	}
	return points, nil
}

func gridPoint(v any) (*GridPoint, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	cx, okX := m["cx"].(float64)
	cy, okY := m["cy"].(float64)
	if !okX || !okY || cx != math.Trunc(cx) || cy != math.Trunc(cy) {
		return nil, false
	}
	return &GridPoint{CX: int(cx), CY: int(cy)}, true
}

// Enum decodes an enum field to its label.
func Enum(ent *ldtkgo.Entity, identifier string) (string, error) {
	f, err := Field(ent, identifier)
	if err != nil {
		return "", err
	}
	if f.Type != "" && !isEnumType(f.Type) {
		return "", NewFieldError(ent, identifier, ErrFieldType, f.Type)
	}
	if f.Value == nil {
		return "", NewFieldError(ent, identifier, ErrNullField, "")
	}
	label, ok := f.Value.(string)
	if !ok {
		return "", NewFieldError(ent, identifier, ErrFieldType, fmt.Sprint(f.Value))
	}
	return label, nil
}

func isEnumType(t string) bool {
	return strings.HasPrefix(t, "LocalEnum.") || strings.HasPrefix(t, "ExternEnum.")
}
