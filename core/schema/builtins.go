package schema

import (
	"fmt"

	"github.com/shopspring/decimal"

	"factgraph/core/value"
)

// toDecimal accepts the numeric shapes a decoded JSON input or a literal Go
// test fixture can hold.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		return decimal.Decimal{}, false
	}
}

// --- numericSchema -----------------------------------------------------

type numericSchema struct {
	name string
	min  *decimal.Decimal
}

// Numeric declares a scalar field validated as an exact decimal, optionally
// bounded below by min.
func Numeric(name string, min *decimal.Decimal) Schema {
	return &numericSchema{name: name, min: min}
}

func (s *numericSchema) Name() string { return s.name }

func (s *numericSchema) checkType(v any) (bool, string) {
	d, ok := toDecimal(v)
	if !ok {
		return false, s.missingMessage()
	}
	if s.min != nil && d.LessThan(*s.min) {
		return false, fmt.Sprintf("must be >= %s", s.min.String())
	}
	return true, ""
}

func (s *numericSchema) missingMessage() string { return "must be Numeric" }

func (s *numericSchema) KeyMap() []Key {
	return []Key{ScalarKey{FieldName: s.name}}
}

func (s *numericSchema) Call(record map[string]any) Result {
	return callScalar(s, record)
}

// --- integerSchema -------------------------------------------------------

type integerSchema struct {
	name string
	min  *int64
}

// Integer declares a scalar field validated as a whole number, optionally
// bounded below by min.
func Integer(name string, min *int64) Schema {
	return &integerSchema{name: name, min: min}
}

func (s *integerSchema) Name() string { return s.name }

func (s *integerSchema) checkType(v any) (bool, string) {
	d, ok := toDecimal(v)
	if !ok || !d.Equal(d.Truncate(0)) {
		return false, s.missingMessage()
	}
	if s.min != nil && d.LessThan(decimal.NewFromInt(*s.min)) {
		return false, fmt.Sprintf("must be >= %d", *s.min)
	}
	return true, ""
}

func (s *integerSchema) missingMessage() string { return "must be an integer" }

func (s *integerSchema) KeyMap() []Key {
	return []Key{ScalarKey{FieldName: s.name}}
}

func (s *integerSchema) Call(record map[string]any) Result {
	return callScalar(s, record)
}

// --- stringSchema --------------------------------------------------------

type stringSchema struct {
	name string
}

// String declares a scalar field validated as a string.
func String(name string) Schema {
	return &stringSchema{name: name}
}

func (s *stringSchema) Name() string { return s.name }

func (s *stringSchema) checkType(v any) (bool, string) {
	if _, ok := v.(string); !ok {
		return false, s.missingMessage()
	}
	return true, ""
}

func (s *stringSchema) missingMessage() string { return "must be a string" }

func (s *stringSchema) KeyMap() []Key {
	return []Key{ScalarKey{FieldName: s.name}}
}

func (s *stringSchema) Call(record map[string]any) Result {
	return callScalar(s, record)
}

// callScalar is the shared top-level Call implementation for scalar
// schemas: missing or wrong-typed values produce a single error rooted at
// [name].
func callScalar(s Schema, record map[string]any) Result {
	raw, present := record[s.Name()]
	if !present || raw == nil {
		return Result{Errors: []FieldError{{Path: value.NewKeyPath(s.Name()), Text: s.missingMessage()}}}
	}
	ok, msg := s.checkType(raw)
	if !ok {
		return Result{Errors: []FieldError{{Path: value.NewKeyPath(s.Name()), Text: msg}}}
	}
	return Result{Success: true}
}

// --- arraySchema -----------------------------------------------------------

type arraySchema struct {
	name    string
	element Schema
}

// Array declares a field validated as a sequence of values, each validated
// against element.
func Array(name string, element Schema) Schema {
	return &arraySchema{name: name, element: element}
}

func (s *arraySchema) Name() string { return s.name }

func (s *arraySchema) missingMessage() string { return "must be an array" }

func toSlice(v any) ([]any, bool) {
	switch sl := v.(type) {
	case []any:
		return sl, true
	default:
		return nil, false
	}
}

func (s *arraySchema) checkType(v any) (bool, string) {
	if _, ok := toSlice(v); !ok {
		return false, s.missingMessage()
	}
	return true, ""
}

func (s *arraySchema) KeyMap() []Key {
	return []Key{ArrayKey{FieldName: s.name, schema: s}}
}

func (s *arraySchema) Call(record map[string]any) Result {
	raw, present := record[s.name]
	if !present || raw == nil {
		return Result{Errors: []FieldError{{Path: value.NewKeyPath(s.name), Text: s.missingMessage()}}}
	}
	items, ok := toSlice(raw)
	if !ok {
		return Result{Errors: []FieldError{{Path: value.NewKeyPath(s.name), Text: s.missingMessage()}}}
	}
	var errs []FieldError
	for i, item := range items {
		path := append(value.NewKeyPath(s.name), value.IndexSegment(i))
		errs = append(errs, checkElement(s.element, item, path)...)
	}
	return Result{Success: len(errs) == 0, Errors: errs}
}

// checkElement validates a single element against its schema, recursing
// into Hash/Array members, and rooting every reported error at path.
func checkElement(elem Schema, v any, path value.KeyPath) []FieldError {
	switch e := elem.(type) {
	case *hashSchema:
		return e.checkFields(v, path)
	case *arraySchema:
		items, ok := toSlice(v)
		if !ok {
			return []FieldError{{Path: path, Text: e.missingMessage()}}
		}
		var errs []FieldError
		for i, item := range items {
			errs = append(errs, checkElement(e.element, item, path.Append(value.IndexSegment(i)))...)
		}
		return errs
	default:
		ok, msg := elem.checkType(v)
		if !ok {
			return []FieldError{{Path: path, Text: msg}}
		}
		return nil
	}
}

// --- hashSchema ------------------------------------------------------------

// Field is one named member of a Hash schema.
type Field struct {
	Name   string
	Schema Schema
}

type hashSchema struct {
	name   string
	fields []Field
}

// Hash declares a field validated as a keyed object with the given member
// fields. Each field's Schema is used only for type checking and KeyMap
// purposes; its own Name is expected to equal the Field's Name.
func Hash(name string, fields ...Field) Schema {
	return &hashSchema{name: name, fields: fields}
}

func (s *hashSchema) Name() string { return s.name }

func (s *hashSchema) missingMessage() string { return "must be an object" }

func toObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func (s *hashSchema) checkType(v any) (bool, string) {
	if _, ok := toObject(v); !ok {
		return false, s.missingMessage()
	}
	return true, ""
}

func (s *hashSchema) KeyMap() []Key {
	return []Key{HashKey{FieldName: s.name, schema: s}}
}

func (s *hashSchema) Call(record map[string]any) Result {
	raw, present := record[s.name]
	if !present || raw == nil {
		return Result{Errors: []FieldError{{Path: value.NewKeyPath(s.name), Text: s.missingMessage()}}}
	}
	errs := s.checkFields(raw, value.NewKeyPath(s.name))
	return Result{Success: len(errs) == 0, Errors: errs}
}

// checkFields validates v as this hash's member fields, rooting every
// reported error at path. A missing member always reports "is missing",
// regardless of which leaf type it would otherwise have validated as.
func (s *hashSchema) checkFields(v any, path value.KeyPath) []FieldError {
	obj, ok := toObject(v)
	if !ok {
		return []FieldError{{Path: path, Text: s.missingMessage()}}
	}
	var errs []FieldError
	for _, f := range s.fields {
		memberPath := append(append(value.KeyPath{}, path...), value.NameSegment(f.Name))
		raw, present := obj[f.Name]
		if !present || raw == nil {
			errs = append(errs, FieldError{Path: memberPath, Text: "is missing"})
			continue
		}
		errs = append(errs, checkElement(f.Schema, raw, memberPath)...)
	}
	return errs
}
