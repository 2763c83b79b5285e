package toolset

import (
	"fmt"
	"math"
)

// Field types accepted by tool parameter schemas.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeFloat   = "float"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Field declares one accepted parameter: its type, an optional default,
// enumerated values, and numeric bounds. Schemas drive validation only;
// no code is generated from them.
type Field struct {
	Type        string
	Description string
	Required    bool
	Default     any
	Enum        []string
	Minimum     *float64
	Maximum     *float64
	Items       *Field
}

// Schema maps parameter names to their declarations.
type Schema map[string]Field

// ValidationError names the offending field and the violated constraint.
// It surfaces to the caller before any side effect occurs.
type ValidationError struct {
	Field      string
	Constraint string
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Message)
}

func validationErrorf(field, constraint, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:      field,
		Constraint: constraint,
		Message:    fmt.Sprintf(format, args...),
	}
}

// Apply validates args against the schema and returns a coerced copy with
// defaults filled in. Arguments not declared by the schema are dropped
// silently. The input map is never mutated.
func (s Schema) Apply(args map[string]any) (map[string]any, error) {
	coerced := make(map[string]any, len(s))
	for name, field := range s {
		value, present := args[name]
		if !present || value == nil {
			if field.Default != nil {
				coerced[name] = field.Default
				continue
			}
			if field.Required {
				return nil, validationErrorf(name, "required", "required argument is missing")
			}
			continue
		}

		out, err := coerceValue(name, field, value)
		if err != nil {
			return nil, err
		}
		coerced[name] = out
	}
	return coerced, nil
}

func coerceValue(name string, field Field, value any) (any, error) {
	switch field.Type {
	case TypeString:
		text, ok := value.(string)
		if !ok {
			return nil, validationErrorf(name, "type", "expected string, got %T", value)
		}
		if len(field.Enum) > 0 && !containsString(field.Enum, text) {
			return nil, validationErrorf(name, "enum", "value %q is not one of %v", text, field.Enum)
		}
		return text, nil

	case TypeInteger:
		number, ok := asFloat(value)
		if !ok || number != math.Trunc(number) {
			return nil, validationErrorf(name, "type", "expected integer, got %v", value)
		}
		if err := checkBounds(name, field, number); err != nil {
			return nil, err
		}
		return int64(number), nil

	case TypeFloat:
		number, ok := asFloat(value)
		if !ok {
			return nil, validationErrorf(name, "type", "expected number, got %T", value)
		}
		if err := checkBounds(name, field, number); err != nil {
			return nil, err
		}
		return number, nil

	case TypeBoolean:
		flag, ok := value.(bool)
		if !ok {
			return nil, validationErrorf(name, "type", "expected boolean, got %T", value)
		}
		return flag, nil

	case TypeArray:
		items, ok := value.([]any)
		if !ok {
			return nil, validationErrorf(name, "type", "expected array, got %T", value)
		}
		if field.Items == nil {
			return items, nil
		}
		out := make([]any, len(items))
		for i, item := range items {
			coercedItem, err := coerceValue(fmt.Sprintf("%s[%d]", name, i), *field.Items, item)
			if err != nil {
				return nil, err
			}
			out[i] = coercedItem
		}
		return out, nil

	case TypeObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, validationErrorf(name, "type", "expected object, got %T", value)
		}
		return obj, nil

	default:
		return nil, validationErrorf(name, "type", "schema declares unsupported type %q", field.Type)
	}
}

func checkBounds(name string, field Field, number float64) error {
	if field.Minimum != nil && number < *field.Minimum {
		return validationErrorf(name, "minimum", "value %v is below minimum %v", number, *field.Minimum)
	}
	if field.Maximum != nil && number > *field.Maximum {
		return validationErrorf(name, "maximum", "value %v exceeds maximum %v", number, *field.Maximum)
	}
	return nil
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// FloatPtr is a convenience for bounds declarations.
func FloatPtr(v float64) *float64 {
	return &v
}
