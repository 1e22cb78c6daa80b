package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// keys under which serialized decimals wrap their number
var wrapperFields = []string{"value", "d"}

// ParseDecimal coerces a numeric-like value into a decimal.
//
// It accepts what the database driver and older JSON payloads hand back for
// money columns: nil (zero), raw NUMERIC bytes, strings, floats, integers,
// decimals and objects wrapping the number under "value" or "d".
func ParseDecimal(v any) (decimal.Decimal, error) {
	switch value := v.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return value, nil
	case *decimal.Decimal:
		if value == nil {
			return decimal.Zero, nil
		}
		return *value, nil
	case decimal.NullDecimal:
		if !value.Valid {
			return decimal.Zero, nil
		}
		return value.Decimal, nil
	case []byte:
		return parseDecimalString(string(value))
	case string:
		return parseDecimalString(value)
	case float64:
		return decimal.NewFromFloat(value), nil
	case float32:
		return decimal.NewFromFloat32(value), nil
	case int:
		return decimal.NewFromInt(int64(value)), nil
	case int32:
		return decimal.NewFromInt32(value), nil
	case int64:
		return decimal.NewFromInt(value), nil
	case map[string]any:
		for _, field := range wrapperFields {
			if inner, ok := value[field]; ok {
				return ParseDecimal(inner)
			}
		}
		return decimal.Zero, fmt.Errorf("parse decimal: object without value field")
	case fmt.Stringer:
		return parseDecimalString(value.String())
	default:
		return decimal.Zero, fmt.Errorf("parse decimal: unsupported type %T", v)
	}
}

func parseDecimalString(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return d, nil
}
