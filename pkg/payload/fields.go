package payload

import (
	"encoding/json"
	"math/big"
	"strconv"
	"strings"
)

// fields gives typed access to the loosely typed data map of a single kind.
type fields struct {
	kind Kind
	data map[string]any
}

// required returns the field value or a missing-field error.
func (f fields) required(name string) (string, error) {
	v, ok, err := f.optional(name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", missing(f.kind, name)
	}
	return v, nil
}

// optional returns the field value and whether it was supplied.
// Absent, null and blank values are reported as not supplied.
func (f fields) optional(name string) (string, bool, error) {
	raw, ok := f.data[name]
	if !ok || raw == nil {
		return "", false, nil
	}
	s, ok := scalar(raw)
	if !ok {
		return "", false, invalid(f.kind, name, "must be a string, number or boolean")
	}
	if strings.TrimSpace(s) == "" {
		return "", false, nil
	}
	return s, true, nil
}

// list accepts either a single value or an array of values.
// Blank entries are skipped.
func (f fields) list(name string) ([]string, error) {
	raw, ok := f.data[name]
	if !ok || raw == nil {
		return nil, nil
	}
	items, isSlice := raw.([]any)
	if !isSlice {
		if ss, ok := raw.([]string); ok {
			items = make([]any, len(ss))
			for i, s := range ss {
				items[i] = s
			}
		} else {
			items = []any{raw}
		}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		s, ok := scalar(item)
		if !ok {
			return nil, invalid(f.kind, name, "must be a string or a list of strings")
		}
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// boolean reads a flag given as a JSON boolean, the number 0 or 1, or a
// string understood by strconv.ParseBool.
func (f fields) boolean(name string) (bool, error) {
	raw, ok := f.data[name]
	if !ok || raw == nil {
		return false, nil
	}
	if b, ok := raw.(bool); ok {
		return b, nil
	}
	s, ok := scalar(raw)
	if !ok {
		return false, invalid(f.kind, name, "must be true or false")
	}
	if s = strings.TrimSpace(s); s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, invalid(f.kind, name, "must be true or false")
	}
	return b, nil
}

func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return number(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}

// number renders a JSON number literal in plain decimal notation without
// exponent or trailing zeros. Integers keep every digit.
func number(n json.Number) string {
	lit := n.String()
	if _, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return lit
	}
	f, ok := new(big.Float).SetPrec(256).SetString(lit)
	if !ok {
		return lit
	}
	return f.Text('f', -1)
}
