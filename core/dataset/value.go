// Package dataset defines the categorical example sets consumed by the tree
// and ensemble estimators.
//
// An example is a fixed-length row of Values whose last column is the label.
// Values form a closed variant (string, int, float, bool or missing) that is
// comparable with == and can key a map, which is how split children are
// indexed.
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/dtforest/pkg/errors"
)

// Kind is the variant held by a Value.
type Kind uint8

const (
	// KindMissing is the missing-value sentinel. It is the zero Kind.
	KindMissing Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is one discrete attribute value. The zero Value is Missing.
//
// Two Values are equal only when both kind and payload match, so Int(1) and
// Float(1) are different values, and Missing equals only Missing.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

// MissingSymbol is how Missing is written in CSV input and printed.
const MissingSymbol = "?"

// Missing returns the missing-value sentinel.
func Missing() Value { return Value{} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float Value. NaN has no equality and becomes Missing.
func Float(f float64) Value {
	if math.IsNaN(f) {
		return Missing()
	}
	if f == 0 {
		f = 0 // -0 and +0 must key the same child
	}
	return Value{kind: KindFloat, f: f}
}

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Of converts a Go value to a Value. Supported inputs are Value, nil
// (Missing), string, bool, every int and uint width, float32 and float64.
func Of(v interface{}) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case nil:
		return Missing(), nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return Missing(), errors.Newf("value %d overflows int64", x)
		}
		return Int(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			return Missing(), errors.Newf("value %d overflows int64", x)
		}
		return Int(int64(x)), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	default:
		return Missing(), errors.Newf("unsupported value type %T", v)
	}
}

// Parse reads a textual cell: "?" and "" are Missing, "true"/"false" are
// booleans, integers and floats are numbers, anything else is a string.
func Parse(s string) Value {
	t := strings.TrimSpace(s)
	switch strings.ToLower(t) {
	case "", MissingSymbol:
		return Missing()
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return Float(f)
	}
	return String(t)
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v is the missing-value sentinel.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Equal reports whether v and o are the same value.
func (v Value) Equal(o Value) bool { return v == o }

// Interface returns the payload as a plain Go value; Missing yields nil.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return MissingSymbol
	}
}

// GoString quotes strings so printed trees distinguish "1" from 1.
func (v Value) GoString() string {
	if v.kind == KindString {
		return strconv.Quote(v.s)
	}
	return v.String()
}

// Less orders values by kind, then payload. It gives printed trees and
// reports a stable order and is unrelated to how the tree chooses splits.
func (v Value) Less(o Value) bool {
	if v.kind != o.kind {
		return v.kind < o.kind
	}
	switch v.kind {
	case KindString:
		return v.s < o.s
	case KindInt:
		return v.i < o.i
	case KindFloat:
		return v.f < o.f
	case KindBool:
		return !v.b && o.b
	default:
		return false
	}
}
