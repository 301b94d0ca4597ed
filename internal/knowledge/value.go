package knowledge

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ValueKind discriminates the payload of a fact value.
type ValueKind uint8

const (
	_value_kind_beg ValueKind = iota
	ValueKindSymbol
	ValueKindScalar
	ValueKindText
	_value_kind_end
)

func (k ValueKind) IsAvailable() bool {
	return k > _value_kind_beg && k < _value_kind_end
}

func (k ValueKind) String() string {
	switch k {
	case ValueKindSymbol:
		return "symbol"
	case ValueKindScalar:
		return "scalar"
	case ValueKindText:
		return "text"
	default:
		return "unknown"
	}
}

// Value is the third position of a fact triple. Exactly one payload
// field is meaningful, selected by Kind.
type Value struct {
	Kind   ValueKind
	Symbol string
	Scalar decimal.Decimal
	Text   string
}

// SymbolValue references another subject, normalized like subjects are.
func SymbolValue(name string) Value {
	return Value{Kind: ValueKindSymbol, Symbol: Normalize(name)}
}

// ScalarValue holds a numeric fact such as a volatility score.
func ScalarValue(d decimal.Decimal) Value {
	return Value{Kind: ValueKindScalar, Scalar: d}
}

// TextValue holds free-form prose such as an investment principle.
func TextValue(text string) Value {
	return Value{Kind: ValueKindText, Text: text}
}

// Equal reports exact unification between two values. Scalars compare
// numerically so "8.0" and "8" unify.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case ValueKindSymbol:
		return v.Symbol == other.Symbol
	case ValueKindScalar:
		return v.Scalar.Equal(other.Scalar)
	case ValueKindText:
		return v.Text == other.Text
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case ValueKindSymbol:
		return v.Symbol
	case ValueKindScalar:
		return v.Scalar.String()
	case ValueKindText:
		return v.Text
	default:
		return ""
	}
}

func parseScalar(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// Normalize lowers and trims an authored relation or subject so lookups
// are insensitive to authoring inconsistencies. Spaces and hyphens
// collapse to underscores.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
