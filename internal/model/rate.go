package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Rate is a single interest rate in percent per year (e.g. 5.0 = 5%/year).
// A Rate is either a decimal value or missing. Source cells that cannot be
// parsed coerce to the missing Rate; they are never rejected and never
// treated as zero.
type Rate struct {
	value decimal.Decimal
	valid bool
}

func RateFrom(d decimal.Decimal) Rate {
	return Rate{value: d, valid: true}
}

func RateFromFloat(f float64) Rate {
	return Rate{value: decimal.NewFromFloat(f), valid: true}
}

// MissingRate is the missing-value marker.
func MissingRate() Rate { return Rate{} }

// ParseRate coerces a raw spreadsheet cell into a Rate. It accepts numbers
// and numeric strings, with an optional trailing "%". Anything else (text,
// empty cells, nil) becomes the missing Rate.
func ParseRate(cell any) Rate {
	switch v := cell.(type) {
	case nil:
		return Rate{}
	case Rate:
		return v
	case float64:
		return RateFromFloat(v)
	case float32:
		return RateFromFloat(float64(v))
	case int:
		return Rate{value: decimal.NewFromInt(int64(v)), valid: true}
	case int64:
		return Rate{value: decimal.NewFromInt(v), valid: true}
	case json.Number:
		return parseRateString(v.String())
	case string:
		return parseRateString(v)
	default:
		return Rate{}
	}
}

func parseRateString(s string) Rate {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return Rate{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Rate{}
	}
	return Rate{value: d, valid: true}
}

// Valid reports whether the rate holds a value.
func (r Rate) Valid() bool { return r.valid }

// Decimal returns the underlying value. Only meaningful when Valid.
func (r Rate) Decimal() decimal.Decimal { return r.value }

// Float returns the value as a float64 (0 when missing). Chart payloads use
// JSON marshaling instead; this is for callers that need raw numbers.
func (r Rate) Float() float64 {
	f, _ := r.value.Float64()
	return f
}

// Percent renders the rate with exactly two decimal digits and a percent
// sign ("5.00%"). Missing rates render as the empty string; the caller picks
// its own placeholder.
func (r Rate) Percent() string {
	if !r.valid {
		return ""
	}
	return r.value.StringFixed(2) + "%"
}

// GreaterThan reports whether r is valid and strictly greater than other.
// A valid rate always beats a missing one.
func (r Rate) GreaterThan(other Rate) bool {
	if !r.valid {
		return false
	}
	if !other.valid {
		return true
	}
	return r.value.GreaterThan(other.value)
}

func (r Rate) Equal(other Rate) bool {
	if r.valid != other.valid {
		return false
	}
	return !r.valid || r.value.Equal(other.value)
}

func (r Rate) String() string {
	if !r.valid {
		return "<missing>"
	}
	return r.value.String()
}

// MarshalJSON emits the exact decimal as a bare JSON number, or null when
// missing, so chart renderers get gaps instead of zero-height bars.
func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte("null"), nil
	}
	return []byte(r.value.String()), nil
}

func (r *Rate) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*r = Rate{}
		return nil
	}
	*r = parseRateString(strings.Trim(s, `"`))
	return nil
}

// UnmarshalYAML lets dataset files write rates as plain scalars (2.9, "5.5%",
// or a non-numeric placeholder, which becomes the missing Rate).
func (r *Rate) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("rate must be a scalar, got %v", node.Kind)
	}
	if node.Tag == "!!null" {
		*r = Rate{}
		return nil
	}
	*r = parseRateString(node.Value)
	return nil
}

func (r Rate) MarshalYAML() (interface{}, error) {
	if !r.valid {
		return nil, nil
	}
	f, _ := r.value.Float64()
	return f, nil
}
