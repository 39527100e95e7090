// Package argtypes provides the built-in argument types of the Aurora command
// engine and the registry an application uses to look them up by name while
// assembling command trees.
package argtypes

import (
	"strconv"
	"strings"
	"time"

	"aurora/pkg/auroratypes"
)

// StringType accepts any non-empty token verbatim.
type StringType struct{}

// String returns the free-text argument type.
func String() *StringType { return &StringType{} }

func (t *StringType) Name() string { return "string" }

func (t *StringType) Parse(_ auroratypes.Caller, token string) (any, error) {
	if strings.TrimSpace(token) == "" {
		return nil, auroratypes.Errorf("Value cannot be empty!")
	}
	return token, nil
}

func (t *StringType) Completions(_ auroratypes.Caller) []string { return []string{} }

// IntegerType parses base-10 integers, optionally within [Min, Max].
type IntegerType struct {
	Min, Max int
	bounded  bool
}

// Integer returns an unbounded integer type.
func Integer() *IntegerType { return &IntegerType{} }

// IntegerRange returns an integer type accepting only values in [min, max].
func IntegerRange(min, max int) *IntegerType {
	return &IntegerType{Min: min, Max: max, bounded: true}
}

func (t *IntegerType) Name() string { return "integer" }

func (t *IntegerType) Parse(_ auroratypes.Caller, token string) (any, error) {
	v, err := strconv.Atoi(token)
	if err != nil {
		return nil, auroratypes.Errorf("'%s' is not a whole number!", token)
	}
	if t.bounded && (v < t.Min || v > t.Max) {
		return nil, auroratypes.Errorf("%d must be between %d and %d!", v, t.Min, t.Max)
	}
	return v, nil
}

func (t *IntegerType) Completions(_ auroratypes.Caller) []string { return []string{} }

// FloatType parses floating point numbers into float64.
type FloatType struct{}

// Float returns the floating point type.
func Float() *FloatType { return &FloatType{} }

func (t *FloatType) Name() string { return "float" }

func (t *FloatType) Parse(_ auroratypes.Caller, token string) (any, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil, auroratypes.Errorf("'%s' is not a number!", token)
	}
	return v, nil
}

func (t *FloatType) Completions(_ auroratypes.Caller) []string { return []string{} }

// BooleanType accepts "true" and "false" in any case.
type BooleanType struct{}

// Boolean returns the boolean type.
func Boolean() *BooleanType { return &BooleanType{} }

func (t *BooleanType) Name() string { return "boolean" }

func (t *BooleanType) Parse(_ auroratypes.Caller, token string) (any, error) {
	switch strings.ToLower(token) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return nil, auroratypes.Errorf("'%s' is not true or false!", token)
	}
}

func (t *BooleanType) Completions(_ auroratypes.Caller) []string {
	return []string{"true", "false"}
}

// DurationType parses Go duration strings such as "90s" or "1h30m".
type DurationType struct{}

// Duration returns the duration type.
func Duration() *DurationType { return &DurationType{} }

func (t *DurationType) Name() string { return "duration" }

func (t *DurationType) Parse(_ auroratypes.Caller, token string) (any, error) {
	d, err := time.ParseDuration(token)
	if err != nil {
		return nil, auroratypes.Errorf("'%s' is not a duration!", token)
	}
	if d < 0 {
		return nil, auroratypes.Errorf("Duration cannot be negative!")
	}
	return d, nil
}

func (t *DurationType) Completions(_ auroratypes.Caller) []string {
	return []string{"30s", "1m", "5m", "1h"}
}

// EnumType accepts one of a fixed set of values, ignoring case, and returns
// the value in its declared spelling.
type EnumType struct {
	name   string
	values []string
}

// Enum returns an enumeration type labelled name.
func Enum(name string, values ...string) *EnumType {
	return &EnumType{name: name, values: append([]string(nil), values...)}
}

func (t *EnumType) Name() string { return t.name }

func (t *EnumType) Parse(_ auroratypes.Caller, token string) (any, error) {
	for _, v := range t.values {
		if strings.EqualFold(v, token) {
			return v, nil
		}
	}
	return nil, auroratypes.Errorf("'%s' is not a valid %s!", token, t.name)
}

func (t *EnumType) Completions(_ auroratypes.Caller) []string {
	out := make([]string, len(t.values))
	copy(out, t.values)
	return out
}

// Location is a point in world coordinates.
type Location struct {
	X, Y, Z float64
}

// LocationType parses "x,y,z" into a Location.
type LocationType struct{}

// Coordinates returns the location type.
func Coordinates() *LocationType { return &LocationType{} }

func (t *LocationType) Name() string { return "location" }

func (t *LocationType) Parse(_ auroratypes.Caller, token string) (any, error) {
	parts := strings.Split(token, ",")
	if len(parts) != 3 {
		return nil, auroratypes.Errorf("'%s' is not a location, expected x,y,z!", token)
	}
	var coords [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, auroratypes.Errorf("'%s' is not a location, expected x,y,z!", token)
		}
		coords[i] = v
	}
	return Location{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

func (t *LocationType) Completions(_ auroratypes.Caller) []string {
	return []string{"0,64,0"}
}
