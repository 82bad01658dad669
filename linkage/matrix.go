package linkage

import (
	"fmt"
	"sort"
	"strings"
)

// Matrix is a set of axes, each with its possible values.
type Matrix struct {
	Axes map[string][]string
}

// Axis names of FactMatrix, in combination order.
const (
	AxisCapability = "capability"
	AxisOverride   = "override"
	AxisPlatform   = "platform"
	AxisRole       = "role"
)

const suppressValue = "noexport"

// FactMatrix returns every value of every fact.
func FactMatrix() Matrix {
	return Matrix{Axes: map[string][]string{
		AxisCapability: {NoVisibility.String(), Visibility.String()},
		AxisOverride:   {"none", suppressValue},
		AxisPlatform:   {Unix.String(), Windows.String()},
		AxisRole:       {Consumer.String(), Producer.String()},
	}}
}

// Keys returns the axis names sorted alphabetically.
func (m *Matrix) Keys() []string {
	keys := make([]string, 0, len(m.Axes))
	for k := range m.Axes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Combinations returns the cartesian product of the axes. Keys are sorted
// alphabetically and the values of one combination are joined with "-".
func (m *Matrix) Combinations() []string {
	if len(m.Axes) == 0 {
		return nil
	}
	keys := m.Keys()

	result := make([]string, len(m.Axes[keys[0]]))
	copy(result, m.Axes[keys[0]])

	for i := 1; i < len(keys); i++ {
		values := m.Axes[keys[i]]
		next := make([]string, 0, len(result)*len(values))
		for _, prev := range result {
			for _, v := range values {
				next = append(next, prev+"-"+v)
			}
		}
		result = next
	}
	return result
}

// CombinationCount returns the number of combinations without building them.
func (m *Matrix) CombinationCount() int {
	if len(m.Axes) == 0 {
		return 0
	}
	count := 1
	for _, v := range m.Axes {
		count *= len(v)
	}
	return count
}

// ParseCombination reverses a FactMatrix combination key.
func ParseCombination(s string) (Facts, error) {
	parts := strings.Split(s, "-")
	m := FactMatrix()
	keys := m.Keys()
	if len(parts) != len(keys) {
		return Facts{}, fmt.Errorf("combination %q: want %d parts, got %d", s, len(keys), len(parts))
	}
	var f Facts
	var err error
	for i, key := range keys {
		v := parts[i]
		switch key {
		case AxisCapability:
			f.Capability, err = ParseCapability(v)
		case AxisOverride:
			switch v {
			case "none":
			case suppressValue:
				f.SuppressExport = true
			default:
				err = fmt.Errorf("override %q: %w", v, ErrUnknownFact)
			}
		case AxisPlatform:
			f.Platform, err = ParsePlatform(v)
		case AxisRole:
			f.Role, err = ParseRole(v)
		}
		if err != nil {
			return Facts{}, fmt.Errorf("combination %q: %w", s, err)
		}
	}
	return f, nil
}

// AllFacts enumerates every fact tuple in combination order.
func AllFacts() []Facts {
	m := FactMatrix()
	combos := m.Combinations()
	all := make([]Facts, 0, len(combos))
	for _, c := range combos {
		f, err := ParseCombination(c)
		if err != nil {
			panic(err)
		}
		all = append(all, f)
	}
	return all
}
