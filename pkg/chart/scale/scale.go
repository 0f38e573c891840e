// Package scale builds the per-axis mapping functions from data domains to
// pixel ranges.
//
// A scale is configured once per layout pass with a family, a domain and a
// range, then used as a pure function. Values inside the domain map inside
// the range; values outside extrapolate rather than clamp.
package scale

import (
	"math"
	"sort"

	"github.com/matzehuels/chartstack/pkg/errors"
)

// Family selects the transform applied before linear interpolation.
type Family string

// Supported scale families.
const (
	Linear Family = "linear"
	Log    Family = "log"
	Pow    Family = "pow"
	Sqrt   Family = "sqrt"
	Time   Family = "time"
)

// ValidFamilies is the set of accepted scale families.
var ValidFamilies = map[Family]bool{
	Linear: true,
	Log:    true,
	Pow:    true,
	Sqrt:   true,
	Time:   true,
}

// FamilyNames returns all valid family names in sorted order.
func FamilyNames() []string {
	names := make([]string, 0, len(ValidFamilies))
	for f := range ValidFamilies {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// ParseFamily validates a family name from configuration.
// An empty name selects the linear family.
func ParseFamily(name string) (Family, error) {
	if name == "" {
		return Linear, nil
	}
	f := Family(name)
	if !ValidFamilies[f] {
		return "", errors.New(errors.ErrCodeInvalidScale, "unknown scale family: %q", name)
	}
	return f, nil
}

// =============================================================================
// Scale
// =============================================================================

// Scale maps domain values to range values for one axis.
type Scale struct {
	family   Family
	exponent float64 // pow family
	base     float64 // log family

	d0, d1 float64
	r0, r1 float64
}

// Option configures a Scale.
type Option func(*Scale)

// WithDomain sets the domain endpoints.
func WithDomain(d0, d1 float64) Option {
	return func(s *Scale) {
		s.d0, s.d1 = d0, d1
	}
}

// WithRange sets the range endpoints.
func WithRange(r0, r1 float64) Option {
	return func(s *Scale) {
		s.r0, s.r1 = r0, r1
	}
}

// WithExponent sets the exponent for the pow family.
func WithExponent(e float64) Option {
	return func(s *Scale) {
		s.exponent = e
	}
}

// WithBase sets the logarithm base for the log family.
func WithBase(b float64) Option {
	return func(s *Scale) {
		s.base = b
	}
}

// New creates a scale for the given family. Domain and range default to
// [0, 1] until configured.
func New(family Family, opts ...Option) *Scale {
	s := &Scale{
		family:   family,
		exponent: 1,
		base:     10,
		d0:       0, d1: 1,
		r0: 0, r1: 1,
	}
	switch family {
	case Sqrt:
		s.exponent = 0.5
	case Pow:
		s.exponent = 2
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Domain returns the configured domain endpoints.
func (s *Scale) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the configured range endpoints.
func (s *Scale) Range() (float64, float64) { return s.r0, s.r1 }

// Family returns the scale family.
func (s *Scale) Family() Family { return s.family }

// Map converts a domain value to a range value. Out-of-domain values
// extrapolate. A degenerate domain maps everything to the range midpoint.
// Log scales produce NaN for non-positive inputs, which propagates through
// downstream geometry.
func (s *Scale) Map(v float64) float64 {
	t0, t1 := s.transform(s.d0), s.transform(s.d1)
	span := t1 - t0
	if span == 0 {
		return (s.r0 + s.r1) / 2
	}
	t := (s.transform(v) - t0) / span
	return s.r0 + t*(s.r1-s.r0)
}

// Invert converts a range value back to a domain value. It is the inverse of
// Map wherever the transform is invertible.
func (s *Scale) Invert(p float64) float64 {
	rspan := s.r1 - s.r0
	if rspan == 0 {
		return s.d0
	}
	t := (p - s.r0) / rspan
	t0, t1 := s.transform(s.d0), s.transform(s.d1)
	return s.untransform(t0 + t*(t1-t0))
}

// transform applies the family's forward transform. Pow and sqrt preserve
// sign for negative inputs.
func (s *Scale) transform(v float64) float64 {
	switch s.family {
	case Log:
		return math.Log(v) / math.Log(s.base)
	case Pow, Sqrt:
		return signedPow(v, s.exponent)
	default:
		return v
	}
}

func (s *Scale) untransform(v float64) float64 {
	switch s.family {
	case Log:
		return math.Pow(s.base, v)
	case Pow, Sqrt:
		return signedPow(v, 1/s.exponent)
	default:
		return v
	}
}

func signedPow(v, exp float64) float64 {
	if v < 0 {
		return -math.Pow(-v, exp)
	}
	return math.Pow(v, exp)
}
