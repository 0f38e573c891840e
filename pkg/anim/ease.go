// Package anim drives animated chart transitions.
//
// The layout engine itself is a pure function; animation happens outside
// it. A Tween holds two prop states and produces interpolated props for
// any progress value, and a Timeline chains tweens across keyframes. The
// caller re-invokes chart.Layout with each interpolated state, either on a
// deterministic frame grid or on a wall-clock schedule.
package anim

import (
	"math"
	"sort"

	"github.com/matzehuels/chartstack/pkg/errors"
)

// DefaultEasing is applied when no easing is configured.
const DefaultEasing = "quadInOut"

// EaseFunc maps normalized progress in [0, 1] to eased progress.
type EaseFunc func(t float64) float64

// eases is the registry of named easing functions. Bare family names are
// aliases for their InOut variant.
var eases = map[string]EaseFunc{
	"linear": func(t float64) float64 { return t },

	"quadIn":    quadIn,
	"quadOut":   quadOut,
	"quadInOut": quadInOut,
	"quad":      quadInOut,

	"cubicIn":    cubicIn,
	"cubicOut":   cubicOut,
	"cubicInOut": cubicInOut,
	"cubic":      cubicInOut,

	"polyIn":    polyIn,
	"polyOut":   polyOut,
	"polyInOut": polyInOut,
	"poly":      polyInOut,

	"sinIn":    sinIn,
	"sinOut":   sinOut,
	"sinInOut": sinInOut,
	"sin":      sinInOut,

	"expIn":    expIn,
	"expOut":   expOut,
	"expInOut": expInOut,
	"exp":      expInOut,

	"circleIn":    circleIn,
	"circleOut":   circleOut,
	"circleInOut": circleInOut,
	"circle":      circleInOut,

	"backIn":    backIn,
	"backOut":   backOut,
	"backInOut": backInOut,
	"back":      backInOut,

	"bounceIn":    bounceIn,
	"bounceOut":   bounceOut,
	"bounceInOut": bounceInOut,
	"bounce":      bounceInOut,

	"elasticIn":    elasticIn,
	"elasticOut":   elasticOut,
	"elasticInOut": elasticInOut,
	"elastic":      elasticInOut,
}

// ParseEasing resolves an easing name. Empty selects the default.
func ParseEasing(name string) (EaseFunc, error) {
	if name == "" {
		name = DefaultEasing
	}
	fn, ok := eases[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidEasing, "unknown easing: %q", name)
	}
	return fn, nil
}

// ValidEasing reports whether name is a known easing.
func ValidEasing(name string) bool {
	_, ok := eases[name]
	return ok
}

// EasingNames returns all registered easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(eases))
	for name := range eases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// Easing families
// =============================================================================

func quadIn(t float64) float64  { return t * t }
func quadOut(t float64) float64 { return t * (2 - t) }
func quadInOut(t float64) float64 {
	if t *= 2; t <= 1 {
		return t * t / 2
	}
	t--
	return (t*(2-t) + 1) / 2
}

func cubicIn(t float64) float64 { return t * t * t }
func cubicOut(t float64) float64 {
	t--
	return t*t*t + 1
}
func cubicInOut(t float64) float64 {
	if t *= 2; t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

const polyExponent = 3

func polyIn(t float64) float64  { return math.Pow(t, polyExponent) }
func polyOut(t float64) float64 { return 1 - math.Pow(1-t, polyExponent) }
func polyInOut(t float64) float64 {
	if t *= 2; t <= 1 {
		return math.Pow(t, polyExponent) / 2
	}
	return (2 - math.Pow(2-t, polyExponent)) / 2
}

const halfPi = math.Pi / 2

func sinIn(t float64) float64  { return 1 - math.Cos(t*halfPi) }
func sinOut(t float64) float64 { return math.Sin(t * halfPi) }
func sinInOut(t float64) float64 {
	return (1 - math.Cos(math.Pi*t)) / 2
}

func expIn(t float64) float64  { return math.Pow(2, 10*(t-1)) }
func expOut(t float64) float64 { return 1 - math.Pow(2, -10*t) }
func expInOut(t float64) float64 {
	if t *= 2; t <= 1 {
		return math.Pow(2, 10*(t-1)) / 2
	}
	return (2 - math.Pow(2, -10*(t-1))) / 2
}

func circleIn(t float64) float64  { return 1 - math.Sqrt(1-t*t) }
func circleOut(t float64) float64 { return math.Sqrt(1 - (t-1)*(t-1)) }
func circleInOut(t float64) float64 {
	if t *= 2; t <= 1 {
		return (1 - math.Sqrt(1-t*t)) / 2
	}
	t -= 2
	return (math.Sqrt(1-t*t) + 1) / 2
}

const backOvershoot = 1.70158

func backIn(t float64) float64 {
	return t * t * ((backOvershoot+1)*t - backOvershoot)
}
func backOut(t float64) float64 {
	t--
	return t*t*((backOvershoot+1)*t+backOvershoot) + 1
}
func backInOut(t float64) float64 {
	const s = backOvershoot * 1.525
	if t *= 2; t <= 1 {
		return t * t * ((s+1)*t - s) / 2
	}
	t -= 2
	return (t*t*((s+1)*t+s) + 2) / 2
}

func bounceIn(t float64) float64 { return 1 - bounceOut(1-t) }
func bounceOut(t float64) float64 {
	const (
		b1 = 4.0 / 11
		b2 = 6.0 / 11
		b3 = 8.0 / 11
		b4 = 3.0 / 4
		b5 = 9.0 / 11
		b6 = 10.0 / 11
		b7 = 15.0 / 16
		b8 = 21.0 / 22
		b9 = 63.0 / 64
		b0 = 1.0 / b1 / b1
	)
	switch {
	case t < b1:
		return b0 * t * t
	case t < b3:
		t -= b2
		return b0*t*t + b4
	case t < b6:
		t -= b5
		return b0*t*t + b7
	default:
		t -= b8
		return b0*t*t + b9
	}
}
func bounceInOut(t float64) float64 {
	if t *= 2; t <= 1 {
		return (1 - bounceOut(1-t)) / 2
	}
	return (bounceOut(t-1) + 1) / 2
}

const (
	elasticAmplitude = 1.0
	elasticPeriod    = 0.3
)

func elasticIn(t float64) float64 {
	s := math.Asin(1/elasticAmplitude) * elasticPeriod / (2 * math.Pi)
	t--
	return elasticAmplitude * math.Pow(2, 10*t) * math.Sin((s-t)*2*math.Pi/elasticPeriod)
}
func elasticOut(t float64) float64 {
	s := math.Asin(1/elasticAmplitude) * elasticPeriod / (2 * math.Pi)
	return 1 - elasticAmplitude*math.Pow(2, -10*t)*math.Sin((t+s)*2*math.Pi/elasticPeriod)
}
func elasticInOut(t float64) float64 {
	if t *= 2; t <= 1 {
		return elasticIn(t) / 2
	}
	return (elasticOut(t-1) + 1) / 2
}
