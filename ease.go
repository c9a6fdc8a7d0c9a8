package grove

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// EaseFunc selects an easing curve. Curves map normalized time t in [0, 1] to
// eased progress; overshooting curves (back, elastic, bounce) may leave [0, 1]
// mid-range but always return exactly 0 at t=0 and 1 at t=1.
type EaseFunc uint8

const (
	EaseLinear     EaseFunc = iota // constant speed
	EaseQuadIn                     // starts slow, speeds up
	EaseQuadOut                    // starts fast, slows down
	EaseQuadInOut                  // slow at both ends
	EaseCubicIn                    // stronger QuadIn
	EaseCubicOut                   // stronger QuadOut
	EaseSineInOut                  // gentle slow-fast-slow
	EaseBounceOut                  // bounces against the end value
	EaseElasticOut                 // wobbles past the end value and settles
	EaseBackInOut                  // pulls back, overshoots, settles
	EaseExpoInOut                  // exponential slow-fast-slow
)

var easeCurves = [...]ease.TweenFunc{
	EaseLinear:     ease.Linear,
	EaseQuadIn:     ease.InQuad,
	EaseQuadOut:    ease.OutQuad,
	EaseQuadInOut:  ease.InOutQuad,
	EaseCubicIn:    ease.InCubic,
	EaseCubicOut:   ease.OutCubic,
	EaseSineInOut:  ease.InOutSine,
	EaseBounceOut:  ease.OutBounce,
	EaseElasticOut: ease.OutElastic,
	EaseBackInOut:  ease.InOutBack,
	EaseExpoInOut:  ease.InOutExpo,
}

var easeNames = [...]string{
	EaseLinear:     "linear",
	EaseQuadIn:     "quad-in",
	EaseQuadOut:    "quad-out",
	EaseQuadInOut:  "quad-in-out",
	EaseCubicIn:    "cubic-in",
	EaseCubicOut:   "cubic-out",
	EaseSineInOut:  "sine-in-out",
	EaseBounceOut:  "bounce-out",
	EaseElasticOut: "elastic-out",
	EaseBackInOut:  "back-in-out",
	EaseExpoInOut:  "expo-in-out",
}

// Apply returns the eased progress for t. t is clamped to [0, 1]. The curve is
// evaluated with begin 0, change 1 and duration 1; the endpoints are pinned so
// float32 rounding in the curve never leaks into the final animated value.
func (f EaseFunc) Apply(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if f == EaseLinear || int(f) >= len(easeCurves) {
		return t
	}
	return float64(easeCurves[f](float32(t), 0, 1, 1))
}

// String returns the scenario name of the curve, e.g. "cubic-out".
func (f EaseFunc) String() string {
	if int(f) < len(easeNames) {
		return easeNames[f]
	}
	return fmt.Sprintf("EaseFunc(%d)", uint8(f))
}

// ParseEaseFunc resolves a curve by the name String returns.
func ParseEaseFunc(name string) (EaseFunc, error) {
	for i, n := range easeNames {
		if n == name {
			return EaseFunc(i), nil
		}
	}
	return EaseLinear, fmt.Errorf("grove: unknown ease function %q", name)
}
