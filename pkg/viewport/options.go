package viewport

import "math"

// Options configures a Controller. Zero, negative and non-finite fields fall
// back to the defaults below.
type Options struct {
	InitialScale     float64 // default 2
	MinScale         float64 // default 0.1
	MaxScale         float64 // default 10
	ZoomStep         float64 // default 0.2, multiplicative step per discrete zoom
	WheelSensitivity float64 // default 0.001, wheel delta to scale factor
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		InitialScale:     2,
		MinScale:         0.1,
		MaxScale:         10,
		ZoomStep:         0.2,
		WheelSensitivity: 0.001,
	}
}

func (o *Options) withDefaults() Options {
	d := DefaultOptions()
	if o == nil {
		return d
	}
	if usable(o.InitialScale) {
		d.InitialScale = o.InitialScale
	}
	if usable(o.MinScale) {
		d.MinScale = o.MinScale
	}
	if usable(o.MaxScale) {
		d.MaxScale = o.MaxScale
	}
	if usable(o.ZoomStep) {
		d.ZoomStep = o.ZoomStep
	}
	if usable(o.WheelSensitivity) {
		d.WheelSensitivity = o.WheelSensitivity
	}
	if d.MaxScale < d.MinScale {
		d.MaxScale = d.MinScale
	}
	d.InitialScale = clamp(d.InitialScale, d.MinScale, d.MaxScale)
	return d
}

// usable reports whether an option value is positive and finite.
func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// finite reports whether every value is neither NaN nor infinite.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
