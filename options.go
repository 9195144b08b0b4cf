package geoindex

// Option configures an Index at construction time. The pattern mirrors the
// functional-options style used across the retrieved Go corpus for
// multi-field, rarely-all-required configuration.
type Option func(*config)

type config struct {
	pointsPrecision int32
	minRibLength    float64
	debugSVGPath    string
}

func defaultConfig() config {
	return config{
		pointsPrecision: 9,
		minRibLength:    1e-6,
	}
}

// WithPointsPrecision sets the number of decimal places vertex positions
// are rounded to for display and export (Scad), independent of the
// internal StabilityRounding used for equality tests.
func WithPointsPrecision(dp int32) Option {
	return func(c *config) { c.pointsPrecision = dp }
}

// WithMinRibLength rejects, via ErrDegenerateRib, any input edge shorter
// than length before it reaches the rib table.
func WithMinRibLength(length float64) Option {
	return func(c *config) { c.minRibLength = length }
}

// WithDebugSVGPath enables per-face-split SVG dumps under dir, matching the
// reference implementation's optional debug tracing. The kernel itself
// never reads this value; it exists so hosting tools can opt into tracing
// without changing the Index API. Left empty, no dumps are produced.
func WithDebugSVGPath(dir string) Option {
	return func(c *config) { c.debugSVGPath = dir }
}
