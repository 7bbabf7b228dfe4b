package splom

import "math"

// Config controls the layout and the overlays of a scatterplot matrix.
// Geometry derives from Width only; Height is carried for hosts that size
// the surrounding element.
type Config struct {
	Width               float64 `json:"Width" yaml:"width"`
	Height              float64 `json:"Height" yaml:"height"`
	RemoveOutliers      bool    `json:"RemoveOutliers" yaml:"remove_outliers"`
	FilterMultiplier    float64 `json:"FilterMultiplier" yaml:"filter_multiplier"`
	ShowBasicStatistics bool    `json:"ShowBasicStatistics" yaml:"show_basic_statistics"`
	ShowRegression      bool    `json:"ShowRegression" yaml:"show_regression"`
	ShowPearson         bool    `json:"ShowPearson" yaml:"show_pearson"`
	ShowSpearman        bool    `json:"ShowSpearman" yaml:"show_spearman"`
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the 700x700 configuration with every overlay off.
func DefaultConfig() Config {
	return Config{
		Width:            700,
		Height:           700,
		FilterMultiplier: 1.5,
	}
}

// WithSize sets the outer width and height. Non-positive values are ignored.
func WithSize(width, height float64) Option {
	return func(cfg *Config) {
		if width > 0 && !math.IsInf(width, 0) {
			cfg.Width = width
		}
		if height > 0 && !math.IsInf(height, 0) {
			cfg.Height = height
		}
	}
}

// WithOutlierFilter enables Mahalanobis outlier removal with multiplier m.
// A non-finite multiplier keeps the current one.
func WithOutlierFilter(m float64) Option {
	return func(cfg *Config) {
		cfg.RemoveOutliers = true
		if !math.IsNaN(m) && !math.IsInf(m, 0) {
			cfg.FilterMultiplier = m
		}
	}
}

// WithBasicStatistics toggles the statistics block on the diagonal.
func WithBasicStatistics(on bool) Option {
	return func(cfg *Config) { cfg.ShowBasicStatistics = on }
}

// WithRegression toggles the regression line overlay.
func WithRegression(on bool) Option {
	return func(cfg *Config) { cfg.ShowRegression = on }
}

// WithPearson toggles the Pearson coefficient text.
func WithPearson(on bool) Option {
	return func(cfg *Config) { cfg.ShowPearson = on }
}

// WithSpearman toggles the Spearman coefficient text.
func WithSpearman(on bool) Option {
	return func(cfg *Config) { cfg.ShowSpearman = on }
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Overrides is a partial Config as sent by hosts and config files. Nil
// fields keep the value they are merged over.
type Overrides struct {
	Width               *float64 `json:"Width,omitempty" yaml:"width,omitempty"`
	Height              *float64 `json:"Height,omitempty" yaml:"height,omitempty"`
	RemoveOutliers      *bool    `json:"RemoveOutliers,omitempty" yaml:"remove_outliers,omitempty"`
	FilterMultiplier    *float64 `json:"FilterMultiplier,omitempty" yaml:"filter_multiplier,omitempty"`
	ShowBasicStatistics *bool    `json:"ShowBasicStatistics,omitempty" yaml:"show_basic_statistics,omitempty"`
	ShowRegression      *bool    `json:"ShowRegression,omitempty" yaml:"show_regression,omitempty"`
	ShowPearson         *bool    `json:"ShowPearson,omitempty" yaml:"show_pearson,omitempty"`
	ShowSpearman        *bool    `json:"ShowSpearman,omitempty" yaml:"show_spearman,omitempty"`
}

// Merge returns base with every set field of o applied. Sizes and the
// multiplier go through the same checks as the options.
func (o Overrides) Merge(base Config) Config {
	cfg := base

	var w, h float64
	if o.Width != nil {
		w = *o.Width
	}
	if o.Height != nil {
		h = *o.Height
	}
	WithSize(w, h)(&cfg)

	if o.FilterMultiplier != nil && !math.IsNaN(*o.FilterMultiplier) && !math.IsInf(*o.FilterMultiplier, 0) {
		cfg.FilterMultiplier = *o.FilterMultiplier
	}

	setBool(&cfg.RemoveOutliers, o.RemoveOutliers)
	setBool(&cfg.ShowBasicStatistics, o.ShowBasicStatistics)
	setBool(&cfg.ShowRegression, o.ShowRegression)
	setBool(&cfg.ShowPearson, o.ShowPearson)
	setBool(&cfg.ShowSpearman, o.ShowSpearman)

	return cfg
}

// Option returns o as an Option applying Merge.
func (o Overrides) Option() Option {
	return func(cfg *Config) { *cfg = o.Merge(*cfg) }
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
