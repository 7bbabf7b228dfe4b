// Package webdemo hosts a scatterplot matrix inside a dashboard element.
//
// A Symbol reacts to the three host events: new data, a configuration
// change and a resize. Each render replaces the element content with a
// fresh SVG document. Failures are logged once per distinct message so that
// a host polling for data does not flood its log with the same error.
package webdemo

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/dataset"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/render/svg"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/splom"
)

// MsgTooSmall is logged when a dataset has fewer than splom.MinRows rows.
const MsgTooSmall = "Dataset to small"

// DefaultDebounce delays refetching after the point count changes.
const DefaultDebounce = 500 * time.Millisecond

// Loader fetches a dataset of the given number of points per variable.
type Loader interface {
	Load(ctx context.Context, points int) (dataset.Dataset, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, points int) (dataset.Dataset, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, points int) (dataset.Dataset, error) {
	return f(ctx, points)
}

// SymbolConfig is the host-editable configuration of a symbol.
type SymbolConfig struct {
	Title  string
	Points int
	Matrix splom.Config
}

// DefaultSymbolConfig returns the configuration a new symbol starts with.
func DefaultSymbolConfig() SymbolConfig {
	return SymbolConfig{
		Title:  "Magion Scatterplot Matrix",
		Points: 50,
		Matrix: splom.DefaultConfig(),
	}
}

// Symbol is one scatterplot matrix element.
type Symbol struct {
	mu          sync.Mutex
	id          string
	cfg         SymbolConfig
	data        dataset.Dataset
	initialised bool
	lastMessage string
	refetching  bool

	loader   Loader
	output   func(svg string)
	logger   *slog.Logger
	debounce time.Duration
}

// SymbolOption configures a Symbol.
type SymbolOption func(*Symbol)

// WithLoader sets the data source used for refetching.
func WithLoader(l Loader) SymbolOption {
	return func(s *Symbol) { s.loader = l }
}

// WithOutput sets the function that receives every rendered document.
func WithOutput(fn func(svg string)) SymbolOption {
	return func(s *Symbol) { s.output = fn }
}

// WithLogger sets the logger for host-visible errors.
func WithLogger(l *slog.Logger) SymbolOption {
	return func(s *Symbol) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDebounce sets the refetch delay. Zero refetches synchronously.
func WithDebounce(d time.Duration) SymbolOption {
	return func(s *Symbol) { s.debounce = d }
}

// WithConfig sets the initial configuration.
func WithConfig(cfg SymbolConfig) SymbolOption {
	return func(s *Symbol) { s.cfg = cfg }
}

// NewSymbol returns a symbol rendering into the element with the given id.
func NewSymbol(id string, opts ...SymbolOption) *Symbol {
	s := &Symbol{
		id:       id,
		cfg:      DefaultSymbolConfig(),
		logger:   slog.Default(),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ID returns the element id.
func (s *Symbol) ID() string { return s.id }

// Config returns the current configuration.
func (s *Symbol) Config() SymbolConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// OnDataUpdate stores ds and renders it.
func (s *Symbol) OnDataUpdate(ds dataset.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = ds
	s.initialised = true
	s.renderLocked()
}

// Refresh loads a new dataset with the configured point count and renders
// it. Load errors are logged.
func (s *Symbol) Refresh(ctx context.Context) {
	s.mu.Lock()
	loader, points := s.loader, s.cfg.Points
	if loader == nil {
		s.refetching = false
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	ds, err := loader.Load(ctx, points)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refetching = false
	if err != nil {
		s.logErrorLocked(err.Error())
		return
	}
	s.data = ds
	s.initialised = true
	s.renderLocked()
}

// OnConfigChange applies next. A changed point count refetches the data
// after the debounce delay; any other change, or any change on a symbol
// without a loader, re-renders the current data. Nothing happens when the
// configurations are equal.
func (s *Symbol) OnConfigChange(next, prev SymbolConfig) {
	if next == prev {
		return
	}

	s.mu.Lock()
	s.cfg = next
	if !s.initialised {
		s.mu.Unlock()
		return
	}

	if next.Points == prev.Points || s.loader == nil {
		s.renderLocked()
		s.mu.Unlock()
		return
	}

	if s.refetching {
		s.mu.Unlock()
		return
	}
	s.refetching = true
	delay := s.debounce
	s.mu.Unlock()

	if delay <= 0 {
		s.Refresh(context.Background())
		return
	}
	time.AfterFunc(delay, func() { s.Refresh(context.Background()) })
}

// OnResize sets the matrix size and applies it as a configuration change.
func (s *Symbol) OnResize(width, height float64) {
	prev := s.Config()
	next := prev
	splom.WithSize(width, height)(&next.Matrix)
	s.OnConfigChange(next, prev)
}

// Render builds the current data into an SVG document.
func (s *Symbol) Render() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildLocked()
}

// LastMessage returns the most recently logged error message.
func (s *Symbol) LastMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMessage
}

func (s *Symbol) buildLocked() (string, error) {
	m, err := splom.Build(s.data, s.cfg.Matrix)
	if err != nil {
		return "", err
	}
	return svg.String(m, svg.WithID(s.id+"_svg"))
}

func (s *Symbol) renderLocked() {
	doc, err := s.buildLocked()
	if errors.Is(err, splom.ErrTooFewRows) {
		s.logErrorLocked(MsgTooSmall)
		return
	}
	if err != nil {
		s.logErrorLocked(err.Error())
		return
	}
	if s.output != nil {
		s.output(doc)
	}
}

func (s *Symbol) logErrorLocked(msg string) {
	if msg == s.lastMessage {
		return
	}
	s.lastMessage = msg
	s.logger.Error(msg, "symbol", s.cfg.Title, "id", s.id)
}
