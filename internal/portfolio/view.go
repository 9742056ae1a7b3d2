package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"navboard/internal/chart"
	"navboard/internal/logger"
	"navboard/internal/metrics"
	"navboard/internal/nav"
	"navboard/internal/source"
)

// State of the one-shot load.
type State int

const (
	Loading State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "failed"
	}
}

type Options struct {
	Range           nav.DateRange
	BenchmarkFactor float64
}

// Snapshot is what the portfolio page shows for one range.
type Snapshot struct {
	State              string        `json:"state"`
	Loading            bool          `json:"loading"`
	Error              string        `json:"error,omitempty"`
	Status             int           `json:"status,omitempty"`
	Range              nav.DateRange `json:"range"`
	Labels             []string      `json:"labels"`
	NAV                []float64     `json:"nav"`
	Benchmark          []float64     `json:"benchmark"`
	BenchmarkName      string        `json:"benchmark_name"`
	BenchmarkSynthetic bool          `json:"benchmark_synthetic"`
	BenchmarkFactor    float64       `json:"benchmark_factor"`
	Drawdown           nav.Drawdown  `json:"drawdown"`
	Summary            nav.Summary   `json:"summary"`
}

// View holds the NAV series of one source and the filtered view for the
// current range. It loads once; range changes only recompute.
type View struct {
	src    source.Source
	render *chart.Renderer
	handle *chart.Handle
	opts   Options

	once sync.Once
	done chan struct{}

	mu        sync.RWMutex
	state     State
	err       error
	all       nav.Series
	rng       nav.DateRange
	filtered  nav.Series
	benchmark []float64
	drawdown  nav.Drawdown
}

func NewView(src source.Source, r *chart.Renderer, opts Options) *View {
	return &View{
		src:    src,
		render: r,
		handle: chart.NewHandle(r),
		opts:   opts,
		done:   make(chan struct{}),
		rng:    opts.Range,
	}
}

// Load starts the asynchronous fetch. Only the first call does anything;
// there is no retry and no cancellation once started.
func (v *View) Load(ctx context.Context) {
	v.once.Do(func() {
		go v.load(ctx)
	})
}

func (v *View) load(ctx context.Context) {
	defer close(v.done)
	raw, err := v.src.Fetch(ctx)
	if err != nil {
		metrics.NavLoadsTotal.WithLabelValues("error").Inc()
		logger.Error().Err(err).Str("source", v.src.String()).Msg("nav: error loading CSV data")
		v.mu.Lock()
		v.state = Failed
		v.err = err
		v.mu.Unlock()
		return
	}

	series, rep := nav.ParseReport(raw)
	for _, r := range rep.Rejected {
		logger.Warn().Int("line", r.Line).Str("row", r.Text).Str("reason", r.Reason).Msg("nav: row rejected")
	}
	metrics.NavRowsRejectedTotal.Add(float64(len(rep.Rejected)))
	metrics.NavPoints.Set(float64(len(series)))
	metrics.NavLoadsTotal.WithLabelValues("ok").Inc()
	logger.Info().Str("source", v.src.String()).Int("points", len(series)).Int("rejected", len(rep.Rejected)).Msg("nav: loaded")

	v.mu.Lock()
	defer v.mu.Unlock()
	v.all = series
	v.state = Ready
	v.render.Purge()
	if err := v.apply(v.rng); err != nil {
		logger.Error().Err(err).Msg("chart: initial render failed")
	}
}

// Wait blocks until the load has resolved or ctx is done, and returns the load error.
func (v *View) Wait(ctx context.Context) error {
	select {
	case <-v.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.err
}

// State reports the load state and, when failed, the load error.
func (v *View) State() (State, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state, v.err
}

// SetRange filters the loaded series to r, recomputes the drawdown and redraws
// the chart. Before the load resolves it only records r.
func (v *View) SetRange(r nav.DateRange) (Snapshot, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rng = r
	var err error
	if v.state == Ready {
		err = v.apply(r)
	}
	return v.snapshot(), err
}

// apply must be called with the write lock held.
func (v *View) apply(r nav.DateRange) error {
	v.filtered = nav.Filter(v.all, r)
	v.drawdown = nav.ComputeDrawdown(v.filtered)
	v.benchmark = nav.Benchmark(v.filtered, v.opts.BenchmarkFactor)
	err := v.handle.Replace(chart.Input{
		Range:     r,
		Labels:    v.filtered.Dates(),
		NAV:       v.filtered.Values(),
		Benchmark: v.benchmark,
		Drawdown:  v.drawdown,
	})
	if errors.Is(err, nav.ErrNothingToDraw) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("refresh chart for %s: %w", r, err)
	}
	return nil
}

// Snapshot returns the current view.
func (v *View) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snapshot()
}

func (v *View) snapshot() Snapshot {
	s := Snapshot{
		State:              v.state.String(),
		Loading:            v.state == Loading,
		Range:              v.rng,
		Labels:             []string{},
		NAV:                []float64{},
		Benchmark:          []float64{},
		BenchmarkName:      chart.NameBenchmark,
		BenchmarkSynthetic: true,
		BenchmarkFactor:    v.opts.BenchmarkFactor,
		Drawdown:           nav.Drawdown{},
	}
	if v.err != nil {
		s.Error = v.err.Error()
		var due *nav.DataUnavailableError
		if errors.As(v.err, &due) {
			s.Status = due.Status
		}
	}
	if v.state != Ready {
		return s
	}
	s.Labels = v.filtered.Dates()
	s.NAV = v.filtered.Values()
	s.Benchmark = append([]float64{}, v.benchmark...)
	s.Drawdown = append(nav.Drawdown{}, v.drawdown...)
	s.Summary = nav.Summarize(v.filtered)
	return s
}

// Chart applies r and returns the resulting image. ok is false when the range
// holds nothing to draw or the data is not loaded.
func (v *View) Chart(r nav.DateRange) (png []byte, ok bool, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rng = r
	if v.state != Ready {
		return nil, false, nil
	}
	if err := v.apply(r); err != nil {
		return nil, false, err
	}
	png, ok = v.handle.PNG()
	return png, ok, nil
}

// Series returns a copy of the full loaded series.
func (v *View) Series() nav.Series {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append(nav.Series{}, v.all...)
}

// Range returns the current range.
func (v *View) Range() nav.DateRange {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.rng
}

// Close releases the chart.
func (v *View) Close() { v.handle.Close() }
