// Package signal retrieves magnetics signals from the data archive
// and aggregates the fixed toroidal probe array into matrix form.
package signal

import (
	"context"
	"errors"
	"fmt"

	"github.com/magdiag/magnetics/internal/archive"
)

// DefaultQualifier is the archive suffix appended to point names when
// querying; digitizer streams are published under the qualified name.
const DefaultQualifier = "d"

var (
	// ErrInvalidWindow is returned when a time window does not contain
	// exactly two bounds.
	ErrInvalidWindow = errors.New("time window must contain exactly two bounds")

	// ErrShortSeries is returned when the archive yields fewer than two
	// samples; the sampling rate cannot be derived from one timestamp.
	ErrShortSeries = errors.New("series must contain at least two samples")
)

// Signal is one retrieved magnetics time series. The time base is not
// stored; it is reconstructed from T0 and SampleRate on demand.
type Signal struct {
	Shot      int64   // Shot number of the retrieved signal
	PointName string  // Archive point name, without qualifier
	T0        float64 // Time of the first sample in seconds
	Fs        float64 // Sampling rate in samples per second

	Samples []float64 // Retrieved amplitudes, archive units
}

// Len returns the number of samples in the signal.
func (s *Signal) Len() int {
	return len(s.Samples)
}

// TimeAt returns the time in seconds of sample i.
func (s *Signal) TimeAt(i int) float64 {
	return s.T0 + float64(i)/s.Fs
}

// Times returns the full time base in seconds. The slice is computed
// on the fly; raw signals are rarely inspected against time, so the
// base is not worth keeping resident.
func (s *Signal) Times() []float64 {
	t := make([]float64, len(s.Samples))
	for i := range t {
		t[i] = s.TimeAt(i)
	}
	return t
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever)

// WithQualifier overrides the archive point-name qualifier.
func WithQualifier(qualifier string) RetrieverOption {
	return func(r *Retriever) {
		r.qualifier = qualifier
	}
}

// Retriever fetches single-channel signals from the archive. It is a
// thin convenience layer: archive failures propagate unchanged, and no
// caching or retrying happens here.
type Retriever struct {
	querier   archive.Querier
	qualifier string
}

// NewRetriever creates a Retriever over the given archive.
func NewRetriever(q archive.Querier, opts ...RetrieverOption) *Retriever {
	r := Retriever{
		querier:   q,
		qualifier: DefaultQualifier,
	}

	for _, opt := range opts {
		opt(&r)
	}

	return &r
}

// RetrieveOption configures a single retrieval.
type RetrieveOption func(*retrieveParams)

type retrieveParams struct {
	window []float64
}

// WithTimeWindow restricts retrieval to a window in seconds. Exactly
// two bounds must be given; they are sorted ascending before use, so
// (5, 2) and (2, 5) retrieve the same window.
func WithTimeWindow(bounds ...float64) RetrieveOption {
	return func(p *retrieveParams) {
		p.window = bounds
	}
}

// Retrieve fetches one signal for a point name and shot. The start
// time and sampling rate are derived from the first two archive
// timestamps after converting them from milliseconds to seconds.
func (r *Retriever) Retrieve(ctx context.Context, pointName string, shot int64, opts ...RetrieveOption) (*Signal, error) {
	var params retrieveParams
	for _, opt := range opts {
		opt(&params)
	}

	queryOpts, err := windowQueryOpts(params.window)
	if err != nil {
		return nil, fmt.Errorf("point '%s', shot %d: %w", pointName, shot, err)
	}

	series, err := r.querier.Query(ctx, pointName+r.qualifier, shot, queryOpts...)
	if err != nil {
		return nil, err
	}

	if series.Len() < 2 {
		return nil, fmt.Errorf("point '%s', shot %d: got %d samples: %w",
			pointName, shot, series.Len(), ErrShortSeries)
	}

	// Archive timestamps are ms by convention
	t0 := 1e-3 * series.Times[0]
	t1 := 1e-3 * series.Times[1]
	if t1 <= t0 {
		return nil, fmt.Errorf("point '%s', shot %d: non-increasing leading timestamps (%g ms, %g ms)",
			pointName, shot, series.Times[0], series.Times[1])
	}

	return &Signal{
		Shot:      shot,
		PointName: pointName,
		T0:        t0,
		Fs:        1 / (t1 - t0),
		Samples:   series.Values,
	}, nil
}

// windowQueryOpts validates a time window in seconds and converts it
// into archive query options in milliseconds.
func windowQueryOpts(window []float64) ([]archive.QueryOption, error) {
	if window == nil {
		return nil, nil
	}
	if len(window) != 2 {
		return nil, fmt.Errorf("got %d bounds: %w", len(window), ErrInvalidWindow)
	}

	lower, upper := window[0], window[1]
	if lower > upper {
		lower, upper = upper, lower
	}

	return []archive.QueryOption{
		archive.WithTimeBounds(1e3*lower, 1e3*upper),
	}, nil
}
