// Package archive defines the query interface to the magnetics data
// archive and a SQLite-backed adapter for local capture files.
//
// The archive is the sole source of truth for both signal timing and
// amplitude. Timestamps are in milliseconds by archive convention;
// callers converting to seconds do so on their side.
package archive

import (
	"context"
	"errors"
)

// ErrNoData is returned when the archive holds no samples for the
// requested point name and shot (within the requested bounds, if any).
var ErrNoData = errors.New("no data available")

// Series is one raw time series as returned by the archive.
// Times and Values are always the same length.
type Series struct {
	Times  []float64 // Sample timestamps in milliseconds
	Values []float64 // Measured amplitudes, archive units
}

// Len returns the number of samples in the series.
func (s *Series) Len() int {
	return len(s.Times)
}

// QueryOption configures a single archive query.
type QueryOption func(*QueryParams)

// QueryParams holds the optional bounds of an archive query.
type QueryParams struct {
	MinTime *float64 // Lower time bound in milliseconds, inclusive
	MaxTime *float64 // Upper time bound in milliseconds, inclusive
}

// WithMinTime sets the lower time bound in milliseconds.
func WithMinTime(ms float64) QueryOption {
	return func(p *QueryParams) {
		p.MinTime = &ms
	}
}

// WithMaxTime sets the upper time bound in milliseconds.
func WithMaxTime(ms float64) QueryOption {
	return func(p *QueryParams) {
		p.MaxTime = &ms
	}
}

// WithTimeBounds sets both time bounds in milliseconds. This is a
// convenience function equivalent to applying both WithMinTime and
// WithMaxTime.
func WithTimeBounds(minMS, maxMS float64) QueryOption {
	return func(p *QueryParams) {
		p.MinTime = &minMS
		p.MaxTime = &maxMS
	}
}

// Querier retrieves raw time series from the magnetics archive.
//
// Implementations must return timestamp and amplitude arrays of equal
// length, with timestamps in milliseconds and in ascending order.
// Failures are returned unchanged to the caller; this layer performs
// no retries and no local recovery.
type Querier interface {
	// Query fetches the series for a point name and shot, optionally
	// restricted to a time window in milliseconds.
	Query(ctx context.Context, pointName string, shot int64, opts ...QueryOption) (*Series, error)
}
