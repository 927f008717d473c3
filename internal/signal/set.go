package signal

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrInconsistentSet is returned when a channel's time base disagrees
// with the first channel's during aggregation.
var ErrInconsistentSet = errors.New("channel time base differs from aggregate")

// SignalSet is an aggregate of signals over a fixed channel array,
// sharing one shot and one time base. Row i of Samples holds the
// signal for Channels[i].
type SignalSet struct {
	Shot     int64
	Channels []ChannelDescriptor

	T0 float64 // Time of the first sample in seconds
	Fs float64 // Sampling rate in samples per second

	Samples [][]float64 // Channel x sample matrix
}

// Angles returns the angular positions of the channels in radians,
// ordered to match the rows of Samples.
func (s *SignalSet) Angles() []float64 {
	angles := make([]float64, len(s.Channels))
	for i, ch := range s.Channels {
		angles[i] = ch.Angle
	}
	return angles
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithChannels overrides the channel array to aggregate over.
func WithChannels(channels []ChannelDescriptor) AggregatorOption {
	return func(a *Aggregator) {
		a.channels = channels
	}
}

// WithParallelism bounds the number of concurrent channel retrievals.
// The channels are independent, so retrieval order does not affect the
// result; rows always follow descriptor order.
func WithParallelism(n int) AggregatorOption {
	return func(a *Aggregator) {
		if n > 0 {
			a.parallelism = n
		}
	}
}

// AllowTimeBaseMismatch disables the per-channel time-base consistency
// check and keeps the first channel's t0 and sampling rate, matching
// the historical behavior of the retrieval code this replaces. Sample
// counts must still agree; ragged rows cannot form a matrix.
func AllowTimeBaseMismatch() AggregatorOption {
	return func(a *Aggregator) {
		a.allowMismatch = true
	}
}

// Aggregator retrieves every channel of a fixed array and stacks the
// results into a SignalSet. By default it aggregates the toroidal
// Mirnov array, retrieves channels one at a time, and fails on any
// per-channel time-base mismatch.
type Aggregator struct {
	retriever     *Retriever
	channels      []ChannelDescriptor
	parallelism   int
	allowMismatch bool
}

// NewAggregator creates an Aggregator over the given Retriever.
func NewAggregator(r *Retriever, opts ...AggregatorOption) *Aggregator {
	a := Aggregator{
		retriever:   r,
		channels:    ToroidalArray(),
		parallelism: 1,
	}

	for _, opt := range opts {
		opt(&a)
	}

	return &a
}

// RetrieveAll fetches every channel of the array for one shot and
// assembles the channel x sample matrix. The aggregation is atomic:
// if any channel fails, no partial result is returned. The first
// channel establishes the set's t0 and sampling rate.
func (a *Aggregator) RetrieveAll(ctx context.Context, shot int64, opts ...RetrieveOption) (*SignalSet, error) {
	if len(a.channels) == 0 {
		return nil, errors.New("no channels to aggregate")
	}

	signals, err := a.retrieveChannels(ctx, shot, opts)
	if err != nil {
		return nil, err
	}

	base := signals[0]
	rows := make([][]float64, len(signals))
	for i, sig := range signals {
		if err := a.checkTimeBase(base, sig); err != nil {
			return nil, err
		}
		rows[i] = sig.Samples
	}

	return &SignalSet{
		Shot:     shot,
		Channels: a.channels,
		T0:       base.T0,
		Fs:       base.Fs,
		Samples:  rows,
	}, nil
}

// retrieveChannels fetches all channels with bounded concurrency,
// preserving descriptor order in the returned slice.
func (a *Aggregator) retrieveChannels(ctx context.Context, shot int64, opts []RetrieveOption) ([]*Signal, error) {
	signals := make([]*Signal, len(a.channels))
	errs := make([]error, len(a.channels))

	sem := make(chan struct{}, a.parallelism)

	var wg sync.WaitGroup
	for i, ch := range a.channels {
		wg.Add(1)
		go func(i int, pointName string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			signals[i], errs[i] = a.retriever.Retrieve(ctx, pointName, shot, opts...)
		}(i, ch.PointName)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return signals, nil
}

// checkTimeBase verifies that a channel shares the first channel's
// time base. Equality is exact: all channels of one shot come off the
// same digitizer clock, so derived values either match or the archive
// returned something genuinely different.
func (a *Aggregator) checkTimeBase(base, sig *Signal) error {
	if sig.Len() != base.Len() {
		return fmt.Errorf("point '%s', shot %d: %d samples, want %d: %w",
			sig.PointName, sig.Shot, sig.Len(), base.Len(), ErrInconsistentSet)
	}

	if a.allowMismatch {
		return nil
	}

	if sig.T0 != base.T0 || sig.Fs != base.Fs {
		return fmt.Errorf("point '%s', shot %d: t0=%g s, Fs=%g Sa/s, want t0=%g s, Fs=%g Sa/s: %w",
			sig.PointName, sig.Shot, sig.T0, sig.Fs, base.T0, base.Fs, ErrInconsistentSet)
	}

	return nil
}
