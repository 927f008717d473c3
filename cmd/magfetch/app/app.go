package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/magdiag/magnetics/internal/archive"
	"github.com/magdiag/magnetics/internal/signal"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	if _, err := os.Stat(config.DBPath); err != nil && os.IsNotExist(err) {
		return fmt.Errorf("capture file '%s' does not exist: %w", config.DBPath, err)
	}

	arch := archive.Open(config.DBPath)
	defer arch.Close()

	if config.List {
		return listShots(ctx, arch, logger)
	}

	retriever := signal.NewRetriever(arch)

	var opts []signal.RetrieveOption
	if config.TimeWindow != nil {
		opts = append(opts, signal.WithTimeWindow(config.TimeWindow...))

		logger.Info("time window",
			slog.Float64("tmin", config.TimeWindow[0]),
			slog.Float64("tmax", config.TimeWindow[1]))
	}

	if config.PointName != "" {
		return fetchPoint(ctx, retriever, config, opts, logger)
	}
	return fetchArray(ctx, retriever, config, opts, logger)
}

func listShots(ctx context.Context, arch *archive.SqliteArchive, logger *slog.Logger) error {
	shots, err := arch.Shots(ctx)
	if err != nil {
		return err
	}
	if len(shots) == 0 {
		logger.Info("capture file holds no shots")
		return nil
	}

	for _, s := range shots {
		attrs := []any{
			slog.Int64("shot", s.Shot),
			slog.String("capturedAt", s.CapturedAt.UTC().Format(time.DateTime)),
		}
		if s.Description != nil {
			attrs = append(attrs, slog.String("description", *s.Description))
		}
		logger.Info("shot", attrs...)
	}
	return nil
}

func fetchPoint(ctx context.Context, retriever *signal.Retriever, config *Config, opts []signal.RetrieveOption, logger *slog.Logger) error {
	sig, err := retriever.Retrieve(ctx, config.PointName, config.Shot, opts...)
	if err != nil {
		return err
	}

	logger.Info("retrieved signal",
		slog.String("point", sig.PointName),
		slog.Int64("shot", sig.Shot),
		slog.Group("timing",
			slog.String("t0", fmt.Sprintf("%.6f s", sig.T0)),
			slog.String("rate", humanRate(sig.Fs)),
			slog.String("duration", humanSeconds(float64(sig.Len())/sig.Fs)),
		),
		slog.String("samples", humanize.Comma(int64(sig.Len()))))
	return nil
}

func fetchArray(ctx context.Context, retriever *signal.Retriever, config *Config, opts []signal.RetrieveOption, logger *slog.Logger) error {
	channels := signal.ToroidalArray()
	if config.ArrayPath != "" {
		var err error
		if channels, err = signal.LoadArray(config.ArrayPath); err != nil {
			return err
		}
	}

	aggOpts := []signal.AggregatorOption{
		signal.WithChannels(channels),
		signal.WithParallelism(config.Parallelism),
	}
	if config.Lenient {
		aggOpts = append(aggOpts, signal.AllowTimeBaseMismatch())
	}

	set, err := signal.NewAggregator(retriever, aggOpts...).RetrieveAll(ctx, config.Shot, opts...)
	if err != nil {
		return err
	}

	logger.Info("retrieved signal set",
		slog.Int64("shot", set.Shot),
		slog.Int("channels", len(set.Channels)),
		slog.Group("timing",
			slog.String("t0", fmt.Sprintf("%.6f s", set.T0)),
			slog.String("rate", humanRate(set.Fs)),
			slog.String("duration", humanSeconds(float64(len(set.Samples[0]))/set.Fs)),
		),
		slog.String("samplesPerChannel", humanize.Comma(int64(len(set.Samples[0])))))

	for i, ch := range set.Channels {
		logger.Info("channel",
			slog.Int("row", i),
			slog.String("point", ch.PointName),
			slog.String("angle", fmt.Sprintf("%.4f rad", ch.Angle)))
	}
	return nil
}

func humanRate(fs float64) string {
	fract, suffix := humanize.ComputeSI(fs)
	return fmt.Sprintf("%0.2f %sSa/s", fract, suffix)
}

func humanSeconds(s float64) string {
	fract, suffix := humanize.ComputeSI(s)
	return fmt.Sprintf("%0.2f %ss", fract, suffix)
}
