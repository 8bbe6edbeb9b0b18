package game

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/samdwyer/undercroft/internal/telemetry"
)

// instruments are the per-turn measurements the game records.
type instruments struct {
	turns        metric.Int64Counter
	pathSearches metric.Int64Counter
	visible      metric.Int64Histogram
}

func newInstruments(log *zap.Logger) instruments {
	meter := telemetry.Meter("game")
	var fallback noop.Meter
	in := instruments{}

	var err error
	if in.turns, err = meter.Int64Counter("game.turns"); err != nil {
		log.Warn("turn counter unavailable", zap.Error(err))
		in.turns, _ = fallback.Int64Counter("game.turns")
	}
	if in.pathSearches, err = meter.Int64Counter("pathfind.searches"); err != nil {
		log.Warn("path counter unavailable", zap.Error(err))
		in.pathSearches, _ = fallback.Int64Counter("pathfind.searches")
	}
	if in.visible, err = meter.Int64Histogram("visibility.visible_things"); err != nil {
		log.Warn("visibility histogram unavailable", zap.Error(err))
		in.visible, _ = fallback.Int64Histogram("visibility.visible_things")
	}
	return in
}
