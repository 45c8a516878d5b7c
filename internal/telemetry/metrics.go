package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "liftlog"

var (
	instrumentsOnce sync.Once
	streakEvents    metric.Int64Counter
	sessionMerges   metric.Int64Counter
)

// The global meter delegates to the provider installed by Initialize, so
// instruments created early still export.
func instruments() {
	instrumentsOnce.Do(func() {
		meter := otel.Meter(meterName)
		streakEvents, _ = meter.Int64Counter("liftlog.streak.events",
			metric.WithDescription("Streak transitions by kind (recorded, broken)"))
		sessionMerges, _ = meter.Int64Counter("liftlog.session.merges",
			metric.WithDescription("Session/plan merges that were written back"))
	})
}

// CountStreakEvent records a streak transition.
func CountStreakEvent(ctx context.Context, kind string) {
	instruments()
	if streakEvents != nil {
		streakEvents.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	}
}

// CountSessionMerge records a merge that was persisted.
func CountSessionMerge(ctx context.Context, created bool) {
	instruments()
	if sessionMerges != nil {
		sessionMerges.Add(ctx, 1, metric.WithAttributes(attribute.Bool("created", created)))
	}
}
