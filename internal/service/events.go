package service

import (
	"context"

	"github.com/Skotchmaster/resto_pos/internal/domain"
	"github.com/Skotchmaster/resto_pos/pkg/logging"
	"github.com/Skotchmaster/resto_pos/pkg/metrics"
)

type EventPublisher interface {
	Publish(ctx context.Context, ev domain.Event) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.Event) error { return nil }

// emit runs after commit. A failed publish is logged and never undoes the transition.
func emit(ctx context.Context, pub EventPublisher, ev domain.Event) {
	metrics.RecordOrderTransition(string(ev.Type))
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, ev); err != nil {
		logging.FromContext(ctx).With("svc", "order.events").
			Warn("publish_event_error", "event", ev.Type, "order_id", ev.OrderID, "error", err)
	}
}
