package mykafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Skotchmaster/resto_pos/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublish_KeyedByOrder(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w, topic: "order_events"}

	ev := domain.Event{
		Type:    domain.EventOrderOpened,
		OrderID: uuid.New(),
		TableID: uuid.New(),
		Total:   decimal.Zero,
		At:      time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), ev))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, ev.OrderID.String(), string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "order.opened", string(msg.Headers[0].Value))

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "order.opened", got["type"])
	assert.Equal(t, ev.TableID.String(), got["table_id"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublish_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := &Producer{writer: w, topic: "order_events"}

	err := p.PublishEvent(context.Background(), "k", map[string]string{"a": "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order_events")
	assert.Contains(t, err.Error(), "broker down")
}
