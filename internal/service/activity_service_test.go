package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hackforge/hackathon-service/internal/domain"
	"github.com/hackforge/hackathon-service/internal/events"
	"github.com/hackforge/hackathon-service/internal/observability"
)

func TestActivityService_RecordsEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	NewActivityService(dispatcher, zap.New(core), metrics).RegisterHandlers()

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventHackerCreated, HackerID: "h1"}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:     events.EventHackerStatusChanged,
		HackerID: "h1",
		Payload:  events.HackerStatusChangedPayload{NewStatus: domain.HackerStatusAccepted},
	}))

	assert.Equal(t, 1, logs.FilterMessage("HackerCreated").Len())
	entries := logs.FilterMessage("HackerStatusChanged").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Accepted", entries[0].ContextMap()["status"])

	count, err := testutil.GatherAndCount(metrics.Gatherer(), "hacker_events_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
