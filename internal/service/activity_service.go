package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/hackforge/hackathon-service/internal/events"
	"github.com/hackforge/hackathon-service/internal/observability"
)

// ActivityService records hacker domain events in the log and metrics.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *ActivityService {
	return &ActivityService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventHackerCreated, a.handleHackerCreated)
	a.dispatcher.Subscribe(events.EventHackerUpdated, a.record)
	a.dispatcher.Subscribe(events.EventHackerStatusChanged, a.handleStatusChanged)
	a.dispatcher.Subscribe(events.EventResumeUploaded, a.record)
}

func (a *ActivityService) handleHackerCreated(ctx context.Context, event events.Event) error {
	a.logger.Info("HackerCreated",
		zap.String("hacker_id", event.HackerID),
		zap.String("account_id", event.Actor.AccountID),
		zap.Any("payload", event.Payload))
	a.metrics.RecordEvent(string(event.Type))
	return nil
}

func (a *ActivityService) handleStatusChanged(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.HackerStatusChangedPayload)
	a.logger.Info("HackerStatusChanged",
		zap.String("hacker_id", event.HackerID),
		zap.String("status", string(payload.NewStatus)),
		zap.String("changed_by", event.Actor.AccountID))
	a.metrics.RecordEvent(string(event.Type))
	return nil
}

func (a *ActivityService) record(ctx context.Context, event events.Event) error {
	a.logger.Debug(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("hacker_id", event.HackerID),
		zap.Any("payload", event.Payload))
	a.metrics.RecordEvent(string(event.Type))
	return nil
}
