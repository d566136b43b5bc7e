package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/repairshop-service/internal/config"
	"github.com/spec-kit/repairshop-service/internal/events"
)

// SyncNotifier surfaces offline lifecycle events: every transition is
// logged, and an optional webhook stub mirrors them outward so an ops
// dashboard can watch the queue.
type SyncNotifier struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewSyncNotifier creates the notifier.
func NewSyncNotifier(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *SyncNotifier {
	return &SyncNotifier{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *SyncNotifier) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventActionEnqueued, n.handleActionEnqueued)
	n.dispatcher.Subscribe(events.EventActionFlushed, n.handleActionFlushed)
	n.dispatcher.Subscribe(events.EventActionRetried, n.handleActionRetried)
	n.dispatcher.Subscribe(events.EventConnectivityChanged, n.handleConnectivityChanged)
}

func (n *SyncNotifier) handleActionEnqueued(ctx context.Context, event events.Event) error {
	n.logger.Info("ActionEnqueued", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *SyncNotifier) handleActionFlushed(ctx context.Context, event events.Event) error {
	n.logger.Info("ActionFlushed", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *SyncNotifier) handleActionRetried(ctx context.Context, event events.Event) error {
	n.logger.Info("ActionRetried", zap.Any("payload", event.Payload))
	return nil
}

func (n *SyncNotifier) handleConnectivityChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ConnectivityChanged", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *SyncNotifier) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
