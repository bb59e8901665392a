package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"unitu-block/config"
	"unitu-block/db"
	"unitu-block/eventbus"
	"unitu-block/events"
	"unitu-block/logger"
	"unitu-block/repositories"
)

// Analytics consumer: aggregates block impression events into daily
// per-instance counters and reinjects delayed retries.
func main() {
	logger.InitFromEnv("LOG_LEVEL")
	config.InitApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}

	brokers := eventbus.GetBrokers()
	for _, t := range eventbus.AllTopics {
		if err := eventbus.EnsureTopics(brokers, t, 3); err != nil {
			logger.Log.Errorf("failed to ensure eventbus topics for %s: %v", t.Base(), err)
		}
	}

	bus, err := eventbus.NewKafkaEventBus(brokers)
	if err != nil {
		logger.Log.Errorf("failed to create event bus: %v", err)
		os.Exit(1)
	}
	defer bus.Close()

	groupID := eventbus.GetGroupID() + "-analytics"
	impressions := repositories.NewImpressionRepository(db.Database())

	logger.Log.Info("starting analytics service with eventbus...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		err := eventbus.SubscribeJSON(ctx, bus, groupID, eventbus.TopicBlockImpressions,
			func(ctx context.Context, evt events.BlockImpressionEvent, meta eventbus.Event) error {
				if err := impressions.IncrementDaily(ctx, evt.InstanceID, evt.RenderedAt); err != nil {
					logger.Log.Errorf("failed to increment impressions for %s: %v", evt.InstanceID, err)
					return err
				}
				logger.DebugWithFields("impression recorded", logger.Fields{
					"event_id":    meta.ID,
					"instance_id": evt.InstanceID,
					"post_count":  evt.PostCount,
				})
				return nil
			})
		if err != nil && err != context.Canceled {
			logger.Log.Errorf("eventbus subscribe error: %v", err)
		}
	}()

	go func() {
		reinjectorGroupID := groupID + "-retry"
		if err := bus.StartRetryReinjector(ctx, reinjectorGroupID, eventbus.TopicBlockImpressions); err != nil && err != context.Canceled {
			logger.Log.Errorf("eventbus retry reinjector error: %v", err)
		}
	}()

	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down analytics service...")

	cancel()

	logger.Log.Info("analytics service stopped")
}
