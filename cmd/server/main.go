package main

import (
	"context"
	"net/http"

	"github.com/rs/cors"

	"unitu-block/api/router"
	"unitu-block/config"
	"unitu-block/db"
	_ "unitu-block/docs" // swag will generate this package
	"unitu-block/eventbus"
	"unitu-block/logger"
	"unitu-block/renderer"
	"unitu-block/repositories"
	"unitu-block/services"
	"unitu-block/unitu"
)

// @title           Unitu Block API
// @version         1.0
// @description     Serves rendered Unitu notification blocks and their observability data
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if err := db.Init(context.Background()); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		return
	}

	// The event bus is optional: without brokers the block still
	// renders, it just stops emitting impression events.
	var bus eventbus.EventBus
	if brokers := eventbus.GetBrokersOptional(); brokers != "" {
		kafkaBus, err := eventbus.NewKafkaEventBus(brokers)
		if err != nil {
			logger.Log.Errorf("failed to create event bus, impressions disabled: %v", err)
		} else {
			defer kafkaBus.Close()
			bus = kafkaBus
		}
	}

	blockSvc := services.NewBlockService(
		unitu.New(cfg.Unitu),
		renderer.New(),
		cfg.Block,
		repositories.NewSnapshotRepository(db.Database()),
		bus,
	)

	r := router.New(blockSvc)

	handler := cors.Default().Handler(r)
	logger.Log.Info("starting block server on :8080")
	if err := http.ListenAndServe(":8080", handler); err != nil && err != http.ErrServerClosed {
		logger.Log.Errorf("server stopped: %v", err)
	}
}
