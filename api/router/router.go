package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/bson"

	"unitu-block/api/handlers"
	"unitu-block/api/middleware"
	"unitu-block/db"
	_ "unitu-block/docs"
	"unitu-block/repositories"
	"unitu-block/services"
)

func New(blockSvc *services.BlockService) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestTrace())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		// Try ping MongoDB
		if err := db.Database().RunCommand(context.Background(), bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/blocks/:instance/content", handlers.GetBlockContentHandler(blockSvc))
		api.GET("/blocks/:instance/payload", handlers.GetBlockPayloadHandler(blockSvc))

		snapshotsRepo := repositories.NewSnapshotRepository(db.Database())
		api.GET("/snapshots", handlers.ListSnapshotsHandler(snapshotsRepo))

		impressionsRepo := repositories.NewImpressionRepository(db.Database())
		api.GET("/blocks/:instance/impressions", handlers.ListImpressionsHandler(impressionsRepo))
	}

	return r
}
