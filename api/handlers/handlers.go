package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"unitu-block/config"
	"unitu-block/dto"
	"unitu-block/repositories"
	"unitu-block/services"
)

func instanceOrAbort(c *gin.Context) (config.BlockInstance, bool) {
	inst, ok := config.GetConfig().Instance(c.Param("instance"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown block instance"})
		return config.BlockInstance{}, false
	}
	return inst, true
}

// GetBlockContentHandler godoc
// @Summary      Get rendered block content
// @Description  Fetch the Unitu feed for the instance and return the rendered block. 204 when there is nothing to show.
// @Tags         blocks
// @Param        instance  path  string  true  "Block instance id"
// @Produce      json
// @Success      200  {object}  dto.BlockContentDTO
// @Success      204  "no content to show"
// @Router       /blocks/{instance}/content [get]
func GetBlockContentHandler(svc *services.BlockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		inst, ok := instanceOrAbort(c)
		if !ok {
			return
		}

		content, err := svc.Content(c.Request.Context(), inst)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if content == nil {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, content)
	}
}

// GetBlockPayloadHandler godoc
// @Summary      Get raw render payload
// @Description  Return the formatted feed payload without HTML rendering, for hosts that template client-side. 204 when there is nothing to show.
// @Tags         blocks
// @Param        instance  path  string  true  "Block instance id"
// @Produce      json
// @Success      200  {object}  feed.RenderPayload
// @Success      204  "no content to show"
// @Router       /blocks/{instance}/payload [get]
func GetBlockPayloadHandler(svc *services.BlockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		inst, ok := instanceOrAbort(c)
		if !ok {
			return
		}

		payload, err := svc.Payload(c.Request.Context(), inst)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if payload == nil {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, payload)
	}
}

// ListSnapshotsHandler godoc
// @Summary      List feed snapshots
// @Description  List stored fetch snapshots, newest first
// @Tags         snapshots
// @Param        page         query  int     false  "Page number (1-based)"
// @Param        page_size    query  int     false  "Page size (<=100)"
// @Param        instance_id  query  string  false  "Filter by block instance"
// @Produce      json
// @Success      200  {array}  dto.SnapshotDTO
// @Router       /snapshots [get]
func ListSnapshotsHandler(repo *repositories.SnapshotRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in repositories.ListSnapshotsOptions
		in.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		in.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
		in.InstanceID = c.Query("instance_id")

		items, err := repo.List(c.Request.Context(), in)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out := make([]dto.SnapshotDTO, 0, len(items))
		for _, s := range items {
			out = append(out, dto.NewSnapshotDTO(s))
		}
		c.JSON(http.StatusOK, out)
	}
}

// ListImpressionsHandler godoc
// @Summary      List daily impressions
// @Description  List daily render counters for a block instance, newest first
// @Tags         impressions
// @Param        instance  path   string  true   "Block instance id"
// @Param        limit     query  int     false  "Max days to return (default 30)"
// @Produce      json
// @Success      200  {array}  models.BlockImpression
// @Router       /blocks/{instance}/impressions [get]
func ListImpressionsHandler(repo *repositories.ImpressionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		inst, ok := instanceOrAbort(c)
		if !ok {
			return
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
		items, err := repo.FindByInstance(c.Request.Context(), inst.ID, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
