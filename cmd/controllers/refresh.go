package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SourceRefresher interface {
	Refresh(ctx context.Context, force bool) error
}

// RefreshController exposes the manual trigger for the source pipeline. The
// cron scheduler drives the same pipeline on its own cadence.
type RefreshController struct {
	pipeline SourceRefresher
}

type RefreshResponse struct {
	Status string `json:"status"`
	Forced bool   `json:"forced"`
}

func NewRefreshController(pipeline SourceRefresher) (*RefreshController, error) {
	if pipeline == nil {
		return nil, errors.New("pipeline service is nil")
	}

	return &RefreshController{pipeline: pipeline}, nil
}

func (c *RefreshController) RegisterRoutes(router *gin.Engine) error {
	if c == nil {
		return errors.New("refresh controller is nil")
	}
	if router == nil {
		return errors.New("router is nil")
	}

	router.GET("/refresh", c.refresh)
	return nil
}

// refresh runs the pipeline. force=1 reloads sources whose payload checksum
// is unchanged, which normally short-circuits the load.
func (c *RefreshController) refresh(ctx *gin.Context) {
	force := parseRefreshForce(ctx)

	if err := c.pipeline.Refresh(ctx.Request.Context(), force); err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to refresh sources"})
		return
	}

	ctx.JSON(http.StatusOK, RefreshResponse{Status: "ok", Forced: force})
}

func parseRefreshForce(ctx *gin.Context) bool {
	switch ctx.Query("force") {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
