package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"bidback/internal/models"

	"github.com/gin-gonic/gin"
)

const defaultLogsLimit = 20

type AuditTrail interface {
	GetLogs(ctx context.Context, limit int, eventID string, action string) ([]models.Log, error)
	DeleteLogs(ctx context.Context, eventID string) (int, error)
}

// LogsController serves the ingest audit trail. Entries can be narrowed to
// one refresh run (event_id) or one pipeline stage (action).
type LogsController struct {
	trail AuditTrail
}

type DeleteLogsResponse struct {
	Deleted int `json:"deleted"`
}

func NewLogsController(trail AuditTrail) (*LogsController, error) {
	if trail == nil {
		return nil, errors.New("log service is nil")
	}

	return &LogsController{trail: trail}, nil
}

func (c *LogsController) RegisterRoutes(router *gin.Engine) error {
	if c == nil {
		return errors.New("logs controller is nil")
	}
	if router == nil {
		return errors.New("router is nil")
	}

	router.GET("/logs", c.getLogs)
	router.DELETE("/logs", c.deleteLogs)
	return nil
}

func (c *LogsController) getLogs(ctx *gin.Context) {
	limit, err := parseLogsLimit(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid logs limit"})
		return
	}

	logs, err := c.trail.GetLogs(ctx.Request.Context(), limit, parseLogsEventID(ctx), ctx.Query("action"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load logs"})
		return
	}

	ctx.JSON(http.StatusOK, logs)
}

// deleteLogs truncates the trail, or removes a single run's entries when
// event_id is given.
func (c *LogsController) deleteLogs(ctx *gin.Context) {
	deleted, err := c.trail.DeleteLogs(ctx.Request.Context(), parseLogsEventID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete logs"})
		return
	}

	ctx.JSON(http.StatusOK, DeleteLogsResponse{Deleted: deleted})
}

func parseLogsLimit(ctx *gin.Context) (int, error) {
	value := ctx.Query("n")
	if value == "" {
		return defaultLogsLimit, nil
	}

	limit, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if limit <= 0 {
		return 0, errors.New("limit must be positive")
	}

	return limit, nil
}

func parseLogsEventID(ctx *gin.Context) string {
	eventID := ctx.Query("eventId")
	if eventID == "" {
		eventID = ctx.Query("event_id")
	}
	return eventID
}
