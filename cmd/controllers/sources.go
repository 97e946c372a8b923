package controllers

import (
	"context"
	"errors"
	"net/http"

	"bidback/internal/models"
	"bidback/internal/services"

	"github.com/gin-gonic/gin"
)

type SourceRegistry interface {
	GetSources(ctx context.Context) ([]models.Source, error)
	AddSource(ctx context.Context, url string, comment *string) (models.Source, error)
}

// SourcesController lists and registers the tracker export URLs the refresh
// pipeline pulls from.
type SourcesController struct {
	registry SourceRegistry
}

type SourcesResponse struct {
	Sources []models.Source `json:"sources"`
}

type AddSourceRequest struct {
	URL     string  `json:"url"`
	Comment *string `json:"comment"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewSourcesController(registry SourceRegistry) (*SourcesController, error) {
	if registry == nil {
		return nil, errors.New("source service is nil")
	}

	return &SourcesController{registry: registry}, nil
}

func (c *SourcesController) RegisterRoutes(router *gin.Engine) error {
	if c == nil {
		return errors.New("sources controller is nil")
	}
	if router == nil {
		return errors.New("router is nil")
	}

	router.GET("/sources", c.getSources)
	router.POST("/sources", c.addSource)
	return nil
}

func (c *SourcesController) getSources(ctx *gin.Context) {
	sources, err := c.registry.GetSources(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load sources"})
		return
	}

	ctx.JSON(http.StatusOK, SourcesResponse{Sources: sources})
}

func (c *SourcesController) addSource(ctx *gin.Context) {
	var request AddSourceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid source payload"})
		return
	}

	source, err := c.registry.AddSource(ctx.Request.Context(), request.URL, request.Comment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSourceURLEmpty):
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "source url is empty"})
		case errors.Is(err, services.ErrSourceExists):
			ctx.JSON(http.StatusConflict, ErrorResponse{Error: "source already registered"})
		default:
			ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save source"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, source)
}
