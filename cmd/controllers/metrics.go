package controllers

import (
	"errors"
	"net/http"

	"bidback/internal/models"
	"bidback/internal/services"

	"github.com/gin-gonic/gin"
)

type MetricsProvider interface {
	VisibleRecords(filter services.Filter) ([]models.BidRecord, error)
	FilterOptions() (services.FilterOptions, error)
	Summarize(filter services.Filter) (services.Summary, error)
}

type MetricsController struct {
	service MetricsProvider
}

func NewMetricsController(service MetricsProvider) (*MetricsController, error) {
	if service == nil {
		return nil, errors.New("metrics service is nil")
	}

	return &MetricsController{service: service}, nil
}

func (c *MetricsController) RegisterRoutes(router *gin.Engine) error {
	if c == nil {
		return errors.New("metrics controller is nil")
	}
	if router == nil {
		return errors.New("router is nil")
	}

	router.GET("/records", c.getRecords)
	router.GET("/metrics", c.getMetrics)
	router.GET("/filters", c.getFilters)
	return nil
}

func (c *MetricsController) getRecords(ctx *gin.Context) {
	records, err := c.service.VisibleRecords(parseFilter(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load records"})
		return
	}

	ctx.JSON(http.StatusOK, records)
}

func (c *MetricsController) getMetrics(ctx *gin.Context) {
	summary, err := c.service.Summarize(parseFilter(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to compute metrics"})
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

func (c *MetricsController) getFilters(ctx *gin.Context) {
	options, err := c.service.FilterOptions()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load filter options"})
		return
	}

	ctx.JSON(http.StatusOK, options)
}

func parseFilter(ctx *gin.Context) services.Filter {
	search := ctx.Query("q")
	if search == "" {
		search = ctx.Query("search")
	}

	return services.Filter{
		Authority: ctx.Query("authority"),
		Category:  ctx.Query("category"),
		Stage:     ctx.Query("stage"),
		Search:    search,
	}
}
