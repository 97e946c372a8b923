package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"bidback/internal/services"

	"github.com/gin-gonic/gin"
)

type DatasetIngestor interface {
	Ingest(ctx context.Context, body []byte, origin string) (int, error)
}

type SnapshotProvider interface {
	Info() services.DatasetInfo
}

type DatasetController struct {
	ingestor DatasetIngestor
	snapshot SnapshotProvider
}

type UploadResponse struct {
	Rows   int    `json:"rows"`
	Source string `json:"source"`
}

func NewDatasetController(ingestor DatasetIngestor, snapshot SnapshotProvider) (*DatasetController, error) {
	if ingestor == nil {
		return nil, errors.New("ingestor is nil")
	}
	if snapshot == nil {
		return nil, errors.New("snapshot provider is nil")
	}

	return &DatasetController{ingestor: ingestor, snapshot: snapshot}, nil
}

func (c *DatasetController) RegisterRoutes(router *gin.Engine) error {
	if c == nil {
		return errors.New("dataset controller is nil")
	}
	if router == nil {
		return errors.New("router is nil")
	}

	router.POST("/dataset", c.upload)
	router.GET("/dataset", c.info)
	return nil
}

func (c *DatasetController) upload(ctx *gin.Context) {
	body, origin, err := readUploadPayload(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read payload"})
		return
	}

	rows, err := c.ingestor.Ingest(ctx.Request.Context(), body, origin)
	if err != nil {
		if errors.Is(err, services.ErrNoHeaderRow) {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "no header row detected"})
			return
		}
		if errors.Is(err, services.ErrNoRecords) {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "parsed 0 rows"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load dataset"})
		return
	}

	ctx.JSON(http.StatusOK, UploadResponse{Rows: rows, Source: origin})
}

func (c *DatasetController) info(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.snapshot.Info())
}

// readUploadPayload accepts either a multipart "file" field or the raw
// request body, so both browser uploads and curl pipes work.
func readUploadPayload(ctx *gin.Context) ([]byte, string, error) {
	file, header, err := ctx.Request.FormFile("file")
	if err == nil {
		body, readErr := io.ReadAll(file)
		closeErr := file.Close()
		if readErr != nil {
			return nil, "", readErr
		}
		if closeErr != nil {
			return nil, "", closeErr
		}

		return body, header.Filename, nil
	}

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		return nil, "", err
	}

	return body, "upload", nil
}
