package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

type FetchService struct {
	client *http.Client
}

func NewFetchService(client *http.Client) (*FetchService, error) {
	if client == nil {
		client = http.DefaultClient
	}

	return &FetchService{client: client}, nil
}

// Fetch downloads a source export. The body stays raw bytes because sources
// serve text, workbooks or zip archives and the pipeline sniffs which.
func (s *FetchService) Fetch(ctx context.Context, url string) (FetchResult, error) {
	if s == nil {
		return FetchResult{}, errors.New("fetch service is nil")
	}
	if s.client == nil {
		return FetchResult{}, errors.New("http client is nil")
	}
	if url == "" {
		return FetchResult{}, errors.New("url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FetchResult{URL: url}, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return FetchResult{URL: url}, fmt.Errorf("do request: %w", err)
	}

	body, readErr := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if readErr != nil {
		return FetchResult{URL: url, StatusCode: resp.StatusCode}, fmt.Errorf("read response: %w", readErr)
	}
	if closeErr != nil {
		return FetchResult{URL: url, StatusCode: resp.StatusCode, Body: body}, fmt.Errorf("close response: %w", closeErr)
	}

	return FetchResult{URL: url, StatusCode: resp.StatusCode, Body: body}, nil
}
