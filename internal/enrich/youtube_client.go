// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

/*
youtube_client.go - YouTube Data API v3 client

Implements the batch metadata lookup against the videos.list endpoint.
One call resolves up to 50 video ids (the API's hard batch limit).

API Reference: https://developers.google.com/youtube/v3/docs/videos/list
*/

package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/rewind/internal/models"
)

// defaultBaseURL is the production API endpoint. Tests point the client
// at an httptest server instead.
const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// MetadataClient is the batch lookup capability: an ordered list of
// video ids in, one metadata record per resolved id out. Both
// YouTubeClient and CircuitBreakerClient implement it.
type MetadataClient interface {
	VideoMetadata(ctx context.Context, ids []string) ([]models.VideoMetadata, error)
}

// Ensure YouTubeClient implements MetadataClient
var _ MetadataClient = (*YouTubeClient)(nil)

// YouTubeClient calls the YouTube Data API v3.
type YouTubeClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewYouTubeClient creates a client authenticated with the given API key.
func NewYouTubeClient(apiKey string) *YouTubeClient {
	return &YouTubeClient{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewYouTubeClientWithBaseURL creates a client against a non-default
// endpoint. Used by tests.
func NewYouTubeClientWithBaseURL(apiKey, baseURL string) *YouTubeClient {
	c := NewYouTubeClient(apiKey)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// videosListResponse mirrors the subset of the videos.list response the
// enricher consumes.
type videosListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			ChannelTitle string `json:"channelTitle"`
			CategoryID   string `json:"categoryId"`
			PublishedAt  string `json:"publishedAt"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// VideoMetadata resolves metadata for one batch of video ids. The API
// silently omits ids it cannot resolve, so the result may be shorter
// than the request; missing ids fall through to the fallback path.
func (c *YouTubeClient) VideoMetadata(ctx context.Context, ids []string) ([]models.VideoMetadata, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("id", strings.Join(ids, ","))
	q.Set("part", "snippet,contentDetails")
	q.Set("maxResults", "50")

	endpoint := c.baseURL + "/videos?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build videos request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("videos request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			return nil, fmt.Errorf("videos request returned status %d (failed to read body)", resp.StatusCode)
		}
		return nil, fmt.Errorf("videos request returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload videosListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode videos response: %w", err)
	}

	records := make([]models.VideoMetadata, 0, len(payload.Items))
	for _, item := range payload.Items {
		minutes, err := ParseISODuration(item.ContentDetails.Duration)
		if err != nil {
			// Malformed response; the whole batch falls back.
			return nil, fmt.Errorf("video %s: %w", item.ID, err)
		}
		records = append(records, models.VideoMetadata{
			VideoID:         item.ID,
			ChannelTitle:    item.Snippet.ChannelTitle,
			CategoryID:      item.Snippet.CategoryID,
			DurationMinutes: minutes,
			PublishedAt:     item.Snippet.PublishedAt,
		})
	}

	return records, nil
}
