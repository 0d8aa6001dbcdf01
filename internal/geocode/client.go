// Package geocode resolves street addresses to coordinates through a
// Nominatim-compatible endpoint. Lookups are best-effort: the caller
// treats every failure as "no coordinates".
package geocode

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type Client struct {
	http   *resty.Client
	email  string
	logger *zap.Logger
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func NewClient(baseURL, email string, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("User-Agent", "ca-app-geocoder/1.0")
	return &Client{
		http:   httpClient,
		email:  email,
		logger: logger,
	}
}

// Geocode resolves a free-form address query to a coordinate pair.
func (c *Client) Geocode(query string) (float64, float64, error) {
	var results []searchResult
	params := map[string]string{
		"q":      query,
		"format": "json",
		"limit":  "1",
	}
	if c.email != "" {
		params["email"] = c.email
	}
	resp, err := c.http.R().
		SetQueryParams(params).
		SetResult(&results).
		Get("/search")
	if err != nil {
		return 0, 0, fmt.Errorf("geocode request: %w", err)
	}
	if resp.IsError() {
		return 0, 0, fmt.Errorf("geocode request: status %d", resp.StatusCode())
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocode result for %q", query)
	}
	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude %q: %w", results[0].Lon, err)
	}
	c.logger.Debug("geocoded address", zap.String("query", query))
	return lat, lon, nil
}
