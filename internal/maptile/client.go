// Package maptile fetches small static-map rasters for a coordinate from
// a configurable tile endpoint.
package maptile

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Client fetches map thumbnails. Requests are rate limited and bounded by
// the HTTP client timeout, so a slow tile server can never stall a
// tagging call; callers fall back to a drawn placeholder on any error.
type Client struct {
	urlTemplate string
	zoom        int
	httpClient  *http.Client
	limiter     *rate.Limiter
}

// New creates a Client. The URL template may reference {lat}, {lng},
// {zoom}, {width} and {height}. A non-positive rps disables rate
// limiting; a zero-rate limiter would block forever once its single
// burst token is spent.
func New(urlTemplate string, zoom int, timeout time.Duration, rps float64) *Client {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &Client{
		urlTemplate: urlTemplate,
		zoom:        zoom,
		httpClient:  &http.Client{Timeout: timeout},
		limiter:     rate.NewLimiter(limit, 1),
	}
}

// Thumbnail fetches and decodes a map image centered on the coordinate.
func (c *Client) Thumbnail(ctx context.Context, lat, lng float64, w, h int) (image.Image, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(lat, lng, w, h), nil)
	if err != nil {
		return nil, fmt.Errorf("creating tile request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching map tile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tile server returned status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding map tile: %w", err)
	}
	return img, nil
}

func (c *Client) buildURL(lat, lng float64, w, h int) string {
	r := strings.NewReplacer(
		"{lat}", strconv.FormatFloat(lat, 'f', 6, 64),
		"{lng}", strconv.FormatFloat(lng, 'f', 6, 64),
		"{zoom}", strconv.Itoa(c.zoom),
		"{width}", strconv.Itoa(w),
		"{height}", strconv.Itoa(h),
	)
	return r.Replace(c.urlTemplate)
}
