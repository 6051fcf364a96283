package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/viper"
	"github.com/vidfeed-cli/vidfeed/constant"
	"github.com/vidfeed-cli/vidfeed/internal/cache"
	"github.com/vidfeed-cli/vidfeed/key"
	"github.com/vidfeed-cli/vidfeed/log"
	"github.com/vidfeed-cli/vidfeed/network"
)

// Fetch retrieves the video catalog from the configured endpoint.
// Responses are served from the on-disk cache while the configured
// lifetime has not elapsed. Transport or decode failures leave the
// feed empty; malformed elements are dropped individually by ParseList.
func Fetch(ctx context.Context) ([]Record, error) {
	endpoint := viper.GetString(key.FeedEndpoint)
	limit := viper.GetInt(key.FeedLimit)

	cacheKey := cache.GenerateKey(endpoint, limit)
	var cached []Record
	if cache.Read(cacheKey, &cached) {
		log.Debugf("feed: served %d records from cache", len(cached))
		return cached, nil
	}

	target, err := catalogURL(endpoint, limit)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := network.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch video list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch video list: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read video list: %w", err)
	}

	records, err := ParseList(body)
	if err != nil {
		return nil, err
	}

	if err := cache.Write(cacheKey, records); err != nil {
		log.Warnf("feed: cache write failed: %v", err)
	}

	return records, nil
}

// catalogURL appends the configured limit to the endpoint's query string.
func catalogURL(endpoint string, limit int) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse feed endpoint: %w", err)
	}

	if limit > 0 {
		q := u.Query()
		q.Set("limit", strconv.Itoa(limit))
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}
