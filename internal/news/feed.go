package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/KirillKCrypto/Trading-Journal-APP/internal/errors"
	"github.com/KirillKCrypto/Trading-Journal-APP/pkg/utils"
)

// The feed rejects default Go user agents, so a browser one is sent.
const feedUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

const maxFetchAttempts = 3

// feedItem is the raw shape of one upstream calendar entry.
type feedItem struct {
	Date     string `json:"date"`
	Title    string `json:"title"`
	Impact   string `json:"impact"`
	Country  string `json:"country"`
	Forecast string `json:"forecast"`
	Previous string `json:"previous"`
	Actual   string `json:"actual"`
}

// fetchFeed pulls the upstream calendar, retrying transient failures
// with exponential backoff within the current refresh tick.
func (s *Service) fetchFeed(ctx context.Context) ([]feedItem, error) {
	return utils.RetryWithResult(ctx, utils.RetryConfig{
		MaxAttempts: maxFetchAttempts,
		MinDelay:    500 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		Factor:      2,
		Jitter:      true,
	}, func() ([]feedItem, error) {
		return s.fetchOnce(ctx)
	})
}

func (s *Service) fetchOnce(ctx context.Context) ([]feedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.FeedURL, nil)
	if err != nil {
		return nil, apperrors.NewFeedError(s.cfg.FeedURL, 0, err)
	}
	req.Header.Set("User-Agent", feedUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.NewFeedError(s.cfg.FeedURL, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, apperrors.NewFeedError(s.cfg.FeedURL, resp.StatusCode,
			fmt.Errorf("%w: unexpected status %s", apperrors.ErrFeedUnavailable, resp.Status))
	}

	var items []feedItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, apperrors.NewFeedError(s.cfg.FeedURL, resp.StatusCode,
			fmt.Errorf("decoding feed: %w", err))
	}
	return items, nil
}
