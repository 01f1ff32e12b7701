package seedtool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fedegiraudo/inmatch/internal/domain/model"
	"github.com/fedegiraudo/inmatch/internal/domain/types"
	"github.com/fedegiraudo/inmatch/pkg/logger"
)

// httpClient wraps http.Client with a per-request timeout.
type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.client.Do(req)
}

func (c *httpClient) postJSON(ctx context.Context, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// checkServiceHealth verifies the service answers on /healthz.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)
	resp, err := client.get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("connect to service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status %d", resp.StatusCode)
	}
	logger.Get().Info(ctx, "service is healthy", logger.String("baseURL", config.BaseURL))
	return nil
}

// submitListings posts the listings concurrently through a worker pool.
func submitListings(ctx context.Context, config *Config, listings []model.Listing, stats *Stats) error {
	submitted, failed := postAll(ctx, config, config.BaseURL+"/listings", toAny(listings))
	stats.ListingsSubmitted = int(submitted)
	stats.SubmitFailed += int(failed)
	logger.Get().Info(ctx, "listings submitted",
		logger.Int("submitted", stats.ListingsSubmitted),
		logger.Int("failed", int(failed)))
	return nil
}

// submitProfiles posts the profiles concurrently through a worker pool.
func submitProfiles(ctx context.Context, config *Config, profiles []model.SearchProfile, stats *Stats) error {
	submitted, failed := postAll(ctx, config, config.BaseURL+"/profiles", toAny(profiles))
	stats.ProfilesSubmitted = int(submitted)
	stats.SubmitFailed += int(failed)
	logger.Get().Info(ctx, "profiles submitted",
		logger.Int("submitted", stats.ProfilesSubmitted),
		logger.Int("failed", int(failed)))
	return nil
}

func toAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func postAll(ctx context.Context, config *Config, url string, items []any) (successful, failed int64) {
	client := newHTTPClient(config.Timeout)

	jobs := make(chan any, config.Workers*2)
	var wg sync.WaitGroup
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				if ctx.Err() != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				resp, err := client.postJSON(ctx, url, item)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "submit failed", logger.Error(err))
					}
					continue
				}
				_ = resp.Body.Close()
				if resp.StatusCode == http.StatusCreated {
					atomic.AddInt64(&successful, 1)
				} else {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "submit rejected", logger.Int("status", resp.StatusCode))
					}
				}
			}
		}()
	}

	for _, item := range items {
		jobs <- item
	}
	close(jobs)
	wg.Wait()
	return successful, failed
}

// fetchSummary retrieves the population-wide match summary and records how
// many matches the seeded data produced.
func fetchSummary(ctx context.Context, config *Config, stats *Stats) error {
	client := newHTTPClient(config.Timeout)
	resp, err := client.get(ctx, config.BaseURL+"/matches/summary")
	if err != nil {
		return fmt.Errorf("fetch summary: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("summary request failed with status %d", resp.StatusCode)
	}

	var summaries []types.ProfileSummary
	if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
		return fmt.Errorf("decode summary: %w", err)
	}

	stats.SummariesRetrieved = len(summaries)
	for _, s := range summaries {
		stats.TotalMatches += s.TotalMatches
	}
	logger.Get().Info(ctx, "summary retrieved",
		logger.Int("profiles", stats.SummariesRetrieved),
		logger.Int("totalMatches", stats.TotalMatches))
	return nil
}
