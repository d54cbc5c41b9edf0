package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/coocood/freecache"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"fitbuddy/backend/internal/metrics"
	"fitbuddy/backend/internal/model"
)

const (
	DefaultBaseURL = "https://wger.de/api/v2"

	listCacheKey          = "exercises::list"
	listDescriptionLength = 100
	listDefaultBlurb      = "A great exercise to improve your fitness. Tap to see more details."
	detailDefaultBlurb    = "No description available."
	remoteCategory        = model.CategoryStrength
	remoteDuration        = "15 min"
	maxResponseBytes      = 4 << 20
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

type Options struct {
	BaseURL     string
	Timeout     time.Duration
	CacheSizeMB int
	CacheTTL    time.Duration
	HTTPClient  *http.Client
	Recorder    metrics.Recorder
	Logger      zerolog.Logger
}

// Client reads the wger exercise catalog. It never fails: any transport,
// status or decoding problem yields the built-in fallback exercises.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *freecache.Cache
	cacheTTL   int
	recorder   metrics.Recorder
	logger     zerolog.Logger
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.Noop{}
	}

	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		recorder:   opts.Recorder,
		logger:     opts.Logger,
	}
	ttl := int(opts.CacheTTL / time.Second)
	if opts.CacheSizeMB > 0 && ttl > 0 {
		c.cache = freecache.NewCache(opts.CacheSizeMB * 1024 * 1024)
		c.cacheTTL = ttl
	}
	return c
}

type remoteExercise struct {
	ID          json.Number `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
}

type remoteList struct {
	Results []remoteExercise `json:"results"`
}

// List returns up to twenty remote exercises mapped to catalog entries, or
// the fallback list when the remote is unavailable or returns nothing.
func (c *Client) List(ctx context.Context) []model.Exercise {
	var payload remoteList
	if err := c.fetch(ctx, listCacheKey, c.baseURL+"/exercise/?language=2&limit=20", &payload); err != nil {
		c.logger.Warn().Err(err).Msg("exercise list fetch failed, using fallback data")
		c.recorder.IncCatalogFallbacks()
		return Fallback()
	}
	if len(payload.Results) == 0 {
		c.recorder.IncCatalogFallbacks()
		return Fallback()
	}

	items := make([]model.Exercise, 0, len(payload.Results))
	for i, item := range payload.Results {
		if item.ID.String() == "" {
			c.logger.Warn().Int("index", i).Msg("exercise list entry without id, using fallback data")
			c.recorder.IncCatalogFallbacks()
			return Fallback()
		}
		items = append(items, model.Exercise{
			ID:          item.ID.String(),
			Title:       item.Name,
			Image:       fallbackExercises[i%len(fallbackExercises)].Image,
			Description: listDescription(item.Description),
			Category:    remoteCategory,
			Duration:    remoteDuration,
		})
	}
	return items
}

// Get returns the exercise with id. Built-in ids never touch the network; a
// failed remote lookup yields the first built-in exercise.
func (c *Client) Get(ctx context.Context, id string) model.Exercise {
	if item, ok := fallbackByID(id); ok {
		return item
	}

	var item remoteExercise
	endpoint := fmt.Sprintf("%s/exercise/%s/", c.baseURL, url.PathEscape(id))
	if err := c.fetch(ctx, "exercises::"+id, endpoint, &item); err != nil {
		c.logger.Warn().Err(err).Str("exercise_id", id).Msg("exercise fetch failed, using fallback data")
		c.recorder.IncCatalogFallbacks()
		return fallbackExercises[0]
	}
	if item.ID.String() == "" {
		c.logger.Warn().Str("exercise_id", id).Msg("exercise response without id, using fallback data")
		c.recorder.IncCatalogFallbacks()
		return fallbackExercises[0]
	}

	return model.Exercise{
		ID:          item.ID.String(),
		Title:       item.Name,
		Image:       fallbackExercises[0].Image,
		Description: detailDescription(item.Description),
		Category:    remoteCategory,
		Duration:    remoteDuration,
	}
}

func (c *Client) fetch(ctx context.Context, cacheKey, endpoint string, dst interface{}) error {
	if c.cache != nil {
		if raw, err := c.cache.Get([]byte(cacheKey)); err == nil {
			if err := json.Unmarshal(raw, dst); err == nil {
				c.recorder.IncCacheHits()
				return nil
			}
		}
		c.recorder.IncCacheMisses()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Set([]byte(cacheKey), raw, c.cacheTTL); err != nil {
			c.logger.Debug().Err(err).Str("cache_key", cacheKey).Msg("catalog response not cached")
		}
	}
	return nil
}

// StripTags removes anything that looks like an HTML tag.
func StripTags(s string) string {
	return htmlTag.ReplaceAllString(s, "")
}

func listDescription(description *string) string {
	if description == nil || strings.TrimSpace(*description) == "" {
		return listDefaultBlurb
	}
	runes := []rune(StripTags(*description))
	if len(runes) > listDescriptionLength {
		runes = runes[:listDescriptionLength]
	}
	return string(runes) + "..."
}

func detailDescription(description *string) string {
	if description == nil || *description == "" {
		return detailDefaultBlurb
	}
	return StripTags(*description)
}
