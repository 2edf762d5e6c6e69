package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/cache"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/config"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Unit is one node of the administrative hierarchy: a province, district or
// ward, depending on which listing returned it.
type Unit struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// Client reads the public province/district/ward directory. Results are
// memoized per parent code through the injected cache, so re-selecting an
// already-loaded parent never refetches.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
	ttl        time.Duration
}

func NewClient(cfg *config.Directory, store cache.Cache, ttl time.Duration) *Client {

	var transport http.RoundTripper = otelhttp.NewTransport(http.DefaultTransport)
	transport = metrics.NewTransport(transport)

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		cache: store,
		ttl:   ttl,
	}
}

func (c *Client) Provinces(ctx context.Context) ([]Unit, error) {

	key := cache.Key(cache.ProvinceKeyPrefix, "all")

	var cached []Unit
	if found, err := c.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	var provinces []Unit
	if err := c.fetch(ctx, "/p/", &provinces); err != nil {
		return nil, fmt.Errorf("failed to fetch provinces: %w", err)
	}

	sortByName(provinces)

	// cache failure must not fail the lookup
	_ = c.cache.Set(ctx, key, provinces, c.ttl)

	return provinces, nil
}

func (c *Client) Districts(ctx context.Context, provinceCode int) ([]Unit, error) {

	key := cache.Key(cache.DistrictKeyPrefix, strconv.Itoa(provinceCode))

	var cached []Unit
	if found, err := c.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	var parent struct {
		Districts []Unit `json:"districts"`
	}

	if err := c.fetch(ctx, fmt.Sprintf("/p/%d?depth=2", provinceCode), &parent); err != nil {
		return nil, fmt.Errorf("failed to fetch districts of province %d: %w", provinceCode, err)
	}

	sortByName(parent.Districts)

	_ = c.cache.Set(ctx, key, parent.Districts, c.ttl)

	return parent.Districts, nil
}

func (c *Client) Wards(ctx context.Context, districtCode int) ([]Unit, error) {

	key := cache.Key(cache.WardKeyPrefix, strconv.Itoa(districtCode))

	var cached []Unit
	if found, err := c.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	var parent struct {
		Wards []Unit `json:"wards"`
	}

	if err := c.fetch(ctx, fmt.Sprintf("/d/%d?depth=2", districtCode), &parent); err != nil {
		return nil, fmt.Errorf("failed to fetch wards of district %d: %w", districtCode, err)
	}

	sortByName(parent.Wards)

	_ = c.cache.Set(ctx, key, parent.Wards, c.ttl)

	return parent.Wards, nil
}

// Ping is the reachability probe used by the health endpoint.
func (c *Client) Ping(ctx context.Context) error {

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var provinces []Unit

	return c.fetch(ctx, "/p/", &provinces)
}

func (c *Client) fetch(ctx context.Context, path string, out any) error {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("http status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, out)
}

func sortByName(units []Unit) {
	sort.Slice(units, func(i, j int) bool {
		return units[i].Name < units[j].Name
	})
}
