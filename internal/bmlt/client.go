package bmlt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bmlt-tools/snapshot-server/internal/platform/envutil"
	"github.com/bmlt-tools/snapshot-server/internal/platform/logger"
)

// RawRecord is one flat record as delivered by a root server. The remote
// API serializes every field as a string; the few servers that emit bare
// numbers or booleans are stringified on decode, and null values are
// dropped so an absent key means an absent field.
type RawRecord map[string]string

// Client reads the three collections a root server exposes.
type Client interface {
	GetServiceBodies(ctx context.Context) ([]RawRecord, error)
	GetFormats(ctx context.Context) ([]RawRecord, error)
	GetMeetings(ctx context.Context) ([]RawRecord, error)
}

// Factory builds a client for one root server base URL. The snapshot
// service takes a Factory so tests can substitute a stub client.
type Factory func(baseURL string) Client

const (
	serviceBodiesPath = "client_interface/json/?switcher=GetServiceBodies"
	formatsPath       = "client_interface/json/?switcher=GetFormats"
	// advanced_published=0 returns published and unpublished meetings.
	meetingsPath = "client_interface/json/?switcher=GetSearchResults&advanced_published=0"

	// A browser-style agent; some hosts block default Go user agents.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:52.0) Gecko/20100101 Firefox/52.0 +snapshot-server"
)

type client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func NewClient(baseURL string, baseLog *logger.Logger) Client {
	// Large servers can take well over a minute to assemble the full
	// meeting search response.
	timeout := envutil.GetEnvAsInt("BMLT_HTTP_TIMEOUT_SECONDS", 120, baseLog)
	return &client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		log:        baseLog.With("client", "BmltClient", "base_url", baseURL),
	}
}

// NewFactory returns the production Factory.
func NewFactory(baseLog *logger.Logger) Factory {
	return func(baseURL string) Client {
		return NewClient(baseURL, baseLog)
	}
}

func (c *client) GetServiceBodies(ctx context.Context) ([]RawRecord, error) {
	return c.getJSON(ctx, serviceBodiesPath)
}

func (c *client) GetFormats(ctx context.Context) ([]RawRecord, error) {
	return c.getJSON(ctx, formatsPath)
}

func (c *client) GetMeetings(ctx context.Context) ([]RawRecord, error) {
	return c.getJSON(ctx, meetingsPath)
}

func (c *client) getJSON(ctx context.Context, relPath string) ([]RawRecord, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", c.baseURL, err)
	}
	rel, err := url.Parse(relPath)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", relPath, err)
	}
	u := base.ResolveReference(rel).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code %d GET %s", resp.StatusCode, u)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body GET %s: %w", u, err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode body GET %s: %w", u, err)
	}

	records := make([]RawRecord, 0, len(raw))
	for _, m := range raw {
		records = append(records, toRawRecord(m))
	}
	return records, nil
}

func toRawRecord(m map[string]any) RawRecord {
	rec := make(RawRecord, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case string:
			rec[k] = val
		case float64:
			rec[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			rec[k] = strconv.FormatBool(val)
		case nil:
			// absent
		default:
			rec[k] = fmt.Sprint(val)
		}
	}
	return rec
}
