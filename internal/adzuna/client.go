// Package adzuna queries the Adzuna job-search API and maps its results to
// display-ready job cards.
package adzuna

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/glageb/cur-vintage-jobs/internal/model"
)

const (
	// DefaultBaseURL is the public Adzuna jobs endpoint.
	DefaultBaseURL = "https://api.adzuna.com/v1/api/jobs"
	// PageSize is the fixed number of results requested per page.
	PageSize    = 20
	httpTimeout = 15 * time.Second
)

// ErrMissingCredentials is returned before any network I/O when the app id
// or app key is not configured.
var ErrMissingCredentials = errors.New("adzuna: ADZUNA_APP_ID / ADZUNA_APP_KEY not set")

// RequestError reports a non-success HTTP response from a remote service.
// It is terminal for the attempt; nothing retries it.
type RequestError struct {
	Service    string
	StatusCode int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s API error: %d", e.Service, e.StatusCode)
}

// Result is one page of search results.
type Result struct {
	Total   int
	Cards   []model.JobCard
	RawJobs []model.JobForExtraction
}

// Client talks to the Adzuna search endpoint.
type Client struct {
	BaseURL string
	AppID   string
	AppKey  string
	http    *http.Client
	log     *zap.Logger
}

// NewClient constructs a client with a shared HTTP client. An empty baseURL
// selects DefaultBaseURL.
func NewClient(baseURL, appID, appKey string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		AppID:   appID,
		AppKey:  appKey,
		http:    &http.Client{Timeout: httpTimeout},
		log:     log,
	}
}

// ─── Wire types ──────────────────────────────────────────────────────────────

// searchResponse mirrors the top-level Adzuna JSON response.
type searchResponse struct {
	Count   *int        `json:"count"`
	Results []rawResult `json:"results"`
}

// rawResult mirrors a single Adzuna listing. Every field is optional on the
// wire; pointers distinguish "absent" from zero.
type rawResult struct {
	ID           flexID       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Company      *displayName `json:"company"`
	Location     *displayName `json:"location"`
	SalaryMin    *float64     `json:"salary_min"`
	SalaryMax    *float64     `json:"salary_max"`
	RedirectURL  string       `json:"redirect_url"`
	Created      string       `json:"created"`
	ContractTime string       `json:"contract_time"`
	ContractType string       `json:"contract_type"`
}

type displayName struct {
	DisplayName *string `json:"display_name"`
}

// flexID accepts ids sent as JSON strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("job id: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

// ─── Search ──────────────────────────────────────────────────────────────────

// Search fetches one page of results for region. Keyword and location are
// trimmed and left out of the query when empty.
func (c *Client) Search(ctx context.Context, region string, page int, keyword, location string) (*Result, error) {
	if c.AppID == "" || c.AppKey == "" {
		return nil, ErrMissingCredentials
	}
	if page < 1 {
		page = 1
	}

	reqURL := c.searchURL(region, page, strings.TrimSpace(keyword), strings.TrimSpace(location))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("[adzuna] search failed",
			zap.String("region", region),
			zap.Int("page", page),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &RequestError{Service: "Adzuna", StatusCode: resp.StatusCode}
	}

	var apiResp searchResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	out := &Result{
		Cards:   make([]model.JobCard, 0, len(apiResp.Results)),
		RawJobs: make([]model.JobForExtraction, 0, len(apiResp.Results)),
	}
	if apiResp.Count != nil {
		out.Total = *apiResp.Count
	}
	for _, r := range apiResp.Results {
		out.Cards = append(out.Cards, toCard(r))
		out.RawJobs = append(out.RawJobs, model.JobForExtraction{
			ID:          string(r.ID),
			Title:       r.Title,
			Description: r.Description,
		})
	}

	c.log.Debug("[adzuna] search ok",
		zap.String("region", region),
		zap.Int("page", page),
		zap.Int("total", out.Total),
		zap.Int("cards", len(out.Cards)),
	)
	return out, nil
}

func (c *Client) searchURL(region string, page int, keyword, location string) string {
	params := url.Values{}
	params.Set("app_id", c.AppID)
	params.Set("app_key", c.AppKey)
	params.Set("results_per_page", strconv.Itoa(PageSize))
	if keyword != "" {
		params.Set("what", keyword)
	}
	if location != "" {
		params.Set("where", location)
	}
	return fmt.Sprintf("%s/%s/search/%d?%s", c.BaseURL, url.PathEscape(region), page, params.Encode())
}
