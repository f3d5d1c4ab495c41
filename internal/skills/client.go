package skills

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/glageb/cur-vintage-jobs/internal/model"
)

// Request is the body of POST /api/extract-skills.
type Request struct {
	Jobs []model.JobForExtraction `json:"jobs"`
}

// Response is the body returned by the endpoint. Error is set on failures.
type Response struct {
	SkillsByJobID map[string][]string `json:"skillsByJobId,omitempty"`
	Error         string              `json:"error,omitempty"`
}

// Result is the outcome of a client call. Failures are soft: Error carries
// a message for display and SkillsByJobID is still usable.
type Result struct {
	SkillsByJobID map[string][]string
	Error         string
}

// Client calls an extract-skills endpoint.
type Client struct {
	Endpoint string
	HTTP     *http.Client
}

// NewClient returns a client for endpoint.
func NewClient(endpoint string) *Client {
	return &Client{Endpoint: endpoint, HTTP: http.DefaultClient}
}

// Extract posts jobs to the endpoint. It never returns an error; any
// transport failure or non-200 reply is reported in Result.Error.
func (c *Client) Extract(ctx context.Context, jobs []model.JobForExtraction) Result {
	if len(jobs) == 0 {
		return Result{SkillsByJobID: map[string][]string{}}
	}

	body, err := json.Marshal(Request{Jobs: jobs})
	if err != nil {
		return Result{SkillsByJobID: EmptyFor(jobs), Error: err.Error()}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{SkillsByJobID: EmptyFor(jobs), Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return Result{SkillsByJobID: EmptyFor(jobs), Error: err.Error()}
	}
	defer resp.Body.Close()

	var data Response
	_ = json.NewDecoder(resp.Body).Decode(&data)

	skills := data.SkillsByJobID
	if skills == nil {
		skills = EmptyFor(jobs)
	}
	if resp.StatusCode != http.StatusOK {
		msg := data.Error
		switch {
		case msg != "":
		case resp.StatusCode == http.StatusServiceUnavailable:
			msg = "Extract-skills server: API key not set or unavailable."
		default:
			msg = fmt.Sprintf("Request failed (%d).", resp.StatusCode)
		}
		return Result{SkillsByJobID: skills, Error: msg}
	}
	return Result{SkillsByJobID: skills}
}
