// Package geo guesses the user's job-search region and place from their IP
// address using ipapi.co.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/glageb/cur-vintage-jobs/internal/adzuna"
)

// DefaultBaseURL is the public ipapi endpoint.
const DefaultBaseURL = "https://ipapi.co"

// UnknownPlace is used when the lookup names no city, region or country.
const UnknownPlace = "Unknown"

// DetectionError is returned for any failed lookup. Callers show the
// message and keep whatever region/place they already had.
type DetectionError struct {
	Err error
}

func (e *DetectionError) Error() string { return "could not detect location" }
func (e *DetectionError) Unwrap() error { return e.Err }

// Location is the detected search region and free-text place.
type Location struct {
	Region string `json:"region"`
	Where  string `json:"where"`
}

// countryRegions maps ISO country codes to Adzuna region codes.
var countryRegions = map[string]string{
	"uk": "gb",
}

func init() {
	for _, r := range adzuna.Regions {
		countryRegions[r.Code] = r.Code
	}
}

// ipapiResponse holds the few ipapi fields used here.
type ipapiResponse struct {
	CountryCode string `json:"country_code"`
	City        string `json:"city"`
	Region      string `json:"region"`
	CountryName string `json:"country_name"`
}

// Detector performs the IP lookup. The zero value uses DefaultBaseURL and
// http.DefaultClient; no timeout or retry is added.
type Detector struct {
	BaseURL string
	Client  *http.Client
}

// NewDetector returns a Detector for baseURL.
func NewDetector(baseURL string) *Detector {
	return &Detector{BaseURL: baseURL}
}

// Detect makes one lookup and maps it to a Location.
func (d *Detector) Detect(ctx context.Context) (*Location, error) {
	base := d.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(base, "/")+"/json/", nil)
	if err != nil {
		return nil, &DetectionError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &DetectionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &DetectionError{Err: &adzuna.RequestError{Service: "ipapi", StatusCode: resp.StatusCode}}
	}

	var data ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &DetectionError{Err: fmt.Errorf("decode ipapi response: %w", err)}
	}

	return &Location{
		Region: RegionFor(data.CountryCode),
		Where:  placeFor(data),
	}, nil
}

// RegionFor maps an ISO country code to a search region: the fixed table
// first, then the lower-cased code itself, then adzuna.DefaultRegion.
func RegionFor(countryCode string) string {
	lower := strings.ToLower(strings.TrimSpace(countryCode))
	if r, ok := countryRegions[lower]; ok {
		return r
	}
	if lower != "" {
		return lower
	}
	return adzuna.DefaultRegion
}

func placeFor(data ipapiResponse) string {
	for _, candidate := range []string{data.City, data.Region, data.CountryName} {
		if where := strings.TrimSpace(candidate); where != "" {
			return where
		}
	}
	return UnknownPlace
}
