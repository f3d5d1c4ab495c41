package geo_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glageb/cur-vintage-jobs/internal/adzuna"
	"github.com/glageb/cur-vintage-jobs/internal/geo"
)

func serve(t *testing.T, status int, body string) *geo.Detector {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json/" {
			t.Errorf("path = %q, want /json/", r.URL.Path)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept = %q", r.Header.Get("Accept"))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return geo.NewDetector(srv.URL)
}

func TestDetect(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		region string
		where  string
	}{
		{"city", `{"country_code":"GB","city":"London","region":"England"}`, "gb", "London"},
		{"uk alias", `{"country_code":"UK","region":"Scotland"}`, "gb", "Scotland"},
		{"country name", `{"country_code":"US","country_name":"United States"}`, "us", "United States"},
		{"unmapped code", `{"country_code":"JP","city":" Tokyo "}`, "jp", "Tokyo"},
		{"nothing", `{}`, "gb", "Unknown"},
		{"blank city", `{"country_code":"fr","city":"  ","region":"Île-de-France"}`, "fr", "Île-de-France"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loc, err := serve(t, http.StatusOK, tc.body).Detect(context.Background())
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if loc.Region != tc.region || loc.Where != tc.where {
				t.Errorf("Detect = %+v, want {%s %s}", loc, tc.region, tc.where)
			}
		})
	}
}

func TestDetect_NonSuccess(t *testing.T) {
	_, err := serve(t, http.StatusTooManyRequests, `{"error":true}`).Detect(context.Background())

	var detErr *geo.DetectionError
	if !errors.As(err, &detErr) {
		t.Fatalf("err = %v, want *DetectionError", err)
	}
	if err.Error() != "could not detect location" {
		t.Errorf("message = %q", err.Error())
	}
	var reqErr *adzuna.RequestError
	if !errors.As(err, &reqErr) || reqErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("cause = %v, want RequestError 429", errors.Unwrap(err))
	}
}

func TestDetect_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := geo.NewDetector(url).Detect(context.Background())
	var detErr *geo.DetectionError
	if !errors.As(err, &detErr) {
		t.Errorf("err = %v, want *DetectionError", err)
	}
}

func TestRegionFor(t *testing.T) {
	cases := map[string]string{"GB": "gb", "uk": "gb", "De": "de", "xx": "xx", "": "gb", " ": "gb"}
	for in, want := range cases {
		if got := geo.RegionFor(in); got != want {
			t.Errorf("RegionFor(%q) = %q, want %q", in, got, want)
		}
	}
}
