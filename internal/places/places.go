// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package places is the client for the Google Places Web Service. It
// provides the two capabilities the pipeline depends on: one page of a
// Nearby Search, and the Place Details record for one identifier.
package places

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/place-scout/internal/httputil"
	"github.com/pdiddy/place-scout/pkg/types"
)

// Endpoints. Declared as vars so tests can substitute an httptest server.
var (
	nearbySearchBase = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	detailsBase      = "https://maps.googleapis.com/maps/api/place/details/json"
)

// detailsFields is the field mask requested from the details endpoint.
var detailsFields = []string{
	"place_id",
	"name",
	"formatted_address",
	"address_components",
	"geometry",
	"plus_code",
	"types",
	"rating",
	"user_ratings_total",
	"opening_hours",
	"website",
	"formatted_phone_number",
	"reviews",
	"url",
	"business_status",
}

// Client calls the Places endpoints. It is safe to reuse across a run.
type Client struct {
	HTTP      *http.Client
	APIKey    string
	UserAgent string
}

// NewClient returns a Client using httpClient for every request.
func NewClient(httpClient *http.Client, apiKey, userAgent string) *Client {
	return &Client{HTTP: httpClient, APIKey: apiKey, UserAgent: userAgent}
}

// UpstreamError reports a response whose status field is not OK.
type UpstreamError struct {
	Endpoint string
	Status   string
	Message  string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s returned status %s", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s returned status %s: %s", e.Endpoint, e.Status, e.Message)
}

// SearchPage fetches one page of Nearby Search results. A continuation
// request sends only the page token and key, as the upstream requires.
func (c *Client) SearchPage(ctx context.Context, req types.PageRequest) (types.Page, error) {
	params := url.Values{"key": {c.APIKey}}
	if req.PageToken != "" {
		params.Set("pagetoken", req.PageToken)
	} else {
		if req.Query.IsEmpty() {
			return types.Page{}, fmt.Errorf("empty search query")
		}
		params.Set("location", fmt.Sprintf("%f,%f", req.Center.Lat, req.Center.Lng))
		params.Set("radius", strconv.Itoa(req.Radius))
		if req.Query.Category != "" {
			params.Set("type", req.Query.Category)
		}
		if req.Query.Keyword != "" {
			params.Set("keyword", req.Query.Keyword)
		}
	}

	var sr searchResponse
	reqURL := nearbySearchBase + "?" + params.Encode()
	if err := httputil.GetJSON(ctx, c.HTTP, reqURL, "nearby search", c.UserAgent, &sr); err != nil {
		return types.Page{}, err
	}
	if sr.Status != "OK" && sr.Status != "ZERO_RESULTS" {
		return types.Page{}, &UpstreamError{Endpoint: "nearby search", Status: sr.Status, Message: sr.ErrorMessage}
	}

	page := types.Page{NextPageToken: sr.NextPageToken}
	for _, p := range sr.Results {
		page.Results = append(page.Results, p.toCandidate())
	}
	return page, nil
}

// Details fetches the enriched record for placeID.
func (c *Client) Details(ctx context.Context, placeID string) (types.Candidate, error) {
	if strings.TrimSpace(placeID) == "" {
		return types.Candidate{}, fmt.Errorf("empty place id")
	}
	params := url.Values{
		"place_id": {placeID},
		"fields":   {strings.Join(detailsFields, ",")},
		"key":      {c.APIKey},
	}

	var dr detailsResponse
	reqURL := detailsBase + "?" + params.Encode()
	if err := httputil.GetJSON(ctx, c.HTTP, reqURL, "place details "+placeID, c.UserAgent, &dr); err != nil {
		return types.Candidate{}, err
	}
	if dr.Status != "OK" {
		return types.Candidate{}, &UpstreamError{Endpoint: "place details", Status: dr.Status, Message: dr.ErrorMessage}
	}

	cand := dr.Result.toCandidate()
	if cand.PlaceID == "" {
		cand.PlaceID = placeID
	}
	return cand, nil
}
