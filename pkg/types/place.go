// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the place-scout pipeline:
// the Candidate record produced by search and details lookups, the Query
// pairs issued against the search capability, and the classification and
// scoring results attached to each candidate.
package types

// LatLng is a geographic coordinate in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// AddressParts holds the address components the export stage needs.
type AddressParts struct {
	PostalCode string `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
	City       string `json:"city,omitempty" yaml:"city,omitempty"`
	Region     string `json:"region,omitempty" yaml:"region,omitempty"`
	RegionCode string `json:"region_code,omitempty" yaml:"region_code,omitempty"`
}

// Candidate is a business returned by the search capability and, after
// enrichment, by the details capability. PlaceID is the stable external
// identifier; aggregation keeps exactly one Candidate per PlaceID.
type Candidate struct {
	// PlaceID is the upstream place identifier.
	PlaceID string `json:"place_id" yaml:"place_id"`

	Name    string `json:"name" yaml:"name"`
	Address string `json:"formatted_address" yaml:"formatted_address"`

	// Types are the upstream category tags in upstream order.
	Types []string `json:"types" yaml:"types"`

	Location LatLng `json:"location" yaml:"location"`

	// Website and Phone are empty when the place does not publish them.
	Website string `json:"website,omitempty" yaml:"website,omitempty"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`

	Rating      float64 `json:"rating" yaml:"rating"`
	RatingCount int     `json:"user_ratings_total" yaml:"user_ratings_total"`

	// ReviewRatings are the ratings of the sampled individual reviews.
	ReviewRatings []float64 `json:"review_ratings,omitempty" yaml:"review_ratings,omitempty"`

	// WeekdayHours are free-text lines such as "Monday: 9:00 AM – 5:00 PM".
	WeekdayHours []string `json:"weekday_text,omitempty" yaml:"weekday_text,omitempty"`

	PlusCode string       `json:"plus_code,omitempty" yaml:"plus_code,omitempty"`
	Parts    AddressParts `json:"address_parts" yaml:"address_parts"`

	// MapsURL is the upstream maps link, usually carrying a cid parameter.
	MapsURL string `json:"url,omitempty" yaml:"url,omitempty"`

	BusinessStatus string `json:"business_status,omitempty" yaml:"business_status,omitempty"`

	// Error is set on placeholder records produced when details lookup failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// HasWebsite reports whether the candidate publishes a website.
func (c Candidate) HasWebsite() bool {
	return c.Website != ""
}

// IsPlaceholder reports whether this record stands in for a failed details lookup.
func (c Candidate) IsPlaceholder() bool {
	return c.Error != ""
}

// Placeholder builds the degraded record used when details lookup for raw
// fails. It keeps the raw identity and position but drops the website and
// category tags so the scoring stage excludes it.
func Placeholder(raw Candidate, err error) Candidate {
	msg := "details unavailable"
	if err != nil {
		msg = err.Error()
	}
	return Candidate{
		PlaceID:     raw.PlaceID,
		Name:        raw.Name,
		Address:     raw.Address,
		Location:    raw.Location,
		Rating:      raw.Rating,
		RatingCount: raw.RatingCount,
		Error:       msg,
	}
}
