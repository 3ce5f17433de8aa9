// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Query is one (category tag, free-text keyword) pair issued against the
// search capability. At least one of the two is set.
type Query struct {
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Keyword  string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
}

// IsEmpty reports whether the query carries neither a category nor a keyword.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Category) == "" && strings.TrimSpace(q.Keyword) == ""
}

// String renders the query for logs, e.g. "type=veterinary_care".
func (q Query) String() string {
	switch {
	case q.Category != "" && q.Keyword != "":
		return "type=" + q.Category + " keyword=" + q.Keyword
	case q.Category != "":
		return "type=" + q.Category
	default:
		return "keyword=" + q.Keyword
	}
}

// PageRequest asks the search capability for one page of results. When
// PageToken is set the upstream ignores the other fields.
type PageRequest struct {
	Center    LatLng
	Radius    int
	Query     Query
	PageToken string
}

// Page is one page of raw search results. NextPageToken is empty on the
// last page.
type Page struct {
	Results       []Candidate
	NextPageToken string
}
