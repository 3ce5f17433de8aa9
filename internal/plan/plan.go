// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan expands one search intent into the ordered set of queries
// issued against the search capability. The upstream category taxonomy is
// incomplete, so every tier tag is queried and free-text fallback keywords
// pick up places that carry no useful category at all.
package plan

import (
	"strings"

	"github.com/pdiddy/place-scout/pkg/types"
)

// Taxonomy is the fixed domain vocabulary shared by the planner and the
// scoring engine.
type Taxonomy struct {
	// Tier1 tags are near-certain category matches.
	Tier1 []string `yaml:"tier1"`

	// Tier2 tags are adjacent categories that need keyword corroboration.
	Tier2 []string `yaml:"tier2"`

	// Tier3 tags are broad categories that need keyword corroboration.
	Tier3 []string `yaml:"tier3"`

	// StrongKeywords corroborate a category match when found in the name,
	// address, or website.
	StrongKeywords []string `yaml:"strong_keywords"`

	// FallbackKeywords are issued as free-text queries.
	FallbackKeywords []string `yaml:"fallback_keywords"`

	// BookingTokens mark a website as having online booking.
	BookingTokens []string `yaml:"booking_tokens"`
}

// DefaultTaxonomy returns the built-in veterinary clinic taxonomy.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Tier1: []string{"veterinary_care"},
		Tier2: []string{"pet_store", "hospital", "doctor"},
		Tier3: []string{"health", "store", "establishment"},
		StrongKeywords: []string{
			"vet",
			"veterinary",
			"animal hospital",
			"animal clinic",
			"pet clinic",
			"pet hospital",
		},
		FallbackKeywords: []string{
			"veterinarian",
			"animal hospital",
			"pet clinic",
			"emergency vet",
		},
		BookingTokens: []string{
			"book",
			"appointment",
			"schedule",
			"vetstoria",
			"petdesk",
		},
	}
}

// Plan returns one Query per tier tag (tier 1 first, then 2, then 3),
// followed by one Query per fallback keyword. A tag listed in more than one
// tier is planned once, at its first position. Blank entries are skipped.
func Plan(tax Taxonomy) []types.Query {
	var queries []types.Query
	seenTags := make(map[string]bool)
	for _, tier := range [][]string{tax.Tier1, tax.Tier2, tax.Tier3} {
		for _, tag := range tier {
			tag = strings.TrimSpace(tag)
			if tag == "" || seenTags[tag] {
				continue
			}
			seenTags[tag] = true
			queries = append(queries, types.Query{Category: tag})
		}
	}

	seenKeywords := make(map[string]bool)
	for _, kw := range tax.FallbackKeywords {
		kw = strings.TrimSpace(kw)
		if kw == "" || seenKeywords[kw] {
			continue
		}
		seenKeywords[kw] = true
		queries = append(queries, types.Query{Keyword: kw})
	}
	return queries
}
