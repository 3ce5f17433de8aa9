// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score classifies candidates into evidence tiers, computes a
// bounded additive confidence score, and applies the inclusion policy.
// The rules are fixed and hand-tuned; the score is not a probability.
package score

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/place-scout/internal/plan"
	"github.com/pdiddy/place-scout/pkg/types"
)

// Point values of each scoring rule.
const (
	pointsTier1          = 60
	pointsTier2          = 20
	pointsNameKeyword    = 6
	pointsAddressKeyword = 3
	pointsWebsiteKeyword = 8
	pointsBooking        = 15
	pointsPhone          = 5
	maxReviewBoost       = 5
	reviewBoostSaturates = 1000
)

// Score bounds.
const (
	MinScore = 0
	MaxScore = 100
)

// Reason labels. Keyword reasons are prefixed labels such as "name:vet".
const (
	ReasonTier1        = "type:tier1"
	ReasonTier2        = "type:tier2"
	ReasonBooking      = "booking_link"
	ReasonPhone        = "phone"
	ReasonReviewVolume = "review_volume"

	prefixName    = "name:"
	prefixAddress = "address:"
	prefixWebsite = "website:"
)

// Classification labels by rule.
const (
	LabelTier1       = "confirmed category"
	LabelTier2       = "probable: adjacent category with keyword"
	LabelTier3       = "weak: broad category with keyword"
	LabelKeywordOnly = "probable: keyword only"
)

// Engine holds the taxonomy in the form the rules consume: tag sets and
// lowercased, de-duplicated keyword lists.
type Engine struct {
	tier1, tier2, tier3 map[string]bool
	keywords            []string
	bookingTokens       []string
}

// NewEngine builds an Engine from tax.
func NewEngine(tax plan.Taxonomy) *Engine {
	return &Engine{
		tier1:         tagSet(tax.Tier1),
		tier2:         tagSet(tax.Tier2),
		tier3:         tagSet(tax.Tier3),
		keywords:      foldAll(tax.StrongKeywords),
		bookingTokens: foldAll(tax.BookingTokens),
	}
}

// Classify returns the tiered classification of c, or nil when no rule
// matches. Rules are tried in order and the first match wins.
func (e *Engine) Classify(c types.Candidate) *types.ClassificationResult {
	if m := intersect(c.Types, e.tier1); len(m) > 0 {
		return &types.ClassificationResult{Tier: 1, Label: LabelTier1, Basis: types.BasisType, MatchedTags: m}
	}

	kw := e.keywordHit(c)
	if m := intersect(c.Types, e.tier2); len(m) > 0 && kw {
		return &types.ClassificationResult{Tier: 2, Label: LabelTier2, Basis: types.BasisTypeKeyword, MatchedTags: m}
	}
	if m := intersect(c.Types, e.tier3); len(m) > 0 && kw {
		return &types.ClassificationResult{Tier: 3, Label: LabelTier3, Basis: types.BasisTypeKeyword, MatchedTags: m}
	}
	// Keyword-only evidence is weaker than type+keyword but shares tier 2.
	if kw {
		return &types.ClassificationResult{Tier: 2, Label: LabelKeywordOnly, Basis: types.BasisKeyword, MatchedTags: []string{}}
	}
	return nil
}

// keywordHit reports whether any strong keyword occurs in the name,
// address, or website.
func (e *Engine) keywordHit(c types.Candidate) bool {
	fields := []string{fold(c.Name), fold(c.Address), fold(c.Website)}
	for _, kw := range e.keywords {
		for _, f := range fields {
			if strings.Contains(f, kw) {
				return true
			}
		}
	}
	return false
}

// Score computes the additive confidence score of c. Each rule contributes
// under its own reason label; the sum is clamped to [0,100] and rounded to
// two decimals.
func (e *Engine) Score(c types.Candidate) types.ScoreResult {
	reasons := make(map[string]float64)
	var total float64
	add := func(label string, pts float64) {
		reasons[label] += pts
		total += pts
	}

	switch {
	case len(intersect(c.Types, e.tier1)) > 0:
		add(ReasonTier1, pointsTier1)
	case len(intersect(c.Types, e.tier2)) > 0:
		add(ReasonTier2, pointsTier2)
	}

	name, address, website := fold(c.Name), fold(c.Address), fold(c.Website)
	for _, kw := range e.keywords {
		if strings.Contains(name, kw) {
			add(prefixName+kw, pointsNameKeyword)
		}
		if strings.Contains(address, kw) {
			add(prefixAddress+kw, pointsAddressKeyword)
		}
		if strings.Contains(website, kw) {
			add(prefixWebsite+kw, pointsWebsiteKeyword)
		}
	}

	if website != "" {
		for _, tok := range e.bookingTokens {
			if strings.Contains(website, tok) {
				add(ReasonBooking, pointsBooking)
				break
			}
		}
	}

	if strings.TrimSpace(c.Phone) != "" {
		add(ReasonPhone, pointsPhone)
	}

	if c.RatingCount > 0 {
		boost := math.Min(maxReviewBoost, float64(c.RatingCount)/reviewBoostSaturates*maxReviewBoost)
		add(ReasonReviewVolume, Round2(boost))
	}

	return types.ScoreResult{Score: Round2(Clamp(total)), Reasons: reasons}
}

// Evaluate classifies, scores, and decides on c.
func (e *Engine) Evaluate(c types.Candidate) types.ScoredCandidate {
	s := e.Score(c)
	return types.ScoredCandidate{
		Candidate:      c,
		Classification: e.Classify(c),
		Score:          &s,
		Decision:       Include(c, s),
	}
}

// Rank evaluates every candidate. Accepted candidates are returned sorted by
// score, highest first; ties keep input order. Rejected candidates keep
// input order.
func (e *Engine) Rank(cs []types.Candidate) (accepted, rejected []types.ScoredCandidate) {
	for _, c := range cs {
		sc := e.Evaluate(c)
		if sc.Decision.Include {
			accepted = append(accepted, sc)
		} else {
			rejected = append(rejected, sc)
		}
	}
	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Score.Score > accepted[j].Score.Score
	})
	return accepted, rejected
}

// Clamp bounds v to [MinScore, MaxScore]. Clamp(Clamp(v)) == Clamp(v).
func Clamp(v float64) float64 {
	return math.Max(MinScore, math.Min(MaxScore, v))
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func tagSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			set[t] = true
		}
	}
	return set
}

// intersect returns the tags present in set, in tag order, without repeats.
func intersect(tags []string, set map[string]bool) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range tags {
		if set[t] && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

func foldAll(words []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, w := range words {
		w = fold(strings.TrimSpace(w))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
