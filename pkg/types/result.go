// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Classification bases.
const (
	BasisType        = "type"
	BasisTypeKeyword = "type+keyword"
	BasisKeyword     = "keyword"
)

// ClassificationResult is the tiered category decision for a candidate.
// Tier 1 is the strongest evidence, tier 3 the weakest.
type ClassificationResult struct {
	Tier        int      `json:"tier" yaml:"tier"`
	Label       string   `json:"label" yaml:"label"`
	Basis       string   `json:"basis" yaml:"basis"`
	MatchedTags []string `json:"matched_tags" yaml:"matched_tags"`
}

// ScoreResult is a bounded confidence score with the contribution of each
// reason label. It is additive and clamped to [0,100]; it is not a probability.
type ScoreResult struct {
	Score   float64            `json:"score" yaml:"score"`
	Reasons map[string]float64 `json:"reasons" yaml:"reasons"`
}

// DecisionReason names the inclusion policy branch that settled a candidate.
type DecisionReason string

const (
	ReasonNoWebsite      DecisionReason = "no_website"
	ReasonStrongSignal   DecisionReason = "strong_signal"
	ReasonWeakSignal     DecisionReason = "weak_signal"
	ReasonBorderline     DecisionReason = "borderline"
	ReasonBelowFinalGate DecisionReason = "below_final_gate"
)

// Decision is the outcome of the inclusion policy.
type Decision struct {
	Include bool           `json:"include" yaml:"include"`
	Reason  DecisionReason `json:"reason" yaml:"reason"`
}

// ScoredCandidate is a Candidate annotated by the scoring engine. The
// classification is nil when no rule matched.
type ScoredCandidate struct {
	Candidate      Candidate             `json:"candidate" yaml:"candidate"`
	Classification *ClassificationResult `json:"classification,omitempty" yaml:"classification,omitempty"`
	Score          *ScoreResult          `json:"score,omitempty" yaml:"score,omitempty"`
	Decision       Decision              `json:"decision" yaml:"decision"`
}

// FlatRecord is the denormalized per-candidate row written to JSON and CSV.
// Every field is a string so missing values render as "" rather than null.
type FlatRecord struct {
	Name            string `json:"name"`
	Address         string `json:"address"`
	PrimaryCategory string `json:"primary_category"`
	Phone           string `json:"phone"`
	PostalCode      string `json:"postal_code"`
	City            string `json:"city"`
	Region          string `json:"region"`
	RegionCode      string `json:"region_code"`
	PlusCode        string `json:"plus_code"`
	Website         string `json:"website"`
	CID             string `json:"cid"`
	Latitude        string `json:"latitude"`
	Longitude       string `json:"longitude"`
	RatingCount     string `json:"rating_count"`
	AverageRating   string `json:"average_rating"`
	Star1           string `json:"star_1"`
	Star2           string `json:"star_2"`
	Star3           string `json:"star_3"`
	Star4           string `json:"star_4"`
	Star5           string `json:"star_5"`
	MondayHours     string `json:"monday_hours"`
	TuesdayHours    string `json:"tuesday_hours"`
	WednesdayHours  string `json:"wednesday_hours"`
	ThursdayHours   string `json:"thursday_hours"`
	FridayHours     string `json:"friday_hours"`
	SaturdayHours   string `json:"saturday_hours"`
	SundayHours     string `json:"sunday_hours"`
}

// Row returns the record's values in CSV column order.
func (r FlatRecord) Row() []string {
	return []string{
		r.Name, r.Address, r.PrimaryCategory, r.Phone, r.PostalCode, r.City,
		r.Region, r.RegionCode, r.PlusCode, r.Website, r.CID, r.Latitude,
		r.Longitude, r.RatingCount, r.AverageRating,
		r.Star1, r.Star2, r.Star3, r.Star4, r.Star5,
		r.MondayHours, r.TuesdayHours, r.WednesdayHours, r.ThursdayHours,
		r.FridayHours, r.SaturdayHours, r.SundayHours,
	}
}
