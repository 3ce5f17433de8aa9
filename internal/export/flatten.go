// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export flattens accepted candidates into fixed-shape records and
// writes them to the JSON, CSV, and optional SQLite output files, archiving
// earlier outputs first.
package export

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/place-scout/pkg/types"
)

// Header is the CSV header, in FlatRecord.Row order.
var Header = []string{
	"name", "address", "primary_category", "phone", "postal_code", "city",
	"region", "region_code", "plus_code", "website", "cid", "latitude",
	"longitude", "rating_count", "average_rating",
	"star_1", "star_2", "star_3", "star_4", "star_5",
	"monday_hours", "tuesday_hours", "wednesday_hours", "thursday_hours",
	"friday_hours", "saturday_hours", "sunday_hours",
}

// Flatten projects c onto the flat export record. Missing values are "".
func Flatten(c types.Candidate) types.FlatRecord {
	r := types.FlatRecord{
		Name:       c.Name,
		Address:    c.Address,
		Phone:      c.Phone,
		PostalCode: c.Parts.PostalCode,
		City:       c.Parts.City,
		Region:     c.Parts.Region,
		RegionCode: c.Parts.RegionCode,
		PlusCode:   c.PlusCode,
		Website:    c.Website,
		CID:        ParseCID(c.MapsURL),
	}
	if len(c.Types) > 0 {
		r.PrimaryCategory = c.Types[0]
	}
	if c.Location != (types.LatLng{}) {
		r.Latitude = formatFloat(c.Location.Lat)
		r.Longitude = formatFloat(c.Location.Lng)
	}
	if c.RatingCount > 0 {
		r.RatingCount = strconv.Itoa(c.RatingCount)
	}
	if c.Rating > 0 {
		r.AverageRating = formatFloat(c.Rating)
	}

	if len(c.ReviewRatings) > 0 {
		stars := StarBuckets(c.ReviewRatings)
		r.Star1 = strconv.Itoa(stars[0])
		r.Star2 = strconv.Itoa(stars[1])
		r.Star3 = strconv.Itoa(stars[2])
		r.Star4 = strconv.Itoa(stars[3])
		r.Star5 = strconv.Itoa(stars[4])
	}

	hours := WeekdayHours(c.WeekdayHours)
	r.MondayHours = hours["monday"]
	r.TuesdayHours = hours["tuesday"]
	r.WednesdayHours = hours["wednesday"]
	r.ThursdayHours = hours["thursday"]
	r.FridayHours = hours["friday"]
	r.SaturdayHours = hours["saturday"]
	r.SundayHours = hours["sunday"]
	return r
}

// FlattenAll projects every scored candidate in order.
func FlattenAll(scored []types.ScoredCandidate) []types.FlatRecord {
	records := make([]types.FlatRecord, 0, len(scored))
	for _, sc := range scored {
		records = append(records, Flatten(sc.Candidate))
	}
	return records
}

// StarBuckets tallies review ratings into five buckets. Each rating is
// rounded to the nearest integer (halves to even) and clamped to [1,5];
// index 0 counts one-star reviews.
func StarBuckets(ratings []float64) [5]int {
	var buckets [5]int
	for _, r := range ratings {
		star := int(math.RoundToEven(r))
		if star < 1 {
			star = 1
		}
		if star > 5 {
			star = 5
		}
		buckets[star-1]++
	}
	return buckets
}

// WeekdayHours parses lines such as "Monday: 9:00 AM – 5:00 PM" into a map
// keyed by lowercase day name. Each line splits at its first colon, so the
// colons inside the hours survive. Lines without a colon, or whose day part
// is not a weekday, are ignored.
func WeekdayHours(lines []string) map[string]string {
	out := make(map[string]string, 7)
	for _, line := range lines {
		day, hours, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		day = strings.ToLower(strings.TrimSpace(day))
		if !isWeekday(day) {
			continue
		}
		out[day] = strings.TrimSpace(hours)
	}
	return out
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func isWeekday(day string) bool {
	for _, d := range weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// ParseCID returns the numeric cid query parameter of a maps URL, or "" if
// the URL has none or it is not all digits.
func ParseCID(mapsURL string) string {
	if mapsURL == "" {
		return ""
	}
	u, err := url.Parse(mapsURL)
	if err != nil {
		return ""
	}
	cid := u.Query().Get("cid")
	if cid == "" {
		return ""
	}
	if _, err := strconv.ParseUint(cid, 10, 64); err != nil {
		return ""
	}
	return cid
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
