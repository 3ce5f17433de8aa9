// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package places

import "github.com/pdiddy/place-scout/pkg/types"

// Places API JSON structures.
type searchResponse struct {
	Status        string        `json:"status"`
	ErrorMessage  string        `json:"error_message"`
	NextPageToken string        `json:"next_page_token"`
	Results       []placeResult `json:"results"`
}

type detailsResponse struct {
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message"`
	Result       placeResult `json:"result"`
}

type placeResult struct {
	PlaceID              string             `json:"place_id"`
	Name                 string             `json:"name"`
	FormattedAddress     string             `json:"formatted_address"`
	Vicinity             string             `json:"vicinity"`
	Types                []string           `json:"types"`
	Geometry             geometry           `json:"geometry"`
	Website              string             `json:"website"`
	FormattedPhoneNumber string             `json:"formatted_phone_number"`
	Rating               float64            `json:"rating"`
	UserRatingsTotal     int                `json:"user_ratings_total"`
	Reviews              []review           `json:"reviews"`
	OpeningHours         *openingHours      `json:"opening_hours"`
	PlusCode             *plusCode          `json:"plus_code"`
	AddressComponents    []addressComponent `json:"address_components"`
	URL                  string             `json:"url"`
	BusinessStatus       string             `json:"business_status"`
}

type geometry struct {
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

type review struct {
	Rating float64 `json:"rating"`
}

type openingHours struct {
	WeekdayText []string `json:"weekday_text"`
}

type plusCode struct {
	GlobalCode   string `json:"global_code"`
	CompoundCode string `json:"compound_code"`
}

type addressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

func (p placeResult) toCandidate() types.Candidate {
	c := types.Candidate{
		PlaceID:        p.PlaceID,
		Name:           p.Name,
		Address:        p.FormattedAddress,
		Types:          p.Types,
		Location:       types.LatLng{Lat: p.Geometry.Location.Lat, Lng: p.Geometry.Location.Lng},
		Website:        p.Website,
		Phone:          p.FormattedPhoneNumber,
		Rating:         p.Rating,
		RatingCount:    p.UserRatingsTotal,
		MapsURL:        p.URL,
		BusinessStatus: p.BusinessStatus,
		Parts:          parseAddressParts(p.AddressComponents),
	}
	// Nearby Search returns vicinity instead of formatted_address.
	if c.Address == "" {
		c.Address = p.Vicinity
	}
	if p.PlusCode != nil {
		c.PlusCode = p.PlusCode.GlobalCode
	}
	if p.OpeningHours != nil {
		c.WeekdayHours = p.OpeningHours.WeekdayText
	}
	for _, r := range p.Reviews {
		c.ReviewRatings = append(c.ReviewRatings, r.Rating)
	}
	return c
}

// parseAddressParts picks postal code, locality, and first-level
// administrative area out of the address components.
func parseAddressParts(components []addressComponent) types.AddressParts {
	var parts types.AddressParts
	for _, comp := range components {
		for _, t := range comp.Types {
			switch t {
			case "postal_code":
				parts.PostalCode = comp.LongName
			case "locality":
				parts.City = comp.LongName
			case "postal_town":
				if parts.City == "" {
					parts.City = comp.LongName
				}
			case "administrative_area_level_1":
				parts.Region = comp.LongName
				parts.RegionCode = comp.ShortName
			}
		}
	}
	return parts
}
