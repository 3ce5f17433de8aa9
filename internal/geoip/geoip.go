// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package geoip approximates the machine's location from its public IP
// address using free lookup services.
package geoip

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/place-scout/internal/httputil"
	"github.com/pdiddy/place-scout/pkg/types"
)

// services are tried in order until one yields a location.
var services = []string{
	"https://ipapi.co/json/",
	"https://ipinfo.io/json",
}

// lookupResponse covers both services: ipapi.co reports latitude and
// longitude, ipinfo.io reports loc as "lat,lng".
type lookupResponse struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Loc       string   `json:"loc"`
}

// Locate returns the approximate location of the current public IP. It
// returns false when every service fails. The client's timeout bounds each
// attempt.
func Locate(ctx context.Context, client *http.Client, userAgent string, log *zap.Logger) (types.LatLng, bool) {
	for _, svc := range services {
		loc, err := lookup(ctx, client, svc, userAgent)
		if err != nil {
			log.Debug("geolocation service failed", zap.String("service", svc), zap.Error(err))
			continue
		}
		log.Info("located by ip",
			zap.String("service", svc),
			zap.Float64("lat", loc.Lat),
			zap.Float64("lng", loc.Lng))
		return loc, true
	}
	return types.LatLng{}, false
}

func lookup(ctx context.Context, client *http.Client, svc, userAgent string) (types.LatLng, error) {
	var resp lookupResponse
	if err := httputil.GetJSON(ctx, client, svc, svc, userAgent, &resp); err != nil {
		return types.LatLng{}, err
	}
	if resp.Latitude != nil && resp.Longitude != nil {
		return types.LatLng{Lat: *resp.Latitude, Lng: *resp.Longitude}, nil
	}
	if resp.Loc != "" {
		return ParseLoc(resp.Loc)
	}
	return types.LatLng{}, fmt.Errorf("response has no coordinates")
}

// ParseLoc parses a "lat,lng" pair.
func ParseLoc(s string) (types.LatLng, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return types.LatLng{}, fmt.Errorf("malformed loc %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return types.LatLng{}, fmt.Errorf("parsing latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return types.LatLng{}, fmt.Errorf("parsing longitude: %w", err)
	}
	return types.LatLng{Lat: lat, Lng: lng}, nil
}
