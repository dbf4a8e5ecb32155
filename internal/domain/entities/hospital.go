package entities

import (
	"math"
	"strconv"
	"strings"

	apperrors "github.com/bolumrehberi/backend/pkg/errors"
)

// DefaultSearchRadiusMeters is applied when the client omits a radius.
const DefaultSearchRadiusMeters = 5000

// HospitalSearchRequest is a nearby-hospital lookup centered on a coordinate.
type HospitalSearchRequest struct {
	Lat    float64
	Lng    float64
	Radius float64
}

// Hospital is a single nearby facility record. IDs are only unique within
// one response: live results use provider resource names, mock results use
// synthetic ids.
type Hospital struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Phone    string   `json:"phone,omitempty"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Distance *float64 `json:"distance,omitempty"`
}

// ParseHospitalSearchRequest coerces query-string values into a validated
// request. Radius defaults to 5000 meters when absent.
func ParseHospitalSearchRequest(latStr, lngStr, radiusStr string) (*HospitalSearchRequest, error) {
	lat, err := parseCoordinate("lat", latStr)
	if err != nil {
		return nil, err
	}
	lng, err := parseCoordinate("lng", lngStr)
	if err != nil {
		return nil, err
	}

	radius := float64(DefaultSearchRadiusMeters)
	if strings.TrimSpace(radiusStr) != "" {
		radius, err = strconv.ParseFloat(strings.TrimSpace(radiusStr), 64)
		if err != nil || math.IsNaN(radius) || math.IsInf(radius, 0) {
			return nil, apperrors.NewValidationError("radius", "radius must be a number")
		}
	}
	if radius <= 0 {
		return nil, apperrors.NewValidationError("radius", "radius must be greater than zero")
	}

	return &HospitalSearchRequest{Lat: lat, Lng: lng, Radius: radius}, nil
}

func parseCoordinate(field, value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, apperrors.NewValidationError(field, field+" is required")
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, apperrors.NewValidationError(field, field+" must be a finite number")
	}
	return parsed, nil
}
