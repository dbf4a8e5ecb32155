package places

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bolumrehberi/backend/internal/domain/entities"
	"github.com/bolumrehberi/backend/internal/domain/providers"
	"github.com/bolumrehberi/backend/internal/infrastructure/observability"
)

const (
	googleNearbySearchURL = "https://places.googleapis.com/v1/places:searchNearby"
	nearbyFieldMask       = "places.id,places.displayName,places.formattedAddress,places.nationalPhoneNumber,places.location"
	maxNearbyResults      = 20
	nearbyCacheTTL        = 60 * 5
	defaultHTTPTimeout    = 12 * time.Second
)

// Health-related facility categories for the nearby search.
var healthFacilityTypes = []string{"hospital", "doctor", "medical_lab"}

// GooglePlacesProvider implements PlacesProvider using the Google Places
// Nearby Search API.
type GooglePlacesProvider struct {
	apiKey     string
	httpClient *http.Client
	cache      providers.CacheProvider
	baseURL    string
}

// NewGooglePlacesProvider creates a new Google places provider.
func NewGooglePlacesProvider(apiKey string, cache providers.CacheProvider) providers.PlacesProvider {
	return NewGooglePlacesProviderWithOptions(apiKey, cache, googleNearbySearchURL, nil)
}

// NewGooglePlacesProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGooglePlacesProviderWithOptions(apiKey string, cache providers.CacheProvider, baseURL string, httpClient *http.Client) providers.PlacesProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googleNearbySearchURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GooglePlacesProvider{
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      cache,
		baseURL:    baseURL,
	}
}

type nearbySearchRequest struct {
	IncludedTypes       []string            `json:"includedTypes"`
	MaxResultCount      int                 `json:"maxResultCount"`
	LocationRestriction locationRestriction `json:"locationRestriction"`
}

type locationRestriction struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center latLng  `json:"center"`
	Radius float64 `json:"radius"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type nearbySearchResponse struct {
	Places []nearbyPlace `json:"places"`
}

type nearbyPlace struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress    string  `json:"formattedAddress"`
	NationalPhoneNumber string  `json:"nationalPhoneNumber"`
	Location            *latLng `json:"location"`
}

// NearbyHospitals issues one circle-bounded nearby search and attaches
// great-circle distances. Records without a coordinate are skipped rather
// than failing the batch.
func (g *GooglePlacesProvider) NearbyHospitals(ctx context.Context, center providers.Coordinates, radiusMeters float64) ([]entities.Hospital, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("places api key is required")
	}

	cacheKey := buildNearbyCacheKey(center, radiusMeters)
	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var hospitals []entities.Hospital
			if err := json.Unmarshal(cached, &hospitals); err == nil {
				return hospitals, nil
			}
		}
	}

	payload := nearbySearchRequest{
		IncludedTypes:  healthFacilityTypes,
		MaxResultCount: maxNearbyResults,
		LocationRestriction: locationRestriction{
			Circle: circle{
				Center: latLng{Latitude: center.Latitude, Longitude: center.Longitude},
				Radius: radiusMeters,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to build nearby search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build nearby search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", g.apiKey)
	req.Header.Set("X-Goog-FieldMask", nearbyFieldMask)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nearby search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("nearby search returned status %d", resp.StatusCode)
	}

	var envelope nearbySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode nearby search response: %w", err)
	}

	hospitals := make([]entities.Hospital, 0, len(envelope.Places))
	for _, place := range envelope.Places {
		if place.Location == nil {
			observability.LoggerFromContext(ctx).Warn().
				Str("place_id", place.ID).
				Msg("skipping nearby result without a coordinate")
			continue
		}

		distance := haversineMeters(center.Latitude, center.Longitude, place.Location.Latitude, place.Location.Longitude)
		hospitals = append(hospitals, entities.Hospital{
			ID:       place.ID,
			Name:     place.DisplayName.Text,
			Address:  place.FormattedAddress,
			Phone:    place.NationalPhoneNumber,
			Lat:      place.Location.Latitude,
			Lng:      place.Location.Longitude,
			Distance: &distance,
		})
	}

	if g.cache != nil && len(hospitals) > 0 {
		if data, err := json.Marshal(hospitals); err == nil {
			_ = g.cache.Set(ctx, cacheKey, data, nearbyCacheTTL)
		}
	}

	return hospitals, nil
}

func buildNearbyCacheKey(center providers.Coordinates, radiusMeters float64) string {
	raw := fmt.Sprintf("%.5f,%.5f,%.0f", center.Latitude, center.Longitude, radiusMeters)
	sum := sha256.Sum256([]byte(raw))
	return "places:nearby:" + hex.EncodeToString(sum[:])
}
