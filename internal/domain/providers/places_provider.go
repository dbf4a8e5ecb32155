package providers

import (
	"context"

	"github.com/bolumrehberi/backend/internal/domain/entities"
)

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// PlacesProvider finds health facilities around a center coordinate.
type PlacesProvider interface {
	// NearbyHospitals returns facilities within radiusMeters of center,
	// ordered as the provider returned them, with great-circle distances
	// attached.
	NearbyHospitals(ctx context.Context, center Coordinates, radiusMeters float64) ([]entities.Hospital, error)
}
