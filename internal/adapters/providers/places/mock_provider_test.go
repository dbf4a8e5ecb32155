package places_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolumrehberi/backend/internal/adapters/providers/places"
	"github.com/bolumrehberi/backend/internal/domain/providers"
)

func TestMockPlacesProviderNearbyHospitals(t *testing.T) {
	provider := places.NewMockPlacesProvider()
	center := providers.Coordinates{Latitude: 41.0082, Longitude: 28.9784}

	hospitals, err := provider.NearbyHospitals(context.Background(), center, 5000)
	require.NoError(t, err)
	require.Len(t, hospitals, 4)

	seen := make(map[string]bool)
	for _, h := range hospitals {
		assert.NotEmpty(t, h.ID)
		assert.False(t, seen[h.ID], "duplicate id %s", h.ID)
		seen[h.ID] = true

		assert.NotEmpty(t, h.Name)
		assert.NotEmpty(t, h.Address)
		require.NotNil(t, h.Distance)
		assert.Greater(t, *h.Distance, 0.0)

		// Every record stays close to the request center.
		assert.Less(t, math.Abs(h.Lat-center.Latitude), 0.005)
		assert.Less(t, math.Abs(h.Lng-center.Longitude), 0.005)
	}
}

func TestMockPlacesProviderFollowsCenter(t *testing.T) {
	provider := places.NewMockPlacesProvider()

	istanbul, err := provider.NearbyHospitals(context.Background(), providers.Coordinates{Latitude: 41.0082, Longitude: 28.9784}, 5000)
	require.NoError(t, err)
	ankara, err := provider.NearbyHospitals(context.Background(), providers.Coordinates{Latitude: 39.9334, Longitude: 32.8597}, 5000)
	require.NoError(t, err)

	require.Len(t, istanbul, len(ankara))
	for i := range istanbul {
		assert.Equal(t, istanbul[i].Name, ankara[i].Name)
		assert.NotEqual(t, istanbul[i].Lat, ankara[i].Lat)
		assert.NotEqual(t, istanbul[i].Lng, ankara[i].Lng)
	}
}
