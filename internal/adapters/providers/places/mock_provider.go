package places

import (
	"context"
	"fmt"

	"github.com/bolumrehberi/backend/internal/domain/entities"
	"github.com/bolumrehberi/backend/internal/domain/providers"
)

// mockRecord is one entry of the fixed fallback template. Offsets are small
// lat/lng deltas from the request center so the map stays populated around
// the user wherever they are.
type mockRecord struct {
	name      string
	address   string
	phone     string
	latOffset float64
	lngOffset float64
	distance  float64
}

var mockHospitalTemplate = []mockRecord{
	{
		name:      "Merkez Devlet Hastanesi",
		address:   "Atatürk Cad. No:123, Merkez",
		phone:     "0212 555 11 22",
		latOffset: 0.002,
		lngOffset: 0.002,
		distance:  350,
	},
	{
		name:      "Özel Yaşam Polikliniği",
		address:   "Cumhuriyet Mah. 4. Sokak",
		phone:     "0212 555 33 44",
		latOffset: -0.003,
		lngOffset: 0.001,
		distance:  500,
	},
	{
		name:      "Şehir Eğitim ve Araştırma Hastanesi",
		address:   "Hastane Yolu Üzeri, Kampüs",
		phone:     "0212 555 55 66",
		latOffset: 0.001,
		lngOffset: -0.004,
		distance:  800,
	},
	{
		name:      "Acil Tıp Merkezi",
		address:   "İnönü Bulvarı No:5",
		phone:     "0212 555 99 00",
		latOffset: -0.001,
		lngOffset: -0.002,
		distance:  250,
	},
}

// MockPlacesProvider serves the static hospital template centered on the
// request coordinate. Used when no live credential is configured and as the
// fallback for live provider failures.
type MockPlacesProvider struct{}

// NewMockPlacesProvider creates a new mock places provider.
func NewMockPlacesProvider() providers.PlacesProvider {
	return &MockPlacesProvider{}
}

// NearbyHospitals synthesizes records around center. The radius is ignored:
// the template offsets are well inside any sensible search radius.
func (m *MockPlacesProvider) NearbyHospitals(ctx context.Context, center providers.Coordinates, radiusMeters float64) ([]entities.Hospital, error) {
	hospitals := make([]entities.Hospital, 0, len(mockHospitalTemplate))
	for i, record := range mockHospitalTemplate {
		distance := record.distance
		hospitals = append(hospitals, entities.Hospital{
			ID:       fmt.Sprintf("mock-%d", i+1),
			Name:     record.name,
			Address:  record.address,
			Phone:    record.phone,
			Lat:      center.Latitude + record.latOffset,
			Lng:      center.Longitude + record.lngOffset,
			Distance: &distance,
		})
	}
	return hospitals, nil
}
