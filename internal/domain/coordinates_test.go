package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKmSymmetric(t *testing.T) {
	sofia := Coordinates{Lat: 42.6977, Lon: 23.3219}
	plovdiv := Coordinates{Lat: 42.1354, Lon: 24.7453}

	assert.Equal(t, HaversineKm(sofia, plovdiv), HaversineKm(plovdiv, sofia))
}

func TestHaversineKmSofiaPlovdiv(t *testing.T) {
	sofia := Coordinates{Lat: 42.6977, Lon: 23.3219}
	plovdiv := Coordinates{Lat: 42.1354, Lon: 24.7453}

	km := HaversineKm(sofia, plovdiv)
	assert.GreaterOrEqual(t, km, 100.0)
	assert.LessOrEqual(t, km, 160.0)
}

func TestHaversineKmZeroDistance(t *testing.T) {
	p := Coordinates{Lat: 42.6977, Lon: 23.3219}
	assert.Equal(t, 0.0, HaversineKm(p, p))
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 132.58, RoundKm(132.5789))
	assert.Equal(t, 0.0, RoundKm(0))
	assert.Equal(t, 1.0, RoundKm(0.999))
}
