package geo

import (
	"strings"

	"github.com/Xavierhuang/ScheduleShare/internal/model"
)

// Resolver maps a free-form location string to an advisory coordinate. This
// is not geocoding: implementations may return placeholder points and callers
// must not assume positional accuracy.
type Resolver interface {
	Resolve(address string) model.LocationCoordinate
}

// landmark is a known venue string with its coordinate.
type landmark struct {
	name      string
	latitude  float64
	longitude float64
}

// StaticResolver resolves a handful of known landmark strings by substring
// match and answers everything else with a fixed city-center point.
type StaticResolver struct {
	landmarks    []landmark
	defaultPoint model.LocationCoordinate
}

// NewStaticResolver returns a resolver covering the NYC landmarks the service
// knows about, defaulting to the Manhattan city-center point.
func NewStaticResolver() *StaticResolver {
	return &StaticResolver{
		landmarks: []landmark{
			{"Washington Square Park", 40.7308, -73.9976},
			{"Abingdon Square", 40.7484, -74.0047},
			{"Sheep Meadow", 40.7645, -73.9731},
			{"The Hugh", 40.7589, -73.9851},
			{"SHIPYARD", 40.7484, -74.0047},
		},
		defaultPoint: model.LocationCoordinate{Latitude: 40.7128, Longitude: -74.0060},
	}
}

// Resolve returns the coordinate for the address, keeping the original string
// as the coordinate's address.
func (r *StaticResolver) Resolve(address string) model.LocationCoordinate {
	coord := r.defaultPoint
	for _, lm := range r.landmarks {
		if strings.Contains(address, lm.name) {
			coord = model.LocationCoordinate{Latitude: lm.latitude, Longitude: lm.longitude}
			break
		}
	}
	coord.Address = address
	return coord
}

// DefaultPoint returns the city-center fallback with the given label.
func (r *StaticResolver) DefaultPoint(label string) model.LocationCoordinate {
	coord := r.defaultPoint
	coord.Address = label
	return coord
}
