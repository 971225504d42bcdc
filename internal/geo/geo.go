// Package geo filters recycling points by distance from a coordinate.
package geo

import (
	"sort"

	"recycling-api/internal/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Point converts a latitude/longitude pair to an orb point (longitude first).
func Point(lat, lon float64) orb.Point {
	return orb.Point{lon, lat}
}

// DistanceKm returns the great-circle distance between two coordinates in kilometres.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return geo.DistanceHaversine(Point(lat1, lon1), Point(lat2, lon2)) / 1000
}

// WithinRadius keeps the points no further than p.RadiusKm from the origin, nearest first.
func WithinRadius(points []models.RecyclingPoint, p models.Proximity) []models.RecyclingPoint {
	type ranked struct {
		point    models.RecyclingPoint
		distance float64
	}

	var kept []ranked
	for _, pt := range points {
		d := DistanceKm(p.Latitude, p.Longitude, pt.Latitude, pt.Longitude)
		if d <= p.RadiusKm {
			kept = append(kept, ranked{point: pt, distance: d})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].distance < kept[j].distance })

	out := make([]models.RecyclingPoint, 0, len(kept))
	for _, r := range kept {
		out = append(out, r.point)
	}
	return out
}
