package utils

import (
	"math"

	"github.com/mmcloughlin/geohash"
	"github.com/paulmach/orb"
)

// EncodeCell returns the geohash cell of a point at the given precision.
// Orb points are {lon, lat}.
func EncodeCell(p orb.Point, precision uint) string {
	return geohash.EncodeWithPrecision(p[1], p[0], precision)
}

// CoverBound returns every geohash cell at the given precision that
// overlaps the bounding box. Cell dimensions are taken from the box of
// the corner cell, so the walk never skips a row or column.
func CoverBound(b orb.Bound, precision uint) []string {
	corner := geohash.EncodeWithPrecision(b.Min[1], b.Min[0], precision)
	box := geohash.BoundingBox(corner)
	latStep := box.MaxLat - box.MinLat
	lonStep := box.MaxLng - box.MinLng

	seen := make(map[string]struct{})
	var cells []string
	for lat := b.Min[1]; lat <= b.Max[1]+latStep; lat += latStep {
		for lon := b.Min[0]; lon <= b.Max[0]+lonStep; lon += lonStep {
			cell := geohash.EncodeWithPrecision(
				math.Min(lat, 90), math.Min(lon, 180), precision)
			if _, ok := seen[cell]; ok {
				continue
			}
			seen[cell] = struct{}{}
			cells = append(cells, cell)
		}
	}
	return cells
}

// Haversine returns the great-circle distance between two points in
// kilometers.
func Haversine(p1, p2 orb.Point) float64 {
	const earthRadius = 6371.0

	lat1 := p1[1] * math.Pi / 180.0
	lon1 := p1[0] * math.Pi / 180.0
	lat2 := p2[1] * math.Pi / 180.0
	lon2 := p2[0] * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
