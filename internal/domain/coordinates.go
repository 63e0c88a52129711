package domain

import "github.com/golang/geo/s2"

// Immutable geographic coordinates in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return the coordinates as an s2.LatLng (angles in radians).
func (c Coordinates) LatLng() s2.LatLng { return s2.LatLngFromDegrees(c.Lat, c.Lon) }

// Planar coordinates in metres within a UTM zone or a local survey grid.
type Projected struct {
	Easting  float64
	Northing float64
}
