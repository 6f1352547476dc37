package domain

import "fmt"

// Immutable geographic coordinates (latitude, longitude) in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lat, lon] for API payload compatibility.
func (c Coordinates) ToList() []float64 { return []float64{c.Lat, c.Lon} }

// Rectangular geographic area used for traffic condition lookups.
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// Key returns a stable textual form of the box, suitable as a cache key.
func (b BoundingBox) Key() string {
	return fmt.Sprintf("%.4f,%.4f,%.4f,%.4f", b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
}

// PathBounds computes the bounding box enclosing all points of a path,
// expanded by padding degrees on every side.
func PathBounds(path []Coordinates, padding float64) BoundingBox {
	if len(path) == 0 {
		return BoundingBox{}
	}

	box := BoundingBox{
		MinLon: path[0].Lon,
		MinLat: path[0].Lat,
		MaxLon: path[0].Lon,
		MaxLat: path[0].Lat,
	}
	for _, p := range path[1:] {
		if p.Lon < box.MinLon {
			box.MinLon = p.Lon
		}
		if p.Lat < box.MinLat {
			box.MinLat = p.Lat
		}
		if p.Lon > box.MaxLon {
			box.MaxLon = p.Lon
		}
		if p.Lat > box.MaxLat {
			box.MaxLat = p.Lat
		}
	}

	box.MinLon -= padding
	box.MinLat -= padding
	box.MaxLon += padding
	box.MaxLat += padding
	return box
}
