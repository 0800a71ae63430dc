// Package geo wraps the orb geometry library with the two shapes the
// domain needs: WGS84 points and polygons. Values serialize as GeoJSON
// both on the wire and in jsonb columns, so the same representation
// flows end to end. Coordinates are always longitude-first (SRID 4326).
package geo

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// SRID identifies the WGS84 geographic coordinate reference system.
const SRID = 4326

// Point is a longitude/latitude pair.
type Point struct {
	pt orb.Point
}

func NewPoint(lng, lat float64) (Point, error) {
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return Point{}, fmt.Errorf("coordinates out of range: lng=%v lat=%v", lng, lat)
	}
	return Point{pt: orb.Point{lng, lat}}, nil
}

func (p Point) Lng() float64 { return p.pt.Lon() }
func (p Point) Lat() float64 { return p.pt.Lat() }

func (p Point) MarshalJSON() ([]byte, error) {
	return geojson.NewGeometry(p.pt).MarshalJSON()
}

func (p *Point) UnmarshalJSON(data []byte) error {
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return err
	}
	pt, ok := g.Geometry().(orb.Point)
	if !ok {
		return errors.New("geometry is not a GeoJSON point")
	}
	p.pt = pt
	return nil
}

func (p Point) Value() (driver.Value, error) {
	b, err := p.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *Point) Scan(value any) error {
	return p.UnmarshalJSON(rawBytes(value))
}

// Polygon is a closed coverage boundary. A zero Polygon is invalid;
// construct one through ParsePolygon so every stored boundary satisfies
// the validity rules.
type Polygon struct {
	pg orb.Polygon
}

// ParsePolygon decodes a GeoJSON geometry and validates it as a polygon:
// it must carry at least one ring, every ring must be closed with at
// least four positions, and the outer ring must enclose a non-zero area.
func ParsePolygon(data []byte) (Polygon, error) {
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return Polygon{}, fmt.Errorf("decode boundary: %w", err)
	}
	pg, ok := g.Geometry().(orb.Polygon)
	if !ok {
		return Polygon{}, errors.New("boundary is not a GeoJSON polygon")
	}
	if len(pg) == 0 {
		return Polygon{}, errors.New("boundary polygon is empty")
	}
	for _, ring := range pg {
		if len(ring) < 4 {
			return Polygon{}, errors.New("boundary ring needs at least four positions")
		}
		if !ring.Closed() {
			return Polygon{}, errors.New("boundary ring is not closed")
		}
	}
	if math.Abs(planar.Area(pg)) == 0 {
		return Polygon{}, errors.New("boundary polygon has zero area")
	}
	return Polygon{pg: pg}, nil
}

// Contains reports whether the point lies inside the polygon, holes
// excluded. This is a full planar containment test, not a bounding box.
func (p Polygon) Contains(pt Point) bool {
	return planar.PolygonContains(p.pg, pt.pt)
}

// Area returns the planar area of the polygon in squared degrees. Only
// meaningful for comparing zones against each other.
func (p Polygon) Area() float64 {
	return math.Abs(planar.Area(p.pg))
}

// Centroid returns the area-weighted center of the polygon.
func (p Polygon) Centroid() Point {
	c, _ := planar.CentroidArea(p.pg)
	return Point{pt: c}
}

func (p Polygon) MarshalJSON() ([]byte, error) {
	return geojson.NewGeometry(p.pg).MarshalJSON()
}

func (p *Polygon) UnmarshalJSON(data []byte) error {
	parsed, err := ParsePolygon(data)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Polygon) Value() (driver.Value, error) {
	b, err := p.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *Polygon) Scan(value any) error {
	return p.UnmarshalJSON(rawBytes(value))
}

func rawBytes(value any) []byte {
	switch v := value.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	default:
		return nil
	}
}
