package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unitSquare = `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`

func TestNewPoint_RangeCheck(t *testing.T) {
	_, err := NewPoint(-70.65, -33.45)
	assert.NoError(t, err)

	_, err = NewPoint(181, 0)
	assert.Error(t, err)

	_, err = NewPoint(0, -91)
	assert.Error(t, err)
}

func TestParsePolygon_Valid(t *testing.T) {
	pg, err := ParsePolygon([]byte(unitSquare))
	require.NoError(t, err)
	assert.Equal(t, 1.0, pg.Area())
}

func TestParsePolygon_Invalid(t *testing.T) {
	cases := map[string]string{
		"not json":        `{"type":"Polygon","coordinates":`,
		"wrong type":      `{"type":"Point","coordinates":[0,0]}`,
		"empty polygon":   `{"type":"Polygon","coordinates":[]}`,
		"short ring":      `{"type":"Polygon","coordinates":[[[0,0],[1,0],[0,0]]]}`,
		"open ring":       `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1]]]}`,
		"degenerate ring": `{"type":"Polygon","coordinates":[[[0,0],[1,1],[2,2],[0,0]]]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePolygon([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestPolygon_Contains(t *testing.T) {
	pg, err := ParsePolygon([]byte(unitSquare))
	require.NoError(t, err)

	inside, _ := NewPoint(0.5, 0.5)
	outside, _ := NewPoint(2, 0.5)

	assert.True(t, pg.Contains(inside))
	assert.False(t, pg.Contains(outside))
}

func TestPolygon_ContainsExcludesHoles(t *testing.T) {
	withHole := `{"type":"Polygon","coordinates":[
		[[0,0],[4,0],[4,4],[0,4],[0,0]],
		[[1,1],[3,1],[3,3],[1,3],[1,1]]
	]}`
	pg, err := ParsePolygon([]byte(withHole))
	require.NoError(t, err)

	inHole, _ := NewPoint(2, 2)
	inShell, _ := NewPoint(0.5, 0.5)

	assert.False(t, pg.Contains(inHole))
	assert.True(t, pg.Contains(inShell))
}

func TestPolygon_Centroid(t *testing.T) {
	pg, err := ParsePolygon([]byte(unitSquare))
	require.NoError(t, err)

	c := pg.Centroid()
	assert.InDelta(t, 0.5, c.Lng(), 1e-9)
	assert.InDelta(t, 0.5, c.Lat(), 1e-9)
}

func TestPolygon_JSONRoundTrip(t *testing.T) {
	pg, err := ParsePolygon([]byte(unitSquare))
	require.NoError(t, err)

	raw, err := pg.MarshalJSON()
	require.NoError(t, err)

	var back Polygon
	require.NoError(t, back.UnmarshalJSON(raw))

	pt, _ := NewPoint(0.5, 0.5)
	assert.True(t, back.Contains(pt))
	assert.Equal(t, pg.Area(), back.Area())
}
