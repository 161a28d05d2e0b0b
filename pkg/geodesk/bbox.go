package geodesk

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/geodesk/geodesk/pkg/errcode"
	"github.com/gnames/gn"
)

// BBox is an axis-aligned rectangle in longitude/latitude used to scope a
// spatial extraction. Invariants: MinLon < MaxLon, MinLat < MaxLat, and all
// values within valid longitude/latitude ranges.
type BBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// ParseBBox parses a comma-delimited "min_lon,min_lat,max_lon,max_lat"
// string. Malformed input is a validation failure, never a silent clamp.
func ParseBBox(s string) (BBox, error) {
	var res BBox
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return res, invalidBBox(s, "bbox must be min_lon,min_lat,max_lon,max_lat")
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return res, invalidBBox(s,
				fmt.Sprintf("cannot parse %q as a number", strings.TrimSpace(p)))
		}
		// NaN slips through every range comparison below; reject
		// non-finite values before the ordering checks
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return res, invalidBBox(s, "coordinates must be finite numbers")
		}
		vals[i] = v
	}
	res = BBox{MinLon: vals[0], MinLat: vals[1], MaxLon: vals[2], MaxLat: vals[3]}

	if res.MinLon < -180 || res.MaxLon > 180 {
		return BBox{}, invalidBBox(s, "longitude out of [-180, 180] range")
	}
	if res.MinLat < -90 || res.MaxLat > 90 {
		return BBox{}, invalidBBox(s, "latitude out of [-90, 90] range")
	}
	if res.MinLon >= res.MaxLon {
		return BBox{}, invalidBBox(s, "bbox must satisfy min_lon < max_lon")
	}
	if res.MinLat >= res.MaxLat {
		return BBox{}, invalidBBox(s, "bbox must satisfy min_lat < max_lat")
	}
	return res, nil
}

// String renders the box back into the command-surface format.
func (b BBox) String() string {
	return fmt.Sprintf("%s,%s,%s,%s",
		formatCoord(b.MinLon), formatCoord(b.MinLat),
		formatCoord(b.MaxLon), formatCoord(b.MaxLat))
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func invalidBBox(s, reason string) error {
	return &gn.Error{
		Code: errcode.InvalidBoundingBoxError,
		Msg:  "Invalid bounding box <em>%s</em>: %s",
		Vars: []any{s, reason},
		Err:  fmt.Errorf("invalid bounding box %q: %s", s, reason),
	}
}
