package api

import (
	"bytes"         // Body replay
	"encoding/json" // JSON body fallback
	"fmt"           // Error wrapping
	"io"            // Body replay
	"math"          // NaN and infinity checks
	"net/http"      // Body size limit
	"strconv"       // Float parsing
	"strings"       // Whitespace trimming

	"geo_ads/internal/domain" // Error taxonomy
	"geo_ads/internal/geo"    // Points

	"github.com/gin-gonic/gin" // Gin web framework
)

// maxLocationBody caps the request body of a location query
const maxLocationBody = 4 << 10

// ParseCoordinate parses a decimal degree value. NaN and infinities are rejected.
func ParseCoordinate(s string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: coordinate %q", domain.ErrInvalidInput, s)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: coordinate %q", domain.ErrInvalidInput, s)
	}
	return n, nil
}

// requestLocation reads latitude/longitude from form values (body or query
// string) and falls back to a JSON body when they are absent or invalid.
func requestLocation(c *gin.Context) (geo.Point, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxLocationBody)
	raw, err := c.GetRawData() // Consume the body once
	if err != nil {
		return geo.Point{}, fmt.Errorf("%w: unreadable body", domain.ErrInvalidInput)
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw)) // Replay it for form parsing

	lat, latErr := ParseCoordinate(formValue(c, "latitude"))
	lon, lonErr := ParseCoordinate(formValue(c, "longitude"))
	if latErr == nil && lonErr == nil {
		return geo.Point{Lat: lat, Lon: lon}, nil
	}
	if len(raw) == 0 {
		return geo.Point{}, fmt.Errorf("%w: missing coordinates", domain.ErrInvalidInput)
	}
	return jsonLocation(raw)
}

func formValue(c *gin.Context, key string) string {
	if v, ok := c.GetPostForm(key); ok {
		return v
	}
	return c.Query(key)
}

func jsonLocation(raw []byte) (geo.Point, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return geo.Point{}, fmt.Errorf("%w: malformed JSON body", domain.ErrInvalidInput)
	}
	lat, err := jsonCoordinate(body["latitude"])
	if err != nil {
		return geo.Point{}, err
	}
	lon, err := jsonCoordinate(body["longitude"])
	if err != nil {
		return geo.Point{}, err
	}
	return geo.Point{Lat: lat, Lon: lon}, nil
}

// jsonCoordinate accepts numbers and numeric strings
func jsonCoordinate(v any) (float64, error) {
	switch v := v.(type) {
	case json.Number:
		return ParseCoordinate(v.String())
	case string:
		return ParseCoordinate(v)
	default:
		return 0, fmt.Errorf("%w: coordinate %v", domain.ErrInvalidInput, v)
	}
}
