package algorithms

import (
	"math"
	"strings"

	"rasterkit/internal/raster"
)

// Parameters is a decoded parameter map. Values arrive as whatever the
// recipe decoder produced: int from YAML, int64 from TOML, float64 from
// JSON.
type Parameters map[string]interface{}

func (p Parameters) Int(key string) (int, error) {
	switch v := p[key].(type) {
	case int:
		return v, nil
	case int64:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, raster.InvalidParameter("%s=%d is out of range", key, v)
		}
		return int(v), nil
	case uint64:
		if v > math.MaxInt32 {
			return 0, raster.InvalidParameter("%s=%d is out of range", key, v)
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, raster.InvalidParameter("%s must be an integer, got %v", key, v)
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, raster.InvalidParameter("%s=%v is out of range", key, v)
		}
		return int(v), nil
	case nil:
		return 0, raster.InvalidParameter("missing parameter %s", key)
	default:
		return 0, raster.InvalidParameter("%s must be an integer, got %T", key, v)
	}
}

func (p Parameters) Float(key string) (float64, error) {
	switch v := p[key].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case nil:
		return 0, raster.InvalidParameter("missing parameter %s", key)
	default:
		return 0, raster.InvalidParameter("%s must be a number, got %T", key, v)
	}
}

func (p Parameters) String(key string) (string, error) {
	switch v := p[key].(type) {
	case string:
		return strings.TrimSpace(v), nil
	case nil:
		return "", raster.InvalidParameter("missing parameter %s", key)
	default:
		return "", raster.InvalidParameter("%s must be a string, got %T", key, v)
	}
}
