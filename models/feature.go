package models

import "image/color"

// FeatureType identifies a road pad
type FeatureType int

const (
	FeatureRamp FeatureType = iota
	FeatureTurbo
	FeatureOil
	FeatureHealth
)

// FeatureTypes lists every pad type in spawn-table order
var FeatureTypes = []FeatureType{FeatureRamp, FeatureTurbo, FeatureOil, FeatureHealth}

func (f FeatureType) String() string {
	switch f {
	case FeatureRamp:
		return "RAMP"
	case FeatureTurbo:
		return "TURBO"
	case FeatureOil:
		return "OIL"
	case FeatureHealth:
		return "HEALTH"
	}
	return "UNKNOWN"
}

// Color returns the paint colour of the pad
func (f FeatureType) Color() color.RGBA {
	switch f {
	case FeatureRamp:
		return ColorRamp
	case FeatureTurbo:
		return ColorTurbo
	case FeatureOil:
		return ColorOil
	default:
		return ColorHealth
	}
}

// Feature is a pad painted on the road that affects a car driving over it
type Feature struct {
	ID   int64
	X, Y float64
	Lane int
	Type FeatureType
}
