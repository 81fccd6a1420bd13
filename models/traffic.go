package models

import "image/color"

// CarType is the visual body style of a traffic car
type CarType int

const (
	CarSedan CarType = iota
	CarSport
	CarTruck
)

// String returns the lowercase body style name
func (t CarType) String() string {
	switch t {
	case CarSport:
		return "sport"
	case CarTruck:
		return "truck"
	default:
		return "sedan"
	}
}

// TrafficCar represents an AI vehicle sharing the highway
type TrafficCar struct {
	ID    int64   // Unique, monotonically assigned
	X, Y  float64 // Screen position of the car centre
	Speed float64 // Fixed at spawn
	Lane  int     // Zero-based lane index
	Color color.RGBA
	Type  CarType
}

// Size returns the body width and height for the car's type
func (t *TrafficCar) Size() (w, h float64) {
	if t.Type == CarTruck {
		return 45, 80
	}
	return 35, 65
}
