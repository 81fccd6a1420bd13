package render

import (
	"image/color"
	"math/rand"
	"sort"

	"github.com/golangdaddy/turbonitro/models"
	"github.com/golangdaddy/turbonitro/road"
)

// SegmentHeight is the screen height of one road trapezoid
const SegmentHeight = 25.0

// Strip is one road trapezoid between screen rows Y and Y+SegmentHeight
type Strip struct {
	Y        float64
	Distance float64 // World distance shown at row Y
	Top      float64 // Highway left edge at row Y
	Bottom   float64 // Highway left edge at row Y+SegmentHeight
	LapMark  bool
}

// RoadStrips lays out the visible road from the far edge to the near edge
func RoadStrips(camera float64) []Strip {
	strips := make([]Strip, 0, int(road.CanvasHeight/SegmentHeight))
	for y := 0.0; y < road.CanvasHeight; y += SegmentHeight {
		d := road.DistanceAtScreenY(camera, y)
		strips = append(strips, Strip{
			Y:        y,
			Distance: d,
			Top:      road.HighwayLeft(d),
			Bottom:   road.HighwayLeft(road.DistanceAtScreenY(camera, y+SegmentHeight)),
			LapMark:  road.IsLapBoundary(d),
		})
	}
	return strips
}

// PlayerScale grows airborne cars with altitude
func PlayerScale(z float64) float64 {
	if z <= 0 {
		return 1
	}
	return 1 + z/200
}

// Jitter returns a random screen offset for the current shake magnitude
func Jitter(shake float64, rng *rand.Rand) (dx, dy float64) {
	if shake <= 0 {
		return 0, 0
	}
	return (rng.Float64() - 0.5) * shake, (rng.Float64() - 0.5) * shake
}

// BackToFront returns traffic ordered far to near by screen y
func BackToFront(cars []models.TrafficCar) []models.TrafficCar {
	out := append([]models.TrafficCar(nil), cars...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Y < out[j].Y
	})
	return out
}

// FillWidth returns how much of a bar of the given width a meter fills
func FillWidth(value, max, width float64) float64 {
	if max <= 0 {
		return 0
	}
	return width * models.Clamp(value/max, 0, 1)
}

// Fade scales a colour's alpha, premultiplied
func Fade(c color.RGBA, alpha float64) color.RGBA {
	a := models.Clamp(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
