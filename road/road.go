package road

import "math"

// Canvas and highway geometry shared by the simulation and the renderer.
const (
	CanvasWidth   = 1200.0
	CanvasHeight  = 800.0
	HighwayWidth  = 600.0
	Lanes         = 4
	LaneWidth     = HighwayWidth / Lanes
	LapDistance   = 5000.0
	PlayerScreenY = CanvasHeight - 150
)

// centerOffset is the left edge of a straight highway centred on the canvas.
const centerOffset = (CanvasWidth - HighwayWidth) / 2

// Offset returns the lateral offset of the road centre at the given distance.
// Three sinusoids at different spatial frequencies give a curve that never repeats
// within a race.
func Offset(distance float64) float64 {
	return math.Sin(distance*0.0005)*300 +
		math.Sin(distance*0.0012)*150 +
		math.Cos(distance*0.0003)*100
}

// HighwayLeft returns the screen x of the left edge of the drivable band at distance.
func HighwayLeft(distance float64) float64 {
	return centerOffset + Offset(distance)
}

// Band returns the left and right screen x of the drivable band at distance.
func Band(distance float64) (left, right float64) {
	left = HighwayLeft(distance)
	return left, left + HighwayWidth
}

// InBand reports whether x lies within the drivable band at distance.
func InBand(x, distance float64) bool {
	left, right := Band(distance)
	return x >= left && x <= right
}

// LaneCenterX returns the screen x of the centre of a zero-based lane at distance.
func LaneCenterX(lane int, distance float64) float64 {
	return HighwayLeft(distance) + float64(lane)*LaneWidth + LaneWidth/2
}

// CurvaturePull returns the lateral velocity bias that keeps a car tracking the curve.
func CurvaturePull(distance, lookahead, gain float64) float64 {
	return (Offset(distance+lookahead) - Offset(distance)) * gain
}

// LapAt returns the 1-based lap number for a distance.
func LapAt(distance float64) int {
	if distance < 0 {
		distance = 0
	}
	return int(math.Floor(distance/LapDistance)) + 1
}

// DistanceAtScreenY maps a screen row to the world distance it shows, given the
// camera (lead) distance. The bottom of the canvas shows the camera distance.
func DistanceAtScreenY(cameraDistance, y float64) float64 {
	return cameraDistance + (CanvasHeight - y)
}

// IsLapBoundary reports whether distance falls on the painted start of a lap.
func IsLapBoundary(distance float64) bool {
	return math.Mod(distance, LapDistance) < 50
}
