package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/golangdaddy/turbonitro/models"
	"github.com/golangdaddy/turbonitro/physics"
)

// HUD panel geometry
const (
	PanelX      = 16.0
	PanelY      = 16.0
	PanelWidth  = 256.0
	PanelHeight = 104.0
	PanelGap    = 12.0
)

var (
	panelBG     = color.RGBA{0, 0, 0, 150}
	barTrack    = color.RGBA{255, 255, 255, 26}
	healthColor = color.RGBA{239, 68, 68, 255}
	boostFull   = color.RGBA{34, 211, 238, 255}
	boostFill   = color.RGBA{37, 99, 235, 255}
	lapColor    = color.RGBA{96, 165, 250, 255}
)

// PanelOrigin returns the top-left corner of a player's HUD panel
func PanelOrigin(slot int) (x, y float64) {
	return PanelX, PanelY + float64(slot)*(PanelHeight+PanelGap)
}

// DrawHUD draws a panel per player with name, lap, speed, health and boost
func DrawHUD(screen *ebiten.Image, players []models.PlayerCar, tuning physics.Tuning) {
	for i, p := range players {
		x, y := PanelOrigin(i)
		drawPanel(screen, p, x, y, tuning)
	}
}

func drawPanel(screen *ebiten.Image, p models.PlayerCar, x, y float64, t physics.Tuning) {
	fx, fy := float32(x), float32(y)
	vector.DrawFilledRect(screen, fx, fy, PanelWidth, PanelHeight, panelBG, false)
	vector.DrawFilledRect(screen, fx, fy, 4, PanelHeight, p.Color, false)

	Text(screen, p.Name, x+14, y+10, 1.5, color.White)
	lap := fmt.Sprintf("LAP %d", p.Lap)
	Text(screen, lap, x+PanelWidth-12-TextWidth(lap, 1.2), y+12, 1.2, lapColor)

	// Speed readout
	speed := fmt.Sprintf("%d", t.DisplaySpeed(p.Speed))
	Text(screen, speed, x+14, y+32, 3, speedColor(p.Speed/t.MaxSpeed))
	Text(screen, "KM/H", x+20+TextWidth(speed, 3), y+50, 1, lapColor)
	if !p.Active() {
		Text(screen, "WRECKED", x+PanelWidth-12-TextWidth("WRECKED", 1.2), y+50, 1.2, healthColor)
	}

	// Health
	barW := float32(PanelWidth - 28)
	vector.DrawFilledRect(screen, fx+14, fy+74, barW, 6, barTrack, false)
	vector.DrawFilledRect(screen, fx+14, fy+74, float32(FillWidth(p.Health, models.MeterMax, float64(barW))), 6, healthColor, false)

	// Boost
	boost := boostFill
	if p.BoostReady() || p.Boosting {
		boost = boostFull
	}
	vector.DrawFilledRect(screen, fx+14, fy+86, barW, 8, barTrack, false)
	vector.DrawFilledRect(screen, fx+14, fy+86, float32(FillWidth(p.Boost, models.MeterMax, float64(barW))), 8, boost, false)
	vector.StrokeRect(screen, fx+14, fy+86, barW, 8, 1, color.RGBA{255, 255, 255, 13}, false)
}

// speedColor runs green to yellow to red over the normal speed range
func speedColor(ratio float64) color.RGBA {
	ratio = models.Clamp(ratio, 0, 1)
	if ratio < 0.5 {
		k := ratio / 0.5
		return color.RGBA{uint8(100 + k*155), 255, 100, 255}
	}
	k := (ratio - 0.5) / 0.5
	return color.RGBA{255, uint8(255 - k*155), uint8(100 - k*100), 255}
}
