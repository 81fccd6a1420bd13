package background

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/turbonitro/models"
)

// Generator creates the off-road backdrop textures for each theme
type Generator struct {
	Width  int
	Height int
}

// NewGenerator creates a new background generator
func NewGenerator(width, height int) *Generator {
	return &Generator{
		Width:  width,
		Height: height,
	}
}

// Generate returns the backdrop for a theme
func (g *Generator) Generate(theme models.Theme, seed int64) *ebiten.Image {
	if theme == models.ThemeDesert {
		return g.GenerateDesert(seed)
	}
	return g.GenerateCity(seed)
}

// GenerateCity creates a night-time block of rooftops with lit windows
func (g *Generator) GenerateCity(seed int64) *ebiten.Image {
	img := ebiten.NewImage(g.Width, g.Height)
	rng := rand.New(rand.NewSource(seed))

	img.Fill(models.ColorCitySide)

	// Street grain
	for i := 0; i < g.Width*g.Height/40; i++ {
		x := rng.Intn(g.Width)
		y := rng.Intn(g.Height)
		shade := uint8(20 + rng.Intn(20))
		img.Set(x, y, color.RGBA{shade, shade, shade + 15, 255})
	}

	// Rooftops, top to bottom for correct layering
	for y := 0; y < g.Height; y += 40 + rng.Intn(30) {
		for x := 0; x < g.Width; x += 50 + rng.Intn(40) {
			if rng.Float64() < 0.25 {
				continue
			}
			g.drawBuilding(img, x+rng.Intn(10), y+rng.Intn(10), rng)
		}
	}

	return img
}

// GenerateDesert creates sand with dune ripples, rocks and cacti
func (g *Generator) GenerateDesert(seed int64) *ebiten.Image {
	img := ebiten.NewImage(g.Width, g.Height)
	rng := rand.New(rand.NewSource(seed))

	img.Fill(models.ColorDesertSide)

	// Dune ripples
	for y := 0; y < g.Height; y += 3 {
		phase := rng.Float64() * math.Pi
		for x := 0; x < g.Width; x++ {
			if math.Sin(float64(x)*0.02+float64(y)*0.15+phase) > 0.92 {
				img.Set(x, y, color.RGBA{150, 80, 30, 255})
			}
		}
	}

	// Sand noise
	for i := 0; i < g.Width*g.Height/12; i++ {
		x := rng.Intn(g.Width)
		y := rng.Intn(g.Height)
		shade := uint8(100 + rng.Intn(40))
		img.Set(x, y, color.RGBA{shade, shade / 2, 15, 255})
	}

	for i := 0; i < g.Width*g.Height/9000; i++ {
		x := rng.Intn(g.Width)
		y := rng.Intn(g.Height)
		if rng.Float64() < 0.4 {
			g.drawCactus(img, x, y, rng)
		} else {
			g.drawRock(img, x, y, rng)
		}
	}

	return img
}

// drawBuilding draws a flat roof with a grid of windows
func (g *Generator) drawBuilding(img *ebiten.Image, x, y int, rng *rand.Rand) {
	w := 30 + rng.Intn(20)
	h := 25 + rng.Intn(15)
	roof := color.RGBA{
		uint8(25 + rng.Intn(20)),
		uint8(25 + rng.Intn(20)),
		uint8(50 + rng.Intn(30)),
		255,
	}
	g.rect(img, x, y, w, h, roof)

	lit := color.RGBA{250, 204, 21, 255}
	dark := color.RGBA{30, 41, 59, 255}
	for wy := y + 4; wy < y+h-4; wy += 6 {
		for wx := x + 4; wx < x+w-4; wx += 7 {
			c := dark
			if rng.Float64() < 0.35 {
				c = lit
			}
			g.rect(img, wx, wy, 3, 3, c)
		}
	}
}

// drawCactus draws a saguaro with two arms
func (g *Generator) drawCactus(img *ebiten.Image, x, y int, rng *rand.Rand) {
	green := color.RGBA{
		uint8(30 + rng.Intn(20)),
		uint8(90 + rng.Intn(40)),
		uint8(30 + rng.Intn(20)),
		255,
	}
	height := 18 + rng.Intn(14)
	g.rect(img, x, y-height, 4, height, green)
	g.rect(img, x-6, y-height/2, 6, 3, green)
	g.rect(img, x-6, y-height/2-8, 3, 8, green)
	g.rect(img, x+4, y-height/3, 6, 3, green)
	g.rect(img, x+7, y-height/3-6, 3, 6, green)
}

// drawRock draws a round boulder
func (g *Generator) drawRock(img *ebiten.Image, x, y int, rng *rand.Rand) {
	radius := 3 + rng.Intn(6)
	shade := uint8(70 + rng.Intn(40))
	c := color.RGBA{shade, shade * 3 / 4, shade / 2, 255}

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				g.set(img, x+dx, y+dy, c)
			}
		}
	}
}

func (g *Generator) rect(img *ebiten.Image, x, y, w, h int, c color.Color) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			g.set(img, px, py, c)
		}
	}
}

func (g *Generator) set(img *ebiten.Image, x, y int, c color.Color) {
	if x >= 0 && x < g.Width && y >= 0 && y < g.Height {
		img.Set(x, y, c)
	}
}

// ScrollOffset returns how far a tiled backdrop of the given height has moved
// for a camera distance, in [0, height)
func ScrollOffset(distance float64, height int) float64 {
	if height <= 0 {
		return 0
	}
	off := math.Mod(distance, float64(height))
	if off < 0 {
		off += float64(height)
	}
	return off
}
