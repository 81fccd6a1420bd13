package car

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/turbonitro/models"
)

// Style selects the body details painted onto a sprite
type Style int

const (
	StyleSedan Style = iota
	StyleSport
	StyleTruck
	StylePlayer
)

// StyleFor maps a traffic body type to its sprite style
func StyleFor(t models.CarType) Style {
	switch t {
	case models.CarSport:
		return StyleSport
	case models.CarTruck:
		return StyleTruck
	default:
		return StyleSedan
	}
}

type spriteKey struct {
	c     color.RGBA
	w, h  int
	style Style
}

// Cache builds each top-down car sprite once and reuses it every frame
type Cache struct {
	mu      sync.Mutex
	sprites map[spriteKey]*ebiten.Image
}

// NewCache creates an empty sprite cache
func NewCache() *Cache {
	return &Cache{sprites: make(map[spriteKey]*ebiten.Image)}
}

// Len returns the number of distinct sprites built so far
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sprites)
}

// Sprite returns the sprite for a body colour, size and style, bonnet facing up
func (c *Cache) Sprite(body color.RGBA, w, h int, style Style) *ebiten.Image {
	key := spriteKey{body, w, h, style}
	c.mu.Lock()
	defer c.mu.Unlock()
	if img, ok := c.sprites[key]; ok {
		return img
	}
	img := build(body, w, h, style)
	c.sprites[key] = img
	return img
}

// Draw paints a sprite centred on (x, y) at the given scale
func Draw(screen, sprite *ebiten.Image, x, y, scale float64) {
	w, h := sprite.Bounds().Dx(), sprite.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	screen.DrawImage(sprite, op)
}

func build(body color.RGBA, w, h int, style Style) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(body)

	// Outline
	outline := color.RGBA{20, 20, 20, 255}
	fill(img, 0, 0, w, 2, outline)
	fill(img, 0, h-2, w, 2, outline)
	fill(img, 0, 0, 2, h, outline)
	fill(img, w-2, 0, 2, h, outline)

	// Glass
	glass := color.RGBA{150, 200, 255, 200}
	switch style {
	case StyleTruck:
		fill(img, w/6, 4, w*2/3, h/8, glass)
		// Cargo box
		fill(img, 4, h/4, w-8, h*2/3, shade(body, 0.8))
	case StyleSport:
		fill(img, w/5, h/4, w*3/5, h/6, glass)
		// Racing stripe
		fill(img, w/2-2, 2, 4, h-4, color.RGBA{255, 255, 255, 220})
	case StylePlayer:
		fill(img, w/5, h/5, w*3/5, h/5, glass)
		fill(img, w/5, h*3/5, w*3/5, h/8, glass)
		// Spoiler
		fill(img, 2, h-8, w-4, 4, shade(body, 0.6))
	default:
		fill(img, w/5, h/5, w*3/5, h/5, glass)
		fill(img, w/5, h*2/3, w*3/5, h/10, glass)
	}

	// Headlights and tail lights
	fill(img, 3, 2, 6, 3, color.RGBA{255, 250, 200, 255})
	fill(img, w-9, 2, 6, 3, color.RGBA{255, 250, 200, 255})
	fill(img, 3, h-5, 6, 3, color.RGBA{220, 30, 30, 255})
	fill(img, w-9, h-5, 6, 3, color.RGBA{220, 30, 30, 255})

	// Wheels
	wheel := color.RGBA{30, 30, 30, 255}
	ww, wh := 4, h/8
	fill(img, -1, h/6, ww, wh, wheel)
	fill(img, w-ww+1, h/6, ww, wh, wheel)
	fill(img, -1, h-h/6-wh, ww, wh, wheel)
	fill(img, w-ww+1, h-h/6-wh, ww, wh, wheel)

	return img
}

func fill(dst *ebiten.Image, x, y, w, h int, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	r := ebiten.NewImage(w, h)
	r.Fill(c)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(r, op)
}

// shade darkens a colour by factor f in [0,1]
func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
