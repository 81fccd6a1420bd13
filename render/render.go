package render

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/golangdaddy/turbonitro/car"
	"github.com/golangdaddy/turbonitro/feature"
	"github.com/golangdaddy/turbonitro/models"
	"github.com/golangdaddy/turbonitro/physics"
	"github.com/golangdaddy/turbonitro/pkg/background"
	"github.com/golangdaddy/turbonitro/road"
	"github.com/golangdaddy/turbonitro/session"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

const (
	shoulderWidth = 24.0
	lapBandAlpha  = 0.8
)

// Renderer projects session snapshots onto the screen. It never mutates them.
type Renderer struct {
	world     *ebiten.Image
	gen       *background.Generator
	backdrops map[models.Theme]*ebiten.Image
	sprites   *car.Cache
	rng       *rand.Rand
	seed      int64
	tuning    physics.Tuning
}

// New creates a renderer. rng drives the shake jitter only; seed picks the backdrop.
func New(rng *rand.Rand, seed int64, tuning physics.Tuning) *Renderer {
	return &Renderer{
		world:     ebiten.NewImage(road.CanvasWidth, road.CanvasHeight),
		gen:       background.NewGenerator(road.CanvasWidth, road.CanvasHeight),
		backdrops: make(map[models.Theme]*ebiten.Image),
		sprites:   car.NewCache(),
		rng:       rng,
		seed:      seed,
		tuning:    tuning,
	}
}

// Draw renders one frame: the shaken world, then the steady HUD on top
func (r *Renderer) Draw(screen *ebiten.Image, snap session.Snapshot) {
	r.world.Clear()
	r.drawBackdrop(r.world, snap)
	r.drawRoad(r.world, snap.LeadDistance, snap.Theme)
	r.drawFeatures(r.world, snap.Features)
	r.drawTraffic(r.world, snap.Traffic)
	r.drawPlayers(r.world, snap.Players)
	r.drawParticles(r.world, snap.Particles)

	dx, dy := Jitter(snap.Shake, r.rng)
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(dx, dy)
	screen.DrawImage(r.world, op)

	DrawHUD(screen, snap.Players, r.tuning)
}

func (r *Renderer) drawBackdrop(dst *ebiten.Image, snap session.Snapshot) {
	img, ok := r.backdrops[snap.Theme]
	if !ok {
		img = r.gen.Generate(snap.Theme, r.seed)
		r.backdrops[snap.Theme] = img
	}
	h := img.Bounds().Dy()
	off := background.ScrollOffset(snap.LeadDistance, h)
	for _, y := range []float64{off - float64(h), off} {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(0, y)
		dst.DrawImage(img, op)
	}
}

func (r *Renderer) drawRoad(dst *ebiten.Image, camera float64, theme models.Theme) {
	verge := models.ColorCityVerge
	if theme == models.ThemeDesert {
		verge = models.ColorDesertVerge
	}
	lap := Fade(color.RGBA{255, 255, 255, 255}, lapBandAlpha)

	for _, s := range RoadStrips(camera) {
		y0, y1 := float32(s.Y), float32(s.Y+SegmentHeight)
		t, b := float32(s.Top), float32(s.Bottom)
		w := float32(road.HighwayWidth)
		sw := float32(shoulderWidth)

		// Shoulders, then asphalt
		quad(dst, t-sw, y0, t, y0, b, y1, b-sw, y1, verge)
		quad(dst, t+w, y0, t+w+sw, y0, b+w+sw, y1, b+w, y1, verge)
		quad(dst, t, y0, t+w, y0, b+w, y1, b, y1, models.ColorAsphalt)

		// Edge lines and dashed lane markings
		quad(dst, t, y0, t+3, y0, b+3, y1, b, y1, models.ColorMarking)
		quad(dst, t+w-3, y0, t+w, y0, b+w, y1, b+w-3, y1, models.ColorMarking)
		if int(s.Distance/(2*SegmentHeight))%2 == 0 {
			for lane := 1; lane < road.Lanes; lane++ {
				off := float32(lane) * float32(road.LaneWidth)
				quad(dst, t+off-2, y0, t+off+2, y0, b+off+2, y1, b+off-2, y1, color.RGBA{226, 232, 240, 255})
			}
		}

		if s.LapMark {
			vector.DrawFilledRect(dst, t, y0, w, float32(SegmentHeight/2), lap, false)
		}
	}
}

func (r *Renderer) drawFeatures(dst *ebiten.Image, pads []models.Feature) {
	for _, f := range pads {
		x := float32(f.X - feature.PadWidth/2)
		y := float32(f.Y - feature.PadHeight/2)
		c := f.Type.Color()
		vector.DrawFilledRect(dst, x, y, float32(feature.PadWidth), float32(feature.PadHeight), c, false)
		vector.StrokeRect(dst, x, y, float32(feature.PadWidth), float32(feature.PadHeight), 2, color.RGBA{255, 255, 255, 200}, false)

		label := f.Type.String()
		fg := color.Color(color.Black)
		if f.Type == models.FeatureOil {
			fg = color.White
		}
		TextCentered(dst, label, f.X, f.Y-6, 1, fg)
	}
}

func (r *Renderer) drawTraffic(dst *ebiten.Image, cars []models.TrafficCar) {
	for _, tc := range BackToFront(cars) {
		w, h := tc.Size()
		sprite := r.sprites.Sprite(tc.Color, int(w), int(h), car.StyleFor(tc.Type))
		car.Draw(dst, sprite, tc.X, tc.Y, 1)
	}
}

func (r *Renderer) drawPlayers(dst *ebiten.Image, players []models.PlayerCar) {
	for _, p := range players {
		if !p.Active() {
			continue
		}
		scale := PlayerScale(p.Z)
		if p.Airborne {
			// Ground shadow
			vector.DrawFilledRect(dst, float32(p.X-models.PlayerWidth/2+6), float32(p.Y-models.PlayerHeight/2+6),
				float32(models.PlayerWidth), float32(models.PlayerHeight), color.RGBA{0, 0, 0, 90}, false)
		}
		sprite := r.sprites.Sprite(p.Color, int(models.PlayerWidth), int(models.PlayerHeight), car.StylePlayer)
		car.Draw(dst, sprite, p.X, p.Y-p.Z, scale)
	}
}

func (r *Renderer) drawParticles(dst *ebiten.Image, ps []models.Particle) {
	for _, p := range ps {
		if !p.Alive() {
			continue
		}
		vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), float32(p.Size), Fade(p.Color, p.Life), true)
	}
}

// quad fills the four-sided polygon given clockwise from the top-left corner
func quad(dst *ebiten.Image, x0, y0, x1, y1, x2, y2, x3, y3 float32, c color.RGBA) {
	r, g, b, a := float32(c.R)/0xff, float32(c.G)/0xff, float32(c.B)/0xff, float32(c.A)/0xff
	vs := []ebiten.Vertex{
		{DstX: x0, DstY: y0, SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		{DstX: x1, DstY: y1, SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		{DstX: x2, DstY: y2, SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		{DstX: x3, DstY: y3, SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
	}
	dst.DrawTriangles(vs, []uint16{0, 1, 2, 0, 2, 3}, whiteSubImage, &ebiten.DrawTrianglesOptions{})
}
