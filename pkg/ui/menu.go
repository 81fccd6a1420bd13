package ui

import (
	"image/color"
	"math"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/golangdaddy/turbonitro/models"
	"github.com/golangdaddy/turbonitro/pkg/data"
	"github.com/golangdaddy/turbonitro/render"
)

// MaxNameLength caps racer names typed into the menu
const MaxNameLength = 14

// PlayerColors is the paint selection offered per player
var PlayerColors = []string{
	"#3b82f6", "#f97316", "#22c55e", "#eab308", "#ec4899", "#a855f7", "#ef4444", "#f8fafc",
}

// Row identifies a focusable line of the menu
type Row int

const (
	RowPlayers Row = iota
	RowName1
	RowColor1
	RowName2
	RowColor2
	RowTheme
	RowDevice
	RowStart
)

// Menu holds the race setup being edited. It has no ebiten dependencies so it can be driven from tests.
type Menu struct {
	Players []models.PlayerConfig
	Theme   models.Theme
	Device  models.DeviceMode
	Focus   Row

	colorIdx []int
}

// NewMenu starts from the default one-player race
func NewMenu() *Menu {
	def := models.DefaultRaceConfig()
	m := &Menu{
		Players:  def.Players,
		Theme:    def.Theme,
		Device:   def.Device,
		colorIdx: []int{0},
	}
	m.Players[0].Color = PlayerColors[0]
	return m
}

// Rows lists the focusable rows for the current player count
func (m *Menu) Rows() []Row {
	rows := []Row{RowPlayers, RowName1, RowColor1}
	if len(m.Players) > 1 {
		rows = append(rows, RowName2, RowColor2)
	}
	return append(rows, RowTheme, RowDevice, RowStart)
}

// MoveFocus steps the focus up or down, wrapping around
func (m *Menu) MoveFocus(dir int) {
	rows := m.Rows()
	idx := 0
	for i, r := range rows {
		if r == m.Focus {
			idx = i
		}
	}
	idx = (idx + dir + len(rows)) % len(rows)
	m.Focus = rows[idx]
}

// SetPlayerCount grows or shrinks the player list
func (m *Menu) SetPlayerCount(n int) {
	if n < 1 || n > models.MaxPlayers {
		return
	}
	for len(m.Players) < n {
		slot := len(m.Players)
		m.Players = append(m.Players, models.PlayerConfig{
			Name:  defaultName(slot),
			Color: PlayerColors[slot%len(PlayerColors)],
		})
		m.colorIdx = append(m.colorIdx, slot%len(PlayerColors))
	}
	m.Players = m.Players[:n]
	m.colorIdx = m.colorIdx[:n]
}

func defaultName(slot int) string {
	if slot == 0 {
		return "Racer One"
	}
	return "Racer Two"
}

// CycleColor moves a player's paint through PlayerColors
func (m *Menu) CycleColor(slot, dir int) {
	if slot >= len(m.Players) {
		return
	}
	i := (m.colorIdx[slot] + dir + len(PlayerColors)) % len(PlayerColors)
	m.colorIdx[slot] = i
	m.Players[slot].Color = PlayerColors[i]
}

// Shuffle replaces a player's name with a random callsign
func (m *Menu) Shuffle(slot int, rng *rand.Rand) {
	if slot < len(m.Players) {
		m.Players[slot].Name = data.Callsign(rng)
	}
}

// Type appends printable runes to a player's name
func (m *Menu) Type(slot int, runes []rune) {
	if slot >= len(m.Players) {
		return
	}
	name := []rune(m.Players[slot].Name)
	for _, r := range runes {
		if len(name) >= MaxNameLength {
			break
		}
		if unicode.IsPrint(r) {
			name = append(name, r)
		}
	}
	m.Players[slot].Name = string(name)
}

// Backspace removes the last rune of a player's name
func (m *Menu) Backspace(slot int) {
	if slot >= len(m.Players) {
		return
	}
	name := []rune(m.Players[slot].Name)
	if len(name) > 0 {
		m.Players[slot].Name = string(name[:len(name)-1])
	}
}

// ToggleTheme flips between the two track themes
func (m *Menu) ToggleTheme() {
	if m.Theme == models.ThemeCity {
		m.Theme = models.ThemeDesert
	} else {
		m.Theme = models.ThemeCity
	}
}

// ToggleDevice flips between keyboard and touch controls
func (m *Menu) ToggleDevice() {
	if m.Device == models.DeviceComputer {
		m.Device = models.DeviceMobile
	} else {
		m.Device = models.DeviceComputer
	}
}

// Change applies a left/right press to the focused row
func (m *Menu) Change(dir int, rng *rand.Rand) {
	switch m.Focus {
	case RowPlayers:
		m.SetPlayerCount(len(m.Players) + dir)
	case RowName1:
		m.Shuffle(0, rng)
	case RowName2:
		m.Shuffle(1, rng)
	case RowColor1:
		m.CycleColor(0, dir)
	case RowColor2:
		m.CycleColor(1, dir)
	case RowTheme:
		m.ToggleTheme()
	case RowDevice:
		m.ToggleDevice()
	}
}

// EditingSlot returns the player whose name row is focused
func (m *Menu) EditingSlot() (int, bool) {
	switch m.Focus {
	case RowName1:
		return 0, true
	case RowName2:
		return 1, true
	}
	return 0, false
}

// Config returns the race configuration with names trimmed
func (m *Menu) Config() models.RaceConfig {
	cfg := models.RaceConfig{Theme: m.Theme, Device: m.Device}
	for _, p := range m.Players {
		cfg.Players = append(cfg.Players, models.PlayerConfig{
			Name:  strings.TrimSpace(p.Name),
			Color: p.Color,
		})
	}
	return cfg
}

// MenuScreen is the setup screen shown between races
type MenuScreen struct {
	menu      *Menu
	rng       *rand.Rand
	startTime time.Time
	onStart   func(models.RaceConfig) error
	err       error
	chars     []rune
}

// NewMenuScreen creates the menu. onStart returns an error to keep the menu open.
func NewMenuScreen(menu *Menu, rng *rand.Rand, onStart func(models.RaceConfig) error) *MenuScreen {
	return &MenuScreen{
		menu:      menu,
		rng:       rng,
		startTime: time.Now(),
		onStart:   onStart,
	}
}

// Update handles menu navigation and name typing
func (ms *MenuScreen) Update() error {
	m := ms.menu
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		m.MoveFocus(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown), inpututil.IsKeyJustPressed(ebiten.KeyTab):
		m.MoveFocus(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		m.Change(-1, ms.rng)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		m.Change(1, ms.rng)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		if m.Focus == RowStart {
			ms.start()
		} else {
			m.MoveFocus(1)
		}
	}

	if slot, ok := m.EditingSlot(); ok {
		ms.chars = ebiten.AppendInputChars(ms.chars[:0])
		m.Type(slot, ms.chars)
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			m.Backspace(slot)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if _, y := ebiten.CursorPosition(); y >= startButtonY && y <= startButtonY+startButtonH {
			ms.start()
		}
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		if _, y := ebiten.TouchPosition(id); y >= startButtonY && y <= startButtonY+startButtonH {
			ms.start()
		}
	}
	return nil
}

func (ms *MenuScreen) start() {
	if ms.onStart == nil {
		return
	}
	ms.err = ms.onStart(ms.menu.Config())
}

const (
	menuTop      = 300
	menuRowH     = 42
	startButtonY = 700
	startButtonH = 56
)

// Draw renders the title banner and the setup rows
func (ms *MenuScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 20, 35, 255})
	w := float64(screen.Bounds().Dx())
	cx := w / 2
	elapsed := time.Since(ms.startTime).Seconds()

	// Pulsing title
	scale := 8.0 * (1 + 0.05*math.Sin(elapsed*2))
	brightness := math.Min(1, 1+0.2*math.Sin(elapsed*1.5))
	render.TextCentered(screen, "TURBO NITRO", cx, 80, scale, color.RGBA{
		uint8(255 * brightness), uint8(200 * brightness), uint8(50 * brightness), 255,
	})
	render.TextCentered(screen, "Highway Racing", cx, 200, 2, color.RGBA{180, 180, 200, 255})

	lineColor := color.RGBA{50, 60, 80, 100}
	vector.DrawFilledRect(screen, 0, 250, float32(w), 2, lineColor, false)

	m := ms.menu
	y := float64(menuTop)
	for _, row := range m.Rows() {
		if row == RowStart {
			continue
		}
		label, value, swatch := ms.describe(row)
		focused := row == m.Focus
		fg := color.RGBA{200, 200, 200, 255}
		if focused {
			fg = color.RGBA{255, 215, 0, 255}
			vector.DrawFilledRect(screen, float32(cx-320), float32(y-8), 640, menuRowH-4, color.RGBA{255, 215, 0, 30}, false)
		}
		render.Text(screen, label, cx-300, y, 1.5, fg)
		render.Text(screen, value, cx, y, 1.5, fg)
		if swatch != nil {
			vector.DrawFilledRect(screen, float32(cx+render.TextWidth(value, 1.5)+16), float32(y), 40, 20, swatch, false)
		}
		y += menuRowH
	}

	// Start button
	btn := color.RGBA{37, 99, 235, 255}
	if m.Focus == RowStart {
		btn = color.RGBA{34, 211, 238, 255}
	}
	vector.DrawFilledRect(screen, float32(cx-160), startButtonY, 320, startButtonH, btn, false)
	render.TextCentered(screen, "START RACE", cx, startButtonY+14, 2.5, color.White)

	if ms.err != nil {
		render.TextCentered(screen, strings.ToUpper(ms.err.Error()), cx, startButtonY-34, 1.2, color.RGBA{239, 68, 68, 255})
	}
	render.TextCentered(screen, "UP/DOWN select   LEFT/RIGHT change   TYPE to rename   ENTER to confirm", cx, 770, 1.1, color.RGBA{150, 200, 255, 255})
}

func (ms *MenuScreen) describe(row Row) (label, value string, swatch color.Color) {
	m := ms.menu
	cursor := ""
	if int(time.Since(ms.startTime).Seconds()*2)%2 == 0 {
		cursor = "_"
	}
	switch row {
	case RowPlayers:
		if len(m.Players) == 1 {
			return "PLAYERS", "< 1 PLAYER >", nil
		}
		return "PLAYERS", "< 2 PLAYERS >", nil
	case RowName1, RowName2:
		slot := 0
		if row == RowName2 {
			slot = 1
		}
		name := m.Players[slot].Name
		if row == m.Focus {
			name += cursor
		}
		return playerLabel(slot) + " NAME", name, nil
	case RowColor1, RowColor2:
		slot := 0
		if row == RowColor2 {
			slot = 1
		}
		c, _ := models.ParseHex(m.Players[slot].Color)
		return playerLabel(slot) + " PAINT", "< " + strings.ToUpper(m.Players[slot].Color) + " >", c
	case RowTheme:
		return "TRACK", "< " + string(m.Theme) + " >", nil
	case RowDevice:
		return "CONTROLS", "< " + string(m.Device) + " >", nil
	}
	return "", "", nil
}

func playerLabel(slot int) string {
	if slot == 0 {
		return "P1"
	}
	return "P2"
}
