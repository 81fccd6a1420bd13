package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/golangdaddy/turbonitro/commentary"
	"github.com/golangdaddy/turbonitro/models"
	"github.com/golangdaddy/turbonitro/render"
)

// ResultRow is one formatted line of the standings table
type ResultRow struct {
	Rank     string
	Name     string
	Distance string
	Speed    string
	Laps     string
	Winner   bool
}

// Standings formats ranked results for display
func Standings(results []models.RaceResult) []ResultRow {
	rows := make([]ResultRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, ResultRow{
			Rank:     fmt.Sprintf("P%d", r.Rank),
			Name:     r.PlayerName,
			Distance: fmt.Sprintf("%d KM", r.Distance),
			Speed:    fmt.Sprintf("%d KM/H", r.TopSpeed),
			Laps:     fmt.Sprintf("LAP %d", r.Laps),
			Winner:   r.Rank == 1,
		})
	}
	return rows
}

// Wrap breaks text into lines of at most width runes on word boundaries
func Wrap(s string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(s) {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(word)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// ResultsScreen shows the final standings and the race commentary
type ResultsScreen struct {
	results    []models.RaceResult
	rows       []ResultRow
	poll       func() (string, bool)
	commentary string
	final      bool
	backdrop   func(*ebiten.Image)
	onLeave    func()
}

// NewResultsScreen creates the results screen. poll is checked every frame until it reports commentary;
// the local summary is shown meanwhile. backdrop draws the frozen race behind the panel.
func NewResultsScreen(results []models.RaceResult, poll func() (string, bool), backdrop func(*ebiten.Image), onLeave func()) *ResultsScreen {
	return &ResultsScreen{
		results:    results,
		rows:       Standings(results),
		poll:       poll,
		commentary: commentary.Summary(results),
		backdrop:   backdrop,
		onLeave:    onLeave,
	}
}

// Commentary returns the text currently shown and whether it is final
func (rs *ResultsScreen) Commentary() (string, bool) {
	return rs.commentary, rs.final
}

// Update polls for commentary and waits for the player to leave
func (rs *ResultsScreen) Update() error {
	if !rs.final && rs.poll != nil {
		if s, ok := rs.poll(); ok {
			rs.commentary, rs.final = s, true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		if rs.onLeave != nil {
			rs.onLeave()
		}
	}
	return nil
}

// Draw renders the standings panel
func (rs *ResultsScreen) Draw(screen *ebiten.Image) {
	if rs.backdrop != nil {
		rs.backdrop(screen)
	}
	w, h := float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy())
	vector.DrawFilledRect(screen, 0, 0, w, h, color.RGBA{0, 0, 0, 170}, false)

	cx := float64(w) / 2
	render.TextCentered(screen, "RACE OVER", cx, 80, 5, color.RGBA{255, 200, 50, 255})

	y := 200.0
	for _, row := range rs.rows {
		fg := color.RGBA{220, 220, 230, 255}
		if row.Winner {
			fg = color.RGBA{255, 215, 0, 255}
			vector.DrawFilledRect(screen, float32(cx-420), float32(y-10), 840, 50, color.RGBA{255, 215, 0, 40}, false)
		}
		render.Text(screen, row.Rank, cx-400, y, 2.5, fg)
		render.Text(screen, row.Name, cx-320, y, 2.5, fg)
		render.Text(screen, row.Distance, cx+60, y, 2, fg)
		render.Text(screen, row.Speed, cx+200, y, 2, fg)
		render.Text(screen, row.Laps, cx+340, y+4, 1.2, fg)
		y += 64
	}

	y += 30
	label := "RADIO DJ"
	if !rs.final {
		label = "RADIO DJ (tuning in...)"
	}
	render.TextCentered(screen, label, cx, y, 1.5, color.RGBA{96, 165, 250, 255})
	y += 36
	for _, line := range Wrap(rs.commentary, 70) {
		render.TextCentered(screen, line, cx, y, 1.5, color.White)
		y += 26
	}

	render.TextCentered(screen, "Press ENTER to return to the menu", cx, float64(h)-60, 1.5, color.RGBA{150, 200, 255, 255})
}
