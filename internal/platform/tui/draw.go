package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/snakeboy/internal/core"
	"github.com/vovakirdan/snakeboy/internal/games/snake"
)

// hudRows is the number of status lines above the playfield.
const hudRows = 2

// DrawOptions controls how a snapshot is laid out.
type DrawOptions struct {
	CellWidth int  // Terminal columns per grid cell
	ShowGrid  bool // Dot empty cells
}

// RequiredSize returns the smallest screen that fits the playfield and HUD.
func RequiredSize(grid snake.Grid, opts DrawOptions) (w, h int) {
	cw := max(1, opts.CellWidth)
	return grid.Width*cw + 2, grid.Height + 2 + hudRows
}

// cellGlyph repeats a glyph across the cell width.
func cellGlyph(r rune, cw int) string {
	return strings.Repeat(string(r), cw)
}

var (
	foodGlyphs = map[snake.FoodKind][2]rune{
		snake.FoodRegular: {'●', '•'},
		snake.FoodBonus:   {'◆', '◇'},
		snake.FoodSpecial: {'★', '☆'},
	}
	foodColors = map[snake.FoodKind]core.Color{
		snake.FoodRegular: core.ColorRed,
		snake.FoodBonus:   core.ColorBrightYellow,
		snake.FoodSpecial: core.ColorMagenta,
	}
	powerUpGlyphs = map[snake.PowerUpKind]rune{
		snake.PowerUpShield:     'S',
		snake.PowerUpSpeedBoost: '»',
		snake.PowerUpSlowMode:   '«',
	}
)

// DrawSnapshot draws a full frame: HUD, playfield and the status overlay.
// The screen is cleared first.
func DrawSnapshot(scr *core.Screen, s snake.Snapshot, opts DrawOptions) {
	scr.Clear()
	cw := max(1, opts.CellWidth)

	needW, needH := RequiredSize(s.Grid, opts)
	if scr.Width() < needW || scr.Height() < needH {
		scr.DrawTextCentered(scr.Height()/2, "Terminal too small", core.ColorBrightRed)
		scr.DrawTextCentered(scr.Height()/2+1, fmt.Sprintf("need %dx%d", needW, needH), core.ColorGray)
		return
	}

	originX := (scr.Width() - needW) / 2
	drawHUD(scr, s, originX, needW)

	field := core.NewRect(originX, hudRows, needW, s.Grid.Height+2)
	border := core.ColorDark
	if s.Invulnerable {
		border = core.ColorBrightYellow
	}
	scr.DrawBox(field, border)

	cellAt := func(p core.Point) (int, int) {
		return field.X + 1 + p.X*cw, field.Y + 1 + p.Y
	}

	if opts.ShowGrid {
		for y := 0; y < s.Grid.Height; y++ {
			for x := 0; x < s.Grid.Width; x++ {
				cx, cy := cellAt(core.Pt(x, y))
				scr.SetColored(cx, cy, '·', core.ColorDarkest)
			}
		}
	}

	for _, p := range s.Obstacles {
		cx, cy := cellAt(p)
		scr.DrawTextColored(cx, cy, cellGlyph('▒', cw), core.ColorGray)
	}

	if s.FoodPresent {
		g := foodGlyphs[s.Food.Kind][s.FoodFrame%2]
		cx, cy := cellAt(s.Food.Position)
		scr.DrawTextColored(cx, cy, cellGlyph(g, cw), foodColors[s.Food.Kind])
	}

	if s.PowerUp.Active {
		c := core.ColorCyan
		if s.PowerUpFrame%2 == 1 {
			c = core.ColorBrightCyan
		}
		cx, cy := cellAt(s.PowerUp.Position)
		scr.DrawTextColored(cx, cy, cellGlyph(powerUpGlyphs[s.PowerUp.Kind], cw), c)
	}

	if s.SnakeVisible {
		body := core.ColorGreen
		head := core.ColorBrightGreen
		switch {
		case s.Invulnerable:
			body, head = core.ColorYellow, core.ColorBrightYellow
		case s.Shielded:
			body, head = core.ColorCyan, core.ColorBrightCyan
		}
		for i := len(s.Snake) - 1; i >= 0; i-- {
			cx, cy := cellAt(s.Snake[i])
			if i == 0 {
				scr.DrawTextColored(cx, cy, cellGlyph('█', cw), head)
			} else {
				scr.DrawTextColored(cx, cy, cellGlyph('▓', cw), body)
			}
		}
	}

	drawOverlay(scr, s, field)
}

func drawHUD(scr *core.Screen, s snake.Snapshot, x, width int) {
	left := fmt.Sprintf("SNAKE BOY  %s  LV %d", s.Mode.Title(), s.Level)
	right := fmt.Sprintf("SCORE %05d  HI %05d", s.Score, s.HighScore)
	scr.DrawTextColored(x, 0, left, core.ColorLightest)
	scr.DrawTextColored(x+width-len(right), 0, right, core.ColorLightest)

	var parts []string
	if s.Combo > 1 {
		parts = append(parts, fmt.Sprintf("COMBO x%.1f", s.Combo))
	}
	if s.Mode == snake.ModeTimeAttack && s.Status != snake.StatusStart {
		parts = append(parts, fmt.Sprintf("TIME %ds", int(math.Ceil(s.TimeRemaining))))
	}
	if s.Effects.Shield {
		parts = append(parts, "SHIELD")
	}
	if s.Effects.SpeedBoost {
		parts = append(parts, "BOOST")
	}
	if s.Effects.SlowMode {
		parts = append(parts, "SLOW")
	}
	if s.Invulnerable {
		parts = append(parts, "CHEAT")
	}
	scr.DrawTextColored(x, 1, strings.Join(parts, "  "), core.ColorBrightYellow)
}

func drawOverlay(scr *core.Screen, s snake.Snapshot, field core.Rect) {
	mid := field.Y + field.H/2
	center := func(y int, text string, c core.Color) {
		cx := field.X + (field.W-len([]rune(text)))/2
		scr.DrawTextColored(cx, y, text, c)
	}

	// Blank a band behind the banner so the text reads over the playfield.
	banner := func(top, rows int) {
		scr.DrawRect(core.NewRect(field.X+1, top, field.W-2, rows), ' ')
	}

	switch s.Status {
	case snake.StatusStart:
		banner(mid-2, 5)
		center(mid-2, "S N A K E   B O Y", core.ColorBrightGreen)
		center(mid, "< "+s.Mode.Title()+" >", core.ColorLightest)
		center(mid+2, "ENTER: START   TAB: MODE", core.ColorGray)
	case snake.StatusPaused:
		banner(mid, 1)
		center(mid, "PAUSED", core.ColorBrightYellow)
	case snake.StatusLevelUp:
		banner(mid-1, 3)
		center(mid-1, fmt.Sprintf("LEVEL %d", s.Level), core.ColorBrightGreen)
		const barWidth = 12
		filled := core.Clamp(int(s.Transition.Progress*barWidth), 0, barWidth)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		center(mid+1, bar, core.ColorLight)
	case snake.StatusGameOver:
		banner(mid-1, 4)
		center(mid-1, "GAME OVER", core.ColorBrightRed)
		center(mid+1, fmt.Sprintf("SCORE %d", s.Score), core.ColorLightest)
		center(mid+2, "ENTER: RETRY   R: MENU", core.ColorGray)
	case snake.StatusPlaying:
	}
}
