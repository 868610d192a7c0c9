package tui

import (
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"

	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/locale"
	"echomaze/pkg/game/renderer"
)

// RenderEnd renders the revealed maze, then either the guess prompt or the
// guess result.
func (t *TUIRenderer) RenderEnd(v renderer.EndView) {
	fmt.Fprintln(t.out, t.colorDenied.Sprint(gotext.Get("TIME_UP")))
	fmt.Fprintln(t.out)
	fmt.Fprint(t.out, t.MazeString(v))
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, t.colorSubtle.Sprint(gotext.Get("LEGEND")))
	fmt.Fprintln(t.out)

	switch {
	case v.Guess == nil:
		fmt.Fprintln(t.out, gotext.Get("GUESS_PROMPT"))
	case v.Guess.Correct():
		fmt.Fprintln(t.out, t.colorPlayer.Sprint(locale.Get("GUESS_CORRECT", v.Guess.Actual.String())))
		fmt.Fprintln(t.out, t.colorSubtle.Sprint(gotext.Get("PLAY_AGAIN_PROMPT")))
	default:
		fmt.Fprintln(t.out, t.colorDenied.Sprint(locale.Get("GUESS_MISSED", v.Guess.Actual.String(), v.Guess.Distance)))
		fmt.Fprintln(t.out, t.colorSubtle.Sprint(gotext.Get("PLAY_AGAIN_PROMPT")))
	}
}

// MazeString draws the maze with walls, start, markers and the cursor or
// guess overlay. Each cell is three characters wide.
func (t *TUIRenderer) MazeString(v renderer.EndView) string {
	m := v.Round.Maze
	var sb strings.Builder

	corner := t.colorWall.Sprint("+")
	hwall := t.colorWall.Sprint("---")
	vwall := t.colorWall.Sprint("|")

	sb.WriteString(corner)
	for col := 0; col < m.Width(); col++ {
		sb.WriteString(hwall + corner)
	}
	sb.WriteString("\n")

	for row := 0; row < m.Height(); row++ {
		sb.WriteString(vwall)
		for col := 0; col < m.Width(); col++ {
			p := world.Position{Row: row, Col: col}
			sb.WriteString(t.cellInterior(v, p))
			if m.HasWall(p, world.East) {
				sb.WriteString(vwall)
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")

		sb.WriteString(corner)
		for col := 0; col < m.Width(); col++ {
			if m.HasWall(world.Position{Row: row, Col: col}, world.South) {
				sb.WriteString(hwall)
			} else {
				sb.WriteString("   ")
			}
			sb.WriteString(corner)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (t *TUIRenderer) cellInterior(v renderer.EndView, p world.Position) string {
	icon, style, ok := renderer.CellIcon(v, p)
	if !ok {
		return "   "
	}
	if style == renderer.StyleCursor {
		return t.StyleText(" "+icon+" ", style)
	}
	return " " + t.StyleText(icon, style) + " "
}
