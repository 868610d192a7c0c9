package tui

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"echomaze/pkg/engine/input"
	"echomaze/pkg/engine/terminal"
	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/locale"
	"echomaze/pkg/game/renderer"
)

// Viewport margins and minimum sizes
const (
	ViewportMinRows = 7
	ViewportMinCols = 15

	// Lines outside the cue pane: status (2), cue header (1), messages
	// pane (header + 5 messages + footer = 7), help (2)
	ViewportTopMargin = 12
)

// dynamicGet is used for runtime translation key lookups from markup.
var dynamicGet = gotext.Get

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	out io.Writer

	colorAction      color.Style
	colorActionShort color.Style
	colorDenied      color.Style
	colorSubtle      color.Style
	colorPlayer      color.Style
	colorStart       color.Style
	colorMarker      color.Style
	colorCursor      color.Style
	colorWall        color.Style
	colorTimer       color.Style

	regexpStringFunctions *regexp.Regexp
}

// New creates a new TUI renderer writing to out
func New(out io.Writer) *TUIRenderer {
	return &TUIRenderer{out: out}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorAction = color.Style{color.FgMagenta}
	t.colorActionShort = color.Style{color.FgMagenta, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorStart = color.Style{color.FgBlue, color.OpBold}
	t.colorMarker = color.Style{color.FgYellow, color.OpBold}
	t.colorCursor = color.Style{color.FgBlack, color.BgYellow, color.OpBold}
	t.colorWall = color.Style{color.FgGray}
	t.colorTimer = color.Style{color.FgCyan}

	t.regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:/]+)}`)
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	_ = terminal.Clear(t.out)
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	case renderer.StyleAction:
		return t.colorAction.Sprint(text)
	case renderer.StyleActionShort:
		return t.colorActionShort.Sprint(text)
	case renderer.StyleDenied:
		return t.colorDenied.Sprint(text)
	case renderer.StylePlayer:
		return t.colorPlayer.Sprint(text)
	case renderer.StyleStart:
		return t.colorStart.Sprint(text)
	case renderer.StyleMarker:
		return t.colorMarker.Sprint(text)
	case renderer.StyleCursor:
		return t.colorCursor.Sprint(text)
	case renderer.StyleWall:
		return t.colorWall.Sprint(text)
	case renderer.StyleTimer:
		return t.colorTimer.Sprint(text)
	default:
		return text
	}
}

// FormatText formats a message with the markup system: GT{KEY} translates,
// ACTION{text} highlights a key binding.
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)

	matches := t.regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		var val string

		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "ACTION":
			val = t.colorActionShort.Sprint(operand[0:1]) + t.colorAction.Sprint(operand[1:])
		case "SUBTLE":
			val = t.colorSubtle.Sprint(operand)
		default:
			ret = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
			continue
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// ShowMessage displays a message to the user
func (t *TUIRenderer) ShowMessage(msg string) {
	fmt.Fprintln(t.out, msg)
}

// GetViewportSize returns how many cue lines and columns fit on screen
func (t *TUIRenderer) GetViewportSize() (rows, cols int) {
	termWidth, termHeight := terminal.GetSize()

	cols = termWidth
	rows = termHeight - ViewportTopMargin

	if cols < ViewportMinCols {
		cols = ViewportMinCols
	}
	if rows < ViewportMinRows {
		rows = ViewportMinRows
	}

	return rows, cols
}

// RenderFrame renders the in-round screen
func (t *TUIRenderer) RenderFrame(f renderer.Frame) {
	t.printStatusBar(f)
	t.printCuePane(f)
	t.printMessagesPane(f.Round.Messages)
	t.printPossibleActions()
}

// printString prints a formatted string
func (t *TUIRenderer) printString(msg string, a ...any) {
	fmt.Fprint(t.out, t.FormatText(msg, a...))
}

// printStatusBar shows the clock, markers and drone state
func (t *TUIRenderer) printStatusBar(f renderer.Frame) {
	secs := int((f.Remaining + time.Second - 1) / time.Second)
	status := []string{
		t.colorTimer.Sprint(locale.Get("TIME_LEFT", secs)),
		t.colorSubtle.Sprint(locale.Get("MARKERS_PLACED", f.Round.Player.Markers.Len())),
	}
	if f.DroneActive {
		status = append(status, t.colorAction.Sprint(gotext.Get("DRONE_FLYING")))
	}
	fmt.Fprintln(t.out, strings.Join(status, "    "))
	fmt.Fprintln(t.out)
}

// printCuePane lists the most recent cues, newest last
func (t *TUIRenderer) printCuePane(f renderer.Frame) {
	rows, _ := t.GetViewportSize()
	cues := f.Cues
	if len(cues) > rows {
		cues = cues[len(cues)-rows:]
	}

	t.printRule(gotext.Get("CUES"))
	for _, ev := range cues {
		fmt.Fprintf(t.out, "  %s\n", t.StyleText(renderer.CueLabel(ev), renderer.CueStyle(ev.Kind)))
	}
}

// printPossibleActions prints the key bindings
func (t *TUIRenderer) printPossibleActions() {
	help := []struct {
		key     string
		intents []input.Intent
	}{
		{"HELP_MOVE", []input.Intent{input.Move(world.North), input.Move(world.West), input.Move(world.South), input.Move(world.East)}},
		{"HELP_PROBE", []input.Intent{input.Probe()}},
		{"HELP_DRONE", []input.Intent{input.SendDrone(world.North), input.SendDrone(world.West), input.SendDrone(world.South), input.SendDrone(world.East)}},
		{"HELP_MARKER", []input.Intent{input.PlaceMarker()}},
		{"HELP_QUIT", []input.Intent{{Action: input.ActionQuit}}},
	}

	parts := make([]string, 0, len(help))
	for _, h := range help {
		parts = append(parts, t.FormatText("ACTION{%s}: GT{%s}", keyNames(h.intents...), h.key))
	}
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, strings.Join(parts, "   "))
}

// keyNames lists the keys bound to intents, folding the arrow keys together.
func keyNames(intents ...input.Intent) string {
	bindings := input.GetBindingsByIntent()
	seen := make(map[string]bool)
	var names []string
	for _, in := range intents {
		for _, code := range bindings[in] {
			name := code
			switch {
			case strings.HasPrefix(code, "arrow_"):
				name = "arrows"
			case code == "ctrl_c":
				continue
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return strings.Join(names, "/")
}

// printMessagesPane renders the messages log pane
func (t *TUIRenderer) printMessagesPane(messages []string) {
	_, width := t.GetViewportSize()

	fmt.Fprintln(t.out)
	t.printRule(gotext.Get("MESSAGES"))

	if len(messages) == 0 {
		fmt.Fprintln(t.out, t.colorSubtle.Sprint("  "+gotext.Get("NO_MESSAGES")))
	} else {
		for _, msg := range messages {
			fmt.Fprintf(t.out, "  %s\n", msg)
		}
	}

	fmt.Fprintln(t.out, t.colorSubtle.Sprint(strings.Repeat("─", width)))
}

// printRule prints a horizontal rule with a centred label
func (t *TUIRenderer) printRule(label string) {
	_, width := t.GetViewportSize()

	label = " " + label + " "
	labelLen := len([]rune(label))
	sideLen := (width - labelLen) / 2
	if sideLen < 1 {
		sideLen = 1
	}
	rightLen := width - sideLen - labelLen
	if rightLen < 1 {
		rightLen = 1
	}

	fmt.Fprintln(t.out, t.colorSubtle.Sprint(strings.Repeat("─", sideLen)+label+strings.Repeat("─", rightLen)))
}
