// Package menu provides a generic menu system for the game.
package menu

import (
	"echomaze/pkg/engine/input"
	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/renderer"
)

// MenuItem represents a single item in a menu.
type MenuItem interface {
	// GetLabel returns the display label for this menu item.
	GetLabel() string
	// IsSelectable returns whether this item can be selected.
	IsSelectable() bool
	// GetHelpText returns optional help text for this item.
	GetHelpText() string
}

// MenuHandler handles menu item selection and activation.
type MenuHandler interface {
	// OnSelect is called when an item is selected (navigated to).
	OnSelect(item MenuItem, index int)

	// OnActivate is called when an item is activated (e.g., Enter pressed).
	// Returns true if the menu should close, and any help text to display.
	OnActivate(item MenuItem, index int) (shouldClose bool, helpText string)
	// OnExit is called when the menu is exited.
	OnExit()
	// GetTitle returns the menu title.
	GetTitle() string
	// GetInstructions returns the menu instructions.
	GetInstructions(selected MenuItem) string
	// GetMenuItems returns the current items. It is called every loop
	// iteration so labels can change after an activation.
	GetMenuItems() []MenuItem
}

// MenuRenderer is an optional interface for renderers that can draw
// a full-screen menu.
type MenuRenderer interface {
	RenderMenu(title, instructions string, labels []string, selected int, helpText string)
}

// NextIntent blocks for the player's next intent. ok is false once input
// has ended.
type NextIntent func() (in input.Intent, ok bool)

// RunMenu runs a menu until the handler closes it, the player quits or input
// ends. It reports whether the menu was closed by an activation.
func RunMenu(handler MenuHandler, next NextIntent) bool {
	selected := -1
	helpText := ""

	for {
		items := handler.GetMenuItems()

		// Find first selectable item, or keep current if still valid
		if selected < 0 || selected >= len(items) || !items[selected].IsSelectable() {
			selected = firstSelectable(items)
		}

		render(handler, items, selected, helpText)

		intent, ok := next()
		if !ok {
			handler.OnExit()
			return false
		}

		switch intent.Action {
		case input.ActionMove:
			step := 0
			switch intent.Direction {
			case world.North:
				step = -1
			case world.South:
				step = 1
			}
			if step != 0 {
				if i := nextSelectable(items, selected, step); i != selected {
					selected = i
					helpText = ""
					handler.OnSelect(items[selected], selected)
				}
			}
		case input.ActionConfirm, input.ActionProbe:
			if selected >= 0 && selected < len(items) && items[selected].IsSelectable() {
				shouldClose, newHelpText := handler.OnActivate(items[selected], selected)
				helpText = newHelpText
				if shouldClose {
					handler.OnExit()
					return true
				}
			}
		case input.ActionQuit:
			handler.OnExit()
			return false
		default:
			// Ignore other actions while in menu
		}
	}
}

func firstSelectable(items []MenuItem) int {
	for i, item := range items {
		if item.IsSelectable() {
			return i
		}
	}
	return 0
}

// nextSelectable walks from selected by step, wrapping around, and returns
// the first selectable index.
func nextSelectable(items []MenuItem, selected, step int) int {
	n := len(items)
	for k := 1; k < n; k++ {
		i := ((selected+step*k)%n + n) % n
		if items[i].IsSelectable() {
			return i
		}
	}
	return selected
}

func render(handler MenuHandler, items []MenuItem, selected int, helpText string) {
	var selectedItem MenuItem
	if selected >= 0 && selected < len(items) {
		selectedItem = items[selected]
		if helpText == "" {
			helpText = selectedItem.GetHelpText()
		}
	}

	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.GetLabel()
	}

	renderer.Clear()
	if mr, ok := renderer.Current.(MenuRenderer); ok {
		mr.RenderMenu(handler.GetTitle(), handler.GetInstructions(selectedItem), labels, selected, helpText)
		return
	}
	renderFallback(handler.GetTitle(), handler.GetInstructions(selectedItem), labels, selected, helpText)
}

// renderFallback prints the menu as plain messages for renderers without
// a menu view.
func renderFallback(title, instructions string, labels []string, selected int, helpText string) {
	renderer.ShowMessage("=== " + title + " ===")
	if instructions != "" {
		renderer.ShowMessage(instructions)
	}
	for i, label := range labels {
		prefix := "  "
		if i == selected {
			prefix = "> "
		}
		renderer.ShowMessage(prefix + label)
	}
	if helpText != "" {
		renderer.ShowMessage(renderer.StyleText(helpText, renderer.StyleSubtle))
	}
}
