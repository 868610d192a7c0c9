// Package menu provides main menu implementation using the generic menu system.
package menu

import (
	"math"

	"github.com/leonelquinteros/gotext"

	"echomaze/pkg/game/config"
	"echomaze/pkg/game/generator"
	"echomaze/pkg/game/locale"
	"echomaze/pkg/game/markers"
)

// MainMenuAction represents the action type for main menu items.
type MainMenuAction int

const (
	MainMenuActionPlay MainMenuAction = iota
	MainMenuActionGenerator
	MainMenuActionSize
	MainMenuActionLoops
	MainMenuActionRecall
	MainMenuActionQuit
)

// Choices cycled through by the settings items.
var (
	sizeChoices = []int{10, 15, 20, 30}
	loopChoices = []float64{0, 0.1, 0.25, 0.5}
)

// MainMenuItem represents a menu item in the main menu.
type MainMenuItem struct {
	Label  string
	Action MainMenuAction
}

// GetLabel returns the display label for this menu item.
func (m *MainMenuItem) GetLabel() string {
	return m.Label
}

// IsSelectable returns whether this item can be selected.
func (m *MainMenuItem) IsSelectable() bool {
	return true
}

// GetHelpText returns help text for this menu item.
func (m *MainMenuItem) GetHelpText() string {
	switch m.Action {
	case MainMenuActionPlay:
		return gotext.Get("MENU_PLAY_HELP")
	case MainMenuActionGenerator:
		return gotext.Get("MENU_GENERATOR_HELP")
	case MainMenuActionSize:
		return gotext.Get("MENU_SIZE_HELP")
	case MainMenuActionLoops:
		return gotext.Get("MENU_LOOPS_HELP")
	case MainMenuActionRecall:
		return gotext.Get("MENU_RECALL_HELP")
	case MainMenuActionQuit:
		return gotext.Get("MENU_QUIT_HELP")
	default:
		return ""
	}
}

// MainMenuHandler edits the round settings in cfg until Play or Quit.
type MainMenuHandler struct {
	cfg            *config.Config
	selectedAction MainMenuAction
	shouldQuit     bool
}

// NewMainMenuHandler creates a new main menu handler over cfg.
func NewMainMenuHandler(cfg *config.Config) *MainMenuHandler {
	return &MainMenuHandler{cfg: cfg}
}

// GetTitle returns the menu title.
func (h *MainMenuHandler) GetTitle() string {
	return gotext.Get("MENU_TITLE")
}

// GetInstructions returns the menu instructions.
func (h *MainMenuHandler) GetInstructions(selected MenuItem) string {
	return gotext.Get("MENU_INSTRUCTIONS")
}

// OnSelect is called when an item is selected.
func (h *MainMenuHandler) OnSelect(item MenuItem, index int) {
	if mainItem, ok := item.(*MainMenuItem); ok {
		h.selectedAction = mainItem.Action
	}
}

// OnActivate starts the round, quits, or advances a setting to its next
// choice.
func (h *MainMenuHandler) OnActivate(item MenuItem, index int) (shouldClose bool, helpText string) {
	mainItem, ok := item.(*MainMenuItem)
	if !ok {
		return false, ""
	}
	h.selectedAction = mainItem.Action

	switch mainItem.Action {
	case MainMenuActionPlay:
		return true, ""
	case MainMenuActionQuit:
		h.shouldQuit = true
		return true, ""
	case MainMenuActionGenerator:
		h.cfg.Generator = nextChoice(generator.Names(), h.cfg.Generator)
	case MainMenuActionSize:
		n := nextChoice(sizeChoices, h.cfg.Width)
		h.cfg.Width, h.cfg.Height = n, n
	case MainMenuActionLoops:
		h.cfg.ExtraLoopFraction = nextChoice(loopChoices, h.cfg.ExtraLoopFraction)
	case MainMenuActionRecall:
		h.cfg.RecallPolicy = nextChoice([]string{markers.MostRecent.String(), markers.Earliest.String()}, h.cfg.RecallPolicy)
	}
	return false, ""
}

// OnExit is called when the menu is exited.
func (h *MainMenuHandler) OnExit() {
	// Nothing to do on exit
}

// GetSelectedAction returns the selected action (if any).
func (h *MainMenuHandler) GetSelectedAction() MainMenuAction {
	return h.selectedAction
}

// ShouldQuit returns true if the user selected Quit.
func (h *MainMenuHandler) ShouldQuit() bool {
	return h.shouldQuit
}

// GetMenuItems returns the menu items, labelled with the current settings.
func (h *MainMenuHandler) GetMenuItems() []MenuItem {
	return []MenuItem{
		&MainMenuItem{Label: gotext.Get("MENU_PLAY"), Action: MainMenuActionPlay},
		&MainMenuItem{Label: locale.Get("MENU_GENERATOR", h.cfg.Generator), Action: MainMenuActionGenerator},
		&MainMenuItem{Label: locale.Get("MENU_SIZE", h.cfg.Width, h.cfg.Height), Action: MainMenuActionSize},
		&MainMenuItem{Label: locale.Get("MENU_LOOPS", int(math.Round(h.cfg.ExtraLoopFraction*100))), Action: MainMenuActionLoops},
		&MainMenuItem{Label: locale.Get("MENU_RECALL", h.cfg.RecallPolicy), Action: MainMenuActionRecall},
		&MainMenuItem{Label: gotext.Get("MENU_QUIT"), Action: MainMenuActionQuit},
	}
}

// RunMainMenu lets the player adjust cfg and reports whether to play.
func RunMainMenu(cfg *config.Config, next NextIntent) bool {
	handler := NewMainMenuHandler(cfg)
	closed := RunMenu(handler, next)
	return closed && !handler.ShouldQuit()
}

// nextChoice returns the choice after current, or the first when current
// is not one of them.
func nextChoice[T comparable](choices []T, current T) T {
	for i, c := range choices {
		if c == current {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}
