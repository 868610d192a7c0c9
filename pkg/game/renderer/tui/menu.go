package tui

import "fmt"

// RenderMenu draws a full-screen menu with the selected item highlighted.
func (t *TUIRenderer) RenderMenu(title, instructions string, labels []string, selected int, helpText string) {
	fmt.Fprintln(t.out, t.colorActionShort.Sprint(title))
	fmt.Fprintln(t.out)
	if instructions != "" {
		fmt.Fprintln(t.out, t.colorSubtle.Sprint(instructions))
		fmt.Fprintln(t.out)
	}

	for i, label := range labels {
		if i == selected {
			fmt.Fprintf(t.out, "%s %s\n", t.colorAction.Sprint(">"), t.colorCursor.Sprint(label))
		} else {
			fmt.Fprintf(t.out, "  %s\n", label)
		}
	}

	if helpText != "" {
		fmt.Fprintln(t.out)
		fmt.Fprintln(t.out, t.colorSubtle.Sprint(helpText))
	}
}
