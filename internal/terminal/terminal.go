package terminal

import (
	"os"

	"github.com/fatih/color"
)

// HasTTY reports whether stdout is connected to a terminal.
func HasTTY() bool {
	return isTerminal(os.Stdout)
}

func isTerminal(file *os.File) bool {
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// ConfigureColor applies a color mode ("auto", "always", "never") to fatih/color.
// In auto mode color stays off unless stdout is a terminal.
func ConfigureColor(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		if !HasTTY() {
			color.NoColor = true
		}
	}
}
