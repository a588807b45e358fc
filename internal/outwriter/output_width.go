package outwriter

import (
	"os"

	"github.com/eastside-atlas/velocity/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for region names in table
// output based on terminal width and the fixed frame columns.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// DVI + Band + Map Fill + four metric columns, with borders and padding
	baseWidth := 95

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
