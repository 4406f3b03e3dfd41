package outwriter

import (
	"os"

	"github.com/huangsam/devpulse/internal/contract"
	"golang.org/x/term"
)

// GetMaxAuthorWidth calculates the maximum width for author names in table
// output based on terminal width.
func GetMaxAuthorWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric columns with borders and padding
	baseWidth := 62 // Commits + Churn + Ratio + Days + Productivity with formatting

	available := termWidth - baseWidth
	if available < 10 {
		// Minimum reasonable author width
		return 10
	}
	if available > 40 {
		// Maximum author width to keep rows compact
		return 40
	}
	return available
}

// truncateAuthor shortens an author name to the given width with an ellipsis.
func truncateAuthor(name string, width int) string {
	if len(name) <= width {
		return name
	}
	if width <= 3 {
		return name[:width]
	}
	return name[:width-3] + "..."
}
