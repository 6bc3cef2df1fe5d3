package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/haifuri/organize/internal/term"
)

const bannerText = `  ___                        _
 / _ \ _ __ __ _  __ _ _ __ (_)_______
| | | | '__/ _` + "`" + ` |/ _` + "`" + ` | '_ \| |_  / _ \
| |_| | | | (_| | (_| | | | | |/ /  __/
 \___/|_|  \__, |\__,_|_| |_|_/___\___|
           |___/  fonts + subtitles`

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("13")).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("5")).
	Padding(0, 1)

// PrintBanner writes the ASCII art banner to w, boxed and colored when
// colors are enabled.
func PrintBanner(w io.Writer) {
	if !term.Enabled() {
		fmt.Fprintln(w, bannerText)
		return
	}
	fmt.Fprintln(w, bannerStyle.Render(bannerText))
}
