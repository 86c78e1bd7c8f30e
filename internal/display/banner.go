package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-runewidth"
)

//go:embed banner.txt
var bannerArt string

// fallbackWidth is used when stdout is not a terminal.
const fallbackWidth = 80

// RenderBanner returns the ottobrew art centred for the terminal.
func RenderBanner() string {
	return renderBanner(TermWidth())
}

// renderBanner pads the art into a rectangle first so lines keep their
// relative offsets once the block is centred.
func renderBanner(width int) string {
	art := strings.TrimRight(bannerArt, "\n")
	if art == "" {
		return ""
	}
	rows := strings.Split(art, "\n")

	blockW := 0
	for _, r := range rows {
		blockW = max(blockW, runewidth.StringWidth(r))
	}
	for i, r := range rows {
		rows[i] = BannerStyle.Render(runewidth.FillRight(r, blockW))
	}

	block := strings.Join(rows, "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block) + "\n"
}

// TermWidth reports the stdout column count.
func TermWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}

// IsInteractive reports whether the forms and the dialog can take over the
// terminal.
func IsInteractive() bool {
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}
