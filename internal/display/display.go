// Package display renders the guide and the troubleshooting dialog in the
// terminal: a lipgloss palette, a Bubble Tea dialog model, Markdown recipe
// cards rendered with glamour, and plain print helpers for line mode.
package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	// BannerStyle is muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// Chat is soft sky blue for prompts and questions.
	chatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	// Step is soft mint for step headers.
	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	// Primary text is light zinc for instructions.
	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	// Secondary text is dimmed zinc for hints and metadata.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	// Urgent is soft coral for errors.
	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true)

	solutionBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Foreground(lipgloss.Color("#bbf7d0")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))
)

// ── Printer ──────────────────────────────────────────────────────

// Printer writes styled lines for line mode and one-shot commands.
type Printer struct {
	w io.Writer
}

// NewPrinter returns a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Println prints a raw line.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Printf prints formatted text.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// PrintChat prints a question or prompt line.
func (p *Printer) PrintChat(text string) {
	p.Println(chatStyle.Render("  " + text))
}

// PrintStep prints a step header like "Step 2/3: Roast level".
func (p *Printer) PrintStep(text string) {
	p.Println(stepStyle.Render("  " + text))
}

// PrintInstruction prints main body text.
func (p *Printer) PrintInstruction(text string) {
	p.Println(primaryStyle.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (p *Printer) PrintHint(text string) {
	p.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints an error line.
func (p *Printer) PrintUrgent(text string) {
	p.Println(urgentOutputStyle.Render("  " + text))
}

// PrintOptions prints a 1-based numbered list.
func (p *Printer) PrintOptions(options []string) {
	for i, o := range options {
		p.Println(labelStyle.Render(fmt.Sprintf("  %2d) ", i+1)) + primaryStyle.Render(o))
	}
}

// PrintSolution prints a surfaced troubleshooting solution.
func (p *Printer) PrintSolution(a domain.Answer) {
	p.Println(solutionBox.Render(solutionText(a)))
}

// PrintGrinders prints one line per grinder: ID, display name and type.
func (p *Printer) PrintGrinders(grinders []domain.Grinder) {
	if len(grinders) == 0 {
		p.PrintHint("No grinders match.")
		return
	}
	idW, nameW := 0, 0
	for _, g := range grinders {
		idW = max(idW, runewidth.StringWidth(g.ID))
		nameW = max(nameW, runewidth.StringWidth(g.DisplayName()))
	}
	for _, g := range grinders {
		id := runewidth.FillRight(g.ID, idW)
		name := runewidth.FillRight(g.DisplayName(), nameW)
		p.Println("  " + labelStyle.Render(id) + "  " + primaryStyle.Render(name) + "  " + secondaryStyle.Render(string(g.Type)))
	}
}

func solutionText(a domain.Answer) string {
	text := a.Solution
	if a.Adjustment != "" {
		text += "\n" + secondaryStyle.Render("adjust: "+a.Adjustment.Label())
	}
	return text
}
