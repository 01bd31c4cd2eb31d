// Package render draws scorecards for the terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AlexanderWinters/the-score-card/internal/scoring"
)

const cellWidth = 5

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	labelStyle  = lipgloss.NewStyle().Width(8).Foreground(lipgloss.Color("#8C8C8C"))
	cellStyle   = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	totalStyle  = cellStyle.Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Padding(0, 1)

	scoreStyles = map[scoring.ScoreType]lipgloss.Style{
		scoring.ScoreEagleOrBetter:      cellStyle.Foreground(lipgloss.Color("#C89A3A")).Bold(true),
		scoring.ScoreBirdie:             cellStyle.Foreground(lipgloss.Color("#FF4D4F")),
		scoring.ScorePar:                cellStyle.Foreground(lipgloss.Color("#F0F0F0")),
		scoring.ScoreBogey:              cellStyle.Foreground(lipgloss.Color("#5B8DEF")),
		scoring.ScoreDoubleBogeyOrWorse: cellStyle.Foreground(lipgloss.Color("#2F54EB")).Bold(true),
	}
)

// Marker wraps a score the way paper cards do: circles under par, squares over.
func Marker(score int, t scoring.ScoreType) string {
	if score == 0 {
		return "-"
	}
	s := strconv.Itoa(score)
	switch t {
	case scoring.ScoreEagleOrBetter:
		return "((" + s + "))"
	case scoring.ScoreBirdie:
		return "(" + s + ")"
	case scoring.ScoreBogey:
		return "[" + s + "]"
	case scoring.ScoreDoubleBogeyOrWorse:
		return "[[" + s + "]]"
	default:
		return s
	}
}

// Card renders the front nine, back nine and totals of card.
func Card(title string, card scoring.Card) string {
	front, back := split(card.Holes)

	var rows []string
	rows = append(rows, row("Hole", front, back, func(h scoring.HoleLine) string { return strconv.Itoa(h.Number) }, "Out", "In", "Tot", nil))
	rows = append(rows, row("Length", front, back, func(h scoring.HoleLine) string { return strconv.Itoa(h.Distance) }, sumCell(front, distance), sumCell(back, distance), strconv.Itoa(card.Totals.TotalDistance), nil))
	rows = append(rows, row("Par", front, back, func(h scoring.HoleLine) string { return strconv.Itoa(h.Par) }, sumCell(front, par), sumCell(back, par), strconv.Itoa(card.Totals.TotalPar), nil))
	rows = append(rows, row("Hcp", front, back, func(h scoring.HoleLine) string { return strconv.Itoa(h.HandicapIndex) }, "", "", "", &mutedStyle))
	rows = append(rows, scoreRow(front, back, card.Totals))
	rows = append(rows, row("Putts", front, back, func(h scoring.HoleLine) string { return blank(h.Putts) }, sumCell(front, putts), sumCell(back, putts), strconv.Itoa(card.Totals.Putts), nil))
	rows = append(rows, row("GIR", front, back, func(h scoring.HoleLine) string { return check(h.GIR) }, "", "", strconv.Itoa(card.Totals.GIRCount), nil))
	rows = append(rows, row("Fairway", front, back, func(h scoring.HoleLine) string { return check(h.Fairway) }, "", "", strconv.Itoa(card.Totals.FairwayCount), nil))

	t := card.Totals
	gross := scoring.FormatGross(t)
	if t.Gross > 0 {
		gross += " (" + scoring.FormatVsPar(t.VsPar) + ")"
	}
	footer := footerStyle.Render(fmt.Sprintf(
		"Gross %s   Net %d   Holes %d/%d   GIR %d%%   FIR %d%%",
		gross, t.NetTotal, t.CompletedHoles, scoring.Holes, t.GIRPercent, t.FairwayPercent,
	))
	if card.CurrentHole != nil {
		footer += "\n" + footerStyle.Render(fmt.Sprintf("Next up: hole %d, par %d, %d m", card.CurrentHole.Number, card.CurrentHole.Par, card.CurrentHole.Distance))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		"",
		strings.Join(rows, "\n"),
		"",
		footer,
	)
	return cardStyle.Render(body)
}

func split(lines []scoring.HoleLine) ([]scoring.HoleLine, []scoring.HoleLine) {
	if len(lines) <= 9 {
		return lines, nil
	}
	return lines[:9], lines[9:]
}

func row(label string, front, back []scoring.HoleLine, value func(scoring.HoleLine) string, out, in, total string, style *lipgloss.Style) string {
	cell := cellStyle
	if style != nil {
		cell = cellStyle.Inherit(*style)
	}
	parts := []string{labelStyle.Render(label)}
	for _, h := range front {
		parts = append(parts, cell.Render(value(h)))
	}
	parts = append(parts, totalStyle.Render(out))
	for _, h := range back {
		parts = append(parts, cell.Render(value(h)))
	}
	parts = append(parts, totalStyle.Render(in), totalStyle.Render(total))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func scoreRow(front, back []scoring.HoleLine, t scoring.Totals) string {
	render := func(h scoring.HoleLine) string {
		style, ok := scoreStyles[h.Type]
		if !ok {
			style = cellStyle
		}
		return style.Render(Marker(h.Score, h.Type))
	}
	parts := []string{labelStyle.Render("Score")}
	for _, h := range front {
		parts = append(parts, render(h))
	}
	parts = append(parts, totalStyle.Render(blank(sum(front, score))))
	for _, h := range back {
		parts = append(parts, render(h))
	}
	parts = append(parts, totalStyle.Render(blank(sum(back, score))), totalStyle.Render(scoring.FormatGross(t)))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func distance(h scoring.HoleLine) int { return h.Distance }
func par(h scoring.HoleLine) int      { return h.Par }
func putts(h scoring.HoleLine) int    { return h.Putts }
func score(h scoring.HoleLine) int    { return h.Score }

func sum(lines []scoring.HoleLine, field func(scoring.HoleLine) int) int {
	total := 0
	for _, h := range lines {
		total += field(h)
	}
	return total
}

func sumCell(lines []scoring.HoleLine, field func(scoring.HoleLine) int) string {
	if len(lines) == 0 {
		return ""
	}
	return strconv.Itoa(sum(lines, field))
}

func blank(v int) string {
	if v == 0 {
		return "-"
	}
	return strconv.Itoa(v)
}

func check(hit bool) string {
	if hit {
		return "✓"
	}
	return "·"
}
