package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/preston-bernstein/nba-scoreboard/internal/view"
)

const (
	listHelp   = "↑/↓ move • enter open • ←/→ day • d date • r reload • t theme • q quit"
	detailHelp = "↑/↓ scroll • esc back • t theme • q quit"
	inputHelp  = "enter apply • esc cancel"
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	if m.screen == screenDetail {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(m.styles.help.Render(detailHelp))
		return b.String()
	}

	if m.editing {
		b.WriteString(m.styles.input.Render(m.input.View()))
		b.WriteString("\n")
	}
	if m.inputErr != nil {
		b.WriteString(m.styles.err.Render(m.inputErr.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.listBody())
	b.WriteString("\n")
	if m.editing {
		b.WriteString(m.styles.help.Render(inputHelp))
	} else {
		b.WriteString(m.styles.help.Render(listHelp))
	}
	return b.String()
}

func (m *Model) header() string {
	title := m.styles.title.Render("NBA Scoreboard")
	date := m.styles.text.Render(m.date)
	parts := []string{title, date}
	if m.poller != nil {
		parts = append(parts, m.styles.live.Render("● live"))
	}
	parts = append(parts, m.styles.muted.Render(m.theme))
	return strings.Join(parts, "  ")
}

// listBody renders the cards, or only the error when the fetch failed.
func (m *Model) listBody() string {
	switch {
	case m.err != nil:
		return m.styles.err.Render("Could not load games: "+m.err.Error()) + "\n" +
			m.styles.muted.Render("press r to retry")
	case m.loading && len(m.list) == 0:
		return m.styles.muted.Render("Loading games…")
	case len(m.list) == 0:
		return m.styles.muted.Render("No games scheduled for " + m.date)
	}

	now := m.deps.Now()
	lines := make([]string, 0, len(m.list))
	for i, g := range m.list {
		if g == nil {
			continue
		}
		card := view.NewCard(*g, now, m.deps.Location)
		line := m.cardLine(card)
		if card.Upcoming {
			if text := m.cardPredictionText(card); text != "" {
				line += "   " + text
			}
		}
		if i == m.cursor {
			line = m.styles.selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) cardLine(c view.Card) string {
	visitor := m.sideText(c.Visitor, c.ShowScores)
	home := m.sideText(c.Home, c.ShowScores)
	label := m.styles.muted.Render(c.Label)
	if c.Status.IsLive() {
		label = m.styles.live.Render(c.Label)
	}
	return fmt.Sprintf("%s  @  %s   %s", visitor, home, label)
}

// cardPredictionText is the win-probability suffix for an upcoming card.
func (m *Model) cardPredictionText(c view.Card) string {
	snap := m.cardPrediction(c.ID)
	switch {
	case snap.Value != nil:
		p := view.FormatPrediction(*snap.Value)
		return m.styles.muted.Render(fmt.Sprintf("%s %s • %s %s", c.Visitor.Name, p.Visitor, c.Home.Name, p.Home))
	case snap.Loading:
		return m.styles.muted.Render("win % …")
	default:
		return ""
	}
}

func (m *Model) sideText(s view.Side, scores bool) string {
	text := fmt.Sprintf("%-4s", s.Name)
	if scores {
		text += fmt.Sprintf(" %3s", s.Score)
	}
	switch {
	case s.Winner:
		return m.styles.winner.Render(text)
	case s.Dimmed:
		return m.styles.dimmed.Render(text)
	default:
		return m.styles.text.Render(text)
	}
}

func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.detailBody())
}

func (m *Model) detailBody() string {
	d := m.detail
	if d == nil {
		return ""
	}
	if d.loading {
		return m.styles.muted.Render("Loading game…")
	}
	if d.err != nil {
		return m.styles.err.Render("Could not load game: "+d.err.Error()) + "\n" +
			m.styles.muted.Render("press esc to go back")
	}

	detail := view.NewDetail(d.game, d.box, m.predicted.Value, m.deps.Now(), m.deps.Location)
	var b strings.Builder
	b.WriteString(m.styles.title.Render(detail.Header))
	b.WriteString("\n")
	b.WriteString(m.cardLine(detail.Card))
	b.WriteString("\n")
	if detail.ScoreLine != "" {
		b.WriteString(m.styles.text.Render(detail.ScoreLine))
	} else {
		b.WriteString(m.styles.muted.Render(detail.StatusText))
	}
	b.WriteString("\n")

	if detail.Card.Upcoming {
		b.WriteString("\n")
		b.WriteString(m.predictionLine(detail))
		b.WriteString("\n")
	}
	if len(detail.Periods) > 0 {
		b.WriteString("\n")
		b.WriteString(m.periodTable(detail))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.playerTable(detail.Card.Visitor.FullName, detail.Visitor))
	b.WriteString("\n\n")
	b.WriteString(m.playerTable(detail.Card.Home.FullName, detail.Home))
	return b.String()
}

func (m *Model) predictionLine(d view.Detail) string {
	switch {
	case d.Prediction != nil:
		return fmt.Sprintf("Win probability  %s %s  •  %s %s",
			d.Card.Visitor.Name, d.Prediction.Visitor, d.Card.Home.Name, d.Prediction.Home)
	case m.predicted.Loading:
		return m.styles.muted.Render("Win probability loading…")
	default:
		return m.styles.muted.Render("Win probability unavailable")
	}
}

func (m *Model) periodTable(d view.Detail) string {
	head := []string{fmt.Sprintf("%-5s", "")}
	visitor := []string{fmt.Sprintf("%-5s", d.Card.Visitor.Name)}
	home := []string{fmt.Sprintf("%-5s", d.Card.Home.Name)}
	for _, p := range d.Periods {
		head = append(head, fmt.Sprintf("%4s", p.Name))
		visitor = append(visitor, fmt.Sprintf("%4s", p.Visitor))
		home = append(home, fmt.Sprintf("%4s", p.Home))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.muted.Render(strings.Join(head, "")),
		m.styles.text.Render(strings.Join(visitor, "")),
		m.styles.text.Render(strings.Join(home, "")),
	)
}

func (m *Model) playerTable(team string, rows []view.PlayerRow) string {
	lines := []string{
		m.styles.title.Render(team),
		m.styles.muted.Render(fmt.Sprintf("%-20s %5s %4s %4s %4s %7s %6s", "PLAYER", "MIN", "PTS", "REB", "AST", "FG", "FG%")),
	}
	if len(rows) == 0 {
		lines = append(lines, m.styles.muted.Render("No player stats"))
	}
	for _, r := range rows {
		lines = append(lines, m.styles.text.Render(fmt.Sprintf("%-20s %5s %4s %4s %4s %7s %6s",
			r.Name, r.Min, r.Pts, r.Reb, r.Ast, r.FG, r.FGPct)))
	}
	return strings.Join(lines, "\n")
}
