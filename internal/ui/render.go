package ui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/fitlife/internal/display"
	"github.com/verte-zerg/fitlife/internal/format"
	"github.com/verte-zerg/fitlife/internal/model"
	"github.com/verte-zerg/fitlife/internal/nav"
	"github.com/verte-zerg/fitlife/internal/stats"
	"github.com/verte-zerg/fitlife/internal/validate"
)

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(Links))
	for _, link := range Links {
		if nav.IsCurrent(link.Href, m.path) {
			parts = append(parts, activeNavStyle.Render(link.Title))
		} else {
			parts = append(parts, inactiveNavStyle.Render(link.Title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderBody() string {
	switch m.activeTab {
	case tabHistory:
		return m.renderHistory()
	case tabLog:
		return m.weightForm.view(m.editing, m.spinner)
	case tabCalculators:
		out := m.bmiForm.view(m.editing, m.spinner)
		if m.bmiResult != "" {
			out += "\n\n" + cardValueStyle.Render(m.bmiResult)
			if tips := format.Tooltip(m.bmiResult); len(tips) > 0 {
				out += "  " + tooltipStyle.Render(strings.Join(tips, " · "))
			}
		}
		return out
	default:
		return m.renderProgress()
	}
}

func (m *Model) renderProgress() string {
	cards := []string{
		m.slotCard("Peso atual", display.SlotCurrentWeight, " kg"),
		m.slotCard("Peso perdido", display.SlotWeightLost, " kg"),
		m.slotCard("Peso restante", display.SlotWeightRemaining, " kg"),
		m.slotCard("Concluído", display.SlotPercentComplete, "%"),
	}
	var row string
	if m.width > 0 && m.width < 80 {
		row = strings.Join(cards, "\n")
	} else {
		row = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	lines := []string{row, ""}
	if pct, ok := m.surface.Value(display.SlotProgressBar); ok {
		lines = append(lines, m.bar.ViewAs(validate.Clamp(pct, 0, 100)/100))
	} else {
		lines = append(lines, headerStyle.Render("Sem progresso registrado."))
	}
	if m.hasSnap {
		if m.snap.GoalReached != nil && *m.snap.GoalReached {
			lines = append(lines, "", statusStyle.Render("Meta atingida!"))
		} else if est := m.snap.TimeEstimate; est != nil {
			lines = append(lines, "", fmt.Sprintf("Previsão da meta: %s (~%s semanas)",
				format.Date(est.EstimatedDate), format.Number(est.Weeks, 1)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) slotCard(label string, slot display.Slot, unit string) string {
	v, ok := m.surface.Value(slot)
	return metricCard(label, format.Optional(v, ok, 1, unit))
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func (m *Model) renderHistory() string {
	if len(m.report.Entries) == 0 {
		return "Nenhum registro de peso."
	}
	s := m.report.Summary
	summary := headerStyle.Render(fmt.Sprintf("Registros: %d  Inicial: %s kg  Atual: %s kg  Variação: %+.1f kg",
		s.Entries, format.Number(s.First, 1), format.Number(s.Latest, 1), s.Change))
	return strings.Join([]string{
		summary,
		tableMutedStyle.Render(m.history.View()),
		m.chart.View(),
	}, "\n")
}

func (m *Model) renderChart() {
	if len(m.report.Entries) == 0 {
		m.chart.SetContent("")
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	var buf bytes.Buffer
	height := max(3, m.chart.Height-1)
	if err := stats.PlotWeights(&buf, "Tendência", m.report.Trend, stats.PlotWidthFor(width), height); err != nil {
		m.chart.SetContent(fmt.Sprintf("Falha ao desenhar gráfico: %v", err))
		return
	}
	m.chart.SetContent(strings.TrimRight(buf.String(), "\n"))
}

func (m *Model) renderFooter() string {
	help := "Nav: left/right  Editar: enter  Atualizar: r  Sair: q"
	if m.editing {
		help = "Campos: tab/shift+tab  Enviar: enter  Voltar: esc"
	}
	lines := []string{headerStyle.Render(help)}
	switch {
	case m.formErr != "":
		lines = append(lines, errorStyle.Render(m.formErr))
	case m.status != "":
		lines = append(lines, statusStyle.Render(m.status))
	case m.refreshErr != "":
		lines = append(lines, headerStyle.Render(m.refreshErr))
	}
	return strings.Join(lines, "\n")
}

func buildHistoryTable(entries []model.WeightEntry, width, height int) table.Model {
	t := table.New(
		table.WithColumns(historyColumns()),
		table.WithRows(historyRows(entries)),
		table.WithHeight(max(1, height)),
	)
	if width > 0 {
		t.SetWidth(width)
	}
	t.SetStyles(historyTableStyles())
	return t
}

func historyColumns() []table.Column {
	headers, _ := stats.HistoryRows(nil)
	widths := []int{12, 10, 10}
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		cols[i] = table.Column{Title: h, Width: widths[i]}
	}
	return cols
}

func historyRows(entries []model.WeightEntry) []table.Row {
	_, cells := stats.HistoryRows(entries)
	rows := make([]table.Row, 0, len(cells))
	for i := len(cells) - 1; i >= 0; i-- {
		rows = append(rows, table.Row(cells[i]))
	}
	return rows
}

func historyTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
