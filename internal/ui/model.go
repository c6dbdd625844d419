// Package ui provides the Bubble Tea dashboard.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/fitlife/internal/display"
	"github.com/verte-zerg/fitlife/internal/format"
	"github.com/verte-zerg/fitlife/internal/model"
	"github.com/verte-zerg/fitlife/internal/nav"
	"github.com/verte-zerg/fitlife/internal/refresh"
	"github.com/verte-zerg/fitlife/internal/stats"
	"github.com/verte-zerg/fitlife/internal/submit"
	"github.com/verte-zerg/fitlife/internal/validate"
)

const (
	tabProgress = iota
	tabHistory
	tabLog
	tabCalculators
)

const (
	fieldWeight = "peso"
	fieldDate   = "data"
	fieldHeight = "altura"

	trendWindow    = 3
	defaultTimeout = 10 * time.Second
)

// Links are the dashboard tabs, keyed by the page path they replace.
var Links = []nav.Link{
	{Title: "Progresso", Href: "/", Anchor: "progress"},
	{Title: "Histórico", Href: "/progress", Anchor: "history"},
	{Title: "Registrar", Href: "/add-weight", Anchor: "log"},
	{Title: "Calculadoras", Href: "/calculators", Anchor: "calculators"},
}

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#3FA34D"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3FA34D"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	titleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	invalidStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	tooltipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Italic(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	buttonStyle     = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Background(lipgloss.Color("#3FA34D")).
			Padding(0, 2)
	busyButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B0B0B0")).
			Background(lipgloss.Color("#4A4A4A")).
			Padding(0, 2)
)

// Backend is the part of the API client the dashboard talks to.
type Backend interface {
	refresh.ProgressSource
	stats.HistorySource
	AddWeight(ctx context.Context, in model.WeightInput) (model.Ack, error)
}

// Options configures the dashboard.
type Options struct {
	RefreshInterval time.Duration
	RequestTimeout  time.Duration
	// Open selects the initial tab by path ("/progress") or anchor ("#history").
	Open        string
	Coordinator *submit.Coordinator
	Logger      logrus.FieldLogger
}

type progressMsg struct {
	snap model.ProgressSnapshot
	err  error
}

type historyMsg struct {
	entries []model.WeightEntry
}

type tickMsg struct{}

type submitResultMsg struct {
	ack model.Ack
	err error
}

type buttonRevertMsg struct{}

// Model implements the Bubble Tea dashboard.
type Model struct {
	backend   Backend
	refresher *refresh.Refresher
	surface   *display.Memory
	coord     *submit.Coordinator
	log       logrus.FieldLogger

	interval time.Duration
	timeout  time.Duration

	path      string
	activeTab int

	snap       model.ProgressSnapshot
	hasSnap    bool
	refreshErr string

	report  stats.Report
	history table.Model
	chart   viewport.Model

	weightForm *form
	bmiForm    *form
	editing    bool
	formErr    string
	status     string
	bmiResult  string

	bar     progress.Model
	spinner spinner.Model

	width  int
	height int
}

// NewModel constructs the dashboard model.
func NewModel(backend Backend, opts Options) *Model {
	coord := opts.Coordinator
	if coord == nil {
		coord = submit.NewCoordinator(nil)
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	interval := opts.RefreshInterval
	if interval <= 0 {
		interval = refresh.DefaultInterval
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	surface := display.NewMemory()
	m := &Model{
		backend:  backend,
		surface:  surface,
		coord:    coord,
		log:      log,
		interval: interval,
		timeout:  timeout,
		path:     Links[tabProgress].Href,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		chart:    viewport.New(0, 0),
	}
	m.refresher = refresh.New(backend, surface, refresh.WithLogger(log))
	m.weightForm = newForm("Registrar peso", coord.NewButton("Registrar"),
		newField(fieldWeight, "Peso (kg)", "75.5", true, ptr(validate.WeightInput())),
		newField(fieldDate, "Data", "AAAA-MM-DD", false, nil),
	)
	m.bmiForm = newForm("Calculadora de IMC", coord.NewButton("Calcular IMC"),
		newField(fieldWeight, "Peso (kg)", "75.5", true, ptr(validate.WeightInput())),
		newField(fieldHeight, "Altura (m)", "1.75", true, ptr(validate.HeightInput())),
	)
	m.history = buildHistoryTable(nil, 0, 1)
	if opts.Open != "" {
		m.open(opts.Open)
	}
	return m
}

func ptr[T any](v T) *T {
	return &v
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.historyCmd(), m.scheduleTick())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tickMsg:
		return m, tea.Batch(m.refreshCmd(), m.scheduleTick())
	case progressMsg:
		if msg.err != nil {
			m.refreshErr = "Falha ao atualizar progresso."
			return m, nil
		}
		m.refreshErr = ""
		m.snap = msg.snap
		m.hasSnap = true
		return m, nil
	case historyMsg:
		m.applyHistory(msg.entries)
		return m, nil
	case submitResultMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Error("failed to add weight")
			m.formErr = fmt.Sprintf("Erro ao registrar peso: %v", msg.err)
			return m, nil
		}
		m.formErr = ""
		m.status = msg.ack.Message
		if m.status == "" {
			m.status = "Peso registrado com sucesso!"
		}
		m.weightForm.reset()
		return m, tea.Batch(m.refreshCmd(), m.historyCmd())
	case buttonRevertMsg:
		return m, nil
	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		if b, ok := bar.(progress.Model); ok {
			m.bar = b
		}
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.editing {
			return m.updateForm(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "1", "2", "3", "4":
			m.selectTab(int(msg.Runes[0] - '1'))
			return m, tea.ClearScreen
		case "r":
			return m, tea.Batch(m.refreshCmd(), m.historyCmd())
		case "enter":
			if f := m.activeForm(); f != nil {
				m.editing = true
				m.formErr = ""
				m.status = ""
				return m, f.setFocus(0)
			}
			return m, nil
		}
		if m.activeTab == tabHistory {
			var cmd tea.Cmd
			m.history, cmd = m.history.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// Surface exposes the display slots written by progress refreshes.
func (m *Model) Surface() *display.Memory {
	return m.surface
}

func (m *Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		snap, err := m.refresher.Refresh(ctx)
		return progressMsg{snap: snap, err: err}
	}
}

func (m *Model) historyCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return historyMsg{entries: m.backend.FetchWeightHistory(ctx)}
	}
}

func (m *Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *Model) addWeightCmd(in model.WeightInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		ack, err := m.backend.AddWeight(ctx, in)
		return submitResultMsg{ack: ack, err: err}
	}
}

func revertCmd() tea.Cmd {
	return tea.Tick(submit.ButtonRevert+50*time.Millisecond, func(time.Time) tea.Msg {
		return buttonRevertMsg{}
	})
}

func (m *Model) open(href string) {
	if idx := nav.Resolve(Links, href); idx >= 0 {
		m.selectTab(idx)
	}
}

func (m *Model) selectTab(idx int) {
	if idx < 0 || idx >= len(Links) {
		return
	}
	m.activeTab = idx
	m.path = Links[idx].Href
	if m.activeTab == tabHistory {
		m.history.Focus()
	} else {
		m.history.Blur()
	}
}

func (m *Model) moveTab(delta int) {
	count := len(Links)
	next := nav.Current(Links, m.path) + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.selectTab(next)
}

func (m *Model) activeForm() *form {
	switch m.activeTab {
	case tabLog:
		return m.weightForm
	case tabCalculators:
		return m.bmiForm
	default:
		return nil
	}
}

func (m *Model) busy() bool {
	return m.weightForm.button.Disabled() || m.bmiForm.button.Disabled()
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.activeForm()
	if f == nil {
		m.editing = false
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		f.blur()
		m.editing = false
		return m, nil
	case tea.KeyEnter:
		return m, m.submit(f)
	case tea.KeyTab, tea.KeyDown:
		return m, f.setFocus(f.focus + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return m, f.setFocus(f.focus - 1)
	}
	return m, f.update(msg)
}

// submit runs a form submission: clamp, required-field check, guard, then
// the form's action.
func (m *Model) submit(f *form) tea.Cmd {
	f.commitAll()
	m.status = ""
	if !f.validate() {
		m.formErr = "Preencha os campos obrigatórios."
		return nil
	}
	m.formErr = ""
	if !m.coord.Submit(f.button) {
		m.status = "Envio em andamento, aguarde."
		return tea.Batch(m.spinner.Tick, revertCmd())
	}
	var action tea.Cmd
	switch f {
	case m.weightForm:
		action = m.submitWeight()
	case m.bmiForm:
		m.calculateBMI()
	}
	return tea.Batch(m.spinner.Tick, revertCmd(), action)
}

func (m *Model) submitWeight() tea.Cmd {
	weight, ok := m.weightForm.number(fieldWeight)
	if !ok || !validate.IsValidWeight(weight) {
		m.formErr = "Peso inválido."
		return nil
	}
	date, _ := m.weightForm.ReadField(fieldDate)
	return m.addWeightCmd(model.WeightInput{Weight: weight, Date: strings.TrimSpace(date)})
}

func (m *Model) calculateBMI() {
	weight, okWeight := m.bmiForm.number(fieldWeight)
	height, okHeight := m.bmiForm.number(fieldHeight)
	if !okWeight || !okHeight || !validate.IsValidWeight(weight) || !validate.IsValidHeight(height) {
		m.formErr = "Valores fora dos limites."
		m.bmiResult = ""
		return
	}
	m.bmiResult = "IMC: " + format.Number(validate.CalculateBMI(weight, height), format.DefaultDecimals)
}

func (m *Model) applyHistory(entries []model.WeightEntry) {
	m.report = stats.Report{
		Entries: entries,
		Summary: stats.Summarize(entries),
		Trend:   stats.MovingAverage(stats.Weights(entries), trendWindow),
	}
	m.history.SetRows(historyRows(entries))
	m.renderChart()
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = lipgloss.Height(activeNavStyle.Render("X"))
	footerHeight = 1
	if m.formErr != "" || m.status != "" || m.refreshErr != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.bar.Width = max(10, min(60, m.width-4))
	tableHeight := max(3, bodyHeight/2)
	m.history.SetWidth(m.width)
	m.history.SetHeight(tableHeight)
	m.chart.Width = m.width
	m.chart.Height = max(1, bodyHeight-tableHeight-1)
	for _, f := range []*form{m.weightForm, m.bmiForm} {
		for i := range f.fields {
			f.fields[i].input.Width = max(10, min(30, m.width-lipgloss.Width(f.fields[i].input.Prompt)-4))
		}
	}
	m.renderChart()
}
