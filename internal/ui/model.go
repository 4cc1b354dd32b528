// Package ui provides the Bubble Tea dashboard interface.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/launchdash/internal/dashboard"
	"github.com/verte-zerg/launchdash/internal/model"
	"github.com/verte-zerg/launchdash/internal/render"
)

const (
	// DefaultStep is the payload range step in kilograms.
	DefaultStep       = 500.0
	defaultPlotHeight = 10
	defaultWidth      = 80
	defaultHeight     = 24
	listWidthMax      = 28
	appTitle          = "SpaceX Launch Records Dashboard"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	paneStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	selectedStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Foreground(lipgloss.Color("#F0F0F0")).
			Padding(0, 0, 0, 1)
)

// Options configures the UI.
type Options struct {
	// Step moves a payload bound per key press. Zero means DefaultStep.
	Step       float64
	PlotHeight int
	Color      bool
	Logger     *zap.Logger
}

type siteItem struct {
	label string
	sel   model.Selection
}

func (i siteItem) Title() string       { return i.label }
func (i siteItem) Description() string { return "" }
func (i siteItem) FilterValue() string { return i.label }

// Model implements the Bubble Tea dashboard UI.
type Model struct {
	engine *dashboard.Engine
	logger *zap.Logger
	opts   Options

	sites    list.Model
	viewport viewport.Model
	help     help.Model

	order    []string
	rendered map[string]string
	renders  map[string]int
	errMsg   string

	width  int
	height int
}

// NewModel builds the UI and subscribes it to engine.
func NewModel(engine *dashboard.Engine, opts Options) *Model {
	if opts.Step <= 0 {
		opts.Step = DefaultStep
	}
	if opts.PlotHeight <= 0 {
		opts.PlotHeight = defaultPlotHeight
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		engine:   engine,
		logger:   logger.Named("ui"),
		opts:     opts,
		help:     help.New(),
		order:    []string{dashboard.ChartProportion, dashboard.ChartCorrelation},
		rendered: map[string]string{},
		renders:  map[string]int{},
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.initSites()
	m.viewport = viewport.New(0, 0)
	m.updateLayout()
	m.renderAll()
	engine.Subscribe(m.onChart)
	return m
}

func (m *Model) initSites() {
	items := []list.Item{siteItem{label: model.AllSitesLabel, sel: model.AllSites()}}
	for _, site := range m.engine.Sites() {
		items = append(items, siteItem{label: site, sel: model.SiteSelection(site)})
	}
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	d.Styles.SelectedTitle = selectedStyle

	l := list.New(items, d, listWidthMax, defaultHeight)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowTitle(false)
	current := m.engine.State().Site
	for i, item := range items {
		if item.(siteItem).sel == current {
			l.Select(i)
			break
		}
	}
	m.sites = l
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderAll()
		return m, nil
	case tea.KeyMsg:
		m.errMsg = ""
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.updateLayout()
			return m, nil
		case key.Matches(msg, keys.Select):
			if item, ok := m.sites.SelectedItem().(siteItem); ok {
				m.logger.Debug("site selected", zap.String("site", item.sel.String()))
				m.engine.SetSite(item.sel)
			}
			return m, nil
		case key.Matches(msg, keys.Clear):
			m.engine.SetSite(model.Unset())
			return m, nil
		case key.Matches(msg, keys.MinDown):
			m.moveMin(-m.opts.Step)
			return m, nil
		case key.Matches(msg, keys.MinUp):
			m.moveMin(m.opts.Step)
			return m, nil
		case key.Matches(msg, keys.MaxDown):
			m.moveMax(-m.opts.Step)
			return m, nil
		case key.Matches(msg, keys.MaxUp):
			m.moveMax(m.opts.Step)
			return m, nil
		case key.Matches(msg, keys.Reset):
			m.setRange(m.engine.Bounds())
			return m, nil
		case key.Matches(msg, keys.PageUp):
			m.viewport.ViewUp()
			return m, nil
		case key.Matches(msg, keys.PageDown):
			m.viewport.ViewDown()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.sites, cmd = m.sites.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	left := paneStyle.Render(fitLines(m.sites.View(), m.listWidth(), bodyHeight))
	right := fitLines(m.viewport.View(), m.viewport.Width, bodyHeight)
	body := fitLines(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// moveMin shifts the range minimum, keeping it within the bounds and at or
// below the maximum.
func (m *Model) moveMin(delta float64) {
	r := m.engine.State().Payload
	bounds := m.engine.Bounds()
	r.Min = clampFloat(r.Min+delta, bounds.Min, r.Max)
	m.setRange(r)
}

func (m *Model) moveMax(delta float64) {
	r := m.engine.State().Payload
	bounds := m.engine.Bounds()
	r.Max = clampFloat(r.Max+delta, r.Min, bounds.Max)
	m.setRange(r)
}

func (m *Model) setRange(r model.PayloadRange) {
	if err := m.engine.SetRange(r); err != nil {
		m.logger.Warn("range rejected", zap.Error(err))
		m.errMsg = err.Error()
	}
}

func (m *Model) onChart(name string, spec model.ChartSpec) {
	m.renderChart(name, spec)
	m.refreshContent()
}

func (m *Model) renderAll() {
	for _, name := range m.order {
		if spec, ok := m.engine.Chart(name); ok {
			m.renderChart(name, spec)
		}
	}
	m.refreshContent()
}

func (m *Model) renderChart(name string, spec model.ChartSpec) {
	m.rendered[name] = render.Text(spec, render.Options{
		Width:  m.viewport.Width,
		Height: m.opts.PlotHeight,
		Color:  m.opts.Color,
	})
	m.renders[name]++
}

func (m *Model) refreshContent() {
	parts := make([]string, 0, len(m.order))
	for _, name := range m.order {
		if text, ok := m.rendered[name]; ok {
			parts = append(parts, text)
		}
	}
	m.viewport.SetContent(strings.Join(parts, "\n\n"))
}

func (m *Model) listWidth() int {
	w := m.width / 3
	if w > listWidthMax {
		w = listWidthMax
	}
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = 2
	footerHeight = lipgloss.Height(m.help.View(keys))
	if m.errMsg != "" {
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
	listWidth := m.listWidth()
	m.sites.SetSize(listWidth, bodyHeight)
	m.help.Width = m.width
	vpWidth := m.width - listWidth - 2
	if vpWidth < 1 {
		vpWidth = 1
	}
	m.viewport.Width = vpWidth
	m.viewport.Height = bodyHeight
}

func (m *Model) renderHeader() string {
	title := padLines(titleStyle.Render(appTitle), m.width)
	return title + "\n" + padLines(m.renderFilterSummary(), m.width)
}

func (m *Model) renderFilterSummary() string {
	st := m.engine.State()
	site := st.Site.String()
	if !st.Site.IsSet() {
		site = "none"
	}
	bounds := m.engine.Bounds()
	summary := fmt.Sprintf("Site: %s  Payload: %.0f-%.0f kg (of %.0f-%.0f)  Step: %.0f",
		site, st.Payload.Min, st.Payload.Max, bounds.Min, bounds.Max, m.opts.Step)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	helpView := m.help.View(keys)
	if m.errMsg != "" {
		return helpView + "\n" + errorStyle.Render(m.errMsg)
	}
	return helpView
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
