package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/verte-zerg/launchdash/internal/charts"
	"github.com/verte-zerg/launchdash/internal/dashboard"
	"github.com/verte-zerg/launchdash/internal/dataset"
	"github.com/verte-zerg/launchdash/internal/model"
)

func newTestModel(t *testing.T, step float64) (*Model, *dashboard.Engine) {
	t.Helper()
	ds, err := dataset.New([]model.Record{
		{Site: "A", PayloadMass: 500, Success: true, BoosterCategory: "v1.0"},
		{Site: "A", PayloadMass: 900, Success: false, BoosterCategory: "FT"},
		{Site: "B", PayloadMass: 300, Success: true, BoosterCategory: "v1.0"},
	})
	require.NoError(t, err)
	logger := zaptest.NewLogger(t)
	engine := dashboard.New(ds, dashboard.WithLogger(logger))
	m := NewModel(engine, Options{Step: step, Logger: logger})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, engine
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialViewShowsPrompt(t *testing.T) {
	m, _ := newTestModel(t, 100)
	view := m.View()
	assert.Contains(t, view, appTitle)
	assert.Contains(t, view, "Site: none")
	assert.Contains(t, m.rendered[dashboard.ChartProportion], charts.PromptMessage)
	assert.Contains(t, m.rendered[dashboard.ChartCorrelation], charts.PromptMessage)
}

func TestSelectSiteRendersBothCharts(t *testing.T) {
	m, engine := newTestModel(t, 100)
	pie := m.renders[dashboard.ChartProportion]
	scatter := m.renders[dashboard.ChartCorrelation]

	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, model.AllSites(), engine.State().Site)
	assert.Equal(t, pie+1, m.renders[dashboard.ChartProportion])
	assert.Equal(t, scatter+1, m.renders[dashboard.ChartCorrelation])
	assert.Contains(t, m.rendered[dashboard.ChartProportion], charts.AllSitesPieTitle)
	assert.Contains(t, m.View(), "Site: All Sites")
}

func TestSelectSpecificSiteAndClear(t *testing.T) {
	m, engine := newTestModel(t, 100)

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, model.SiteSelection("A"), engine.State().Site)
	assert.Contains(t, m.rendered[dashboard.ChartProportion], charts.SitePieTitle("A"))

	press(m, runeKey("x"))
	assert.Equal(t, model.Unset(), engine.State().Site)
	assert.Contains(t, m.rendered[dashboard.ChartProportion], charts.PromptMessage)
}

func TestRangeKeysRerenderOnlyCorrelation(t *testing.T) {
	m, engine := newTestModel(t, 100)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	pie := m.renders[dashboard.ChartProportion]
	scatter := m.renders[dashboard.ChartCorrelation]

	press(m, runeKey("]"))
	assert.Equal(t, model.PayloadRange{Min: 400, Max: 900}, engine.State().Payload)
	press(m, runeKey("-"))
	assert.Equal(t, model.PayloadRange{Min: 400, Max: 800}, engine.State().Payload)

	assert.Equal(t, pie, m.renders[dashboard.ChartProportion])
	assert.Equal(t, scatter+2, m.renders[dashboard.ChartCorrelation])
	assert.Contains(t, m.View(), "Payload: 400-800 kg")

	press(m, runeKey("r"))
	assert.Equal(t, engine.Bounds(), engine.State().Payload)
	assert.Equal(t, scatter+3, m.renders[dashboard.ChartCorrelation])
}

func TestRangeKeysStayWithinBounds(t *testing.T) {
	m, engine := newTestModel(t, 100)
	scatter := m.renders[dashboard.ChartCorrelation]

	press(m, runeKey("["))
	press(m, runeKey("="))
	assert.Equal(t, model.PayloadRange{Min: 300, Max: 900}, engine.State().Payload)
	assert.Equal(t, scatter, m.renders[dashboard.ChartCorrelation])
}

func TestMinDoesNotPassMax(t *testing.T) {
	m, engine := newTestModel(t, 1000)

	press(m, runeKey("]"))
	assert.Equal(t, model.PayloadRange{Min: 900, Max: 900}, engine.State().Payload)
	press(m, runeKey("-"))
	assert.Equal(t, model.PayloadRange{Min: 900, Max: 900}, engine.State().Payload)
}

func TestDefaultStep(t *testing.T) {
	m, _ := newTestModel(t, 0)
	assert.Equal(t, DefaultStep, m.opts.Step)
}

func TestHelpToggleAndQuit(t *testing.T) {
	m, _ := newTestModel(t, 100)

	press(m, runeKey("?"))
	assert.True(t, m.help.ShowAll)
	press(m, runeKey("?"))
	assert.False(t, m.help.ShowAll)

	cmd := press(m, runeKey("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestTruncateLine(t *testing.T) {
	assert.Equal(t, "abc", truncateLine("abc", 5))
	assert.Equal(t, "ab...", truncateLine("abcdefgh", 5))
	assert.Equal(t, "ab", truncateLine("abcdefgh", 2))
	assert.Equal(t, "發...", truncateLine("發射場發射場", 5))
}

func TestFitLines(t *testing.T) {
	assert.Equal(t, "ab \n   ", fitLines("ab", 3, 2))
	assert.Equal(t, "a  ", fitLines("a\nb\nc", 3, 1))
	assert.Equal(t, "a  \nb  ", fitLines("a\nb\nc", 3, 2))
}

func TestPadLinesIgnoresStyling(t *testing.T) {
	styled := "\x1b[1mab\x1b[0m"
	assert.Equal(t, styled+"  \ncd  ", padLines(styled+"\ncd", 4))
}
