// Package main provides the CLI entrypoint for launchdash.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/launchdash/internal/charts"
	"github.com/verte-zerg/launchdash/internal/config"
	"github.com/verte-zerg/launchdash/internal/dashboard"
	"github.com/verte-zerg/launchdash/internal/dataset"
	"github.com/verte-zerg/launchdash/internal/logging"
	"github.com/verte-zerg/launchdash/internal/model"
	"github.com/verte-zerg/launchdash/internal/render"
	"github.com/verte-zerg/launchdash/internal/ui"
)

const (
	defaultStep       = ui.DefaultStep
	defaultPlotHeight = 10
	defaultShowWidth  = 0
	defaultExportDir  = "."
)

var (
	dataPath     string
	logFile      string
	verbose      bool
	successColor string
	failureColor string
	plotHeight   int

	dashSite string
	dashStep float64

	showSite  string
	showMin   float64
	showMax   float64
	showWidth int
	showColor bool

	exportOut  string
	exportSite string
	exportMin  float64
	exportMax  float64

	logger = zap.NewNop()
)

// settings is the merged flag and config state shared by all data commands.
type settings struct {
	DataPath     string
	Step         float64
	PlotHeight   int
	SuccessColor string
	FailureColor string
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "launchdash",
		Short:         "SpaceX launch records dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataPath, "data", "", "launch records CSV or SQLite file (default: ./"+config.DefaultDataFile+")")
	pf.StringVar(&logFile, "log-file", config.DefaultLogPath(), "log file path (empty disables logging)")
	pf.BoolVar(&verbose, "verbose", false, "log debug events")
	pf.StringVar(&successColor, "success-color", charts.DefaultSuccessColor, "site chart success colour")
	pf.StringVar(&failureColor, "failure-color", charts.DefaultFailureColor, "site chart failure colour")
	pf.IntVar(&plotHeight, "height", defaultPlotHeight, "scatter plot height in rows")

	rootCmd.Flags().StringVar(&dashSite, "site", "", "initial site selection (site name or 'All Sites')")
	rootCmd.Flags().Float64Var(&dashStep, "step", defaultStep, "payload range step in kg")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSitesCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "site", &dashSite, fileCfg.Dashboard.Site)
	applyFloatConfig(cmd, "step", &dashStep, fileCfg.Dashboard.RangeStep)

	cfg := currentSettings()
	cfg.Step = dashStep
	if err := validateSettings(cfg); err != nil {
		return err
	}
	defer syncLogger()

	ds, err := loadDataset(cfg)
	if err != nil {
		return err
	}
	engine := newEngine(ds, cfg)
	if dashSite != "" {
		engine.SetSite(resolveSelection(ds, dashSite))
	}

	m := ui.NewModel(engine, ui.Options{
		Step:       cfg.Step,
		PlotHeight: cfg.PlotHeight,
		Color:      true,
		Logger:     logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newSitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List launch sites in the dataset",
		Args:  cobra.NoArgs,
		RunE:  runSitesCmd,
	}
}

func runSitesCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadSettings(cmd); err != nil {
		return err
	}
	cfg := currentSettings()
	if err := validateSettings(cfg); err != nil {
		return err
	}
	defer syncLogger()

	ds, err := loadDataset(cfg)
	if err != nil {
		return err
	}
	for _, site := range ds.Sites() {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), site); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print both charts once",
		Args:  cobra.NoArgs,
		RunE:  runShowCmd,
	}
	cmd.Flags().StringVar(&showSite, "site", "", "site name or 'All Sites'")
	cmd.Flags().Float64Var(&showMin, "min", 0, "payload range minimum in kg (default: dataset minimum)")
	cmd.Flags().Float64Var(&showMax, "max", 0, "payload range maximum in kg (default: dataset maximum)")
	cmd.Flags().IntVar(&showWidth, "width", defaultShowWidth, "output width (default: terminal width)")
	cmd.Flags().BoolVar(&showColor, "color", false, "force ANSI colour output")
	return cmd
}

func runShowCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "site", &showSite, fileCfg.Dashboard.Site)
	cfg := currentSettings()
	if err := validateSettings(cfg); err != nil {
		return err
	}
	if showWidth < 0 {
		return fmt.Errorf("--width must be >= 0")
	}
	defer syncLogger()

	ds, err := loadDataset(cfg)
	if err != nil {
		return err
	}
	engine, err := filteredEngine(cmd, ds, cfg, showSite, showMin, showMax)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := render.Options{Width: showWidth, Height: cfg.PlotHeight, Color: showColor}
	for i, name := range []string{dashboard.ChartProportion, dashboard.ChartCorrelation} {
		spec, _ := engine.Chart(name)
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if err := render.Chart(out, spec, opts); err != nil {
			return fmt.Errorf("failed to render %s chart: %w", name, err)
		}
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write both charts as PNG images",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportOut, "out", defaultExportDir, "output directory")
	cmd.Flags().StringVar(&exportSite, "site", "", "site name or 'All Sites'")
	cmd.Flags().Float64Var(&exportMin, "min", 0, "payload range minimum in kg (default: dataset minimum)")
	cmd.Flags().Float64Var(&exportMax, "max", 0, "payload range maximum in kg (default: dataset maximum)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "site", &exportSite, fileCfg.Dashboard.Site)
	cfg := currentSettings()
	if err := validateSettings(cfg); err != nil {
		return err
	}
	if strings.TrimSpace(exportOut) == "" {
		return fmt.Errorf("--out must not be empty")
	}
	defer syncLogger()

	ds, err := loadDataset(cfg)
	if err != nil {
		return err
	}
	engine, err := filteredEngine(cmd, ds, cfg, exportSite, exportMin, exportMax)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(exportOut, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	written := 0
	for _, name := range []string{dashboard.ChartProportion, dashboard.ChartCorrelation} {
		spec, _ := engine.Chart(name)
		path := filepath.Join(exportOut, name+".png")
		err := writePNG(path, spec)
		switch {
		case errors.Is(err, render.ErrPlaceholder):
			logErrf("Skipping %s: %s\n", name, spec.Message)
			continue
		case errors.Is(err, render.ErrNoPoints):
			logErrf("Skipping %s: nothing visible in the payload range\n", name)
			continue
		case err != nil:
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Info("chart exported", zap.String("chart", name), zap.String("path", path))
		logErrf("Wrote %s\n", path)
		written++
	}
	if written == 0 {
		return fmt.Errorf("nothing to export (select a site with --site)")
	}
	return nil
}

func writePNG(path string, spec model.ChartSpec) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "chart-*.png")
	if err != nil {
		return fmt.Errorf("failed to create temp image: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := render.PNG(tmpFile, spec, 0, 0); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close image: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

// loadSettings reads the config file, merges it into the shared flags and
// starts the logger.
func loadSettings(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	d := fileCfg.Dashboard
	applyStringConfig(cmd, "data", &dataPath, d.Data)
	applyStringConfig(cmd, "log-file", &logFile, d.LogFile)
	applyBoolConfig(cmd, "verbose", &verbose, d.Verbose)
	applyStringConfig(cmd, "success-color", &successColor, d.SuccessColor)
	applyStringConfig(cmd, "failure-color", &failureColor, d.FailureColor)
	applyIntConfig(cmd, "height", &plotHeight, d.PlotHeight)

	l, err := logging.New(logging.Options{Path: logFile, Verbose: verbose})
	if err != nil {
		return config.FileConfig{}, err
	}
	logger = l.Named("cli")
	return fileCfg, nil
}

func currentSettings() settings {
	path := dataPath
	if path == "" {
		path = config.DefaultDataPath()
	}
	return settings{
		DataPath:     path,
		Step:         defaultStep,
		PlotHeight:   plotHeight,
		SuccessColor: successColor,
		FailureColor: failureColor,
	}
}

func validateSettings(cfg settings) error {
	if strings.TrimSpace(cfg.DataPath) == "" {
		return fmt.Errorf("--data must not be empty")
	}
	if cfg.Step <= 0 {
		return fmt.Errorf("--step must be > 0")
	}
	if cfg.PlotHeight <= 0 {
		return fmt.Errorf("--height must be > 0")
	}
	if _, err := colorful.Hex(cfg.SuccessColor); err != nil {
		return fmt.Errorf("--success-color must be a #RRGGBB colour: %q", cfg.SuccessColor)
	}
	if _, err := colorful.Hex(cfg.FailureColor); err != nil {
		return fmt.Errorf("--failure-color must be a #RRGGBB colour: %q", cfg.FailureColor)
	}
	return nil
}

func loadDataset(cfg settings) (*dataset.Dataset, error) {
	ds, err := dataset.Load(cfg.DataPath)
	if err != nil {
		logger.Error("dataset load failed", zap.String("source", cfg.DataPath), zap.Error(err))
		return nil, err
	}
	logger.Info("dataset loaded",
		zap.String("source", cfg.DataPath),
		zap.Int("records", ds.Len()),
		zap.Int("sites", len(ds.Sites())))
	return ds, nil
}

func newEngine(ds *dataset.Dataset, cfg settings) *dashboard.Engine {
	return dashboard.New(ds,
		dashboard.WithLogger(logger),
		dashboard.WithColors(charts.Colors{Success: cfg.SuccessColor, Failure: cfg.FailureColor}),
	)
}

// filteredEngine builds an engine and applies the one-shot --site, --min and
// --max flags of show and export.
func filteredEngine(cmd *cobra.Command, ds *dataset.Dataset, cfg settings, site string, minVal, maxVal float64) (*dashboard.Engine, error) {
	engine := newEngine(ds, cfg)
	if site != "" {
		engine.SetSite(resolveSelection(ds, site))
	}
	r, err := resolvePayloadRange(engine.Bounds(), minVal, maxVal, cmd.Flags().Changed("min"), cmd.Flags().Changed("max"))
	if err != nil {
		return nil, err
	}
	if err := engine.SetRange(r); err != nil {
		return nil, err
	}
	return engine, nil
}

// resolveSelection parses a site flag. Unknown sites are kept so the charts
// show their no-data placeholder, but the user is told about the typo.
func resolveSelection(ds *dataset.Dataset, text string) model.Selection {
	sel := model.ParseSelection(text)
	if sel.Mode == model.SelectionSite && !ds.HasSite(sel.Site) {
		logErrf("No launches recorded for site %q (known: %s)\n", sel.Site, strings.Join(ds.Sites(), ", "))
	}
	return sel
}

func resolvePayloadRange(bounds model.PayloadRange, minVal, maxVal float64, minSet, maxSet bool) (model.PayloadRange, error) {
	if !minSet {
		minVal = bounds.Min
	}
	if !maxSet {
		maxVal = bounds.Max
	}
	r, err := model.NewPayloadRange(minVal, maxVal)
	if err != nil {
		return model.PayloadRange{}, fmt.Errorf("invalid --min/--max: %w", err)
	}
	return r, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# launchdash configuration
# Uncomment a value to enable it. CLI flags override config values.

[dashboard]
# data = %q    # Launch records CSV or SQLite file
# site = "All Sites"                 # Initial site selection
# range-step = %.0f                  # Payload range step in kg
# plot-height = %d                   # Scatter plot height in rows
# success-color = %q           # Site chart success colour
# failure-color = %q           # Site chart failure colour
# log-file = %q
# verbose = false                    # Log debug events
`,
		config.DefaultDataFile,
		defaultStep,
		defaultPlotHeight,
		charts.DefaultSuccessColor,
		charts.DefaultFailureColor,
		config.DefaultLogPath(),
	)
}

func syncLogger() {
	if err := logger.Sync(); err != nil {
		// Best-effort flush of the log file.
		_ = err
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
