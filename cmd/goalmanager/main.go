package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"goalmanager/internal/config"
	"goalmanager/internal/debug"
	"goalmanager/internal/goals"
	"goalmanager/internal/telemetry"
	"goalmanager/internal/ui"
	"goalmanager/internal/ui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	openTimeout     = 5 * time.Second
	shutdownTimeout = 3 * time.Second
)

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	versionFlag := flag.Bool("version", false, "Print version information and exit")
	dbPathFlag := flag.String("db-path", config.GetString(config.KeyDatabasePath), "Path to the goal database file")
	themeFlag := flag.String("theme", config.GetString(config.KeyTheme), "Color theme ("+strings.Join(theme.Available(), ", ")+")")
	outputFormatFlag := flag.String("output-format", config.GetString(config.KeyOutputFormat), "Goal detail markdown style (rich, light, plain)")
	singleSubmitFlag := flag.Bool("single-submit", config.GetBool(config.KeySingleSubmit), "Ignore Create Goal while a create call is running")
	debugFlag := flag.Bool("debug", config.GetBool(config.KeyDebug), "Write a debug log to ~/.goalmanager/debug.log")
	flag.Parse()

	if *versionFlag {
		printVersion()
		os.Exit(0)
	}

	visited := map[string]struct{}{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = struct{}{}
	})

	overrides := collectOverrides(runtimeFlags{
		dbPath:       dbPathFlag,
		theme:        themeFlag,
		outputFormat: outputFormatFlag,
		singleSubmit: singleSubmitFlag,
		debug:        debugFlag,
	}, visited)
	if err := config.ApplyOverrides(overrides); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := debug.Init(config.GetBool(config.KeyDebug)); err != nil {
		return fmt.Errorf("init debug log: %w", err)
	}
	defer debug.Close()
	if debug.Enabled() {
		if path, err := debug.GetLogPath(); err == nil {
			defer fmt.Fprintf(os.Stderr, "Debug log written to %s\n", path)
		}
	}

	shutdown, err := telemetry.Setup(context.Background(), config.GetString(config.KeyTracingEndpoint))
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			debug.Event("tracing shutdown failed", "error", err)
		}
	}()

	if name := strings.TrimSpace(config.GetString(config.KeyTheme)); name != "" && !theme.SetTheme(name) {
		debug.Event("unknown theme, keeping default", "theme", name, "default", theme.CurrentName())
	}

	dbPath, err := config.DatabasePath()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	client, err := goals.NewSQLiteClient(ctx, dbPath)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	cfg := ui.Config{
		Client:       client,
		OutputFormat: config.GetString(config.KeyOutputFormat),
		IconPalette:  config.IconPalette(),
		SingleSubmit: config.GetBool(config.KeySingleSubmit),
		Version:      Version,
		SaveTheme:    config.SaveTheme,
	}
	return runProgram(cfg, ui.NewApp, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	})
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

func runProgram(cfg ui.Config, builder func(ui.Config) (*ui.App, error), factory programFactory) error {
	app, err := builder(cfg)
	if err != nil {
		return fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}

type runtimeFlags struct {
	dbPath       *string
	theme        *string
	outputFormat *string
	singleSubmit *bool
	debug        *bool
}

// collectOverrides turns explicitly set flags into config overrides so they
// win over files and environment.
func collectOverrides(flags runtimeFlags, visited map[string]struct{}) map[string]any {
	overrides := map[string]any{}
	if flagWasExplicitlySet("db-path", visited) && flags.dbPath != nil {
		overrides[config.KeyDatabasePath] = strings.TrimSpace(*flags.dbPath)
	}
	if flagWasExplicitlySet("theme", visited) && flags.theme != nil {
		overrides[config.KeyTheme] = strings.TrimSpace(*flags.theme)
	}
	if flagWasExplicitlySet("output-format", visited) && flags.outputFormat != nil {
		overrides[config.KeyOutputFormat] = strings.TrimSpace(*flags.outputFormat)
	}
	if flagWasExplicitlySet("single-submit", visited) && flags.singleSubmit != nil {
		overrides[config.KeySingleSubmit] = *flags.singleSubmit
	}
	if flagWasExplicitlySet("debug", visited) && flags.debug != nil {
		overrides[config.KeyDebug] = *flags.debug
	}
	return overrides
}

func flagWasExplicitlySet(name string, visited map[string]struct{}) bool {
	_, ok := visited[name]
	return ok
}
