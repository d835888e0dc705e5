package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"trainingload/internal/config"
	"trainingload/internal/logging"
	"trainingload/internal/service"
	"trainingload/internal/tui"
)

type options struct {
	dir          string
	ctlDays      int
	atlDays      int
	logLevel     string
	logPath      string
	summary      bool
	exportDB     string
	exportCSVDir string

	// names of the flags given on the command line
	set map[string]bool
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseFlags reads the command line. Only flags that were actually given
// override the config, so "-ctl 0" reaches validation instead of meaning unset.
func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("trainingload", flag.ContinueOnError)
	fs.StringVar(&opts.dir, "dir", "", "activity directory (overrides config)")
	fs.IntVar(&opts.ctlDays, "ctl", 0, "fitness time constant in days (overrides config)")
	fs.IntVar(&opts.atlDays, "atl", 0, "fatigue time constant in days (overrides config)")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	fs.StringVar(&opts.logPath, "log-path", "", "log file path (empty uses config, then stdout)")
	fs.BoolVar(&opts.summary, "summary", false, "print a plain-text summary and exit")
	fs.StringVar(&opts.exportDB, "export-db", "", "write the daily and pace tables to this SQLite file and exit")
	fs.StringVar(&opts.exportCSVDir, "export-csv-dir", "", "write the daily and pace tables as CSV into this directory and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	return opts, nil
}

func run(opts options) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cfg, opts)

	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		return fmt.Errorf("config validation failed: %w (config file: %s/config.json)", err, configDir)
	}

	interactive := !opts.summary && opts.exportDB == "" && opts.exportCSVDir == ""
	// The dashboard and the summary own stdout; logs go to the file only
	logCloser := logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.Path,
		LogToStdout:   !interactive,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
		Quiet:         interactive || opts.summary,
	})
	defer logCloser.Close()

	querySvc := service.NewQueryService(cfg.Data.ActivitiesDir, cfg.Pace.PaceOptions(), cfg.Trend.CacheMB)
	if err := querySvc.Reload(); err != nil {
		return err
	}

	if !interactive {
		return runBatch(querySvc, cfg, opts)
	}

	app := tui.NewApp(querySvc, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

// loadConfig reads the config file, writing an example one on first run
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		if err := config.CreateExample(); err != nil {
			return nil, fmt.Errorf("creating example config: %w", err)
		}
		defaults := config.DefaultConfig()
		defaults.ApplyEnv()
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// applyFlags lets command-line flags override config and environment
func applyFlags(cfg *config.Config, opts options) {
	if opts.set["dir"] {
		cfg.Data.ActivitiesDir = opts.dir
	}
	if opts.set["ctl"] {
		cfg.Trend.CTLDays = opts.ctlDays
	}
	if opts.set["atl"] {
		cfg.Trend.ATLDays = opts.atlDays
	}
	if opts.set["log-level"] {
		cfg.Log.Level = opts.logLevel
	}
	if opts.set["log-path"] {
		cfg.Log.Path = opts.logPath
	}
}

// runBatch handles the non-interactive modes
func runBatch(querySvc *service.QueryService, cfg *config.Config, opts options) error {
	ctl, atl := cfg.Trend.CTLDays, cfg.Trend.ATLDays

	if opts.exportDB != "" {
		id, err := querySvc.ExportSQLite(opts.exportDB, ctl, atl)
		if err != nil {
			return fmt.Errorf("exporting to %s: %w", opts.exportDB, err)
		}
		log.Infof("export %s saved to %s", id, opts.exportDB)
	}

	if opts.exportCSVDir != "" {
		paths, err := querySvc.ExportCSV(opts.exportCSVDir, ctl, atl)
		if err != nil {
			return fmt.Errorf("exporting to %s: %w", opts.exportCSVDir, err)
		}
		for _, p := range paths {
			log.Infof("wrote %s", p)
		}
	}

	if opts.summary {
		data, err := querySvc.GetDashboardData(ctl, atl)
		if err != nil {
			return err
		}
		return service.WriteSummary(os.Stdout, cfg.Data.ActivitiesDir, data, time.Now())
	}

	return nil
}
