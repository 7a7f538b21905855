package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tbtop/tbtop/internal/backend"
	"github.com/tbtop/tbtop/internal/config"
	"github.com/tbtop/tbtop/internal/logging"
	"github.com/tbtop/tbtop/internal/server"
	"github.com/tbtop/tbtop/internal/tb"
	"github.com/tbtop/tbtop/internal/ui"
	"github.com/tbtop/tbtop/internal/ui/panels"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			runVersion()
			return
		case "update":
			if err := runUpdate(); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		logdir     = flag.String("logdir", "", "start an embedded TensorBoard on this log directory")
		logFile    = flag.String("log-file", "", "start an embedded TensorBoard on this .tar.gz log archive")
		host       = flag.String("host", "", "connect to a running TensorBoard at this host or URL")
		port       = flag.Int("port", 0, "port of the TensorBoard to connect to")
		interval   = flag.Int("interval", -1, "poll interval in seconds, 0 to disable")
		debug      = flag.Bool("debug", false, "enable debug logging")
		configPath = flag.String("config", "", "path to a config file")
	)
	flag.Parse()

	sources := 0
	for _, s := range []string{*logdir, *logFile, *host} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return fmt.Errorf("--logdir, --log-file and --host are mutually exclusive")
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if *host != "" {
		if strings.Contains(*host, "://") {
			cfg.Server.URL = *host
		} else {
			cfg.Server.Host = *host
			cfg.Server.URL = ""
		}
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *interval >= 0 {
		cfg.Poll.IntervalSeconds = *interval
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logf, err := logging.OpenLogFile(cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logf.Close()

	logger := logging.New(
		logging.WithLevel(cfg.Logging.Level),
		logging.WithOutput(logf),
	)
	logger.WithField("version", panels.Version).Info("starting tbtop")

	baseURL := cfg.Server.BaseURL()

	// With --logdir or --log-file we manage our own TensorBoard process.
	var mgr *server.Manager
	if *logdir != "" || *logFile != "" {
		dir := *logdir
		if *logFile != "" {
			dir, err = server.ExtractLogArchive(*logFile)
			if err != nil {
				return fmt.Errorf("extract log archive: %w", err)
			}
			defer os.RemoveAll(dir)
		}

		mgr = server.NewManager(time.Duration(cfg.Server.StartupTimeoutSeconds)*time.Second, logger)
		baseURL, err = mgr.Start(dir)
		if err != nil {
			return fmt.Errorf("start tensorboard: %w", err)
		}
		defer func() {
			if err := mgr.Stop(); err != nil {
				logger.WithError(err).Warn("stopping tensorboard")
			}
		}()
	}

	client := tb.NewClientWithTimeout(baseURL, time.Duration(cfg.Server.TimeoutSeconds)*time.Second)

	sink := ui.NewSink()
	bk := backend.New(client, sink, logger)
	defer bk.Cleanup()

	app := ui.NewApp(cfg, client, bk, sink, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	logger.Info("shutting down")
	return nil
}
