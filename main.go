package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/olivier-w/dirplay/internal/config"
	"github.com/olivier-w/dirplay/internal/logger"
	"github.com/olivier-w/dirplay/internal/musicdir"
	"github.com/olivier-w/dirplay/internal/nav"
	"github.com/olivier-w/dirplay/internal/playback"
	"github.com/olivier-w/dirplay/internal/player"
	"github.com/olivier-w/dirplay/internal/playlist"
	"github.com/olivier-w/dirplay/internal/session"
	"github.com/olivier-w/dirplay/internal/ui"
	"github.com/olivier-w/dirplay/internal/watch"
	zlog "github.com/rs/zerolog/log"
)

var (
	app        = kingpin.New("dirplay", "Browse a music directory and play it in the terminal")
	dirArg     = app.Arg("dir", "Directory to start browsing in").String()
	configPath = app.Flag("config", "Path to config file").String()
	shuffle    = app.Flag("shuffle", "Start with shuffled ordering").Bool()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file, or \"stderr\"").String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if *configPath != "" {
		return config.Load(*configPath)
	}
	return config.LoadOptional(config.DefaultPath())
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	logCfg := logger.Config{Level: cfg.Log.Level, File: cfg.Log.File}
	if *verbose {
		logCfg.Level = "debug"
	}
	if *logfile == "stderr" {
		logCfg.Output = "stderr"
	} else if *logfile != "" {
		logCfg.File = *logfile
	}
	logs, err := logger.Init(logCfg)
	if err != nil {
		return errors.Wrap(err, "initializing logger")
	}
	defer logs.Close()

	dir, err := musicdir.Default().Resolve(*dirArg, cfg.StartDir)
	if err != nil {
		return err
	}

	out, err := player.Open()
	if err != nil {
		return err
	}
	defer out.Close()

	mode := playlist.Sorted
	if *shuffle || cfg.Shuffle {
		mode = playlist.Shuffled
	}
	n := nav.New(nav.OSLister{}, playlist.NewOrderer(nil), dir, mode)
	s := session.New(n, playback.NewController(out))
	s.Refresh()
	zlog.Info().Str("dir", n.Path()).Str("mode", mode.String()).Msg("starting")

	opts := ui.Options{PollInterval: cfg.PollInterval()}
	if cfg.Watch {
		w, err := watch.New()
		if err != nil {
			zlog.Warn().Err(err).Msg("directory watching disabled")
		} else {
			defer w.Close()
			opts.Watcher = w
		}
	}

	p := tea.NewProgram(ui.New(s, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "running terminal UI")
	}
	return nil
}
