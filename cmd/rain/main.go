// rain draws falling glyphs in the terminal until interrupted.
//
// Usage:
//
//	rain                 - Green latin rain
//	rain -r              - Red rain
//	rain -g katakana     - Half-width katakana glyphs
//	rain list            - List themes and glyph sets
//
// Press q, Esc or Ctrl+C to quit.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tomz197/glyphrain/internal/config"
	"github.com/tomz197/glyphrain/internal/draw"
	"github.com/tomz197/glyphrain/internal/input"
	"github.com/tomz197/glyphrain/internal/loop"
	"github.com/tomz197/glyphrain/internal/rain"
)

var (
	flagRed       bool
	flagTheme     string
	flagGlyphs    string
	flagGlyphMode string
	flagFPS       int
	flagSeed      uint64
	flagConfig    string
	flagLogFile   string
	flagDebug     bool
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rain",
	Short: "Falling glyphs in your terminal",
	Long: `rain fills the terminal with falling glyphs, redrawn every frame from
a single intensity buffer.

Settings are read from --config, ~/.config/glyphrain/rain.yaml or
./configs/rain.yaml, then RAIN_THEME, RAIN_GLYPHS and RAIN_FPS, then flags.

Controls:
  q/Esc/Ctrl+C - Quit

Examples:
  rain
  rain --red
  rain --glyphs katakana --glyph-mode indexed
  rain --fps 30 --log-file /tmp/rain.log --debug`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRain,
}

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&flagRed, "red", "r", false, "Red theme (shorthand for --theme red)")
	f.StringVar(&flagTheme, "theme", "", "Color theme: green, red, blue")
	f.StringVarP(&flagGlyphs, "glyphs", "g", "", "Glyph set: latin, symbols, katakana, binary")
	f.StringVar(&flagGlyphMode, "glyph-mode", "", "Glyph picking: random, indexed")
	f.IntVar(&flagFPS, "fps", 0, "Frames per second (default from config: 10)")
	f.Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	f.StringVar(&flagConfig, "config", config.GetEnv(config.EnvConfigPath, ""), "Path to config YAML")
	f.StringVar(&flagLogFile, "log-file", config.GetEnv(config.EnvLogFile, ""), "Write logs to this file instead of stderr")
	f.BoolVar(&flagDebug, "debug", false, "Debug logging (use with --log-file)")

	rootCmd.AddCommand(listCmd)
}

func runRain(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(flagLogFile, flagDebug)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, src, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyEnv(&cfg)
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := cfg.Look()
	if err != nil {
		return err
	}
	opts.Rand = rain.NewRand(flagSeed)
	opts.Logger = logger

	engine, err := rain.New(os.Stdout, draw.NewSizeProvider(nil), cfg.Engine(), opts)
	if err != nil {
		return err
	}

	logger.Info("starting", "config", src, "theme", opts.Theme.Name, "glyphs", opts.Glyphs.Name, "mode", opts.GlyphMode, "fps", cfg.FPS)
	err = animate(cmd.Context(), engine, cfg, logger)
	logger.Info("stopped", "frames", engine.Frames())
	if err != nil {
		return fmt.Errorf("rain: %w", err)
	}
	return nil
}

// animate owns the terminal for the duration of the animation: raw input,
// hidden cursor and the signal handlers that restore both.
func animate(ctx context.Context, engine *rain.Engine, cfg config.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	var stream *input.Stream
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enable raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(fd, oldState)
		}()
		stream = input.StartStream(bufio.NewReader(os.Stdin))
	} else {
		logger.Debug("stdin is not a terminal, quit keys disabled")
	}

	return loop.Run(ctx, os.Stdout, engine, loop.Options{
		FrameTime: cfg.FrameTime(),
		Input:     stream,
		Logger:    logger,
	})
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("red") && flagRed {
		cfg.Theme = "red"
	}
	if f.Changed("theme") {
		cfg.Theme = flagTheme
	}
	if f.Changed("glyphs") {
		cfg.Glyphs = flagGlyphs
		cfg.CustomGlyphs = ""
	}
	if f.Changed("glyph-mode") {
		cfg.GlyphMode = flagGlyphMode
	}
	if f.Changed("fps") {
		cfg.FPS = flagFPS
	}
}

// newLogger logs to path when set, otherwise to stderr at warn level.
func newLogger(path string, debug bool) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "rain",
	})
	switch {
	case debug:
		logger.SetLevel(log.DebugLevel)
	case path == "":
		// stderr shares the terminal with the frames
		logger.SetLevel(log.WarnLevel)
	}
	return logger, closeFn, nil
}
