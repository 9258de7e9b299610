package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vencoord/config"
	"github.com/lixenwraith/vencoord/feedback"
	"github.com/lixenwraith/vencoord/overlay"
	"github.com/lixenwraith/vencoord/session"
	"github.com/lixenwraith/vencoord/terminal"
)

// cueTimeout bounds how long exit waits for the last audio cue
const cueTimeout = 500 * time.Millisecond

// openScreen is replaced in tests with a simulation screen
var openScreen = func() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit status: 0 whenever the overlay ran to an
// outcome, 1 when startup failed
func run(args []string, stdout, stderr io.Writer) (status int) {
	cfg, source, err := parseConfig(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "vencoord: %v\n", err)
		return 1
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}
	if source != "" {
		log.Printf("config: loaded %s", source)
	}

	labelColor, dotColor, err := cfg.Colors()
	if err != nil {
		fmt.Fprintf(stderr, "vencoord: %v\n", err)
		return 1
	}
	cell := cellSize(cfg)

	screen, err := openScreen()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize screen: %v\n", err)
		return 1
	}
	var finiOnce sync.Once
	fini := func() { finiOnce.Do(screen.Fini) }
	defer fini()

	// Panic recovery: restore the terminal before the trace, or it is unreadable
	defer func() {
		if r := recover(); r != nil {
			fini()
			fmt.Fprintf(stderr, "\nvencoord crashed: %v\nStack Trace:\n%s\n", r, debug.Stack())
			status = 1
		}
	}()

	var cues overlay.Cues
	if cfg.Sound.Enabled {
		player := feedback.NewPlayer(cfg.Sound.Volume)
		if err := player.Init(); err != nil {
			log.Printf("audio: init failed, continuing without sound: %v", err)
		} else {
			defer player.Close()
			defer player.Wait(cueTimeout)
			cues = player
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := overlay.New(screen, overlay.Options{
		GapX:       cfg.Grid.GapX,
		GapY:       cfg.Grid.GapY,
		Cell:       cell,
		LabelColor: labelColor,
		DotColor:   dotColor,
		Cues:       cues,
	}).Run(ctx)
	fini()

	if err != nil {
		log.Printf("run ended: %v", err)
	}
	if out.State == session.StateResolved {
		fmt.Fprintf(stdout, "%d, %d\n", out.Point.X, out.Point.Y)
	}
	return 0
}

// parseConfig layers flags over the file and environment settings.
// The returned path is the config file read, or "" when none was.
func parseConfig(args []string, stderr io.Writer) (*config.Config, string, error) {
	fs := flag.NewFlagSet("vencoord", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := config.Default()
	configPath := fs.String("config", "", "Config file (default: user config dir/vencoord/config.toml)")
	gapX := fs.Int("gap-x", defaults.Grid.GapX, "Columns between grid points")
	gapY := fs.Int("gap-y", defaults.Grid.GapY, "Rows between grid points")
	units := fs.String("units", defaults.Output.Units, "Output units: cells, pixels")
	labelColor := fs.String("color", defaults.Style.Label, "Label color (name or #rrggbb)")
	dotColor := fs.String("dot-color", defaults.Style.Dot, "Marker color (name or #rrggbb)")
	sound := fs.Bool("sound", defaults.Sound.Enabled, "Play a cue on select and cancel")
	volume := fs.Float64("volume", defaults.Sound.Volume, "Cue volume, 0 to 1")
	debugLog := fs.Bool("debug", defaults.Debug, "Write a debug log to "+logDir)

	if err := fs.Parse(args); err != nil {
		return nil, "", err
	}
	if fs.NArg() > 0 {
		return nil, "", fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg, source, err := config.Load(*configPath)
	if err != nil {
		return nil, "", err
	}

	// Only explicitly set flags override file and environment values
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "gap-x":
			cfg.Grid.GapX = *gapX
		case "gap-y":
			cfg.Grid.GapY = *gapY
		case "units":
			cfg.Output.Units = *units
		case "color":
			cfg.Style.Label = *labelColor
		case "dot-color":
			cfg.Style.Dot = *dotColor
		case "sound":
			cfg.Sound.Enabled = *sound
		case "volume":
			cfg.Sound.Volume = *volume
		case "debug":
			cfg.Debug = *debugLog
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, source, nil
}

// cellSize converts one grid step into output units.
// Gaps are bounded by config.MaxGap, so the products fit uint32.
func cellSize(cfg *config.Config) session.CellSize {
	cell := session.CellSize{W: uint32(cfg.Grid.GapX), H: uint32(cfg.Grid.GapY)}
	if cfg.Output.Units != config.UnitsPixels {
		return cell
	}

	px, err := terminal.CellPixels()
	if err != nil {
		log.Printf("units: %v, reporting cells", err)
		return cell
	}
	log.Printf("units: cell is %dx%d pixels", px.W, px.H)
	return session.CellSize{W: cell.W * uint32(px.W), H: cell.H * uint32(px.H)}
}
