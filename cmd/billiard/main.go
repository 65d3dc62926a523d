package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/billiard/audio"
	"github.com/lixenwraith/billiard/config"
	"github.com/lixenwraith/billiard/engine"
	"github.com/lixenwraith/billiard/input"
	"github.com/lixenwraith/billiard/parameter"
	"github.com/lixenwraith/billiard/render"
)

type options struct {
	configPath string
	lossy      bool
	debug      bool
	mute       bool
	pairVisit  string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to a TOML table config")
	flag.BoolVar(&opts.lossy, "lossy", false, "Lossy walls, restitution 0.8")
	flag.BoolVar(&opts.debug, "debug", false, "Write a debug log to logs/billiard.log")
	flag.BoolVar(&opts.mute, "mute", false, "Disable sound")
	flag.StringVar(&opts.pairVisit, "pair-visit", "", "Pair scan mode: once or twice")
	flag.Parse()

	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "billiard: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		log.Printf("exit: %v", err)
		fmt.Fprintf(os.Stderr, "billiard: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves defaults, the config file and flag overrides, in that order
func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.lossy {
		cfg.ApplyLossy()
	}
	if opts.pairVisit != "" {
		cfg.Collision.PairVisit = opts.pairVisit
	}
	if opts.mute {
		cfg.Audio.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// crash restores the terminal and prints the panic with its stack
func crash(screen tcell.Screen, r any) {
	screen.Fini()
	fmt.Fprintf(os.Stderr, "\n\x1b[31mBILLIARD CRASHED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Exit(1)
}

func run(cfg *config.Config) error {
	keys := input.DefaultKeyTable()
	if err := keys.Apply(cfg.Keys); err != nil {
		return fmt.Errorf("keys: %w", err)
	}

	simCfg, err := cfg.SimConfig()
	if err != nil {
		return err
	}
	sim, err := engine.NewSimulation(simCfg)
	if err != nil {
		return err
	}
	log.Printf("table %vx%v, %d balls, restitution %v, pair visit %s",
		simCfg.Arena.Width, simCfg.Arena.Height, sim.Len(), simCfg.Step.Restitution, simCfg.Step.PairVisit)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			crash(screen, r)
		}
	}()
	screen.EnableMouse()
	screen.HideCursor()

	renderer := render.NewTerminalRenderer(screen)

	var contacts engine.ContactListener
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio.Volume)
		if err := sm.Initialize(); err != nil {
			// Non-fatal, the table runs without sound
			log.Printf("audio initialization failed: %v", err)
		} else {
			defer sm.Cleanup()
			contacts = sm
		}
	}

	loop, err := engine.NewLoop(sim, engine.LoopConfig{
		Interval: cfg.TickInterval(),
		Renderer: renderer,
		Contacts: contacts,
		Palette:  cfg.Palette.Colors,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	events := make(chan tcell.Event, parameter.InputChannelSize)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				crash(screen, r)
			}
		}()
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				crash(screen, r)
			}
		}()
		done <- loop.Run(ctx)
	}()

	machine := input.NewMachine(keys, renderer)
	for {
		select {
		case ev := <-events:
			in := machine.Process(ev)
			if in != nil && in.Type == input.IntentResize {
				screen.Sync()
			}
			if !input.Dispatch(in, loop) {
				log.Printf("quit requested")
				cancel()
			}
		case err := <-done:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}
