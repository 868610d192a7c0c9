package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leonelquinteros/gotext"
	log "github.com/sirupsen/logrus"

	"echomaze/pkg/engine/input"
	"echomaze/pkg/engine/terminal"
	"echomaze/pkg/game/audio"
	"echomaze/pkg/game/config"
	"echomaze/pkg/game/cue"
	"echomaze/pkg/game/devtools"
	"echomaze/pkg/game/gameplay"
	"echomaze/pkg/game/locale"
	"echomaze/pkg/game/menu"
	"echomaze/pkg/game/renderer"
	"echomaze/pkg/game/renderer/tui"
	"echomaze/pkg/game/round"
	"echomaze/pkg/game/state"
)

// frameInterval is how often queued intents are dispatched and the drone
// and clock are checked.
const frameInterval = time.Second / 30

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		log.WithError(err).Error("echomaze failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging applies the configured level and destination. The returned
// func closes the log file, if any.
func setupLogging(cfg config.Config) (func(), error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if cfg.LogFile == "" {
		log.SetOutput(terminal.NewRawWriter(os.Stderr))
		return func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() { _ = f.Close() }, nil
}

func run(cfg config.Config) error {
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	lang, err := locale.Init(cfg.Language)
	if err != nil {
		return err
	}
	if lang != cfg.Language {
		log.WithFields(log.Fields{"requested": cfg.Language, "using": lang}).Warn("language not available")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kr, err := input.NewKeyReader(os.Stdin)
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer kr.Restore()
	keys, keyErrs := kr.Stream(ctx)

	renderer.SetRenderer(tui.New(terminal.NewRawWriter(os.Stdout)))
	renderer.Init()

	if !cfg.SkipMenu {
		if !menu.RunMainMenu(&cfg, nextIntent(ctx, keys)) {
			renderer.Clear()
			renderer.ShowMessage(gotext.Get("GOODBYE"))
			return nil
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	gen, err := cfg.MazeGenerator()
	if err != nil {
		return err
	}
	r, err := gameplay.BuildRound(gen, cfg.Width, cfg.Height, cfg.Seed, cfg.Policy())
	if err != nil {
		return err
	}

	var (
		sinks  []cue.Sink
		cueLog *tui.CueLog
	)
	if cfg.TextCues() {
		cueLog = tui.NewCueLog(tui.DefaultCueLogSize)
		sinks = append(sinks, cueLog)
	}
	if cfg.SynthCues() {
		synth, err := audio.NewSynth(log.StandardLogger())
		if err != nil {
			return err
		}
		defer synth.Close()
		sinks = append(sinks, synth)
	}

	opts := round.Options{
		TimeLimit:     cfg.TimeLimit(),
		DroneInterval: cfg.DroneInterval(),
		Sink:          cue.Multi(sinks...),
		OnEnd: func(r *state.Round) {
			dumpRound(r, cfg.DumpPath)
		},
		Logger: log.StandardLogger(),
	}

	for {
		if cueLog != nil {
			cueLog.Reset()
		}
		ctrl := round.New(r, opts)
		if err = ctrl.Start(time.Now()); err != nil {
			return err
		}

		var quit, again bool
		quit, err = playRound(ctx, ctrl, cueLog, keys, keyErrs)
		if err == nil && !quit {
			again, err = guessFinalCell(ctx, ctrl.Round(), keys, keyErrs)
		}
		if err != nil || !again {
			break
		}

		r = gameplay.ResetRound(ctrl.Round())
		log.WithField("round", r.ID.String()).Info("replaying maze")
	}

	renderer.Clear()
	renderer.ShowMessage(gotext.Get("GOODBYE"))
	return err
}

// nextIntent adapts the key stream for menus.
func nextIntent(ctx context.Context, keys <-chan input.RawInput) menu.NextIntent {
	return func() (input.Intent, bool) {
		select {
		case <-ctx.Done():
			return input.Intent{}, false
		case raw, ok := <-keys:
			if !ok {
				return input.Intent{}, false
			}
			return input.MapToIntent(input.NewDebouncedInput(raw)), true
		}
	}
}

// dumpRound writes the revealed maze to dir when dumping is enabled.
func dumpRound(r *state.Round, dir string) {
	if dir == "" {
		return
	}
	path, err := devtools.DumpRoundToFile(r, dir)
	if err != nil {
		log.WithError(err).Warn("maze dump failed")
		return
	}
	log.WithField("path", path).Info("maze dumped")
}

// playRound runs the round until the clock runs out. Keys are queued and
// dispatched together once per frame so that a horizontal and a vertical
// press in the same frame resolve as one tick. quit is true when the player
// left early.
func playRound(ctx context.Context, ctrl *round.Controller, cueLog *tui.CueLog, keys <-chan input.RawInput, keyErrs <-chan error) (quit bool, err error) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	var pending []input.Intent
	lastSecs := -1
	dirty := true

	for ctrl.Phase() == state.Running {
		select {
		case <-ctx.Done():
			return true, nil

		case err := <-keyErrs:
			return true, err

		case raw, ok := <-keys:
			if !ok {
				return true, nil
			}
			in := input.MapToIntent(input.NewDebouncedInput(raw))
			switch in.Action {
			case input.ActionQuit:
				log.Info("player quit")
				return true, nil
			case input.ActionNone, input.ActionConfirm:
			default:
				pending = append(pending, in)
			}

		case now := <-ticker.C:
			if len(pending) > 0 {
				ctrl.Dispatch(now, pending...)
				pending = pending[:0]
				dirty = true
			}
			if len(ctrl.Tick(now)) > 0 {
				dirty = true
			}

			secs := int((ctrl.Remaining(now) + time.Second - 1) / time.Second)
			if dirty || secs != lastSecs {
				renderFrame(ctrl, cueLog, now)
				lastSecs, dirty = secs, false
			}
		}
	}

	return false, nil
}

func renderFrame(ctrl *round.Controller, cueLog *tui.CueLog, now time.Time) {
	f := renderer.Frame{
		Round:       ctrl.Round(),
		Remaining:   ctrl.Remaining(now),
		DroneActive: ctrl.DroneActive(),
	}
	if cueLog != nil {
		f.Cues = cueLog.Recent()
	}
	renderer.Clear()
	renderer.RenderFrame(f)
}

// guessFinalCell shows the revealed maze and lets the player move a cursor
// to where they think they ended up. After the result, Enter asks for another
// round on the same maze and any other key returns.
func guessFinalCell(ctx context.Context, r *state.Round, keys <-chan input.RawInput, keyErrs <-chan error) (again bool, err error) {
	cursor := tui.NewCursor(r.Maze)
	view := renderer.EndView{Round: r, Cursor: cursor.Position()}

	for {
		renderer.Clear()
		renderer.RenderEnd(view)

		var raw input.RawInput
		select {
		case <-ctx.Done():
			return false, nil
		case err := <-keyErrs:
			return false, err
		case k, ok := <-keys:
			if !ok {
				return false, nil
			}
			raw = k
		}

		in := input.MapToIntent(input.NewDebouncedInput(raw))
		if view.Guess != nil {
			return in.Action == input.ActionConfirm, nil
		}

		switch in.Action {
		case input.ActionMove:
			cursor.Move(in.Direction)
			view.Cursor = cursor.Position()

		case input.ActionConfirm, input.ActionProbe:
			g, err := gameplay.EvaluateGuess(r, cursor.Position())
			if err != nil {
				return false, err
			}
			view.Guess = &g
			log.WithFields(log.Fields{
				"round":    r.ID.String(),
				"guess":    g.Guessed.String(),
				"actual":   g.Actual.String(),
				"distance": g.Distance,
			}).Info("guess evaluated")

		case input.ActionQuit:
			return false, nil
		}
	}
}
