// Command gbcore loads a cartridge ROM and runs it, either against a
// terminal display or, with --headless, for a fixed number of frames with
// no host I/O at all (useful for scripting and CI smoke tests).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/mbrannon/gbcore/emulator"
	"github.com/mbrannon/gbcore/hostio/terminal"
)

func main() {
	app := cli.NewApp()
	app.Name = "gbcore"
	app.Usage = "run a Game Boy cartridge ROM"
	app.ArgsUsage = "<rom-path>"
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "headless", Usage: "run without a display, for a fixed frame count"},
		cli.IntFlag{Name: "frames", Value: 60, Usage: "frame count to run under --headless"},
		cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn, or error"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(ctx.String("log-level")),
	})))

	romPath := ctx.Args().First()
	if romPath == "" {
		return fmt.Errorf("program error: missing required <rom-path> argument")
	}

	e, err := emulator.NewFromFile(romPath)
	if err != nil {
		return err
	}

	if ctx.Bool("headless") {
		return runHeadless(e, ctx.Int("frames"))
	}
	return runInteractive(e)
}

func runHeadless(e *emulator.Emulator, frames int) error {
	for i := 0; i < frames; i++ {
		e.RunFrame()
	}
	slog.Info("headless run complete", "frames", frames)
	return nil
}

func runInteractive(e *emulator.Emulator) error {
	backend, err := terminal.New()
	if err != nil {
		return err
	}
	defer backend.Close()

	for {
		frame := e.RunFrame()

		events, quit := backend.Poll()
		if quit {
			return nil
		}
		for _, ev := range events {
			if ev.Pressed {
				e.Press(ev.Button)
			} else {
				e.Release(ev.Button)
			}
		}

		if err := backend.Present(frame); err != nil {
			return err
		}
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
