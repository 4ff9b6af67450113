// main.go - Main entry point for the CLPS2C compiler

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/mattn/go-colorable"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const (
	appName    = "CLPS2C-Compiler"
	appVersion = "1.2.0"
)

// errReported marks a compile failure whose diagnostic was already shown.
var errReported = errors.New("compile failed")

func boilerPlate(w io.Writer) {
	titleColor.Fprintf(w, "%s v%s\n", appName, appVersion)
	fmt.Fprintln(w, "Compiles CLPS2C scripts into PS2 raw and pnach cheat codes.")
	fmt.Fprintln(w, "(c) 2024 - 2026 Zayn Otley")
	fmt.Fprintln(w, "License: GPLv3 or later")
}

// runner carries the settings and output streams shared by every command.
type runner struct {
	stdout io.Writer
	stderr io.Writer
	tty    bool

	cfg Config
	log *logger
}

func newRunner() *runner {
	return &runner{
		stdout: colorable.NewColorableStdout(),
		stderr: colorable.NewColorableStderr(),
		tty:    term.IsTerminal(int(os.Stderr.Fd())),
	}
}

func newApp(r *runner) *cli.App {
	return &cli.App{
		Name:      "clps2c",
		Usage:     "compile CLPS2C scripts into PS2 cheat codes",
		Version:   appVersion,
		ArgsUsage: "[script...]",
		Flags:     append(compileFlags(), globalFlags()...),
		Writer:    r.stdout,
		ErrWriter: r.stderr,
		Before:    r.setup,
		After:     r.teardown,
		Action:    r.compileAction,
		Commands: []*cli.Command{
			compileCommand(r),
			watchCommand(r),
			disasmCommand(r),
		},
	}
}

// setup resolves the settings: defaults, then the config file, then
// environment and flags.
func (r *runner) setup(ctx *cli.Context) error {
	r.cfg = defaultConfig()
	if path := ctx.String(configFlag.Name); path != "" {
		if err := loadConfigFile(path, &r.cfg); err != nil {
			return err
		}
	}
	r.cfg.applyFlags(ctx)
	if err := setColorMode(r.cfg.Color, r.tty); err != nil {
		return err
	}
	r.log = newLogger(r.cfg, r.stderr)
	if r.cfg.Verbose {
		boilerPlate(r.stderr)
	}
	return nil
}

func (r *runner) teardown(ctx *cli.Context) error {
	if r.log == nil {
		return nil
	}
	return r.log.Close()
}

// settings returns the resolved config with the flags of the running
// subcommand applied on top.
func (r *runner) settings(ctx *cli.Context) Config {
	cfg := r.cfg
	cfg.applyFlags(ctx)
	return cfg
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	r := newRunner()
	err := newApp(r).RunContext(ctx, os.Args)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
