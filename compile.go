// compile.go - The compile command: single scripts and batches

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/urfave/cli/v2"
	"golang.design/x/clipboard"
	"golang.org/x/sync/errgroup"

	"github.com/intuitionamiga/clps2c/compiler"
	"github.com/intuitionamiga/clps2c/script"
)

func compileCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "compile scripts into code files (the default command)",
		ArgsUsage: "[script...]",
		Description: `
Each script is compiled to <name>-Output.txt next to it unless -o is given.
On a compile error the output file receives the diagnostic instead of codes
and the command exits with status 1. Several scripts are compiled in
parallel, each with its own compiler.`,
		Flags:  compileFlags(),
		Action: r.compileAction,
	}
}

// inputsOf collects the -i script and any positional scripts.
func inputsOf(ctx *cli.Context) []string {
	var inputs []string
	if in := ctx.String(inputFlag.Name); in != "" {
		inputs = append(inputs, in)
	}
	return append(inputs, ctx.Args().Slice()...)
}

func (r *runner) compileAction(ctx *cli.Context) error {
	cfg := r.settings(ctx)
	inputs := inputsOf(ctx)
	output := ctx.String(outputFlag.Name)

	switch {
	case len(inputs) == 0:
		return errors.New("no input file: pass one with -i or as an argument")
	case len(inputs) > 1 && output != "":
		return errors.New("-o needs exactly one input file")
	case len(inputs) == 1:
		_, err := r.compileFile(inputs[0], output, cfg)
		return err
	}
	return r.compileBatch(ctx.Context, inputs, cfg)
}

// compileBatch compiles every input concurrently. The first failure
// cancels the inputs that have not started yet.
func (r *runner) compileBatch(ctx context.Context, inputs []string, cfg Config) error {
	if cfg.Clipboard {
		r.log.Infof("warning: --clipboard ignored when compiling %d files", len(inputs))
		cfg.Clipboard = false
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, in := range inputs {
		in := in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := r.compileFile(in, "", cfg)
			return err
		})
	}
	return g.Wait()
}

// compileFile compiles input into output, or into the default output path
// when output is empty. The compiler is returned even on failure so that
// callers can see which files were read.
func (r *runner) compileFile(input, output string, cfg Config) (*compiler.Compiler, error) {
	if output == "" {
		output = outputPath(input, cfg.OutputSuffix)
	}
	c := compiler.New(compiler.Options{
		DType:   cfg.DType,
		Pnach:   cfg.Pnach,
		Listing: cfg.Listing,
		Logf:    r.log.Debugf,
	})

	start := time.Now()
	out, err := c.CompileFile(input)
	if err != nil {
		var se *script.Error
		if !errors.As(err, &se) {
			return c, err
		}
		report := script.FormatDiagnostic(se)
		if werr := os.WriteFile(output, []byte(errorHeader(time.Now())+report), 0o644); werr != nil {
			return c, fmt.Errorf("writing %s: %w", output, werr)
		}
		r.log.printDiagnostic(r.stderr, report)
		return c, errReported
	}

	if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
		return c, fmt.Errorf("writing %s: %w", output, err)
	}
	r.log.Debugf("wrote %s: %d code lines in %s", output, codeLines(out), time.Since(start).Round(time.Microsecond))

	if cfg.Listing {
		r.printListing(input, c)
	}
	if cfg.Clipboard {
		if err := copyToClipboard(out); err != nil {
			r.log.Infof("warning: %v", err)
		} else {
			r.log.Debugf("copied %s to the clipboard", output)
		}
	}
	return c, nil
}

func codeLines(out string) int {
	if out == "" {
		return 0
	}
	return strings.Count(out, "\n") + 1
}

// ---------------------------------------------------------------------
// Clipboard
// ---------------------------------------------------------------------

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

func copyToClipboard(text string) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return fmt.Errorf("clipboard unavailable: %w", clipboardErr)
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
