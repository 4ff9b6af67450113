// flags.go - Command line flags of the clps2c command

package main

import "github.com/urfave/cli/v2"

var (
	inputFlag = &cli.StringFlag{
		Name:      "input",
		Aliases:   []string{"i"},
		Usage:     "CLPS2C script to compile",
		TakesFile: true,
	}
	outputFlag = &cli.StringFlag{
		Name:      "output",
		Aliases:   []string{"o"},
		Usage:     "output file (default: <input dir>/<input name>-Output.txt)",
		TakesFile: true,
	}
	pnachFlag = &cli.BoolFlag{
		Name:    "pnach",
		Aliases: []string{"p"},
		Usage:   "write pnach patch lines instead of raw code pairs",
		EnvVars: []string{"CLPS2C_PNACH"},
	}
	dtypeFlag = &cli.BoolFlag{
		Name:    "dtype",
		Aliases: []string{"d"},
		Usage:   "use D-type conditionals instead of E-type",
		EnvVars: []string{"CLPS2C_DTYPE"},
	}
	suffixFlag = &cli.StringFlag{
		Name:    "output-suffix",
		Usage:   "suffix of the default output file name",
		EnvVars: []string{"CLPS2C_OUTPUT_SUFFIX"},
	}
	clipboardFlag = &cli.BoolFlag{
		Name:    "clipboard",
		Usage:   "copy the compiled codes to the clipboard",
		EnvVars: []string{"CLPS2C_CLIPBOARD"},
	}
	listingFlag = &cli.BoolFlag{
		Name:    "listing",
		Usage:   "print a listing of every assembled instruction",
		EnvVars: []string{"CLPS2C_LISTING"},
	}

	configFlag = &cli.StringFlag{
		Name:      "config",
		Usage:     "settings file (.toml or .lua)",
		EnvVars:   []string{"CLPS2C_CONFIG"},
		TakesFile: true,
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Usage:   "log every compile stage",
		EnvVars: []string{"CLPS2C_VERBOSE"},
	}
	logFileFlag = &cli.StringFlag{
		Name:      "log-file",
		Usage:     "write log lines to a size-rotated file instead of stderr",
		EnvVars:   []string{"CLPS2C_LOG_FILE"},
		TakesFile: true,
	}
	colorFlag = &cli.StringFlag{
		Name:    "color",
		Usage:   "colored diagnostics: auto, always or never",
		Value:   "auto",
		EnvVars: []string{"CLPS2C_COLOR"},
	}
)

// The flag variables are templates. Every app gets its own copies because
// a flag records whether it was set.
func clone[T any](f *T) *T {
	c := *f
	return &c
}

func compileFlags() []cli.Flag {
	return []cli.Flag{
		clone(inputFlag),
		clone(outputFlag),
		clone(pnachFlag),
		clone(dtypeFlag),
		clone(suffixFlag),
		clone(clipboardFlag),
		clone(listingFlag),
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		clone(configFlag),
		clone(verboseFlag),
		clone(logFileFlag),
		clone(colorFlag),
	}
}
