// config.go - Settings file loading for the clps2c command

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"
	lua "github.com/yuin/gopher-lua"
)

// Config holds every setting that can come from a config file, the
// environment or the command line, in increasing order of precedence.
type Config struct {
	Pnach        bool
	DType        bool
	OutputSuffix string
	Clipboard    bool
	Color        string
	Verbose      bool
	Listing      bool

	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
}

func defaultConfig() Config {
	return Config{
		OutputSuffix:  "-Output.txt",
		Color:         "auto",
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
	}
}

// Unknown keys in a TOML file are an error rather than silently ignored.
var tomlSettings = func() toml.Config {
	c := toml.DefaultConfig
	c.MissingField = func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	}
	return c
}()

// loadConfigFile merges the settings in path into cfg. The format is picked
// by extension: .toml or .lua.
func loadConfigFile(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return loadTOML(path, cfg)
	case ".lua":
		return loadLua(path, cfg)
	default:
		return fmt.Errorf("config %s: unsupported format (want .toml or .lua)", path)
	}
}

func loadTOML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	var lerr *toml.LineError
	if errors.As(err, &lerr) {
		err = errors.New(path + ", " + err.Error())
	}
	return err
}

// loadLua runs the script and reads the settings from its globals. Globals
// that are not set keep their current value.
func loadLua(path string, cfg *Config) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
		{lua.TabLibName, lua.OpenTable},
	} {
		if err := L.CallByParam(lua.P{Fn: L.NewFunction(lib.open), NRet: 0, Protect: true}, lua.LString(lib.name)); err != nil {
			return err
		}
	}
	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	g := luaGlobals{L: L, path: path}
	g.boolean("pnach", &cfg.Pnach)
	g.boolean("dtype", &cfg.DType)
	g.str("output_suffix", &cfg.OutputSuffix)
	g.boolean("clipboard", &cfg.Clipboard)
	g.str("color", &cfg.Color)
	g.boolean("verbose", &cfg.Verbose)
	g.boolean("listing", &cfg.Listing)
	g.str("log_file", &cfg.LogFile)
	g.integer("log_max_size_mb", &cfg.LogMaxSizeMB)
	g.integer("log_max_backups", &cfg.LogMaxBackups)
	return g.err
}

// luaGlobals reads typed globals and keeps the first type error.
type luaGlobals struct {
	L    *lua.LState
	path string
	err  error
}

func (g *luaGlobals) get(name string, want lua.LValueType) (lua.LValue, bool) {
	v := g.L.GetGlobal(name)
	if v == lua.LNil || g.err != nil {
		return nil, false
	}
	if v.Type() != want {
		g.err = fmt.Errorf("config %s: %s must be a %s, got %s", g.path, name, want, v.Type())
		return nil, false
	}
	return v, true
}

func (g *luaGlobals) boolean(name string, dst *bool) {
	if v, ok := g.get(name, lua.LTBool); ok {
		*dst = bool(v.(lua.LBool))
	}
}

func (g *luaGlobals) str(name string, dst *string) {
	if v, ok := g.get(name, lua.LTString); ok {
		*dst = string(v.(lua.LString))
	}
}

func (g *luaGlobals) integer(name string, dst *int) {
	if v, ok := g.get(name, lua.LTNumber); ok {
		*dst = int(v.(lua.LNumber))
	}
}

// applyFlags overrides cfg with every flag given on the command line or
// through its CLPS2C_* environment variable.
func (cfg *Config) applyFlags(ctx *cli.Context) {
	for _, f := range []struct {
		name string
		dst  *bool
	}{
		{pnachFlag.Name, &cfg.Pnach},
		{dtypeFlag.Name, &cfg.DType},
		{clipboardFlag.Name, &cfg.Clipboard},
		{verboseFlag.Name, &cfg.Verbose},
		{listingFlag.Name, &cfg.Listing},
	} {
		if ctx.IsSet(f.name) {
			*f.dst = ctx.Bool(f.name)
		}
	}
	if ctx.IsSet(suffixFlag.Name) {
		cfg.OutputSuffix = ctx.String(suffixFlag.Name)
	}
	if ctx.IsSet(colorFlag.Name) {
		cfg.Color = ctx.String(colorFlag.Name)
	}
	if ctx.IsSet(logFileFlag.Name) {
		cfg.LogFile = ctx.String(logFileFlag.Name)
	}
}

// outputPath places the output next to the input: dir/name<suffix>.
func outputPath(input, suffix string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(input), base+suffix)
}
