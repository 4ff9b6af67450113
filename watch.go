// watch.go - Recompile a script whenever it or an included file changes

package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"
)

// Editors often write a file in several steps; changes closer together
// than this trigger one rebuild.
const watchSettle = 150 * time.Millisecond

func watchCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "compile a script and recompile it on every change",
		ArgsUsage: "[script]",
		Flags:     compileFlags(),
		Action:    r.watchAction,
	}
}

// watchState tracks the files the last compile read and the directories
// being watched for them.
type watchState struct {
	w     *fsnotify.Watcher
	dirs  mapset.Set[string]
	files mapset.Set[string]
}

func absPath(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return filepath.Clean(p)
}

// track replaces the tracked file set and watches any new directory.
// Directories are watched instead of files so that editors replacing a
// file by rename are still seen.
func (s *watchState) track(files []string) error {
	s.files = mapset.NewSet[string]()
	for _, f := range files {
		f = absPath(f)
		s.files.Add(f)
		dir := filepath.Dir(f)
		if s.dirs.Contains(dir) {
			continue
		}
		if err := s.w.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		s.dirs.Add(dir)
	}
	return nil
}

func (s *watchState) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	return s.files.Contains(absPath(ev.Name))
}

func (r *runner) watchAction(ctx *cli.Context) error {
	inputs := inputsOf(ctx)
	if len(inputs) != 1 {
		return errors.New("watch needs exactly one input file")
	}
	input, output := inputs[0], ctx.String(outputFlag.Name)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	state := &watchState{w: w, dirs: mapset.NewSet[string]()}

	rebuild := func() error {
		cfg := r.settings(ctx)
		c, err := r.compileFile(input, output, cfg)
		switch {
		case err == nil:
			r.log.Infof("compiled %s", input)
		case !errors.Is(err, errReported):
			r.log.Infof("error: %v", err)
		}
		files := c.Files()
		if len(files) == 0 {
			files = []string{input}
		}
		return state.track(files)
	}
	if err := rebuild(); err != nil {
		return err
	}
	r.log.Infof("watching %s (%d directories), press Ctrl+C to stop", input, state.dirs.Cardinality())

	settle := time.NewTimer(watchSettle)
	settle.Stop()
	for {
		select {
		case <-ctx.Context.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if state.relevant(ev) {
				r.log.Debugf("%s: %s", ev.Op, ev.Name)
				settle.Reset(watchSettle)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.log.Infof("watch error: %v", err)
		case <-settle.C:
			if err := rebuild(); err != nil {
				return err
			}
		}
	}
}
