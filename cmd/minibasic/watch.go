package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/garyluck/minibasic/basic"
	"github.com/garyluck/minibasic/config"
	"github.com/garyluck/minibasic/repl"
	"github.com/oarkflow/log"
)

//
// watchProgram runs a program file, then reruns it every time the file
// is written, until ^C.  The watch is on the directory, filtered down
// to events on the program file, so a save that replaces the file is
// seen too.  A burst of events triggers one run, debounce after the
// last of them
//

func watchProgram(ctx context.Context, interp *basic.Interpreter, cfg *config.Config,
	logger *log.Logger, name string) error {

	name, err := basic.ProgramFilename(name)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	sess := repl.New(interp, repl.NewReaderSource(os.Stdin, nil), os.Stdout,
		repl.WithConfig(cfg), repl.WithLogger(logger))

	rerun := func() {
		if err := reload(ctx, sess, name); err != nil {
			fmt.Fprintf(os.Stderr, "! %v\n", err)
			logger.Warn().Err(err).Str("file", name).Msg("run failed")
		}
	}

	logger.Info().Str("file", abs).Dur("debounce", cfg.Watch.Debounce).Msg("watching program")

	rerun()

	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if event.Name != abs || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}

			logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("program changed")

			timer.Reset(cfg.Watch.Debounce)

		case <-timer.C:
			rerun()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("watcher error")
		}
	}
}

// reload reads the program afresh, which also clears the variables,
// and runs it.
func reload(ctx context.Context, sess *repl.Session, name string) error {

	p, err := basic.LoadFile(name)
	if err != nil {
		return err
	}

	sess.Interpreter().SetProgram(p)

	o, err := sess.RunProgram(ctx)
	if err == nil {
		fmt.Fprintf(os.Stdout, "[%s: %s after %d %s]\n", filepath.Base(name), o.State,
			o.Statements, pluralize("statement", o.Statements))
	}

	return err
}

func pluralize(str string, num int) string {

	if num != 1 {
		return str + "s"
	}

	return str
}
