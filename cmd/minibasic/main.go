package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/garyluck/minibasic/basic"
	"github.com/garyluck/minibasic/builtins"
	"github.com/garyluck/minibasic/config"
	"github.com/garyluck/minibasic/repl"
	"github.com/oarkflow/log"
	"golang.org/x/term"
)

// version is stamped at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {

	fs := flag.NewFlagSet("minibasic", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: minibasic [-config file] [-watch] [-dump] [-v] [program.bas]")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "configuration file")
	watch := fs.Bool("watch", false, "rerun the program whenever its file changes")
	dump := fs.Bool("dump", false, "dump the parsed program before running it")
	verbose := fs.Bool("v", false, "log debug messages")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() > 1 || (*watch && fs.NArg() == 0) {
		fs.Usage()
		return 2
	}

	cfg, path, err := config.LoadWithPath(*configPath, os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minibasic: %v\n", err)
		return 1
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}

	logger := repl.NewLogger(cfg.Log.Level, os.Stderr)

	if path != "" {
		logger.Debug().Str("file", path).Msg("config loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	interp := basic.New(builtins.Default(), cfg.Options())

	if fs.NArg() == 0 {
		return interactive(ctx, interp, cfg, logger)
	}

	name := fs.Arg(0)

	if *watch {
		if err := watchProgram(ctx, interp, cfg, logger, name); err != nil {
			logger.Error().Err(err).Str("file", name).Msg("watch failed")
			return 1
		}
		return 0
	}

	return runFile(ctx, interp, cfg, logger, name, *dump)
}

//
// Run a program file once.  INPUT reads standard input, and a fault
// gives exit status 1
//

func runFile(ctx context.Context, interp *basic.Interpreter, cfg *config.Config,
	logger *log.Logger, name string, dump bool) int {

	p, err := basic.LoadFile(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minibasic: %v\n", err)
		return 1
	}

	interp.SetProgram(p)

	if dump {
		if err := repl.DumpProgram(os.Stdout, p, interp.Functions()); err != nil {
			fmt.Fprintf(os.Stderr, "! %v\n", err)
			return 1
		}
	}

	src := repl.NewReaderSource(os.Stdin, nil)
	sess := repl.New(interp, src, os.Stdout, repl.WithConfig(cfg), repl.WithLogger(logger))

	if _, err := sess.RunProgram(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "! %v\n", err)
		return 1
	}

	return 0
}

//
// The interactive loop gets line editing when both ends are a
// terminal, and reads plain lines otherwise
//

func interactive(ctx context.Context, interp *basic.Interpreter, cfg *config.Config, logger *log.Logger) int {

	opts := []repl.Option{repl.WithConfig(cfg), repl.WithLogger(logger)}

	var src repl.LineSource

	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		if cols, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			opts = append(opts, repl.WithWidth(cols))
		}

		t := repl.NewTerminal()
		defer t.Close()

		src = t

		fmt.Printf("minibasic version %s\n", version)
	} else {
		src = repl.NewReaderSource(os.Stdin, nil)
	}

	sess := repl.New(interp, src, os.Stdout, opts...)

	if err := sess.Loop(ctx); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("command loop failed")
		return 1
	}

	return 0
}
