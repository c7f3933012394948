// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"pepidx/internal/appcore"
	"pepidx/internal/cli"
	"pepidx/internal/clibase"
	"pepidx/internal/logging"
	"pepidx/internal/version"
	"pepidx/internal/writers"
)

// Name is the command name used in usage and version output.
const Name = "pepidx"

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	// flush writes usage/version text and maps the flush result to an exit code.
	flush := func(code int) int {
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return appcore.ExitOK
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return appcore.ExitIO
		}
		return code
	}

	fs := cli.NewFlagSet(Name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fs.SetOutput(outw)
			fs.Usage()
			return flush(appcore.ExitOK)
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			cli.PrintExamples(outw, Name)
			return flush(appcore.ExitOK)
		}
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", Name, err)
		fs.SetOutput(outw)
		fs.Usage()
		return flush(appcore.ExitUsage)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", Name, version.Version)
		return flush(appcore.ExitOK)
	}

	logger, err := logging.New(stderr, opts.Params.LogLevel, opts.Quiet)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", Name, err)
		return appcore.ExitUsage
	}

	p := opts.Params
	writer := appcore.NewPeptideWriterFactory(p.Output, p.Sort, p.Header)
	return appcore.Run(parent, stdout, logger, appcore.Options{
		PeptideFile: opts.PeptideFile,
		Databases:   opts.Databases,
		Params:      p,
	}, writer)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
