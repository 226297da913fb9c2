// Command fifth runs the Fifth virtual machine: a small threaded-code Forth
// engine with cloned-VM concurrency and an optional C code-generator JIT.
//
// With no file arguments it reads an interactive session from stdin. With
// one or more file arguments (or -e snippets) it loads and runs them in
// order and exits; it does not also drop into a REPL afterward.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/fifthvm/fifth/internal/logio"
	"github.com/fifthvm/fifth/vm"
)

func main() {
	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	cmd := &cli.Command{
		Name:  "fifth",
		Usage: "a small threaded-code Forth engine",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  "mem-limit",
				Usage: "bound the arena to at most this many bytes (0: unlimited)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "abort the run if it hasn't finished within this duration",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "log a line for every inner-loop dispatch step",
			},
			&cli.BoolFlag{
				Name:  "dump",
				Usage: "print a dictionary/stack dump after the run",
			},
			&cli.StringSliceFlag{
				Name:    "eval",
				Aliases: []string{"e"},
				Usage:   "evaluate this snippet before any file arguments (may be repeated)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, &log)
		},
	}

	log.ErrorIf(cmd.Run(context.Background(), os.Args))
}

func run(ctx context.Context, cmd *cli.Command, log *logio.Logger) error {
	evals := cmd.StringSlice("eval")
	files := cmd.Args().Slice()

	opts := []vm.Option{
		vm.WithMemLimit(int(cmd.Uint("mem-limit"))),
		vm.WithOutput(os.Stdout),
	}
	if cmd.Bool("trace") {
		opts = append(opts, vm.WithTrace(log.Leveledf("TRACE")))
	}

	// Pushed in reverse of desired execution order: the input stack reads
	// its most recently pushed source first.
	if len(files) == 0 && len(evals) == 0 {
		opts = append(opts, vm.WithREPL("<stdin>", replReader()))
	} else {
		for i := len(files) - 1; i >= 0; i-- {
			name := files[i]
			f, err := os.Open(name)
			if err != nil {
				return err
			}
			defer f.Close()
			opts = append(opts, vm.WithInput(name, f))
		}
		for i := len(evals) - 1; i >= 0; i-- {
			opts = append(opts, vm.WithInput("-e", strings.NewReader(evals[i]+"\n")))
		}
	}

	m := vm.New(opts...)

	if cmd.Bool("dump") {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		defer lw.Close()
		defer m.Dump(lw)
	}

	if timeout := cmd.Duration("timeout"); timeout != 0 {
		return runWithTimeout(m, timeout)
	}
	return m.Run()
}

// replReader picks the interactive input source: readline with history and
// line editing when stdin is a terminal, plain stdin otherwise (a pipe or
// redirect). Either way it is pushed as the REPL source, so the VM prints
// its prompts for piped input too. The VM prints its own
// "  ok"/"  compiled " prompts (see vm/outer.go), so readline's own prompt is
// left blank to avoid printing it twice.
func replReader() io.Reader {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return os.Stdin
	}
	rl, err := readline.New("")
	if err != nil {
		return os.Stdin
	}
	return &readlineReader{rl: rl}
}

// readlineReader adapts a *readline.Instance to io.Reader, one line at a
// time, so it can be pushed onto the VM's input stack like any other source.
type readlineReader struct {
	rl  *readline.Instance
	buf []byte
}

func (r *readlineReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		line, err := r.rl.Readline()
		switch err {
		case nil:
			r.buf = append([]byte(line), '\n')
		case readline.ErrInterrupt:
			continue
		default:
			r.rl.Close()
			return 0, io.EOF
		}
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

// runWithTimeout runs m in its own goroutine and races it against timeout,
// since the VM's Run has no cancellation hook of its own. A run that times
// out is reported as an error; the goroutine is abandoned, not killed, and
// dies with the process.
func runWithTimeout(m *vm.VM, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- m.Run() }()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("timed out after %v", timeout)
	}
}
