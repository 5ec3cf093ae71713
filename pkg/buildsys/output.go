package buildsys

import (
	"context"
	"fmt"
	"io"

	"github.com/mitchellh/colorstring"
	"github.com/rs/zerolog"
)

type logKey struct{}

// Log returns the logger attached to ctx. Falls back to a disabled logger so that
// steps can be called from tests without any setup.
func Log(ctx context.Context) *zerolog.Logger {
	logger := ctx.Value(logKey{})
	if logger == nil {
		nop := zerolog.Nop()
		return &nop
	}

	return logger.(*zerolog.Logger)
}

// WithLogger attaches the given logger to the context
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	return context.WithValue(ctx, logKey{}, logger)
}

// Printer writes the progress lines that belong on stdout (as opposed to log messages).
type Printer struct {
	out   io.Writer
	color colorstring.Colorize
}

// NewPrinter returns a Printer writing to out. Colour markup is stripped if useColor is false.
func NewPrinter(out io.Writer, useColor bool) *Printer {
	return &Printer{
		out: out,
		color: colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: !useColor,
		},
	}
}

// printf only runs markup through colorstring; the message is written as is so that
// brackets in paths survive.
func (p *Printer) printf(markup, format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	if markup != "" {
		line = p.color.Color(markup) + line + p.color.Color("[reset]")
	}
	fmt.Fprintln(p.out, line)
}

// Task prints a top-level progress line.
func (p *Printer) Task(format string, args ...interface{}) {
	p.printf("[bold]", format, args...)
}

// Success prints a line reporting a finished task.
func (p *Printer) Success(format string, args ...interface{}) {
	p.printf("[green]", format, args...)
}

// Info prints a plain line.
func (p *Printer) Info(format string, args ...interface{}) {
	p.printf("", format, args...)
}
