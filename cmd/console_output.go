package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/mitchellh/colorstring"
	"github.com/rotisserie/eris"
)

// ConsoleWriter renders zerolog's JSON events as short coloured lines
type ConsoleWriter struct {
	out     io.Writer
	color   colorstring.Colorize
	verbose bool
	buffer  strings.Builder
	lock    sync.Mutex
}

func NewConsoleWriter(out io.Writer, useColor, verbose bool) *ConsoleWriter {
	return &ConsoleWriter{
		out: out,
		color: colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: !useColor,
			Reset:   true,
		},
		verbose: verbose,
	}
}

func (w *ConsoleWriter) Write(p []byte) (n int, err error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	var evt map[string]interface{}
	d := json.NewDecoder(bytes.NewReader(p))
	d.UseNumber()
	err = d.Decode(&evt)
	if err != nil {
		return n, eris.Wrapf(err, "cannot decode event: %s", p)
	}

	w.buffer.Reset()
	switch evt["level"] {
	case "fatal":
		fallthrough
	case "error":
		w.buffer.WriteString("[red]")
	case "warn":
		w.buffer.WriteString("[yellow]")
	case "debug":
		fallthrough
	case "trace":
		w.buffer.WriteString("[blue]")
	default:
		w.buffer.WriteString("[green]")
	}

	target, ok := evt["target"].(string)
	if ok {
		w.buffer.WriteString(target + ": ")
	}

	switch evt["level"] {
	case "error":
		w.buffer.WriteString("Error: ")
	case "warn":
		w.buffer.WriteString("Warning: ")
	}

	if cmd, _ := evt["command"].(bool); cmd {
		w.buffer.WriteString("$ ")
	}

	msg, _ := evt["message"].(string)
	w.buffer.WriteString(msg)

	errorDetails, ok := evt["error"].(string)
	if ok {
		w.buffer.WriteString("\n")
		w.buffer.WriteString(errorDetails)
	}

	if w.verbose {
		names := make([]string, 0, len(evt))
		for name := range evt {
			names = append(names, name)
		}
		sort.Strings(names)

		w.buffer.WriteString("\n")
		for _, name := range names {
			w.buffer.WriteString(fmt.Sprintf("  %s: %+v\n", name, evt[name]))
		}
	}

	w.buffer.WriteString("[reset]\n")
	_, err = io.WriteString(w.out, w.color.Color(w.buffer.String()))
	if err != nil {
		return 0, err
	}

	return len(p), nil
}
