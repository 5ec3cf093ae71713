package buildsys

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ExecMiddleware wraps the handler that spawns external processes. Tests use it to
// record invocations instead of running the real tools.
type ExecMiddleware = func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc

type shellCmd struct {
	dir    string
	args   []string
	env    map[string]string
	stdout io.Writer
}

func (c shellCmd) environ() expand.Environ {
	envVars := os.Environ()

	for name, value := range c.env {
		envVars = append(envVars, fmt.Sprintf("%s=%s", name, value))
	}

	return expand.ListEnviron(envVars...)
}

// callExpr turns args into a shell call without going through the parser so that
// paths like "C:\Program Files (x86)\..." survive unmodified.
func callExpr(args []string) *syntax.CallExpr {
	cmd := new(syntax.CallExpr)
	cmd.Args = make([]*syntax.Word, len(args))

	for a, arg := range args {
		var wordPart syntax.WordPart

		if arg == "" || strings.ContainsAny(arg, " \t$'\"\\`*?[](){}<>|&;#~") {
			wordPart = &syntax.SglQuoted{Value: arg}
		} else {
			wordPart = &syntax.Lit{Value: arg}
		}

		cmd.Args[a] = &syntax.Word{Parts: []syntax.WordPart{wordPart}}
	}

	return cmd
}

func formatCmd(cmd syntax.Node) string {
	printer := syntax.NewPrinter(syntax.Minify(true))
	buffer := strings.Builder{}
	printer.Print(&buffer, cmd)
	return buffer.String()
}

// run executes a single external command and waits for it. There's no timeout: a hanging
// tool hangs the build.
func (e *Env) run(ctx context.Context, target string, cmd shellCmd) error {
	if len(cmd.args) == 0 {
		return eris.New("empty command")
	}

	stdout := cmd.stdout
	if stdout == nil {
		stdout = e.Stdout
	}

	runner, err := interp.New(
		interp.Dir(cmd.dir),
		interp.Env(cmd.environ()),
		interp.ExecHandlers(e.ExecHandlers...),
		interp.StdIO(nil, stdout, e.Stderr),
		interp.Params("-e"),
	)
	if err != nil {
		return eris.Wrap(err, "Failed to initialize runner")
	}

	call := callExpr(cmd.args)
	Log(ctx).Info().
		Str("target", target).
		Bool("command", true).
		Msg(formatCmd(call))

	err = runner.Run(ctx, call)
	if err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return toolError(eris.Errorf("exit status %d", status), "%s failed", cmd.args[0])
		}
		return toolError(err, "Failed to run %s", cmd.args[0])
	}

	return nil
}

// output runs cmd and returns everything it wrote to stdout
func (e *Env) output(ctx context.Context, target string, cmd shellCmd) (string, error) {
	buffer := strings.Builder{}
	cmd.stdout = &buffer

	err := e.run(ctx, target, cmd)
	return buffer.String(), err
}
