package buildsys

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"mvdan.cc/sh/v3/interp"
)

type invocation struct {
	Args   []string
	Dir    string
	Define string
}

// fakeTools records every external invocation instead of running it
type fakeTools struct {
	calls   []invocation
	respond func(args []string) (stdout string, status uint8)
	// onCall runs while the "tool" is running
	onCall func(args []string)
}

func (f *fakeTools) middleware(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		hc := interp.HandlerCtx(ctx)
		f.calls = append(f.calls, invocation{
			Args:   append([]string(nil), args...),
			Dir:    hc.Dir,
			Define: hc.Env.Get("DefineConstants").String(),
		})

		if f.onCall != nil {
			f.onCall(args)
		}

		if f.respond == nil {
			return nil
		}

		stdout, status := f.respond(args)
		if stdout != "" {
			_, _ = io.WriteString(hc.Stdout, stdout)
		}
		if status != 0 {
			return interp.NewExitStatus(status)
		}
		return nil
	}
}

// failOnCall makes the n-th call (1-based) exit with status
func failOnCall(f *fakeTools, n int, status uint8) {
	count := 0
	f.respond = func([]string) (string, uint8) {
		count++
		if count == n {
			return "", status
		}
		return "", 0
	}
}

var testTime = time.Date(2026, 10, 15, 12, 30, 45, 123456000, time.UTC)

type testEnv struct {
	*Env
	tools  *fakeTools
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(t *testing.T, goos string) *testEnv {
	t.Helper()

	root := t.TempDir()
	te := &testEnv{
		Env:    NewEnv(root),
		tools:  &fakeTools{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}

	te.GOOS = goos
	te.Stdout = te.stdout
	te.Stderr = te.stderr
	te.Printer = NewPrinter(te.stdout, false)
	te.ExecHandlers = []ExecMiddleware{te.tools.middleware}
	te.Now = func() time.Time { return testTime }

	return te
}

func mkdir(t *testing.T, parts ...string) string {
	t.Helper()

	path := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(path, 0770))
	return path
}
