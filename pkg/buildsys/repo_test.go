package buildsys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hgResponder(revision, status string, failStatus bool) func([]string) (string, uint8) {
	return func(args []string) (string, uint8) {
		switch args[1] {
		case "parent":
			return revision, 0
		case "status":
			if failStatus {
				return "", 255
			}
			return status, 0
		}
		return "", 1
	}
}

func TestProbeRepository(t *testing.T) {
	te := newTestEnv(t, "linux")
	te.tools.respond = hgResponder("0f1e2d3c", "M build.py\n", false)

	ident, err := ProbeRepository(context.Background(), te.Env)
	require.NoError(t, err)
	assert.Equal(t, "0f1e2d3c", ident.Revision)
	assert.True(t, ident.Dirty())

	require.Len(t, te.tools.calls, 2)
	assert.Equal(t, []string{"hg", "parent", "--template", "{node}"}, te.tools.calls[0].Args)
	assert.Equal(t, []string{"hg", "status"}, te.tools.calls[1].Args)
	assert.Equal(t, te.ProjectRoot, te.tools.calls[0].Dir)

	// the probe output must not leak into the build output
	assert.Empty(t, te.stdout.String())
}

func TestProbeRepositoryClean(t *testing.T) {
	te := newTestEnv(t, "windows")
	te.tools.respond = hgResponder("0f1e2d3c", "", false)

	ident, err := ProbeRepository(context.Background(), te.Env)
	require.NoError(t, err)
	assert.False(t, ident.Dirty())
}

func TestProbeRepositoryFailures(t *testing.T) {
	te := newTestEnv(t, "windows")
	te.tools.respond = hgResponder("0f1e2d3c", "", true)

	_, err := ProbeRepository(context.Background(), te.Env)
	require.Error(t, err)
	assert.Equal(t, KindExternalTool, KindOf(err))
}

func TestProbeRepositoryWithoutCommits(t *testing.T) {
	te := newTestEnv(t, "windows")
	te.tools.respond = hgResponder("", "", false)

	ident, err := ProbeRepository(context.Background(), te.Env)
	require.NoError(t, err)
	assert.Equal(t, "", ident.Revision)
	assert.False(t, ident.Dirty())
}

func TestProbeRepositoryUsesConfiguredVCS(t *testing.T) {
	te := newTestEnv(t, "darwin")
	te.VCS = "/usr/local/bin/hg"
	te.tools.respond = hgResponder("abc", "", false)

	_, err := ProbeRepository(context.Background(), te.Env)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/hg", te.tools.calls[0].Args[0])
}
