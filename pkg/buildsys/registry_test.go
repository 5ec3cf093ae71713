package buildsys

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryExpand(t *testing.T) {
	r := NewRegistry(false)
	assert.Equal(t, []Target{TargetGamelib}, r.Expand(TargetAll))
	assert.Equal(t, []Target{TargetClean}, r.Expand(TargetClean))

	r = NewRegistry(true)
	assert.Equal(t, []Target{TargetGamelib, TargetUnity}, r.Expand(TargetAll))
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry(false)

	for _, target := range []Target{TargetGamelib, TargetClean} {
		step, err := r.Lookup(target)
		require.NoError(t, err)
		assert.NotNil(t, step)
	}

	for _, target := range []Target{TargetUnity, TargetAll, Target(42)} {
		_, err := r.Lookup(target)
		require.Error(t, err)
		assert.Equal(t, KindUnknownTarget, KindOf(err))
	}

	_, err := NewRegistry(true).Lookup(TargetUnity)
	require.NoError(t, err)
}

func TestRegistryDescribe(t *testing.T) {
	infos := NewRegistry(false).Describe()
	require.Len(t, infos, 4)
	assert.Equal(t, "all", infos[0].Name)
	assert.Equal(t, "builds gamelib in this order", infos[0].Desc)
	assert.Equal(t, "(not available)", infos[2].Desc)

	infos = NewRegistry(true).Describe()
	assert.Equal(t, "builds gamelib, unity in this order", infos[0].Desc)
	assert.NotEqual(t, "(not available)", infos[2].Desc)
}

func recordingStep(log *[]Target, target Target, err error) registeredStep {
	return registeredStep{
		run: func(context.Context, *Env, Options) error {
			*log = append(*log, target)
			return err
		},
	}
}

func TestBuildRunsTargetsInDeclaredOrder(t *testing.T) {
	te := newTestEnv(t, "windows")
	var ran []Target
	r := &Registry{
		steps: map[Target]registeredStep{
			TargetClean:   recordingStep(&ran, TargetClean, nil),
			TargetGamelib: recordingStep(&ran, TargetGamelib, nil),
			TargetUnity:   recordingStep(&ran, TargetUnity, nil),
		},
		order: map[Target][]Target{
			TargetAll: {TargetUnity, TargetClean, TargetGamelib},
		},
	}

	err := r.Build(context.Background(), te.Env, Options{Target: TargetAll, Mode: ModeDevelopment})
	require.NoError(t, err)
	assert.Equal(t, []Target{TargetUnity, TargetClean, TargetGamelib}, ran)
	assert.Equal(t, "Building 'unity'...\nDone building 'unity'.\n"+
		"Building 'clean'...\nDone building 'clean'.\n"+
		"Building 'gamelib'...\nDone building 'gamelib'.\n", te.stdout.String())
}

func TestBuildStopsAtFirstFailure(t *testing.T) {
	te := newTestEnv(t, "windows")
	failure := eris.New("step failed")
	var ran []Target
	r := &Registry{
		steps: map[Target]registeredStep{
			TargetGamelib: recordingStep(&ran, TargetGamelib, failure),
			TargetUnity:   recordingStep(&ran, TargetUnity, nil),
		},
		order: map[Target][]Target{
			TargetAll: {TargetGamelib, TargetUnity},
		},
	}

	err := r.Build(context.Background(), te.Env, Options{Target: TargetAll, Mode: ModeDevelopment})
	assert.Same(t, failure, err)
	assert.Equal(t, []Target{TargetGamelib}, ran)
	assert.Equal(t, "Building 'gamelib'...\n", te.stdout.String())
}

func TestRunUnregisteredTarget(t *testing.T) {
	te := newTestEnv(t, "darwin")

	err := NewRegistry(false).Run(context.Background(), te.Env, TargetUnity, Options{Mode: ModeDevelopment})
	require.Error(t, err)
	assert.Equal(t, KindUnknownTarget, KindOf(err))
	assert.NotContains(t, te.stdout.String(), "Done building")
	assert.Empty(t, te.tools.calls)
}
