package buildsys

import (
	"context"
)

// buildGamelib builds the C# library with mdtool: first the Clean target, then Build.
func buildGamelib(ctx context.Context, env *Env, opts Options) error {
	config, define, err := opts.Mode.BuildConfig()
	if err != nil {
		return err
	}

	mdtool, err := env.MdtoolPaths.Resolve(env.GOOS)
	if err != nil {
		return err
	}

	configArg := "--configuration:" + config
	for _, subTarget := range []string{"Clean", "Build"} {
		err = env.run(ctx, TargetGamelib.String(), shellCmd{
			dir:  env.ProjectRoot,
			args: []string{mdtool, "build", configArg, "--target:" + subTarget, env.GamelibProject},
			// MSBuild picks up environment variables as properties
			env: map[string]string{"DefineConstants": define},
		})
		if err != nil {
			return err
		}
	}

	return nil
}
