package buildsys

import (
	"context"
	"path/filepath"
)

// IdentityPath returns the location of the build identity file inside the Unity project
func (e *Env) IdentityPath() string {
	return filepath.Join(e.UnityDir(), "Assets", "Resources", "config.json")
}

// buildUnity builds the Windows and OS X players in batch mode. The build identity file
// only exists while Unity runs; it's removed again on every exit path.
func buildUnity(ctx context.Context, env *Env, opts Options) error {
	unityDir := env.UnityDir()
	configFile := env.IdentityPath()
	defer removeIdentity(configFile)

	if env.Repo.Dirty() && opts.Mode == ModeProduction {
		return configErrorf("Cannot create production build on unclean repository! Please commit your changes or revert to a clean version.")
	}

	ident := NewBuildIdentity(env.Repo.Revision, env.Now())
	err := ident.WriteFile(configFile)
	if err != nil {
		return err
	}

	unity, err := env.UnityPaths.Resolve(env.GOOS)
	if err != nil {
		return err
	}

	env.Printer.Info("building unity project in \"%s\", outputting to \"%s\"...", unityDir, env.OutDir)

	return env.run(ctx, TargetUnity.String(), shellCmd{
		dir: env.ProjectRoot,
		args: []string{
			unity,
			"-batchmode",
			"-projectPath", unityDir,
			"-buildWindowsPlayer", filepath.Join(env.OutDir, "win", "indigo_prison.exe"),
			"-buildOSXUniversalPlayer", filepath.Join(env.OutDir, "osx", "indigo_prison.exe"),
			"-quit",
		},
	})
}
