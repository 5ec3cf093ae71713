package buildsys

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
)

// buildClean removes the output directory. It never fails; problems are only logged.
func buildClean(ctx context.Context, env *Env, _ Options) error {
	err := removeOutDir(env.OutDir)
	if err != nil {
		Log(ctx).Warn().
			Str("target", TargetClean.String()).
			Err(newError(KindHousekeeping, err)).
			Msg("Could not clean the output directory")
	}

	return nil
}

func removeOutDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return eris.Wrapf(err, "Could not stat %s", dir)
	}

	if !info.IsDir() {
		return eris.Errorf("%s is not a directory", dir)
	}

	err = os.RemoveAll(dir)
	if err != nil {
		return eris.Wrapf(err, "Could not delete %s", dir)
	}

	return nil
}
