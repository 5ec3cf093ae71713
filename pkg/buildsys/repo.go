package buildsys

import (
	"context"
	"strings"
)

// ProbeRepository asks the VCS for the current revision and the working tree status.
// It doesn't touch anything but fails if the VCS isn't available.
func ProbeRepository(ctx context.Context, env *Env) (RepoIdentity, error) {
	var ident RepoIdentity

	revision, err := env.output(ctx, "repo", shellCmd{
		dir:  env.ProjectRoot,
		args: []string{env.VCS, "parent", "--template", "{node}"},
	})
	if err != nil {
		return ident, err
	}

	// empty for a repository without any commits
	ident.Revision = strings.TrimSpace(revision)

	ident.Status, err = env.output(ctx, "repo", shellCmd{
		dir:  env.ProjectRoot,
		args: []string{env.VCS, "status"},
	})
	if err != nil {
		return ident, err
	}

	Log(ctx).Debug().
		Str("revision", ident.Revision).
		Bool("dirty", ident.Dirty()).
		Msg("Probed repository")

	return ident, nil
}
