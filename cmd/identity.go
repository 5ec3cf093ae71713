package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/mguzdial3/IndigoPrison/pkg/buildsys"
)

func newIdentityCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "identity",
		Short: "Prints the build identity for the current revision",
		Long: `Probes the repository and prints the build identity the unity target would
write into the Unity project. Nothing is written to disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.printIdentity(cmd)
			if err != nil {
				a.reportFailure(err)
				return errBuildFailed
			}
			return nil
		},
	}
}

func (a *app) printIdentity(cmd *cobra.Command) error {
	s, err := a.newSession(cmd)
	if err != nil {
		return err
	}

	repo, err := buildsys.ProbeRepository(s.ctx, s.env)
	if err != nil {
		return err
	}

	if repo.Dirty() {
		s.logger.Warn().Msg("The working tree has uncommitted changes")
	}

	data, err := json.MarshalIndent(buildsys.NewBuildIdentity(repo.Revision, s.env.Now()), "", "  ")
	if err != nil {
		return eris.Wrap(err, "failed to encode build identity")
	}

	fmt.Fprintln(a.stdout, string(data))
	return nil
}
