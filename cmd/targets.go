package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mguzdial3/IndigoPrison/pkg/buildsys"
)

func newTargetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "Lists the available targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSession(cmd)
			if err != nil {
				a.reportFailure(err)
				return errBuildFailed
			}

			infos := buildsys.NewRegistry(s.env.UnityEnabled).Describe()
			maxNameLen := 0
			for _, info := range infos {
				if len(info.Name) > maxNameLen {
					maxNameLen = len(info.Name)
				}
			}

			fmt.Fprintln(a.stdout, "Available targets:")
			lineFmt := fmt.Sprintf(" * %%-%ds %%s\n", maxNameLen+3)
			for _, info := range infos {
				fmt.Fprintf(a.stdout, lineFmt, info.Name+":", info.Desc)
			}

			return nil
		},
	}
}
