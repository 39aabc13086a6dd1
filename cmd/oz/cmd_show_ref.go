package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowRefCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show-ref",
		Short: "List references and the objects they point at",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			refs, err := r.ListRefs("")
			if err != nil {
				return err
			}
			for _, ref := range refs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ref.Hash, ref.Name)
			}
			return nil
		},
	}
}
