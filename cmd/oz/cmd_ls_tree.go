package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLsTreeCmd(a *app) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "ls-tree [-r] <tree-ish>",
		Short: "List the contents of a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			rows, err := r.ListTree(args[0], recursive)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, row := range rows {
				fmt.Fprintf(out, "%s %s %s\t%s\n", row.Mode, row.Type, row.Hash, row.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "recurse into subtrees")
	return cmd
}
