package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCheckoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <commit-or-tree> <path>",
		Short: "Materialize a tree into an empty directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}

			target, dest := args[0], args[1]
			a.log.Info("checkout started", zap.String("target", target), zap.String("dest", dest))
			if err := r.Checkout(target, dest); err != nil {
				return err
			}
			a.log.Info("checkout finished", zap.String("dest", dest))

			fmt.Fprintf(cmd.OutOrStdout(), "checked out %s into %s\n", target, dest)
			return nil
		},
	}
}
