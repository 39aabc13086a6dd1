package main

import (
	"fmt"
	"path/filepath"

	"github.com/odvcencio/oz/pkg/repo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty oz repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			r, err := repo.Init(abs)
			if err != nil {
				return err
			}
			a.log.Debug("repository initialized", zap.String("dir", r.OzDir))

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty oz repository in %s\n", r.OzDir+string(filepath.Separator))
			return nil
		},
	}
}
