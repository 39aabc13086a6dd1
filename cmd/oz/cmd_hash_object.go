package main

import (
	"fmt"
	"os"

	"github.com/odvcencio/oz/pkg/object"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newHashObjectCmd(a *app) *cobra.Command {
	var (
		write   bool
		objType string
	)

	cmd := &cobra.Command{
		Use:   "hash-object [-w] [-t type] <path>",
		Short: "Compute an object digest, optionally storing the object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := object.ParseObjectType(objType)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("hash-object: %w", err)
			}

			// A nil store hashes without writing, so no repository is
			// needed unless -w is given.
			var store *object.Store
			if write {
				r, err := a.openRepo()
				if err != nil {
					return err
				}
				store = r.Store
			}

			h, created, err := store.WriteRaw(t, data)
			if err != nil {
				return fmt.Errorf("hash-object %s: %w", args[0], err)
			}
			if write {
				msg := "object already present"
				if created {
					msg = "object written"
				}
				a.log.Info(msg, zap.String("digest", string(h)), zap.String("type", string(t)), zap.Int("size", len(data)))
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the object into the store")
	cmd.Flags().StringVarP(&objType, "type", "t", string(object.TypeBlob), "object type (blob, tree, commit, tag)")
	return cmd
}
