package main

import (
	"github.com/odvcencio/oz/pkg/object"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCatFileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cat-file <type> <object>",
		Short: "Print the payload of a stored object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := object.ParseObjectType(args[0])
			if err != nil {
				return err
			}
			r, err := a.openRepo()
			if err != nil {
				return err
			}

			h, payload, err := r.LoadPayload(args[1], t)
			if err != nil {
				return err
			}
			a.log.Debug("object read", zap.String("digest", string(h)), zap.String("type", string(t)), zap.Int("size", len(payload)))

			_, err = cmd.OutOrStdout().Write(payload)
			return err
		},
	}
}
