package main

import (
	"bufio"
	"fmt"

	"github.com/odvcencio/oz/pkg/object"
	"github.com/odvcencio/oz/pkg/repo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newLogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "log [commit]",
		Short: "Render commit history as a Graphviz digraph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := "HEAD"
			if len(args) > 0 {
				start = args[0]
			}

			r, err := a.openRepo()
			if err != nil {
				return err
			}
			h, err := r.Resolve(start, object.TypeCommit)
			if err != nil {
				return err
			}
			a.log.Debug("walking history", zap.String("start", string(h)))

			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()

			fmt.Fprintln(w, "digraph ozlog{")
			fmt.Fprintln(w, "node[shape=rect]")
			err = repo.WalkHistory(r.Store, h, nil, func(ev repo.LogEvent) error {
				switch {
				case ev.Node != nil:
					fmt.Fprintf(w, "  c_%s [label=\"%s: %s\"]\n", ev.Node.Hash, ev.Node.Hash.Short(7), ev.Node.Summary)
				case ev.Edge != nil:
					fmt.Fprintf(w, "  c_%s -> c_%s;\n", ev.Edge.Child, ev.Edge.Parent)
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(w, "}")
			return nil
		},
	}
}
