package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTagCmd(a *app) *cobra.Command {
	var (
		deleteTag string
		force     bool
		annotate  bool
		message   string
		tagger    string
	)

	cmd := &cobra.Command{
		Use:   "tag [name] [object]",
		Short: "List, create, or delete tags",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}

			if strings.TrimSpace(deleteTag) != "" {
				if len(args) > 0 {
					return fmt.Errorf("tag --delete does not accept positional args")
				}
				return r.DeleteTag(deleteTag)
			}

			if len(args) == 0 {
				tags, err := r.ListTags()
				if err != nil {
					return err
				}
				for _, name := range tags {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			name, targetName := args[0], "HEAD"
			if len(args) == 2 {
				targetName = args[1]
			}
			target, err := r.Resolve(targetName, "")
			if err != nil {
				return err
			}

			if !annotate {
				if err := r.CreateTag(name, target, force); err != nil {
					return err
				}
				a.log.Debug("tag created", zap.String("name", name), zap.String("target", string(target)))
				return nil
			}
			h, err := r.CreateAnnotatedTag(name, target, tagger, message, force)
			if err != nil {
				return err
			}
			a.log.Info("object written", zap.String("digest", string(h)), zap.String("type", "tag"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&deleteTag, "delete", "d", "", "delete the named tag")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing tag")
	cmd.Flags().BoolVarP(&annotate, "annotate", "a", false, "create a tag object")
	cmd.Flags().StringVarP(&message, "message", "m", "", "tag message (with --annotate)")
	cmd.Flags().StringVar(&tagger, "tagger", "", "tagger identity (with --annotate)")
	return cmd
}
