package main

import (
	"fmt"
	"os"

	"github.com/odvcencio/oz/pkg/repo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "0.1.0-dev"

// app carries state shared by all subcommands.
type app struct {
	verbose bool
	log     *zap.Logger
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "oz",
		Short:         "Content-addressed object store with git-compatible objects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.verbose {
				l, err := newLogger()
				if err != nil {
					return fmt.Errorf("init logger: %w", err)
				}
				a.log = l
			}
			if a.log == nil {
				a.log = zap.NewNop()
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newCatFileCmd(a))
	root.AddCommand(newHashObjectCmd(a))
	root.AddCommand(newLsTreeCmd(a))
	root.AddCommand(newLogCmd(a))
	root.AddCommand(newCheckoutCmd(a))
	root.AddCommand(newTagCmd(a))
	root.AddCommand(newShowRefCmd(a))
	return root
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// openRepo finds the repository containing the working directory.
func (a *app) openRepo() (*repo.Repo, error) {
	r, err := repo.Open(".")
	if err != nil {
		return nil, err
	}
	a.log.Debug("repository found", zap.String("root", r.RootDir))
	return r, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "oz "+version)
		},
	}
}
