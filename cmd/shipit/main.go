// Command shipit deploys named targets from the nearest .shipit config
// file: local scripts in the calling environment, remote scripts over an
// SSH session rooted at the configured path.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/shipit-dev/shipit/internal/config"
	"github.com/shipit-dev/shipit/internal/platform/cli"
	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCommand(cli.NewApp()).Execute(); err != nil {
		fmt.Fprintln(color.Error, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func newRootCommand(app *cli.App) *cobra.Command {
	opts := &cli.Options{}
	var showVersion bool

	cmd := &cobra.Command{
		Use:           "shipit [target]",
		Short:         "Minimal remote deployment tool",
		Long:          "shipit finds the nearest " + config.DefaultFileName + " config file, resolves the chosen target\nand runs its local and remote scripts in order.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.Verbose {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(0)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Printf("shipit version %s\n", version)
				return nil
			}

			target := "deploy"
			if len(args) > 0 {
				target = args[0]
			}
			return app.Deploy(opts, target)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigName, "config", "c", config.DefaultFileName, "Name of the config file to search for")
	flags.StringVarP(&opts.HostOverride, "remote", "r", "", "Override the configured host (user@host:port accepted)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable verbose transport diagnostics")
	flags.StringSliceVarP(&opts.EnvPaths, "env", "e", nil, "Env files to load first (.vault files are decrypted)")
	flags.StringVar(&opts.VaultPassword, "vault-password", "", "Password for Ansible Vault env files")

	cmd.Flags().BoolVarP(&showVersion, "version", "V", false, "Show version information")

	cmd.AddCommand(
		newListCommand(app, opts),
		newConsoleCommand(app, opts),
		newExecCommand(app, opts),
		newCopyCommand(app, opts),
	)

	return cmd
}

func newListCommand(app *cli.App, opts *cli.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the targets defined in the config file",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.ListTargets(opts)
		},
	}
}

func newConsoleCommand(app *cli.App, opts *cli.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "console",
		Aliases: []string{"shell", "ssh"},
		Short:   "Open an interactive shell in the remote path",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Console(opts)
		},
	}
}

func newExecCommand(app *cli.App, opts *cli.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "exec <cmd>...",
		Aliases: []string{"run"},
		Short:   "Run a single command in the remote path",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Exec(opts, strings.Join(args, " "))
		},
	}
}

func newCopyCommand(app *cli.App, opts *cli.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "copy <file>",
		Aliases: []string{"cp"},
		Short:   "Copy a local file into the remote path",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Copy(opts, args[0])
		},
	}
}
