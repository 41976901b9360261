package terminal

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/de-tools/ternak-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/ternak-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	factory  commands.Factory
	reporter *export.Reporter
	output   io.Writer
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Factory commands.Factory
	Output  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Factory == nil {
		opts.Factory = OpenBackend
	}

	cli := &CLI{
		factory:  opts.Factory,
		reporter: export.NewReporter(opts.Output),
		output:   opts.Output,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args for the root command.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ternak",
		Short:         "Livestock program participants and quarterly reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.output)

	backend := &commands.Backend{Factory: cli.factory}
	cmd.PersistentFlags().StringVar(&backend.ProfilePath, "config", defaultProfilePath(),
		"Path to the profile file (default is $HOME/.ternakcfg)")
	cmd.PersistentFlags().StringVar(&backend.Profile, "profile", "default", "Profile to use")

	cmd.AddCommand(commands.NewParticipantsCmd(backend, cli.reporter))
	cmd.AddCommand(commands.NewReportsCmd(backend, cli.reporter))

	return cmd
}

func defaultProfilePath() string {
	usr, err := user.Current()
	if err != nil {
		return ".ternakcfg"
	}
	return fmt.Sprintf("%s/.ternakcfg", usr.HomeDir)
}
