// Package cli provides the command-line interface for tfprofile.
package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tfprofile/internal/config"
	"tfprofile/internal/link"
	"tfprofile/internal/notify"
	"tfprofile/internal/registry"
)

// CLI holds the application state for the CLI.
type CLI struct {
	Config   *config.Config
	Notifier notify.Notifier
	rootCmd  *cobra.Command

	// Flags
	verboseFlag bool
	outputFlag  string
}

// New creates a new CLI instance.
func New() *CLI {
	cli := &CLI{}

	cli.rootCmd = &cobra.Command{
		Use:   "tfprofile [command]",
		Short: "tfprofile - Terraform Cloud credentials profile switcher",
		Long: `tfprofile manages named profiles for the Terraform Cloud credentials file.

The credentials file (~/.terraform.d/credentials.tfrc.json) is a single
fixed location, which makes working with multiple Terraform Cloud accounts
awkward. tfprofile keeps a copy per account in its registry directory and
swaps a symbolic link at the credentials path to select one.

Typical workflow:
  1. 'tfprofile import work' to register your current credentials
  2. log in to another account with 'terraform login'
  3. 'tfprofile import personal' to register those too
  4. 'tfprofile switch work' whenever you need to change accounts`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.initialize(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	cli.rootCmd.PersistentFlags().BoolVarP(&cli.verboseFlag, "verbose", "v", false, "Enable verbose output")
	cli.rootCmd.PersistentFlags().StringVarP(&cli.outputFlag, "output", "o", "text", "Output format (text, json)")

	// Add commands
	cli.addCommands()

	return cli
}

// addCommands adds all subcommands to the root command.
func (cli *CLI) addCommands() {
	cli.rootCmd.AddCommand(
		cli.newSwitchCmd(),
		cli.newImportCmd(),
		cli.newStatusCmd(),
		cli.newListCmd(),
		cli.newConfigCmd(),
		cli.newVersionCmd(),
		cli.newCompletionCmd(),
	)
}

// initialize sets up logging and loads configuration. A home directory
// that cannot be resolved is fatal here, before any command runs.
func (cli *CLI) initialize(cmd *cobra.Command) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if cli.verboseFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cli.Config = cfg
	cli.Notifier = notify.New(cfg.Notifications)

	return nil
}

// Execute runs the CLI.
func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// loadRegistry loads the profile registry from the configured directory.
func (cli *CLI) loadRegistry() (*registry.Registry, error) {
	return registry.Load(cli.Config.RegistryDir)
}

// linkManager returns a link manager for the configured credentials path.
func (cli *CLI) linkManager() *link.Manager {
	return link.NewManager(cli.Config.CredentialsFile)
}

// notifyRefusal sends a best-effort desktop alert about a refused operation.
func (cli *CLI) notifyRefusal(reason error) {
	if err := cli.Notifier.NotifyRefusal(reason); err != nil {
		log.Debug().Err(err).Msg("desktop alert failed")
	}
}

// profileNames returns all registered profile names for completion.
func (cli *CLI) profileNames() []string {
	if cli.Config == nil {
		return nil
	}
	reg, err := cli.loadRegistry()
	if err != nil {
		return nil
	}
	return reg.Names()
}
