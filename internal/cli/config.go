package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// configPathOutput represents config path output for JSON.
type configPathOutput struct {
	ConfigFile      string `json:"config_file"`
	RegistryDir     string `json:"registry_dir"`
	CredentialsFile string `json:"credentials_file"`
	ConfigExists    bool   `json:"config_exists"`
}

// newConfigCmd creates the config command group.
func (cli *CLI) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tfprofile configuration",
		Long: `Manage the tfprofile configuration file.

Use 'tfprofile config init' to write the configuration file.
Use 'tfprofile config path' to see where configuration is read from.`,
	}

	cmd.AddCommand(
		cli.newConfigInitCmd(),
		cli.newConfigPathCmd(),
	)

	return cmd
}

// newConfigInitCmd creates the config init command.
func (cli *CLI) newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the configuration file",
		Long: `Write the effective configuration to the configuration file.

The written file makes the current settings explicit so they can be
edited. An existing file is only replaced with --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cli.Config.FilePath()
			if _, err := os.Lstat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists, use --force to overwrite", path)
			}

			if err := cli.Config.Save(); err != nil {
				return err
			}

			fmt.Printf("Configuration written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

// newConfigPathCmd creates the config path command.
func (cli *CLI) newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration and data paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(cli.outputFlag)
			if err != nil {
				return err
			}

			_, statErr := os.Stat(cli.Config.FilePath())
			output := configPathOutput{
				ConfigFile:      cli.Config.FilePath(),
				RegistryDir:     cli.Config.RegistryDir,
				CredentialsFile: cli.Config.CredentialsFile,
				ConfigExists:    statErr == nil,
			}

			writer := NewOutputWriter(format)
			return writer.Write(output, func() {
				fmt.Println("Configuration paths:")
				fmt.Printf("  Config file:      %s\n", output.ConfigFile)
				fmt.Printf("  Registry dir:     %s\n", output.RegistryDir)
				fmt.Printf("  Credentials file: %s\n", output.CredentialsFile)

				fmt.Println("\nStatus:")
				if output.ConfigExists {
					fmt.Printf("  Config file exists\n")
				} else {
					fmt.Printf("  Config file does not exist\n")
				}
			})
		},
	}
}
