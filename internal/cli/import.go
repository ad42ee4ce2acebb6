package cli

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tfprofile/internal/link"
)

// newImportCmd creates the import command.
func (cli *CLI) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <name>",
		Short: "Import the current unregistered credentials as a profile",
		Long: `Move the credentials file at the Terraform credentials path into the
registry under the given name.

Importing only works on a plain credentials file, typically one freshly
written by 'terraform login'. A credentials path that is already a
symbolic link belongs to the registry (or to something unknown) and is
refused. Importing is the only way new profiles are created.

Examples:
  # Register the credentials written by the last 'terraform login'
  tfprofile import work`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.runImport(args[0])
		},
	}
}

// runImport moves the credentials file into the registry.
func (cli *CLI) runImport(name string) error {
	reg, err := cli.loadRegistry()
	if err != nil {
		return err
	}

	dest, err := cli.linkManager().Import(reg, name)
	if err != nil {
		if errors.Is(err, link.ErrAlreadyImported) || errors.Is(err, link.ErrUnknownLink) || errors.Is(err, link.ErrProfileExists) {
			cli.notifyRefusal(err)
		}
		return err
	}

	fmt.Printf("Imported credentials as profile %q (%s)\n", name, dest)

	if err := cli.Notifier.NotifyImport(name); err != nil {
		log.Debug().Err(err).Msg("desktop notification failed")
	}
	return nil
}
