package cli

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tfprofile/internal/link"
)

// newSwitchCmd creates the switch command.
func (cli *CLI) newSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "switch <name>",
		Aliases: []string{"use"},
		Short:   "Switch the active Terraform Cloud profile",
		Long: `Point the Terraform Cloud credentials file at a registered profile.

The credentials path becomes a symbolic link into the registry. A
credentials file that is not a symlink is never overwritten; import or
delete it first.

Examples:
  # Switch to the work account
  tfprofile switch work

  # Switch back to the personal account
  tfprofile switch personal`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return cli.profileNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.runSwitch(args[0])
		},
	}
}

// runSwitch replaces the credentials link with one pointing at the named
// profile. The existing link is left untouched on any failure.
func (cli *CLI) runSwitch(name string) error {
	reg, err := cli.loadRegistry()
	if err != nil {
		return err
	}

	profilePath, err := reg.Get(name)
	if err != nil {
		return err
	}

	if err := cli.linkManager().Switch(profilePath); err != nil {
		if errors.Is(err, link.ErrForeignCredentials) {
			cli.notifyRefusal(err)
		}
		return err
	}

	fmt.Printf("Switched to profile %q\n", name)

	if err := cli.Notifier.NotifySwitch(name); err != nil {
		log.Debug().Err(err).Msg("desktop notification failed")
	}
	return nil
}
