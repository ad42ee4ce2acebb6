package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tfprofile/internal/link"
)

// StatusOutput represents status information for JSON output.
type StatusOutput struct {
	State   string `json:"state"`
	Profile string `json:"profile,omitempty"`
	Target  string `json:"target,omitempty"`
}

// newStatusCmd creates the status command.
func (cli *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which Terraform Cloud profile is currently active",
		Long: `Print the name of the profile the credentials link points at.

Exits non-zero when no registered profile is in use: the credentials path
is missing, is a symlink to something outside the registry, or holds an
unregistered plain file.

Examples:
  # Show the active profile
  tfprofile status

  # Show the active profile in JSON format
  tfprofile status -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(cli.outputFlag)
			if err != nil {
				return err
			}
			return cli.runStatus(format)
		},
	}
}

// runStatus resolves the credentials link and prints the active profile.
func (cli *CLI) runStatus(format OutputFormat) error {
	reg, err := cli.loadRegistry()
	if err != nil {
		return err
	}

	status, err := cli.linkManager().Resolve(reg)
	if err != nil {
		return err
	}

	switch status.State {
	case link.StateActive:
		output := NewOutputWriter(format)
		return output.Write(StatusOutput{
			State:   status.State.String(),
			Profile: status.Profile,
			Target:  status.Target,
		}, func() {
			fmt.Println(status.Profile)
		})
	case link.StateForeign:
		return fmt.Errorf("%w: run 'tfprofile import <name>' to register it", link.ErrForeignCredentials)
	default:
		return link.ErrNoActiveProfile
	}
}
