package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tfprofile/internal/link"
)

// ErrEmptyRegistry indicates the registry holds no profiles at all.
var ErrEmptyRegistry = errors.New("no profiles are currently available")

// ListOutput represents the profile list for JSON output.
type ListOutput struct {
	Active   string   `json:"active,omitempty"`
	Profiles []string `json:"profiles"`
}

// newListCmd creates the list command.
func (cli *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all registered Terraform Cloud profiles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(cli.outputFlag)
			if err != nil {
				return err
			}
			return cli.runList(format)
		},
	}
}

// runList prints every registered profile, marking the active one.
func (cli *CLI) runList(format OutputFormat) error {
	reg, err := cli.loadRegistry()
	if err != nil {
		return err
	}

	if reg.Len() == 0 {
		return ErrEmptyRegistry
	}

	// Resolve the active profile for the marker; a resolution failure
	// only loses the marker, not the list.
	active := ""
	if status, err := cli.linkManager().Resolve(reg); err == nil && status.State == link.StateActive {
		active = status.Profile
	}

	output := NewOutputWriter(format)
	return output.Write(ListOutput{
		Active:   active,
		Profiles: reg.Names(),
	}, func() {
		fmt.Println("Currently available profiles:")
		for _, name := range reg.Names() {
			marker := ""
			if name == active {
				marker = " *"
			}
			fmt.Printf("\t%s%s\n", name, marker)
		}
		if active != "" {
			fmt.Printf("\n* = active profile (%s)\n", active)
		}
	})
}
