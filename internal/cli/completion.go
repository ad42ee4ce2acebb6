package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// newCompletionCmd creates the completion command.
func (cli *CLI) newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tfprofile.

To load completions:

Bash:
  $ source <(tfprofile completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ tfprofile completion bash > /etc/bash_completion.d/tfprofile
  # macOS:
  $ tfprofile completion bash > $(brew --prefix)/etc/bash_completion.d/tfprofile

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ tfprofile completion zsh > "${fpath[1]}/_tfprofile"
  # You may need to start a new shell for this to take effect.

Fish:
  $ tfprofile completion fish | source
  # To load completions for each session, execute once:
  $ tfprofile completion fish > ~/.config/fish/completions/tfprofile.fish

PowerShell:
  PS> tfprofile completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> tfprofile completion powershell > tfprofile.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
