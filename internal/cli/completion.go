package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for moneyflow.

To load completions:

Bash:
  $ source <(moneyflow completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ moneyflow completion bash > /etc/bash_completion.d/moneyflow
  # macOS:
  $ moneyflow completion bash > $(brew --prefix)/etc/bash_completion.d/moneyflow

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ moneyflow completion zsh > "${fpath[1]}/_moneyflow"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ moneyflow completion fish | source

  # To load completions for each session, execute once:
  $ moneyflow completion fish > ~/.config/fish/completions/moneyflow.fish

PowerShell:
  PS> moneyflow completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> moneyflow completion powershell > moneyflow.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}
