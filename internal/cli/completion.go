package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for vuegraph.

To load completions:

Bash:
  $ source <(vuegraph completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ vuegraph completion bash > /etc/bash_completion.d/vuegraph
  # macOS:
  $ vuegraph completion bash > $(brew --prefix)/etc/bash_completion.d/vuegraph

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ vuegraph completion zsh > "${fpath[1]}/_vuegraph"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ vuegraph completion fish | source

  # To load completions for each session, execute once:
  $ vuegraph completion fish > ~/.config/fish/completions/vuegraph.fish

PowerShell:
  PS> vuegraph completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> vuegraph completion powershell > vuegraph.ps1
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
