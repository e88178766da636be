package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the command that emits shell completion
// scripts on stdout.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate a shell completion script",
		Long: `Generate a completion script for your shell and print it to stdout.

Try it out in the current session:

Bash:
  $ source <(flowgrid completion bash)

Zsh:
  $ source <(flowgrid completion zsh)

Fish:
  $ flowgrid completion fish | source

PowerShell:
  PS> flowgrid completion powershell | Out-String | Invoke-Expression

To make completions permanent, write the script where your shell picks
it up at startup:

Bash (Linux):
  $ flowgrid completion bash > /etc/bash_completion.d/flowgrid
Bash (macOS, with Homebrew bash-completion):
  $ flowgrid completion bash > $(brew --prefix)/etc/bash_completion.d/flowgrid
Zsh:
  $ flowgrid completion zsh > "${fpath[1]}/_flowgrid"
Fish:
  $ flowgrid completion fish > ~/.config/fish/completions/flowgrid.fish

Zsh needs compinit enabled; if it isn't, run once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
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
