// Package completion provides the shell completion command.
package completion

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Supported shells.
const (
	ShellBash       = "bash"
	ShellZsh        = "zsh"
	ShellFish       = "fish"
	ShellPowerShell = "powershell"
)

// Shells lists the shells a completion script can be generated for.
var Shells = []string{ShellBash, ShellZsh, ShellFish, ShellPowerShell}

// NewCommand creates the completion command.
// It replaces cobra's generated completion command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate the autocompletion script for the given shell.

To load completions in your current shell session:

  source <(routemap completion bash)
  source <(routemap completion zsh)
  routemap completion fish | source
  routemap completion powershell | Out-String | Invoke-Expression`,
		GroupID:               "info",
		DisableFlagsInUseLine: true,
		ValidArgs:             Shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Generate(cmd.Root(), args[0], cmd)
		},
	}
}

// Generate writes the completion script for shell to cmd's output.
func Generate(root *cobra.Command, shell string, cmd *cobra.Command) error {
	w := cmd.OutOrStdout()
	switch shell {
	case ShellBash:
		return root.GenBashCompletionV2(w, true)
	case ShellZsh:
		return root.GenZshCompletion(w)
	case ShellFish:
		return root.GenFishCompletion(w, true)
	case ShellPowerShell:
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell %q", shell)
	}
}
