package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowdiagram/pkg/flow/sink/styles"
	flowio "github.com/matzehuels/flowdiagram/pkg/io"
	"github.com/matzehuels/flowdiagram/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for flowdiagram.

To load completions:

Bash:
  $ source <(flowdiagram completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ flowdiagram completion bash > /etc/bash_completion.d/flowdiagram
  # macOS:
  $ flowdiagram completion bash > $(brew --prefix)/etc/bash_completion.d/flowdiagram

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ flowdiagram completion zsh > "${fpath[1]}/_flowdiagram"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ flowdiagram completion fish | source

  # To load completions for each session, execute once:
  $ flowdiagram completion fish > ~/.config/fish/completions/flowdiagram.fish

PowerShell:
  PS> flowdiagram completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> flowdiagram completion powershell > flowdiagram.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
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

// completeDefinitions offers definition files for the first limit
// positional arguments; limit < 0 means any number.
func completeDefinitions(limit int) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if limit >= 0 && len(args) >= limit {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return flowio.Extensions(), cobra.ShellCompDirectiveFilterFileExt
	}
}

// completeLayouts offers layout envelopes written by the layout command.
func completeLayouts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{layoutJSON, layoutCBOR}, cobra.ShellCompDirectiveFilterFileExt
}

// completeDirs offers directories only.
func completeDirs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// registerValueCompletions attaches fixed value lists to the shared flags
// a command defines. Flags the command lacks are skipped.
func registerValueCompletions(cmd *cobra.Command) {
	fixed := map[string][]string{
		"style":  styles.Names(),
		"from":   formatNames(),
		"type":   pipeline.VizTypes,
		"format": formatChoices(cmd.Name()),
	}
	for name, values := range fixed {
		if cmd.Flags().Lookup(name) == nil || len(values) == 0 {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}
}

func formatNames() []string {
	names := make([]string, len(flowio.Formats))
	for i, f := range flowio.Formats {
		names[i] = string(f)
	}
	return names
}

// formatChoices lists the -f values each command accepts.
func formatChoices(command string) []string {
	switch command {
	case "render":
		return pipeline.Formats
	case "visualize":
		return visualizeFormats
	case "layout":
		return []string{layoutJSON, layoutCBOR, layoutTree}
	}
	return nil
}
